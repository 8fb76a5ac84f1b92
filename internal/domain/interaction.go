package domain

import (
	"time"

	"github.com/google/uuid"
)

type InteractionCategory string

const (
	CategoryLike    InteractionCategory = "like"
	CategoryComment InteractionCategory = "comment"
)

func (c InteractionCategory) IsValid() bool {
	return c == CategoryLike || c == CategoryComment
}

// Interaction is a like or a comment on a blog. Replies are comments with ParentID set.
type Interaction struct {
	ID          uuid.UUID           `json:"id" db:"id"`
	Category    InteractionCategory `json:"category" db:"category"`
	BlogID      uuid.UUID           `json:"blog_id" db:"blog_id"`
	CreatedBy   uuid.UUID           `json:"created_by" db:"created_by"`
	UpdatedBy   *uuid.UUID          `json:"updated_by,omitempty" db:"updated_by"`
	ParentID    *uuid.UUID          `json:"parent_comment,omitempty" db:"parent_id"`
	Content     *string             `json:"content,omitempty" db:"content"`
	Attachments Attachments         `json:"attachments" db:"attachments"`
	IsReply     bool                `json:"is_reply" db:"is_reply"`
	Likes       int64               `json:"likes" db:"likes"`
	LikedBy     UUIDList            `json:"liked_by" db:"liked_by"`
	ReplyCount  int64               `json:"reply_count" db:"reply_count"`
	IsDeleted   bool                `json:"-" db:"is_deleted"`
	CreatedAt   time.Time           `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at" db:"updated_at"`

	Creator    *UserSummary `json:"creator,omitempty" db:"-"`
	BlogAuthor *UserSummary `json:"blog_author,omitempty" db:"-"`
	BlogTitle  string       `json:"blog_title,omitempty" db:"-"`
}

func (i *Interaction) IsTopLevelComment() bool {
	return i.Category == CategoryComment && i.ParentID == nil
}

type PostInteractionInput struct {
	Category      InteractionCategory `json:"category"`
	Content       *string             `json:"content,omitempty" validate:"omitempty,max=5000"`
	IsReply       bool                `json:"isReply"`
	ParentComment *uuid.UUID          `json:"parentComment,omitempty"`
	Attachments   []Attachment        `json:"attachments,omitempty" validate:"omitempty,dive"`
}

type UpdateCommentInput struct {
	Content string `json:"content" validate:"required,min=1,max=5000"`
}

type CommentLikeAction string

const (
	ActionLike   CommentLikeAction = "like"
	ActionUnlike CommentLikeAction = "unlike"
)

type LikeCommentInput struct {
	Action CommentLikeAction `json:"action" validate:"required,oneof=like unlike"`
}

type CommentFilter struct {
	Search string
	BlogID *uuid.UUID
	UserID *uuid.UUID
}

// InteractionResult pairs the stored interaction with its confirmation message.
type InteractionResult struct {
	Interaction *Interaction `json:"data"`
	Message     string       `json:"message"`
}

// ReplyPage is a skip/limit window over a comment's replies.
type ReplyPage struct {
	Data    []Interaction `json:"data"`
	Skip    int           `json:"skip"`
	Limit   int           `json:"limit"`
	Total   int64         `json:"total"`
	HasMore bool          `json:"has_more"`
}

type ReplyQuery struct {
	Skip  int `json:"skip" query:"skip"`
	Limit int `json:"limit" query:"limit"`
}

func (q *ReplyQuery) Validate() {
	if q.Skip < 0 {
		q.Skip = 0
	}
	if q.Limit < 1 {
		q.Limit = defaultPageSize
	}
	if q.Limit > maxPageSize {
		q.Limit = maxPageSize
	}
}
