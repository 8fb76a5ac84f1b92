package domain

import (
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type BlogStatus string

const (
	BlogDraft     BlogStatus = "draft"
	BlogPublished BlogStatus = "published"
)

const wordsPerMinute = 200

type Blog struct {
	ID          uuid.UUID      `json:"id" db:"id"`
	AuthorID    uuid.UUID      `json:"author_id" db:"author_id"`
	Title       string         `json:"title" db:"title"`
	Slug        string         `json:"slug" db:"slug"`
	Content     string         `json:"content" db:"content"`
	ContentHTML string         `json:"content_html" db:"content_html"`
	Tags        pq.StringArray `json:"tags" db:"tags"`
	Category    *string        `json:"category,omitempty" db:"category"`
	GitHubLink  *string        `json:"github_link,omitempty" db:"github_link"`
	CodeBlocks  pq.StringArray `json:"code_blocks" db:"code_blocks"`
	Attachments Attachments    `json:"attachments" db:"attachments"`
	Thumbnail   *string        `json:"thumbnail,omitempty" db:"thumbnail"`
	Status      BlogStatus     `json:"status" db:"status"`
	Views       int64          `json:"views" db:"views"`
	Likes       int64          `json:"likes" db:"likes"`
	Comments    int64          `json:"comments" db:"comments"`
	ReadTime    int            `json:"read_time" db:"read_time"`
	PublishedAt *time.Time     `json:"published_at,omitempty" db:"published_at"`
	AnnouncedAt *time.Time     `json:"-" db:"announced_at"`
	IsDeleted   bool           `json:"-" db:"is_deleted"`
	CreatedAt   time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at" db:"updated_at"`

	Author *UserSummary `json:"author,omitempty" db:"-"`
}

func (b *Blog) IsPublished() bool {
	return b.Status == BlogPublished
}

type CreateBlogInput struct {
	Title       string       `json:"title" validate:"required,min=3,max=200"`
	Content     string       `json:"content" validate:"required"`
	Tags        []string     `json:"tags" validate:"omitempty,max=10,dive,min=1,max=30"`
	Category    *string      `json:"category,omitempty" validate:"omitempty,max=50"`
	GitHubLink  *string      `json:"github_link,omitempty" validate:"omitempty,url"`
	CodeBlocks  []string     `json:"code_blocks"`
	Attachments []Attachment `json:"attachments" validate:"omitempty,dive"`
	Thumbnail   *string      `json:"thumbnail,omitempty" validate:"omitempty,url"`
	Status      BlogStatus   `json:"status" validate:"omitempty,oneof=draft published"`
}

type UpdateBlogInput struct {
	Title       *string       `json:"title,omitempty" validate:"omitempty,min=3,max=200"`
	Content     *string       `json:"content,omitempty" validate:"omitempty,min=1"`
	Tags        *[]string     `json:"tags,omitempty"`
	Category    *string       `json:"category,omitempty" validate:"omitempty,max=50"`
	GitHubLink  *string       `json:"github_link,omitempty" validate:"omitempty,url"`
	CodeBlocks  *[]string     `json:"code_blocks,omitempty"`
	Attachments *[]Attachment `json:"attachments,omitempty"`
	Thumbnail   *string       `json:"thumbnail,omitempty" validate:"omitempty,url"`
}

type BlogSort string

const (
	SortLatest      BlogSort = "latest"
	SortPopular     BlogSort = "popular"
	SortMostLiked   BlogSort = "likes"
	SortRecommended BlogSort = "recommended"
)

type BlogFilter struct {
	Search   string     `json:"search,omitempty"`
	Tag      string     `json:"tag,omitempty"`
	Category string     `json:"category,omitempty"`
	AuthorID *uuid.UUID `json:"author_id,omitempty"`
	Status   BlogStatus `json:"status,omitempty"`
	Sort     BlogSort   `json:"sort,omitempty"`
	// Recommend ranks titles containing this query first; set from search history.
	Recommend string `json:"recommend,omitempty"`
}

type Bookmark struct {
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	BlogID    uuid.UUID `json:"blog_id" db:"blog_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

var (
	slugInvalid = regexp.MustCompile(`[^a-z0-9]+`)
	wordSplit   = regexp.MustCompile(`\s+`)
)

// Slugify lowercases the title and joins alphanumeric runs with dashes.
func Slugify(title string) string {
	slug := slugInvalid.ReplaceAllString(strings.ToLower(title), "-")
	slug = strings.Trim(slug, "-")
	if len(slug) > 80 {
		slug = strings.TrimRight(slug[:80], "-")
	}
	return slug
}

// UniqueSlug suffixes the slug with the first block of the blog id.
func UniqueSlug(title string, id uuid.UUID) string {
	suffix := strings.SplitN(id.String(), "-", 2)[0]
	base := Slugify(title)
	if base == "" {
		return suffix
	}
	return base + "-" + suffix
}

// ReadTime is minutes at 200 words per minute, rounded up, never below one.
func ReadTime(content string) int {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return 1
	}
	words := len(wordSplit.Split(trimmed, -1))
	minutes := int(math.Ceil(float64(words) / wordsPerMinute))
	if minutes < 1 {
		return 1
	}
	return minutes
}
