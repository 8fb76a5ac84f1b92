package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

type NotificationType string

const (
	NotifNewBlog NotificationType = "new_blog"
	NotifLike    NotificationType = "like"
	NotifComment NotificationType = "comment"
	NotifReply   NotificationType = "reply"
	NotifSystem  NotificationType = "system"
)

type NotificationTarget string

const (
	TargetAll             NotificationTarget = "all"
	TargetAdmins          NotificationTarget = "admins"
	TargetTopContributors NotificationTarget = "top_contributors"
	TargetSpecificUser    NotificationTarget = "specific_user"
	TargetSpecificUsers   NotificationTarget = "specific_users"
)

var ErrNotRecipient = errors.New("notification is not addressed to this user")

// ReadState is the per-target read bookkeeping of a notification.
// Broadcasts track who has not read them yet; direct notifications carry a single flag.
type ReadState interface {
	Target() NotificationTarget
	IsUnreadFor(userID uuid.UUID) bool
	VisibleTo(userID uuid.UUID) bool
	MarkRead(userID uuid.UUID, at time.Time) (ReadState, error)
}

// BroadcastState is one notification shared by an audience. An empty Audience means
// everyone; any other audience is limited to Recipients.
type BroadcastState struct {
	Audience      NotificationTarget
	Recipients    UUIDList
	UnreadUserIDs UUIDList
}

func (s BroadcastState) Target() NotificationTarget {
	if s.Audience == "" {
		return TargetAll
	}
	return s.Audience
}

func (s BroadcastState) IsUnreadFor(userID uuid.UUID) bool {
	return s.UnreadUserIDs.Contains(userID)
}

func (s BroadcastState) VisibleTo(userID uuid.UUID) bool {
	return s.Target() == TargetAll || s.Recipients.Contains(userID)
}

// MarkRead removes the user from the roster; reading twice is a no-op.
func (s BroadcastState) MarkRead(userID uuid.UUID, _ time.Time) (ReadState, error) {
	if !s.VisibleTo(userID) {
		return s, ErrNotRecipient
	}
	remaining := make(UUIDList, 0, len(s.UnreadUserIDs))
	for _, id := range s.UnreadUserIDs {
		if id != userID {
			remaining = append(remaining, id)
		}
	}
	return BroadcastState{Audience: s.Audience, Recipients: s.Recipients, UnreadUserIDs: remaining}, nil
}

type DirectState struct {
	Recipient uuid.UUID
	IsRead    bool
	ReadAt    *time.Time
}

func (DirectState) Target() NotificationTarget { return TargetSpecificUser }

func (s DirectState) IsUnreadFor(userID uuid.UUID) bool {
	return s.Recipient == userID && !s.IsRead
}

func (s DirectState) VisibleTo(userID uuid.UUID) bool {
	return s.Recipient == userID
}

func (s DirectState) MarkRead(userID uuid.UUID, at time.Time) (ReadState, error) {
	if s.Recipient != userID {
		return s, ErrNotRecipient
	}
	if s.IsRead {
		return s, nil
	}
	return DirectState{Recipient: s.Recipient, IsRead: true, ReadAt: &at}, nil
}

type Notification struct {
	ID           uuid.UUID        `json:"id"`
	Title        string           `json:"title"`
	Message      string           `json:"message"`
	Type         NotificationType `json:"type"`
	SourceUserID *uuid.UUID       `json:"source_user_id,omitempty"`
	BlogID       *uuid.UUID       `json:"blog_id,omitempty"`
	CommentID    *uuid.UUID       `json:"comment_id,omitempty"`
	State        ReadState        `json:"-"`
	ExpiresAt    *time.Time       `json:"expires_at,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

func (n *Notification) Target() NotificationTarget {
	if n.State == nil {
		return TargetAll
	}
	return n.State.Target()
}

func (n *Notification) IsExpired(now time.Time) bool {
	return n.ExpiresAt != nil && !n.ExpiresAt.After(now)
}

// NotificationItem is a notification as seen by one user.
type NotificationItem struct {
	Notification
	Target NotificationTarget `json:"target"`
	IsRead bool               `json:"is_read"`
}

func (n *Notification) ViewFor(userID uuid.UUID) NotificationItem {
	return NotificationItem{
		Notification: *n,
		Target:       n.Target(),
		IsRead:       !n.State.IsUnreadFor(userID),
	}
}

// AdminNotificationItem exposes the raw read bookkeeping to administrators.
type AdminNotificationItem struct {
	Notification
	Target      NotificationTarget `json:"target"`
	TargetUser  *uuid.UUID         `json:"target_user,omitempty"`
	UnreadCount int                `json:"unread_count"`
}

func (n *Notification) AdminView() AdminNotificationItem {
	item := AdminNotificationItem{Notification: *n, Target: n.Target()}
	switch st := n.State.(type) {
	case BroadcastState:
		item.UnreadCount = len(st.UnreadUserIDs)
	case DirectState:
		recipient := st.Recipient
		item.TargetUser = &recipient
		if !st.IsRead {
			item.UnreadCount = 1
		}
	}
	return item
}

type SendNotificationInput struct {
	Title       string             `json:"title" validate:"required,max=200"`
	Message     string             `json:"message" validate:"required,max=2000"`
	Target      NotificationTarget `json:"target" validate:"required,oneof=all admins top_contributors specific_user specific_users"`
	TargetUser  *uuid.UUID         `json:"targetUser,omitempty"`
	TargetUsers []uuid.UUID        `json:"targetUsers,omitempty" validate:"omitempty,max=500"`
	ExpiresAt   *time.Time         `json:"expiresAt,omitempty"`
}

// NotificationFilter narrows the admin listing. ActiveOnly drops expired notifications.
type NotificationFilter struct {
	Type       string
	ActiveOnly bool
}

type NotificationList struct {
	PaginatedResponse[NotificationItem]
	UnreadCount int64 `json:"unread_count"`
}
