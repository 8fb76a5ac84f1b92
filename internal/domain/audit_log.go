package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// AuditAction names an admin moderation step.
type AuditAction string

const (
	AuditUserRoleChanged     AuditAction = "user.role_changed"
	AuditUserStatusChanged   AuditAction = "user.status_changed"
	AuditBlogDeleted         AuditAction = "blog.deleted"
	AuditCommentDeleted      AuditAction = "comment.deleted"
	AuditNotificationSent    AuditAction = "notification.sent"
	AuditNotificationDeleted AuditAction = "notification.deleted"
	AuditReportReviewed      AuditAction = "report.reviewed"
	AuditDataExported        AuditAction = "data.exported"
)

type AuditLog struct {
	ID         uuid.UUID       `json:"id" db:"id"`
	ActorID    uuid.UUID       `json:"actor_id" db:"actor_id"`
	ActorName  *string         `json:"actor_name,omitempty" db:"actor_name"`
	Action     AuditAction     `json:"action" db:"action"`
	EntityType string          `json:"entity_type" db:"entity_type"`
	EntityID   *uuid.UUID      `json:"entity_id,omitempty" db:"entity_id"`
	Details    json.RawMessage `json:"details,omitempty" db:"details"`
	IPAddress  *string         `json:"ip_address,omitempty" db:"ip_address"`
	UserAgent  *string         `json:"user_agent,omitempty" db:"user_agent"`
	CreatedAt  time.Time       `json:"created_at" db:"created_at"`
}

type RecordAuditInput struct {
	ActorID    uuid.UUID
	Action     AuditAction
	EntityType string
	EntityID   *uuid.UUID
	Details    any
	IPAddress  string
	UserAgent  string
}

type AuditFilter struct {
	Action  string
	ActorID *uuid.UUID
}
