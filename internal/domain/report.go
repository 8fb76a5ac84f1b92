package domain

import (
	"time"

	"github.com/google/uuid"
)

type ReportStatus string

const (
	ReportPending   ReportStatus = "pending"
	ReportReviewed  ReportStatus = "reviewed"
	ReportResolved  ReportStatus = "resolved"
	ReportDismissed ReportStatus = "dismissed"
)

type Report struct {
	ID         uuid.UUID    `json:"id" db:"id"`
	BlogID     *uuid.UUID   `json:"blog_id,omitempty" db:"blog_id"`
	CommentID  *uuid.UUID   `json:"comment_id,omitempty" db:"comment_id"`
	Reason     string       `json:"reason" db:"reason"`
	Details    *string      `json:"details,omitempty" db:"details"`
	Status     ReportStatus `json:"status" db:"status"`
	ReporterID uuid.UUID    `json:"reporter_id" db:"reporter_id"`
	ReviewedBy *uuid.UUID   `json:"reviewed_by,omitempty" db:"reviewed_by"`
	ReviewedAt *time.Time   `json:"reviewed_at,omitempty" db:"reviewed_at"`
	CreatedAt  time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at" db:"updated_at"`
}

type CreateReportInput struct {
	BlogID    *uuid.UUID `json:"blog_id,omitempty"`
	CommentID *uuid.UUID `json:"comment_id,omitempty"`
	Reason    string     `json:"reason" validate:"required,oneof=spam harassment inappropriate misinformation other"`
	Details   *string    `json:"details,omitempty" validate:"omitempty,max=1000"`
}

type UpdateReportInput struct {
	Status ReportStatus `json:"status" validate:"required,oneof=pending reviewed resolved dismissed"`
}
