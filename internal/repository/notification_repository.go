package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"ls-tech-blogs/internal/domain"
)

type NotificationRepository interface {
	Create(ctx context.Context, notif *domain.Notification) error
	// CreateBatch stores every notification or none of them.
	CreateBatch(ctx context.Context, notifs []*domain.Notification) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Notification, error)
	ListForUser(ctx context.Context, userID uuid.UUID, unreadOnly bool, params domain.PaginationParams) ([]domain.Notification, int64, error)
	CountUnread(ctx context.Context, userID uuid.UUID) (int64, error)
	RemoveUnreadUser(ctx context.Context, id, userID uuid.UUID) error
	MarkDirectRead(ctx context.Context, id, userID uuid.UUID) error
	MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error)
	ListAll(ctx context.Context, filter domain.NotificationFilter, params domain.PaginationParams) ([]domain.Notification, int64, error)
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

// notificationRow is the flat storage shape; ReadState is rebuilt from target.
// target holds the read-state variant ('all' roster or 'specific_user' flag),
// audience the group an admin addressed.
type notificationRow struct {
	ID           uuid.UUID       `db:"id"`
	Title        string          `db:"title"`
	Message      string          `db:"message"`
	Type         string          `db:"type"`
	Target       string          `db:"target"`
	Audience     string          `db:"audience"`
	Recipients   domain.UUIDList `db:"recipients"`
	TargetUserID *uuid.UUID      `db:"target_user_id"`
	SourceUserID *uuid.UUID      `db:"source_user_id"`
	BlogID       *uuid.UUID      `db:"blog_id"`
	CommentID    *uuid.UUID      `db:"comment_id"`
	UnreadUsers  domain.UUIDList `db:"unread_users"`
	IsRead       bool            `db:"is_read"`
	ReadAt       *time.Time      `db:"read_at"`
	ExpiresAt    *time.Time      `db:"expires_at"`
	IsDeleted    bool            `db:"is_deleted"`
	CreatedAt    time.Time       `db:"created_at"`
	UpdatedAt    time.Time       `db:"updated_at"`
}

func toNotificationRow(n *domain.Notification) (notificationRow, error) {
	row := notificationRow{
		ID:           n.ID,
		Title:        n.Title,
		Message:      n.Message,
		Type:         string(n.Type),
		SourceUserID: n.SourceUserID,
		BlogID:       n.BlogID,
		CommentID:    n.CommentID,
		ExpiresAt:    n.ExpiresAt,
		UnreadUsers:  domain.UUIDList{},
		Recipients:   domain.UUIDList{},
	}

	switch st := n.State.(type) {
	case domain.BroadcastState:
		row.Target = string(domain.TargetAll)
		row.Audience = string(st.Target())
		if st.UnreadUserIDs != nil {
			row.UnreadUsers = st.UnreadUserIDs
		}
		if st.Target() != domain.TargetAll {
			row.Recipients = st.Recipients
		}
	case domain.DirectState:
		recipient := st.Recipient
		row.Target = string(domain.TargetSpecificUser)
		row.Audience = string(domain.TargetSpecificUser)
		row.TargetUserID = &recipient
		row.IsRead = st.IsRead
		row.ReadAt = st.ReadAt
	default:
		return row, fmt.Errorf("notification %s has no read state", n.ID)
	}
	return row, nil
}

func (r notificationRow) toDomain() domain.Notification {
	n := domain.Notification{
		ID:           r.ID,
		Title:        r.Title,
		Message:      r.Message,
		Type:         domain.NotificationType(r.Type),
		SourceUserID: r.SourceUserID,
		BlogID:       r.BlogID,
		CommentID:    r.CommentID,
		ExpiresAt:    r.ExpiresAt,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
	if domain.NotificationTarget(r.Target) == domain.TargetSpecificUser && r.TargetUserID != nil {
		n.State = domain.DirectState{Recipient: *r.TargetUserID, IsRead: r.IsRead, ReadAt: r.ReadAt}
	} else {
		st := domain.BroadcastState{UnreadUserIDs: r.UnreadUsers}
		if audience := domain.NotificationTarget(r.Audience); audience != "" && audience != domain.TargetAll {
			st.Audience = audience
			st.Recipients = r.Recipients
		}
		n.State = st
	}
	return n
}

const (
	notifVisibleTo = `NOT is_deleted AND (expires_at IS NULL OR expires_at > NOW())
		AND ((target = 'all' AND (audience = 'all' OR $1::uuid = ANY(recipients))) OR target_user_id = $1)`
	notifUnreadBy = `((target = 'all' AND $1::uuid = ANY(unread_users))
		OR (target = 'specific_user' AND target_user_id = $1 AND NOT is_read))`
)

type notificationRepository struct {
	db *sqlx.DB
}

func NewNotificationRepository(db *sqlx.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

const insertNotification = `
	INSERT INTO notifications (id, title, message, type, target, audience, recipients, target_user_id,
		source_user_id, blog_id, comment_id, unread_users, is_read, read_at, expires_at)
	VALUES (:id, :title, :message, :type, :target, :audience, :recipients, :target_user_id,
		:source_user_id, :blog_id, :comment_id, :unread_users, :is_read, :read_at, :expires_at)
	RETURNING created_at, updated_at`

func insertNotificationRow(ctx context.Context, e sqlx.ExtContext, notif *domain.Notification) error {
	row, err := toNotificationRow(notif)
	if err != nil {
		return err
	}

	rows, err := sqlx.NamedQueryContext(ctx, e, insertNotification, row)
	if err != nil {
		return err
	}
	defer rows.Close()
	if rows.Next() {
		return rows.Scan(&notif.CreatedAt, &notif.UpdatedAt)
	}
	return rows.Err()
}

func (r *notificationRepository) Create(ctx context.Context, notif *domain.Notification) error {
	return insertNotificationRow(ctx, r.db, notif)
}

func (r *notificationRepository) CreateBatch(ctx context.Context, notifs []*domain.Notification) error {
	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		for _, n := range notifs {
			if err := insertNotificationRow(ctx, tx, n); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *notificationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Notification, error) {
	var row notificationRow
	err := r.db.GetContext(ctx, &row, `SELECT * FROM notifications WHERE id = $1 AND NOT is_deleted`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	n := row.toDomain()
	return &n, nil
}

func (r *notificationRepository) selectNotifications(ctx context.Context, query string, args ...any) ([]domain.Notification, error) {
	var rows []notificationRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}
	out := make([]domain.Notification, len(rows))
	for i, row := range rows {
		out[i] = row.toDomain()
	}
	return out, nil
}

func (r *notificationRepository) ListForUser(ctx context.Context, userID uuid.UUID, unreadOnly bool, params domain.PaginationParams) ([]domain.Notification, int64, error) {
	params.Validate()

	where := ` WHERE ` + notifVisibleTo
	if unreadOnly {
		where += ` AND ` + notifUnreadBy
	}

	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM notifications`+where, userID); err != nil {
		return nil, 0, err
	}

	notifications, err := r.selectNotifications(ctx,
		`SELECT * FROM notifications`+where+` ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		userID, params.PageSize, params.Offset())
	return notifications, total, err
}

func (r *notificationRepository) CountUnread(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM notifications WHERE `+notifVisibleTo+` AND `+notifUnreadBy, userID)
	return count, err
}

func (r *notificationRepository) RemoveUnreadUser(ctx context.Context, id, userID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE notifications SET unread_users = array_remove(unread_users, $2::uuid), updated_at = NOW()
		WHERE id = $1 AND target = 'all'`, id, userID)
	return err
}

func (r *notificationRepository) MarkDirectRead(ctx context.Context, id, userID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE notifications SET is_read = TRUE, read_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND target = 'specific_user' AND target_user_id = $2 AND NOT is_read`, id, userID)
	return err
}

// MarkAllRead clears the user from every broadcast roster and flags their direct notifications.
func (r *notificationRepository) MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	var affected int64
	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, `
			UPDATE notifications SET is_read = TRUE, read_at = NOW(), updated_at = NOW()
			WHERE target = 'specific_user' AND target_user_id = $1 AND NOT is_read AND NOT is_deleted`, userID)
		if err != nil {
			return err
		}
		direct, err := res.RowsAffected()
		if err != nil {
			return err
		}

		res, err = tx.ExecContext(ctx, `
			UPDATE notifications SET unread_users = array_remove(unread_users, $1::uuid), updated_at = NOW()
			WHERE target = 'all' AND $1::uuid = ANY(unread_users) AND NOT is_deleted`, userID)
		if err != nil {
			return err
		}
		broadcast, err := res.RowsAffected()
		if err != nil {
			return err
		}

		affected = direct + broadcast
		return nil
	})
	return affected, err
}

func (r *notificationRepository) ListAll(ctx context.Context, filter domain.NotificationFilter, params domain.PaginationParams) ([]domain.Notification, int64, error) {
	params.Validate()

	where := ` WHERE NOT is_deleted`
	args := []any{}
	if filter.Type != "" {
		args = append(args, filter.Type)
		where += ` AND type = $1`
	}
	if filter.ActiveOnly {
		where += ` AND (expires_at IS NULL OR expires_at > NOW())`
	}

	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM notifications`+where, args...); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`SELECT * FROM notifications%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		where, len(args)+1, len(args)+2)
	notifications, err := r.selectNotifications(ctx, query, append(args, params.PageSize, params.Offset())...)
	return notifications, total, err
}

func (r *notificationRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `UPDATE notifications SET is_deleted = TRUE, updated_at = NOW() WHERE id = $1 AND NOT is_deleted`, id)
	if err != nil {
		return err
	}
	return expectRows(res)
}
