package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Session is a refresh token; only its sha256 is stored.
type Session struct {
	ID        uuid.UUID  `db:"id"`
	UserID    uuid.UUID  `db:"user_id"`
	TokenHash string     `db:"token_hash"`
	UserAgent *string    `db:"user_agent"`
	ExpiresAt time.Time  `db:"expires_at"`
	CreatedAt time.Time  `db:"created_at"`
	RevokedAt *time.Time `db:"revoked_at"`
}

type SessionRepository interface {
	Create(ctx context.Context, session *Session) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*Session, error)
	// Rotate revokes current and stores next atomically. It returns ErrNotFound when current
	// was already revoked, so a replayed refresh token cannot mint a second pair.
	Rotate(ctx context.Context, current uuid.UUID, next *Session) error
	RevokeAllForUser(ctx context.Context, userID uuid.UUID) error
	DeleteExpired(ctx context.Context) (int64, error)
}

type sessionRepository struct {
	db *sqlx.DB
}

func NewSessionRepository(db *sqlx.DB) SessionRepository {
	return &sessionRepository{db: db}
}

const insertSession = `
	INSERT INTO sessions (id, user_id, token_hash, user_agent, expires_at)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING created_at`

func (r *sessionRepository) Create(ctx context.Context, session *Session) error {
	return r.db.QueryRowxContext(ctx, insertSession,
		session.ID, session.UserID, session.TokenHash, session.UserAgent, session.ExpiresAt,
	).Scan(&session.CreatedAt)
}

func (r *sessionRepository) GetByTokenHash(ctx context.Context, tokenHash string) (*Session, error) {
	var session Session
	query := `SELECT * FROM sessions WHERE token_hash = $1 AND revoked_at IS NULL AND expires_at > NOW()`

	err := r.db.GetContext(ctx, &session, query, tokenHash)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepository) Rotate(ctx context.Context, current uuid.UUID, next *Session) error {
	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx,
			`UPDATE sessions SET revoked_at = NOW() WHERE id = $1 AND revoked_at IS NULL`, current)
		if err != nil {
			return err
		}
		if err := expectRows(res); err != nil {
			return err
		}

		return tx.QueryRowxContext(ctx, insertSession,
			next.ID, next.UserID, next.TokenHash, next.UserAgent, next.ExpiresAt,
		).Scan(&next.CreatedAt)
	})
}

func (r *sessionRepository) RevokeAllForUser(ctx context.Context, userID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `UPDATE sessions SET revoked_at = NOW() WHERE user_id = $1 AND revoked_at IS NULL`, userID)
	return err
}

func (r *sessionRepository) DeleteExpired(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE expires_at < NOW() OR revoked_at IS NOT NULL`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
