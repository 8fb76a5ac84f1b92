package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"ls-tech-blogs/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByGoogleID(ctx context.Context, googleID string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	MarkVerified(ctx context.Context, userID uuid.UUID) error
	UpdateRole(ctx context.Context, userID uuid.UUID, role string) error
	SetActive(ctx context.Context, userID uuid.UUID, active bool) error
	UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error
	TouchLastLogin(ctx context.Context, userID uuid.UUID) error
	SetPasswordResetToken(ctx context.Context, userID uuid.UUID, token string, expiresAt time.Time) error
	GetUserByResetToken(ctx context.Context, token string) (*domain.User, error)
	ClearPasswordResetToken(ctx context.Context, userID uuid.UUID) error
	List(ctx context.Context, filter domain.UserFilter, params domain.PaginationParams) ([]domain.User, int64, error)
	ListAll(ctx context.Context) ([]domain.User, error)
	ListActiveIDs(ctx context.Context, exclude *uuid.UUID) ([]uuid.UUID, error)
	ListActiveIDsByRole(ctx context.Context, role string) ([]uuid.UUID, error)
	// FilterActiveIDs returns the subset of ids that belong to active users.
	FilterActiveIDs(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error)
	GetSummaries(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]domain.UserSummary, error)
}

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (id, email, username, password_hash, first_name, last_name, phone,
			profile_image, account_type, google_id, role, is_active, is_verified)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		user.ID, user.Email, user.Username, user.PasswordHash, user.FirstName, user.LastName, user.Phone,
		user.ProfileImage, user.AccountType, user.GoogleID, user.Role, user.IsActive, user.IsVerified,
	).Scan(&user.CreatedAt, &user.UpdatedAt)
	if IsUniqueViolation(err) {
		return ErrDuplicate
	}
	return err
}

func (r *userRepository) getOne(ctx context.Context, where string, arg any) (*domain.User, error) {
	var user domain.User
	query := `SELECT * FROM users WHERE ` + where

	err := r.db.GetContext(ctx, &user, query, arg)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return r.getOne(ctx, `id = $1`, id)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getOne(ctx, `email = $1`, strings.ToLower(email))
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.getOne(ctx, `username = $1`, username)
}

func (r *userRepository) GetByGoogleID(ctx context.Context, googleID string) (*domain.User, error) {
	return r.getOne(ctx, `google_id = $1`, googleID)
}

func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	query := `
		UPDATE users
		SET first_name = :first_name, last_name = :last_name, phone = :phone, gender = :gender,
			github_profile = :github_profile, profile_image = :profile_image,
			google_id = :google_id, account_type = :account_type,
			is_active = :is_active, is_verified = :is_verified, updated_at = NOW()
		WHERE id = :id`

	_, err := r.db.NamedExecContext(ctx, query, user)
	return err
}

func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, strings.ToLower(email))
	return exists, err
}

func (r *userRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)`, username)
	return exists, err
}

func (r *userRepository) execOne(ctx context.Context, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	return expectRows(res)
}

func (r *userRepository) MarkVerified(ctx context.Context, userID uuid.UUID) error {
	return r.execOne(ctx, `UPDATE users SET is_verified = TRUE, is_active = TRUE, updated_at = NOW() WHERE id = $1`, userID)
}

func (r *userRepository) UpdateRole(ctx context.Context, userID uuid.UUID, role string) error {
	return r.execOne(ctx, `UPDATE users SET role = $2, updated_at = NOW() WHERE id = $1`, userID, role)
}

func (r *userRepository) SetActive(ctx context.Context, userID uuid.UUID, active bool) error {
	return r.execOne(ctx, `UPDATE users SET is_active = $2, updated_at = NOW() WHERE id = $1`, userID, active)
}

func (r *userRepository) UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error {
	return r.execOne(ctx, `UPDATE users SET password_hash = $2, updated_at = NOW() WHERE id = $1`, userID, passwordHash)
}

func (r *userRepository) TouchLastLogin(ctx context.Context, userID uuid.UUID) error {
	return r.execOne(ctx, `UPDATE users SET last_login_at = NOW() WHERE id = $1`, userID)
}

func (r *userRepository) SetPasswordResetToken(ctx context.Context, userID uuid.UUID, token string, expiresAt time.Time) error {
	return r.execOne(ctx, `
		UPDATE users
		SET password_reset_token = $2, password_reset_expires_at = $3, updated_at = NOW()
		WHERE id = $1`, userID, token, expiresAt)
}

func (r *userRepository) GetUserByResetToken(ctx context.Context, token string) (*domain.User, error) {
	return r.getOne(ctx, `password_reset_token = $1`, token)
}

func (r *userRepository) ClearPasswordResetToken(ctx context.Context, userID uuid.UUID) error {
	return r.execOne(ctx, `
		UPDATE users
		SET password_reset_token = NULL, password_reset_expires_at = NULL, updated_at = NOW()
		WHERE id = $1`, userID)
}

var userSortColumns = map[string]string{
	"createdAt": "created_at",
	"email":     "email",
	"username":  "username",
	"firstName": "first_name",
	"lastLogin": "last_login_at",
}

func (r *userRepository) List(ctx context.Context, filter domain.UserFilter, params domain.PaginationParams) ([]domain.User, int64, error) {
	params.Validate()

	var (
		conds []string
		args  []any
	)
	if filter.Search != "" {
		args = append(args, containsPattern(filter.Search))
		n := len(args)
		conds = append(conds, fmt.Sprintf("(email ILIKE $%d OR username ILIKE $%d OR first_name ILIKE $%d OR last_name ILIKE $%d)", n, n, n, n))
	}
	if filter.Role != "" {
		args = append(args, filter.Role)
		conds = append(conds, fmt.Sprintf("role = $%d", len(args)))
	}
	if filter.IsActive != nil {
		args = append(args, *filter.IsActive)
		conds = append(conds, fmt.Sprintf("is_active = $%d", len(args)))
	}

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM users`+where, args...); err != nil {
		return nil, 0, err
	}

	column, ok := userSortColumns[filter.SortBy]
	if !ok {
		column = "created_at"
	}
	query := fmt.Sprintf(`SELECT * FROM users%s ORDER BY %s %s NULLS LAST LIMIT $%d OFFSET $%d`,
		where, column, sortDirection(filter.SortOrder), len(args)+1, len(args)+2)

	var users []domain.User
	err := r.db.SelectContext(ctx, &users, query, append(args, params.PageSize, params.Offset())...)
	return users, total, err
}

func (r *userRepository) ListAll(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	err := r.db.SelectContext(ctx, &users, `SELECT * FROM users ORDER BY created_at DESC`)
	return users, err
}

func (r *userRepository) ListActiveIDs(ctx context.Context, exclude *uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if exclude != nil {
		err := r.db.SelectContext(ctx, &ids, `SELECT id FROM users WHERE is_active AND id <> $1`, *exclude)
		return ids, err
	}
	err := r.db.SelectContext(ctx, &ids, `SELECT id FROM users WHERE is_active`)
	return ids, err
}

func (r *userRepository) ListActiveIDsByRole(ctx context.Context, role string) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.SelectContext(ctx, &ids, `SELECT id FROM users WHERE is_active AND role = $1`, role)
	return ids, err
}

func (r *userRepository) FilterActiveIDs(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var out []uuid.UUID
	err := r.db.SelectContext(ctx, &out, `SELECT id FROM users WHERE is_active AND id = ANY($1::uuid[])`, domain.UUIDList(ids))
	return out, err
}

func (r *userRepository) GetSummaries(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]domain.UserSummary, error) {
	out := make(map[uuid.UUID]domain.UserSummary, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	var rows []domain.UserSummary
	err := r.db.SelectContext(ctx, &rows,
		`SELECT id, username, first_name, last_name, email, profile_image FROM users WHERE id = ANY($1::uuid[])`,
		domain.UUIDList(ids))
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.ID] = row
	}
	return out, nil
}
