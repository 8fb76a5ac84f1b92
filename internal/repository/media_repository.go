package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"ls-tech-blogs/internal/domain"
)

type MediaRepository interface {
	Create(ctx context.Context, media *domain.Media) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Media, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListByUploader(ctx context.Context, userID uuid.UUID, params domain.PaginationParams) ([]domain.Media, int64, error)
}

const mediaColumns = `id, uploaded_by, file_name, file_size, mime_type, storage_path, created_at, deleted_at`

type mediaRepository struct {
	db *sqlx.DB
}

func NewMediaRepository(db *sqlx.DB) MediaRepository {
	return &mediaRepository{db: db}
}

func (r *mediaRepository) Create(ctx context.Context, media *domain.Media) error {
	return r.db.QueryRowxContext(ctx, `
		INSERT INTO media (id, uploaded_by, file_name, file_size, mime_type, storage_path)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`,
		media.ID, media.UploadedBy, media.FileName, media.FileSize, media.MimeType, media.StoragePath,
	).Scan(&media.CreatedAt)
}

// GetByID ignores soft-deleted rows.
func (r *mediaRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Media, error) {
	var m domain.Media
	err := r.db.GetContext(ctx, &m, `SELECT `+mediaColumns+` FROM media WHERE id = $1 AND deleted_at IS NULL`, id)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil, nil
	case err != nil:
		return nil, err
	}
	return &m, nil
}

func (r *mediaRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `UPDATE media SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`, id)
	if err != nil {
		return err
	}
	return expectRows(res)
}

type mediaRow struct {
	domain.Media
	Total int64 `db:"total"`
}

// ListByUploader pages through one user's uploads, newest first. The total rides
// along on every row so a single round trip is enough.
func (r *mediaRepository) ListByUploader(ctx context.Context, userID uuid.UUID, params domain.PaginationParams) ([]domain.Media, int64, error) {
	params.Validate()

	var rows []mediaRow
	err := r.db.SelectContext(ctx, &rows, `
		SELECT `+mediaColumns+`, COUNT(*) OVER () AS total
		FROM media
		WHERE uploaded_by = $1 AND deleted_at IS NULL
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`, userID, params.PageSize, params.Offset())
	if err != nil {
		return nil, 0, err
	}

	media := make([]domain.Media, 0, len(rows))
	var total int64
	for _, row := range rows {
		media = append(media, row.Media)
		total = row.Total
	}
	if len(rows) == 0 && params.Page > 1 {
		// past the last page the window function has nothing to report
		if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM media WHERE uploaded_by = $1 AND deleted_at IS NULL`, userID); err != nil {
			return nil, 0, err
		}
	}
	return media, total, nil
}
