package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"ls-tech-blogs/internal/domain"
)

type ReportRepository interface {
	Create(ctx context.Context, report *domain.Report) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Report, error)
	List(ctx context.Context, status string, params domain.PaginationParams) ([]domain.Report, int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.ReportStatus, reviewedBy uuid.UUID) error
}

type reportRepository struct {
	db *sqlx.DB
}

func NewReportRepository(db *sqlx.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) Create(ctx context.Context, report *domain.Report) error {
	query := `
		INSERT INTO reports (id, blog_id, comment_id, reason, details, status, reporter_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		report.ID, report.BlogID, report.CommentID, report.Reason, report.Details, report.Status, report.ReporterID,
	).Scan(&report.CreatedAt, &report.UpdatedAt)
}

func (r *reportRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Report, error) {
	var report domain.Report
	err := r.db.GetContext(ctx, &report, `SELECT * FROM reports WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *reportRepository) List(ctx context.Context, status string, params domain.PaginationParams) ([]domain.Report, int64, error) {
	params.Validate()

	var (
		total   int64
		reports []domain.Report
	)

	if status != "" {
		if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM reports WHERE status = $1`, status); err != nil {
			return nil, 0, err
		}
		err := r.db.SelectContext(ctx, &reports,
			`SELECT * FROM reports WHERE status = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
			status, params.PageSize, params.Offset())
		return reports, total, err
	}

	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM reports`); err != nil {
		return nil, 0, err
	}
	err := r.db.SelectContext(ctx, &reports,
		`SELECT * FROM reports ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		params.PageSize, params.Offset())
	return reports, total, err
}

func (r *reportRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.ReportStatus, reviewedBy uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE reports SET status = $2, reviewed_by = $3, reviewed_at = NOW(), updated_at = NOW()
		WHERE id = $1`, id, status, reviewedBy)
	if err != nil {
		return err
	}
	return expectRows(res)
}
