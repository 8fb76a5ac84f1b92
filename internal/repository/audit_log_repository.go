package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"ls-tech-blogs/internal/domain"
)

type AuditLogRepository interface {
	Create(ctx context.Context, log *domain.AuditLog) error
	List(ctx context.Context, filter domain.AuditFilter, params domain.PaginationParams) ([]domain.AuditLog, int64, error)
}

type auditLogRepository struct {
	db *sqlx.DB
}

func NewAuditLogRepository(db *sqlx.DB) AuditLogRepository {
	return &auditLogRepository{db: db}
}

func (r *auditLogRepository) Create(ctx context.Context, log *domain.AuditLog) error {
	// pq sends []byte as bytea, which JSONB rejects
	var details any
	if len(log.Details) > 0 {
		details = string(log.Details)
	}

	query := `
		INSERT INTO audit_logs (id, actor_id, action, entity_type, entity_id, details, ip_address, user_agent)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at`

	return r.db.QueryRowxContext(ctx, query,
		log.ID, log.ActorID, log.Action, log.EntityType, log.EntityID,
		details, log.IPAddress, log.UserAgent,
	).Scan(&log.CreatedAt)
}

func (r *auditLogRepository) List(ctx context.Context, filter domain.AuditFilter, params domain.PaginationParams) ([]domain.AuditLog, int64, error) {
	params.Validate()

	var (
		conds []string
		args  []any
	)
	if filter.Action != "" {
		args = append(args, filter.Action)
		conds = append(conds, fmt.Sprintf("al.action = $%d", len(args)))
	}
	if filter.ActorID != nil {
		args = append(args, *filter.ActorID)
		conds = append(conds, fmt.Sprintf("al.actor_id = $%d", len(args)))
	}
	where := ""
	if len(conds) > 0 {
		where = "WHERE " + strings.Join(conds, " AND ")
	}

	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM audit_logs al `+where, args...); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`
		SELECT
			al.*,
			TRIM(u.first_name || ' ' || u.last_name) AS actor_name
		FROM audit_logs al
		LEFT JOIN users u ON al.actor_id = u.id
		%s
		ORDER BY al.created_at DESC
		LIMIT $%d OFFSET $%d`, where, len(args)+1, len(args)+2)

	logs := []domain.AuditLog{}
	err := r.db.SelectContext(ctx, &logs, query, append(args, params.PageSize, params.Offset())...)
	return logs, total, err
}
