package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"ls-tech-blogs/internal/domain"
)

type StatsRepository interface {
	Totals(ctx context.Context) (*domain.DashboardStats, error)
	TopAuthors(ctx context.Context, limit int) ([]domain.AuthorStat, error)
	PopularBlogs(ctx context.Context, limit int) ([]domain.PopularBlog, error)
}

type statsRepository struct {
	db *sqlx.DB
}

func NewStatsRepository(db *sqlx.DB) StatsRepository {
	return &statsRepository{db: db}
}

func (r *statsRepository) Totals(ctx context.Context) (*domain.DashboardStats, error) {
	var stats domain.DashboardStats
	err := r.db.GetContext(ctx, &stats, `
		SELECT
			(SELECT COUNT(*) FROM users) AS total_users,
			(SELECT COUNT(*) FROM users WHERE is_active) AS active_users,
			(SELECT COUNT(*) FROM users WHERE created_at >= date_trunc('day', NOW())) AS new_users_today,
			(SELECT COUNT(*) FROM blogs WHERE NOT is_deleted) AS total_blogs,
			(SELECT COUNT(*) FROM blogs WHERE NOT is_deleted AND status = 'published') AS published_blogs,
			(SELECT COUNT(*) FROM blogs WHERE NOT is_deleted AND status = 'draft') AS draft_blogs,
			(SELECT COUNT(*) FROM blog_interactions WHERE NOT is_deleted AND category = 'comment') AS total_comments,
			(SELECT COUNT(*) FROM blog_interactions WHERE NOT is_deleted AND category = 'like') AS total_likes,
			(SELECT COUNT(*) FROM reports WHERE status = 'pending') AS pending_reports`)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

func (r *statsRepository) TopAuthors(ctx context.Context, limit int) ([]domain.AuthorStat, error) {
	var authors []domain.AuthorStat
	err := r.db.SelectContext(ctx, &authors, `
		SELECT u.id, u.username, u.first_name, u.last_name, COUNT(b.id) AS blog_count
		FROM users u
		JOIN blogs b ON b.author_id = u.id AND NOT b.is_deleted AND b.status = 'published'
		GROUP BY u.id
		ORDER BY blog_count DESC, u.username
		LIMIT $1`, limit)
	return authors, err
}

func (r *statsRepository) PopularBlogs(ctx context.Context, limit int) ([]domain.PopularBlog, error) {
	var blogs []domain.PopularBlog
	err := r.db.SelectContext(ctx, &blogs, `
		SELECT id, title, views, likes, comments
		FROM blogs
		WHERE NOT is_deleted AND status = 'published'
		ORDER BY views DESC, likes DESC
		LIMIT $1`, limit)
	return blogs, err
}
