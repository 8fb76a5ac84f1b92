package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"ls-tech-blogs/internal/domain"
)

type BookmarkRepository interface {
	Exists(ctx context.Context, userID, blogID uuid.UUID) (bool, error)
	Add(ctx context.Context, userID, blogID uuid.UUID) error
	Remove(ctx context.Context, userID, blogID uuid.UUID) error
	ListBlogs(ctx context.Context, userID uuid.UUID, params domain.PaginationParams) ([]domain.Blog, int64, error)
}

type bookmarkRepository struct {
	db *sqlx.DB
}

func NewBookmarkRepository(db *sqlx.DB) BookmarkRepository {
	return &bookmarkRepository{db: db}
}

func (r *bookmarkRepository) Exists(ctx context.Context, userID, blogID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM bookmarks WHERE user_id = $1 AND blog_id = $2)`, userID, blogID)
	return exists, err
}

func (r *bookmarkRepository) Add(ctx context.Context, userID, blogID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO bookmarks (user_id, blog_id) VALUES ($1, $2)
		ON CONFLICT (user_id, blog_id) DO NOTHING`, userID, blogID)
	return err
}

func (r *bookmarkRepository) Remove(ctx context.Context, userID, blogID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM bookmarks WHERE user_id = $1 AND blog_id = $2`, userID, blogID)
	return err
}

// ListBlogs returns bookmarked blogs that are still live, most recently bookmarked first.
func (r *bookmarkRepository) ListBlogs(ctx context.Context, userID uuid.UUID, params domain.PaginationParams) ([]domain.Blog, int64, error) {
	params.Validate()

	const where = `
		JOIN bookmarks bm ON bm.blog_id = b.id
		WHERE bm.user_id = $1 AND NOT b.is_deleted AND b.status = 'published'`

	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM blogs b`+where, userID); err != nil {
		return nil, 0, err
	}

	var rows []blogRow
	err := r.db.SelectContext(ctx, &rows, blogSelect+where+` ORDER BY bm.created_at DESC LIMIT $2 OFFSET $3`,
		userID, params.PageSize, params.Offset())
	if err != nil {
		return nil, 0, err
	}

	blogs := make([]domain.Blog, len(rows))
	for i, row := range rows {
		blogs[i] = row.toDomain()
	}
	return blogs, total, nil
}
