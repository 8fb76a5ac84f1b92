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

type BlogRepository interface {
	Create(ctx context.Context, blog *domain.Blog) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Blog, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]domain.Blog, error)
	Update(ctx context.Context, blog *domain.Blog) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.BlogStatus, publishedAt *time.Time) error
	// MarkAnnounced stamps announced_at once. It reports false when the blog was already announced.
	MarkAnnounced(ctx context.Context, id uuid.UUID) (bool, error)
	SoftDelete(ctx context.Context, id uuid.UUID) error
	IncrementViews(ctx context.Context, id uuid.UUID) (int64, error)
	List(ctx context.Context, filter domain.BlogFilter, params domain.PaginationParams) ([]domain.Blog, int64, error)
	LatestByAuthor(ctx context.Context, authorID uuid.UUID, limit int) ([]domain.Blog, error)
	ListForExport(ctx context.Context) ([]domain.BlogExportRow, error)
}

type blogRow struct {
	domain.Blog
	AuthorUsername     string  `db:"author_username"`
	AuthorFirstName    string  `db:"author_first_name"`
	AuthorLastName     string  `db:"author_last_name"`
	AuthorEmail        string  `db:"author_email"`
	AuthorProfileImage *string `db:"author_profile_image"`
}

func (r blogRow) toDomain() domain.Blog {
	blog := r.Blog
	blog.Author = &domain.UserSummary{
		ID:           r.AuthorID,
		Username:     r.AuthorUsername,
		FirstName:    r.AuthorFirstName,
		LastName:     r.AuthorLastName,
		Email:        r.AuthorEmail,
		ProfileImage: r.AuthorProfileImage,
	}
	return blog
}

const blogSelect = `
	SELECT b.*, u.username AS author_username, u.first_name AS author_first_name,
		u.last_name AS author_last_name, u.email AS author_email, u.profile_image AS author_profile_image
	FROM blogs b
	JOIN users u ON u.id = b.author_id`

type blogRepository struct {
	db *sqlx.DB
}

func NewBlogRepository(db *sqlx.DB) BlogRepository {
	return &blogRepository{db: db}
}

func (r *blogRepository) Create(ctx context.Context, blog *domain.Blog) error {
	query := `
		INSERT INTO blogs (id, author_id, title, slug, content, content_html, tags, category, github_link,
			code_blocks, attachments, thumbnail, status, read_time, published_at, announced_at)
		VALUES (:id, :author_id, :title, :slug, :content, :content_html, :tags, :category, :github_link,
			:code_blocks, :attachments, :thumbnail, :status, :read_time, :published_at, :announced_at)
		RETURNING created_at, updated_at`

	rows, err := r.db.NamedQueryContext(ctx, query, blog)
	if err != nil {
		if IsUniqueViolation(err) {
			return ErrDuplicate
		}
		return err
	}
	defer rows.Close()
	if rows.Next() {
		return rows.Scan(&blog.CreatedAt, &blog.UpdatedAt)
	}
	return rows.Err()
}

func (r *blogRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Blog, error) {
	var row blogRow
	err := r.db.GetContext(ctx, &row, blogSelect+` WHERE b.id = $1 AND NOT b.is_deleted`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	blog := row.toDomain()
	return &blog, nil
}

func (r *blogRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]domain.Blog, error) {
	out := make(map[uuid.UUID]domain.Blog, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	var rows []blogRow
	err := r.db.SelectContext(ctx, &rows, blogSelect+` WHERE b.id = ANY($1::uuid[]) AND NOT b.is_deleted`, domain.UUIDList(ids))
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.ID] = row.toDomain()
	}
	return out, nil
}

func (r *blogRepository) Update(ctx context.Context, blog *domain.Blog) error {
	query := `
		UPDATE blogs
		SET title = :title, slug = :slug, content = :content, content_html = :content_html, tags = :tags,
			category = :category, github_link = :github_link, code_blocks = :code_blocks,
			attachments = :attachments, thumbnail = :thumbnail, read_time = :read_time, updated_at = NOW()
		WHERE id = :id AND NOT is_deleted`

	res, err := r.db.NamedExecContext(ctx, query, blog)
	if err != nil {
		return err
	}
	return expectRows(res)
}

func (r *blogRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.BlogStatus, publishedAt *time.Time) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE blogs SET status = $2, published_at = $3, updated_at = NOW()
		WHERE id = $1 AND NOT is_deleted`, id, status, publishedAt)
	if err != nil {
		return err
	}
	return expectRows(res)
}

func (r *blogRepository) MarkAnnounced(ctx context.Context, id uuid.UUID) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE blogs SET announced_at = NOW()
		WHERE id = $1 AND announced_at IS NULL AND NOT is_deleted`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n == 1, err
}

func (r *blogRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `UPDATE blogs SET is_deleted = TRUE, updated_at = NOW() WHERE id = $1 AND NOT is_deleted`, id)
	if err != nil {
		return err
	}
	return expectRows(res)
}

func (r *blogRepository) IncrementViews(ctx context.Context, id uuid.UUID) (int64, error) {
	var views int64
	err := r.db.GetContext(ctx, &views, `UPDATE blogs SET views = views + 1 WHERE id = $1 RETURNING views`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNotFound
	}
	return views, err
}

func (r *blogRepository) List(ctx context.Context, filter domain.BlogFilter, params domain.PaginationParams) ([]domain.Blog, int64, error) {
	params.Validate()

	conds := []string{"NOT b.is_deleted"}
	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.Status != "" {
		conds = append(conds, "b.status = "+arg(filter.Status))
	}
	if filter.AuthorID != nil {
		conds = append(conds, "b.author_id = "+arg(*filter.AuthorID))
	}
	if filter.Search != "" {
		p := arg(containsPattern(filter.Search))
		conds = append(conds, fmt.Sprintf("(b.title ILIKE %s OR b.content ILIKE %s OR u.username ILIKE %s)", p, p, p))
	}
	if filter.Tag != "" {
		conds = append(conds, arg(filter.Tag)+" = ANY(b.tags)")
	}
	if filter.Category != "" {
		conds = append(conds, "b.category = "+arg(filter.Category))
	}
	where := " WHERE " + strings.Join(conds, " AND ")

	var total int64
	countQuery := `SELECT COUNT(*) FROM blogs b JOIN users u ON u.id = b.author_id` + where
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, err
	}

	var order string
	switch filter.Sort {
	case domain.SortPopular:
		order = "b.views DESC, b.created_at DESC"
	case domain.SortMostLiked:
		order = "b.likes DESC, b.created_at DESC"
	case domain.SortRecommended:
		if filter.Recommend != "" {
			order = fmt.Sprintf("(b.title ILIKE %s) DESC, b.views DESC, b.created_at DESC", arg(containsPattern(filter.Recommend)))
		} else {
			order = "COALESCE(b.published_at, b.created_at) DESC"
		}
	default:
		order = "COALESCE(b.published_at, b.created_at) DESC"
	}

	query := fmt.Sprintf("%s%s ORDER BY %s LIMIT %s OFFSET %s", blogSelect, where, order, arg(params.PageSize), arg(params.Offset()))

	var rows []blogRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, 0, err
	}

	blogs := make([]domain.Blog, len(rows))
	for i, row := range rows {
		blogs[i] = row.toDomain()
	}
	return blogs, total, nil
}

func (r *blogRepository) LatestByAuthor(ctx context.Context, authorID uuid.UUID, limit int) ([]domain.Blog, error) {
	var blogs []domain.Blog
	err := r.db.SelectContext(ctx, &blogs, `
		SELECT * FROM blogs
		WHERE author_id = $1 AND status = 'published' AND NOT is_deleted
		ORDER BY published_at DESC NULLS LAST
		LIMIT $2`, authorID, limit)
	return blogs, err
}

func (r *blogRepository) ListForExport(ctx context.Context) ([]domain.BlogExportRow, error) {
	var rows []domain.BlogExportRow
	err := r.db.SelectContext(ctx, &rows, `
		SELECT b.id::text AS id, b.title, TRIM(u.first_name || ' ' || u.last_name) AS author, b.status,
			b.views, b.likes, b.comments, b.created_at
		FROM blogs b
		JOIN users u ON u.id = b.author_id
		WHERE NOT b.is_deleted
		ORDER BY b.created_at DESC`)
	return rows, err
}

func expectRows(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
