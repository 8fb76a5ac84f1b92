package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"ls-tech-blogs/internal/domain"
)

// InteractionRepository keeps blog and parent counters in step with the interaction rows.
// Every write that touches a counter runs in a single transaction using in-place increments.
type InteractionRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Interaction, error)
	HasLiked(ctx context.Context, blogID, userID uuid.UUID) (bool, error)
	CreateLike(ctx context.Context, like *domain.Interaction) error
	CreateComment(ctx context.Context, comment *domain.Interaction) error
	SoftDelete(ctx context.Context, interaction *domain.Interaction) (int64, error)
	UpdateContent(ctx context.Context, id uuid.UUID, content string, updatedBy uuid.UUID) error
	LikeComment(ctx context.Context, id, userID uuid.UUID) (bool, error)
	UnlikeComment(ctx context.Context, id, userID uuid.UUID) (bool, error)
	ListComments(ctx context.Context, blogID uuid.UUID, params domain.PaginationParams) ([]domain.Interaction, int64, error)
	ListReplies(ctx context.Context, parentID uuid.UUID, skip, limit int) ([]domain.Interaction, int64, error)
	ListLikes(ctx context.Context, blogID uuid.UUID) ([]domain.Interaction, error)
	ListAdmin(ctx context.Context, filter domain.CommentFilter, params domain.PaginationParams) ([]domain.Interaction, int64, error)
	ListForExport(ctx context.Context) ([]domain.CommentExportRow, error)
}

type interactionRow struct {
	domain.Interaction
	CreatorUsername     string  `db:"creator_username"`
	CreatorFirstName    string  `db:"creator_first_name"`
	CreatorLastName     string  `db:"creator_last_name"`
	CreatorEmail        string  `db:"creator_email"`
	CreatorProfileImage *string `db:"creator_profile_image"`
}

func (r interactionRow) toDomain() domain.Interaction {
	in := r.Interaction
	in.Creator = &domain.UserSummary{
		ID:           r.CreatedBy,
		Username:     r.CreatorUsername,
		FirstName:    r.CreatorFirstName,
		LastName:     r.CreatorLastName,
		Email:        r.CreatorEmail,
		ProfileImage: r.CreatorProfileImage,
	}
	return in
}

const interactionSelect = `
	SELECT i.*, u.username AS creator_username, u.first_name AS creator_first_name,
		u.last_name AS creator_last_name, u.email AS creator_email, u.profile_image AS creator_profile_image
	FROM blog_interactions i
	JOIN users u ON u.id = i.created_by`

type interactionRepository struct {
	db *sqlx.DB
}

func NewInteractionRepository(db *sqlx.DB) InteractionRepository {
	return &interactionRepository{db: db}
}

func (r *interactionRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Interaction, error) {
	var row interactionRow
	err := r.db.GetContext(ctx, &row, interactionSelect+` WHERE i.id = $1 AND NOT i.is_deleted`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	in := row.toDomain()
	return &in, nil
}

func (r *interactionRepository) HasLiked(ctx context.Context, blogID, userID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `
		SELECT EXISTS(
			SELECT 1 FROM blog_interactions
			WHERE blog_id = $1 AND created_by = $2 AND category = 'like' AND NOT is_deleted
		)`, blogID, userID)
	return exists, err
}

func insertInteraction(ctx context.Context, tx *sqlx.Tx, in *domain.Interaction) error {
	query := `
		INSERT INTO blog_interactions (id, category, blog_id, created_by, parent_id, content, attachments, is_reply)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING likes, reply_count, created_at, updated_at`

	return tx.QueryRowxContext(ctx, query,
		in.ID, in.Category, in.BlogID, in.CreatedBy, in.ParentID, in.Content, in.Attachments, in.IsReply,
	).Scan(&in.Likes, &in.ReplyCount, &in.CreatedAt, &in.UpdatedAt)
}

// CreateLike relies on the partial unique index over live likes; a second like maps to ErrDuplicate.
func (r *interactionRepository) CreateLike(ctx context.Context, like *domain.Interaction) error {
	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if err := insertInteraction(ctx, tx, like); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, `UPDATE blogs SET likes = likes + 1 WHERE id = $1`, like.BlogID)
		return err
	})
	if IsUniqueViolation(err) {
		return ErrDuplicate
	}
	return err
}

func (r *interactionRepository) CreateComment(ctx context.Context, comment *domain.Interaction) error {
	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if comment.ParentID != nil {
			res, err := tx.ExecContext(ctx, `
				UPDATE blog_interactions SET reply_count = reply_count + 1
				WHERE id = $1 AND blog_id = $2 AND category = 'comment' AND NOT is_deleted`,
				*comment.ParentID, comment.BlogID)
			if err != nil {
				return err
			}
			if err := expectRows(res); err != nil {
				return err
			}
		}
		if err := insertInteraction(ctx, tx, comment); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, `UPDATE blogs SET comments = comments + 1 WHERE id = $1`, comment.BlogID)
		return err
	})
}

// SoftDelete returns how many replies were removed along with a top-level comment.
func (r *interactionRepository) SoftDelete(ctx context.Context, in *domain.Interaction) (int64, error) {
	var cascaded int64
	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, `
			UPDATE blog_interactions SET is_deleted = TRUE, updated_at = NOW()
			WHERE id = $1 AND NOT is_deleted`, in.ID)
		if err != nil {
			return err
		}
		if err := expectRows(res); err != nil {
			return err
		}

		if in.Category == domain.CategoryLike {
			_, err = tx.ExecContext(ctx, `UPDATE blogs SET likes = GREATEST(likes - 1, 0) WHERE id = $1`, in.BlogID)
			return err
		}

		if in.ParentID == nil {
			res, err := tx.ExecContext(ctx, `
				UPDATE blog_interactions SET is_deleted = TRUE, updated_at = NOW()
				WHERE parent_id = $1 AND NOT is_deleted`, in.ID)
			if err != nil {
				return err
			}
			if cascaded, err = res.RowsAffected(); err != nil {
				return err
			}
		} else {
			_, err = tx.ExecContext(ctx, `
				UPDATE blog_interactions SET reply_count = GREATEST(reply_count - 1, 0)
				WHERE id = $1`, *in.ParentID)
			if err != nil {
				return err
			}
		}

		_, err = tx.ExecContext(ctx, `UPDATE blogs SET comments = GREATEST(comments - $2, 0) WHERE id = $1`,
			in.BlogID, 1+cascaded)
		return err
	})
	if err != nil {
		return 0, err
	}
	return cascaded, nil
}

func (r *interactionRepository) UpdateContent(ctx context.Context, id uuid.UUID, content string, updatedBy uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE blog_interactions SET content = $2, updated_by = $3, updated_at = NOW()
		WHERE id = $1 AND category = 'comment' AND NOT is_deleted`, id, content, updatedBy)
	if err != nil {
		return err
	}
	return expectRows(res)
}

func (r *interactionRepository) LikeComment(ctx context.Context, id, userID uuid.UUID) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE blog_interactions
		SET liked_by = array_append(liked_by, $2::uuid), likes = likes + 1
		WHERE id = $1 AND category = 'comment' AND NOT is_deleted AND NOT ($2::uuid = ANY(liked_by))`, id, userID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *interactionRepository) UnlikeComment(ctx context.Context, id, userID uuid.UUID) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE blog_interactions
		SET liked_by = array_remove(liked_by, $2::uuid), likes = GREATEST(likes - 1, 0)
		WHERE id = $1 AND category = 'comment' AND NOT is_deleted AND $2::uuid = ANY(liked_by)`, id, userID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *interactionRepository) selectRows(ctx context.Context, query string, args ...any) ([]domain.Interaction, error) {
	var rows []interactionRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}
	out := make([]domain.Interaction, len(rows))
	for i, row := range rows {
		out[i] = row.toDomain()
	}
	return out, nil
}

func (r *interactionRepository) ListComments(ctx context.Context, blogID uuid.UUID, params domain.PaginationParams) ([]domain.Interaction, int64, error) {
	params.Validate()

	const where = ` WHERE i.blog_id = $1 AND i.category = 'comment' AND i.parent_id IS NULL AND NOT i.is_deleted`

	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM blog_interactions i`+where, blogID); err != nil {
		return nil, 0, err
	}

	comments, err := r.selectRows(ctx, interactionSelect+where+` ORDER BY i.created_at DESC LIMIT $2 OFFSET $3`,
		blogID, params.PageSize, params.Offset())
	return comments, total, err
}

func (r *interactionRepository) ListReplies(ctx context.Context, parentID uuid.UUID, skip, limit int) ([]domain.Interaction, int64, error) {
	const where = ` WHERE i.parent_id = $1 AND i.category = 'comment' AND NOT i.is_deleted`

	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM blog_interactions i`+where, parentID); err != nil {
		return nil, 0, err
	}

	replies, err := r.selectRows(ctx, interactionSelect+where+` ORDER BY i.updated_at DESC LIMIT $2 OFFSET $3`,
		parentID, limit, skip)
	return replies, total, err
}

type likeRow struct {
	interactionRow
	BlogTitle              string    `db:"blog_title"`
	BlogAuthorID           uuid.UUID `db:"blog_author_id"`
	BlogAuthorUsername     string    `db:"blog_author_username"`
	BlogAuthorFirstName    string    `db:"blog_author_first_name"`
	BlogAuthorLastName     string    `db:"blog_author_last_name"`
	BlogAuthorProfileImage *string   `db:"blog_author_profile_image"`
}

func (r *interactionRepository) ListLikes(ctx context.Context, blogID uuid.UUID) ([]domain.Interaction, error) {
	var rows []likeRow
	err := r.db.SelectContext(ctx, &rows, `
		SELECT i.*, u.username AS creator_username, u.first_name AS creator_first_name,
			u.last_name AS creator_last_name, u.email AS creator_email, u.profile_image AS creator_profile_image,
			b.title AS blog_title, a.id AS blog_author_id, a.username AS blog_author_username,
			a.first_name AS blog_author_first_name, a.last_name AS blog_author_last_name,
			a.profile_image AS blog_author_profile_image
		FROM blog_interactions i
		JOIN users u ON u.id = i.created_by
		JOIN blogs b ON b.id = i.blog_id
		JOIN users a ON a.id = b.author_id
		WHERE i.blog_id = $1 AND i.category = 'like' AND NOT i.is_deleted
		ORDER BY i.created_at DESC`, blogID)
	if err != nil {
		return nil, err
	}

	likes := make([]domain.Interaction, len(rows))
	for i, row := range rows {
		like := row.toDomain()
		like.BlogTitle = row.BlogTitle
		like.BlogAuthor = &domain.UserSummary{
			ID:           row.BlogAuthorID,
			Username:     row.BlogAuthorUsername,
			FirstName:    row.BlogAuthorFirstName,
			LastName:     row.BlogAuthorLastName,
			ProfileImage: row.BlogAuthorProfileImage,
		}
		likes[i] = like
	}
	return likes, nil
}

func (r *interactionRepository) ListAdmin(ctx context.Context, filter domain.CommentFilter, params domain.PaginationParams) ([]domain.Interaction, int64, error) {
	params.Validate()

	conds := []string{"i.category = 'comment'", "NOT i.is_deleted"}
	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	if filter.Search != "" {
		conds = append(conds, "i.content ILIKE "+arg(containsPattern(filter.Search)))
	}
	if filter.BlogID != nil {
		conds = append(conds, "i.blog_id = "+arg(*filter.BlogID))
	}
	if filter.UserID != nil {
		conds = append(conds, "i.created_by = "+arg(*filter.UserID))
	}
	where := " WHERE " + strings.Join(conds, " AND ")

	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM blog_interactions i`+where, args...); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf("%s%s ORDER BY i.created_at DESC LIMIT %s OFFSET %s",
		interactionSelect, where, arg(params.PageSize), arg(params.Offset()))
	comments, err := r.selectRows(ctx, query, args...)
	return comments, total, err
}

func (r *interactionRepository) ListForExport(ctx context.Context) ([]domain.CommentExportRow, error) {
	var rows []domain.CommentExportRow
	err := r.db.SelectContext(ctx, &rows, `
		SELECT i.id::text AS id, COALESCE(i.content, '') AS content,
			TRIM(u.first_name || ' ' || u.last_name) AS author, b.title AS blog_title, i.likes, i.created_at
		FROM blog_interactions i
		JOIN users u ON u.id = i.created_by
		JOIN blogs b ON b.id = i.blog_id
		WHERE i.category = 'comment' AND NOT i.is_deleted
		ORDER BY i.created_at DESC`)
	return rows, err
}
