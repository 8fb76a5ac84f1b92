package bookmark

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"ls-tech-blogs/internal/domain"
	"ls-tech-blogs/internal/repository"
)

var ErrBlogNotFound = errors.New("blog not found")

type Service interface {
	Toggle(ctx context.Context, userID, blogID uuid.UUID) (bool, error)
	List(ctx context.Context, userID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.Blog], error)
}

type service struct {
	bookmarkRepo repository.BookmarkRepository
	blogRepo     repository.BlogRepository
}

func NewService(bookmarkRepo repository.BookmarkRepository, blogRepo repository.BlogRepository) Service {
	return &service{bookmarkRepo: bookmarkRepo, blogRepo: blogRepo}
}

// Toggle flips the bookmark and reports whether the blog is bookmarked afterwards.
func (s *service) Toggle(ctx context.Context, userID, blogID uuid.UUID) (bool, error) {
	exists, err := s.bookmarkRepo.Exists(ctx, userID, blogID)
	if err != nil {
		return false, err
	}
	if exists {
		return false, s.bookmarkRepo.Remove(ctx, userID, blogID)
	}

	blog, err := s.blogRepo.GetByID(ctx, blogID)
	if err != nil {
		return false, err
	}
	if blog == nil || !blog.IsPublished() {
		return false, ErrBlogNotFound
	}

	if err := s.bookmarkRepo.Add(ctx, userID, blogID); err != nil {
		return false, err
	}
	return true, nil
}

func (s *service) List(ctx context.Context, userID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.Blog], error) {
	params.Validate()

	blogs, total, err := s.bookmarkRepo.ListBlogs(ctx, userID, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Blog]{}, err
	}
	return domain.NewPaginatedResponse(blogs, params.Page, params.PageSize, total), nil
}
