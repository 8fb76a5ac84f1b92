package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"ls-tech-blogs/internal/domain"
)

type BookmarkRepository struct {
	mock.Mock
}

func (m *BookmarkRepository) Exists(ctx context.Context, userID uuid.UUID, blogID uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID, blogID)
	return args.Bool(0), args.Error(1)
}

func (m *BookmarkRepository) Add(ctx context.Context, userID uuid.UUID, blogID uuid.UUID) error {
	args := m.Called(ctx, userID, blogID)
	return args.Error(0)
}

func (m *BookmarkRepository) Remove(ctx context.Context, userID uuid.UUID, blogID uuid.UUID) error {
	args := m.Called(ctx, userID, blogID)
	return args.Error(0)
}

func (m *BookmarkRepository) ListBlogs(ctx context.Context, userID uuid.UUID, params domain.PaginationParams) ([]domain.Blog, int64, error) {
	args := m.Called(ctx, userID, params)
	var r0 []domain.Blog
	if v := args.Get(0); v != nil {
		r0 = v.([]domain.Blog)
	}
	return r0, args.Get(1).(int64), args.Error(2)
}
