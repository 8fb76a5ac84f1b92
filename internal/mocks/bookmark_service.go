package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"ls-tech-blogs/internal/domain"
)

type BookmarkService struct {
	mock.Mock
}

func (m *BookmarkService) Toggle(ctx context.Context, userID uuid.UUID, blogID uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID, blogID)
	return args.Bool(0), args.Error(1)
}

func (m *BookmarkService) List(ctx context.Context, userID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.Blog], error) {
	args := m.Called(ctx, userID, params)
	return args.Get(0).(domain.PaginatedResponse[domain.Blog]), args.Error(1)
}
