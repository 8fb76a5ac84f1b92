package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"ls-tech-blogs/internal/domain"
)

type BlogRepository struct {
	mock.Mock
}

func (m *BlogRepository) Create(ctx context.Context, blog *domain.Blog) error {
	args := m.Called(ctx, blog)
	return args.Error(0)
}

func (m *BlogRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Blog, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Blog), args.Error(1)
}

func (m *BlogRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]domain.Blog, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uuid.UUID]domain.Blog), args.Error(1)
}

func (m *BlogRepository) Update(ctx context.Context, blog *domain.Blog) error {
	args := m.Called(ctx, blog)
	return args.Error(0)
}

func (m *BlogRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.BlogStatus, publishedAt *time.Time) error {
	args := m.Called(ctx, id, status, publishedAt)
	return args.Error(0)
}

func (m *BlogRepository) MarkAnnounced(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *BlogRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *BlogRepository) IncrementViews(ctx context.Context, id uuid.UUID) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *BlogRepository) List(ctx context.Context, filter domain.BlogFilter, params domain.PaginationParams) ([]domain.Blog, int64, error) {
	args := m.Called(ctx, filter, params)
	var r0 []domain.Blog
	if v := args.Get(0); v != nil {
		r0 = v.([]domain.Blog)
	}
	return r0, args.Get(1).(int64), args.Error(2)
}

func (m *BlogRepository) LatestByAuthor(ctx context.Context, authorID uuid.UUID, limit int) ([]domain.Blog, error) {
	args := m.Called(ctx, authorID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Blog), args.Error(1)
}

func (m *BlogRepository) ListForExport(ctx context.Context) ([]domain.BlogExportRow, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BlogExportRow), args.Error(1)
}
