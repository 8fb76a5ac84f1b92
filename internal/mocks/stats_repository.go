package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"ls-tech-blogs/internal/domain"
)

type StatsRepository struct {
	mock.Mock
}

func (m *StatsRepository) Totals(ctx context.Context) (*domain.DashboardStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DashboardStats), args.Error(1)
}

func (m *StatsRepository) TopAuthors(ctx context.Context, limit int) ([]domain.AuthorStat, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AuthorStat), args.Error(1)
}

func (m *StatsRepository) PopularBlogs(ctx context.Context, limit int) ([]domain.PopularBlog, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PopularBlog), args.Error(1)
}
