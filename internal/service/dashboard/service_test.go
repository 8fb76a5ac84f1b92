package dashboard_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ls-tech-blogs/internal/domain"
	"ls-tech-blogs/internal/mocks"
	"ls-tech-blogs/internal/service/dashboard"
)

func TestGetStats(t *testing.T) {
	ctx := context.Background()

	t.Run("Leaderboards are never null", func(t *testing.T) {
		stats := new(mocks.StatsRepository)
		svc := dashboard.NewService(stats, nil)

		stats.On("Totals", ctx).Return(&domain.DashboardStats{TotalUsers: 4, PublishedBlogs: 2}, nil).Once()
		stats.On("TopAuthors", ctx, 5).Return(nil, nil).Once()
		stats.On("PopularBlogs", ctx, 5).Return(nil, nil).Once()

		got, err := svc.GetStats(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(4), got.TotalUsers)
		assert.NotNil(t, got.TopAuthors)
		assert.NotNil(t, got.PopularBlogs)
		assert.False(t, got.GeneratedAt.IsZero())
	})

	t.Run("Repository failure", func(t *testing.T) {
		stats := new(mocks.StatsRepository)
		svc := dashboard.NewService(stats, nil)
		stats.On("Totals", ctx).Return(nil, errors.New("db down")).Once()

		_, err := svc.GetStats(ctx)
		assert.Error(t, err)
	})

	t.Run("Leaderboard failure", func(t *testing.T) {
		stats := new(mocks.StatsRepository)
		svc := dashboard.NewService(stats, nil)
		stats.On("Totals", ctx).Return(&domain.DashboardStats{}, nil).Once()
		stats.On("TopAuthors", ctx, 5).Return(nil, errors.New("timeout")).Once()

		_, err := svc.GetStats(ctx)
		assert.ErrorContains(t, err, "top authors")
		stats.AssertNotCalled(t, "PopularBlogs", ctx, 5)
	})
}
