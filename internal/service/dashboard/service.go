package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"ls-tech-blogs/internal/domain"
	"ls-tech-blogs/internal/repository"
)

const (
	cacheKey        = "dashboard:stats"
	cacheTTL        = 5 * time.Minute
	leaderboardSize = 5
)

type Service interface {
	GetStats(ctx context.Context) (*domain.DashboardStats, error)
}

type service struct {
	statsRepo repository.StatsRepository
	redis     *redis.Client
	now       func() time.Time
}

func NewService(statsRepo repository.StatsRepository, redis *redis.Client) Service {
	return &service{
		statsRepo: statsRepo,
		redis:     redis,
		now:       time.Now,
	}
}

// GetStats serves the cached snapshot while it is fresh. GeneratedAt tells the
// console how old the numbers are.
func (s *service) GetStats(ctx context.Context) (*domain.DashboardStats, error) {
	if stats := s.fromCache(ctx); stats != nil {
		return stats, nil
	}

	stats, err := s.compute(ctx)
	if err != nil {
		return nil, err
	}
	s.store(ctx, stats)
	return stats, nil
}

func (s *service) compute(ctx context.Context) (*domain.DashboardStats, error) {
	stats, err := s.statsRepo.Totals(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard totals: %w", err)
	}

	authors, err := s.statsRepo.TopAuthors(ctx, leaderboardSize)
	if err != nil {
		return nil, fmt.Errorf("dashboard top authors: %w", err)
	}
	blogs, err := s.statsRepo.PopularBlogs(ctx, leaderboardSize)
	if err != nil {
		return nil, fmt.Errorf("dashboard popular blogs: %w", err)
	}

	stats.TopAuthors = nonNil(authors)
	stats.PopularBlogs = nonNil(blogs)
	stats.GeneratedAt = s.now().UTC()
	return stats, nil
}

func (s *service) fromCache(ctx context.Context) *domain.DashboardStats {
	if s.redis == nil {
		return nil
	}
	raw, err := s.redis.Get(ctx, cacheKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logrus.WithError(err).Warn("dashboard cache read failed")
		}
		return nil
	}
	var stats domain.DashboardStats
	if err := json.Unmarshal(raw, &stats); err != nil {
		return nil
	}
	return &stats
}

func (s *service) store(ctx context.Context, stats *domain.DashboardStats) {
	if s.redis == nil {
		return
	}
	raw, err := json.Marshal(stats)
	if err != nil {
		return
	}
	if err := s.redis.Set(ctx, cacheKey, raw, cacheTTL).Err(); err != nil {
		logrus.WithError(err).Warn("failed to cache dashboard stats")
	}
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
