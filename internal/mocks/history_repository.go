package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"ls-tech-blogs/internal/domain"
)

type HistoryRepository struct {
	mock.Mock
}

func (m *HistoryRepository) GetForDay(ctx context.Context, userID string, day time.Time) (*domain.History, error) {
	args := m.Called(ctx, userID, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.History), args.Error(1)
}

func (m *HistoryRepository) Save(ctx context.Context, history *domain.History) error {
	args := m.Called(ctx, history)
	return args.Error(0)
}

func (m *HistoryRepository) ListRecent(ctx context.Context, userID string, days int) ([]domain.History, error) {
	args := m.Called(ctx, userID, days)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.History), args.Error(1)
}

func (m *HistoryRepository) Latest(ctx context.Context, userID string) (*domain.History, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.History), args.Error(1)
}
