package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"ls-tech-blogs/internal/domain"
)

type HistoryService struct {
	mock.Mock
}

func (m *HistoryService) RecordSearch(ctx context.Context, userID uuid.UUID, input domain.SearchHistoryInput) (*domain.History, error) {
	args := m.Called(ctx, userID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.History), args.Error(1)
}

func (m *HistoryService) RecordRead(ctx context.Context, userID uuid.UUID, blogID uuid.UUID, readingTime int) error {
	args := m.Called(ctx, userID, blogID, readingTime)
	return args.Error(0)
}

func (m *HistoryService) GetReadingHistory(ctx context.Context, userID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.ReadingHistoryItem], error) {
	args := m.Called(ctx, userID, params)
	return args.Get(0).(domain.PaginatedResponse[domain.ReadingHistoryItem]), args.Error(1)
}

func (m *HistoryService) LatestSearch(ctx context.Context, userID uuid.UUID) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}
