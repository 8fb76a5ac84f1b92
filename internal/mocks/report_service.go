package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"ls-tech-blogs/internal/domain"
)

type ReportService struct {
	mock.Mock
}

func (m *ReportService) Create(ctx context.Context, reporter *domain.User, input domain.CreateReportInput) (*domain.Report, error) {
	args := m.Called(ctx, reporter, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Report), args.Error(1)
}

func (m *ReportService) List(ctx context.Context, status string, params domain.PaginationParams) (domain.PaginatedResponse[domain.Report], error) {
	args := m.Called(ctx, status, params)
	return args.Get(0).(domain.PaginatedResponse[domain.Report]), args.Error(1)
}

func (m *ReportService) UpdateStatus(ctx context.Context, id uuid.UUID, reviewer *domain.User, status domain.ReportStatus) (*domain.Report, error) {
	args := m.Called(ctx, id, reviewer, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Report), args.Error(1)
}
