package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"ls-tech-blogs/internal/domain"
)

type ReportRepository struct {
	mock.Mock
}

func (m *ReportRepository) Create(ctx context.Context, report *domain.Report) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}

func (m *ReportRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Report, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Report), args.Error(1)
}

func (m *ReportRepository) List(ctx context.Context, status string, params domain.PaginationParams) ([]domain.Report, int64, error) {
	args := m.Called(ctx, status, params)
	var r0 []domain.Report
	if v := args.Get(0); v != nil {
		r0 = v.([]domain.Report)
	}
	return r0, args.Get(1).(int64), args.Error(2)
}

func (m *ReportRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.ReportStatus, reviewedBy uuid.UUID) error {
	args := m.Called(ctx, id, status, reviewedBy)
	return args.Error(0)
}
