package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"ls-tech-blogs/internal/domain"
)

type AuditService struct {
	mock.Mock
}

func (m *AuditService) Record(ctx context.Context, input domain.RecordAuditInput) error {
	args := m.Called(ctx, input)
	return args.Error(0)
}

func (m *AuditService) List(ctx context.Context, filter domain.AuditFilter, params domain.PaginationParams) (domain.PaginatedResponse[domain.AuditLog], error) {
	args := m.Called(ctx, filter, params)
	return args.Get(0).(domain.PaginatedResponse[domain.AuditLog]), args.Error(1)
}
