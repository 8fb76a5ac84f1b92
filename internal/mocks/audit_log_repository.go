package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"ls-tech-blogs/internal/domain"
)

type AuditLogRepository struct {
	mock.Mock
}

func (m *AuditLogRepository) Create(ctx context.Context, log *domain.AuditLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *AuditLogRepository) List(ctx context.Context, filter domain.AuditFilter, params domain.PaginationParams) ([]domain.AuditLog, int64, error) {
	args := m.Called(ctx, filter, params)
	var r0 []domain.AuditLog
	if v := args.Get(0); v != nil {
		r0 = v.([]domain.AuditLog)
	}
	return r0, args.Get(1).(int64), args.Error(2)
}
