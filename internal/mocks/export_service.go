package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"ls-tech-blogs/internal/domain"
)

type ExportService struct {
	mock.Mock
}

func (m *ExportService) Export(ctx context.Context, exportType domain.ExportType) (*domain.ExportFile, error) {
	args := m.Called(ctx, exportType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExportFile), args.Error(1)
}
