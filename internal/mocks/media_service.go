package mocks

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/mock"

	"ls-tech-blogs/internal/domain"
	"ls-tech-blogs/internal/service/media"
)

type MediaService struct {
	mock.Mock
}

func (m *MediaService) Upload(ctx context.Context, userID uuid.UUID, input media.UploadInput) (*domain.Media, error) {
	args := m.Called(ctx, userID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Media), args.Error(1)
}

func (m *MediaService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Media, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Media), args.Error(1)
}

func (m *MediaService) Delete(ctx context.Context, id uuid.UUID, actor *domain.User) error {
	args := m.Called(ctx, id, actor)
	return args.Error(0)
}

func (m *MediaService) ListMine(ctx context.Context, userID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.Media], error) {
	args := m.Called(ctx, userID, params)
	return args.Get(0).(domain.PaginatedResponse[domain.Media]), args.Error(1)
}

type ObjectStorage struct {
	mock.Mock
}

func (m *ObjectStorage) PutObject(ctx context.Context, bucketName string, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	args := m.Called(ctx, bucketName, objectName, reader, objectSize, opts)
	return args.Get(0).(minio.UploadInfo), args.Error(1)
}

func (m *ObjectStorage) RemoveObject(ctx context.Context, bucketName string, objectName string, opts minio.RemoveObjectOptions) error {
	args := m.Called(ctx, bucketName, objectName, opts)
	return args.Error(0)
}
