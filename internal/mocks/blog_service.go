package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"ls-tech-blogs/internal/domain"
	"ls-tech-blogs/internal/service/notification"
)

type BlogService struct {
	mock.Mock
}

func (m *BlogService) Create(ctx context.Context, actor *domain.User, input domain.CreateBlogInput) (*domain.Blog, error) {
	args := m.Called(ctx, actor, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Blog), args.Error(1)
}

func (m *BlogService) Update(ctx context.Context, id uuid.UUID, actor *domain.User, input domain.UpdateBlogInput) (*domain.Blog, error) {
	args := m.Called(ctx, id, actor, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Blog), args.Error(1)
}

func (m *BlogService) Publish(ctx context.Context, id uuid.UUID, actor *domain.User) (*domain.Blog, error) {
	args := m.Called(ctx, id, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Blog), args.Error(1)
}

func (m *BlogService) Unpublish(ctx context.Context, id uuid.UUID, actor *domain.User) (*domain.Blog, error) {
	args := m.Called(ctx, id, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Blog), args.Error(1)
}

func (m *BlogService) Delete(ctx context.Context, id uuid.UUID, actor *domain.User) error {
	args := m.Called(ctx, id, actor)
	return args.Error(0)
}

func (m *BlogService) Get(ctx context.Context, id uuid.UUID, viewer *domain.User) (*domain.Blog, error) {
	args := m.Called(ctx, id, viewer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Blog), args.Error(1)
}

func (m *BlogService) List(ctx context.Context, filter domain.BlogFilter, params domain.PaginationParams, viewer *domain.User) (domain.PaginatedResponse[domain.Blog], error) {
	args := m.Called(ctx, filter, params, viewer)
	return args.Get(0).(domain.PaginatedResponse[domain.Blog]), args.Error(1)
}

func (m *BlogService) ListMine(ctx context.Context, actor *domain.User, status domain.BlogStatus, params domain.PaginationParams) (domain.PaginatedResponse[domain.Blog], error) {
	args := m.Called(ctx, actor, status, params)
	return args.Get(0).(domain.PaginatedResponse[domain.Blog]), args.Error(1)
}

func (m *BlogService) AdminList(ctx context.Context, filter domain.BlogFilter, params domain.PaginationParams) (domain.PaginatedResponse[domain.Blog], error) {
	args := m.Called(ctx, filter, params)
	return args.Get(0).(domain.PaginatedResponse[domain.Blog]), args.Error(1)
}

func (m *BlogService) SetNotificationService(notifService notification.Service) {
	m.Called(notifService)
}
