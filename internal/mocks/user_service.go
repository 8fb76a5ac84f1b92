package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"ls-tech-blogs/internal/domain"
)

type UserService struct {
	mock.Mock
}

func (m *UserService) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *UserService) UpdateProfile(ctx context.Context, actor *domain.User, input domain.UpdateProfileInput) (*domain.User, error) {
	args := m.Called(ctx, actor, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *UserService) SetProfileImage(ctx context.Context, actor *domain.User, imageURL string) (*domain.User, error) {
	args := m.Called(ctx, actor, imageURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *UserService) GetPublicProfile(ctx context.Context, id uuid.UUID) (*domain.PublicProfile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PublicProfile), args.Error(1)
}

func (m *UserService) List(ctx context.Context, filter domain.UserFilter, params domain.PaginationParams) (domain.PaginatedResponse[domain.User], error) {
	args := m.Called(ctx, filter, params)
	return args.Get(0).(domain.PaginatedResponse[domain.User]), args.Error(1)
}

func (m *UserService) UpdateRole(ctx context.Context, actor *domain.User, id uuid.UUID, role domain.UserRole) (*domain.User, error) {
	args := m.Called(ctx, actor, id, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *UserService) SetActive(ctx context.Context, actor *domain.User, id uuid.UUID, active bool) (*domain.User, error) {
	args := m.Called(ctx, actor, id, active)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
