package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"ls-tech-blogs/internal/domain"
	"ls-tech-blogs/internal/service/notification"
)

type NotificationService struct {
	mock.Mock
}

func (m *NotificationService) Send(ctx context.Context, actor *domain.User, input domain.SendNotificationInput) ([]domain.Notification, error) {
	args := m.Called(ctx, actor, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Notification), args.Error(1)
}

func (m *NotificationService) NotifyBlogPublished(ctx context.Context, blog *domain.Blog, author *domain.User) error {
	args := m.Called(ctx, blog, author)
	return args.Error(0)
}

func (m *NotificationService) NotifyInteraction(ctx context.Context, notice notification.InteractionNotice) error {
	args := m.Called(ctx, notice)
	return args.Error(0)
}

func (m *NotificationService) List(ctx context.Context, userID uuid.UUID, unreadOnly bool, params domain.PaginationParams) (*domain.NotificationList, error) {
	args := m.Called(ctx, userID, unreadOnly, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.NotificationList), args.Error(1)
}

func (m *NotificationService) MarkAsRead(ctx context.Context, id uuid.UUID, actor *domain.User) error {
	args := m.Called(ctx, id, actor)
	return args.Error(0)
}

func (m *NotificationService) MarkAllAsRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *NotificationService) GetUnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *NotificationService) ListAll(ctx context.Context, filter domain.NotificationFilter, params domain.PaginationParams) (domain.PaginatedResponse[domain.AdminNotificationItem], error) {
	args := m.Called(ctx, filter, params)
	return args.Get(0).(domain.PaginatedResponse[domain.AdminNotificationItem]), args.Error(1)
}

func (m *NotificationService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
