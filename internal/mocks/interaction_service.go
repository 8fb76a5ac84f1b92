package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"ls-tech-blogs/internal/domain"
	"ls-tech-blogs/internal/service/notification"
)

type InteractionService struct {
	mock.Mock
}

func (m *InteractionService) PostInteraction(ctx context.Context, blogID uuid.UUID, actor *domain.User, input domain.PostInteractionInput) (*domain.InteractionResult, error) {
	args := m.Called(ctx, blogID, actor, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InteractionResult), args.Error(1)
}

func (m *InteractionService) LikeCommentOrReply(ctx context.Context, id uuid.UUID, actor *domain.User, action domain.CommentLikeAction) (*domain.InteractionResult, error) {
	args := m.Called(ctx, id, actor, action)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InteractionResult), args.Error(1)
}

func (m *InteractionService) DeleteInteraction(ctx context.Context, id uuid.UUID, actor *domain.User) (int64, error) {
	args := m.Called(ctx, id, actor)
	return args.Get(0).(int64), args.Error(1)
}

func (m *InteractionService) GetComments(ctx context.Context, blogID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.Interaction], error) {
	args := m.Called(ctx, blogID, params)
	return args.Get(0).(domain.PaginatedResponse[domain.Interaction]), args.Error(1)
}

func (m *InteractionService) GetReplies(ctx context.Context, commentID uuid.UUID, query domain.ReplyQuery) (*domain.ReplyPage, error) {
	args := m.Called(ctx, commentID, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReplyPage), args.Error(1)
}

func (m *InteractionService) GetLikes(ctx context.Context, blogID uuid.UUID) ([]domain.Interaction, error) {
	args := m.Called(ctx, blogID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Interaction), args.Error(1)
}

func (m *InteractionService) UpdateComment(ctx context.Context, id uuid.UUID, actor *domain.User, content string) (*domain.InteractionResult, error) {
	args := m.Called(ctx, id, actor, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InteractionResult), args.Error(1)
}

func (m *InteractionService) ListComments(ctx context.Context, filter domain.CommentFilter, params domain.PaginationParams) (domain.PaginatedResponse[domain.Interaction], error) {
	args := m.Called(ctx, filter, params)
	return args.Get(0).(domain.PaginatedResponse[domain.Interaction]), args.Error(1)
}

func (m *InteractionService) SetNotificationService(notifService notification.Service) {
	m.Called(notifService)
}
