package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"ls-tech-blogs/internal/domain"
)

type InteractionRepository struct {
	mock.Mock
}

func (m *InteractionRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Interaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Interaction), args.Error(1)
}

func (m *InteractionRepository) HasLiked(ctx context.Context, blogID uuid.UUID, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, blogID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *InteractionRepository) CreateLike(ctx context.Context, like *domain.Interaction) error {
	args := m.Called(ctx, like)
	return args.Error(0)
}

func (m *InteractionRepository) CreateComment(ctx context.Context, comment *domain.Interaction) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *InteractionRepository) SoftDelete(ctx context.Context, interaction *domain.Interaction) (int64, error) {
	args := m.Called(ctx, interaction)
	return args.Get(0).(int64), args.Error(1)
}

func (m *InteractionRepository) UpdateContent(ctx context.Context, id uuid.UUID, content string, updatedBy uuid.UUID) error {
	args := m.Called(ctx, id, content, updatedBy)
	return args.Error(0)
}

func (m *InteractionRepository) LikeComment(ctx context.Context, id uuid.UUID, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, id, userID)
	return args.Bool(0), args.Error(1)
}

func (m *InteractionRepository) UnlikeComment(ctx context.Context, id uuid.UUID, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, id, userID)
	return args.Bool(0), args.Error(1)
}

func (m *InteractionRepository) ListComments(ctx context.Context, blogID uuid.UUID, params domain.PaginationParams) ([]domain.Interaction, int64, error) {
	args := m.Called(ctx, blogID, params)
	var r0 []domain.Interaction
	if v := args.Get(0); v != nil {
		r0 = v.([]domain.Interaction)
	}
	return r0, args.Get(1).(int64), args.Error(2)
}

func (m *InteractionRepository) ListReplies(ctx context.Context, parentID uuid.UUID, skip int, limit int) ([]domain.Interaction, int64, error) {
	args := m.Called(ctx, parentID, skip, limit)
	var r0 []domain.Interaction
	if v := args.Get(0); v != nil {
		r0 = v.([]domain.Interaction)
	}
	return r0, args.Get(1).(int64), args.Error(2)
}

func (m *InteractionRepository) ListLikes(ctx context.Context, blogID uuid.UUID) ([]domain.Interaction, error) {
	args := m.Called(ctx, blogID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Interaction), args.Error(1)
}

func (m *InteractionRepository) ListAdmin(ctx context.Context, filter domain.CommentFilter, params domain.PaginationParams) ([]domain.Interaction, int64, error) {
	args := m.Called(ctx, filter, params)
	var r0 []domain.Interaction
	if v := args.Get(0); v != nil {
		r0 = v.([]domain.Interaction)
	}
	return r0, args.Get(1).(int64), args.Error(2)
}

func (m *InteractionRepository) ListForExport(ctx context.Context) ([]domain.CommentExportRow, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CommentExportRow), args.Error(1)
}
