package bookmark_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"ls-tech-blogs/internal/domain"
	"ls-tech-blogs/internal/mocks"
	"ls-tech-blogs/internal/service/bookmark"
)

func TestToggle(t *testing.T) {
	ctx := context.Background()
	userID, blogID := uuid.New(), uuid.New()

	t.Run("Adds when absent", func(t *testing.T) {
		bookmarks, blogs := new(mocks.BookmarkRepository), new(mocks.BlogRepository)
		svc := bookmark.NewService(bookmarks, blogs)

		bookmarks.On("Exists", ctx, userID, blogID).Return(false, nil).Once()
		blogs.On("GetByID", ctx, blogID).Return(&domain.Blog{ID: blogID, Status: domain.BlogPublished}, nil).Once()
		bookmarks.On("Add", ctx, userID, blogID).Return(nil).Once()

		on, err := svc.Toggle(ctx, userID, blogID)
		require.NoError(t, err)
		assert.True(t, on)
		bookmarks.AssertExpectations(t)
	})

	t.Run("Removes when present", func(t *testing.T) {
		bookmarks, blogs := new(mocks.BookmarkRepository), new(mocks.BlogRepository)
		svc := bookmark.NewService(bookmarks, blogs)

		bookmarks.On("Exists", ctx, userID, blogID).Return(true, nil).Once()
		bookmarks.On("Remove", ctx, userID, blogID).Return(nil).Once()

		on, err := svc.Toggle(ctx, userID, blogID)
		require.NoError(t, err)
		assert.False(t, on)
		blogs.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("Drafts cannot be bookmarked", func(t *testing.T) {
		bookmarks, blogs := new(mocks.BookmarkRepository), new(mocks.BlogRepository)
		svc := bookmark.NewService(bookmarks, blogs)

		bookmarks.On("Exists", ctx, userID, blogID).Return(false, nil).Once()
		blogs.On("GetByID", ctx, blogID).Return(&domain.Blog{ID: blogID, Status: domain.BlogDraft}, nil).Once()

		_, err := svc.Toggle(ctx, userID, blogID)
		assert.ErrorIs(t, err, bookmark.ErrBlogNotFound)
	})
}

func TestList(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	bookmarks := new(mocks.BookmarkRepository)
	svc := bookmark.NewService(bookmarks, new(mocks.BlogRepository))

	params := domain.PaginationParams{Page: 2, PageSize: 5}
	bookmarks.On("ListBlogs", ctx, userID, params).Return([]domain.Blog{{Title: "a"}}, int64(6), nil).Once()

	page, err := svc.List(ctx, userID, params)
	require.NoError(t, err)
	assert.Len(t, page.Data, 1)
	assert.Equal(t, int64(6), page.TotalItems)
}
