package blog_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"ls-tech-blogs/internal/domain"
	"ls-tech-blogs/internal/mocks"
	"ls-tech-blogs/internal/service/blog"
)

type fixture struct {
	blogs    *mocks.BlogRepository
	history  *mocks.HistoryService
	notifier *mocks.NotificationService
	svc      blog.Service
}

func newFixture() *fixture {
	f := &fixture{
		blogs:    new(mocks.BlogRepository),
		history:  new(mocks.HistoryService),
		notifier: new(mocks.NotificationService),
	}
	f.svc = blog.NewService(f.blogs, f.history, nil)
	f.svc.SetNotificationService(f.notifier)
	return f
}

var (
	author = &domain.User{ID: uuid.New(), FirstName: "Ada", Role: string(domain.RoleEmployee)}
	other  = &domain.User{ID: uuid.New(), FirstName: "Bob", Role: string(domain.RoleEmployee)}
	admin  = &domain.User{ID: uuid.New(), FirstName: "Root", Role: string(domain.RoleAdmin)}
)

func TestCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("Draft by default", func(t *testing.T) {
		f := newFixture()
		f.blogs.On("Create", ctx, mock.MatchedBy(func(b *domain.Blog) bool {
			return b.Status == domain.BlogDraft && b.PublishedAt == nil
		})).Return(nil).Once()

		b, err := f.svc.Create(ctx, author, domain.CreateBlogInput{
			Title:   "  Context Cancellation ",
			Content: "# Heading\n\nSome **bold** text.",
			Tags:    []string{"Go", "go", " concurrency ", ""},
		})

		require.NoError(t, err)
		assert.Equal(t, "Context Cancellation", b.Title)
		assert.Contains(t, b.Slug, "context-cancellation")
		assert.Equal(t, []string{"go", "concurrency"}, []string(b.Tags))
		assert.Contains(t, b.ContentHTML, "<strong>bold</strong>")
		assert.Equal(t, 1, b.ReadTime)
		assert.NotNil(t, b.Attachments)
		assert.Equal(t, author.ID, b.Author.ID)
		f.notifier.AssertNotCalled(t, "NotifyBlogPublished", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Published immediately announces", func(t *testing.T) {
		f := newFixture()
		f.blogs.On("Create", ctx, mock.Anything).Return(nil).Once()
		f.notifier.On("NotifyBlogPublished", ctx, mock.AnythingOfType("*domain.Blog"), author).Return(nil).Once()

		b, err := f.svc.Create(ctx, author, domain.CreateBlogInput{Title: "Live", Content: "body", Status: domain.BlogPublished})

		require.NoError(t, err)
		assert.True(t, b.IsPublished())
		assert.NotNil(t, b.PublishedAt)
		assert.NotNil(t, b.AnnouncedAt)
		f.notifier.AssertExpectations(t)
	})
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("Only author or admin", func(t *testing.T) {
		f := newFixture()
		existing := &domain.Blog{ID: uuid.New(), AuthorID: author.ID, Title: "Old", Content: "x"}
		f.blogs.On("GetByID", ctx, existing.ID).Return(existing, nil).Once()

		title := "New"
		_, err := f.svc.Update(ctx, existing.ID, other, domain.UpdateBlogInput{Title: &title})
		assert.ErrorIs(t, err, blog.ErrForbidden)
	})

	t.Run("Title change recomputes slug", func(t *testing.T) {
		f := newFixture()
		existing := &domain.Blog{ID: uuid.New(), AuthorID: author.ID, Title: "Old", Slug: "old", Content: "x"}
		f.blogs.On("GetByID", ctx, existing.ID).Return(existing, nil).Once()
		f.blogs.On("Update", ctx, existing).Return(nil).Once()

		title := "Brand New Title"
		b, err := f.svc.Update(ctx, existing.ID, admin, domain.UpdateBlogInput{Title: &title})

		require.NoError(t, err)
		assert.Contains(t, b.Slug, "brand-new-title")
	})
}

func TestPublish(t *testing.T) {
	ctx := context.Background()

	t.Run("Draft becomes published", func(t *testing.T) {
		f := newFixture()
		draft := &domain.Blog{ID: uuid.New(), AuthorID: author.ID, Status: domain.BlogDraft}
		f.blogs.On("GetByID", ctx, draft.ID).Return(draft, nil).Once()
		f.blogs.On("UpdateStatus", ctx, draft.ID, domain.BlogPublished, mock.AnythingOfType("*time.Time")).Return(nil).Once()
		f.blogs.On("MarkAnnounced", ctx, draft.ID).Return(true, nil).Once()
		f.notifier.On("NotifyBlogPublished", ctx, draft, author).Return(nil).Once()

		b, err := f.svc.Publish(ctx, draft.ID, author)

		require.NoError(t, err)
		assert.True(t, b.IsPublished())
		f.notifier.AssertExpectations(t)
	})

	t.Run("Announcement failure does not fail publish", func(t *testing.T) {
		f := newFixture()
		draft := &domain.Blog{ID: uuid.New(), AuthorID: author.ID, Status: domain.BlogDraft}
		f.blogs.On("GetByID", ctx, draft.ID).Return(draft, nil).Once()
		f.blogs.On("UpdateStatus", ctx, draft.ID, domain.BlogPublished, mock.Anything).Return(nil).Once()
		f.blogs.On("MarkAnnounced", ctx, draft.ID).Return(true, nil).Once()
		f.notifier.On("NotifyBlogPublished", ctx, draft, author).Return(errors.New("boom")).Once()

		_, err := f.svc.Publish(ctx, draft.ID, author)
		require.NoError(t, err)
	})

	t.Run("Republish after unpublish is not announced again", func(t *testing.T) {
		f := newFixture()
		post := &domain.Blog{ID: uuid.New(), AuthorID: author.ID, Status: domain.BlogDraft}
		f.blogs.On("GetByID", ctx, post.ID).Return(post, nil)
		f.blogs.On("UpdateStatus", ctx, post.ID, domain.BlogPublished, mock.AnythingOfType("*time.Time")).Return(nil).Twice()
		f.blogs.On("UpdateStatus", ctx, post.ID, domain.BlogDraft, (*time.Time)(nil)).Return(nil).Once()
		f.blogs.On("MarkAnnounced", ctx, post.ID).Return(true, nil).Once()
		f.blogs.On("MarkAnnounced", ctx, post.ID).Return(false, nil).Once()
		f.notifier.On("NotifyBlogPublished", ctx, post, author).Return(nil).Once()

		_, err := f.svc.Publish(ctx, post.ID, author)
		require.NoError(t, err)
		_, err = f.svc.Unpublish(ctx, post.ID, author)
		require.NoError(t, err)
		b, err := f.svc.Publish(ctx, post.ID, author)
		require.NoError(t, err)

		assert.True(t, b.IsPublished())
		f.notifier.AssertNumberOfCalls(t, "NotifyBlogPublished", 1)
		f.blogs.AssertExpectations(t)
	})

	t.Run("Already published", func(t *testing.T) {
		f := newFixture()
		live := &domain.Blog{ID: uuid.New(), AuthorID: author.ID, Status: domain.BlogPublished}
		f.blogs.On("GetByID", ctx, live.ID).Return(live, nil).Once()

		_, err := f.svc.Publish(ctx, live.ID, author)
		assert.ErrorIs(t, err, blog.ErrAlreadyPublished)
	})

	t.Run("Unpublish a draft", func(t *testing.T) {
		f := newFixture()
		draft := &domain.Blog{ID: uuid.New(), AuthorID: author.ID, Status: domain.BlogDraft}
		f.blogs.On("GetByID", ctx, draft.ID).Return(draft, nil).Once()

		_, err := f.svc.Unpublish(ctx, draft.ID, author)
		assert.ErrorIs(t, err, blog.ErrNotPublished)
	})
}

func TestGet(t *testing.T) {
	ctx := context.Background()

	t.Run("Draft hidden from others", func(t *testing.T) {
		f := newFixture()
		draft := &domain.Blog{ID: uuid.New(), AuthorID: author.ID, Status: domain.BlogDraft}
		f.blogs.On("GetByID", ctx, draft.ID).Return(draft, nil).Twice()

		_, err := f.svc.Get(ctx, draft.ID, other)
		assert.ErrorIs(t, err, blog.ErrBlogNotFound)

		_, err = f.svc.Get(ctx, draft.ID, nil)
		assert.ErrorIs(t, err, blog.ErrBlogNotFound)
	})

	t.Run("Draft visible to author without counting a view", func(t *testing.T) {
		f := newFixture()
		draft := &domain.Blog{ID: uuid.New(), AuthorID: author.ID, Status: domain.BlogDraft}
		f.blogs.On("GetByID", ctx, draft.ID).Return(draft, nil).Once()

		b, err := f.svc.Get(ctx, draft.ID, author)

		require.NoError(t, err)
		assert.Equal(t, draft.ID, b.ID)
		f.blogs.AssertNotCalled(t, "IncrementViews", mock.Anything, mock.Anything)
	})

	t.Run("Published counts view and records read", func(t *testing.T) {
		f := newFixture()
		live := &domain.Blog{ID: uuid.New(), AuthorID: author.ID, Status: domain.BlogPublished, ReadTime: 3}
		f.blogs.On("GetByID", ctx, live.ID).Return(live, nil).Once()
		f.blogs.On("IncrementViews", ctx, live.ID).Return(int64(42), nil).Once()
		f.history.On("RecordRead", ctx, other.ID, live.ID, 3).Return(nil).Once()

		b, err := f.svc.Get(ctx, live.ID, other)

		require.NoError(t, err)
		assert.Equal(t, int64(42), b.Views)
		f.history.AssertExpectations(t)
	})

	t.Run("Anonymous readers leave no history", func(t *testing.T) {
		f := newFixture()
		live := &domain.Blog{ID: uuid.New(), AuthorID: author.ID, Status: domain.BlogPublished}
		f.blogs.On("GetByID", ctx, live.ID).Return(live, nil).Once()
		f.blogs.On("IncrementViews", ctx, live.ID).Return(int64(1), nil).Once()

		_, err := f.svc.Get(ctx, live.ID, nil)

		require.NoError(t, err)
		f.history.AssertNotCalled(t, "RecordRead", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestList(t *testing.T) {
	ctx := context.Background()

	t.Run("Forces published status", func(t *testing.T) {
		f := newFixture()
		f.blogs.On("List", ctx, mock.MatchedBy(func(fl domain.BlogFilter) bool {
			return fl.Status == domain.BlogPublished && fl.Recommend == ""
		}), domain.PaginationParams{Page: 1, PageSize: 10}).Return([]domain.Blog{{ID: uuid.New()}}, int64(1), nil).Once()

		resp, err := f.svc.List(ctx, domain.BlogFilter{Status: domain.BlogDraft, Recommend: "sneaky"}, domain.PaginationParams{}, nil)

		require.NoError(t, err)
		assert.Len(t, resp.Data, 1)
	})

	t.Run("Recommended uses latest search", func(t *testing.T) {
		f := newFixture()
		f.history.On("LatestSearch", ctx, other.ID).Return("generics", nil).Once()
		f.blogs.On("List", ctx, mock.MatchedBy(func(fl domain.BlogFilter) bool {
			return fl.Recommend == "generics" && fl.Sort == domain.SortRecommended
		}), mock.Anything).Return([]domain.Blog{}, int64(0), nil).Once()

		_, err := f.svc.List(ctx, domain.BlogFilter{Sort: domain.SortRecommended}, domain.PaginationParams{}, other)

		require.NoError(t, err)
		f.blogs.AssertExpectations(t)
	})
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	live := &domain.Blog{ID: uuid.New(), AuthorID: author.ID, Status: domain.BlogPublished}
	f.blogs.On("GetByID", ctx, live.ID).Return(live, nil).Twice()
	f.blogs.On("SoftDelete", ctx, live.ID).Return(nil).Once()

	assert.ErrorIs(t, f.svc.Delete(ctx, live.ID, other), blog.ErrForbidden)
	assert.NoError(t, f.svc.Delete(ctx, live.ID, admin))
	f.blogs.AssertExpectations(t)
}
