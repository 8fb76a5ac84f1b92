package interaction_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"ls-tech-blogs/internal/domain"
	"ls-tech-blogs/internal/mocks"
	"ls-tech-blogs/internal/pkg/i18n"
	"ls-tech-blogs/internal/repository"
	"ls-tech-blogs/internal/service/interaction"
	"ls-tech-blogs/internal/service/notification"
)

func init() {
	i18n.Register("en", i18n.Translations{
		"INTERACTION_LIKED":     "Liked",
		"INTERACTION_COMMENTED": "Commented successfully",
		"INTERACTION_REPLIED":   "Replied successfully",
		"COMMENT_LIKED":         "Comment liked",
		"COMMENT_UNLIKED":       "Comment unliked",
		"COMMENT_UPDATED":       "Comment updated successfully",
	})
}

type fixture struct {
	interactions *mocks.InteractionRepository
	blogs        *mocks.BlogRepository
	notifier     *mocks.NotificationService
	svc          interaction.Service
}

func newFixture() *fixture {
	f := &fixture{
		interactions: new(mocks.InteractionRepository),
		blogs:        new(mocks.BlogRepository),
		notifier:     new(mocks.NotificationService),
	}
	f.svc = interaction.NewService(f.interactions, f.blogs, "en")
	f.svc.SetNotificationService(f.notifier)
	return f
}

func strPtr(s string) *string { return &s }

func publishedBlog(authorID uuid.UUID) *domain.Blog {
	return &domain.Blog{ID: uuid.New(), AuthorID: authorID, Title: "Go in production", Status: domain.BlogPublished}
}

func TestPostInteraction_Validation(t *testing.T) {
	f := newFixture()
	actor := &domain.User{ID: uuid.New()}

	tests := []struct {
		name  string
		input domain.PostInteractionInput
		want  error
	}{
		{"missing category", domain.PostInteractionInput{}, interaction.ErrMissingCategory},
		{"unknown category", domain.PostInteractionInput{Category: "share"}, interaction.ErrInvalidCategory},
		{"comment without content", domain.PostInteractionInput{Category: domain.CategoryComment}, interaction.ErrMissingContent},
		{"blank content", domain.PostInteractionInput{Category: domain.CategoryComment, Content: strPtr("   ")}, interaction.ErrMissingContent},
		{"reply without parent", domain.PostInteractionInput{Category: domain.CategoryComment, Content: strPtr("hi"), IsReply: true}, interaction.ErrMissingParent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.PostInteraction(context.Background(), uuid.New(), actor, tt.input)
			assert.ErrorIs(t, err, tt.want)
		})
	}
	f.blogs.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestPostInteraction_BlogMustBePublished(t *testing.T) {
	f := newFixture()
	actor := &domain.User{ID: uuid.New()}
	ctx := context.Background()

	draft := publishedBlog(uuid.New())
	draft.Status = domain.BlogDraft
	f.blogs.On("GetByID", ctx, draft.ID).Return(draft, nil).Once()

	missingID := uuid.New()
	f.blogs.On("GetByID", ctx, missingID).Return(nil, nil).Once()

	_, err := f.svc.PostInteraction(ctx, draft.ID, actor, domain.PostInteractionInput{Category: domain.CategoryLike})
	assert.ErrorIs(t, err, interaction.ErrBlogNotFound)

	_, err = f.svc.PostInteraction(ctx, missingID, actor, domain.PostInteractionInput{Category: domain.CategoryLike})
	assert.ErrorIs(t, err, interaction.ErrBlogNotFound)
}

func TestPostInteraction_Like(t *testing.T) {
	ctx := context.Background()
	authorID := uuid.New()
	actor := &domain.User{ID: uuid.New(), FirstName: "Ada", LastName: "Lovelace"}

	t.Run("Success", func(t *testing.T) {
		f := newFixture()
		blog := publishedBlog(authorID)
		f.blogs.On("GetByID", ctx, blog.ID).Return(blog, nil).Once()
		f.interactions.On("HasLiked", ctx, blog.ID, actor.ID).Return(false, nil).Once()
		f.interactions.On("CreateLike", ctx, mock.MatchedBy(func(i *domain.Interaction) bool {
			return i.Category == domain.CategoryLike && i.BlogID == blog.ID && i.CreatedBy == actor.ID
		})).Return(nil).Once()
		f.notifier.On("NotifyInteraction", ctx, mock.MatchedBy(func(n notification.InteractionNotice) bool {
			return n.Kind == domain.NotifLike && n.RecipientID == authorID && n.Source == actor
		})).Return(nil).Once()

		result, err := f.svc.PostInteraction(ctx, blog.ID, actor, domain.PostInteractionInput{Category: domain.CategoryLike})

		require.NoError(t, err)
		assert.Equal(t, "Liked", result.Message)
		assert.Equal(t, actor.ID, result.Interaction.Creator.ID)
		f.interactions.AssertExpectations(t)
		f.notifier.AssertExpectations(t)
	})

	t.Run("Already liked", func(t *testing.T) {
		f := newFixture()
		blog := publishedBlog(authorID)
		f.blogs.On("GetByID", ctx, blog.ID).Return(blog, nil).Once()
		f.interactions.On("HasLiked", ctx, blog.ID, actor.ID).Return(true, nil).Once()

		_, err := f.svc.PostInteraction(ctx, blog.ID, actor, domain.PostInteractionInput{Category: domain.CategoryLike})

		assert.ErrorIs(t, err, interaction.ErrAlreadyLiked)
		f.interactions.AssertNotCalled(t, "CreateLike", mock.Anything, mock.Anything)
	})

	t.Run("Own blog", func(t *testing.T) {
		f := newFixture()
		blog := publishedBlog(actor.ID)
		f.blogs.On("GetByID", ctx, blog.ID).Return(blog, nil).Once()
		f.interactions.On("HasLiked", ctx, blog.ID, actor.ID).Return(false, nil).Once()

		_, err := f.svc.PostInteraction(ctx, blog.ID, actor, domain.PostInteractionInput{Category: domain.CategoryLike})

		assert.ErrorIs(t, err, interaction.ErrOwnBlog)
	})

	t.Run("Concurrent duplicate", func(t *testing.T) {
		f := newFixture()
		blog := publishedBlog(authorID)
		f.blogs.On("GetByID", ctx, blog.ID).Return(blog, nil).Once()
		f.interactions.On("HasLiked", ctx, blog.ID, actor.ID).Return(false, nil).Once()
		f.interactions.On("CreateLike", ctx, mock.Anything).Return(repository.ErrDuplicate).Once()

		_, err := f.svc.PostInteraction(ctx, blog.ID, actor, domain.PostInteractionInput{Category: domain.CategoryLike})

		assert.ErrorIs(t, err, interaction.ErrAlreadyLiked)
		f.notifier.AssertNotCalled(t, "NotifyInteraction", mock.Anything, mock.Anything)
	})

	t.Run("Notification failure is swallowed", func(t *testing.T) {
		f := newFixture()
		blog := publishedBlog(authorID)
		f.blogs.On("GetByID", ctx, blog.ID).Return(blog, nil).Once()
		f.interactions.On("HasLiked", ctx, blog.ID, actor.ID).Return(false, nil).Once()
		f.interactions.On("CreateLike", ctx, mock.Anything).Return(nil).Once()
		f.notifier.On("NotifyInteraction", ctx, mock.Anything).Return(errors.New("db down")).Once()

		result, err := f.svc.PostInteraction(ctx, blog.ID, actor, domain.PostInteractionInput{Category: domain.CategoryLike})

		require.NoError(t, err)
		assert.NotNil(t, result)
	})
}

func TestPostInteraction_Comment(t *testing.T) {
	ctx := context.Background()
	authorID := uuid.New()
	actor := &domain.User{ID: uuid.New(), FirstName: "Grace"}

	t.Run("Top level comment", func(t *testing.T) {
		f := newFixture()
		blog := publishedBlog(authorID)
		f.blogs.On("GetByID", ctx, blog.ID).Return(blog, nil).Once()
		f.interactions.On("CreateComment", ctx, mock.MatchedBy(func(i *domain.Interaction) bool {
			return i.ParentID == nil && !i.IsReply && *i.Content == "Nice post" && i.Attachments != nil
		})).Return(nil).Once()
		f.notifier.On("NotifyInteraction", ctx, mock.MatchedBy(func(n notification.InteractionNotice) bool {
			return n.Kind == domain.NotifComment && n.RecipientID == authorID && n.CommentID != nil
		})).Return(nil).Once()

		result, err := f.svc.PostInteraction(ctx, blog.ID, actor, domain.PostInteractionInput{
			Category: domain.CategoryComment,
			Content:  strPtr("Nice post"),
		})

		require.NoError(t, err)
		assert.Equal(t, "Commented successfully", result.Message)
		f.notifier.AssertExpectations(t)
	})

	t.Run("Reply notifies parent author", func(t *testing.T) {
		f := newFixture()
		blog := publishedBlog(authorID)
		parentAuthor := uuid.New()
		parent := &domain.Interaction{ID: uuid.New(), Category: domain.CategoryComment, BlogID: blog.ID, CreatedBy: parentAuthor}

		f.blogs.On("GetByID", ctx, blog.ID).Return(blog, nil).Once()
		f.interactions.On("GetByID", ctx, parent.ID).Return(parent, nil).Once()
		f.interactions.On("CreateComment", ctx, mock.MatchedBy(func(i *domain.Interaction) bool {
			return i.IsReply && i.ParentID != nil && *i.ParentID == parent.ID
		})).Return(nil).Once()
		f.notifier.On("NotifyInteraction", ctx, mock.MatchedBy(func(n notification.InteractionNotice) bool {
			return n.Kind == domain.NotifComment && n.RecipientID == authorID
		})).Return(nil).Once()
		f.notifier.On("NotifyInteraction", ctx, mock.MatchedBy(func(n notification.InteractionNotice) bool {
			return n.Kind == domain.NotifReply && n.RecipientID == parentAuthor
		})).Return(nil).Once()

		result, err := f.svc.PostInteraction(ctx, blog.ID, actor, domain.PostInteractionInput{
			Category:      domain.CategoryComment,
			Content:       strPtr("Agreed"),
			IsReply:       true,
			ParentComment: &parent.ID,
		})

		require.NoError(t, err)
		assert.Equal(t, "Replied successfully", result.Message)
		f.notifier.AssertExpectations(t)
	})

	t.Run("Reply to a reply attaches to the thread root", func(t *testing.T) {
		f := newFixture()
		blog := publishedBlog(authorID)
		rootID := uuid.New()
		reply := &domain.Interaction{ID: uuid.New(), Category: domain.CategoryComment, BlogID: blog.ID, CreatedBy: authorID, ParentID: &rootID, IsReply: true}

		f.blogs.On("GetByID", ctx, blog.ID).Return(blog, nil).Once()
		f.interactions.On("GetByID", ctx, reply.ID).Return(reply, nil).Once()
		f.interactions.On("CreateComment", ctx, mock.MatchedBy(func(i *domain.Interaction) bool {
			return i.ParentID != nil && *i.ParentID == rootID
		})).Return(nil).Once()
		f.notifier.On("NotifyInteraction", ctx, mock.Anything).Return(nil).Once()

		_, err := f.svc.PostInteraction(ctx, blog.ID, actor, domain.PostInteractionInput{
			Category:      domain.CategoryComment,
			Content:       strPtr("Me too"),
			IsReply:       true,
			ParentComment: &reply.ID,
		})

		require.NoError(t, err)
		f.interactions.AssertExpectations(t)
		f.notifier.AssertNumberOfCalls(t, "NotifyInteraction", 1)
	})

	t.Run("Parent on another blog", func(t *testing.T) {
		f := newFixture()
		blog := publishedBlog(authorID)
		parent := &domain.Interaction{ID: uuid.New(), Category: domain.CategoryComment, BlogID: uuid.New()}

		f.blogs.On("GetByID", ctx, blog.ID).Return(blog, nil).Once()
		f.interactions.On("GetByID", ctx, parent.ID).Return(parent, nil).Once()

		_, err := f.svc.PostInteraction(ctx, blog.ID, actor, domain.PostInteractionInput{
			Category:      domain.CategoryComment,
			Content:       strPtr("?"),
			IsReply:       true,
			ParentComment: &parent.ID,
		})

		assert.ErrorIs(t, err, interaction.ErrParentNotFound)
	})

	t.Run("Parent deleted while replying", func(t *testing.T) {
		f := newFixture()
		blog := publishedBlog(authorID)
		parent := &domain.Interaction{ID: uuid.New(), Category: domain.CategoryComment, BlogID: blog.ID}

		f.blogs.On("GetByID", ctx, blog.ID).Return(blog, nil).Once()
		f.interactions.On("GetByID", ctx, parent.ID).Return(parent, nil).Once()
		f.interactions.On("CreateComment", ctx, mock.Anything).Return(repository.ErrNotFound).Once()

		_, err := f.svc.PostInteraction(ctx, blog.ID, actor, domain.PostInteractionInput{
			Category:      domain.CategoryComment,
			Content:       strPtr("late"),
			IsReply:       true,
			ParentComment: &parent.ID,
		})

		assert.ErrorIs(t, err, interaction.ErrParentNotFound)
	})
}

func TestLikeCommentOrReply(t *testing.T) {
	ctx := context.Background()
	actor := &domain.User{ID: uuid.New()}
	comment := &domain.Interaction{ID: uuid.New(), Category: domain.CategoryComment}

	t.Run("Like", func(t *testing.T) {
		f := newFixture()
		liked := *comment
		liked.Likes = 1
		liked.LikedBy = domain.UUIDList{actor.ID}

		f.interactions.On("GetByID", ctx, comment.ID).Return(comment, nil).Once()
		f.interactions.On("LikeComment", ctx, comment.ID, actor.ID).Return(true, nil).Once()
		f.interactions.On("GetByID", ctx, comment.ID).Return(&liked, nil).Once()

		result, err := f.svc.LikeCommentOrReply(ctx, comment.ID, actor, domain.ActionLike)

		require.NoError(t, err)
		assert.Equal(t, "Comment liked", result.Message)
		assert.Equal(t, int64(1), result.Interaction.Likes)
	})

	t.Run("Double like", func(t *testing.T) {
		f := newFixture()
		f.interactions.On("GetByID", ctx, comment.ID).Return(comment, nil).Once()
		f.interactions.On("LikeComment", ctx, comment.ID, actor.ID).Return(false, nil).Once()

		_, err := f.svc.LikeCommentOrReply(ctx, comment.ID, actor, domain.ActionLike)
		assert.ErrorIs(t, err, interaction.ErrCommentAlreadyLiked)
	})

	t.Run("Unlike without like", func(t *testing.T) {
		f := newFixture()
		f.interactions.On("GetByID", ctx, comment.ID).Return(comment, nil).Once()
		f.interactions.On("UnlikeComment", ctx, comment.ID, actor.ID).Return(false, nil).Once()

		_, err := f.svc.LikeCommentOrReply(ctx, comment.ID, actor, domain.ActionUnlike)
		assert.ErrorIs(t, err, interaction.ErrCommentNotLiked)
	})

	t.Run("Target is a like", func(t *testing.T) {
		f := newFixture()
		like := &domain.Interaction{ID: uuid.New(), Category: domain.CategoryLike}
		f.interactions.On("GetByID", ctx, like.ID).Return(like, nil).Once()

		_, err := f.svc.LikeCommentOrReply(ctx, like.ID, actor, domain.ActionLike)
		assert.ErrorIs(t, err, interaction.ErrCommentNotFound)
	})
}

func TestDeleteInteraction(t *testing.T) {
	ctx := context.Background()
	owner := &domain.User{ID: uuid.New(), Role: string(domain.RoleEmployee)}
	stranger := &domain.User{ID: uuid.New(), Role: string(domain.RoleEmployee)}
	admin := &domain.User{ID: uuid.New(), Role: string(domain.RoleAdmin)}

	t.Run("Comment cascades to replies", func(t *testing.T) {
		f := newFixture()
		comment := &domain.Interaction{ID: uuid.New(), Category: domain.CategoryComment, CreatedBy: owner.ID}
		f.interactions.On("GetByID", ctx, comment.ID).Return(comment, nil).Once()
		f.interactions.On("SoftDelete", ctx, comment).Return(int64(3), nil).Once()

		n, err := f.svc.DeleteInteraction(ctx, comment.ID, owner)

		require.NoError(t, err)
		assert.Equal(t, int64(4), n)
	})

	t.Run("Admin may delete", func(t *testing.T) {
		f := newFixture()
		like := &domain.Interaction{ID: uuid.New(), Category: domain.CategoryLike, CreatedBy: owner.ID}
		f.interactions.On("GetByID", ctx, like.ID).Return(like, nil).Once()
		f.interactions.On("SoftDelete", ctx, like).Return(int64(0), nil).Once()

		n, err := f.svc.DeleteInteraction(ctx, like.ID, admin)

		require.NoError(t, err)
		assert.Equal(t, int64(1), n)
	})

	t.Run("Others are forbidden", func(t *testing.T) {
		f := newFixture()
		comment := &domain.Interaction{ID: uuid.New(), Category: domain.CategoryComment, CreatedBy: owner.ID}
		f.interactions.On("GetByID", ctx, comment.ID).Return(comment, nil).Once()

		_, err := f.svc.DeleteInteraction(ctx, comment.ID, stranger)

		assert.ErrorIs(t, err, interaction.ErrForbidden)
		f.interactions.AssertNotCalled(t, "SoftDelete", mock.Anything, mock.Anything)
	})

	t.Run("Missing", func(t *testing.T) {
		f := newFixture()
		id := uuid.New()
		f.interactions.On("GetByID", ctx, id).Return(nil, nil).Once()

		_, err := f.svc.DeleteInteraction(ctx, id, owner)
		assert.ErrorIs(t, err, interaction.ErrInteractionNotFound)
	})
}

func TestGetReplies(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	parent := &domain.Interaction{ID: uuid.New(), Category: domain.CategoryComment}
	replies := []domain.Interaction{{ID: uuid.New()}, {ID: uuid.New()}}

	f.interactions.On("GetByID", ctx, parent.ID).Return(parent, nil).Once()
	f.interactions.On("ListReplies", ctx, parent.ID, 0, 2).Return(replies, int64(5), nil).Once()

	page, err := f.svc.GetReplies(ctx, parent.ID, domain.ReplyQuery{Skip: -4, Limit: 2})

	require.NoError(t, err)
	assert.Equal(t, 0, page.Skip)
	assert.Equal(t, 2, page.Limit)
	assert.Equal(t, int64(5), page.Total)
	assert.True(t, page.HasMore)
}

func TestGetComments(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	blog := publishedBlog(uuid.New())
	params := domain.PaginationParams{Page: 2, PageSize: 1}

	f.blogs.On("GetByID", ctx, blog.ID).Return(blog, nil).Once()
	f.interactions.On("ListComments", ctx, blog.ID, params).Return([]domain.Interaction{{ID: uuid.New()}}, int64(3), nil).Once()

	result, err := f.svc.GetComments(ctx, blog.ID, params)

	require.NoError(t, err)
	assert.Len(t, result.Data, 1)
	assert.Equal(t, 3, result.TotalPages)
	assert.True(t, result.HasNext)
}

func TestUpdateComment(t *testing.T) {
	ctx := context.Background()
	owner := &domain.User{ID: uuid.New()}

	t.Run("Sets editor", func(t *testing.T) {
		f := newFixture()
		comment := &domain.Interaction{ID: uuid.New(), Category: domain.CategoryComment, CreatedBy: owner.ID, Content: strPtr("old")}
		f.interactions.On("GetByID", ctx, comment.ID).Return(comment, nil).Once()
		f.interactions.On("UpdateContent", ctx, comment.ID, "new", owner.ID).Return(nil).Once()

		result, err := f.svc.UpdateComment(ctx, comment.ID, owner, "new")

		require.NoError(t, err)
		assert.Equal(t, "new", *result.Interaction.Content)
		assert.Equal(t, owner.ID, *result.Interaction.UpdatedBy)
		assert.Equal(t, "Comment updated successfully", result.Message)
	})

	t.Run("Empty content", func(t *testing.T) {
		f := newFixture()
		_, err := f.svc.UpdateComment(ctx, uuid.New(), owner, " ")
		assert.ErrorIs(t, err, interaction.ErrMissingContent)
	})
}
