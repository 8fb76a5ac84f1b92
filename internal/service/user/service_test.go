package user_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"ls-tech-blogs/internal/domain"
	"ls-tech-blogs/internal/mocks"
	"ls-tech-blogs/internal/repository"
	"ls-tech-blogs/internal/service/user"
)

type fixture struct {
	users    *mocks.UserRepository
	blogs    *mocks.BlogRepository
	sessions *mocks.SessionRepository
	svc      user.Service
}

func newFixture() *fixture {
	f := &fixture{
		users:    new(mocks.UserRepository),
		blogs:    new(mocks.BlogRepository),
		sessions: new(mocks.SessionRepository),
	}
	f.svc = user.NewService(f.users, f.blogs, f.sessions)
	return f
}

func strPtr(s string) *string { return &s }

func TestUpdateProfile(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	me := &domain.User{ID: uuid.New(), FirstName: "Ada", LastName: "Byron"}

	f.users.On("GetByID", ctx, me.ID).Return(&domain.User{ID: me.ID, FirstName: "Ada", LastName: "Byron"}, nil).Once()
	f.users.On("Update", ctx, mock.MatchedBy(func(u *domain.User) bool {
		return u.FirstName == "Ada" && u.LastName == "Lovelace" && *u.GitHubProfile == "https://github.com/ada"
	})).Return(nil).Once()

	updated, err := f.svc.UpdateProfile(ctx, me, domain.UpdateProfileInput{
		LastName:      strPtr("Lovelace"),
		GitHubProfile: strPtr("https://github.com/ada"),
	})

	require.NoError(t, err)
	assert.Equal(t, "Lovelace", updated.LastName)
	f.users.AssertExpectations(t)
}

func TestGetPublicProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("Hides the email", func(t *testing.T) {
		f := newFixture()
		id := uuid.New()
		joined := time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC)
		f.users.On("GetByID", ctx, id).Return(&domain.User{
			ID: id, Email: "ada@example.com", Username: "ada", IsActive: true, CreatedAt: joined,
		}, nil).Once()
		f.blogs.On("LatestByAuthor", ctx, id, 10).Return(nil, nil).Once()

		profile, err := f.svc.GetPublicProfile(ctx, id)
		require.NoError(t, err)
		assert.Empty(t, profile.User.Email)
		assert.Equal(t, joined, profile.JoinedAt)
		assert.NotNil(t, profile.RecentBlogs)
	})

	t.Run("Deactivated users are hidden", func(t *testing.T) {
		f := newFixture()
		id := uuid.New()
		f.users.On("GetByID", ctx, id).Return(&domain.User{ID: id}, nil).Once()

		_, err := f.svc.GetPublicProfile(ctx, id)
		assert.ErrorIs(t, err, user.ErrUserNotFound)
	})
}

func TestUpdateRole(t *testing.T) {
	ctx := context.Background()
	admin := &domain.User{ID: uuid.New(), Role: string(domain.RoleAdmin)}

	t.Run("Cannot change own role", func(t *testing.T) {
		f := newFixture()
		_, err := f.svc.UpdateRole(ctx, admin, admin.ID, domain.RoleEmployee)
		assert.ErrorIs(t, err, user.ErrCannotModifySelf)
	})

	t.Run("Rejects unknown roles", func(t *testing.T) {
		f := newFixture()
		_, err := f.svc.UpdateRole(ctx, admin, uuid.New(), domain.UserRole("owner"))
		assert.ErrorIs(t, err, user.ErrInvalidRole)
	})

	t.Run("Promotes", func(t *testing.T) {
		f := newFixture()
		id := uuid.New()
		f.users.On("UpdateRole", ctx, id, "admin").Return(nil).Once()
		f.users.On("GetByID", ctx, id).Return(&domain.User{ID: id, Role: "admin"}, nil).Once()

		u, err := f.svc.UpdateRole(ctx, admin, id, domain.RoleAdmin)
		require.NoError(t, err)
		assert.Equal(t, "admin", u.Role)
	})

	t.Run("Unknown user", func(t *testing.T) {
		f := newFixture()
		id := uuid.New()
		f.users.On("UpdateRole", ctx, id, "admin").Return(repository.ErrNotFound).Once()

		_, err := f.svc.UpdateRole(ctx, admin, id, domain.RoleAdmin)
		assert.ErrorIs(t, err, user.ErrUserNotFound)
	})
}

func TestSetActive(t *testing.T) {
	ctx := context.Background()
	admin := &domain.User{ID: uuid.New(), Role: string(domain.RoleAdmin)}

	t.Run("Deactivation revokes sessions", func(t *testing.T) {
		f := newFixture()
		id := uuid.New()
		f.users.On("SetActive", ctx, id, false).Return(nil).Once()
		f.sessions.On("RevokeAllForUser", ctx, id).Return(nil).Once()
		f.users.On("GetByID", ctx, id).Return(&domain.User{ID: id}, nil).Once()

		u, err := f.svc.SetActive(ctx, admin, id, false)
		require.NoError(t, err)
		assert.False(t, u.IsActive)
		f.sessions.AssertExpectations(t)
	})

	t.Run("Activation keeps sessions", func(t *testing.T) {
		f := newFixture()
		id := uuid.New()
		f.users.On("SetActive", ctx, id, true).Return(nil).Once()
		f.users.On("GetByID", ctx, id).Return(&domain.User{ID: id, IsActive: true}, nil).Once()

		_, err := f.svc.SetActive(ctx, admin, id, true)
		require.NoError(t, err)
		f.sessions.AssertNotCalled(t, "RevokeAllForUser", mock.Anything, mock.Anything)
	})

	t.Run("Cannot deactivate self", func(t *testing.T) {
		f := newFixture()
		_, err := f.svc.SetActive(ctx, admin, admin.ID, false)
		assert.ErrorIs(t, err, user.ErrCannotModifySelf)
	})
}
