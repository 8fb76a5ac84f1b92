package user

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"ls-tech-blogs/internal/domain"
	"ls-tech-blogs/internal/repository"
)

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrCannotModifySelf = errors.New("cannot change your own role or status")
	ErrInvalidRole      = errors.New("role must be employee or admin")
)

const recentBlogsOnProfile = 10

type Service interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	UpdateProfile(ctx context.Context, actor *domain.User, input domain.UpdateProfileInput) (*domain.User, error)
	SetProfileImage(ctx context.Context, actor *domain.User, imageURL string) (*domain.User, error)
	GetPublicProfile(ctx context.Context, id uuid.UUID) (*domain.PublicProfile, error)
	List(ctx context.Context, filter domain.UserFilter, params domain.PaginationParams) (domain.PaginatedResponse[domain.User], error)
	UpdateRole(ctx context.Context, actor *domain.User, id uuid.UUID, role domain.UserRole) (*domain.User, error)
	SetActive(ctx context.Context, actor *domain.User, id uuid.UUID, active bool) (*domain.User, error)
}

type service struct {
	userRepo    repository.UserRepository
	blogRepo    repository.BlogRepository
	sessionRepo repository.SessionRepository
}

func NewService(userRepo repository.UserRepository, blogRepo repository.BlogRepository, sessionRepo repository.SessionRepository) Service {
	return &service{
		userRepo:    userRepo,
		blogRepo:    blogRepo,
		sessionRepo: sessionRepo,
	}
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *service) UpdateProfile(ctx context.Context, actor *domain.User, input domain.UpdateProfileInput) (*domain.User, error) {
	user, err := s.GetByID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}
	if input.Phone != nil {
		user.Phone = input.Phone
	}
	if input.Gender != nil {
		user.Gender = input.Gender
	}
	if input.GitHubProfile != nil {
		user.GitHubProfile = input.GitHubProfile
	}
	if input.ProfileImage != nil {
		user.ProfileImage = input.ProfileImage
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *service) SetProfileImage(ctx context.Context, actor *domain.User, imageURL string) (*domain.User, error) {
	return s.UpdateProfile(ctx, actor, domain.UpdateProfileInput{ProfileImage: &imageURL})
}

func (s *service) GetPublicProfile(ctx context.Context, id uuid.UUID) (*domain.PublicProfile, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsActive {
		return nil, ErrUserNotFound
	}

	blogs, err := s.blogRepo.LatestByAuthor(ctx, user.ID, recentBlogsOnProfile)
	if err != nil {
		return nil, err
	}
	if blogs == nil {
		blogs = []domain.Blog{}
	}

	summary := user.Summary()
	// email stays private on public pages
	summary.Email = ""
	return &domain.PublicProfile{
		User:        summary,
		GitHub:      user.GitHubProfile,
		JoinedAt:    user.CreatedAt,
		RecentBlogs: blogs,
	}, nil
}

func (s *service) List(ctx context.Context, filter domain.UserFilter, params domain.PaginationParams) (domain.PaginatedResponse[domain.User], error) {
	params.Validate()

	users, total, err := s.userRepo.List(ctx, filter, params)
	if err != nil {
		return domain.PaginatedResponse[domain.User]{}, err
	}
	return domain.NewPaginatedResponse(users, params.Page, params.PageSize, total), nil
}

func (s *service) UpdateRole(ctx context.Context, actor *domain.User, id uuid.UUID, role domain.UserRole) (*domain.User, error) {
	if !role.IsValid() {
		return nil, ErrInvalidRole
	}
	if actor.ID == id {
		return nil, ErrCannotModifySelf
	}

	if err := s.userRepo.UpdateRole(ctx, id, string(role)); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return s.GetByID(ctx, id)
}

func (s *service) SetActive(ctx context.Context, actor *domain.User, id uuid.UUID, active bool) (*domain.User, error) {
	if actor.ID == id {
		return nil, ErrCannotModifySelf
	}

	if err := s.userRepo.SetActive(ctx, id, active); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if !active {
		// a deactivated account cannot keep refreshing its tokens
		if err := s.sessionRepo.RevokeAllForUser(ctx, id); err != nil {
			return nil, err
		}
	}
	return s.GetByID(ctx, id)
}
