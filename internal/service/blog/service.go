package blog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"ls-tech-blogs/internal/domain"
	"ls-tech-blogs/internal/pkg/markdown"
	"ls-tech-blogs/internal/repository"
	"ls-tech-blogs/internal/service/history"
	"ls-tech-blogs/internal/service/notification"
)

var (
	ErrBlogNotFound     = errors.New("blog not found")
	ErrForbidden        = errors.New("you cannot modify this blog")
	ErrAlreadyPublished = errors.New("blog is already published")
	ErrNotPublished     = errors.New("blog is not published")
)

const (
	listCachePrefix = "blogs:list:"
	listCacheTTL    = time.Minute
)

type Service interface {
	Create(ctx context.Context, actor *domain.User, input domain.CreateBlogInput) (*domain.Blog, error)
	Update(ctx context.Context, id uuid.UUID, actor *domain.User, input domain.UpdateBlogInput) (*domain.Blog, error)
	Publish(ctx context.Context, id uuid.UUID, actor *domain.User) (*domain.Blog, error)
	Unpublish(ctx context.Context, id uuid.UUID, actor *domain.User) (*domain.Blog, error)
	Delete(ctx context.Context, id uuid.UUID, actor *domain.User) error
	Get(ctx context.Context, id uuid.UUID, viewer *domain.User) (*domain.Blog, error)
	List(ctx context.Context, filter domain.BlogFilter, params domain.PaginationParams, viewer *domain.User) (domain.PaginatedResponse[domain.Blog], error)
	ListMine(ctx context.Context, actor *domain.User, status domain.BlogStatus, params domain.PaginationParams) (domain.PaginatedResponse[domain.Blog], error)
	AdminList(ctx context.Context, filter domain.BlogFilter, params domain.PaginationParams) (domain.PaginatedResponse[domain.Blog], error)
	SetNotificationService(notifService notification.Service)
}

type service struct {
	blogRepo     repository.BlogRepository
	history      history.Service
	notifService notification.Service
	redis        *redis.Client
	now          func() time.Time
}

func NewService(blogRepo repository.BlogRepository, historyService history.Service, redis *redis.Client) Service {
	return &service{
		blogRepo: blogRepo,
		history:  historyService,
		redis:    redis,
		now:      time.Now,
	}
}

func (s *service) SetNotificationService(notifService notification.Service) {
	s.notifService = notifService
}

func normalizeTags(tags []string) pq.StringArray {
	out := make(pq.StringArray, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

func (s *service) render(blog *domain.Blog) error {
	html, err := markdown.ToHTML(blog.Content)
	if err != nil {
		return fmt.Errorf("failed to render content: %w", err)
	}
	blog.ContentHTML = html
	blog.ReadTime = domain.ReadTime(blog.Content)
	return nil
}

func (s *service) Create(ctx context.Context, actor *domain.User, input domain.CreateBlogInput) (*domain.Blog, error) {
	blog := &domain.Blog{
		ID:          uuid.New(),
		AuthorID:    actor.ID,
		Title:       strings.TrimSpace(input.Title),
		Content:     input.Content,
		Tags:        normalizeTags(input.Tags),
		Category:    input.Category,
		GitHubLink:  input.GitHubLink,
		CodeBlocks:  pq.StringArray(input.CodeBlocks),
		Attachments: domain.Attachments(input.Attachments),
		Thumbnail:   input.Thumbnail,
		Status:      domain.BlogDraft,
	}
	if blog.CodeBlocks == nil {
		blog.CodeBlocks = pq.StringArray{}
	}
	if blog.Attachments == nil {
		blog.Attachments = domain.Attachments{}
	}
	blog.Slug = domain.UniqueSlug(blog.Title, blog.ID)

	if err := s.render(blog); err != nil {
		return nil, err
	}

	if input.Status == domain.BlogPublished {
		now := s.now()
		blog.Status = domain.BlogPublished
		blog.PublishedAt = &now
		blog.AnnouncedAt = &now
	}

	if err := s.blogRepo.Create(ctx, blog); err != nil {
		return nil, err
	}
	summary := actor.Summary()
	blog.Author = &summary

	s.invalidateLists(ctx)
	if blog.IsPublished() {
		s.announce(ctx, blog, actor)
	}
	return blog, nil
}

// editable loads a live blog the actor is allowed to change.
func (s *service) editable(ctx context.Context, id uuid.UUID, actor *domain.User) (*domain.Blog, error) {
	blog, err := s.blogRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if blog == nil {
		return nil, ErrBlogNotFound
	}
	if !actor.CanModify(blog.AuthorID) {
		return nil, ErrForbidden
	}
	return blog, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, actor *domain.User, input domain.UpdateBlogInput) (*domain.Blog, error) {
	blog, err := s.editable(ctx, id, actor)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		blog.Title = strings.TrimSpace(*input.Title)
		blog.Slug = domain.UniqueSlug(blog.Title, blog.ID)
	}
	if input.Content != nil {
		blog.Content = *input.Content
	}
	if input.Tags != nil {
		blog.Tags = normalizeTags(*input.Tags)
	}
	if input.Category != nil {
		blog.Category = input.Category
	}
	if input.GitHubLink != nil {
		blog.GitHubLink = input.GitHubLink
	}
	if input.CodeBlocks != nil {
		blog.CodeBlocks = pq.StringArray(*input.CodeBlocks)
	}
	if input.Attachments != nil {
		blog.Attachments = domain.Attachments(*input.Attachments)
	}
	if input.Thumbnail != nil {
		blog.Thumbnail = input.Thumbnail
	}

	if err := s.render(blog); err != nil {
		return nil, err
	}

	if err := s.blogRepo.Update(ctx, blog); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrBlogNotFound
		}
		return nil, err
	}

	s.invalidateLists(ctx)
	return blog, nil
}

func (s *service) Publish(ctx context.Context, id uuid.UUID, actor *domain.User) (*domain.Blog, error) {
	blog, err := s.editable(ctx, id, actor)
	if err != nil {
		return nil, err
	}
	if blog.IsPublished() {
		return nil, ErrAlreadyPublished
	}

	now := s.now()
	if err := s.blogRepo.UpdateStatus(ctx, blog.ID, domain.BlogPublished, &now); err != nil {
		return nil, err
	}
	blog.Status = domain.BlogPublished
	blog.PublishedAt = &now

	s.invalidateLists(ctx)

	// republishing after an unpublish stays quiet
	first, err := s.blogRepo.MarkAnnounced(ctx, blog.ID)
	if err != nil {
		logrus.WithError(err).WithField("blog_id", blog.ID).Error("failed to mark blog announced")
		return blog, nil
	}
	if !first {
		return blog, nil
	}

	author := actor
	if actor.ID != blog.AuthorID && blog.Author != nil {
		// an admin published on the author's behalf
		author = &domain.User{ID: blog.AuthorID, FirstName: blog.Author.FirstName, LastName: blog.Author.LastName}
	}
	s.announce(ctx, blog, author)
	return blog, nil
}

func (s *service) announce(ctx context.Context, blog *domain.Blog, author *domain.User) {
	if s.notifService == nil {
		return
	}
	if err := s.notifService.NotifyBlogPublished(ctx, blog, author); err != nil {
		logrus.WithError(err).WithField("blog_id", blog.ID).Error("failed to broadcast new blog")
	}
}

func (s *service) Unpublish(ctx context.Context, id uuid.UUID, actor *domain.User) (*domain.Blog, error) {
	blog, err := s.editable(ctx, id, actor)
	if err != nil {
		return nil, err
	}
	if !blog.IsPublished() {
		return nil, ErrNotPublished
	}

	if err := s.blogRepo.UpdateStatus(ctx, blog.ID, domain.BlogDraft, nil); err != nil {
		return nil, err
	}
	blog.Status = domain.BlogDraft
	blog.PublishedAt = nil

	s.invalidateLists(ctx)
	return blog, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID, actor *domain.User) error {
	blog, err := s.editable(ctx, id, actor)
	if err != nil {
		return err
	}

	if err := s.blogRepo.SoftDelete(ctx, blog.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrBlogNotFound
		}
		return err
	}

	s.invalidateLists(ctx)
	return nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID, viewer *domain.User) (*domain.Blog, error) {
	blog, err := s.blogRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if blog == nil {
		return nil, ErrBlogNotFound
	}

	// drafts only exist for their author and admins
	if !blog.IsPublished() {
		if viewer == nil || !viewer.CanModify(blog.AuthorID) {
			return nil, ErrBlogNotFound
		}
		return blog, nil
	}

	views, err := s.blogRepo.IncrementViews(ctx, blog.ID)
	if err != nil {
		logrus.WithError(err).WithField("blog_id", blog.ID).Warn("failed to count view")
	} else {
		blog.Views = views
	}

	if viewer != nil && s.history != nil {
		if err := s.history.RecordRead(ctx, viewer.ID, blog.ID, blog.ReadTime); err != nil {
			logrus.WithError(err).WithField("user_id", viewer.ID).Warn("failed to record reading history")
		}
	}

	return blog, nil
}

func (s *service) List(ctx context.Context, filter domain.BlogFilter, params domain.PaginationParams, viewer *domain.User) (domain.PaginatedResponse[domain.Blog], error) {
	params.Validate()
	filter.Status = domain.BlogPublished
	filter.Recommend = ""

	if filter.Sort == domain.SortRecommended && viewer != nil && s.history != nil {
		query, err := s.history.LatestSearch(ctx, viewer.ID)
		if err != nil {
			logrus.WithError(err).WithField("user_id", viewer.ID).Warn("failed to load latest search")
		}
		filter.Recommend = query
	}

	key := listCacheKey(filter, params)
	if cached, ok := s.cachedList(ctx, key); ok {
		return cached, nil
	}

	blogs, total, err := s.blogRepo.List(ctx, filter, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Blog]{}, err
	}
	resp := domain.NewPaginatedResponse(blogs, params.Page, params.PageSize, total)

	s.storeList(ctx, key, resp)
	return resp, nil
}

func (s *service) ListMine(ctx context.Context, actor *domain.User, status domain.BlogStatus, params domain.PaginationParams) (domain.PaginatedResponse[domain.Blog], error) {
	params.Validate()

	authorID := actor.ID
	filter := domain.BlogFilter{AuthorID: &authorID, Status: status}
	blogs, total, err := s.blogRepo.List(ctx, filter, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Blog]{}, err
	}
	return domain.NewPaginatedResponse(blogs, params.Page, params.PageSize, total), nil
}

func (s *service) AdminList(ctx context.Context, filter domain.BlogFilter, params domain.PaginationParams) (domain.PaginatedResponse[domain.Blog], error) {
	params.Validate()
	filter.Recommend = ""

	blogs, total, err := s.blogRepo.List(ctx, filter, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Blog]{}, err
	}
	return domain.NewPaginatedResponse(blogs, params.Page, params.PageSize, total), nil
}

func listCacheKey(filter domain.BlogFilter, params domain.PaginationParams) string {
	raw, _ := json.Marshal(struct {
		Filter domain.BlogFilter       `json:"f"`
		Params domain.PaginationParams `json:"p"`
	}{filter, params})
	return fmt.Sprintf("%s%016x", listCachePrefix, xxhash.Sum64(raw))
}

func (s *service) cachedList(ctx context.Context, key string) (domain.PaginatedResponse[domain.Blog], bool) {
	var resp domain.PaginatedResponse[domain.Blog]
	if s.redis == nil {
		return resp, false
	}
	cached, err := s.redis.Get(ctx, key).Bytes()
	if err != nil {
		return resp, false
	}
	if json.Unmarshal(cached, &resp) != nil {
		return resp, false
	}
	return resp, true
}

func (s *service) storeList(ctx context.Context, key string, resp domain.PaginatedResponse[domain.Blog]) {
	if s.redis == nil {
		return
	}
	if raw, err := json.Marshal(resp); err == nil {
		if err := s.redis.Set(ctx, key, raw, listCacheTTL).Err(); err != nil {
			logrus.WithError(err).Debug("blog list cache write failed")
		}
	}
}

func (s *service) invalidateLists(ctx context.Context) {
	if s.redis == nil {
		return
	}
	iter := s.redis.Scan(ctx, 0, listCachePrefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		logrus.WithError(err).Warn("blog list cache scan failed")
		return
	}
	if len(keys) > 0 {
		_ = s.redis.Del(ctx, keys...).Err()
	}
}
