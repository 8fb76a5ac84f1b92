package history

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"

	"ls-tech-blogs/internal/domain"
	"ls-tech-blogs/internal/repository"
)

var ErrEmptyQuery = errors.New("search query is empty")

const (
	// readingWindowDays bounds how many daily documents feed the reading history.
	readingWindowDays = 30
	missingBlogTitle  = "Blog not available"
	maxSaveAttempts   = 5
)

type Service interface {
	RecordSearch(ctx context.Context, userID uuid.UUID, input domain.SearchHistoryInput) (*domain.History, error)
	RecordRead(ctx context.Context, userID, blogID uuid.UUID, readingTime int) error
	GetReadingHistory(ctx context.Context, userID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.ReadingHistoryItem], error)
	LatestSearch(ctx context.Context, userID uuid.UUID) (string, error)
}

type service struct {
	historyRepo repository.HistoryRepository
	blogRepo    repository.BlogRepository
	now         func() time.Time
}

func NewService(historyRepo repository.HistoryRepository, blogRepo repository.BlogRepository) Service {
	return &service{
		historyRepo: historyRepo,
		blogRepo:    blogRepo,
		now:         time.Now,
	}
}

// updateToday loads (or starts) today's document, applies fn and saves it.
// Saves are versioned; a writer that raced us forces a reload and reapply.
func (s *service) updateToday(ctx context.Context, userID uuid.UUID, fn func(h *domain.History, now time.Time)) (*domain.History, error) {
	var lastErr error
	for attempt := 0; attempt < maxSaveAttempts; attempt++ {
		now := s.now().UTC()
		h, err := s.historyRepo.GetForDay(ctx, userID.String(), now)
		if err != nil {
			return nil, err
		}
		if h == nil {
			h = domain.NewHistory(userID.String(), now)
		}

		fn(h, now)

		lastErr = s.historyRepo.Save(ctx, h)
		if lastErr == nil {
			return h, nil
		}
		if !errors.Is(lastErr, repository.ErrStaleWrite) {
			return nil, lastErr
		}
	}
	return nil, lastErr
}

func (s *service) RecordSearch(ctx context.Context, userID uuid.UUID, input domain.SearchHistoryInput) (*domain.History, error) {
	query := input.Normalized()
	if query == "" {
		return nil, ErrEmptyQuery
	}

	return s.updateToday(ctx, userID, func(h *domain.History, now time.Time) {
		h.RecordSearch(query, input.Thumbnail, now)
	})
}

func (s *service) RecordRead(ctx context.Context, userID, blogID uuid.UUID, readingTime int) error {
	_, err := s.updateToday(ctx, userID, func(h *domain.History, now time.Time) {
		h.RecordRead(blogID.String(), readingTime, now)
	})
	return err
}

func (s *service) GetReadingHistory(ctx context.Context, userID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.ReadingHistoryItem], error) {
	params.Validate()

	days, err := s.historyRepo.ListRecent(ctx, userID.String(), readingWindowDays)
	if err != nil {
		return domain.PaginatedResponse[domain.ReadingHistoryItem]{}, err
	}

	var entries []domain.ReadingEntry
	for _, day := range days {
		entries = append(entries, day.ReadingHistory...)
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].ReadAt.After(entries[j].ReadAt)
	})

	total := int64(len(entries))
	start, end := params.Bounds(len(entries))
	page := entries[start:end]

	ids := make([]uuid.UUID, 0, len(page))
	for _, e := range page {
		if id, err := uuid.Parse(e.BlogID); err == nil {
			ids = append(ids, id)
		}
	}
	blogs, err := s.blogRepo.GetByIDs(ctx, ids)
	if err != nil {
		return domain.PaginatedResponse[domain.ReadingHistoryItem]{}, err
	}

	items := make([]domain.ReadingHistoryItem, 0, len(page))
	for _, e := range page {
		item := domain.ReadingHistoryItem{
			BlogID:      e.BlogID,
			Title:       missingBlogTitle,
			ReadAt:      e.ReadAt,
			ReadingTime: e.ReadingTime,
		}
		if id, err := uuid.Parse(e.BlogID); err == nil {
			if blog, ok := blogs[id]; ok {
				item.Title = blog.Title
				item.Slug = blog.Slug
				item.Author = blog.Author
			}
		}
		items = append(items, item)
	}

	return domain.NewPaginatedResponse(items, params.Page, params.PageSize, total), nil
}

func (s *service) LatestSearch(ctx context.Context, userID uuid.UUID) (string, error) {
	h, err := s.historyRepo.Latest(ctx, userID.String())
	if err != nil {
		return "", err
	}
	if h == nil {
		return "", nil
	}
	entry, ok := h.LatestSearch()
	if !ok {
		return "", nil
	}
	return entry.Query, nil
}
