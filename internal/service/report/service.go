package report

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"ls-tech-blogs/internal/domain"
	"ls-tech-blogs/internal/repository"
)

var (
	ErrTargetRequired = errors.New("either blog_id or comment_id is required")
	ErrTargetNotFound = errors.New("reported content not found")
	ErrReportNotFound = errors.New("report not found")
)

type Service interface {
	Create(ctx context.Context, reporter *domain.User, input domain.CreateReportInput) (*domain.Report, error)
	List(ctx context.Context, status string, params domain.PaginationParams) (domain.PaginatedResponse[domain.Report], error)
	UpdateStatus(ctx context.Context, id uuid.UUID, reviewer *domain.User, status domain.ReportStatus) (*domain.Report, error)
}

type service struct {
	reportRepo      repository.ReportRepository
	blogRepo        repository.BlogRepository
	interactionRepo repository.InteractionRepository
}

func NewService(reportRepo repository.ReportRepository, blogRepo repository.BlogRepository, interactionRepo repository.InteractionRepository) Service {
	return &service{
		reportRepo:      reportRepo,
		blogRepo:        blogRepo,
		interactionRepo: interactionRepo,
	}
}

func (s *service) Create(ctx context.Context, reporter *domain.User, input domain.CreateReportInput) (*domain.Report, error) {
	if input.BlogID == nil && input.CommentID == nil {
		return nil, ErrTargetRequired
	}

	if input.BlogID != nil {
		blog, err := s.blogRepo.GetByID(ctx, *input.BlogID)
		if err != nil {
			return nil, err
		}
		if blog == nil {
			return nil, ErrTargetNotFound
		}
	}
	if input.CommentID != nil {
		comment, err := s.interactionRepo.GetByID(ctx, *input.CommentID)
		if err != nil {
			return nil, err
		}
		if comment == nil || comment.Category != domain.CategoryComment {
			return nil, ErrTargetNotFound
		}
	}

	report := &domain.Report{
		ID:         uuid.New(),
		BlogID:     input.BlogID,
		CommentID:  input.CommentID,
		Reason:     input.Reason,
		Details:    input.Details,
		Status:     domain.ReportPending,
		ReporterID: reporter.ID,
	}
	if err := s.reportRepo.Create(ctx, report); err != nil {
		return nil, err
	}
	return report, nil
}

func (s *service) List(ctx context.Context, status string, params domain.PaginationParams) (domain.PaginatedResponse[domain.Report], error) {
	params.Validate()

	reports, total, err := s.reportRepo.List(ctx, status, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Report]{}, err
	}
	return domain.NewPaginatedResponse(reports, params.Page, params.PageSize, total), nil
}

func (s *service) UpdateStatus(ctx context.Context, id uuid.UUID, reviewer *domain.User, status domain.ReportStatus) (*domain.Report, error) {
	if err := s.reportRepo.UpdateStatus(ctx, id, status, reviewer.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, err
	}

	report, err := s.reportRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if report == nil {
		return nil, ErrReportNotFound
	}
	return report, nil
}
