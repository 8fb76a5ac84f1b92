package audit

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"

	"ls-tech-blogs/internal/domain"
	"ls-tech-blogs/internal/repository"
)

type Service interface {
	Record(ctx context.Context, input domain.RecordAuditInput) error
	List(ctx context.Context, filter domain.AuditFilter, params domain.PaginationParams) (domain.PaginatedResponse[domain.AuditLog], error)
}

type service struct {
	auditRepo repository.AuditLogRepository
}

func NewService(auditRepo repository.AuditLogRepository) Service {
	return &service{auditRepo: auditRepo}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func (s *service) Record(ctx context.Context, input domain.RecordAuditInput) error {
	log := &domain.AuditLog{
		ID:         uuid.New(),
		ActorID:    input.ActorID,
		Action:     input.Action,
		EntityType: input.EntityType,
		EntityID:   input.EntityID,
		IPAddress:  optional(input.IPAddress),
		UserAgent:  optional(input.UserAgent),
	}
	if input.Details != nil {
		details, err := json.Marshal(input.Details)
		if err != nil {
			return err
		}
		log.Details = details
	}

	return s.auditRepo.Create(ctx, log)
}

func (s *service) List(ctx context.Context, filter domain.AuditFilter, params domain.PaginationParams) (domain.PaginatedResponse[domain.AuditLog], error) {
	params.Validate()

	logs, total, err := s.auditRepo.List(ctx, filter, params)
	if err != nil {
		return domain.PaginatedResponse[domain.AuditLog]{}, err
	}
	return domain.NewPaginatedResponse(logs, params.Page, params.PageSize, total), nil
}
