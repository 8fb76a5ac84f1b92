package audit_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"ls-tech-blogs/internal/domain"
	"ls-tech-blogs/internal/mocks"
	"ls-tech-blogs/internal/service/audit"
)

func TestRecord(t *testing.T) {
	ctx := context.Background()
	repo := new(mocks.AuditLogRepository)
	svc := audit.NewService(repo)

	actor, target := uuid.New(), uuid.New()
	repo.On("Create", ctx, mock.MatchedBy(func(l *domain.AuditLog) bool {
		return l.ActorID == actor &&
			l.Action == domain.AuditUserRoleChanged &&
			*l.EntityID == target &&
			string(l.Details) == `{"role":"admin"}` &&
			*l.IPAddress == "10.0.0.1" &&
			l.UserAgent == nil
	})).Return(nil).Once()

	err := svc.Record(ctx, domain.RecordAuditInput{
		ActorID:    actor,
		Action:     domain.AuditUserRoleChanged,
		EntityType: "user",
		EntityID:   &target,
		Details:    map[string]string{"role": "admin"},
		IPAddress:  "10.0.0.1",
	})

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestList(t *testing.T) {
	ctx := context.Background()
	repo := new(mocks.AuditLogRepository)
	svc := audit.NewService(repo)

	filter := domain.AuditFilter{Action: string(domain.AuditBlogDeleted)}
	repo.On("List", ctx, filter, domain.PaginationParams{Page: 1, PageSize: 10}).
		Return([]domain.AuditLog{{ID: uuid.New()}}, int64(11), nil).Once()

	page, err := svc.List(ctx, filter, domain.PaginationParams{})

	require.NoError(t, err)
	assert.Len(t, page.Data, 1)
	assert.Equal(t, 2, page.TotalPages)
}
