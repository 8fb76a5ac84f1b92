package export_test

import (
	"context"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ls-tech-blogs/internal/domain"
	"ls-tech-blogs/internal/mocks"
	"ls-tech-blogs/internal/service/export"
)

func parse(t *testing.T, data string) [][]string {
	t.Helper()
	records, err := csv.NewReader(strings.NewReader(data)).ReadAll()
	require.NoError(t, err)
	return records
}

func TestExport(t *testing.T) {
	ctx := context.Background()

	t.Run("Users", func(t *testing.T) {
		users := new(mocks.UserRepository)
		svc := export.NewService(users, new(mocks.BlogRepository), new(mocks.InteractionRepository))
		created := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
		users.On("ListAll", ctx).Return([]domain.User{{
			ID: uuid.New(), FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com",
			Username: "ada", Role: "admin", IsActive: true, CreatedAt: created,
		}}, nil).Once()

		file, err := svc.Export(ctx, domain.ExportUsers)
		require.NoError(t, err)

		rows := parse(t, file.Data)
		require.Len(t, rows, 2)
		assert.Equal(t, []string{"ID", "First Name", "Last Name", "Email", "Username", "Role", "Active", "Created At"}, rows[0])
		assert.Equal(t, "true", rows[1][6])
		assert.Equal(t, "2024-03-01T09:00:00Z", rows[1][7])
		assert.True(t, strings.HasPrefix(file.Filename, "users_export_"))
		assert.True(t, strings.HasSuffix(file.Filename, ".csv"))
	})

	t.Run("Comments quote embedded commas", func(t *testing.T) {
		interactions := new(mocks.InteractionRepository)
		svc := export.NewService(new(mocks.UserRepository), new(mocks.BlogRepository), interactions)
		interactions.On("ListForExport", ctx).Return([]domain.CommentExportRow{{
			ID: "c1", Content: "nice, really", Author: "Ada Lovelace", BlogTitle: "Go", Likes: 2,
		}}, nil).Once()

		file, err := svc.Export(ctx, domain.ExportComments)
		require.NoError(t, err)

		rows := parse(t, file.Data)
		assert.Equal(t, "nice, really", rows[1][1])
		assert.Equal(t, "2", rows[1][4])
	})

	t.Run("Empty blog table still has a header", func(t *testing.T) {
		blogs := new(mocks.BlogRepository)
		svc := export.NewService(new(mocks.UserRepository), blogs, new(mocks.InteractionRepository))
		blogs.On("ListForExport", ctx).Return([]domain.BlogExportRow{}, nil).Once()

		file, err := svc.Export(ctx, domain.ExportBlogs)
		require.NoError(t, err)
		assert.Len(t, parse(t, file.Data), 1)
	})

	t.Run("Unknown type", func(t *testing.T) {
		svc := export.NewService(new(mocks.UserRepository), new(mocks.BlogRepository), new(mocks.InteractionRepository))
		_, err := svc.Export(ctx, domain.ExportType("reports"))
		assert.ErrorIs(t, err, export.ErrInvalidType)
	})
}
