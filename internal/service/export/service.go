package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"strconv"
	"time"

	"ls-tech-blogs/internal/domain"
	"ls-tech-blogs/internal/repository"
)

var ErrInvalidType = errors.New("export type must be one of users, blogs, comments")

const timeLayout = time.RFC3339

type Service interface {
	Export(ctx context.Context, exportType domain.ExportType) (*domain.ExportFile, error)
}

type service struct {
	userRepo        repository.UserRepository
	blogRepo        repository.BlogRepository
	interactionRepo repository.InteractionRepository
	now             func() time.Time
}

func NewService(userRepo repository.UserRepository, blogRepo repository.BlogRepository, interactionRepo repository.InteractionRepository) Service {
	return &service{
		userRepo:        userRepo,
		blogRepo:        blogRepo,
		interactionRepo: interactionRepo,
		now:             time.Now,
	}
}

func (s *service) Export(ctx context.Context, exportType domain.ExportType) (*domain.ExportFile, error) {
	if !exportType.IsValid() {
		return nil, ErrInvalidType
	}

	var (
		records [][]string
		err     error
	)
	switch exportType {
	case domain.ExportUsers:
		records, err = s.userRecords(ctx)
	case domain.ExportBlogs:
		records, err = s.blogRecords(ctx)
	case domain.ExportComments:
		records, err = s.commentRecords(ctx)
	}
	if err != nil {
		return nil, err
	}

	data, err := writeCSV(records)
	if err != nil {
		return nil, err
	}

	return &domain.ExportFile{
		Data:     data,
		Filename: fmt.Sprintf("%s_export_%s.csv", exportType, s.now().UTC().Format("2006-01-02")),
	}, nil
}

func (s *service) userRecords(ctx context.Context) ([][]string, error) {
	users, err := s.userRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	records := [][]string{{"ID", "First Name", "Last Name", "Email", "Username", "Role", "Active", "Created At"}}
	for _, u := range users {
		records = append(records, []string{
			u.ID.String(),
			u.FirstName,
			u.LastName,
			u.Email,
			u.Username,
			u.Role,
			strconv.FormatBool(u.IsActive),
			u.CreatedAt.UTC().Format(timeLayout),
		})
	}
	return records, nil
}

func (s *service) blogRecords(ctx context.Context) ([][]string, error) {
	blogs, err := s.blogRepo.ListForExport(ctx)
	if err != nil {
		return nil, err
	}

	records := [][]string{{"ID", "Title", "Author", "Status", "Views", "Likes", "Comments", "Created At"}}
	for _, b := range blogs {
		records = append(records, []string{
			b.ID,
			b.Title,
			b.Author,
			b.Status,
			strconv.FormatInt(b.Views, 10),
			strconv.FormatInt(b.Likes, 10),
			strconv.FormatInt(b.Comments, 10),
			b.CreatedAt.UTC().Format(timeLayout),
		})
	}
	return records, nil
}

func (s *service) commentRecords(ctx context.Context) ([][]string, error) {
	comments, err := s.interactionRepo.ListForExport(ctx)
	if err != nil {
		return nil, err
	}

	records := [][]string{{"ID", "Content", "Author", "Blog Title", "Likes", "Created At"}}
	for _, c := range comments {
		records = append(records, []string{
			c.ID,
			c.Content,
			c.Author,
			c.BlogTitle,
			strconv.FormatInt(c.Likes, 10),
			c.CreatedAt.UTC().Format(timeLayout),
		})
	}
	return records, nil
}

func writeCSV(records [][]string) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(records); err != nil {
		return "", fmt.Errorf("failed to write csv: %w", err)
	}
	return buf.String(), nil
}
