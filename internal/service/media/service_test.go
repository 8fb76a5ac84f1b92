package media_test

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"ls-tech-blogs/internal/config"
	"ls-tech-blogs/internal/domain"
	"ls-tech-blogs/internal/mocks"
	"ls-tech-blogs/internal/service/media"
)

type fixture struct {
	repo    *mocks.MediaRepository
	storage *mocks.ObjectStorage
	svc     media.Service
}

func newFixture() *fixture {
	f := &fixture{
		repo:    new(mocks.MediaRepository),
		storage: new(mocks.ObjectStorage),
	}
	cfg := &config.Config{
		MinIOBucket:         "blog-attachments",
		MinIOPublicEndpoint: "cdn.lstech.io",
		MinIOPublicUseSSL:   true,
		ImageMaxWidth:       64,
		ImageWebPQuality:    75,
	}
	f.svc = media.NewService(f.repo, f.storage, cfg)
	return f
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 128, 32))
	for x := 0; x < 128; x++ {
		img.Set(x, x%32, color.RGBA{R: 200, A: 255})
	}
	buf := new(bytes.Buffer)
	require.NoError(t, png.Encode(buf, img))
	return buf.Bytes()
}

func TestUpload(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("Images are stored as webp", func(t *testing.T) {
		f := newFixture()
		raw := pngBytes(t)

		f.storage.On("PutObject", ctx, "blog-attachments",
			mock.MatchedBy(func(p string) bool { return strings.HasPrefix(p, "attachments/") && strings.HasSuffix(p, ".webp") }),
			mock.Anything, mock.AnythingOfType("int64"),
			minio.PutObjectOptions{ContentType: "image/webp"},
		).Return(minio.UploadInfo{}, nil).Once()
		f.repo.On("Create", ctx, mock.MatchedBy(func(m *domain.Media) bool {
			return m.UploadedBy == userID && m.FileName == "diagram.webp" && m.MimeType == "image/webp"
		})).Return(nil).Once()

		m, err := f.svc.Upload(ctx, userID, media.UploadInput{
			FileName: "diagram.PNG",
			Size:     int64(len(raw)),
			MimeType: "image/png",
			Reader:   bytes.NewReader(raw),
		})

		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(m.URL, "https://cdn.lstech.io/blog-attachments/attachments/"))
		f.storage.AssertExpectations(t)
	})

	t.Run("Documents pass through", func(t *testing.T) {
		f := newFixture()
		f.storage.On("PutObject", ctx, "blog-attachments", mock.AnythingOfType("string"), mock.Anything, int64(5),
			minio.PutObjectOptions{ContentType: "application/pdf"}).Return(minio.UploadInfo{}, nil).Once()
		f.repo.On("Create", ctx, mock.Anything).Return(nil).Once()

		m, err := f.svc.Upload(ctx, userID, media.UploadInput{
			FileName: "notes.pdf",
			Size:     5,
			MimeType: "application/pdf; charset=binary",
			Reader:   strings.NewReader("%PDF-"),
		})
		require.NoError(t, err)
		assert.Equal(t, "notes.pdf", m.FileName)
	})

	t.Run("Too large", func(t *testing.T) {
		f := newFixture()
		_, err := f.svc.Upload(ctx, userID, media.UploadInput{FileName: "big.pdf", Size: media.MaxUploadSize + 1, MimeType: "application/pdf"})
		assert.ErrorIs(t, err, media.ErrFileTooLarge)
	})

	t.Run("Unsupported type", func(t *testing.T) {
		f := newFixture()
		_, err := f.svc.Upload(ctx, userID, media.UploadInput{FileName: "run.sh", Size: 10, MimeType: "application/x-sh"})
		assert.ErrorIs(t, err, media.ErrUnsupportedType)
	})

	t.Run("Database failure removes the object", func(t *testing.T) {
		f := newFixture()
		var stored string
		f.storage.On("PutObject", ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) { stored = args.String(2) }).
			Return(minio.UploadInfo{}, nil).Once()
		f.repo.On("Create", ctx, mock.Anything).Return(errors.New("insert failed")).Once()
		f.storage.On("RemoveObject", ctx, "blog-attachments", mock.AnythingOfType("string"), minio.RemoveObjectOptions{}).
			Return(nil).Once()

		_, err := f.svc.Upload(ctx, userID, media.UploadInput{FileName: "a.txt", Size: 2, MimeType: "text/plain", Reader: strings.NewReader("hi")})

		require.Error(t, err)
		f.storage.AssertCalled(t, "RemoveObject", ctx, "blog-attachments", stored, minio.RemoveObjectOptions{})
	})
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	owner := &domain.User{ID: uuid.New(), Role: string(domain.RoleEmployee)}

	t.Run("Someone else's file", func(t *testing.T) {
		f := newFixture()
		id := uuid.New()
		f.repo.On("GetByID", ctx, id).Return(&domain.Media{ID: id, UploadedBy: uuid.New()}, nil).Once()

		assert.ErrorIs(t, f.svc.Delete(ctx, id, owner), media.ErrForbidden)
	})

	t.Run("Storage failure is not fatal", func(t *testing.T) {
		f := newFixture()
		id := uuid.New()
		f.repo.On("GetByID", ctx, id).Return(&domain.Media{ID: id, UploadedBy: owner.ID, StoragePath: "attachments/x.pdf"}, nil).Once()
		f.repo.On("Delete", ctx, id).Return(nil).Once()
		f.storage.On("RemoveObject", ctx, "blog-attachments", "attachments/x.pdf", minio.RemoveObjectOptions{}).
			Return(errors.New("unreachable")).Once()

		assert.NoError(t, f.svc.Delete(ctx, id, owner))
	})

	t.Run("Missing", func(t *testing.T) {
		f := newFixture()
		id := uuid.New()
		f.repo.On("GetByID", ctx, id).Return(nil, nil).Once()

		assert.ErrorIs(t, f.svc.Delete(ctx, id, owner), media.ErrMediaNotFound)
	})
}
