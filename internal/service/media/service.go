package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/sirupsen/logrus"

	"ls-tech-blogs/internal/config"
	"ls-tech-blogs/internal/domain"
	"ls-tech-blogs/internal/pkg/imaging"
	"ls-tech-blogs/internal/repository"
)

const MaxUploadSize = 10 << 20

var (
	ErrFileTooLarge     = errors.New("file exceeds the 10MB limit")
	ErrUnsupportedType  = errors.New("unsupported file type")
	ErrMediaNotFound    = errors.New("media not found")
	ErrForbidden        = errors.New("you cannot delete this file")
	allowedDocumentMIME = map[string]bool{
		"application/pdf": true,
		"text/plain":      true,
	}
)

// ObjectStorage is the part of the MinIO client the service uses.
type ObjectStorage interface {
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error
}

type UploadInput struct {
	FileName string
	Size     int64
	MimeType string
	Reader   io.Reader
}

type Service interface {
	Upload(ctx context.Context, userID uuid.UUID, input UploadInput) (*domain.Media, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Media, error)
	Delete(ctx context.Context, id uuid.UUID, actor *domain.User) error
	ListMine(ctx context.Context, userID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.Media], error)
}

type service struct {
	mediaRepo repository.MediaRepository
	storage   ObjectStorage
	cfg       *config.Config
}

func NewService(mediaRepo repository.MediaRepository, storage ObjectStorage, cfg *config.Config) Service {
	return &service{
		mediaRepo: mediaRepo,
		storage:   storage,
		cfg:       cfg,
	}
}

func (s *service) Upload(ctx context.Context, userID uuid.UUID, input UploadInput) (*domain.Media, error) {
	if input.Size > MaxUploadSize {
		return nil, ErrFileTooLarge
	}

	mimeType := strings.ToLower(strings.TrimSpace(strings.SplitN(input.MimeType, ";", 2)[0]))
	fileName := path.Base(input.FileName)
	ext := strings.ToLower(path.Ext(fileName))
	reader := input.Reader
	size := input.Size

	switch {
	case imaging.IsImage(mimeType):
		encoded, err := imaging.ToWebP(input.Reader, mimeType, s.cfg.ImageMaxWidth, s.cfg.ImageWebPQuality)
		if err != nil {
			return nil, fmt.Errorf("failed to process image: %w", err)
		}
		reader = bytes.NewReader(encoded)
		size = int64(len(encoded))
		mimeType = "image/webp"
		fileName = strings.TrimSuffix(fileName, path.Ext(fileName)) + ".webp"
		ext = ".webp"
	case allowedDocumentMIME[mimeType]:
	default:
		return nil, ErrUnsupportedType
	}

	mediaID := uuid.New()
	storagePath := fmt.Sprintf("%s%s/%s%s", config.AttachmentPrefix, time.Now().UTC().Format("2006/01"), mediaID.String(), ext)

	_, err := s.storage.PutObject(ctx, s.cfg.MinIOBucket, storagePath, reader, size, minio.PutObjectOptions{
		ContentType: mimeType,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload to MinIO: %w", err)
	}

	media := &domain.Media{
		ID:          mediaID,
		UploadedBy:  userID,
		FileName:    fileName,
		FileSize:    size,
		MimeType:    mimeType,
		StoragePath: storagePath,
	}

	if err := s.mediaRepo.Create(ctx, media); err != nil {
		_ = s.storage.RemoveObject(ctx, s.cfg.MinIOBucket, storagePath, minio.RemoveObjectOptions{})
		return nil, err
	}

	media.URL = s.publicURL(storagePath)
	return media, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*domain.Media, error) {
	media, err := s.mediaRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if media == nil {
		return nil, ErrMediaNotFound
	}
	media.URL = s.publicURL(media.StoragePath)
	return media, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID, actor *domain.User) error {
	media, err := s.mediaRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if media == nil {
		return ErrMediaNotFound
	}
	if !actor.CanModify(media.UploadedBy) {
		return ErrForbidden
	}

	if err := s.mediaRepo.Delete(ctx, id); err != nil {
		return err
	}

	if err := s.storage.RemoveObject(ctx, s.cfg.MinIOBucket, media.StoragePath, minio.RemoveObjectOptions{}); err != nil {
		logrus.WithError(err).WithField("path", media.StoragePath).Warn("failed to remove object")
	}
	return nil
}

func (s *service) ListMine(ctx context.Context, userID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.Media], error) {
	params.Validate()

	items, total, err := s.mediaRepo.ListByUploader(ctx, userID, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Media]{}, err
	}
	for i := range items {
		items[i].URL = s.publicURL(items[i].StoragePath)
	}
	return domain.NewPaginatedResponse(items, params.Page, params.PageSize, total), nil
}

func (s *service) publicURL(storagePath string) string {
	scheme := "http"
	if s.cfg.MinIOPublicUseSSL {
		scheme = "https"
	}
	u := url.URL{Scheme: scheme, Host: s.cfg.MinIOPublicEndpoint, Path: "/" + s.cfg.MinIOBucket + "/" + storagePath}
	return u.String()
}
