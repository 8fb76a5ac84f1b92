package handler

import (
	"errors"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"ls-tech-blogs/internal/domain"
	"ls-tech-blogs/internal/middleware"
	"ls-tech-blogs/internal/service/media"
)

type MediaHandler struct {
	mediaService media.Service
}

func NewMediaHandler(mediaService media.Service) *MediaHandler {
	return &MediaHandler{mediaService: mediaService}
}

func mediaError(err error) error {
	switch {
	case errors.Is(err, media.ErrFileTooLarge):
		return middleware.PayloadTooLarge("File size must be less than 10MB")
	case errors.Is(err, media.ErrUnsupportedType):
		return middleware.BadRequest("Unsupported file type")
	case errors.Is(err, media.ErrMediaNotFound):
		return middleware.NotFound("Media not found")
	case errors.Is(err, media.ErrForbidden):
		return middleware.Forbidden("You are not allowed to delete this file")
	}
	return err
}

// uploadFormFile pushes the multipart "file" field through the media service.
func uploadFormFile(c *fiber.Ctx, mediaService media.Service, userID uuid.UUID) (*domain.Media, error) {
	file, err := c.FormFile("file")
	if err != nil {
		return nil, middleware.BadRequest("File is required")
	}
	if file.Size > media.MaxUploadSize {
		return nil, mediaError(media.ErrFileTooLarge)
	}

	reader, err := file.Open()
	if err != nil {
		return nil, middleware.BadRequest("Failed to read file")
	}
	defer func(f multipart.File) { _ = f.Close() }(reader)

	mimeType := file.Header.Get(fiber.HeaderContentType)
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	m, err := mediaService.Upload(c.UserContext(), userID, media.UploadInput{
		FileName: file.Filename,
		Size:     file.Size,
		MimeType: mimeType,
		Reader:   reader,
	})
	if err != nil {
		return nil, mediaError(err)
	}
	return m, nil
}

func (h *MediaHandler) Upload(c *fiber.Ctx) error {
	m, err := uploadFormFile(c, h.mediaService, middleware.GetCurrentUserID(c))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"data":       m,
		"attachment": m.Attachment(),
	})
}

func (h *MediaHandler) List(c *fiber.Ctx) error {
	result, err := h.mediaService.ListMine(c.UserContext(), middleware.GetCurrentUserID(c), getPaginationParams(c))
	if err != nil {
		return err
	}
	return c.JSON(result)
}

func (h *MediaHandler) Delete(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := parseID(c, "id", "media")
	if err != nil {
		return err
	}

	if err := h.mediaService.Delete(c.UserContext(), id, user); err != nil {
		return mediaError(err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
