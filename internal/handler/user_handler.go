package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"ls-tech-blogs/internal/domain"
	"ls-tech-blogs/internal/middleware"
	"ls-tech-blogs/internal/service/media"
	"ls-tech-blogs/internal/service/user"
)

type UserHandler struct {
	userService  user.Service
	mediaService media.Service
}

func NewUserHandler(userService user.Service, mediaService media.Service) *UserHandler {
	return &UserHandler{
		userService:  userService,
		mediaService: mediaService,
	}
}

func (h *UserHandler) GetProfile(c *fiber.Ctx) error {
	u, err := currentUser(c)
	if err != nil {
		return err
	}
	return c.JSON(u)
}

func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	u, err := currentUser(c)
	if err != nil {
		return err
	}

	var input domain.UpdateProfileInput
	if err := bind(c, &input); err != nil {
		return err
	}

	updated, err := h.userService.UpdateProfile(c.UserContext(), u, input)
	if err != nil {
		return err
	}
	return c.JSON(updated)
}

func (h *UserHandler) UpdatePicture(c *fiber.Ctx) error {
	u, err := currentUser(c)
	if err != nil {
		return err
	}

	m, err := uploadFormFile(c, h.mediaService, u.ID)
	if err != nil {
		return err
	}
	if m.MimeType != "image/webp" {
		return middleware.BadRequest("Profile picture must be an image")
	}

	updated, err := h.userService.SetProfileImage(c.UserContext(), u, m.URL)
	if err != nil {
		return err
	}
	return c.JSON(updated)
}

func (h *UserHandler) GetPublicProfile(c *fiber.Ctx) error {
	id, err := parseID(c, "id", "user")
	if err != nil {
		return err
	}

	profile, err := h.userService.GetPublicProfile(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return middleware.NotFound("User not found")
		}
		return err
	}
	return c.JSON(profile)
}
