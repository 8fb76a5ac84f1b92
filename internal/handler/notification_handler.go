package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"ls-tech-blogs/internal/middleware"
	"ls-tech-blogs/internal/pkg/i18n"
	"ls-tech-blogs/internal/service/notification"
)

type NotificationHandler struct {
	notifService notification.Service
	locale       string
}

func NewNotificationHandler(notifService notification.Service, locale string) *NotificationHandler {
	return &NotificationHandler{notifService: notifService, locale: locale}
}

func (h *NotificationHandler) List(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	var body struct {
		UnreadOnly bool `json:"unread_only"`
	}
	if err := bindOptional(c, &body); err != nil {
		return err
	}
	unreadOnly := body.UnreadOnly || c.QueryBool("unread_only")

	result, err := h.notifService.List(c.UserContext(), userID, unreadOnly, getPaginationParams(c))
	if err != nil {
		return err
	}

	return c.JSON(result)
}

func (h *NotificationHandler) GetUnreadCount(c *fiber.Ctx) error {
	count, err := h.notifService.GetUnreadCount(c.UserContext(), middleware.GetCurrentUserID(c))
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"unread_count": count,
	})
}

func (h *NotificationHandler) MarkAsRead(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := parseID(c, "id", "notification")
	if err != nil {
		return err
	}

	if err := h.notifService.MarkAsRead(c.UserContext(), id, user); err != nil {
		switch {
		case errors.Is(err, notification.ErrNotificationNotFound):
			return middleware.NotFound("Notification not found")
		case errors.Is(err, notification.ErrNotRecipient):
			return middleware.Forbidden("This notification is not addressed to you")
		}
		return err
	}

	return c.JSON(fiber.Map{
		"message": i18n.Translate(h.locale, "NOTIFICATION_READ"),
	})
}

func (h *NotificationHandler) MarkAllAsRead(c *fiber.Ctx) error {
	updated, err := h.notifService.MarkAllAsRead(c.UserContext(), middleware.GetCurrentUserID(c))
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": i18n.Translate(h.locale, "NOTIFICATIONS_ALL_READ"),
		"updated": updated,
	})
}
