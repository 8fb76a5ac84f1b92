package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"ls-tech-blogs/internal/domain"
	"ls-tech-blogs/internal/middleware"
)

// recordAudit stores a moderation step; a failed write is logged and the request still succeeds.
func (h *AdminHandler) recordAudit(c *fiber.Ctx, action domain.AuditAction, entityType string, entityID *uuid.UUID, details any) {
	err := h.auditService.Record(c.UserContext(), domain.RecordAuditInput{
		ActorID:    middleware.GetCurrentUserID(c),
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Details:    details,
		IPAddress:  c.IP(),
		UserAgent:  c.Get(fiber.HeaderUserAgent),
	})
	if err != nil {
		logrus.WithError(err).WithField("action", action).Error("failed to record audit log")
	}
}

func (h *AdminHandler) ListAuditLogs(c *fiber.Ctx) error {
	filter := domain.AuditFilter{Action: c.Query("action")}
	actorID, err := optionalUUID(c, "actor", "actor")
	if err != nil {
		return err
	}
	filter.ActorID = actorID

	result, err := h.auditService.List(c.UserContext(), filter, getPaginationParams(c))
	if err != nil {
		return err
	}
	return c.JSON(result)
}
