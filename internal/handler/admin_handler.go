package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"ls-tech-blogs/internal/domain"
	"ls-tech-blogs/internal/middleware"
	"ls-tech-blogs/internal/pkg/i18n"
	"ls-tech-blogs/internal/service/audit"
	"ls-tech-blogs/internal/service/blog"
	"ls-tech-blogs/internal/service/dashboard"
	"ls-tech-blogs/internal/service/export"
	"ls-tech-blogs/internal/service/interaction"
	"ls-tech-blogs/internal/service/notification"
	"ls-tech-blogs/internal/service/report"
	"ls-tech-blogs/internal/service/user"
)

// AdminHandler serves the /admin console. Every route sits behind RequireRole(domain.RoleAdmin).
type AdminHandler struct {
	userService        user.Service
	blogService        blog.Service
	interactionService interaction.Service
	notifService       notification.Service
	reportService      report.Service
	dashboardService   dashboard.Service
	exportService      export.Service
	auditService       audit.Service
	locale             string
}

func NewAdminHandler(
	userService user.Service,
	blogService blog.Service,
	interactionService interaction.Service,
	notifService notification.Service,
	reportService report.Service,
	dashboardService dashboard.Service,
	exportService export.Service,
	auditService audit.Service,
	locale string,
) *AdminHandler {
	return &AdminHandler{
		userService:        userService,
		blogService:        blogService,
		interactionService: interactionService,
		notifService:       notifService,
		reportService:      reportService,
		dashboardService:   dashboardService,
		exportService:      exportService,
		auditService:       auditService,
		locale:             locale,
	}
}

func adminUserError(err error) error {
	switch {
	case errors.Is(err, user.ErrUserNotFound):
		return middleware.NotFound("User not found")
	case errors.Is(err, user.ErrCannotModifySelf):
		return middleware.Forbidden("Cannot modify your own account")
	case errors.Is(err, user.ErrInvalidRole):
		return middleware.BadRequest("Role must be employee or admin")
	}
	return err
}

func optionalUUID(c *fiber.Ctx, key, label string) (*uuid.UUID, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, middleware.BadRequest("Invalid " + label + " ID")
	}
	return &id, nil
}

func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	filter := domain.UserFilter{
		Search:    c.Query("search"),
		Role:      c.Query("role"),
		SortBy:    c.Query("sortBy", "created_at"),
		SortOrder: c.Query("sortOrder", "desc"),
	}
	if raw := c.Query("isActive"); raw != "" {
		active := raw == "true"
		filter.IsActive = &active
	}

	result, err := h.userService.List(c.UserContext(), filter, getPaginationParams(c))
	if err != nil {
		return err
	}
	return c.JSON(result)
}

func (h *AdminHandler) GetUser(c *fiber.Ctx) error {
	id, err := parseID(c, "id", "user")
	if err != nil {
		return err
	}

	u, err := h.userService.GetByID(c.UserContext(), id)
	if err != nil {
		return adminUserError(err)
	}
	return c.JSON(u)
}

func (h *AdminHandler) UpdateUserRole(c *fiber.Ctx) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := parseID(c, "id", "user")
	if err != nil {
		return err
	}

	var input domain.UpdateRoleInput
	if err := bind(c, &input); err != nil {
		return err
	}

	u, err := h.userService.UpdateRole(c.UserContext(), actor, id, domain.UserRole(input.Role))
	if err != nil {
		return adminUserError(err)
	}
	h.recordAudit(c, domain.AuditUserRoleChanged, "user", &id, fiber.Map{"role": input.Role})
	return c.JSON(u)
}

func (h *AdminHandler) UpdateUserStatus(c *fiber.Ctx) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := parseID(c, "id", "user")
	if err != nil {
		return err
	}

	var input domain.UpdateStatusInput
	if err := bind(c, &input); err != nil {
		return err
	}

	u, err := h.userService.SetActive(c.UserContext(), actor, id, *input.IsActive)
	if err != nil {
		return adminUserError(err)
	}
	h.recordAudit(c, domain.AuditUserStatusChanged, "user", &id, fiber.Map{"is_active": *input.IsActive})
	return c.JSON(u)
}

func (h *AdminHandler) ListBlogs(c *fiber.Ctx) error {
	filter := domain.BlogFilter{
		Search: c.Query("search"),
		Status: domain.BlogStatus(c.Query("status")),
	}
	authorID, err := optionalUUID(c, "author", "author")
	if err != nil {
		return err
	}
	filter.AuthorID = authorID

	result, err := h.blogService.AdminList(c.UserContext(), filter, getPaginationParams(c))
	if err != nil {
		return err
	}
	return c.JSON(result)
}

func (h *AdminHandler) DeleteBlog(c *fiber.Ctx) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := parseID(c, "id", "blog")
	if err != nil {
		return err
	}

	if err := h.blogService.Delete(c.UserContext(), id, actor); err != nil {
		return blogError(err)
	}
	h.recordAudit(c, domain.AuditBlogDeleted, "blog", &id, nil)
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *AdminHandler) ListComments(c *fiber.Ctx) error {
	filter := domain.CommentFilter{Search: c.Query("search")}

	blogID, err := optionalUUID(c, "blog", "blog")
	if err != nil {
		return err
	}
	userID, err := optionalUUID(c, "user", "user")
	if err != nil {
		return err
	}
	filter.BlogID = blogID
	filter.UserID = userID

	result, err := h.interactionService.ListComments(c.UserContext(), filter, getPaginationParams(c))
	if err != nil {
		return err
	}
	return c.JSON(result)
}

func (h *AdminHandler) DeleteComment(c *fiber.Ctx) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := parseID(c, "id", "comment")
	if err != nil {
		return err
	}

	deleted, err := h.interactionService.DeleteInteraction(c.UserContext(), id, actor)
	if err != nil {
		return interactionError(err)
	}
	h.recordAudit(c, domain.AuditCommentDeleted, "comment", &id, fiber.Map{"deleted": deleted})

	return c.JSON(fiber.Map{
		"message": i18n.Translate(h.locale, "INTERACTION_DELETED"),
		"deleted": deleted,
	})
}

func (h *AdminHandler) SendNotification(c *fiber.Ctx) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}

	var input domain.SendNotificationInput
	if err := bind(c, &input); err != nil {
		return err
	}

	sent, err := h.notifService.Send(c.UserContext(), actor, input)
	if err != nil {
		switch {
		case errors.Is(err, notification.ErrTargetUserRequired):
			return middleware.BadRequest("Missing mandatory field `targetUser`")
		case errors.Is(err, notification.ErrTargetUsersRequired):
			return middleware.BadRequest("Missing mandatory field `targetUsers`")
		case errors.Is(err, notification.ErrTargetUserNotFound):
			return middleware.NotFound("Target user not found")
		case errors.Is(err, notification.ErrNoRecipients):
			return middleware.BadRequest("No users match the selected target")
		case errors.Is(err, notification.ErrInvalidTarget):
			return middleware.BadRequest("`target` must be one of all, admins, top_contributors, specific_user, specific_users")
		case errors.Is(err, notification.ErrExpiryInPast):
			return middleware.BadRequest("`expiresAt` must be in the future")
		}
		return err
	}
	var entityID *uuid.UUID
	if len(sent) == 1 {
		entityID = &sent[0].ID
	}
	h.recordAudit(c, domain.AuditNotificationSent, "notification", entityID, fiber.Map{
		"target": input.Target,
		"count":  len(sent),
	})

	views := make([]domain.AdminNotificationItem, 0, len(sent))
	for i := range sent {
		views = append(views, sent[i].AdminView())
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": i18n.Translate(h.locale, "NOTIFICATION_SENT"),
		"data":    views,
		"count":   len(views),
	})
}

func (h *AdminHandler) ListNotifications(c *fiber.Ctx) error {
	// expired notifications are hidden unless active=false
	filter := domain.NotificationFilter{
		Type:       c.Query("type"),
		ActiveOnly: c.Query("active") != "false",
	}
	result, err := h.notifService.ListAll(c.UserContext(), filter, getPaginationParams(c))
	if err != nil {
		return err
	}
	return c.JSON(result)
}

func (h *AdminHandler) DeleteNotification(c *fiber.Ctx) error {
	id, err := parseID(c, "id", "notification")
	if err != nil {
		return err
	}

	if err := h.notifService.Delete(c.UserContext(), id); err != nil {
		if errors.Is(err, notification.ErrNotificationNotFound) {
			return middleware.NotFound("Notification not found")
		}
		return err
	}
	h.recordAudit(c, domain.AuditNotificationDeleted, "notification", &id, nil)
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *AdminHandler) ListReports(c *fiber.Ctx) error {
	result, err := h.reportService.List(c.UserContext(), c.Query("status"), getPaginationParams(c))
	if err != nil {
		return err
	}
	return c.JSON(result)
}

func (h *AdminHandler) UpdateReport(c *fiber.Ctx) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := parseID(c, "id", "report")
	if err != nil {
		return err
	}

	var input domain.UpdateReportInput
	if err := bind(c, &input); err != nil {
		return err
	}

	r, err := h.reportService.UpdateStatus(c.UserContext(), id, actor, input.Status)
	if err != nil {
		return reportError(err)
	}
	h.recordAudit(c, domain.AuditReportReviewed, "report", &id, fiber.Map{"status": input.Status})
	return c.JSON(r)
}

func (h *AdminHandler) DashboardStats(c *fiber.Ctx) error {
	stats, err := h.dashboardService.GetStats(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(stats)
}

func (h *AdminHandler) Export(c *fiber.Ctx) error {
	exportType := domain.ExportType(c.Params("type"))
	file, err := h.exportService.Export(c.UserContext(), exportType)
	if err != nil {
		if errors.Is(err, export.ErrInvalidType) {
			return middleware.BadRequest("Export type must be one of users, blogs, comments")
		}
		return err
	}
	h.recordAudit(c, domain.AuditDataExported, string(exportType), nil, nil)
	return c.JSON(file)
}
