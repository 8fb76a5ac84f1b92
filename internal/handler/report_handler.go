package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"ls-tech-blogs/internal/domain"
	"ls-tech-blogs/internal/middleware"
	"ls-tech-blogs/internal/service/report"
)

type ReportHandler struct {
	reportService report.Service
}

func NewReportHandler(reportService report.Service) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

func reportError(err error) error {
	switch {
	case errors.Is(err, report.ErrTargetRequired):
		return middleware.BadRequest("Either blog_id or comment_id is required")
	case errors.Is(err, report.ErrTargetNotFound):
		return middleware.NotFound("Reported content not found")
	case errors.Is(err, report.ErrReportNotFound):
		return middleware.NotFound("Report not found")
	}
	return err
}

func (h *ReportHandler) Create(c *fiber.Ctx) error {
	u, err := currentUser(c)
	if err != nil {
		return err
	}

	var input domain.CreateReportInput
	if err := bind(c, &input); err != nil {
		return err
	}

	r, err := h.reportService.Create(c.UserContext(), u, input)
	if err != nil {
		return reportError(err)
	}
	return c.Status(fiber.StatusCreated).JSON(r)
}
