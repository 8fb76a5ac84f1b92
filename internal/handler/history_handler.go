package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"ls-tech-blogs/internal/domain"
	"ls-tech-blogs/internal/middleware"
	"ls-tech-blogs/internal/pkg/i18n"
	"ls-tech-blogs/internal/service/history"
)

type HistoryHandler struct {
	historyService history.Service
	locale         string
}

func NewHistoryHandler(historyService history.Service, locale string) *HistoryHandler {
	return &HistoryHandler{historyService: historyService, locale: locale}
}

func (h *HistoryHandler) RecordSearch(c *fiber.Ctx) error {
	var input domain.SearchHistoryInput
	if err := bind(c, &input); err != nil {
		return err
	}

	doc, err := h.historyService.RecordSearch(c.UserContext(), middleware.GetCurrentUserID(c), input)
	if err != nil {
		if errors.Is(err, history.ErrEmptyQuery) {
			return middleware.BadRequest("Missing mandatory field `query`")
		}
		return err
	}

	return c.JSON(fiber.Map{
		"message": i18n.Translate(h.locale, "SEARCH_RECORDED"),
		"data":    doc,
	})
}

func (h *HistoryHandler) ReadingHistory(c *fiber.Ctx) error {
	result, err := h.historyService.GetReadingHistory(c.UserContext(), middleware.GetCurrentUserID(c), getPaginationParams(c))
	if err != nil {
		return err
	}
	return c.JSON(result)
}
