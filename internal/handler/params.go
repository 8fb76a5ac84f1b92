package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"ls-tech-blogs/internal/domain"
	"ls-tech-blogs/internal/middleware"
	"ls-tech-blogs/internal/pkg/validation"
)

// getPaginationParams reads page and limit from the query string, falling back to a JSON body.
func getPaginationParams(c *fiber.Ctx) domain.PaginationParams {
	params := domain.DefaultPagination()

	if len(c.Body()) > 0 {
		_ = c.BodyParser(&params)
	}
	if page := c.QueryInt("page"); page > 0 {
		params.Page = page
	}
	if limit := c.QueryInt("limit"); limit > 0 {
		params.PageSize = limit
	}

	params.Validate()
	return params
}

func parseID(c *fiber.Ctx, param, label string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(param))
	if err != nil {
		return uuid.Nil, middleware.BadRequest("Invalid " + label + " ID")
	}
	return id, nil
}

// bind parses the body into input and runs struct validation.
func bind(c *fiber.Ctx, input any) error {
	if err := c.BodyParser(input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if err := validation.Struct(input); err != nil {
		return middleware.BadRequest(err.Error())
	}
	return nil
}

// bindOptional parses a body only when one was sent. Query parameters may still override it.
func bindOptional(c *fiber.Ctx, input any) error {
	if len(c.Body()) == 0 {
		return nil
	}
	if err := c.BodyParser(input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	return nil
}

func currentUser(c *fiber.Ctx) (*domain.User, error) {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return nil, middleware.Unauthorized("User not authenticated")
	}
	return user, nil
}
