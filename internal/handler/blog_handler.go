package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"ls-tech-blogs/internal/domain"
	"ls-tech-blogs/internal/middleware"
	"ls-tech-blogs/internal/service/blog"
	"ls-tech-blogs/internal/service/bookmark"
)

type BlogHandler struct {
	blogService     blog.Service
	bookmarkService bookmark.Service
}

func NewBlogHandler(blogService blog.Service, bookmarkService bookmark.Service) *BlogHandler {
	return &BlogHandler{
		blogService:     blogService,
		bookmarkService: bookmarkService,
	}
}

func blogError(err error) error {
	switch {
	case errors.Is(err, blog.ErrBlogNotFound):
		return middleware.NotFound("Blog not found")
	case errors.Is(err, blog.ErrForbidden):
		return middleware.Forbidden("You are not allowed to modify this blog")
	case errors.Is(err, blog.ErrAlreadyPublished):
		return middleware.BadRequest("Blog is already published")
	case errors.Is(err, blog.ErrNotPublished):
		return middleware.BadRequest("Blog is not published")
	}
	return err
}

// blogFilter reads the public listing filters from the query string.
func blogFilter(c *fiber.Ctx) (domain.BlogFilter, error) {
	filter := domain.BlogFilter{
		Search:   c.Query("q", c.Query("search")),
		Tag:      c.Query("tag"),
		Category: c.Query("category"),
		Sort:     domain.BlogSort(c.Query("sort", string(domain.SortLatest))),
	}

	if author := c.Query("author"); author != "" {
		id, err := uuid.Parse(author)
		if err != nil {
			return filter, middleware.BadRequest("Invalid author ID")
		}
		filter.AuthorID = &id
	}

	switch filter.Sort {
	case domain.SortLatest, domain.SortPopular, domain.SortMostLiked, domain.SortRecommended:
	default:
		return filter, middleware.BadRequest("sort must be one of latest, popular, likes, recommended")
	}
	return filter, nil
}

func (h *BlogHandler) List(c *fiber.Ctx) error {
	filter, err := blogFilter(c)
	if err != nil {
		return err
	}

	result, err := h.blogService.List(c.UserContext(), filter, getPaginationParams(c), middleware.GetCurrentUser(c))
	if err != nil {
		return err
	}
	return c.JSON(result)
}

func (h *BlogHandler) ListMine(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	status := domain.BlogStatus(c.Query("status"))
	if status != "" && status != domain.BlogDraft && status != domain.BlogPublished {
		return middleware.BadRequest("status must be draft or published")
	}

	result, err := h.blogService.ListMine(c.UserContext(), user, status, getPaginationParams(c))
	if err != nil {
		return err
	}
	return c.JSON(result)
}

func (h *BlogHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c, "id", "blog")
	if err != nil {
		return err
	}

	b, err := h.blogService.Get(c.UserContext(), id, middleware.GetCurrentUser(c))
	if err != nil {
		return blogError(err)
	}
	return c.JSON(b)
}

func (h *BlogHandler) Create(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var input domain.CreateBlogInput
	if err := bind(c, &input); err != nil {
		return err
	}

	b, err := h.blogService.Create(c.UserContext(), user, input)
	if err != nil {
		return blogError(err)
	}
	return c.Status(fiber.StatusCreated).JSON(b)
}

func (h *BlogHandler) Update(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := parseID(c, "id", "blog")
	if err != nil {
		return err
	}

	var input domain.UpdateBlogInput
	if err := bind(c, &input); err != nil {
		return err
	}

	b, err := h.blogService.Update(c.UserContext(), id, user, input)
	if err != nil {
		return blogError(err)
	}
	return c.JSON(b)
}

func (h *BlogHandler) Publish(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := parseID(c, "id", "blog")
	if err != nil {
		return err
	}

	b, err := h.blogService.Publish(c.UserContext(), id, user)
	if err != nil {
		return blogError(err)
	}
	return c.JSON(b)
}

func (h *BlogHandler) Unpublish(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := parseID(c, "id", "blog")
	if err != nil {
		return err
	}

	b, err := h.blogService.Unpublish(c.UserContext(), id, user)
	if err != nil {
		return blogError(err)
	}
	return c.JSON(b)
}

func (h *BlogHandler) Delete(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := parseID(c, "id", "blog")
	if err != nil {
		return err
	}

	if err := h.blogService.Delete(c.UserContext(), id, user); err != nil {
		return blogError(err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *BlogHandler) ToggleBookmark(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)
	id, err := parseID(c, "id", "blog")
	if err != nil {
		return err
	}

	bookmarked, err := h.bookmarkService.Toggle(c.UserContext(), userID, id)
	if err != nil {
		if errors.Is(err, bookmark.ErrBlogNotFound) {
			return middleware.NotFound("Blog not found")
		}
		return err
	}

	return c.JSON(fiber.Map{
		"bookmarked": bookmarked,
	})
}

func (h *BlogHandler) ListBookmarks(c *fiber.Ctx) error {
	result, err := h.bookmarkService.List(c.UserContext(), middleware.GetCurrentUserID(c), getPaginationParams(c))
	if err != nil {
		return err
	}
	return c.JSON(result)
}
