package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"ls-tech-blogs/internal/domain"
	"ls-tech-blogs/internal/middleware"
	"ls-tech-blogs/internal/pkg/i18n"
	"ls-tech-blogs/internal/service/interaction"
)

type InteractionHandler struct {
	interactionService interaction.Service
	locale             string
}

func NewInteractionHandler(interactionService interaction.Service, locale string) *InteractionHandler {
	return &InteractionHandler{interactionService: interactionService, locale: locale}
}

func interactionError(err error) error {
	switch {
	case errors.Is(err, interaction.ErrMissingCategory):
		return middleware.BadRequest("Missing mandatory field `category`")
	case errors.Is(err, interaction.ErrInvalidCategory):
		return middleware.BadRequest("`category` must be one of like, comment")
	case errors.Is(err, interaction.ErrMissingContent):
		return middleware.BadRequest("Missing mandatory field `content`")
	case errors.Is(err, interaction.ErrMissingParent):
		return middleware.BadRequest("Missing mandatory field `parentComment`")
	// kept at 400 for client compatibility
	case errors.Is(err, interaction.ErrBlogNotFound):
		return middleware.BadRequest("Blog not found")
	case errors.Is(err, interaction.ErrParentNotFound):
		return middleware.NotFound("Parent comment not found")
	case errors.Is(err, interaction.ErrAlreadyLiked):
		return middleware.BadRequest("You have already liked this blog")
	case errors.Is(err, interaction.ErrOwnBlog):
		return middleware.BadRequest("You cannot like your own blog")
	case errors.Is(err, interaction.ErrInteractionNotFound):
		return middleware.NotFound("Interaction not found")
	case errors.Is(err, interaction.ErrCommentNotFound):
		return middleware.NotFound("Comment not found")
	case errors.Is(err, interaction.ErrCommentAlreadyLiked):
		return middleware.BadRequest("You have already liked this comment")
	case errors.Is(err, interaction.ErrCommentNotLiked):
		return middleware.BadRequest("You have not liked this comment")
	case errors.Is(err, interaction.ErrForbidden):
		return middleware.Forbidden("You are not allowed to modify this interaction")
	}
	return err
}

func (h *InteractionHandler) Post(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	blogID, err := parseID(c, "id", "blog")
	if err != nil {
		return err
	}

	var input domain.PostInteractionInput
	if err := bind(c, &input); err != nil {
		return err
	}

	result, err := h.interactionService.PostInteraction(c.UserContext(), blogID, user, input)
	if err != nil {
		return interactionError(err)
	}
	return c.Status(fiber.StatusCreated).JSON(result)
}

func (h *InteractionHandler) GetLikes(c *fiber.Ctx) error {
	blogID, err := parseID(c, "id", "blog")
	if err != nil {
		return err
	}

	likes, err := h.interactionService.GetLikes(c.UserContext(), blogID)
	if err != nil {
		return interactionError(err)
	}
	if likes == nil {
		likes = []domain.Interaction{}
	}
	return c.JSON(fiber.Map{"data": likes})
}

func (h *InteractionHandler) GetComments(c *fiber.Ctx) error {
	blogID, err := parseID(c, "id", "blog")
	if err != nil {
		return err
	}

	result, err := h.interactionService.GetComments(c.UserContext(), blogID, getPaginationParams(c))
	if err != nil {
		return interactionError(err)
	}
	return c.JSON(result)
}

func (h *InteractionHandler) GetReplies(c *fiber.Ctx) error {
	commentID, err := parseID(c, "id", "comment")
	if err != nil {
		return err
	}

	var query domain.ReplyQuery
	if err := bindOptional(c, &query); err != nil {
		return err
	}
	if skip := c.QueryInt("skip", -1); skip >= 0 {
		query.Skip = skip
	}
	if limit := c.QueryInt("limit"); limit > 0 {
		query.Limit = limit
	}

	page, err := h.interactionService.GetReplies(c.UserContext(), commentID, query)
	if err != nil {
		return interactionError(err)
	}
	return c.JSON(page)
}

func (h *InteractionHandler) LikeComment(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := parseID(c, "id", "comment")
	if err != nil {
		return err
	}

	var input domain.LikeCommentInput
	if err := bind(c, &input); err != nil {
		return err
	}

	result, err := h.interactionService.LikeCommentOrReply(c.UserContext(), id, user, input.Action)
	if err != nil {
		return interactionError(err)
	}
	return c.JSON(result)
}

func (h *InteractionHandler) UpdateComment(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := parseID(c, "id", "comment")
	if err != nil {
		return err
	}

	var input domain.UpdateCommentInput
	if err := bind(c, &input); err != nil {
		return err
	}

	result, err := h.interactionService.UpdateComment(c.UserContext(), id, user, input.Content)
	if err != nil {
		return interactionError(err)
	}
	return c.JSON(result)
}

func (h *InteractionHandler) Delete(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := parseID(c, "id", "interaction")
	if err != nil {
		return err
	}

	deleted, err := h.interactionService.DeleteInteraction(c.UserContext(), id, user)
	if err != nil {
		return interactionError(err)
	}

	return c.JSON(fiber.Map{
		"message": i18n.Translate(h.locale, "INTERACTION_DELETED"),
		"deleted": deleted,
	})
}
