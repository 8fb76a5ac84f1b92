package middleware

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"ls-tech-blogs/internal/domain"
	"ls-tech-blogs/internal/service/auth"
)

const (
	UserContextKey   = "user"
	UserIDContextKey = "user_id"
)

// TokenAuthenticator resolves a bearer token to a user.
type TokenAuthenticator interface {
	ValidateAccessToken(token string) (*auth.Claims, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

func bearerToken(c *fiber.Ctx) (string, bool) {
	parts := strings.SplitN(c.Get(fiber.HeaderAuthorization), " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func AuthRequired(authenticator TokenAuthenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Get(fiber.HeaderAuthorization) == "" {
			return Unauthorized("Missing authorization header")
		}

		token, ok := bearerToken(c)
		if !ok {
			return Unauthorized("Invalid authorization header format")
		}

		claims, err := authenticator.ValidateAccessToken(token)
		if err != nil {
			return Unauthorized("Invalid or expired token")
		}

		user, err := authenticator.GetUserByID(c.UserContext(), claims.UserID)
		if err != nil {
			return err
		}
		if user == nil {
			return Unauthorized("User not found")
		}
		if !user.IsActive {
			return Forbidden("Your account has been deactivated")
		}

		c.Locals(UserContextKey, user)
		c.Locals(UserIDContextKey, user.ID)

		return c.Next()
	}
}

// OptionalAuth attaches the user when a valid token is present and never rejects the request.
func OptionalAuth(authenticator TokenAuthenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := bearerToken(c)
		if !ok {
			return c.Next()
		}

		claims, err := authenticator.ValidateAccessToken(token)
		if err != nil {
			return c.Next()
		}

		user, err := authenticator.GetUserByID(c.UserContext(), claims.UserID)
		if err == nil && user != nil && user.IsActive {
			c.Locals(UserContextKey, user)
			c.Locals(UserIDContextKey, user.ID)
		}
		return c.Next()
	}
}

func GetCurrentUser(c *fiber.Ctx) *domain.User {
	user, ok := c.Locals(UserContextKey).(*domain.User)
	if !ok {
		return nil
	}
	return user
}

func GetCurrentUserID(c *fiber.Ctx) uuid.UUID {
	userID, ok := c.Locals(UserIDContextKey).(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return userID
}
