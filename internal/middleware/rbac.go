package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"ls-tech-blogs/internal/domain"
)

// RequireRole must run after AuthRequired. Admins satisfy every role.
func RequireRole(role domain.UserRole) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := GetCurrentUser(c)
		if user == nil {
			return Unauthorized("User not authenticated")
		}

		if !user.HasRole(string(role)) {
			logrus.WithFields(logrus.Fields{
				"user_id": user.ID,
				"role":    user.Role,
				"path":    c.Path(),
			}).Warn("role check failed")
			return Forbidden("Insufficient permissions for this operation")
		}

		return c.Next()
	}
}
