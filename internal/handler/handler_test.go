package handler_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"ls-tech-blogs/internal/domain"
	"ls-tech-blogs/internal/middleware"
	"ls-tech-blogs/internal/pkg/i18n"
)

func init() {
	i18n.Register("en", i18n.Translations{
		"SIGNUP_SUCCESS":      "Signup successful. Check your email for the verification code.",
		"INTERACTION_DELETED": "Interaction deleted",
		"INTERACTION_LIKED":   "Blog liked",
		"NOTIFICATION_READ":   "Notification marked as read",
	})
}

func newApp() *fiber.App {
	return fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler})
}

// as stands in for AuthRequired.
func as(user *domain.User) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(middleware.UserContextKey, user)
		c.Locals(middleware.UserIDContextKey, user.ID)
		return c.Next()
	}
}

func do(t *testing.T, app *fiber.App, method, target string, body any) (*http.Response, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	out := map[string]any{}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &out))
	}
	return resp, out
}
