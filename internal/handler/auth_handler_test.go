package handler_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"ls-tech-blogs/internal/domain"
	"ls-tech-blogs/internal/handler"
	"ls-tech-blogs/internal/mocks"
	"ls-tech-blogs/internal/service/auth"
)

func authApp(svc *mocks.AuthService) *fiber.App {
	h := handler.NewAuthHandler(svc, "en")
	app := newApp()
	app.Post("/signup", h.Signup)
	app.Post("/login", h.Login)
	app.Post("/verify-otp", h.VerifyOTP)
	return app
}

func validSignup() map[string]any {
	return map[string]any{
		"username":   "ada",
		"email":      "ada@example.com",
		"phone":      "0123456789",
		"name":       map[string]string{"first": "Ada", "last": "Lovelace"},
		"password":   "secret1",
		"rePassword": "secret1",
	}
}

func TestAuthHandler_Signup(t *testing.T) {
	t.Run("Created", func(t *testing.T) {
		svc := new(mocks.AuthService)
		svc.On("Signup", mock.Anything, mock.AnythingOfType("domain.SignupInput")).
			Return(&domain.User{ID: uuid.New(), Email: "ada@example.com"}, nil).Once()

		resp, body := do(t, authApp(svc), http.MethodPost, "/signup", validSignup())

		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		assert.Equal(t, "Signup successful. Check your email for the verification code.", body["message"])
	})

	t.Run("Mismatched passwords never reach the service", func(t *testing.T) {
		svc := new(mocks.AuthService)
		in := validSignup()
		in["rePassword"] = "other1"

		resp, body := do(t, authApp(svc), http.MethodPost, "/signup", in)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "BAD_REQUEST", body["code"])
		svc.AssertNotCalled(t, "Signup", mock.Anything, mock.Anything)
	})

	t.Run("Email conflict", func(t *testing.T) {
		svc := new(mocks.AuthService)
		svc.On("Signup", mock.Anything, mock.Anything).Return(nil, auth.ErrEmailExists).Once()

		resp, body := do(t, authApp(svc), http.MethodPost, "/signup", validSignup())

		assert.Equal(t, http.StatusConflict, resp.StatusCode)
		assert.Equal(t, "Email already registered", body["message"])
	})
}

func TestAuthHandler_Login(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"Bad password", auth.ErrInvalidCredentials, http.StatusUnauthorized},
		{"Unverified", auth.ErrEmailNotVerified, http.StatusForbidden},
		{"Deactivated", auth.ErrAccountInactive, http.StatusForbidden},
		{"Unexpected", errors.New("db down"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := new(mocks.AuthService)
			svc.On("Login", mock.Anything, domain.LoginInput{Handle: "ada", Password: "secret1"}).Return(nil, nil, tc.err).Once()

			resp, _ := do(t, authApp(svc), http.MethodPost, "/login", map[string]string{"handle": "ada", "password": "secret1"})
			assert.Equal(t, tc.status, resp.StatusCode)
		})
	}

	t.Run("Returns tokens", func(t *testing.T) {
		svc := new(mocks.AuthService)
		svc.On("Login", mock.Anything, mock.Anything).Return(
			&domain.User{ID: uuid.New(), Username: "ada"},
			&domain.TokenPair{AccessToken: "a", RefreshToken: "r", ExpiresIn: 900},
			nil,
		).Once()

		resp, body := do(t, authApp(svc), http.MethodPost, "/login", map[string]string{"handle": "ada", "password": "secret1"})

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "a", body["access_token"])
		assert.Equal(t, float64(900), body["expires_in"])
	})
}

func TestAuthHandler_VerifyOTP(t *testing.T) {
	svc := new(mocks.AuthService)
	svc.On("VerifyOTP", mock.Anything, mock.Anything).Return(auth.ErrInvalidOTP).Once()

	resp, body := do(t, authApp(svc), http.MethodPost, "/verify-otp", map[string]string{"email": "ada@example.com", "otp": "123456"})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Invalid or expired OTP", body["message"])
}
