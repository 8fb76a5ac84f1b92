package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"ls-tech-blogs/internal/domain"
	"ls-tech-blogs/internal/middleware"
	"ls-tech-blogs/internal/pkg/i18n"
	"ls-tech-blogs/internal/service/auth"
)

type AuthHandler struct {
	authService auth.Service
	locale      string
}

func NewAuthHandler(authService auth.Service, locale string) *AuthHandler {
	return &AuthHandler{authService: authService, locale: locale}
}

func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var input domain.SignupInput
	if err := bind(c, &input); err != nil {
		return err
	}

	user, err := h.authService.Signup(c.UserContext(), input)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrEmailExists):
			return middleware.Conflict("Email already registered")
		case errors.Is(err, auth.ErrUsernameTaken):
			return middleware.Conflict("Username already taken")
		case errors.Is(err, auth.ErrDomainNotAllowed):
			return middleware.Forbidden("Email domain is not allowed")
		}
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"user":    user,
		"message": i18n.Translate(h.locale, "SIGNUP_SUCCESS"),
	})
}

func (h *AuthHandler) VerifyOTP(c *fiber.Ctx) error {
	var input domain.VerifyOTPInput
	if err := bind(c, &input); err != nil {
		return err
	}

	if err := h.authService.VerifyOTP(c.UserContext(), input); err != nil {
		return otpError(err)
	}

	return c.JSON(fiber.Map{
		"message": i18n.Translate(h.locale, "OTP_VERIFIED"),
	})
}

func (h *AuthHandler) ResendOTP(c *fiber.Ctx) error {
	var input domain.ResendOTPInput
	if err := bind(c, &input); err != nil {
		return err
	}

	if err := h.authService.ResendOTP(c.UserContext(), input.Email); err != nil {
		return otpError(err)
	}

	return c.JSON(fiber.Map{
		"message": i18n.Translate(h.locale, "OTP_RESENT"),
	})
}

func otpError(err error) error {
	switch {
	case errors.Is(err, auth.ErrInvalidOTP):
		return middleware.BadRequest("Invalid or expired OTP")
	case errors.Is(err, auth.ErrUserNotFound):
		return middleware.BadRequest("User does not exist")
	case errors.Is(err, auth.ErrAlreadyVerified):
		return middleware.BadRequest("Email is already verified")
	}
	return err
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input domain.LoginInput
	if err := bind(c, &input); err != nil {
		return err
	}

	user, tokens, err := h.authService.Login(c.UserContext(), input)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidCredentials):
			return middleware.Unauthorized("Invalid email, username or password")
		case errors.Is(err, auth.ErrEmailNotVerified):
			return middleware.Forbidden("Email not verified. Please verify your email first.")
		case errors.Is(err, auth.ErrAccountInactive):
			return middleware.Forbidden("Your account has been deactivated")
		}
		return err
	}

	return c.JSON(loginResponse(user, tokens))
}

func (h *AuthHandler) GoogleLogin(c *fiber.Ctx) error {
	var input domain.GoogleLoginInput
	if err := bind(c, &input); err != nil {
		return err
	}

	user, tokens, err := h.authService.GoogleLogin(c.UserContext(), input.IDToken)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidGoogleToken):
			return middleware.Unauthorized("Invalid Google token")
		case errors.Is(err, auth.ErrDomainNotAllowed):
			return middleware.Forbidden("Email domain is not allowed")
		case errors.Is(err, auth.ErrAccountInactive):
			return middleware.Forbidden("Your account has been deactivated")
		}
		return err
	}

	return c.JSON(loginResponse(user, tokens))
}

func loginResponse(user *domain.User, tokens *domain.TokenPair) fiber.Map {
	return fiber.Map{
		"user":          user,
		"access_token":  tokens.AccessToken,
		"refresh_token": tokens.RefreshToken,
		"expires_in":    tokens.ExpiresIn,
	}
}

func (h *AuthHandler) RefreshToken(c *fiber.Ctx) error {
	var input domain.RefreshTokenInput
	if err := bind(c, &input); err != nil {
		return err
	}

	tokens, err := h.authService.RefreshToken(c.UserContext(), input.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidToken):
			return middleware.Unauthorized("Invalid refresh token")
		case errors.Is(err, auth.ErrUserNotFound):
			return middleware.Unauthorized("User not found")
		case errors.Is(err, auth.ErrAccountInactive):
			return middleware.Forbidden("Your account has been deactivated")
		}
		return err
	}

	return c.JSON(tokens)
}

func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var input domain.ForgotPasswordInput
	if err := bind(c, &input); err != nil {
		return err
	}

	if err := h.authService.RequestPasswordReset(c.UserContext(), input.Email); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "If the email exists, a reset link has been sent",
	})
}

func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var input domain.ResetPasswordInput
	if err := bind(c, &input); err != nil {
		return err
	}

	if err := h.authService.ResetPassword(c.UserContext(), input.Token, input.Password); err != nil {
		if errors.Is(err, auth.ErrInvalidToken) || errors.Is(err, auth.ErrTokenExpired) {
			return middleware.BadRequest("Invalid or expired reset token")
		}
		return err
	}

	return c.JSON(fiber.Map{
		"message": "Password has been reset successfully",
	})
}
