package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"ls-tech-blogs/internal/domain"
	"ls-tech-blogs/internal/service/auth"
)

type AuthService struct {
	mock.Mock
}

func (m *AuthService) Signup(ctx context.Context, input domain.SignupInput) (*domain.User, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *AuthService) VerifyOTP(ctx context.Context, input domain.VerifyOTPInput) error {
	args := m.Called(ctx, input)
	return args.Error(0)
}

func (m *AuthService) ResendOTP(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

func (m *AuthService) Login(ctx context.Context, input domain.LoginInput) (*domain.User, *domain.TokenPair, error) {
	args := m.Called(ctx, input)
	var r0 *domain.User
	if v := args.Get(0); v != nil {
		r0 = v.(*domain.User)
	}
	var r1 *domain.TokenPair
	if v := args.Get(1); v != nil {
		r1 = v.(*domain.TokenPair)
	}
	return r0, r1, args.Error(2)
}

func (m *AuthService) GoogleLogin(ctx context.Context, idToken string) (*domain.User, *domain.TokenPair, error) {
	args := m.Called(ctx, idToken)
	var r0 *domain.User
	if v := args.Get(0); v != nil {
		r0 = v.(*domain.User)
	}
	var r1 *domain.TokenPair
	if v := args.Get(1); v != nil {
		r1 = v.(*domain.TokenPair)
	}
	return r0, r1, args.Error(2)
}

func (m *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*domain.TokenPair, error) {
	args := m.Called(ctx, refreshToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TokenPair), args.Error(1)
}

func (m *AuthService) ValidateAccessToken(token string) (*auth.Claims, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.Claims), args.Error(1)
}

func (m *AuthService) GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

func (m *AuthService) ResetPassword(ctx context.Context, token string, newPassword string) error {
	args := m.Called(ctx, token, newPassword)
	return args.Error(0)
}

type OTPStore struct {
	mock.Mock
}

func (m *OTPStore) Save(ctx context.Context, email string, codeHash string, ttl time.Duration) error {
	args := m.Called(ctx, email, codeHash, ttl)
	return args.Error(0)
}

func (m *OTPStore) Get(ctx context.Context, email string) (string, error) {
	args := m.Called(ctx, email)
	return args.String(0), args.Error(1)
}

func (m *OTPStore) Delete(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

type GoogleVerifier struct {
	mock.Mock
}

func (m *GoogleVerifier) Verify(idToken string) (*auth.GoogleIdentity, error) {
	args := m.Called(idToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.GoogleIdentity), args.Error(1)
}
