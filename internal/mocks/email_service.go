package mocks

import (
	"context"
	"time"

	"github.com/resend/resend-go/v3"
	"github.com/stretchr/testify/mock"
)

type EmailService struct {
	mock.Mock
}

func (m *EmailService) SendOTP(ctx context.Context, toEmail string, name string, otp string, expiresIn time.Duration) error {
	args := m.Called(ctx, toEmail, name, otp, expiresIn)
	return args.Error(0)
}

func (m *EmailService) SendWelcome(ctx context.Context, toEmail string, name string) error {
	args := m.Called(ctx, toEmail, name)
	return args.Error(0)
}

func (m *EmailService) SendPasswordReset(ctx context.Context, toEmail string, name string, resetToken string) error {
	args := m.Called(ctx, toEmail, name, resetToken)
	return args.Error(0)
}

type EmailSender struct {
	mock.Mock
}

func (m *EmailSender) SendWithContext(ctx context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*resend.SendEmailResponse), args.Error(1)
}
