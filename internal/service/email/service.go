package email

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"time"

	"github.com/resend/resend-go/v3"

	"ls-tech-blogs/internal/config"
)

//go:embed templates/*.html
var templateFS embed.FS

type Service interface {
	SendOTP(ctx context.Context, toEmail, name, otp string, expiresIn time.Duration) error
	SendWelcome(ctx context.Context, toEmail, name string) error
	SendPasswordReset(ctx context.Context, toEmail, name, resetToken string) error
}

// Sender is the slice of the resend client this package needs.
type Sender interface {
	SendWithContext(ctx context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

type service struct {
	sender Sender
	config *config.Config
}

func NewService(cfg *config.Config) Service {
	client := resend.NewClient(cfg.ResendAPIKey)
	return NewServiceWithSender(client.Emails, cfg)
}

func NewServiceWithSender(sender Sender, cfg *config.Config) Service {
	return &service{sender: sender, config: cfg}
}

func render(templateName string, data any) (string, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/layout.html", "templates/"+templateName)
	if err != nil {
		return "", fmt.Errorf("failed to parse email templates: %w", err)
	}

	var body bytes.Buffer
	if err := tmpl.ExecuteTemplate(&body, "layout.html", data); err != nil {
		return "", fmt.Errorf("failed to execute email template: %w", err)
	}
	return body.String(), nil
}

func (s *service) sendEmail(ctx context.Context, toEmail, subject, templateName string, data any) error {
	html, err := render(templateName, data)
	if err != nil {
		return err
	}

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("LS Tech Blogs <%s>", s.config.FromEmail),
		To:      []string{toEmail},
		Html:    html,
		Subject: subject,
	}

	_, err = s.sender.SendWithContext(ctx, params)
	return err
}

func (s *service) SendOTP(ctx context.Context, toEmail, name, otp string, expiresIn time.Duration) error {
	data := struct {
		Title     string
		Name      string
		OTP       string
		ExpiresIn string
	}{
		Title:     "Verify your email",
		Name:      name,
		OTP:       otp,
		ExpiresIn: fmt.Sprintf("%d minutes", int(expiresIn.Minutes())),
	}
	return s.sendEmail(ctx, toEmail, "Your LS Tech Blogs verification code", "otp.html", data)
}

func (s *service) SendWelcome(ctx context.Context, toEmail, name string) error {
	data := struct {
		Title string
		Name  string
		Link  string
	}{
		Title: "Welcome to LS Tech Blogs",
		Name:  name,
		Link:  fmt.Sprintf("https://%s/login", s.config.Domain),
	}
	return s.sendEmail(ctx, toEmail, "Welcome to LS Tech Blogs", "welcome.html", data)
}

func (s *service) SendPasswordReset(ctx context.Context, toEmail, name, resetToken string) error {
	data := struct {
		Title string
		Name  string
		Link  string
	}{
		Title: "Reset your password",
		Name:  name,
		Link:  fmt.Sprintf("https://%s/reset-password?token=%s", s.config.Domain, resetToken),
	}
	return s.sendEmail(ctx, toEmail, "Reset your LS Tech Blogs password", "reset_password.html", data)
}
