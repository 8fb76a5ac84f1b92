package email_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/resend/resend-go/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"ls-tech-blogs/internal/config"
	"ls-tech-blogs/internal/mocks"
	"ls-tech-blogs/internal/service/email"
)

func newService() (*mocks.EmailSender, email.Service) {
	sender := new(mocks.EmailSender)
	cfg := &config.Config{FromEmail: "noreply@lstech.io", Domain: "blogs.lstech.io"}
	return sender, email.NewServiceWithSender(sender, cfg)
}

func TestSendOTP(t *testing.T) {
	ctx := context.Background()
	sender, svc := newService()

	var sent *resend.SendEmailRequest
	sender.On("SendWithContext", ctx, mock.AnythingOfType("*resend.SendEmailRequest")).
		Run(func(args mock.Arguments) { sent = args.Get(1).(*resend.SendEmailRequest) }).
		Return(&resend.SendEmailResponse{Id: "msg-1"}, nil).Once()

	require.NoError(t, svc.SendOTP(ctx, "ada@example.com", "Ada", "482913", 10*time.Minute))

	assert.Equal(t, []string{"ada@example.com"}, sent.To)
	assert.Equal(t, "LS Tech Blogs <noreply@lstech.io>", sent.From)
	assert.Contains(t, sent.Html, "482913")
	assert.Contains(t, sent.Html, "10 minutes")
	assert.Contains(t, sent.Html, "Hi Ada")
}

func TestSendPasswordReset(t *testing.T) {
	ctx := context.Background()
	sender, svc := newService()

	sender.On("SendWithContext", ctx, mock.MatchedBy(func(req *resend.SendEmailRequest) bool {
		return assert.ObjectsAreEqual([]string{"ada@example.com"}, req.To) &&
			strings.Contains(req.Html, "https://blogs.lstech.io/reset-password?token=abc123")
	})).Return(&resend.SendEmailResponse{}, nil).Once()

	require.NoError(t, svc.SendPasswordReset(ctx, "ada@example.com", "Ada", "abc123"))
	sender.AssertExpectations(t)
}

func TestSendWelcome_EscapesName(t *testing.T) {
	ctx := context.Background()
	sender, svc := newService()

	var html string
	sender.On("SendWithContext", ctx, mock.Anything).
		Run(func(args mock.Arguments) { html = args.Get(1).(*resend.SendEmailRequest).Html }).
		Return(nil, errors.New("rate limited")).Once()

	err := svc.SendWelcome(ctx, "ada@example.com", "<b>Ada</b>")
	assert.EqualError(t, err, "rate limited")
	assert.NotContains(t, html, "<b>Ada</b>")
	assert.Contains(t, html, "&lt;b&gt;Ada&lt;/b&gt;")
}
