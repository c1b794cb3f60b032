// Package mail dispatches transactional email.
package mail

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

// Message is a single outbound email.
type Message struct {
	To      string
	Subject string
	Text    string
	HTML    string
}

// Sender dispatches email. Implementations must be safe for concurrent use.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// SendGridSender sends email through the SendGrid API.
type SendGridSender struct {
	client      *sendgrid.Client
	fromName    string
	fromAddress string
	logger      *slog.Logger
}

// NewSendGridSender creates a sender backed by SendGrid.
func NewSendGridSender(apiKey, fromName, fromAddress string, logger *slog.Logger) *SendGridSender {
	return &SendGridSender{
		client:      sendgrid.NewSendClient(apiKey),
		fromName:    fromName,
		fromAddress: fromAddress,
		logger:      logger,
	}
}

// Send dispatches the message through SendGrid.
func (s *SendGridSender) Send(_ context.Context, msg Message) error {
	from := sgmail.NewEmail(s.fromName, s.fromAddress)
	to := sgmail.NewEmail("", msg.To)
	email := sgmail.NewSingleEmail(from, msg.Subject, to, msg.Text, msg.HTML)

	resp, err := s.client.Send(email)
	if err != nil {
		return fmt.Errorf("sendgrid send: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid send: status %d", resp.StatusCode)
	}

	s.logger.Debug("email dispatched", "subject", msg.Subject, "status", resp.StatusCode)
	return nil
}

// LogSender writes emails to the log instead of sending them.
// Used in development when no SendGrid key is configured.
type LogSender struct {
	logger *slog.Logger
}

// NewLogSender creates a log-only sender.
func NewLogSender(logger *slog.Logger) *LogSender {
	return &LogSender{logger: logger}
}

// Send logs the message without dispatching it.
func (s *LogSender) Send(_ context.Context, msg Message) error {
	s.logger.Info("email suppressed (no mail provider configured)",
		"to", msg.To,
		"subject", msg.Subject,
		"body", msg.Text,
	)
	return nil
}

// PasswordResetMessage builds the password-reset email for an account.
// The link points at the frontend reset page, which posts uid and token back
// to the confirm endpoint.
func PasswordResetMessage(to, username, frontendURL, uid, token string) Message {
	link := fmt.Sprintf("%s/reset-password?uid=%s&token=%s",
		frontendURL, url.QueryEscape(uid), url.QueryEscape(token))

	text := fmt.Sprintf(
		"Hi %s,\n\nSomeone requested a password reset for your GamesHub account. "+
			"If this was you, open the link below to choose a new password:\n\n%s\n\n"+
			"The link is valid for 72 hours. If you didn't request this, you can safely ignore this email.\n",
		username, link)

	html := fmt.Sprintf(
		"<p>Hi %s,</p><p>Someone requested a password reset for your GamesHub account. "+
			"If this was you, <a href=%q>choose a new password here</a>.</p>"+
			"<p>The link is valid for 72 hours. If you didn't request this, you can safely ignore this email.</p>",
		username, link)

	return Message{
		To:      to,
		Subject: "Reset your GamesHub password",
		Text:    text,
		HTML:    html,
	}
}
