package email

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"

	jwemail "github.com/jordan-wright/email"
	"github.com/resend/resend-go/v2"
)

type Sender interface {
	Send(ctx context.Context, to, subject, body string) error
}

// LogSender logs emails instead of sending them — used with MAIL_PROVIDER=log.
type LogSender struct {
	logger *slog.Logger
}

func (s *LogSender) Send(ctx context.Context, to, subject, body string) error {
	s.logger.InfoContext(ctx, "email (local dev)", "to", to, "subject", subject, "body", body)
	return nil
}

// ResendSender sends emails via the Resend API.
type ResendSender struct {
	client *resend.Client
	from   string
}

func (s *ResendSender) Send(ctx context.Context, to, subject, body string) error {
	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{to},
		Subject: subject,
		Html:    body,
	}
	_, err := s.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	return nil
}

// SMTPSender delivers through a plain SMTP relay.
type SMTPSender struct {
	addr string
	auth smtp.Auth
	from string
}

func (s *SMTPSender) Send(_ context.Context, to, subject, body string) error {
	e := jwemail.NewEmail()
	e.From = s.from
	e.To = []string{to}
	e.Subject = subject
	e.HTML = []byte(body)

	if err := e.Send(s.addr, s.auth); err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	return nil
}

type SenderConfig struct {
	Provider     string // log, resend or smtp
	From         string
	ResendAPIKey string
	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
}

// NewSender picks the Sender implementation for cfg.Provider. Unknown
// providers fall back to LogSender.
func NewSender(cfg SenderConfig, logger *slog.Logger) Sender {
	switch cfg.Provider {
	case "resend":
		return &ResendSender{
			client: resend.NewClient(cfg.ResendAPIKey),
			from:   cfg.From,
		}
	case "smtp":
		var auth smtp.Auth
		if cfg.SMTPUsername != "" {
			auth = smtp.PlainAuth("", cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPHost)
		}
		return &SMTPSender{
			addr: cfg.SMTPHost + ":" + cfg.SMTPPort,
			auth: auth,
			from: cfg.From,
		}
	default:
		return &LogSender{logger: logger.With("component", "email")}
	}
}
