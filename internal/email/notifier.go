package email

import (
	"context"
	"fmt"
	"html"

	"github.com/ErlanBelekov/todo-app/internal/metrics"
)

const (
	kindSignupConfirmation = "signup_confirmation"
	kindResetPassword      = "reset_password"
)

// Notifier renders the transactional emails of the auth flow and hands them
// to a Sender. Calls block until the Sender returns.
type Notifier struct {
	sender Sender
}

func NewNotifier(sender Sender) *Notifier {
	return &Notifier{sender: sender}
}

func (n *Notifier) SendSignupConfirmation(ctx context.Context, to string) error {
	subject := "Welcome aboard"
	body := `<p>Your account has been created. You can sign in right away.</p>`
	return n.send(ctx, kindSignupConfirmation, to, subject, body)
}

func (n *Notifier) SendResetPassword(ctx context.Context, to, url, code string) error {
	subject := "Reset your password"
	body := fmt.Sprintf(
		`<p>Use the code below to choose a new password (it expires within 15 minutes):</p>`+
			`<p><strong>%s</strong></p><p><a href="%s">%s</a></p>`,
		html.EscapeString(code), html.EscapeString(url), html.EscapeString(url),
	)
	return n.send(ctx, kindResetPassword, to, subject, body)
}

func (n *Notifier) send(ctx context.Context, kind, to, subject, body string) error {
	if err := n.sender.Send(ctx, to, subject, body); err != nil {
		metrics.EmailsSentTotal.WithLabelValues(kind, "error").Inc()
		return fmt.Errorf("send %s: %w", kind, err)
	}
	metrics.EmailsSentTotal.WithLabelValues(kind, "ok").Inc()
	return nil
}
