package email_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/ErlanBelekov/todo-app/internal/email"
	"github.com/ErlanBelekov/todo-app/internal/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

type fakeSender struct {
	send func(ctx context.Context, to, subject, body string) error
}

func (s *fakeSender) Send(ctx context.Context, to, subject, body string) error {
	return s.send(ctx, to, subject, body)
}

func TestSendResetPassword_BodyCarriesURLAndCode(t *testing.T) {
	var gotTo, gotBody string
	sender := &fakeSender{
		send: func(_ context.Context, to, _, body string) error {
			gotTo, gotBody = to, body
			return nil
		},
	}

	const url = "http://localhost:3000/auth/reset-password-confirmation"
	err := email.NewNotifier(sender).SendResetPassword(context.Background(), "a@example.com", url, "01234")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotTo != "a@example.com" {
		t.Errorf("to = %q", gotTo)
	}
	if !strings.Contains(gotBody, "01234") {
		t.Errorf("body %q does not contain code", gotBody)
	}
	if !strings.Contains(gotBody, url) {
		t.Errorf("body %q does not contain url", gotBody)
	}
}

func TestSendSignupConfirmation_CountsOutcome(t *testing.T) {
	before := testutil.ToFloat64(metrics.EmailsSentTotal.WithLabelValues("signup_confirmation", "ok"))

	sender := &fakeSender{send: func(context.Context, string, string, string) error { return nil }}
	if err := email.NewNotifier(sender).SendSignupConfirmation(context.Background(), "a@example.com"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	after := testutil.ToFloat64(metrics.EmailsSentTotal.WithLabelValues("signup_confirmation", "ok"))
	if after != before+1 {
		t.Errorf("ok counter = %v, want %v", after, before+1)
	}
}

func TestNotifier_SenderError_Propagates(t *testing.T) {
	sendErr := errors.New("smtp unavailable")
	sender := &fakeSender{send: func(context.Context, string, string, string) error { return sendErr }}

	err := email.NewNotifier(sender).SendSignupConfirmation(context.Background(), "a@example.com")
	if !errors.Is(err, sendErr) {
		t.Errorf("want wrapped sendErr, got %v", err)
	}
}

func TestNewSender_SelectsImplementation(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	cases := []struct {
		provider string
		want     string
	}{
		{"log", "*email.LogSender"},
		{"", "*email.LogSender"},
		{"resend", "*email.ResendSender"},
		{"smtp", "*email.SMTPSender"},
	}
	for _, tc := range cases {
		s := email.NewSender(email.SenderConfig{Provider: tc.provider, SMTPHost: "localhost", SMTPPort: "25"}, logger)
		if got := typeName(s); got != tc.want {
			t.Errorf("provider %q: got %s, want %s", tc.provider, got, tc.want)
		}
	}
}

func typeName(s email.Sender) string {
	switch s.(type) {
	case *email.LogSender:
		return "*email.LogSender"
	case *email.ResendSender:
		return "*email.ResendSender"
	case *email.SMTPSender:
		return "*email.SMTPSender"
	default:
		return "unknown"
	}
}

func TestLogSender_NeverFails(t *testing.T) {
	s := email.NewSender(email.SenderConfig{Provider: "log"}, slog.New(slog.NewTextHandler(os.Stderr, nil)))
	if err := s.Send(context.Background(), "a@example.com", "subj", "body"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
