package email

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"staffpay/internal/platform/config"
)

func TestNewReturnsNoopWhenDisabled(t *testing.T) {
	cases := []config.Config{
		{EmailEnabled: false, SMTPHost: "smtp.example.com"},
		{EmailEnabled: true, SMTPHost: ""},
	}
	for _, cfg := range cases {
		mailer := New(cfg)
		if _, ok := mailer.(noopMailer); !ok {
			t.Fatalf("expected noop mailer for %+v, got %T", cfg, mailer)
		}
		if err := mailer.Send(context.Background(), "a@example.com", "b@example.com", "s", "b"); err != nil {
			t.Fatalf("noop send returned %v", err)
		}
	}
}

func TestNewConfiguresDialer(t *testing.T) {
	mailer, ok := New(config.Config{EmailEnabled: true, SMTPHost: "smtp.example.com", SMTPPort: 465, SMTPUseTLS: true}).(*smtpMailer)
	if !ok {
		t.Fatal("expected smtp mailer")
	}
	if !mailer.dialer.SSL {
		t.Fatal("expected implicit TLS on port 465")
	}
	if mailer.dialer.TLSConfig == nil || mailer.dialer.TLSConfig.ServerName != "smtp.example.com" {
		t.Fatalf("unexpected tls config %+v", mailer.dialer.TLSConfig)
	}
}

func TestSendSkipsEmptyRecipientAndCancelledContext(t *testing.T) {
	mailer := New(config.Config{EmailEnabled: true, SMTPHost: "127.0.0.1", SMTPPort: 1})
	if err := mailer.Send(context.Background(), "payroll@example.com", "  ", "s", "b"); err != nil {
		t.Fatalf("expected nil for empty recipient, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := mailer.Send(ctx, "payroll@example.com", "hr@example.com", "s", "b"); err != context.Canceled {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestBuildMessage(t *testing.T) {
	date := time.Date(2024, time.March, 31, 9, 0, 0, 0, time.UTC)
	var buf bytes.Buffer
	if _, err := BuildMessage("payroll@example.com", "hr@example.com", "Run\r\ndone", "line one", date).WriteTo(&buf); err != nil {
		t.Fatalf("write message: %v", err)
	}
	msg := buf.String()

	for _, want := range []string{
		"From: payroll@example.com\r\n",
		"To: hr@example.com\r\n",
		"Subject: Run  done\r\n",
		"Date: Sun, 31 Mar 2024 09:00:00 +0000\r\n",
		"line one",
	} {
		if !strings.Contains(msg, want) {
			t.Fatalf("message missing %q:\n%s", want, msg)
		}
	}
}
