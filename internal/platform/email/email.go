// Package email delivers plain-text notifications over SMTP.
package email

import (
	"context"
	"crypto/tls"
	"strings"
	"time"

	"gopkg.in/gomail.v2"

	"staffpay/internal/platform/config"
)

type Mailer interface {
	Send(ctx context.Context, from, to, subject, body string) error
}

type noopMailer struct{}

func (noopMailer) Send(ctx context.Context, from, to, subject, body string) error {
	return nil
}

type smtpMailer struct {
	dialer *gomail.Dialer
}

// New returns a mailer that drops every message unless email is enabled and
// an SMTP host is configured.
func New(cfg config.Config) Mailer {
	if !cfg.EmailEnabled || cfg.SMTPHost == "" {
		return noopMailer{}
	}
	dialer := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword)
	dialer.SSL = cfg.SMTPPort == 465
	if cfg.SMTPUseTLS {
		dialer.TLSConfig = &tls.Config{ServerName: cfg.SMTPHost}
	}
	return &smtpMailer{dialer: dialer}
}

func (s *smtpMailer) Send(ctx context.Context, from, to, subject, body string) error {
	if strings.TrimSpace(to) == "" {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.dialer.DialAndSend(BuildMessage(from, to, subject, body, time.Now()))
}

func BuildMessage(from, to, subject, body string, date time.Time) *gomail.Message {
	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", strings.NewReplacer("\r", " ", "\n", " ").Replace(subject))
	m.SetDateHeader("Date", date)
	m.SetBody("text/plain", body)
	return m
}
