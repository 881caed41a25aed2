package notification

import (
	"context"

	"github.com/rahmimuaz/Evolexxlk/internal/infrastructure/config"
	"gopkg.in/gomail.v2"
)

// EmailSender delivers plain-text notification mail
type EmailSender interface {
	Send(ctx context.Context, to, subject, body string) error
}

// GomailSender implements EmailSender over SMTP
type GomailSender struct {
	dialer *gomail.Dialer
	from   string
}

// NewGomailSender creates a sender from mail configuration
func NewGomailSender(cfg config.MailConfig) *GomailSender {
	from := cfg.From
	if from == "" {
		from = cfg.Username
	}
	return &GomailSender{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   from,
	}
}

// Send delivers a single plain-text message
func (s *GomailSender) Send(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	return s.dialer.DialAndSend(m)
}
