package email

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"edulearn/internal/shared/config"
)

// Sender delivers one message with plain and HTML alternatives.
type Sender interface {
	Send(ctx context.Context, to, subject, htmlBody, plainBody string) error
}

type SMTPEmailService struct {
	fromAddress string
	fromName    string
	dialer      *gomail.Dialer
}

func NewSMTPEmailService(cfg config.EmailConfig) *SMTPEmailService {
	return &SMTPEmailService{
		fromAddress: cfg.FromAddress,
		fromName:    cfg.FromName,
		dialer:      gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword),
	}
}

// Send dials per message. gomail has no context support, so ctx is only
// checked before dialing.
func (s *SMTPEmailService) Send(ctx context.Context, to, subject, htmlBody, plainBody string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.fromAddress, s.fromName)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", plainBody)
	m.AddAlternative("text/html", htmlBody)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
