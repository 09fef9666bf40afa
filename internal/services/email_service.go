package services

import (
	"fmt"

	"tendertrack/internal/config"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// EmailService delivers notifications through SendGrid
type EmailService struct {
	client    *sendgrid.Client
	fromEmail string
	fromName  string
}

func NewEmailService(cfg config.SendGridConfig) *EmailService {
	return &EmailService{
		client:    sendgrid.NewSendClient(cfg.APIKey),
		fromEmail: cfg.FromEmail,
		fromName:  cfg.FromName,
	}
}

// Send delivers one email. A non-2xx provider response counts as a failure so
// the dispatcher leaves the reminder unsent and retries on the next run.
func (s *EmailService) Send(toEmail, subject, plainContent, htmlContent string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	to := mail.NewEmail("", toEmail)

	message := mail.NewSingleEmail(from, subject, to, plainContent, htmlContent)

	response, err := s.client.Send(message)
	if err != nil {
		return err
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("failed to send email to %s: %d", toEmail, response.StatusCode)
	}
	return nil
}
