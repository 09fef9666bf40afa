package services

import (
	"errors"
	"log"
)

// WhatsAppService is a placeholder delivery channel. It satisfies
// NotificationSender so the dispatcher's channel seam is real, but delivery
// is not implemented yet.
// TODO: wire a WhatsApp Business API client once the account is provisioned.
type WhatsAppService struct{}

func NewWhatsAppService() *WhatsAppService {
	return &WhatsAppService{}
}

func (s *WhatsAppService) Send(toEmail, subject, plainContent, htmlContent string) error {
	log.Printf("WhatsApp channel not configured, dropping notification %q", subject)
	return errors.New("whatsapp channel is not configured")
}
