package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	// SendTemplate sends a multipart/alternative message with a text and an HTML part
	SendTemplate(toEmail, subject, htmlBody, textBody string) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
	senderName  string
}

func NewEmailService(host string, port int, username, password, senderName string) IEmailService {
	d := gomail.NewDialer(host, port, username, password)

	return &emailService{
		dialer:      d,
		senderEmail: username,
		senderName:  senderName,
	}
}

func (s *emailService) SendTemplate(toEmail, subject, htmlBody, textBody string) error {
	m := BuildMessage(s.senderEmail, s.senderName, toEmail, subject, htmlBody, textBody)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send template to %s: %w", toEmail, err)
	}
	return nil
}

// BuildMessage assembles the message. Text part first so clients prefer HTML.
func BuildMessage(fromEmail, fromName, toEmail, subject, htmlBody, textBody string) *gomail.Message {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", fromEmail, fromName)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", textBody)
	m.AddAlternative("text/html", htmlBody)
	return m
}
