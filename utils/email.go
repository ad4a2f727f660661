// utils/email.go
package utils

import (
	"context"
	"fmt"
	"html"

	"startup-registration/models"

	"github.com/keighl/postmark"
)

// PostmarkSender is the part of the Postmark client used here.
type PostmarkSender interface {
	SendEmail(email postmark.Email) (postmark.EmailResponse, error)
}

// EmailService sends transactional emails through Postmark.
type EmailService struct {
	client PostmarkSender
	from   string
}

// NewEmailService returns nil when no API token is configured, which
// disables notifications.
func NewEmailService(apiToken, from string) *EmailService {
	if apiToken == "" {
		return nil
	}
	return NewEmailServiceWithClient(postmark.NewClient(apiToken, ""), from)
}

func NewEmailServiceWithClient(client PostmarkSender, from string) *EmailService {
	return &EmailService{client: client, from: from}
}

// SendEmail sends a basic email to the specified recipient
func (es *EmailService) SendEmail(ctx context.Context, toEmail, subject, htmlContent, textContent string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := es.client.SendEmail(postmark.Email{
		From:     es.from,
		To:       toEmail,
		Subject:  subject,
		HtmlBody: htmlContent,
		TextBody: textContent,
		Tag:      "registration",
	})
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// PaymentConfirmed tells the registrant that the registration fee was received.
func (es *EmailService) PaymentConfirmed(ctx context.Context, s *models.Submission) error {
	name := s.RepresentativeName
	if name == "" {
		name = "there"
	}
	company := s.CompanyName
	if company == "" {
		company = "your startup"
	}

	subject := "Registration Payment Confirmed"
	htmlContent := fmt.Sprintf(
		"<strong>Hi %s,</strong><br><br>We have received the registration payment for <strong>%s</strong>. Your registration is now complete.<br><br>Thank you!",
		html.EscapeString(name),
		html.EscapeString(company),
	)
	textContent := fmt.Sprintf(
		"Hi %s,\n\nWe have received the registration payment for %s. Your registration is now complete.\n\nThank you!\n",
		name,
		company,
	)

	return es.SendEmail(ctx, s.Email, subject, htmlContent, textContent)
}
