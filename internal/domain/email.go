package domain

import "context"

// Mailer sends a single email. Implementations may use SES, SMTP, or a noop.
type Mailer interface {
	Send(to, subject, html, text string) error
}

// WelcomeEmailData is the payload for the signup welcome message.
type WelcomeEmailData struct {
	Email string
	Name  string
}

// EmailTemplateRenderer renders a named email template into subject, HTML,
// and plain-text bodies.
type EmailTemplateRenderer interface {
	Render(templateName string, data interface{}) (subject, htmlBody, textBody string, err error)
}

// EmailService defines the outbound email operations of the platform.
type EmailService interface {
	SendWelcomeMessage(ctx context.Context, data *WelcomeEmailData) error
}
