package domain

import "context"

// Email is an outbound message.
type Email struct {
	To       []string
	Subject  string
	BodyHTML string
	BodyText string
}

// Mailer sends email through a configured provider.
type Mailer interface {
	Send(ctx context.Context, email *Email) error
}

// EmailTemplateRenderer renders a named transactional template into a
// subject and both body variants.
type EmailTemplateRenderer interface {
	Render(templateName string, data interface{}) (subject, htmlBody, textBody string, err error)
}

// EmailService renders and sends the application's transactional emails.
type EmailService interface {
	SendVerificationEmail(ctx context.Context, user *User, token string) error
	SendTicketConfirmation(ctx context.Context, user *User, event *Event, reg *Registration) error
	SendInviteEmail(ctx context.Context, invite *InviteToken) error
}
