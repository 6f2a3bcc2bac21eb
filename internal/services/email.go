package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"campusevents/internal/domain"
)

type verificationEmailData struct {
	Name      string
	VerifyURL string
}

type ticketEmailData struct {
	Name         string
	EventTitle   string
	TicketNumber string
	StartTime    string
}

type inviteEmailData struct {
	Role      string
	InviteURL string
	ExpiresAt string
}

type emailService struct {
	mailer      domain.Mailer
	renderer    domain.EmailTemplateRenderer
	frontendURL string
	logger      *slog.Logger
}

// NewEmailService returns an EmailService that uses the given Mailer and template renderer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer, frontendURL string, logger *slog.Logger) domain.EmailService {
	return &emailService{
		mailer:      mailer,
		renderer:    renderer,
		frontendURL: frontendURL,
		logger:      logger,
	}
}

func (s *emailService) send(ctx context.Context, to, templateName string, data interface{}) error {
	subject, htmlBody, textBody, err := s.renderer.Render(templateName, data)
	if err != nil {
		return fmt.Errorf("failed to render %s template: %w", templateName, err)
	}
	if err := s.mailer.Send(ctx, &domain.Email{
		To:       []string{to},
		Subject:  subject,
		BodyHTML: htmlBody,
		BodyText: textBody,
	}); err != nil {
		return fmt.Errorf("failed to send %s email: %w", templateName, err)
	}
	s.logger.Info("email sent", "template", templateName, "to", to)
	return nil
}

func (s *emailService) SendVerificationEmail(ctx context.Context, user *domain.User, token string) error {
	if user == nil {
		return fmt.Errorf("verification email user is nil")
	}
	data := &verificationEmailData{
		Name:      user.Name,
		VerifyURL: fmt.Sprintf("%s/verify-email?token=%s", s.frontendURL, token),
	}
	return s.send(ctx, user.Email, "verification", data)
}

func (s *emailService) SendTicketConfirmation(ctx context.Context, user *domain.User, event *domain.Event, reg *domain.Registration) error {
	if user == nil || event == nil || reg == nil {
		return fmt.Errorf("ticket confirmation data is nil")
	}
	data := &ticketEmailData{
		Name:         user.Name,
		EventTitle:   event.Title,
		TicketNumber: reg.TicketNumber,
		StartTime:    event.StartTime.Format(time.RFC1123),
	}
	return s.send(ctx, user.Email, "ticket_confirmation", data)
}

func (s *emailService) SendInviteEmail(ctx context.Context, invite *domain.InviteToken) error {
	if invite == nil {
		return fmt.Errorf("invite email data is nil")
	}
	data := &inviteEmailData{
		Role:      invite.Role,
		InviteURL: fmt.Sprintf("%s/signup?invite=%s", s.frontendURL, invite.Token),
		ExpiresAt: invite.ExpiresAt.Format(time.RFC1123),
	}
	return s.send(ctx, invite.Email, "invite", data)
}
