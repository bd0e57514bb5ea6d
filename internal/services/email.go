package services

import (
	"context"
	"fmt"

	"vacationbooking/internal/domain"
)

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
}

// NewEmailService returns an EmailService that uses the given Mailer and template renderer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer) domain.EmailService {
	return &emailService{mailer: mailer, renderer: renderer}
}

// SendInvitation sends the invitation email using the "invitation" template.
func (s *emailService) SendInvitation(ctx context.Context, data *domain.InvitationEmailData) error {
	if data == nil {
		return fmt.Errorf("invitation email data is nil")
	}
	subject, htmlBody, textBody, err := s.renderer.Render("invitation", data)
	if err != nil {
		return fmt.Errorf("failed to render invitation template: %w", err)
	}
	if err := s.mailer.Send(data.Email, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send invitation email: %w", err)
	}
	return nil
}

// SendVacationPublished sends the vacation-published email using the "vacation_published" template.
func (s *emailService) SendVacationPublished(ctx context.Context, data *domain.VacationPublishedEmailData) error {
	if data == nil {
		return fmt.Errorf("vacation published email data is nil")
	}
	subject, htmlBody, textBody, err := s.renderer.Render("vacation_published", data)
	if err != nil {
		return fmt.Errorf("failed to render vacation_published template: %w", err)
	}
	if err := s.mailer.Send(data.Email, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send vacation published email: %w", err)
	}
	return nil
}
