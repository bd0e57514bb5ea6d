package domain

import "context"

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// InvitationEmailData holds data for the invitation email.
type InvitationEmailData struct {
	Email         string
	InviteeName   string
	OwnerName     string
	VacationTitle string
	VacationPlace string
}

// VacationPublishedEmailData holds data for the vacation-published email sent
// to the owner and accepted members.
type VacationPublishedEmailData struct {
	Email         string
	RecipientName string
	VacationTitle string
	DateBegin     string
	DateEnd       string
}

// EmailService defines the contract for sending domain-level emails.
type EmailService interface {
	SendInvitation(ctx context.Context, data *InvitationEmailData) error
	SendVacationPublished(ctx context.Context, data *VacationPublishedEmailData) error
}
