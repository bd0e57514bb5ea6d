package domain

import "context"

// VacationPublishedEvent is emitted when a vacation flips to published.
type VacationPublishedEvent struct {
	VacationID string
	Title      string
	OwnerID    string
}

// InvitationCreatedEvent is emitted for each newly created invitation.
type InvitationCreatedEvent struct {
	InvitationID  string
	InviteeID     string
	VacationID    string
	VacationTitle string
}

// Notifier consumes state-change events. Implementations deliver
// notifications best-effort; the emitting operation must never block on or
// fail because of delivery, so these methods return nothing.
type Notifier interface {
	NotifyVacationPublished(ctx context.Context, ev VacationPublishedEvent)
	NotifyInvitationCreated(ctx context.Context, ev InvitationCreatedEvent)
}
