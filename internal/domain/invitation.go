package domain

import (
	"context"
	"time"
)

// Invitation grants a non-owner user membership in a vacation once accepted.
// The accepted flag only ever flips false to true.
// swagger:model Invitation
type Invitation struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	VacationID string    `json:"vacation_id"`
	Accepted   bool      `json:"accepted"`
	CreatedAt  time.Time `json:"created_at"`
}

// NewInvitation returns a pending invitation for the given user and vacation.
func NewInvitation(userID, vacationID string, createdAt time.Time) *Invitation {
	return &Invitation{
		UserID:     userID,
		VacationID: vacationID,
		Accepted:   false,
		CreatedAt:  createdAt,
	}
}

// InvitationRepository defines storage operations for invitations.
//
// CreateBatch inserts all invitations in one transaction; either the whole
// batch commits or none of it does.
type InvitationRepository interface {
	CreateBatch(ctx context.Context, invs []*Invitation) error
	GetByID(ctx context.Context, id string) (*Invitation, error)
	// ListByVacationID returns a page of the vacation's invitations plus the
	// total count.
	ListByVacationID(ctx context.Context, vacationID string, params PaginationParams) ([]*Invitation, int, error)
	ListAcceptedByVacationID(ctx context.Context, vacationID string) ([]*Invitation, error)
	// ExistsForUser reports whether a pending-or-accepted invitation already
	// exists for the (user, vacation) pair.
	ExistsForUser(ctx context.Context, userID, vacationID string) (bool, error)
	// Accept sets the accepted flag. Accepting an already-accepted invitation
	// is a no-op that still succeeds.
	Accept(ctx context.Context, id string) error
}

// InvitationService defines the invitation workflow.
type InvitationService interface {
	// Invite creates pending invitations for the given users and returns only
	// the newly created ones; users already invited are skipped silently.
	// The whole list is validated before anything persists, so an unknown
	// invitee anywhere in it leaves no invitations behind.
	Invite(ctx context.Context, vacationID, actorID string, inviteeIDs []string) ([]*Invitation, error)
	Accept(ctx context.Context, invitationID, actorID string) error
	ListForVacation(ctx context.Context, vacationID, actorID string, params PaginationParams) ([]*Invitation, int, error)
}
