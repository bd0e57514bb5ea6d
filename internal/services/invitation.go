package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"vacationbooking/internal/domain"
)

type invitationService struct {
	invitationRepo domain.InvitationRepository
	vacationRepo   domain.VacationRepository
	userRepo       domain.UserRepository
	notifier       domain.Notifier
	now            domain.Clock
	contextTimeout time.Duration
}

// NewInvitationService builds the invitation workflow. It is the single
// writer of the accepted-membership relation the access predicates read.
func NewInvitationService(invitationRepo domain.InvitationRepository,
	vacationRepo domain.VacationRepository,
	userRepo domain.UserRepository,
	notifier domain.Notifier,
	now domain.Clock,
	timeout time.Duration,
) domain.InvitationService {
	if now == nil {
		now = time.Now
	}
	return &invitationService{
		invitationRepo: invitationRepo,
		vacationRepo:   vacationRepo,
		userRepo:       userRepo,
		notifier:       notifier,
		now:            now,
		contextTimeout: timeout,
	}
}

func (s *invitationService) Invite(ctx context.Context, vacationID, actorID string, inviteeIDs []string) ([]*domain.Invitation, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	actorKnown, err := s.userRepo.Exists(ctx, actorID)
	if err != nil {
		return nil, fmt.Errorf("resolve actor: %w", err)
	}
	if !actorKnown {
		return nil, domain.ErrUserNotFound
	}

	vacation, err := s.vacationRepo.GetByID(ctx, vacationID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get vacation: %w", err)
	}
	accepted, err := s.invitationRepo.ListAcceptedByVacationID(ctx, vacationID)
	if err != nil {
		return nil, fmt.Errorf("list accepted invitations: %w", err)
	}
	if !domain.CanModify(vacation, actorID, accepted) {
		return nil, domain.ErrForbidden
	}
	if vacation.Published {
		return nil, domain.ErrPublished
	}

	// The whole list is validated before anything persists: an unknown
	// invitee anywhere in it must not leave earlier invitations behind.
	created := []*domain.Invitation{}
	for _, inviteeID := range inviteeIDs {
		exists, err := s.invitationRepo.ExistsForUser(ctx, inviteeID, vacationID)
		if err != nil {
			return nil, fmt.Errorf("check invitation: %w", err)
		}
		if exists {
			// Idempotent invite: an already-invited user is skipped silently.
			continue
		}
		known, err := s.userRepo.Exists(ctx, inviteeID)
		if err != nil {
			return nil, fmt.Errorf("resolve invitee: %w", err)
		}
		if !known {
			return nil, fmt.Errorf("%w: %s", domain.ErrUserNotFound, inviteeID)
		}
		created = append(created, domain.NewInvitation(inviteeID, vacationID, s.now()))
	}

	if err := s.invitationRepo.CreateBatch(ctx, created); err != nil {
		return nil, fmt.Errorf("create invitations: %w", err)
	}

	// Only notify once the batch has committed. Only newly created
	// invitations are returned; callers must not mistake the result for a
	// membership list.
	for _, invitation := range created {
		s.notifier.NotifyInvitationCreated(ctx, domain.InvitationCreatedEvent{
			InvitationID:  invitation.ID,
			InviteeID:     invitation.UserID,
			VacationID:    vacationID,
			VacationTitle: vacation.Title,
		})
	}
	return created, nil
}

func (s *invitationService) Accept(ctx context.Context, invitationID, actorID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	invitation, err := s.invitationRepo.GetByID(ctx, invitationID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get invitation: %w", err)
	}
	if invitation.UserID != actorID {
		return domain.ErrForbidden
	}
	vacation, err := s.vacationRepo.GetByID(ctx, invitation.VacationID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get vacation: %w", err)
	}
	if vacation.Published {
		return domain.ErrPublished
	}
	// Re-accepting an accepted invitation succeeds silently.
	if err := s.invitationRepo.Accept(ctx, invitationID); err != nil {
		return fmt.Errorf("accept invitation: %w", err)
	}
	return nil
}

func (s *invitationService) ListForVacation(ctx context.Context, vacationID, actorID string, params domain.PaginationParams) ([]*domain.Invitation, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	vacation, err := s.vacationRepo.GetByID(ctx, vacationID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, 0, domain.ErrNotFound
		}
		return nil, 0, fmt.Errorf("get vacation: %w", err)
	}
	accepted, err := s.invitationRepo.ListAcceptedByVacationID(ctx, vacationID)
	if err != nil {
		return nil, 0, fmt.Errorf("list accepted invitations: %w", err)
	}
	if !domain.CanSee(vacation, actorID, accepted) {
		return nil, 0, domain.ErrForbidden
	}
	invitations, total, err := s.invitationRepo.ListByVacationID(ctx, vacationID, params)
	if err != nil {
		return nil, 0, fmt.Errorf("list invitations: %w", err)
	}
	if invitations == nil {
		invitations = []*domain.Invitation{}
	}
	return invitations, total, nil
}
