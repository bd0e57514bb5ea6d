package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"vacationbooking/internal/domain"
)

type emailNotifier struct {
	emailService   domain.EmailService
	userRepo       domain.UserRepository
	invitationRepo domain.InvitationRepository
	logger         *slog.Logger
}

// NewEmailNotifier turns state-change events into emails. Delivery is
// best-effort: failures are logged and never surface to the emitting
// operation.
func NewEmailNotifier(emailService domain.EmailService,
	userRepo domain.UserRepository,
	invitationRepo domain.InvitationRepository,
	logger *slog.Logger,
) domain.Notifier {
	return &emailNotifier{
		emailService:   emailService,
		userRepo:       userRepo,
		invitationRepo: invitationRepo,
		logger:         logger,
	}
}

func (n *emailNotifier) NotifyVacationPublished(ctx context.Context, ev domain.VacationPublishedEvent) {
	recipientIDs := []string{ev.OwnerID}
	accepted, err := n.invitationRepo.ListAcceptedByVacationID(ctx, ev.VacationID)
	if err != nil {
		n.logger.Warn("publish notification: list members failed", "vacation_id", ev.VacationID, "err", err)
	} else {
		for _, inv := range accepted {
			recipientIDs = append(recipientIDs, inv.UserID)
		}
	}
	for _, id := range recipientIDs {
		user, err := n.userRepo.GetByID(ctx, id)
		if err != nil {
			if !errors.Is(err, domain.ErrUserNotFound) {
				n.logger.Warn("publish notification: resolve recipient failed", "user_id", id, "err", err)
			}
			continue
		}
		data := &domain.VacationPublishedEmailData{
			Email:         user.Email,
			RecipientName: displayName(user),
			VacationTitle: ev.Title,
		}
		if err := n.emailService.SendVacationPublished(ctx, data); err != nil {
			n.logger.Warn("publish notification: send failed", "user_id", id, "err", err)
		}
	}
}

func (n *emailNotifier) NotifyInvitationCreated(ctx context.Context, ev domain.InvitationCreatedEvent) {
	invitee, err := n.userRepo.GetByID(ctx, ev.InviteeID)
	if err != nil {
		n.logger.Warn("invitation notification: resolve invitee failed", "user_id", ev.InviteeID, "err", err)
		return
	}
	data := &domain.InvitationEmailData{
		Email:         invitee.Email,
		InviteeName:   displayName(invitee),
		VacationTitle: ev.VacationTitle,
	}
	if err := n.emailService.SendInvitation(ctx, data); err != nil {
		n.logger.Warn("invitation notification: send failed", "invitation_id", ev.InvitationID, "err", err)
	}
}

func displayName(u *domain.User) string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		name = u.UserName
	}
	if name == "" {
		name = u.Email
	}
	return name
}
