package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"vacationbooking/internal/domain"
)

type vacationService struct {
	vacationRepo   domain.VacationRepository
	invitationRepo domain.InvitationRepository
	userRepo       domain.UserRepository
	notifier       domain.Notifier
	now            domain.Clock
	contextTimeout time.Duration
}

// NewVacationService builds the vacation scheduler. The clock is injected so
// the "not in the past" rule can be tested against a fixed instant.
func NewVacationService(vacationRepo domain.VacationRepository,
	invitationRepo domain.InvitationRepository,
	userRepo domain.UserRepository,
	notifier domain.Notifier,
	now domain.Clock,
	timeout time.Duration,
) domain.VacationService {
	if now == nil {
		now = time.Now
	}
	return &vacationService{
		vacationRepo:   vacationRepo,
		invitationRepo: invitationRepo,
		userRepo:       userRepo,
		notifier:       notifier,
		now:            now,
		contextTimeout: timeout,
	}
}

func (s *vacationService) Create(ctx context.Context, args domain.CreateVacationArgs) (*domain.Vacation, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	begin, err := domain.ParseDateTime(args.DateBegin, args.TimeBegin)
	if err != nil {
		return nil, err
	}
	end, err := domain.ParseDateTime(args.DateEnd, args.TimeEnd)
	if err != nil {
		return nil, err
	}

	vacation, err := domain.NewVacation(args.Title, args.Description, args.Place,
		args.Latitude, args.Longitude, begin, end, args.OwnerID, args.Country,
		args.PicturePath, s.now())
	if err != nil {
		return nil, err
	}

	// The repository runs the duplicate-title and per-owner overlap checks in
	// the same transaction as the insert.
	if err := s.vacationRepo.Create(ctx, vacation); err != nil {
		if errors.Is(err, domain.ErrDuplicateTitle) || errors.Is(err, domain.ErrPeriodConflict) {
			return nil, err
		}
		return nil, fmt.Errorf("create vacation: %w", err)
	}
	return vacation, nil
}

func (s *vacationService) Publish(ctx context.Context, vacationID, actorID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	vacation, err := s.vacationRepo.GetByID(ctx, vacationID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get vacation: %w", err)
	}
	if vacation.OwnerID != actorID {
		return domain.ErrForbidden
	}
	if vacation.Published {
		return domain.ErrAlreadyPublished
	}
	// Guarded update; a racing double-publish loses here with ErrAlreadyPublished.
	if err := s.vacationRepo.Publish(ctx, vacationID); err != nil {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrAlreadyPublished) {
			return err
		}
		return fmt.Errorf("publish vacation: %w", err)
	}
	s.notifier.NotifyVacationPublished(ctx, domain.VacationPublishedEvent{
		VacationID: vacation.ID,
		Title:      vacation.Title,
		OwnerID:    vacation.OwnerID,
	})
	return nil
}

func (s *vacationService) GetByID(ctx context.Context, vacationID, actorID string) (*domain.Vacation, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	return s.visibleVacation(ctx, vacationID, actorID)
}

// visibleVacation loads a vacation and applies the visibility rule: published
// vacations are readable by anyone, drafts only by the owner or an accepted
// invitee.
func (s *vacationService) visibleVacation(ctx context.Context, vacationID, actorID string) (*domain.Vacation, error) {
	vacation, err := s.vacationRepo.GetByID(ctx, vacationID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get vacation: %w", err)
	}
	if vacation.Published {
		return vacation, nil
	}
	accepted, err := s.invitationRepo.ListAcceptedByVacationID(ctx, vacationID)
	if err != nil {
		return nil, fmt.Errorf("list accepted invitations: %w", err)
	}
	if !domain.CanSee(vacation, actorID, accepted) {
		return nil, domain.ErrForbidden
	}
	return vacation, nil
}

func (s *vacationService) ListForUser(ctx context.Context, userID string) ([]*domain.Vacation, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	vacations, err := s.vacationRepo.ListForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list vacations: %w", err)
	}
	if vacations == nil {
		vacations = []*domain.Vacation{}
	}
	return vacations, nil
}

func (s *vacationService) ListMembers(ctx context.Context, vacationID, actorID string) ([]*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	vacation, err := s.visibleVacation(ctx, vacationID, actorID)
	if err != nil {
		return nil, err
	}
	accepted, err := s.invitationRepo.ListAcceptedByVacationID(ctx, vacationID)
	if err != nil {
		return nil, fmt.Errorf("list accepted invitations: %w", err)
	}

	memberIDs := []string{vacation.OwnerID}
	for _, inv := range accepted {
		memberIDs = append(memberIDs, inv.UserID)
	}
	members := make([]*domain.User, 0, len(memberIDs))
	for _, id := range memberIDs {
		user, err := s.userRepo.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, domain.ErrUserNotFound) {
				continue
			}
			return nil, fmt.Errorf("get user: %w", err)
		}
		members = append(members, user)
	}
	return members, nil
}

func (s *vacationService) HeadcountByCountry(ctx context.Context, date string) ([]*domain.CountryHeadcount, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	day, err := domain.ParseDate(date)
	if err != nil {
		return nil, err
	}
	counts, err := s.vacationRepo.HeadcountByCountry(ctx, day)
	if err != nil {
		return nil, fmt.Errorf("headcount by country: %w", err)
	}
	if counts == nil {
		counts = []*domain.CountryHeadcount{}
	}
	return counts, nil
}
