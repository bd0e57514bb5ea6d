package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"vacationbooking/internal/domain"
)

type activityService struct {
	activityRepo   domain.ActivityRepository
	vacationRepo   domain.VacationRepository
	invitationRepo domain.InvitationRepository
	contextTimeout time.Duration
}

// NewActivityService builds the activity scheduler.
func NewActivityService(activityRepo domain.ActivityRepository,
	vacationRepo domain.VacationRepository,
	invitationRepo domain.InvitationRepository,
	timeout time.Duration,
) domain.ActivityService {
	return &activityService{
		activityRepo:   activityRepo,
		vacationRepo:   vacationRepo,
		invitationRepo: invitationRepo,
		contextTimeout: timeout,
	}
}

func (s *activityService) AddBatch(ctx context.Context, vacationID string, items []domain.NewActivityInput, actorID string) ([]*domain.Activity, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	vacation, err := s.modifiableVacation(ctx, vacationID, actorID)
	if err != nil {
		return nil, err
	}
	if vacation.Published {
		return nil, domain.ErrPublished
	}

	// Validate every item before touching storage; failures aggregate and
	// abort the whole batch.
	activities := make([]*domain.Activity, 0, len(items))
	var problems []string
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		// Duplicate names are only rejected within the submitted batch;
		// names already stored for the vacation are not consulted.
		if _, dup := seen[item.Name]; dup {
			return nil, fmt.Errorf("%w: %q", domain.ErrDuplicateName, item.Name)
		}
		seen[item.Name] = struct{}{}

		activity, err := domain.NewActivity(item.Name, item.Description, item.Longitude, item.Latitude, item.Place, vacationID)
		if err != nil {
			problems = append(problems, err.Error())
			continue
		}
		activities = append(activities, activity)
	}
	if len(problems) > 0 {
		return nil, &domain.BatchValidationError{Problems: problems}
	}

	if err := s.activityRepo.CreateBatch(ctx, activities); err != nil {
		return nil, fmt.Errorf("create activities: %w", err)
	}
	return activities, nil
}

func (s *activityService) Plan(ctx context.Context, activityID string, args domain.PlanActivityArgs, actorID string) (*domain.Activity, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	activity, err := s.activityRepo.GetByID(ctx, activityID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get activity: %w", err)
	}
	vacation, err := s.modifiableVacation(ctx, activity.VacationID, actorID)
	if err != nil {
		return nil, err
	}
	if vacation.Published {
		return nil, domain.ErrPublished
	}

	begin, err := domain.ParseDateTime(args.DateBegin, args.TimeBegin)
	if err != nil {
		return nil, err
	}
	end, err := domain.ParseDateTime(args.DateEnd, args.TimeEnd)
	if err != nil {
		return nil, err
	}

	// The repository checks the period against the vacation's other planned
	// activities (self excluded) and applies the update atomically.
	planned, err := s.activityRepo.Plan(ctx, activityID, begin, end)
	if err != nil {
		if errors.Is(err, domain.ErrPeriodConflict) || errors.Is(err, domain.ErrInvalidBooking) || errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("plan activity: %w", err)
	}
	return planned, nil
}

func (s *activityService) ListForVacation(ctx context.Context, vacationID, actorID string) ([]*domain.Activity, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.visibleVacation(ctx, vacationID, actorID); err != nil {
		return nil, err
	}
	activities, err := s.activityRepo.ListByVacationID(ctx, vacationID)
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	if activities == nil {
		activities = []*domain.Activity{}
	}
	return activities, nil
}

func (s *activityService) Planning(ctx context.Context, vacationID, actorID string) ([]*domain.Activity, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.visibleVacation(ctx, vacationID, actorID); err != nil {
		return nil, err
	}
	activities, err := s.activityRepo.ListPlannedByVacationID(ctx, vacationID)
	if err != nil {
		return nil, fmt.Errorf("list planned activities: %w", err)
	}
	if activities == nil {
		activities = []*domain.Activity{}
	}
	return activities, nil
}

// visibleVacation gates reads: published, owned, or joined via an accepted
// invitation.
func (s *activityService) visibleVacation(ctx context.Context, vacationID, actorID string) (*domain.Vacation, error) {
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

// modifiableVacation gates writes: owner or accepted invitee only, regardless
// of publish state.
func (s *activityService) modifiableVacation(ctx context.Context, vacationID, actorID string) (*domain.Vacation, error) {
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
	return vacation, nil
}
