package domain

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// Activity is a sub-event of one vacation. Begin/End stay nil until the
// activity is planned for the first time.
// swagger:model Activity
type Activity struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Place       string     `json:"place"`
	Latitude    float64    `json:"latitude"`
	Longitude   float64    `json:"longitude"`
	VacationID  string     `json:"vacation_id"`
	Begin       *time.Time `json:"begin,omitempty"`
	End         *time.Time `json:"end,omitempty"`
}

// Planned reports whether the activity has been given a period.
func (a *Activity) Planned() bool {
	return a.Begin != nil && a.End != nil
}

// NewActivity builds an unplanned Activity, validating the name and
// description length bounds. Violations yield ErrInvalidBooking.
func NewActivity(name, description string, lon, lat float64, place, vacationID string) (*Activity, error) {
	name = strings.TrimSpace(name)
	description = strings.TrimSpace(description)
	if name == "" {
		return nil, fmt.Errorf("%w: the name cannot be empty", ErrInvalidBooking)
	}
	// Bounds count characters, not bytes.
	if utf8.RuneCountInString(name) < 5 {
		return nil, fmt.Errorf("%w: the name must be at least 5 characters long", ErrInvalidBooking)
	}
	if utf8.RuneCountInString(name) > 50 {
		return nil, fmt.Errorf("%w: the name cannot exceed 50 characters", ErrInvalidBooking)
	}
	if description == "" {
		return nil, fmt.Errorf("%w: the description cannot be empty", ErrInvalidBooking)
	}
	if utf8.RuneCountInString(description) < 10 {
		return nil, fmt.Errorf("%w: the description must be at least 10 characters long", ErrInvalidBooking)
	}
	if utf8.RuneCountInString(description) > 50 {
		return nil, fmt.Errorf("%w: the description cannot exceed 50 characters", ErrInvalidBooking)
	}
	if strings.TrimSpace(place) == "" {
		return nil, fmt.Errorf("%w: the place cannot be empty", ErrInvalidBooking)
	}
	if strings.TrimSpace(vacationID) == "" {
		return nil, fmt.Errorf("%w: the activity must be related to a vacation", ErrInvalidBooking)
	}
	return &Activity{
		Name:        name,
		Description: description,
		Place:       place,
		Latitude:    lat,
		Longitude:   lon,
		VacationID:  vacationID,
	}, nil
}

// ActivityRepository defines storage operations for activities.
//
// CreateBatch inserts all activities in one transaction; Plan runs the
// overlap check against the vacation's other planned activities and the
// update as one serializable unit.
type ActivityRepository interface {
	CreateBatch(ctx context.Context, activities []*Activity) error
	GetByID(ctx context.Context, id string) (*Activity, error)
	ListByVacationID(ctx context.Context, vacationID string) ([]*Activity, error)
	// ListPlannedByVacationID returns only planned activities, ordered by
	// begin ascending.
	ListPlannedByVacationID(ctx context.Context, vacationID string) ([]*Activity, error)
	// Plan overwrites the activity's period. The activity itself is excluded
	// from the conflict set, so re-planning to the same interval succeeds.
	// Returns ErrPeriodConflict on overlap, ErrInvalidBooking when end is not
	// after begin.
	Plan(ctx context.Context, activityID string, begin, end time.Time) (*Activity, error)
}

// NewActivityInput is one item of a batch add.
type NewActivityInput struct {
	Name        string
	Description string
	Place       string
	Latitude    float64
	Longitude   float64
}

// PlanActivityArgs carries the textual period for planning an activity.
type PlanActivityArgs struct {
	DateBegin string
	TimeBegin string
	DateEnd   string
	TimeEnd   string
}

// ActivityService defines the activity scheduling operations.
type ActivityService interface {
	AddBatch(ctx context.Context, vacationID string, items []NewActivityInput, actorID string) ([]*Activity, error)
	Plan(ctx context.Context, activityID string, args PlanActivityArgs, actorID string) (*Activity, error)
	ListForVacation(ctx context.Context, vacationID, actorID string) ([]*Activity, error)
	// Planning is the calendar-export basis: planned activities only, ordered
	// by begin ascending.
	Planning(ctx context.Context, vacationID, actorID string) ([]*Activity, error)
}
