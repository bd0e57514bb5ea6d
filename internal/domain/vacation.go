package domain

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// Clock supplies the current time. Services take a Clock so tests can pin
// "now" instead of depending on the wall clock.
type Clock func() time.Time

// Vacation represents an owner-scoped reserved travel period.
// swagger:model Vacation
type Vacation struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Place       string    `json:"place"`
	Country     string    `json:"country"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	Begin       time.Time `json:"begin"`
	End         time.Time `json:"end"`
	OwnerID     string    `json:"owner_id"`
	Published   bool      `json:"published"`
	PicturePath *string   `json:"picture_path,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Interval returns the vacation's booking period.
func (v *Vacation) Interval() Interval {
	return Interval{Begin: v.Begin, End: v.End}
}

// NewVacation builds an unpublished Vacation after checking its field
// invariants against the given "now". Violations yield ErrInvalidBooking.
func NewVacation(title, description, place string, lat, lon float64, begin, end time.Time, ownerID, country string, picturePath *string, now time.Time) (*Vacation, error) {
	// Length bounds count characters, not bytes; multibyte titles must not
	// slip under the minimum.
	if utf8.RuneCountInString(strings.TrimSpace(title)) < 5 {
		return nil, fmt.Errorf("%w: the title must have at least 5 characters", ErrInvalidBooking)
	}
	if utf8.RuneCountInString(strings.TrimSpace(description)) < 5 {
		return nil, fmt.Errorf("%w: the description must have at least 5 characters", ErrInvalidBooking)
	}
	if utf8.RuneCountInString(strings.TrimSpace(place)) < 5 {
		return nil, fmt.Errorf("%w: the place must have at least 5 characters", ErrInvalidBooking)
	}
	if strings.TrimSpace(ownerID) == "" {
		return nil, fmt.Errorf("%w: the vacation must be attached to a user", ErrInvalidBooking)
	}
	// One hour of slack: a vacation beginning within the next hour counts as
	// starting in the past.
	if !begin.After(now.Add(time.Hour)) {
		return nil, fmt.Errorf("%w: a vacation cannot start in the past", ErrInvalidBooking)
	}
	if !end.After(begin) {
		return nil, fmt.Errorf("%w: a vacation must end after its beginning", ErrInvalidBooking)
	}
	return &Vacation{
		Title:       title,
		Description: description,
		Place:       place,
		Country:     country,
		Latitude:    lat,
		Longitude:   lon,
		Begin:       begin,
		End:         end,
		OwnerID:     ownerID,
		Published:   false,
		PicturePath: picturePath,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// CountryHeadcount is one row of the per-country headcount view: how many
// people (owners plus invitees) are away in a country on a given day.
type CountryHeadcount struct {
	Country string `json:"country"`
	People  int    `json:"people"`
}

// VacationRepository defines storage operations for vacations.
//
// Create must run its duplicate-title check, the per-owner overlap check, and
// the insert as one serializable unit so that two concurrent creations cannot
// both pass IsFree and commit overlapping periods.
type VacationRepository interface {
	Create(ctx context.Context, v *Vacation) error
	GetByID(ctx context.Context, id string) (*Vacation, error)
	ListByOwnerID(ctx context.Context, ownerID string) ([]*Vacation, error)
	// ListForUser returns vacations the user owns plus those joined through
	// an accepted invitation.
	ListForUser(ctx context.Context, userID string) ([]*Vacation, error)
	// Publish flips the published flag once. ErrNotFound if the vacation does
	// not exist, ErrAlreadyPublished if the flag was already set.
	Publish(ctx context.Context, id string) error
	// HeadcountByCountry counts, per country, owners plus invitees of
	// vacations covering the given calendar day.
	HeadcountByCountry(ctx context.Context, day time.Time) ([]*CountryHeadcount, error)
}

// CreateVacationArgs carries the caller-supplied fields for a new vacation.
// Dates arrive as dd/MM/yyyy + HH:mm strings and are parsed at the service
// boundary.
type CreateVacationArgs struct {
	Title       string
	Description string
	Place       string
	Country     string
	Latitude    float64
	Longitude   float64
	DateBegin   string
	TimeBegin   string
	DateEnd     string
	TimeEnd     string
	PicturePath *string
	OwnerID     string
}

// VacationService defines the vacation scheduling operations.
type VacationService interface {
	Create(ctx context.Context, args CreateVacationArgs) (*Vacation, error)
	Publish(ctx context.Context, vacationID, actorID string) error
	GetByID(ctx context.Context, vacationID, actorID string) (*Vacation, error)
	ListForUser(ctx context.Context, userID string) ([]*Vacation, error)
	ListMembers(ctx context.Context, vacationID, actorID string) ([]*User, error)
	HeadcountByCountry(ctx context.Context, date string) ([]*CountryHeadcount, error)
}
