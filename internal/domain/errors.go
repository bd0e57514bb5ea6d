package domain

import (
	"errors"
	"strings"
)

// Sentinel errors shared across services and repositories. Controllers map
// these to HTTP statuses with errors.Is.
var (
	// ErrInvalidBooking signals a structural or field validation failure.
	ErrInvalidBooking = errors.New("invalid booking")
	// ErrDuplicateTitle signals a second vacation with the same title for one owner.
	ErrDuplicateTitle = errors.New("vacation title already in use")
	// ErrDuplicateName signals two activities sharing a name within one batch.
	ErrDuplicateName = errors.New("activity name already in use")
	// ErrPeriodConflict signals temporal overlap with an existing interval.
	ErrPeriodConflict = errors.New("period is not free")
	// ErrNotFound signals an unknown vacation, activity, or invitation id.
	ErrNotFound = errors.New("not found")
	// ErrForbidden signals that the actor may not see or modify the entity.
	ErrForbidden = errors.New("forbidden")
	// ErrAlreadyPublished signals a second publish of the same vacation.
	ErrAlreadyPublished = errors.New("vacation already published")
	// ErrPublished signals a mutation attempted on a published vacation.
	ErrPublished = errors.New("vacation is published")
	// ErrUserNotFound signals a referenced user id or email that does not resolve.
	ErrUserNotFound = errors.New("user not found")
	// ErrDuplicateEmail signals a signup with an email already in use.
	ErrDuplicateEmail = errors.New("email already in use")
	// ErrMalformedDateTime signals a date/time string that does not parse
	// under the dd/MM/yyyy HH:mm convention.
	ErrMalformedDateTime = errors.New("malformed date/time")
	// ErrStorage signals a transactional commit failure not attributable to a
	// business rule. Callers may retry the whole operation against fresh state.
	ErrStorage = errors.New("storage failure")
)

// BatchValidationError aggregates per-item validation failures from a batch
// add. The whole batch is aborted; no partial commit happens.
type BatchValidationError struct {
	Problems []string
}

func (e *BatchValidationError) Error() string {
	return "batch validation failed: " + strings.Join(e.Problems, "; ")
}

// Unwrap lets errors.Is(err, ErrInvalidBooking) match a batch failure.
func (e *BatchValidationError) Unwrap() error {
	return ErrInvalidBooking
}
