package postgres

import (
	"errors"
	"fmt"

	"github.com/lib/pq"

	"vacationbooking/internal/domain"
)

// Postgres error codes this package cares about.
const (
	codeSerializationFailure = "40001"
	codeUniqueViolation      = "23505"
)

// mapError translates driver-level failures into the domain taxonomy.
// Serialization failures surface as ErrStorage so the caller may retry the
// whole operation against fresh state; anything else is passed through.
func mapError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case codeSerializationFailure:
			return fmt.Errorf("%w: serialization failure", domain.ErrStorage)
		case codeUniqueViolation:
			return fmt.Errorf("%w: unique violation %s", domain.ErrStorage, pqErr.Constraint)
		}
	}
	return err
}
