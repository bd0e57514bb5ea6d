package domain

import (
	"fmt"
	"strings"
	"time"
)

// Date and time wire layouts. All externally supplied date/time strings use
// dd/MM/yyyy and HH:mm, combined with a single space.
const (
	DateLayout     = "02/01/2006"
	TimeLayout     = "15:04"
	DateTimeLayout = DateLayout + " " + TimeLayout
)

// ParseDateTime combines a dd/MM/yyyy date and an HH:mm time into an instant.
// This is the single parsing boundary for the API; malformed input yields
// ErrMalformedDateTime, never a silently coerced value.
func ParseDateTime(date, clock string) (time.Time, error) {
	t, err := time.Parse(DateTimeLayout, strings.TrimSpace(date)+" "+strings.TrimSpace(clock))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q %q", ErrMalformedDateTime, date, clock)
	}
	return t, nil
}

// ParseDate parses a bare dd/MM/yyyy date at midnight.
func ParseDate(date string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(date))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrMalformedDateTime, date)
	}
	return t, nil
}
