package domain

import "time"

// Interval is a half-open booking period [Begin, End).
type Interval struct {
	Begin time.Time
	End   time.Time
}

// Overlaps reports whether the two intervals conflict under the booking
// policy: ties count as conflicts, so intervals that merely touch at an
// endpoint are still considered overlapping.
func (i Interval) Overlaps(other Interval) bool {
	return (!other.Begin.Before(i.Begin) || !other.End.Before(i.Begin)) &&
		(!other.Begin.After(i.End) || !other.End.After(i.End))
}

// IsFree reports whether candidate conflicts with none of the existing
// intervals. Callers are responsible for excluding the entity being
// re-planned from existing. Pure; both schedulers share it.
func IsFree(candidate Interval, existing []Interval) bool {
	for _, iv := range existing {
		if candidate.Overlaps(iv) {
			return false
		}
	}
	return true
}
