package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(d int) time.Time {
	return time.Date(2026, 6, d, 0, 0, 0, 0, time.UTC)
}

func interval(beginDay, endDay int) Interval {
	return Interval{Begin: day(beginDay), End: day(endDay)}
}

func TestInterval_Overlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b Interval
		want bool
	}{
		{name: "disjoint before", a: interval(1, 5), b: interval(6, 10), want: false},
		{name: "disjoint after", a: interval(6, 10), b: interval(1, 5), want: false},
		{name: "partial overlap", a: interval(1, 7), b: interval(5, 10), want: true},
		{name: "containment", a: interval(1, 10), b: interval(3, 5), want: true},
		{name: "contained", a: interval(3, 5), b: interval(1, 10), want: true},
		{name: "identical", a: interval(1, 5), b: interval(1, 5), want: true},
		{name: "touching end to begin", a: interval(1, 5), b: interval(5, 10), want: true},
		{name: "touching begin to end", a: interval(5, 10), b: interval(1, 5), want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Overlaps(tt.b))
			// Overlap is symmetric.
			assert.Equal(t, tt.want, tt.b.Overlaps(tt.a))
		})
	}
}

func TestIsFree(t *testing.T) {
	existing := []Interval{interval(1, 5), interval(10, 15)}

	assert.True(t, IsFree(interval(6, 9), existing))
	assert.False(t, IsFree(interval(4, 11), existing), "spanning both")
	assert.False(t, IsFree(interval(5, 6), existing), "shared endpoint counts as overlap")
	assert.True(t, IsFree(interval(1, 5), nil), "empty set is always free")
}
