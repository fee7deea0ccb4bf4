package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/navalha-labs/booking-engine/internal/timezone"
)

func at(t *testing.T, hm string) time.Time {
	t.Helper()
	day, err := timezone.ParseDate("2030-06-10")
	if err != nil {
		t.Fatal(err)
	}
	out, err := timezone.At(day, hm)
	if err != nil {
		t.Fatal(err)
	}
	return out
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name   string
		aStart string
		aDur   time.Duration
		bStart string
		bDur   time.Duration
		want   bool
	}{
		{"identical intervals", "10:00", 30 * time.Minute, "10:00", 30 * time.Minute, true},
		{"partial overlap at tail", "10:00", 45 * time.Minute, "10:30", 30 * time.Minute, true},
		{"contained interval", "10:00", 60 * time.Minute, "10:15", 15 * time.Minute, true},
		{"back to back is legal", "10:00", 30 * time.Minute, "10:30", 30 * time.Minute, false},
		{"back to back reversed", "10:30", 30 * time.Minute, "10:00", 30 * time.Minute, false},
		{"disjoint", "09:00", 30 * time.Minute, "11:00", 30 * time.Minute, false},
		{"one minute overlap", "10:00", 31 * time.Minute, "10:30", 30 * time.Minute, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Overlaps(at(t, tt.aStart), tt.aDur, at(t, tt.bStart), tt.bDur)
			assert.Equal(t, tt.want, got)

			// the primitive is symmetric
			rev := Overlaps(at(t, tt.bStart), tt.bDur, at(t, tt.aStart), tt.aDur)
			assert.Equal(t, tt.want, rev)
		})
	}
}

func TestIntervalsOverlapHalfOpen(t *testing.T) {
	// [10:00, 10:30) and [10:30, 11:00) share the boundary instant only
	assert.False(t, IntervalsOverlap(
		at(t, "10:00"), at(t, "10:30"),
		at(t, "10:30"), at(t, "11:00"),
	))

	assert.True(t, IntervalsOverlap(
		at(t, "10:00"), at(t, "10:31"),
		at(t, "10:30"), at(t, "11:00"),
	))
}
