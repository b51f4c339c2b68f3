package bookings

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustRange(t *testing.T, checkIn, checkOut string) DateRange {
	t.Helper()
	r, err := ParseDateRange(checkIn, checkOut)
	require.NoError(t, err)
	return r
}

func TestParseDateRange(t *testing.T) {
	r := mustRange(t, "2026-09-10", "2026-09-13")
	assert.Equal(t, 3, r.Nights())
	assert.Equal(t, 0, r.CheckIn.Hour())
	assert.Equal(t, 0, r.CheckOut.Hour())
}

func TestParseDateRangeRejectsBadInput(t *testing.T) {
	_, err := ParseDateRange("not-a-date", "2026-09-13")
	assert.ErrorIs(t, err, ErrInvalidDateRange)

	_, err = ParseDateRange("2026-09-13", "2026-09-10")
	assert.ErrorIs(t, err, ErrInvalidDateRange)

	// Zero-night stay is invalid
	_, err = ParseDateRange("2026-09-10", "2026-09-10")
	assert.ErrorIs(t, err, ErrInvalidDateRange)
}

func TestOverlaps(t *testing.T) {
	base := mustRange(t, "2026-09-10", "2026-09-15")

	tests := []struct {
		name    string
		other   DateRange
		overlap bool
	}{
		{"identical", mustRange(t, "2026-09-10", "2026-09-15"), true},
		{"contained", mustRange(t, "2026-09-11", "2026-09-13"), true},
		{"containing", mustRange(t, "2026-09-08", "2026-09-20"), true},
		{"partial front", mustRange(t, "2026-09-08", "2026-09-11"), true},
		{"partial back", mustRange(t, "2026-09-14", "2026-09-18"), true},
		{"checkout day handover", mustRange(t, "2026-09-15", "2026-09-18"), false},
		{"checkin day handover", mustRange(t, "2026-09-05", "2026-09-10"), false},
		{"disjoint", mustRange(t, "2026-10-01", "2026-10-05"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.overlap, base.Overlaps(tt.other))
			// Overlap is symmetric
			assert.Equal(t, tt.overlap, tt.other.Overlaps(base))
		})
	}
}

func TestNightsSpanClockChange(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}

	// US clocks spring forward on 2026-03-08: two calendar nights but only
	// 47 wall hours. Hour division would undercount this stay.
	r := DateRange{
		CheckIn:  time.Date(2026, 3, 7, 0, 0, 0, 0, loc),
		CheckOut: time.Date(2026, 3, 9, 0, 0, 0, 0, loc),
	}
	assert.Equal(t, 2, r.Nights())

	// Fall back on 2026-11-01: 49 wall hours, still two nights
	r = DateRange{
		CheckIn:  time.Date(2026, 10, 31, 0, 0, 0, 0, loc),
		CheckOut: time.Date(2026, 11, 2, 0, 0, 0, 0, loc),
	}
	assert.Equal(t, 2, r.Nights())
}

func TestEachNight(t *testing.T) {
	r := mustRange(t, "2026-09-10", "2026-09-13")

	var nights []string
	r.EachNight(func(night time.Time) {
		nights = append(nights, night.Format(DateLayout))
	})

	// Checkout day is not a night
	assert.Equal(t, []string{"2026-09-10", "2026-09-11", "2026-09-12"}, nights)
}

func TestMidnight(t *testing.T) {
	ts := time.Date(2026, 9, 10, 17, 42, 3, 0, time.Local)
	m := Midnight(ts)
	assert.Equal(t, 0, m.Hour())
	assert.Equal(t, ts.Day(), m.Day())
}
