package bookings

import (
	"fmt"
	"time"
)

// DateLayout is the wire format for stay dates
const DateLayout = "2006-01-02"

// DateRange is a half-open stay window [CheckIn, CheckOut). Both endpoints
// are normalized to local midnight; nights are whole days.
type DateRange struct {
	CheckIn  time.Time `json:"check_in"`
	CheckOut time.Time `json:"check_out"`
}

// NewDateRange normalizes both endpoints to midnight and validates ordering
func NewDateRange(checkIn, checkOut time.Time) (DateRange, error) {
	r := DateRange{
		CheckIn:  Midnight(checkIn),
		CheckOut: Midnight(checkOut),
	}
	if !r.CheckIn.Before(r.CheckOut) {
		return DateRange{}, ErrInvalidDateRange
	}
	return r, nil
}

// ParseDateRange builds a DateRange from wire-format date strings
func ParseDateRange(checkIn, checkOut string) (DateRange, error) {
	in, err := time.ParseInLocation(DateLayout, checkIn, time.Local)
	if err != nil {
		return DateRange{}, fmt.Errorf("%w: bad check-in date %q", ErrInvalidDateRange, checkIn)
	}
	out, err := time.ParseInLocation(DateLayout, checkOut, time.Local)
	if err != nil {
		return DateRange{}, fmt.Errorf("%w: bad check-out date %q", ErrInvalidDateRange, checkOut)
	}
	return NewDateRange(in, out)
}

// Overlaps reports whether two half-open ranges share at least one night.
// Touching endpoints (one stay checks out the day another checks in) do not
// overlap.
func (r DateRange) Overlaps(other DateRange) bool {
	return r.CheckIn.Before(other.CheckOut) && other.CheckIn.Before(r.CheckOut)
}

// Nights returns the number of nights in the stay. Nights are calendar
// days, so a night shortened or stretched by a clock change still counts
// as one.
func (r DateRange) Nights() int {
	nights := 0
	r.EachNight(func(time.Time) { nights++ })
	return nights
}

// EachNight calls fn once per night, in order
func (r DateRange) EachNight(fn func(night time.Time)) {
	for d := r.CheckIn; d.Before(r.CheckOut); d = d.AddDate(0, 0, 1) {
		fn(d)
	}
}

// Midnight truncates a time to local midnight
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
