// Package reservation holds the pure booking rules: calendar-day ranges,
// nightly pricing over sparse overrides, availability checks, booking number
// allocation and the booking status machine. Nothing in here performs I/O;
// services load units, overrides and bookings and pass them in.
package reservation

import (
	"encoding/json"
	"fmt"
	"time"
)

// DateLayout is the canonical calendar-day key used for every date comparison.
const DateLayout = "2006-01-02"

const hoursPerDay = 24

// Day truncates t to its calendar day and pins it to UTC midnight.
// The calendar day is taken from t's own location, so 2024-03-01T23:30+03:00
// stays 2024-03-01.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DateKey returns the YYYY-MM-DD key of t's calendar day.
func DateKey(t time.Time) string {
	return Day(t).Format(DateLayout)
}

// ParseDate parses a YYYY-MM-DD key. Malformed input is an invalid range.
func ParseDate(value string) (time.Time, error) {
	day, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: malformed date %q", ErrInvalidRange, value)
	}

	return day, nil
}

// Range is a half-open calendar-day interval [CheckIn, CheckOut).
type Range struct {
	CheckIn  time.Time
	CheckOut time.Time
}

// NewRange normalizes both ends to calendar days and rejects empty or reversed ranges.
func NewRange(checkIn, checkOut time.Time) (Range, error) {
	if checkIn.IsZero() || checkOut.IsZero() {
		return Range{}, ErrInvalidRange
	}

	r := Range{CheckIn: Day(checkIn), CheckOut: Day(checkOut)}
	if !r.CheckOut.After(r.CheckIn) {
		return Range{}, ErrInvalidRange
	}

	return r, nil
}

func ParseRange(checkIn, checkOut string) (Range, error) {
	in, err := ParseDate(checkIn)
	if err != nil {
		return Range{}, err
	}

	out, err := ParseDate(checkOut)
	if err != nil {
		return Range{}, err
	}

	return NewRange(in, out)
}

// Normalize pins both ends to their calendar days. Ranges built as literals
// rather than through NewRange may carry a time of day.
func (r Range) Normalize() Range {
	return Range{CheckIn: Day(r.CheckIn), CheckOut: Day(r.CheckOut)}
}

func (r Range) Nights() int {
	return int(r.CheckOut.Sub(r.CheckIn).Hours() / hoursPerDay)
}

// Overlaps uses half-open semantics: a check-out on another range's check-in day is not a conflict.
func (r Range) Overlaps(other Range) bool {
	return r.CheckIn.Before(other.CheckOut) && other.CheckIn.Before(r.CheckOut)
}

func (r Range) Adjacent(other Range) bool {
	return r.CheckOut.Equal(other.CheckIn) || other.CheckOut.Equal(r.CheckIn)
}

func (r Range) Contains(t time.Time) bool {
	day := Day(t)

	return !day.Before(r.CheckIn) && day.Before(r.CheckOut)
}

// Days lists every night of the range, check-in inclusive and check-out exclusive.
func (r Range) Days() []time.Time {
	days := make([]time.Time, 0, r.Nights())

	for day := r.CheckIn; day.Before(r.CheckOut); day = day.AddDate(0, 0, 1) {
		days = append(days, day)
	}

	return days
}

func (r Range) String() string {
	return fmt.Sprintf("[%s, %s)", r.CheckIn.Format(DateLayout), r.CheckOut.Format(DateLayout))
}

type rangeJSON struct {
	CheckIn  string `json:"check_in"`
	CheckOut string `json:"check_out"`
}

func (r Range) MarshalJSON() ([]byte, error) {
	return json.Marshal(rangeJSON{
		CheckIn:  r.CheckIn.Format(DateLayout),
		CheckOut: r.CheckOut.Format(DateLayout),
	})
}

func (r *Range) UnmarshalJSON(data []byte) error {
	var raw rangeJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to decode range: %w", err)
	}

	parsed, err := ParseRange(raw.CheckIn, raw.CheckOut)
	if err != nil {
		return err
	}

	*r = parsed

	return nil
}
