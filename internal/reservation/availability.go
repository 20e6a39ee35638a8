package reservation

import (
	"slices"
	"time"
)

// Booking is the slice of a stored booking that availability cares about.
type Booking struct {
	Number   string
	CheckIn  time.Time
	CheckOut time.Time
	Status   Status
}

type Availability struct {
	Available    bool     `json:"available"`
	Reason       Reason   `json:"reason,omitempty"`
	Conflict     *Range   `json:"conflict,omitempty"`
	BlockedDates []string `json:"blocked_dates,omitempty"`
}

// Err converts a negative result into an *UnavailableError.
func (a Availability) Err() error {
	if a.Available {
		return nil
	}

	return &UnavailableError{
		Reason:       a.Reason,
		BlockedDates: a.BlockedDates,
		Conflict:     a.Conflict,
	}
}

// CheckAvailability decides whether candidate can be booked.
//
// Cancelled bookings never conflict, even when the caller passes them in.
// Blocked override days take precedence over booking conflicts in Reason,
// but Conflict is still reported when one exists. When several bookings
// overlap, the one with the earliest check-in is reported.
func CheckAvailability(candidate Range, bookings []Booking, overrides Overrides) Availability {
	candidate = candidate.Normalize()
	result := Availability{Available: true}

	var conflicts []Range

	for _, booking := range bookings {
		if !booking.Status.Active() {
			continue
		}

		existing, err := NewRange(booking.CheckIn, booking.CheckOut)
		if err != nil {
			continue
		}

		if candidate.Overlaps(existing) {
			conflicts = append(conflicts, existing)
		}
	}

	if len(conflicts) > 0 {
		slices.SortFunc(conflicts, func(a, b Range) int {
			return a.CheckIn.Compare(b.CheckIn)
		})

		result.Available = false
		result.Reason = ReasonBooked
		result.Conflict = &conflicts[0]
	}

	if blocked := overrides.BlockedIn(candidate); len(blocked) > 0 {
		result.Available = false
		result.Reason = ReasonBlocked
		result.BlockedDates = blocked
	}

	return result
}
