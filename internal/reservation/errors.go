package reservation

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidRange        = errors.New("invalid date range: check-out must be after check-in")
	ErrInvalidUnitPrice    = errors.New("invalid unit price: base price must be greater than zero")
	ErrUnavailable         = errors.New("date range unavailable")
	ErrAllocationExhausted = errors.New("could not allocate unique booking number")
	ErrInvalidPrefix       = errors.New("invalid booking number prefix")
	ErrInvalidTransition   = errors.New("invalid booking status transition")
)

// Reason tells a caller why a range could not be booked.
type Reason string

const (
	ReasonBlocked Reason = "blocked"
	ReasonBooked  Reason = "booked"
)

// UnavailableError carries the diagnostic data behind an unavailable range.
// errors.Is(err, ErrUnavailable) holds for every UnavailableError.
type UnavailableError struct {
	Reason       Reason
	BlockedDates []string
	Conflict     *Range
}

func (e *UnavailableError) Error() string {
	switch e.Reason {
	case ReasonBlocked:
		return "dates blocked by owner: " + strings.Join(e.BlockedDates, ", ")
	case ReasonBooked:
		if e.Conflict != nil {
			return fmt.Sprintf("dates already booked: %s", e.Conflict)
		}

		return "dates already booked"
	default:
		return ErrUnavailable.Error()
	}
}

func (e *UnavailableError) Is(target error) bool {
	return target == ErrUnavailable
}
