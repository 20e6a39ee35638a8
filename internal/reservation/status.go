package reservation

import (
	"fmt"
	"slices"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

var transitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCancelled},
}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled:
		return true
	default:
		return false
	}
}

// Active bookings hold their dates.
func (s Status) Active() bool {
	return s == StatusPending || s == StatusConfirmed
}

func CanTransition(from, to Status) bool {
	return slices.Contains(transitions[from], to)
}

// Transition validates a staff-triggered status change. Cancelled is terminal.
func Transition(from, to Status) error {
	if !CanTransition(from, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}

	return nil
}
