package service

import (
	"errors"
	"fmt"

	"stayhub/internal/reservation"
	"stayhub/shared/failure"
)

// ReservationFailure maps errors from the reservation rules onto HTTP failures.
// Errors it does not recognise are wrapped and surface as 500.
func ReservationFailure(err error) error {
	if err == nil {
		return nil
	}

	var unavailable *reservation.UnavailableError

	switch {
	case errors.As(err, &unavailable):
		return failure.Conflict(unavailable.Error()) // nolint:wrapcheck
	case errors.Is(err, reservation.ErrInvalidRange),
		errors.Is(err, reservation.ErrInvalidUnitPrice),
		errors.Is(err, reservation.ErrInvalidTransition),
		errors.Is(err, reservation.ErrInvalidPrefix):
		return failure.BadRequest(err) // nolint:wrapcheck
	case errors.Is(err, reservation.ErrAllocationExhausted):
		return failure.InternalError(err) // nolint:wrapcheck
	default:
		return fmt.Errorf("reservation: %w", err)
	}
}
