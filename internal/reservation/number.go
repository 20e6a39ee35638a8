package reservation

import (
	"context"
	"fmt"
	"math/rand/v2"
	"regexp"
)

const (
	DefaultAllocationAttempts = 10

	MinNumberSuffix = 100000
	MaxNumberSuffix = 999999
)

var prefixPattern = regexp.MustCompile(`^[A-Z]{1,4}$`)

// NumberLookup reports whether a booking number is already taken.
type NumberLookup interface {
	Exists(ctx context.Context, number string) (bool, error)
}

type NumberLookupFunc func(ctx context.Context, number string) (bool, error)

func (f NumberLookupFunc) Exists(ctx context.Context, number string) (bool, error) {
	return f(ctx, number)
}

// NumberSet is an in-memory NumberLookup.
type NumberSet map[string]bool

func (s NumberSet) Exists(_ context.Context, number string) (bool, error) {
	return s[number], nil
}

// Allocator draws <PREFIX><6 digits> numbers until one is free.
// Random must return a value in [0, n); it defaults to math/rand/v2.IntN.
type Allocator struct {
	Attempts int
	Random   func(n int) int
}

func NewAllocator(attempts int) *Allocator {
	return &Allocator{Attempts: attempts}
}

func (a *Allocator) attempts() int {
	if a == nil || a.Attempts <= 0 {
		return DefaultAllocationAttempts
	}

	return a.Attempts
}

func (a *Allocator) next() int {
	span := MaxNumberSuffix - MinNumberSuffix + 1

	if a == nil || a.Random == nil {
		return MinNumberSuffix + rand.IntN(span) //nolint:gosec
	}

	return MinNumberSuffix + a.Random(span)
}

// Allocate returns a number not known to lookup. Lookup errors abort the
// allocation immediately; running out of attempts returns ErrAllocationExhausted.
func (a *Allocator) Allocate(ctx context.Context, prefix string, lookup NumberLookup) (string, error) {
	if !prefixPattern.MatchString(prefix) {
		return "", fmt.Errorf("%w: %q", ErrInvalidPrefix, prefix)
	}

	attempts := a.attempts()

	for range attempts {
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("booking number allocation cancelled: %w", err)
		}

		number := FormatNumber(prefix, a.next())

		taken, err := lookup.Exists(ctx, number)
		if err != nil {
			return "", fmt.Errorf("failed to check booking number %s: %w", number, err)
		}

		if !taken {
			return number, nil
		}
	}

	return "", fmt.Errorf("%w: %d attempts collided", ErrAllocationExhausted, attempts)
}

func FormatNumber(prefix string, suffix int) string {
	return fmt.Sprintf("%s%06d", prefix, suffix)
}

// AllocateBookingNumber allocates with the default attempt budget.
func AllocateBookingNumber(ctx context.Context, prefix string, lookup NumberLookup) (string, error) {
	return (&Allocator{}).Allocate(ctx, prefix, lookup)
}
