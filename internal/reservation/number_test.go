package reservation_test

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stayhub/internal/reservation"
)

// sequence feeds fixed offsets to the allocator, one per attempt.
func sequence(offsets ...int) func(int) int {
	idx := 0

	return func(int) int {
		v := offsets[idx%len(offsets)]
		idx++

		return v
	}
}

func TestAllocator_RetriesOnCollision(t *testing.T) {
	taken := reservation.NumberSet{"LP100000": true}
	allocator := &reservation.Allocator{Random: sequence(0, 0, 1)}

	number, err := allocator.Allocate(context.Background(), "LP", taken)
	require.NoError(t, err)

	assert.Equal(t, "LP100001", number)
	assert.False(t, taken[number])
}

func TestAllocator_Exhausted(t *testing.T) {
	calls := 0
	lookup := reservation.NumberLookupFunc(func(context.Context, string) (bool, error) {
		calls++

		return true, nil
	})

	allocator := reservation.NewAllocator(3)

	number, err := allocator.Allocate(context.Background(), "RB", lookup)
	assert.Empty(t, number)
	assert.ErrorIs(t, err, reservation.ErrAllocationExhausted)
	assert.Equal(t, 3, calls)

	calls = 0
	_, err = reservation.AllocateBookingNumber(context.Background(), "RB", lookup)
	assert.ErrorIs(t, err, reservation.ErrAllocationExhausted)
	assert.Equal(t, reservation.DefaultAllocationAttempts, calls)
}

func TestAllocator_LookupError(t *testing.T) {
	lookupErr := errors.New("database down")
	calls := 0
	lookup := reservation.NumberLookupFunc(func(context.Context, string) (bool, error) {
		calls++

		return false, lookupErr
	})

	_, err := reservation.AllocateBookingNumber(context.Background(), "LP", lookup)
	assert.ErrorIs(t, err, lookupErr)
	assert.NotErrorIs(t, err, reservation.ErrAllocationExhausted)
	assert.Equal(t, 1, calls)
}

func TestAllocator_InvalidPrefix(t *testing.T) {
	for _, prefix := range []string{"", "lp", "L1", "TOOLONG"} {
		_, err := reservation.AllocateBookingNumber(context.Background(), prefix, reservation.NumberSet{})
		assert.ErrorIs(t, err, reservation.ErrInvalidPrefix, prefix)
	}
}

func TestAllocator_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := reservation.AllocateBookingNumber(ctx, "LP", reservation.NumberSet{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAllocator_FormatAndUniqueness(t *testing.T) {
	format := regexp.MustCompile(`^LP[1-9][0-9]{5}$`)
	taken := reservation.NumberSet{}

	for range 500 {
		number, err := reservation.AllocateBookingNumber(context.Background(), "LP", taken)
		require.NoError(t, err)

		assert.Regexp(t, format, number)
		assert.False(t, taken[number], "allocator returned a taken number")

		taken[number] = true
	}
}

func TestAllocator_SuffixBounds(t *testing.T) {
	low := &reservation.Allocator{Random: func(int) int { return 0 }}
	high := &reservation.Allocator{Random: func(n int) int { return n - 1 }}

	number, err := low.Allocate(context.Background(), "LP", reservation.NumberSet{})
	require.NoError(t, err)
	assert.Equal(t, "LP100000", number)

	number, err = high.Allocate(context.Background(), "LP", reservation.NumberSet{})
	require.NoError(t, err)
	assert.Equal(t, "LP999999", number)
}
