package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stayhub/internal/domains/booking/model"
	"stayhub/internal/reservation"
	"stayhub/shared/money"
)

func TestBreakdown_ValueScan(t *testing.T) {
	breakdown := model.Breakdown{
		{Date: "2025-03-01", Price: money.MustParse("500"), UsedOverride: false},
		{Date: "2025-03-02", Price: money.MustParse("800"), UsedOverride: true},
	}

	value, err := breakdown.Value()
	require.NoError(t, err)

	var scanned model.Breakdown
	require.NoError(t, scanned.Scan(value))
	assert.Equal(t, breakdown, scanned)

	empty, err := model.Breakdown(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, []byte("[]"), empty)

	require.NoError(t, scanned.Scan(nil))
	assert.Nil(t, scanned)

	assert.Error(t, scanned.Scan(42))
}

func TestToReservations(t *testing.T) {
	bookings := model.ToReservations([]model.Booking{
		{BookingNumber: "LP100001", Status: "pending"},
		{BookingNumber: "LP100002", Status: "cancelled"},
	})

	require.Len(t, bookings, 2)
	assert.Equal(t, reservation.StatusPending, bookings[0].Status)
	assert.False(t, bookings[1].Status.Active())
}
