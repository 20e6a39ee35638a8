package repository_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stayhub/infras/otel/mocks"
	"stayhub/infras/postgres"
	"stayhub/internal/domains/booking/repository"
	"stayhub/internal/reservation"
)

func TestBookingRepository_GetActiveByUnit(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	defer db.Close()

	conn := sqlx.NewDb(db, "postgres")
	repo := repository.New(&postgres.Connection{Read: conn, Write: conn}, mocks.NewOtel())

	checkIn := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	checkOut := time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC)

	query := regexp.QuoteMeta("FROM bookings WHERE unit_type = $1 AND unit_id = $2 AND status = ANY($3) ORDER BY check_in")

	mock.ExpectQuery(query).
		WithArgs("room", "room-1", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "booking_number", "unit_type", "unit_id", "check_in", "check_out", "status"}).
			AddRow("b1", "RB123456", "room", "room-1", checkIn, checkOut, "confirmed"))

	bookings, err := repo.GetActiveByUnit(context.Background(), "room", "room-1")
	require.NoError(t, err)
	require.Len(t, bookings, 1)

	got := bookings[0].ToReservation()
	assert.Equal(t, "RB123456", got.Number)
	assert.Equal(t, reservation.StatusConfirmed, got.Status)
	assert.True(t, got.CheckIn.Equal(checkIn))

	mock.ExpectQuery(query).
		WithArgs("property", "prop-1", sqlmock.AnyArg()).
		WillReturnError(errors.New("connection reset"))

	_, err = repo.GetActiveByUnit(context.Background(), "property", "prop-1")
	assert.Error(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}
