package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"stayhub/internal/reservation"
	"stayhub/shared/model"
	"stayhub/shared/money"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID             = "id"
	FieldBookingNumber  = "booking_number"
	FieldUnitType       = "unit_type"
	FieldUnitID         = "unit_id"
	FieldUserID         = "user_id"
	FieldCheckIn        = "check_in"
	FieldCheckOut       = "check_out"
	FieldNights         = "nights"
	FieldGuests         = "guests"
	FieldGuestName      = "guest_name"
	FieldGuestEmail     = "guest_email"
	FieldGuestPhone     = "guest_phone"
	FieldNotes          = "notes"
	FieldStatus         = "status"
	FieldPaymentStatus  = "payment_status"
	FieldTotalPrice     = "total_price"
	FieldCurrency       = "currency"
	FieldPriceBreakdown = "price_breakdown"
	FieldCreatedBy      = "created_by"
)

// Cache key prefixes shared by every service that writes bookings.
const (
	CacheGet    = "booking:get"
	CacheGetAll = "booking:gets"
	CacheCount  = "booking:count"
)

const (
	PaymentStatusUnpaid  = "unpaid"
	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
	PaymentStatusFailed  = "failed"
)

var errBreakdownType = errors.New("price breakdown must be JSON bytes or string")

// Breakdown is the per-night price list stored as JSON next to the total.
type Breakdown []reservation.NightPrice

func (b Breakdown) Value() (driver.Value, error) {
	if b == nil {
		return []byte("[]"), nil
	}

	return json.Marshal(b) //nolint:wrapcheck
}

func (b *Breakdown) Scan(src any) error {
	switch value := src.(type) {
	case nil:
		*b = nil

		return nil
	case []byte:
		return json.Unmarshal(value, b) //nolint:wrapcheck
	case string:
		return json.Unmarshal([]byte(value), b) //nolint:wrapcheck
	default:
		return errBreakdownType
	}
}

type Booking struct {
	ID             string       `db:"id"`
	BookingNumber  string       `db:"booking_number"`
	UnitType       string       `db:"unit_type"`
	UnitID         string       `db:"unit_id"`
	UserID         string       `db:"user_id"`
	CheckIn        time.Time    `db:"check_in"`
	CheckOut       time.Time    `db:"check_out"`
	Nights         int          `db:"nights"`
	Guests         int          `db:"guests"`
	GuestName      string       `db:"guest_name"`
	GuestEmail     string       `db:"guest_email"`
	GuestPhone     string       `db:"guest_phone"`
	Notes          string       `db:"notes"`
	Status         string       `db:"status"`
	PaymentStatus  string       `db:"payment_status"`
	TotalPrice     money.Amount `db:"total_price"`
	Currency       string       `db:"currency"`
	PriceBreakdown Breakdown    `db:"price_breakdown"`
	model.Metadata
}

func (b Booking) ToReservation() reservation.Booking {
	return reservation.Booking{
		Number:   b.BookingNumber,
		CheckIn:  b.CheckIn,
		CheckOut: b.CheckOut,
		Status:   reservation.Status(b.Status),
	}
}

func ToReservations(models []Booking) []reservation.Booking {
	bookings := make([]reservation.Booking, len(models))

	for i, mod := range models {
		bookings[i] = mod.ToReservation()
	}

	return bookings
}
