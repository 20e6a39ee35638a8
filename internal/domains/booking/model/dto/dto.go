package dto

import (
	"github.com/google/uuid"

	"stayhub/internal/domains/booking/model"
	"stayhub/internal/reservation"
	"stayhub/shared"
	gDto "stayhub/shared/dto"
	gModel "stayhub/shared/model"
	"stayhub/shared/money"
	"stayhub/shared/timezone"
)

type CreateBookingRequest struct {
	UnitType   string `json:"unit_type"   validate:"required,oneof=property room"`
	UnitID     string `json:"unit_id"     validate:"required"`
	CheckIn    string `json:"check_in"    validate:"required,date"`
	CheckOut   string `json:"check_out"   validate:"required,date"`
	Guests     int    `json:"guests"      validate:"required,min=1,max=50"`
	GuestName  string `json:"guest_name"  validate:"required,max=100"`
	GuestEmail string `json:"guest_email" validate:"required,email,max=100"`
	GuestPhone string `json:"guest_phone" validate:"omitempty,max=20"`
	Notes      string `json:"notes"       validate:"omitempty,max=1000"`
}

func (c *CreateBookingRequest) Range() (reservation.Range, error) {
	return reservation.ParseRange(c.CheckIn, c.CheckOut)
}

// ToModel builds a pending, unpaid booking from a priced stay. The booking
// number is assigned by the caller.
func (c *CreateBookingRequest) ToModel(user, currency string, stay reservation.Range, quote reservation.Quote) model.Booking {
	now := timezone.Now()

	return model.Booking{
		ID:             uuid.NewString(),
		UnitType:       c.UnitType,
		UnitID:         c.UnitID,
		UserID:         user,
		CheckIn:        stay.CheckIn,
		CheckOut:       stay.CheckOut,
		Nights:         quote.Nights,
		Guests:         c.Guests,
		GuestName:      c.GuestName,
		GuestEmail:     c.GuestEmail,
		GuestPhone:     c.GuestPhone,
		Notes:          c.Notes,
		Status:         string(reservation.StatusPending),
		PaymentStatus:  model.PaymentStatusUnpaid,
		TotalPrice:     quote.Total,
		Currency:       currency,
		PriceBreakdown: quote.PerNight,
		Metadata: gModel.NewMetadata(user, now),
	}
}

type BookingResponse struct {
	ID             string                   `json:"id"`
	BookingNumber  string                   `json:"booking_number"`
	UnitType       string                   `json:"unit_type"`
	UnitID         string                   `json:"unit_id"`
	UserID         string                   `json:"user_id"`
	CheckIn        string                   `json:"check_in"`
	CheckOut       string                   `json:"check_out"`
	Nights         int                      `json:"nights"`
	Guests         int                      `json:"guests"`
	GuestName      string                   `json:"guest_name"`
	GuestEmail     string                   `json:"guest_email"`
	GuestPhone     string                   `json:"guest_phone"`
	Notes          string                   `json:"notes"`
	Status         string                   `json:"status"`
	PaymentStatus  string                   `json:"payment_status"`
	TotalPrice     money.Amount             `json:"total_price"     swaggertype:"number"`
	Currency       string                   `json:"currency"`
	PriceBreakdown []reservation.NightPrice `json:"price_breakdown"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(model model.Booking) {
	r.ID = model.ID
	r.BookingNumber = model.BookingNumber
	r.UnitType = model.UnitType
	r.UnitID = model.UnitID
	r.UserID = model.UserID
	r.CheckIn = reservation.DateKey(model.CheckIn)
	r.CheckOut = reservation.DateKey(model.CheckOut)
	r.Nights = model.Nights
	r.Guests = model.Guests
	r.GuestName = model.GuestName
	r.GuestEmail = model.GuestEmail
	r.GuestPhone = model.GuestPhone
	r.Notes = model.Notes
	r.Status = model.Status
	r.PaymentStatus = model.PaymentStatus
	r.TotalPrice = model.TotalPrice
	r.Currency = model.Currency
	r.PriceBreakdown = model.PriceBreakdown
	r.Metadata.FromModel(model.Metadata)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}

// StatusChangedEvent is published whenever staff move a booking along its lifecycle.
type StatusChangedEvent struct {
	ID            string `json:"id"`
	BookingNumber string `json:"booking_number"`
	From          string `json:"from"`
	To            string `json:"to"`
	ChangedBy     string `json:"changed_by"`
}
