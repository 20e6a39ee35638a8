package dto

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"stayhub/internal/domains/pricing/model"
	"stayhub/internal/reservation"
	"stayhub/shared"
	"stayhub/shared/constant"
	gDto "stayhub/shared/dto"
	gModel "stayhub/shared/model"
	"stayhub/shared/money"
	"stayhub/shared/timezone"
)

// MaxOverrideSpan caps how many days one create request may cover.
const MaxOverrideSpan = 366

var (
	ErrPriceRequired   = errors.New("price is required unless the date is closed")
	ErrEndBeforeStart  = errors.New("end_date must not be before date")
	ErrOverrideSpan    = errors.New("an override request may cover at most 366 days")
	ErrDiscountTooHigh = errors.New("discount_price must be lower than price")
)

// CheckPrice enforces the price rules shared by create and update.
func CheckPrice(price, discount *money.Amount, available bool) error {
	if available && price == nil {
		return ErrPriceRequired
	}

	if price != nil && discount != nil && *discount >= *price {
		return ErrDiscountTooHigh
	}

	return nil
}

type CreateOverrideRequest struct {
	UnitType      string        `json:"unit_type"      validate:"required,oneof=property room"`
	UnitID        string        `json:"unit_id"        validate:"required"`
	Date          string        `json:"date"           validate:"required,date"`
	EndDate       string        `json:"end_date"       validate:"omitempty,date"`
	Price         *money.Amount `json:"price"          validate:"omitempty,amount" swaggertype:"number"`
	DiscountPrice *money.Amount `json:"discount_price" validate:"omitempty,amount" swaggertype:"number"`
	Available     *bool         `json:"available"      validate:"omitempty"`
	Reason        string        `json:"reason"         validate:"omitempty,max=255"`
}

func (c *CreateOverrideRequest) IsAvailable() bool {
	return c.Available == nil || *c.Available
}

// ToModels expands the request into one override per day of [date, end_date].
func (c *CreateOverrideRequest) ToModels(user string) ([]model.Override, error) {
	start, err := reservation.ParseDate(c.Date)
	if err != nil {
		return nil, err
	}

	end := start

	if c.EndDate != "" {
		if end, err = reservation.ParseDate(c.EndDate); err != nil {
			return nil, err
		}
	}

	if end.Before(start) {
		return nil, ErrEndBeforeStart
	}

	span, err := reservation.NewRange(start, end.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}

	if span.Nights() > MaxOverrideSpan {
		return nil, ErrOverrideSpan
	}

	if err = CheckPrice(c.Price, c.DiscountPrice, c.IsAvailable()); err != nil {
		return nil, err
	}

	now := timezone.Now()
	overrides := make([]model.Override, 0, span.Nights())

	for _, day := range span.Days() {
		overrides = append(overrides, model.Override{
			ID:            uuid.NewString(),
			UnitType:      c.UnitType,
			UnitID:        c.UnitID,
			Date:          day,
			Price:         c.Price,
			DiscountPrice: c.DiscountPrice,
			Available:     c.IsAvailable(),
			Reason:        c.Reason,
			Metadata: gModel.NewMetadata(user, now),
		})
	}

	return overrides, nil
}

type UpdateOverrideRequest struct {
	Price         *money.Amount `db:"price"          json:"price"          validate:"omitempty,amount" swaggertype:"number"`
	DiscountPrice *money.Amount `db:"discount_price" json:"discount_price" validate:"omitempty,amount" swaggertype:"number"`
	Available     *bool         `db:"available"      json:"available"      validate:"omitempty"`
	Reason        *string       `db:"reason"         json:"reason"         validate:"omitempty,max=255"`
}

// Merge applies the request on top of the stored override.
func (u *UpdateOverrideRequest) Merge(current model.Override) model.Override {
	if u.Price != nil {
		current.Price = u.Price
	}

	if u.DiscountPrice != nil {
		current.DiscountPrice = u.DiscountPrice
	}

	if u.Available != nil {
		current.Available = *u.Available
	}

	if u.Reason != nil {
		current.Reason = *u.Reason
	}

	return current
}

type OverrideResponse struct {
	ID            string        `json:"id"`
	UnitType      string        `json:"unit_type"`
	UnitID        string        `json:"unit_id"`
	Date          string        `json:"date"`
	Price         *money.Amount `json:"price"          swaggertype:"number"`
	DiscountPrice *money.Amount `json:"discount_price" swaggertype:"number"`
	Available     bool          `json:"available"`
	Reason        string        `json:"reason"`
	gDto.Metadata
}

func (r *OverrideResponse) FromModel(model model.Override) {
	r.ID = model.ID
	r.UnitType = model.UnitType
	r.UnitID = model.UnitID
	r.Date = reservation.DateKey(model.Date)
	r.Price = model.Price
	r.DiscountPrice = model.DiscountPrice
	r.Available = model.Available
	r.Reason = model.Reason
	r.Metadata.FromModel(model.Metadata)
}

type GetOverridesResponse struct {
	Overrides []OverrideResponse `json:"overrides"`
	TotalPage int                `json:"total_page"`
	TotalData int                `json:"total_data"`
}

func (r *GetOverridesResponse) FromModels(models []model.Override, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Overrides = make([]OverrideResponse, len(models))
	for i, mod := range models {
		r.Overrides[i].FromModel(mod)
	}
}

// UnitRequest identifies the unit a pricing query is about.
type UnitRequest struct {
	UnitType string `form:"unit_type" json:"unit_type" validate:"required,oneof=property room"`
	UnitID   string `form:"unit_id"   json:"unit_id"   validate:"required"`
}

type StayRequest struct {
	UnitRequest
	CheckIn  string `form:"check_in"  json:"check_in"  validate:"required,date"`
	CheckOut string `form:"check_out" json:"check_out" validate:"required,date"`
}

func (s *StayRequest) Range() (reservation.Range, error) {
	return reservation.ParseRange(s.CheckIn, s.CheckOut)
}

type CalendarRequest struct {
	UnitRequest
	Month string `form:"month" json:"month" validate:"omitempty,month"`
}

// MonthRange returns the nights of the requested month, the current one when
// none was asked for.
func (c *CalendarRequest) MonthRange() (reservation.Range, error) {
	if c.Month == constant.Empty {
		c.Month = timezone.Today().Format(constant.MonthOnly)
	}

	start, err := time.Parse(constant.MonthOnly, c.Month)
	if err != nil {
		return reservation.Range{}, err
	}

	return reservation.NewRange(start, start.AddDate(0, 1, 0))
}

type QuoteResponse struct {
	UnitType string `json:"unit_type"`
	UnitID   string `json:"unit_id"`
	Currency string `json:"currency"`
	reservation.Quote
}

type AvailabilityResponse struct {
	UnitType string `json:"unit_type"`
	UnitID   string `json:"unit_id"`
	CheckIn  string `json:"check_in"`
	CheckOut string `json:"check_out"`
	reservation.Availability
}

type CalendarDay struct {
	Date         string             `json:"date"`
	Available    bool               `json:"available"`
	Reason       reservation.Reason `json:"reason,omitempty"`
	Price        *money.Amount      `json:"price,omitempty" swaggertype:"number"`
	UsedOverride bool               `json:"used_override"`
}

type CalendarResponse struct {
	UnitType string        `json:"unit_type"`
	UnitID   string        `json:"unit_id"`
	Month    string        `json:"month"`
	Currency string        `json:"currency"`
	Days     []CalendarDay `json:"days"`
}
