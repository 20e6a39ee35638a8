package reservation

import (
	"time"

	"stayhub/shared/money"
)

// UnitPrice is the standing price of a bookable unit.
// DiscountPrice only applies when it is lower than BasePrice.
type UnitPrice struct {
	BasePrice     money.Amount
	DiscountPrice *money.Amount
}

func (u UnitPrice) Validate() error {
	if !u.BasePrice.IsPositive() {
		return ErrInvalidUnitPrice
	}

	return nil
}

// Nightly is the price charged on a night without a usable override.
func (u UnitPrice) Nightly() money.Amount {
	if u.DiscountPrice != nil && *u.DiscountPrice < u.BasePrice {
		return *u.DiscountPrice
	}

	return u.BasePrice
}

// Override is a date-specific price or availability exception.
// Blocked corresponds to a stored available=false flag.
type Override struct {
	Price         *money.Amount
	DiscountPrice *money.Amount
	Blocked       bool
	Reason        string
}

// price returns the override's effective price. An open override without a
// price has nothing to say about pricing and reports false.
func (o Override) price() (money.Amount, bool) {
	if o.Blocked || o.Price == nil {
		return 0, false
	}

	if o.DiscountPrice != nil && *o.DiscountPrice < *o.Price {
		return *o.DiscountPrice, true
	}

	return *o.Price, true
}

// Overrides indexes overrides by YYYY-MM-DD key.
type Overrides map[string]Override

func (o Overrides) Lookup(day time.Time) (Override, bool) {
	override, ok := o[DateKey(day)]

	return override, ok
}

// BlockedIn returns the keys of blocked days inside r, in calendar order.
func (o Overrides) BlockedIn(r Range) []string {
	var blocked []string

	for _, day := range r.Days() {
		if override, ok := o.Lookup(day); ok && override.Blocked {
			blocked = append(blocked, DateKey(day))
		}
	}

	return blocked
}

type NightPrice struct {
	Date         string       `json:"date"`
	Price        money.Amount `json:"price"`
	UsedOverride bool         `json:"used_override"`
}

type Quote struct {
	CheckIn  string       `json:"check_in"`
	CheckOut string       `json:"check_out"`
	Nights   int          `json:"nights"`
	PerNight []NightPrice `json:"per_night"`
	Total    money.Amount `json:"total"`
}

// CalculatePrice prices every night of [checkIn, checkOut).
//
// Each night falls back through override discount, override price, unit
// discount and finally base price. A blocked override anywhere in the range
// fails the whole quote with an UnavailableError listing every blocked day.
func CalculatePrice(unit UnitPrice, overrides Overrides, checkIn, checkOut time.Time) (Quote, error) {
	stay, err := NewRange(checkIn, checkOut)
	if err != nil {
		return Quote{}, err
	}

	return CalculateRangePrice(unit, overrides, stay)
}

func CalculateRangePrice(unit UnitPrice, overrides Overrides, stay Range) (Quote, error) {
	stay = stay.Normalize()

	if !stay.CheckOut.After(stay.CheckIn) {
		return Quote{}, ErrInvalidRange
	}

	if err := unit.Validate(); err != nil {
		return Quote{}, err
	}

	if blocked := overrides.BlockedIn(stay); len(blocked) > 0 {
		return Quote{}, &UnavailableError{Reason: ReasonBlocked, BlockedDates: blocked}
	}

	quote := Quote{
		CheckIn:  stay.CheckIn.Format(DateLayout),
		CheckOut: stay.CheckOut.Format(DateLayout),
		Nights:   stay.Nights(),
		PerNight: make([]NightPrice, 0, stay.Nights()),
	}

	fallback := unit.Nightly()

	for _, day := range stay.Days() {
		night := NightPrice{Date: DateKey(day), Price: fallback}

		if override, ok := overrides.Lookup(day); ok {
			if price, usable := override.price(); usable {
				night.Price = price
				night.UsedOverride = true
			}
		}

		quote.Total = quote.Total.Add(night.Price)
		quote.PerNight = append(quote.PerNight, night)
	}

	return quote, nil
}
