package model

import (
	"time"

	"stayhub/internal/reservation"
	"stayhub/shared/model"
	"stayhub/shared/money"
)

const (
	TableName  = "pricing_overrides"
	EntityName = "pricing override"

	FieldID            = "id"
	FieldUnitType      = "unit_type"
	FieldUnitID        = "unit_id"
	FieldDate          = "date"
	FieldPrice         = "price"
	FieldDiscountPrice = "discount_price"
	FieldAvailable     = "available"
	FieldReason        = "reason"
)

// Override is a date-specific price or closure for one unit.
type Override struct {
	ID            string        `db:"id"`
	UnitType      string        `db:"unit_type"`
	UnitID        string        `db:"unit_id"`
	Date          time.Time     `db:"date"`
	Price         *money.Amount `db:"price"`
	DiscountPrice *money.Amount `db:"discount_price"`
	Available     bool          `db:"available"`
	Reason        string        `db:"reason"`
	model.Metadata
}

func (o Override) ToReservation() reservation.Override {
	return reservation.Override{
		Price:         o.Price,
		DiscountPrice: o.DiscountPrice,
		Blocked:       !o.Available,
		Reason:        o.Reason,
	}
}

// ToOverrides indexes stored overrides by calendar day.
func ToOverrides(models []Override) reservation.Overrides {
	overrides := make(reservation.Overrides, len(models))

	for _, mod := range models {
		overrides[reservation.DateKey(mod.Date)] = mod.ToReservation()
	}

	return overrides
}
