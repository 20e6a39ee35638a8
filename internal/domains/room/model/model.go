package model

import (
	"stayhub/internal/reservation"
	"stayhub/shared/model"
	"stayhub/shared/money"
)

const (
	TableName  = "rooms"
	EntityName = "room"

	FieldID            = "id"
	FieldPropertyID    = "property_id"
	FieldName          = "name"
	FieldDescription   = "description"
	FieldCapacity      = "capacity"
	FieldBasePrice     = "base_price"
	FieldDiscountPrice = "discount_price"
	FieldCurrency      = "currency"
	FieldImage         = "image"
	FieldActive        = "active"
)

// Room is a bookable unit inside a property.
type Room struct {
	ID            string        `db:"id"`
	PropertyID    string        `db:"property_id"`
	Name          string        `db:"name"`
	Description   string        `db:"description"`
	Capacity      int           `db:"capacity"`
	BasePrice     money.Amount  `db:"base_price"`
	DiscountPrice *money.Amount `db:"discount_price"`
	Currency      string        `db:"currency"`
	Image         string        `db:"image"`
	Active        bool          `db:"active"`
	model.Metadata
}

func (r Room) UnitPrice() reservation.UnitPrice {
	return reservation.UnitPrice{
		BasePrice:     r.BasePrice,
		DiscountPrice: r.DiscountPrice,
	}
}
