package model

import (
	"stayhub/internal/reservation"
	"stayhub/shared/model"
	"stayhub/shared/money"
)

const (
	TableName  = "properties"
	EntityName = "property"

	FieldID            = "id"
	FieldName          = "name"
	FieldKind          = "kind"
	FieldCity          = "city"
	FieldAddress       = "address"
	FieldDescription   = "description"
	FieldCapacity      = "capacity"
	FieldBasePrice     = "base_price"
	FieldDiscountPrice = "discount_price"
	FieldCurrency      = "currency"
	FieldImage         = "image"
	FieldActive        = "active"
)

const (
	KindHotel     = "hotel"
	KindResort    = "resort"
	KindChalet    = "chalet"
	KindApartment = "apartment"
)

type Property struct {
	ID            string        `db:"id"`
	Name          string        `db:"name"`
	Kind          string        `db:"kind"`
	City          string        `db:"city"`
	Address       string        `db:"address"`
	Description   string        `db:"description"`
	Capacity      int           `db:"capacity"`
	BasePrice     money.Amount  `db:"base_price"`
	DiscountPrice *money.Amount `db:"discount_price"`
	Currency      string        `db:"currency"`
	Image         string        `db:"image"`
	Active        bool          `db:"active"`
	model.Metadata
}

func (p Property) UnitPrice() reservation.UnitPrice {
	return reservation.UnitPrice{
		BasePrice:     p.BasePrice,
		DiscountPrice: p.DiscountPrice,
	}
}
