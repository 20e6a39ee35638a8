package model

import "stayhub/internal/reservation"

// Type names the kind of bookable unit a booking or price override addresses.
type Type string

const (
	TypeProperty Type = "property"
	TypeRoom     Type = "room"
)

func (t Type) Valid() bool {
	return t == TypeProperty || t == TypeRoom
}

// Unit is the pricing view of a property or room.
type Unit struct {
	Type     Type
	ID       string
	Name     string
	Price    reservation.UnitPrice
	Currency string
	Active   bool
}
