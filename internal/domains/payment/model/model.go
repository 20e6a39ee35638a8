package model

import (
	"stayhub/shared/model"
	"stayhub/shared/money"
)

const (
	TableName  = "payments"
	EntityName = "payment"

	FieldID               = "id"
	FieldBookingID        = "booking_id"
	FieldTrackID          = "track_id"
	FieldAmount           = "amount"
	FieldCurrency         = "currency"
	FieldStatus           = "status"
	FieldGatewayPaymentID = "gateway_payment_id"
	FieldTransactionID    = "transaction_id"
	FieldResponseCode     = "response_code"
	FieldCardBrand        = "card_brand"
)

const (
	StatusInitiated = "initiated"
	StatusPaid      = "paid"
	StatusFailed    = "failed"
)

type Payment struct {
	ID               string       `db:"id"`
	BookingID        string       `db:"booking_id"`
	TrackID          string       `db:"track_id"`
	Amount           money.Amount `db:"amount"`
	Currency         string       `db:"currency"`
	Status           string       `db:"status"`
	GatewayPaymentID string       `db:"gateway_payment_id"`
	TransactionID    string       `db:"transaction_id"`
	ResponseCode     string       `db:"response_code"`
	CardBrand        string       `db:"card_brand"`
	model.Metadata
}

func (p Payment) Settled() bool {
	return p.Status != StatusInitiated
}
