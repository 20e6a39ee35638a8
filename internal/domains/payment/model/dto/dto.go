package dto

import (
	"github.com/google/uuid"

	"stayhub/infras/urway"
	"stayhub/internal/domains/payment/model"
	"stayhub/shared"
	gDto "stayhub/shared/dto"
	gModel "stayhub/shared/model"
	"stayhub/shared/money"
	"stayhub/shared/timezone"
)

type InitiatePaymentRequest struct {
	BookingID string `json:"booking_id" validate:"required,uuid"`
}

type InitiatePaymentResponse struct {
	PaymentID   string       `json:"payment_id"`
	TrackID     string       `json:"track_id"`
	Amount      money.Amount `json:"amount"       swaggertype:"number"`
	Currency    string       `json:"currency"`
	RedirectURL string       `json:"redirect_url"`
}

// CallbackRequest is the query string the gateway sends the customer back with.
type CallbackRequest struct {
	PaymentID    string `form:"PaymentId"`
	TranID       string `form:"TranId"       validate:"required"`
	TrackID      string `form:"TrackId"      validate:"required"`
	Result       string `form:"Result"       validate:"required"`
	ResponseCode string `form:"ResponseCode" validate:"required"`
	Amount       string `form:"amount"       validate:"required"`
	CardBrand    string `form:"cardBrand"`
	ResponseHash string `form:"responseHash" validate:"required"`
}

func (c CallbackRequest) ToCallback() urway.Callback {
	return urway.Callback{
		PaymentID:    c.PaymentID,
		TranID:       c.TranID,
		TrackID:      c.TrackID,
		Result:       c.Result,
		ResponseCode: c.ResponseCode,
		Amount:       c.Amount,
		CardBrand:    c.CardBrand,
		ResponseHash: c.ResponseHash,
	}
}

// NewPayment starts an initiated payment for a booking's total.
func NewPayment(user, bookingID string, amount money.Amount, currency string) model.Payment {
	now := timezone.Now()

	return model.Payment{
		ID:        uuid.NewString(),
		BookingID: bookingID,
		TrackID:   uuid.NewString(),
		Amount:    amount,
		Currency:  currency,
		Status:    model.StatusInitiated,
		Metadata: gModel.NewMetadata(user, now),
	}
}

type PaymentResponse struct {
	ID               string       `json:"id"`
	BookingID        string       `json:"booking_id"`
	TrackID          string       `json:"track_id"`
	Amount           money.Amount `json:"amount"             swaggertype:"number"`
	Currency         string       `json:"currency"`
	Status           string       `json:"status"`
	GatewayPaymentID string       `json:"gateway_payment_id"`
	TransactionID    string       `json:"transaction_id"`
	ResponseCode     string       `json:"response_code"`
	CardBrand        string       `json:"card_brand"`
	gDto.Metadata
}

func (r *PaymentResponse) FromModel(model model.Payment) {
	r.ID = model.ID
	r.BookingID = model.BookingID
	r.TrackID = model.TrackID
	r.Amount = model.Amount
	r.Currency = model.Currency
	r.Status = model.Status
	r.GatewayPaymentID = model.GatewayPaymentID
	r.TransactionID = model.TransactionID
	r.ResponseCode = model.ResponseCode
	r.CardBrand = model.CardBrand
	r.Metadata.FromModel(model.Metadata)
}

type GetPaymentsResponse struct {
	Payments  []PaymentResponse `json:"payments"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetPaymentsResponse) FromModels(models []model.Payment, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Payments = make([]PaymentResponse, len(models))
	for i, mod := range models {
		r.Payments[i].FromModel(mod)
	}
}

type CallbackResponse struct {
	PaymentID     string `json:"payment_id"`
	BookingID     string `json:"booking_id"`
	BookingNumber string `json:"booking_number"`
	Status        string `json:"status"`
}

// CompletedEvent is published once the gateway reports the outcome of a payment.
type CompletedEvent struct {
	PaymentID     string `json:"payment_id"`
	BookingID     string `json:"booking_id"`
	BookingNumber string `json:"booking_number"`
	TrackID       string `json:"track_id"`
	Amount        string `json:"amount"`
	Currency      string `json:"currency"`
	Status        string `json:"status"`
	ResponseCode  string `json:"response_code"`
}
