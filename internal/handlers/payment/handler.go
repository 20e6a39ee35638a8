package payment

import (
	"net"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"stayhub/infras/otel"
	"stayhub/internal/domains/payment/model"
	"stayhub/internal/domains/payment/model/dto"
	"stayhub/internal/domains/payment/service"
	"stayhub/shared/constant"
	gDto "stayhub/shared/dto"
	"stayhub/shared/failure"
	"stayhub/shared/validator"
	"stayhub/transport/http/response"
)

type Handler struct {
	service service.Payment
	otel    otel.Otel
}

func New(service service.Payment, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/payments", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.InitiatePayment)
		routerGroup.Get("/", handler.GetPayments)
		routerGroup.Get("/callback", handler.PaymentCallback)
		routerGroup.Post("/callback", handler.PaymentCallback)
		routerGroup.Get("/{id}", handler.GetPaymentByID)
	})
}

// InitiatePayment opens a hosted payment page for a booking.
// @Summary Initiate a booking payment
// @Description Registers the booking total with the URWAY gateway and returns the page the guest is redirected to.
// @Tags Payment
// @Accept json
// @Produce json
// @Param request body dto.InitiatePaymentRequest true "Initiate Payment Request"
// @Success 201 {object} response.Data[dto.InitiatePaymentResponse] "Payment session"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error "Booking already paid"
// @Failure 500 {object} response.Error
// @Router /v1/payments [post]
// @Security BearerAuth
func (handler *Handler) InitiatePayment(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".InitiatePayment")
	defer scope.End()

	req := dto.InitiatePaymentRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	session, err := handler.service.Initiate(ctx, req, clientIP(r))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to initiate payment")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, session)
}

// PaymentCallback settles a payment from the gateway redirect.
// @Summary Payment gateway callback
// @Description Verifies the URWAY response hash and records the outcome on the payment and the booking's payment status.
// @Tags Payment
// @Produce json
// @Param TrackId query string true "Track ID"
// @Param TranId query string true "Gateway transaction ID"
// @Param Result query string true "Result"
// @Param ResponseCode query string true "Response code"
// @Param amount query string true "Amount"
// @Param responseHash query string true "Response hash"
// @Success 200 {object} response.Data[dto.CallbackResponse] "Payment outcome"
// @Failure 400 {object} response.Error "Amount mismatch"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Failure 502 {object} response.Error "Hash mismatch"
// @Router /v1/payments/callback [post]
func (handler *Handler) PaymentCallback(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".PaymentCallback")
	defer scope.End()

	if err := r.ParseForm(); err != nil {
		scope.TraceError(err)
		response.WithError(w, failure.BadRequest(err))

		return
	}

	req := dto.CallbackRequest{}

	if err := validator.ValidateForm(r.Form, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate payment callback")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Callback(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("trackId", req.TrackID).Msg("failed to process payment callback")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Payment " + res.PaymentID + " " + res.Status)

	response.WithJSON(w, http.StatusOK, res)
}

// GetPayments lists payments.
// @Summary Get all payments
// @Tags Payment
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param booking_id query string false "Filter by booking ID"
// @Param status query string false "Filter by status" Enums(initiated, paid, failed)
// @Success 200 {object} response.Data[dto.GetPaymentsResponse] "List of payments"
// @Failure 500 {object} response.Error
// @Router /v1/payments [get]
// @Security BearerAuth
func (handler *Handler) GetPayments(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPayments")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	query := r.URL.Query()

	filterGroup := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	for _, field := range []string{model.FieldBookingID, model.FieldStatus} {
		if value := query.Get(field); value != constant.Empty {
			filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
				Field:    field,
				Operator: gDto.FilterOperatorEq,
				Value:    value,
				Table:    model.TableName,
			})
		}
	}

	payments, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get payments")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, payments)
}

// GetPaymentByID retrieves a payment by its ID.
// @Summary Get a payment by ID
// @Tags Payment
// @Produce json
// @Param id path string true "Payment ID"
// @Success 200 {object} response.Data[dto.PaymentResponse] "Payment details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/payments/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetPaymentByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPaymentByID")
	defer scope.End()

	payment, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get payment by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, payment)
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}

	return host
}
