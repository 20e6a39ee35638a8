package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Payment=MockPaymentService

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"stayhub/config"
	"stayhub/infras/kafka"
	"stayhub/infras/otel"
	"stayhub/infras/urway"
	bookingModel "stayhub/internal/domains/booking/model"
	bookingRepo "stayhub/internal/domains/booking/repository"
	"stayhub/internal/domains/payment/model"
	"stayhub/internal/domains/payment/model/dto"
	"stayhub/internal/domains/payment/repository"
	"stayhub/internal/reservation"
	"stayhub/shared"
	"stayhub/shared/cache"
	"stayhub/shared/constant"
	gDto "stayhub/shared/dto"
	"stayhub/shared/failure"
	"stayhub/shared/money"
	gRepo "stayhub/shared/repository"
)

const (
	cacheGetPayment    = "payment:get"
	cacheGetAllPayment = "payment:gets"
	cacheCountPayment  = "payment:count"

	gatewayActor = "urway"
)

type Payment interface {
	Initiate(ctx context.Context, req dto.InitiatePaymentRequest, clientIP string) (dto.InitiatePaymentResponse, error)
	Callback(ctx context.Context, req dto.CallbackRequest) (dto.CallbackResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetPaymentsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.PaymentResponse, error)
}

type serviceImpl struct {
	repo        repository.Payment
	bookingRepo bookingRepo.Booking
	tx          gRepo.Transactor
	gateway     urway.Gateway
	publisher   kafka.Publisher
	cfg         *config.Config
	cache       cache.RedisCache
	otel        otel.Otel
}

func New(
	repo repository.Payment,
	bookingRepo bookingRepo.Booking,
	tx gRepo.Transactor,
	gateway urway.Gateway,
	publisher kafka.Publisher,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Payment {
	return &serviceImpl{
		repo:        repo,
		bookingRepo: bookingRepo,
		tx:          tx,
		gateway:     gateway,
		publisher:   publisher,
		cfg:         cfg,
		cache:       cache,
		otel:        otel,
	}
}

// Initiate opens a hosted payment page for the full booking total.
func (s *serviceImpl) Initiate(ctx context.Context, req dto.InitiatePaymentRequest, clientIP string) (res dto.InitiatePaymentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Initiate")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	if user == constant.Empty {
		return res, failure.Unauthorized("login required to pay") // nolint:wrapcheck
	}

	bookingFilter := shared.FilterByID(req.BookingID, bookingModel.FieldID, bookingModel.TableName)

	booking, err := s.bookingRepo.Get(ctx, bookingFilter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return res, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)
	if role == constant.RoleUser && booking.UserID != user {
		return res, failure.ResourceRestrictedError
	}

	switch {
	case !reservation.Status(booking.Status).Active():
		return res, failure.BadRequestFromString("cancelled bookings cannot be paid") // nolint:wrapcheck
	case booking.PaymentStatus == bookingModel.PaymentStatusPaid:
		return res, failure.Conflict("booking is already paid") // nolint:wrapcheck
	}

	payment := dto.NewPayment(user, booking.ID, booking.TotalPrice, booking.Currency)

	email, _ := ctx.Value(constant.ContextKeyUserEmail).(string)
	if email == constant.Empty {
		email = booking.GuestEmail
	}

	session, err := s.gateway.CreatePayment(ctx, urway.PaymentRequest{
		TrackID:       payment.TrackID,
		Amount:        payment.Amount.String(),
		Currency:      payment.Currency,
		CustomerEmail: email,
		CustomerIP:    clientIP,
		Reference:     booking.BookingNumber,
	})
	if err != nil {
		log.Error().Err(err).Str("bookingNumber", booking.BookingNumber).Msg("failed to create gateway payment")

		return res, gatewayFailure(err)
	}

	payment.GatewayPaymentID = session.PaymentID

	if err = s.repo.Insert(ctx, payment); err != nil {
		log.Error().Err(err).Msg("failed to create payment")

		return res, fmt.Errorf("failed to create payment: %w", err)
	}

	fields := shared.TransformFields(struct {
		PaymentStatus string `db:"payment_status"`
	}{bookingModel.PaymentStatusPending}, user)

	if err = s.bookingRepo.Update(ctx, fields, bookingFilter); err != nil {
		log.Error().Err(err).Msg("failed to update booking payment status")

		return res, fmt.Errorf("failed to update booking payment status: %w", err)
	}

	res = dto.InitiatePaymentResponse{
		PaymentID:   payment.ID,
		TrackID:     payment.TrackID,
		Amount:      payment.Amount,
		Currency:    payment.Currency,
		RedirectURL: session.RedirectURL,
	}

	go func() {
		c := context.WithoutCancel(ctx)

		s.publish(c, kafka.NewMessage(booking.BookingNumber, constant.EventPaymentInitiated, res))
		s.invalidate(c, payment.ID, booking.ID)
	}()

	return res, nil
}

// Callback settles a payment from the gateway's signed redirect. A payment
// that is already settled is reported as is.
func (s *serviceImpl) Callback(ctx context.Context, req dto.CallbackRequest) (res dto.CallbackResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Callback")
	defer scope.End()
	defer scope.TraceIfError(err)

	callback := req.ToCallback()

	if err = s.gateway.VerifyCallback(callback); err != nil {
		log.Warn().Err(err).Str("trackId", req.TrackID).Msg("rejected payment callback")

		return res, gatewayFailure(err)
	}

	filter := shared.FilterByID(req.TrackID, model.FieldTrackID, model.TableName)

	payment, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get payment")

		return res, fmt.Errorf("failed to get payment: %w", err)
	}

	if payment.ID == constant.Empty {
		return res, failure.NotFound("payment not found") // nolint:wrapcheck
	}

	bookingFilter := shared.FilterByID(payment.BookingID, bookingModel.FieldID, bookingModel.TableName)

	booking, err := s.bookingRepo.Get(ctx, bookingFilter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	res = dto.CallbackResponse{
		PaymentID:     payment.ID,
		BookingID:     payment.BookingID,
		BookingNumber: booking.BookingNumber,
		Status:        payment.Status,
	}

	if payment.Settled() {
		return res, nil
	}

	amount, err := money.Parse(req.Amount)
	if err != nil || amount != payment.Amount {
		return res, failure.BadRequestFromString("paid amount does not match the payment") // nolint:wrapcheck
	}

	status, bookingStatus := model.StatusFailed, bookingModel.PaymentStatusFailed
	if callback.Successful() {
		status, bookingStatus = model.StatusPaid, bookingModel.PaymentStatusPaid
	}

	fields := shared.TransformFields(struct {
		Status        string `db:"status"`
		TransactionID string `db:"transaction_id"`
		ResponseCode  string `db:"response_code"`
		CardBrand     string `db:"card_brand"`
	}{status, req.TranID, req.ResponseCode, req.CardBrand}, gatewayActor)

	// the booking status itself stays with staff; only payment_status follows the gateway
	bookingUpdate := struct {
		PaymentStatus string `db:"payment_status"`
	}{bookingStatus}

	err = s.tx.WithTx(ctx, func(sqltx *sqlx.Tx) error {
		if err := s.repo.UpdateTx(ctx, sqltx, fields, filter); err != nil {
			return fmt.Errorf("failed to update payment: %w", err)
		}

		if booking.ID == constant.Empty {
			return nil
		}

		if err := s.bookingRepo.UpdateTx(ctx, sqltx, shared.TransformFields(bookingUpdate, gatewayActor), bookingFilter); err != nil {
			return fmt.Errorf("failed to update booking payment status: %w", err)
		}

		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("trackId", payment.TrackID).Msg("failed to settle payment")

		return res, err
	}

	res.Status = status

	event := dto.CompletedEvent{
		PaymentID:     payment.ID,
		BookingID:     payment.BookingID,
		BookingNumber: booking.BookingNumber,
		TrackID:       payment.TrackID,
		Amount:        payment.Amount.String(),
		Currency:      payment.Currency,
		Status:        status,
		ResponseCode:  req.ResponseCode,
	}

	go func() {
		c := context.WithoutCancel(ctx)

		s.publish(c, kafka.NewMessage(booking.BookingNumber, constant.EventPaymentCompleted, event))
		s.invalidate(c, payment.ID, payment.BookingID)
	}()

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetPaymentsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllPayment, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		return res, err
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get payments")

		return res, fmt.Errorf("failed to get payments: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save payments to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountPayment, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count payments")

		return res, fmt.Errorf("failed to count payments: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save payment count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.PaymentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetPayment, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	payment, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get payment")

		return res, fmt.Errorf("failed to get payment: %w", err)
	}

	if payment.ID == constant.Empty {
		return res, failure.NotFound("payment not found") // nolint:wrapcheck
	}

	res.FromModel(payment)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save payment to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) publish(ctx context.Context, message kafka.Message) {
	if err := s.publisher.Publish(ctx, s.cfg.Kafka.Topics.Payment, message); err != nil {
		log.Error().Err(err).Str("topic", s.cfg.Kafka.Topics.Payment).Msg("failed to publish payment event")
	}
}

func (s *serviceImpl) invalidate(ctx context.Context, paymentID, bookingID string) {
	for _, key := range []string{shared.BuildCacheKey(cacheGetPayment, paymentID), shared.BuildCacheKey(bookingModel.CacheGet, bookingID)} {
		if err := s.cache.Delete(ctx, key); err != nil {
			log.Error().Err(err).Str("cacheKey", key).Msg("failed to delete cache")
		}
	}

	shared.InvalidateCaches(ctx, s.cache, cacheGetAllPayment)
	shared.InvalidateCaches(ctx, s.cache, cacheCountPayment)
	shared.InvalidateCaches(ctx, s.cache, bookingModel.CacheGetAll)
	shared.InvalidateCaches(ctx, s.cache, bookingModel.CacheCount)
}

func gatewayFailure(err error) error {
	switch {
	case errors.Is(err, urway.ErrNotConfigured):
		return failure.Unavailable("online payment is not available") // nolint:wrapcheck
	case errors.Is(err, urway.ErrRejected), errors.Is(err, urway.ErrInvalidHash):
		return failure.BadGateway(err) // nolint:wrapcheck
	default:
		return fmt.Errorf("failed to create gateway payment: %w", err)
	}
}
