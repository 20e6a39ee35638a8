package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Booking=MockBookingService

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"stayhub/config"
	"stayhub/infras/kafka"
	"stayhub/infras/otel"
	"stayhub/internal/domains/booking/model"
	"stayhub/internal/domains/booking/model/dto"
	"stayhub/internal/domains/booking/repository"
	pricingModel "stayhub/internal/domains/pricing/model"
	pricingRepo "stayhub/internal/domains/pricing/repository"
	unitModel "stayhub/internal/domains/unit/model"
	unitService "stayhub/internal/domains/unit/service"
	"stayhub/internal/reservation"
	"stayhub/shared"
	"stayhub/shared/cache"
	"stayhub/shared/constant"
	gDto "stayhub/shared/dto"
	"stayhub/shared/failure"
	gRepo "stayhub/shared/repository"
)

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	GetByNumber(ctx context.Context, number string) (dto.BookingResponse, error)
	Confirm(ctx context.Context, id string) error
	Cancel(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo        repository.Booking
	pricingRepo pricingRepo.Pricing
	units       unitService.Resolver
	publisher   kafka.Publisher
	cfg         *config.Config
	cache       cache.RedisCache
	otel        otel.Otel
	allocator   *reservation.Allocator
}

func New(
	repo repository.Booking,
	pricingRepo pricingRepo.Pricing,
	units unitService.Resolver,
	publisher kafka.Publisher,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Booking {
	return &serviceImpl{
		repo:        repo,
		pricingRepo: pricingRepo,
		units:       units,
		publisher:   publisher,
		cfg:         cfg,
		cache:       cache,
		otel:        otel,
		allocator:   reservation.NewAllocator(cfg.Booking.NumberAttempts),
	}
}

// Create prices and books a stay. Availability, price and number are all
// settled before the row is written; a number lost to a concurrent insert is
// re-drawn within the same attempt budget.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	if user == constant.Empty {
		return res, failure.Unauthorized("login required to book") // nolint:wrapcheck
	}

	stay, err := req.Range()
	if err != nil {
		return res, failure.BadRequest(err) // nolint:wrapcheck
	}

	unit, err := s.units.Resolve(ctx, unitModel.Type(req.UnitType), req.UnitID)
	if err != nil {
		return res, err
	}

	if !unit.Active {
		return res, failure.BadRequestFromString(fmt.Sprintf("%s is not open for booking", unit.Type)) // nolint:wrapcheck
	}

	overrides, bookings, err := s.load(ctx, unit, stay)
	if err != nil {
		return res, err
	}

	if err = reservation.CheckAvailability(stay, bookings, overrides).Err(); err != nil {
		return res, unitService.ReservationFailure(err)
	}

	quote, err := reservation.CalculateRangePrice(unit.Price, overrides, stay)
	if err != nil {
		return res, unitService.ReservationFailure(err)
	}

	booking := req.ToModel(user, unit.Currency, stay, quote)

	if err = s.insert(ctx, &booking, s.prefix(unit.Type)); err != nil {
		return res, err
	}

	res.FromModel(booking)

	go func() {
		c := context.WithoutCancel(ctx)

		s.publish(c, kafka.NewMessage(booking.BookingNumber, constant.EventBookingCreated, res))

		shared.InvalidateCaches(c, s.cache, model.CacheGetAll)
		shared.InvalidateCaches(c, s.cache, model.CacheCount)
	}()

	return res, nil
}

func (s *serviceImpl) insert(ctx context.Context, booking *model.Booking, prefix string) error {
	lookup := reservation.NumberLookupFunc(func(ctx context.Context, number string) (bool, error) {
		return s.repo.Exist(ctx, shared.FilterByID(number, model.FieldBookingNumber, model.TableName)) //nolint:wrapcheck
	})

	attempts := s.cfg.Booking.NumberAttempts
	if attempts <= 0 {
		attempts = reservation.DefaultAllocationAttempts
	}

	for range attempts {
		number, err := s.allocator.Allocate(ctx, prefix, lookup)
		if err != nil {
			log.Error().Err(err).Str("prefix", prefix).Msg("failed to allocate booking number")

			return unitService.ReservationFailure(err)
		}

		booking.BookingNumber = number

		err = s.repo.Insert(ctx, *booking)
		if err == nil {
			return nil
		}

		if !gRepo.IsUniqueViolation(err) {
			log.Error().Err(err).Msg("failed to create booking")

			return fmt.Errorf("failed to create booking: %w", err)
		}

		log.Warn().Str("bookingNumber", number).Msg("booking number taken concurrently, drawing another")
	}

	return failure.InternalError(fmt.Errorf("%w: %d inserts collided", reservation.ErrAllocationExhausted, attempts)) // nolint:wrapcheck
}

func (s *serviceImpl) prefix(unitType unitModel.Type) string {
	if unitType == unitModel.TypeRoom {
		return s.cfg.Booking.RoomPrefix
	}

	return s.cfg.Booking.PropertyPrefix
}

// load reads the overrides inside stay and the active bookings of unit concurrently.
func (s *serviceImpl) load(ctx context.Context, unit unitModel.Unit, stay reservation.Range) (reservation.Overrides, []reservation.Booking, error) {
	var (
		overrides []pricingModel.Override
		bookings  []model.Booking
	)

	group, gctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		var err error

		overrides, err = s.pricingRepo.GetByUnitAndRange(gctx, string(unit.Type), unit.ID, stay.CheckIn, stay.CheckOut)

		return err //nolint:wrapcheck
	})

	group.Go(func() error {
		var err error

		bookings, err = s.repo.GetActiveByUnit(gctx, string(unit.Type), unit.ID)

		return err //nolint:wrapcheck
	})

	if err := group.Wait(); err != nil {
		log.Error().Err(err).Str("unit", unit.ID).Msg("failed to load unit calendar")

		return nil, nil, fmt.Errorf("failed to load unit calendar: %w", err)
	}

	return pricingModel.ToOverrides(overrides), model.ToReservations(bookings), nil
}

func (s *serviceImpl) publish(ctx context.Context, message kafka.Message) {
	if err := s.publisher.Publish(ctx, s.cfg.Kafka.Topics.Booking, message); err != nil {
		log.Error().Err(err).Str("topic", s.cfg.Kafka.Topics.Booking).Msg("failed to publish booking event")
	}
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(model.CacheGetAll, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		return res, err
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(model.CacheCount, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(model.CacheGet, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err != nil {
		var booking model.Booking

		if booking, err = s.find(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
			return res, err
		}

		res.FromModel(booking)

		go func() {
			c := context.WithoutCancel(ctx)

			if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
				log.Error().Err(err).Msg("failed to save booking to cache")
			}
		}()
	}

	if err = s.authorize(ctx, res.UserID); err != nil {
		return dto.BookingResponse{}, err
	}

	return res, nil
}

func (s *serviceImpl) GetByNumber(ctx context.Context, number string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetByNumber")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.find(ctx, shared.FilterByID(number, model.FieldBookingNumber, model.TableName))
	if err != nil {
		return res, err
	}

	if err = s.authorize(ctx, booking.UserID); err != nil {
		return res, err
	}

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) Confirm(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Confirm")
	defer scope.End()
	defer scope.TraceIfError(err)

	return s.changeStatus(ctx, id, reservation.StatusConfirmed)
}

// Cancel releases the booked dates.
func (s *serviceImpl) Cancel(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Cancel")
	defer scope.End()
	defer scope.TraceIfError(err)

	return s.changeStatus(ctx, id, reservation.StatusCancelled)
}

// changeStatus is staff-only. Guests never move a booking between states.
func (s *serviceImpl) changeStatus(ctx context.Context, id string, to reservation.Status) error {
	if !shared.IsStaff(ctx) {
		return failure.ForbiddenError
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	booking, err := s.find(ctx, filter)
	if err != nil {
		return err
	}

	from := reservation.Status(booking.Status)

	if err = reservation.Transition(from, to); err != nil {
		return unitService.ReservationFailure(err)
	}

	fields := shared.TransformFields(struct {
		Status string `db:"status"`
	}{string(to)}, user)

	if err = s.repo.Update(ctx, fields, filter); err != nil {
		log.Error().Err(err).Str("bookingNumber", booking.BookingNumber).Msg("failed to update booking status")

		return fmt.Errorf("failed to update booking status: %w", err)
	}

	event := dto.StatusChangedEvent{
		ID:            booking.ID,
		BookingNumber: booking.BookingNumber,
		From:          string(from),
		To:            string(to),
		ChangedBy:     user,
	}

	go func() {
		c := context.WithoutCancel(ctx)

		s.publish(c, kafka.NewMessage(booking.BookingNumber, constant.EventBookingStatusChanged, event))
		s.invalidate(c, id)
	}()

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	if _, err = s.find(ctx, filter); err != nil {
		return err
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete booking")

		return fmt.Errorf("failed to delete booking: %w", err)
	}

	go s.invalidate(context.WithoutCancel(ctx), id)

	return nil
}

func (s *serviceImpl) find(ctx context.Context, filter gDto.FilterGroup) (model.Booking, error) {
	booking, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return booking, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return booking, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	return booking, nil
}

// authorize lets staff see every booking and guests only their own.
func (s *serviceImpl) authorize(ctx context.Context, owner string) error {
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)
	if role != constant.RoleUser {
		return nil
	}

	if user, _ := ctx.Value(constant.ContextKeyUserID).(string); user != owner {
		return failure.ResourceRestrictedError
	}

	return nil
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	if err := s.cache.Delete(ctx, shared.BuildCacheKey(model.CacheGet, id)); err != nil {
		log.Error().Err(err).Msg("failed to delete booking cache")
	}

	shared.InvalidateCaches(ctx, s.cache, model.CacheGetAll)
	shared.InvalidateCaches(ctx, s.cache, model.CacheCount)
}
