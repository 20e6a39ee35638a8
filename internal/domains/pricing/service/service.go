package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Pricing=MockPricingService

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"stayhub/config"
	"stayhub/infras/otel"
	bookingModel "stayhub/internal/domains/booking/model"
	bookingRepo "stayhub/internal/domains/booking/repository"
	"stayhub/internal/domains/pricing/model"
	"stayhub/internal/domains/pricing/model/dto"
	"stayhub/internal/domains/pricing/repository"
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

const (
	cacheGetOverride    = "pricing:get"
	cacheGetAllOverride = "pricing:gets"
	cacheCountOverride  = "pricing:count"
)

// Pricing manages date overrides and answers quote, availability and calendar
// questions. Quotes always read overrides and bookings at call time.
type Pricing interface {
	Create(ctx context.Context, req dto.CreateOverrideRequest) error
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetOverridesResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.OverrideResponse, error)
	Update(ctx context.Context, req dto.UpdateOverrideRequest, id string) error
	Delete(ctx context.Context, id string) error
	Quote(ctx context.Context, req dto.StayRequest) (dto.QuoteResponse, error)
	Availability(ctx context.Context, req dto.StayRequest) (dto.AvailabilityResponse, error)
	Calendar(ctx context.Context, req dto.CalendarRequest) (dto.CalendarResponse, error)
}

type serviceImpl struct {
	repo        repository.Pricing
	bookingRepo bookingRepo.Booking
	units       unitService.Resolver
	cfg         *config.Config
	cache       cache.RedisCache
	otel        otel.Otel
}

func New(repo repository.Pricing, bookingRepo bookingRepo.Booking, units unitService.Resolver, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Pricing {
	return &serviceImpl{
		repo:        repo,
		bookingRepo: bookingRepo,
		units:       units,
		cfg:         cfg,
		cache:       cache,
		otel:        otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateOverrideRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	if _, err = s.units.Resolve(ctx, unitModel.Type(req.UnitType), req.UnitID); err != nil {
		return err
	}

	overrides, err := req.ToModels(user)
	if err != nil {
		return failure.BadRequest(err) // nolint:wrapcheck
	}

	if len(overrides) == 1 {
		err = s.repo.Insert(ctx, overrides[0])
	} else {
		err = s.repo.InsertBulk(ctx, overrides)
	}

	if err != nil {
		if gRepo.IsUniqueViolation(err) {
			return failure.Conflict("an override already exists for one of these dates") // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to create pricing override")

		return fmt.Errorf("failed to create pricing override: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllOverride)
		shared.InvalidateCaches(c, s.cache, cacheCountOverride)
	}()

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetOverridesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllOverride, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for pricing overrides")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		return res, err
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get pricing overrides")

		return res, fmt.Errorf("failed to get pricing overrides: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save pricing overrides to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountOverride, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count pricing overrides")

		return res, fmt.Errorf("failed to count pricing overrides: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save pricing override count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.OverrideResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetOverride, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	override, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get pricing override")

		return res, fmt.Errorf("failed to get pricing override: %w", err)
	}

	if override.ID == constant.Empty {
		return res, failure.NotFound("pricing override not found") // nolint:wrapcheck
	}

	res.FromModel(override)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save pricing override to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateOverrideRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	current, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get pricing override")

		return fmt.Errorf("failed to get pricing override: %w", err)
	}

	if current.ID == constant.Empty {
		return failure.NotFound("pricing override not found") // nolint:wrapcheck
	}

	merged := req.Merge(current)
	if err = dto.CheckPrice(merged.Price, merged.DiscountPrice, merged.Available); err != nil {
		return failure.BadRequest(err) // nolint:wrapcheck
	}

	if err = s.repo.Update(ctx, shared.TransformFields(req, user), filter); err != nil {
		log.Error().Err(err).Msg("failed to update pricing override")

		return fmt.Errorf("failed to update pricing override: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check pricing override")

		return fmt.Errorf("failed to check pricing override: %w", err)
	}

	if !exist {
		return failure.NotFound("pricing override not found") // nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete pricing override")

		return fmt.Errorf("failed to delete pricing override: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetOverride, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete pricing override cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllOverride)
		shared.InvalidateCaches(c, s.cache, cacheCountOverride)
	}()
}

func (s *serviceImpl) Quote(ctx context.Context, req dto.StayRequest) (res dto.QuoteResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Quote")
	defer scope.End()
	defer scope.TraceIfError(err)

	stay, err := req.Range()
	if err != nil {
		return res, failure.BadRequest(err) // nolint:wrapcheck
	}

	unit, err := s.units.Resolve(ctx, unitModel.Type(req.UnitType), req.UnitID)
	if err != nil {
		return res, err
	}

	overrides, err := s.repo.GetByUnitAndRange(ctx, string(unit.Type), unit.ID, stay.CheckIn, stay.CheckOut)
	if err != nil {
		log.Error().Err(err).Msg("failed to load pricing overrides")

		return res, fmt.Errorf("failed to load pricing overrides: %w", err)
	}

	quote, err := reservation.CalculateRangePrice(unit.Price, model.ToOverrides(overrides), stay)
	if err != nil {
		return res, unitService.ReservationFailure(err)
	}

	return dto.QuoteResponse{
		UnitType: string(unit.Type),
		UnitID:   unit.ID,
		Currency: unit.Currency,
		Quote:    quote,
	}, nil
}

func (s *serviceImpl) Availability(ctx context.Context, req dto.StayRequest) (res dto.AvailabilityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Availability")
	defer scope.End()
	defer scope.TraceIfError(err)

	stay, err := req.Range()
	if err != nil {
		return res, failure.BadRequest(err) // nolint:wrapcheck
	}

	unit, err := s.units.Resolve(ctx, unitModel.Type(req.UnitType), req.UnitID)
	if err != nil {
		return res, err
	}

	overrides, bookings, err := s.load(ctx, unit, stay)
	if err != nil {
		return res, err
	}

	return dto.AvailabilityResponse{
		UnitType:     string(unit.Type),
		UnitID:       unit.ID,
		CheckIn:      reservation.DateKey(stay.CheckIn),
		CheckOut:     reservation.DateKey(stay.CheckOut),
		Availability: reservation.CheckAvailability(stay, bookings, overrides),
	}, nil
}

func (s *serviceImpl) Calendar(ctx context.Context, req dto.CalendarRequest) (res dto.CalendarResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Calendar")
	defer scope.End()
	defer scope.TraceIfError(err)

	month, err := req.MonthRange()
	if err != nil {
		return res, failure.BadRequest(err) // nolint:wrapcheck
	}

	unit, err := s.units.Resolve(ctx, unitModel.Type(req.UnitType), req.UnitID)
	if err != nil {
		return res, err
	}

	overrides, bookings, err := s.load(ctx, unit, month)
	if err != nil {
		return res, err
	}

	res = dto.CalendarResponse{
		UnitType: string(unit.Type),
		UnitID:   unit.ID,
		Month:    req.Month,
		Currency: unit.Currency,
		Days:     make([]dto.CalendarDay, 0, month.Nights()),
	}

	for _, day := range month.Days() {
		night := reservation.Range{CheckIn: day, CheckOut: day.AddDate(0, 0, 1)}
		entry := dto.CalendarDay{Date: reservation.DateKey(day)}

		availability := reservation.CheckAvailability(night, bookings, overrides)
		if !availability.Available {
			entry.Reason = availability.Reason
			res.Days = append(res.Days, entry)

			continue
		}

		quote, err := reservation.CalculateRangePrice(unit.Price, overrides, night)
		if err != nil {
			return res, unitService.ReservationFailure(err)
		}

		entry.Available = true
		entry.Price = &quote.PerNight[0].Price
		entry.UsedOverride = quote.PerNight[0].UsedOverride
		res.Days = append(res.Days, entry)
	}

	return res, nil
}

// load reads the overrides inside stay and the active bookings of unit concurrently.
func (s *serviceImpl) load(ctx context.Context, unit unitModel.Unit, stay reservation.Range) (reservation.Overrides, []reservation.Booking, error) {
	var (
		overrides []model.Override
		bookings  []bookingModel.Booking
	)

	group, gctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		var err error

		overrides, err = s.repo.GetByUnitAndRange(gctx, string(unit.Type), unit.ID, stay.CheckIn, stay.CheckOut)

		return err //nolint:wrapcheck
	})

	group.Go(func() error {
		var err error

		bookings, err = s.bookingRepo.GetActiveByUnit(gctx, string(unit.Type), unit.ID)

		return err //nolint:wrapcheck
	})

	if err := group.Wait(); err != nil {
		log.Error().Err(err).Str("unit", unit.ID).Msg("failed to load unit calendar")

		return nil, nil, fmt.Errorf("failed to load unit calendar: %w", err)
	}

	return model.ToOverrides(overrides), bookingModel.ToReservations(bookings), nil
}
