package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Partner=MockPartnerService

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"stayhub/config"
	"stayhub/infras/otel"
	"stayhub/internal/domains/partner/model"
	"stayhub/internal/domains/partner/model/dto"
	"stayhub/internal/domains/partner/repository"
	"stayhub/shared"
	"stayhub/shared/cache"
	"stayhub/shared/constant"
	gDto "stayhub/shared/dto"
	"stayhub/shared/failure"
	"stayhub/shared/media"
)

const (
	cacheGetPartner    = "partner:get"
	cacheGetAllPartner = "partner:gets"
	cacheCountPartner  = "partner:count"
)

type Partner interface {
	Create(ctx context.Context, req dto.CreatePartnerRequest) error
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetPartnersResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.PartnerResponse, error)
	Update(ctx context.Context, req dto.UpdatePartnerRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo  repository.Partner
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
	media media.Store
}

func New(repo repository.Partner, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, media media.Store) Partner {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
		media: media,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreatePartnerRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	logoURL, err := s.media.Save(ctx, model.EntityName, req.LogoFile, req.Logo.Header.Get(constant.RequestHeaderContentType))
	if err != nil {
		log.Error().Err(err).Msg("failed to store partner logo")

		return err
	}

	if err = s.repo.Insert(ctx, req.ToModel(user, logoURL)); err != nil {
		log.Error().Err(err).Msg("failed to create partner")
		s.media.Remove(ctx, model.EntityName, logoURL)

		return fmt.Errorf("failed to create partner: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllPartner)
		shared.InvalidateCaches(c, s.cache, cacheCountPartner)
	}()

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetPartnersResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllPartner, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for partners")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		return res, err
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get partners")

		return res, fmt.Errorf("failed to get partners: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save partners to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountPartner, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count partners")

		return res, fmt.Errorf("failed to count partners: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save partner count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.PartnerResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetPartner, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	partner, err := s.find(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		return res, err
	}

	res.FromModel(partner)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save partner to cache")
		}
	}()

	return res, nil
}

// Update removes the previous logo only after the row points at the new one.
func (s *serviceImpl) Update(ctx context.Context, req dto.UpdatePartnerRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	current, err := s.find(ctx, filter)
	if err != nil {
		return err
	}

	logoURL := constant.Empty
	if req.LogoFile != nil {
		logoURL, err = s.media.Save(ctx, model.EntityName, req.LogoFile, req.Logo.Header.Get(constant.RequestHeaderContentType))
		if err != nil {
			log.Error().Err(err).Msg("failed to store partner logo")

			return err
		}
	}

	updatedFields := shared.TransformFields(req, user)
	if logoURL != constant.Empty {
		updatedFields[model.FieldLogo] = logoURL
	}

	if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update partner")
		s.media.Remove(ctx, model.EntityName, logoURL)

		return fmt.Errorf("failed to update partner: %w", err)
	}

	if logoURL != constant.Empty {
		s.media.Remove(ctx, model.EntityName, current.Logo)
	}

	go s.invalidate(context.WithoutCancel(ctx), id)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	current, err := s.find(ctx, filter)
	if err != nil {
		return err
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete partner")

		return fmt.Errorf("failed to delete partner: %w", err)
	}

	s.media.Remove(ctx, model.EntityName, current.Logo)

	go s.invalidate(context.WithoutCancel(ctx), id)

	return nil
}

func (s *serviceImpl) find(ctx context.Context, filter gDto.FilterGroup) (model.Partner, error) {
	partner, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get partner")

		return partner, fmt.Errorf("failed to get partner: %w", err)
	}

	if partner.ID == constant.Empty {
		return partner, failure.NotFound("partner not found") // nolint:wrapcheck
	}

	return partner, nil
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	if err := s.cache.Delete(ctx, shared.BuildCacheKey(cacheGetPartner, id)); err != nil {
		log.Error().Err(err).Msg("failed to delete partner cache")
	}

	shared.InvalidateCaches(ctx, s.cache, cacheGetAllPartner)
	shared.InvalidateCaches(ctx, s.cache, cacheCountPartner)
}
