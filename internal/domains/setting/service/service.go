package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Setting=MockSettingService

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"stayhub/config"
	"stayhub/infras/otel"
	"stayhub/internal/domains/setting/model"
	"stayhub/internal/domains/setting/model/dto"
	"stayhub/internal/domains/setting/repository"
	"stayhub/shared"
	"stayhub/shared/cache"
	"stayhub/shared/constant"
	gDto "stayhub/shared/dto"
	"stayhub/shared/failure"
	"stayhub/shared/timezone"
)

const (
	cacheGetSetting    = "setting:get"
	cacheGetAllSetting = "setting:gets"
)

type Setting interface {
	GetAll(ctx context.Context, filter gDto.FilterGroup) (dto.GetSettingsResponse, error)
	Get(ctx context.Context, key string) (dto.SettingResponse, error)
	// Put creates the setting or overwrites it, reporting whether it was created.
	Put(ctx context.Context, key string, req dto.PutSettingRequest) (bool, error)
	Delete(ctx context.Context, key string) error
}

type serviceImpl struct {
	repo  repository.Setting
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Setting, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Setting {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) GetAll(ctx context.Context, filter gDto.FilterGroup) (res dto.GetSettingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	params := gDto.QueryParams{SortBy: model.FieldKey, SortDir: "ASC"}
	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllSetting, params, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	models, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get settings")

		return res, fmt.Errorf("failed to get settings: %w", err)
	}

	res.FromModels(models)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save settings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, key string) (res dto.SettingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetSetting, key)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	setting, err := s.repo.Get(ctx, shared.FilterByID(key, model.FieldKey, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get setting")

		return res, fmt.Errorf("failed to get setting: %w", err)
	}

	if setting.Key == constant.Empty {
		return res, failure.NotFound("setting not found") // nolint:wrapcheck
	}

	res.FromModel(setting)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save setting to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Put(ctx context.Context, key string, req dto.PutSettingRequest) (created bool, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Put")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(key, model.FieldKey, model.TableName)

	exists, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if setting exists")

		return false, fmt.Errorf("failed to check if setting exists: %w", err)
	}

	if exists {
		fields := req.Fields()
		fields[constant.FieldModifiedAt] = timezone.Now()
		fields[constant.FieldModifiedBy] = user

		if err = s.repo.Update(ctx, fields, filter); err != nil {
			log.Error().Err(err).Str("key", key).Msg("failed to update setting")

			return false, fmt.Errorf("failed to update setting: %w", err)
		}
	} else if err = s.repo.Insert(ctx, req.ToModel(key, user)); err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to create setting")

		return false, fmt.Errorf("failed to create setting: %w", err)
	}

	go s.invalidate(context.WithoutCancel(ctx), key)

	return !exists, nil
}

func (s *serviceImpl) Delete(ctx context.Context, key string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(key, model.FieldKey, model.TableName)

	exists, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if setting exists")

		return fmt.Errorf("failed to check if setting exists: %w", err)
	}

	if !exists {
		return failure.NotFound("setting not found") // nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete setting")

		return fmt.Errorf("failed to delete setting: %w", err)
	}

	go s.invalidate(context.WithoutCancel(ctx), key)

	return nil
}

func (s *serviceImpl) invalidate(ctx context.Context, key string) {
	if err := s.cache.Delete(ctx, shared.BuildCacheKey(cacheGetSetting, key)); err != nil {
		log.Error().Err(err).Msg("failed to delete setting cache")
	}

	shared.InvalidateCaches(ctx, s.cache, cacheGetAllSetting)
}
