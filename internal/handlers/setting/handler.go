package setting

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"stayhub/infras/otel"
	"stayhub/internal/domains/setting/model"
	"stayhub/internal/domains/setting/model/dto"
	"stayhub/internal/domains/setting/service"
	"stayhub/shared"
	"stayhub/shared/constant"
	gDto "stayhub/shared/dto"
	"stayhub/shared/failure"
	"stayhub/shared/validator"
	"stayhub/transport/http/response"
)

type Handler struct {
	service service.Setting
	otel    otel.Otel
}

func New(service service.Setting, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/settings", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetSettings)
		routerGroup.Get("/{key}", handler.GetSetting)
		routerGroup.Put("/{key}", handler.PutSetting)
		routerGroup.Delete("/{key}", handler.DeleteSetting)
	})
}

// GetSettings lists site settings.
// @Summary Get all settings
// @Tags Setting
// @Produce json
// @Param public query boolean false "Only public settings, always true for anonymous callers"
// @Success 200 {object} response.Data[dto.GetSettingsResponse] "List of settings"
// @Failure 500 {object} response.Error
// @Router /v1/settings [get]
func (handler *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetSettings")
	defer scope.End()

	filterGroup := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	public := shared.ConvertStringToBool(r.URL.Query().Get(model.FieldPublic))
	if !shared.IsStaff(ctx) {
		onlyPublic := true
		public = &onlyPublic
	}

	if public != nil {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldPublic,
			Operator: gDto.FilterOperatorEq,
			Value:    *public,
			Table:    model.TableName,
		})
	}

	settings, err := handler.service.GetAll(ctx, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get settings")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, settings)
}

// GetSetting retrieves one setting.
// @Summary Get a setting by key
// @Tags Setting
// @Produce json
// @Param key path string true "Setting key"
// @Success 200 {object} response.Data[dto.SettingResponse] "Setting"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/settings/{key} [get]
func (handler *Handler) GetSetting(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetSetting")
	defer scope.End()

	setting, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamKey))
	if err == nil && !setting.Public && !shared.IsStaff(ctx) {
		err = failure.NotFound("setting not found")
	}

	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get setting")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, setting)
}

// PutSetting creates or replaces a setting.
// @Summary Create or replace a setting
// @Tags Setting
// @Accept json
// @Produce json
// @Param key path string true "Setting key"
// @Param request body dto.PutSettingRequest true "Setting value"
// @Success 200 {object} response.Message "Setting updated successfully"
// @Success 201 {object} response.Message "Setting created successfully"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/settings/{key} [put]
// @Security BearerAuth
func (handler *Handler) PutSetting(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".PutSetting")
	defer scope.End()

	key := chi.URLParam(r, constant.RequestParamKey)

	if err := validator.ValidateVar(key, dto.KeyRule); err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	req := dto.PutSettingRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	created, err := handler.service.Put(ctx, key, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("key", key).Msg("failed to save setting")

		response.WithError(w, err)

		return
	}

	if created {
		response.WithMessage(w, http.StatusCreated, "Setting created successfully")

		return
	}

	response.WithMessage(w, http.StatusOK, "Setting updated successfully")
}

// DeleteSetting removes a setting.
// @Summary Delete a setting by key
// @Tags Setting
// @Produce json
// @Param key path string true "Setting key"
// @Success 200 {object} response.Message "Setting deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/settings/{key} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteSetting(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteSetting")
	defer scope.End()

	if err := handler.service.Delete(ctx, chi.URLParam(r, constant.RequestParamKey)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete setting")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Setting deleted successfully")
}
