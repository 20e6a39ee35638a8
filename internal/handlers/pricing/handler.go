package pricing

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"stayhub/infras/otel"
	"stayhub/internal/domains/pricing/model"
	"stayhub/internal/domains/pricing/model/dto"
	"stayhub/internal/domains/pricing/service"
	"stayhub/shared/constant"
	gDto "stayhub/shared/dto"
	"stayhub/shared/validator"
	"stayhub/transport/http/response"
)

type Handler struct {
	service service.Pricing
	otel    otel.Otel
}

func New(service service.Pricing, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/pricing", func(routerGroup chi.Router) {
		routerGroup.Get("/quote", handler.GetQuote)
		routerGroup.Get("/availability", handler.GetAvailability)
		routerGroup.Get("/calendar", handler.GetCalendar)

		routerGroup.Post("/", handler.CreateOverride)
		routerGroup.Get("/", handler.GetOverrides)
		routerGroup.Get("/{id}", handler.GetOverrideByID)
		routerGroup.Patch("/{id}", handler.UpdateOverride)
		routerGroup.Delete("/{id}", handler.DeleteOverride)
	})
}

// CreateOverride stores a date price or closure for a unit.
// @Summary Create pricing overrides
// @Description Create an override for one date, or for every date up to end_date inclusive.
// @Tags Pricing
// @Accept json
// @Produce json
// @Param request body dto.CreateOverrideRequest true "Override"
// @Success 201 {object} response.Message "Pricing override created successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/pricing [post]
// @Security BearerAuth
func (handler *Handler) CreateOverride(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateOverride")
	defer scope.End()

	req := dto.CreateOverrideRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Create(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create pricing override")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusCreated, "Pricing override created successfully")
}

// GetOverrides lists pricing overrides.
// @Summary Get pricing overrides
// @Tags Pricing
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param unit_type query string false "Filter by unit type" Enums(property, room)
// @Param unit_id query string false "Filter by unit ID"
// @Param from query string false "First date, YYYY-MM-DD"
// @Param to query string false "Last date, YYYY-MM-DD"
// @Success 200 {object} response.Data[dto.GetOverridesResponse] "List of overrides"
// @Failure 500 {object} response.Error
// @Router /v1/pricing [get]
func (handler *Handler) GetOverrides(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetOverrides")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	query := r.URL.Query()

	filterGroup := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	for _, field := range []string{model.FieldUnitType, model.FieldUnitID} {
		if value := query.Get(field); value != constant.Empty {
			filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
				Field:    field,
				Operator: gDto.FilterOperatorEq,
				Value:    value,
				Table:    model.TableName,
			})
		}
	}

	if from := query.Get("from"); from != constant.Empty {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			ArgName:  "date_from",
			Field:    model.FieldDate,
			Operator: gDto.FilterOperatorGreaterEq,
			Value:    from,
			Table:    model.TableName,
		})
	}

	if to := query.Get("to"); to != constant.Empty {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			ArgName:  "date_to",
			Field:    model.FieldDate,
			Operator: gDto.FilterOperatorLessEq,
			Value:    to,
			Table:    model.TableName,
		})
	}

	overrides, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get pricing overrides")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, overrides)
}

// GetOverrideByID retrieves one override.
// @Summary Get a pricing override by ID
// @Tags Pricing
// @Produce json
// @Param id path string true "Override ID"
// @Success 200 {object} response.Data[dto.OverrideResponse] "Override details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/pricing/{id} [get]
func (handler *Handler) GetOverrideByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetOverrideByID")
	defer scope.End()

	override, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get pricing override")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, override)
}

// UpdateOverride changes the price or availability of one override.
// @Summary Update a pricing override
// @Tags Pricing
// @Accept json
// @Produce json
// @Param id path string true "Override ID"
// @Param request body dto.UpdateOverrideRequest true "Changes"
// @Success 200 {object} response.Message "Pricing override updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/pricing/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateOverride(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateOverride")
	defer scope.End()

	req := dto.UpdateOverrideRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update pricing override")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Pricing override updated successfully")
}

// DeleteOverride removes an override so the unit's standing price applies again.
// @Summary Delete a pricing override
// @Tags Pricing
// @Produce json
// @Param id path string true "Override ID"
// @Success 200 {object} response.Message "Pricing override deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/pricing/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteOverride(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteOverride")
	defer scope.End()

	if err := handler.service.Delete(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete pricing override")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Pricing override deleted successfully")
}

// GetQuote prices a stay night by night.
// @Summary Quote a stay
// @Tags Pricing
// @Produce json
// @Param unit_type query string true "Unit type" Enums(property, room)
// @Param unit_id query string true "Unit ID"
// @Param check_in query string true "Check-in date, YYYY-MM-DD"
// @Param check_out query string true "Check-out date, YYYY-MM-DD"
// @Success 200 {object} response.Data[dto.QuoteResponse] "Quote"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/pricing/quote [get]
func (handler *Handler) GetQuote(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetQuote")
	defer scope.End()

	req := dto.StayRequest{}

	if err := validator.ValidateForm(r.URL.Query(), &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate quote query")

		response.WithError(w, err)

		return
	}

	quote, err := handler.service.Quote(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to quote stay")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, quote)
}

// GetAvailability reports whether a stay can be booked.
// @Summary Check availability
// @Tags Pricing
// @Produce json
// @Param unit_type query string true "Unit type" Enums(property, room)
// @Param unit_id query string true "Unit ID"
// @Param check_in query string true "Check-in date, YYYY-MM-DD"
// @Param check_out query string true "Check-out date, YYYY-MM-DD"
// @Success 200 {object} response.Data[dto.AvailabilityResponse] "Availability"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/pricing/availability [get]
func (handler *Handler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAvailability")
	defer scope.End()

	req := dto.StayRequest{}

	if err := validator.ValidateForm(r.URL.Query(), &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate availability query")

		response.WithError(w, err)

		return
	}

	availability, err := handler.service.Availability(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to check availability")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, availability)
}

// GetCalendar returns price and availability for every day of a month.
// @Summary Unit calendar
// @Tags Pricing
// @Produce json
// @Param unit_type query string true "Unit type" Enums(property, room)
// @Param unit_id query string true "Unit ID"
// @Param month query string false "Month, YYYY-MM. Defaults to the current month"
// @Success 200 {object} response.Data[dto.CalendarResponse] "Calendar"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/pricing/calendar [get]
func (handler *Handler) GetCalendar(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetCalendar")
	defer scope.End()

	req := dto.CalendarRequest{}

	if err := validator.ValidateForm(r.URL.Query(), &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate calendar query")

		response.WithError(w, err)

		return
	}

	calendar, err := handler.service.Calendar(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to build calendar")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, calendar)
}
