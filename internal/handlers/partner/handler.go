package partner

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"stayhub/infras/otel"
	"stayhub/internal/domains/partner/model"
	"stayhub/internal/domains/partner/model/dto"
	"stayhub/internal/domains/partner/service"
	"stayhub/shared"
	"stayhub/shared/constant"
	gDto "stayhub/shared/dto"
	"stayhub/shared/failure"
	"stayhub/shared/validator"
	"stayhub/transport/http/response"
)

type Handler struct {
	service service.Partner
	otel    otel.Otel
}

func New(service service.Partner, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/partners", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreatePartner)
		routerGroup.Get("/", handler.GetPartners)
		routerGroup.Get("/{id}", handler.GetPartnerByID)
		routerGroup.Patch("/{id}", handler.UpdatePartner)
		routerGroup.Delete("/{id}", handler.DeletePartner)
	})
}

// CreatePartner handles the creation of a new partner.
// @Summary Create a new partner
// @Tags Partner
// @Accept multipart/form-data
// @Produce json
// @Param name formData string true "Partner name"
// @Param website formData string false "Website URL"
// @Param description formData string false "Description"
// @Param sort_order formData integer false "Display order"
// @Param active formData boolean false "Active status"
// @Param logo formData file true "Partner logo"
// @Success 201 {object} response.Message "Partner created successfully"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/partners [post]
// @Security BearerAuth
func (handler *Handler) CreatePartner(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreatePartner")
	defer scope.End()

	if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")
		response.WithError(w, failure.BadRequest(err))

		return
	}

	req := dto.CreatePartnerRequest{}

	file, fileHeader, err := r.FormFile(constant.FormLogo)
	if err == nil {
		req.Logo = fileHeader
		req.LogoFile = file

		defer file.Close()
	}

	if err := validator.ValidateForm(r.PostForm, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Create(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create partner")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusCreated, "Partner created successfully")
}

// GetPartners retrieves partners.
// @Summary Get all partners
// @Tags Partner
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param name query string false "Filter by name"
// @Param active query boolean false "Filter by active status"
// @Success 200 {object} response.Data[dto.GetPartnersResponse] "List of partners"
// @Failure 500 {object} response.Error
// @Router /v1/partners [get]
func (handler *Handler) GetPartners(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPartners")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	query := r.URL.Query()

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldName,
				Operator: gDto.FilterOperatorLike,
				Value:    query.Get(model.FieldName),
				Table:    model.TableName,
			},
		},
	}

	if active := shared.ConvertStringToBool(query.Get(model.FieldActive)); active != nil {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldActive,
			Operator: gDto.FilterOperatorEq,
			Value:    *active,
			Table:    model.TableName,
		})
	}

	partners, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get partners")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, partners)
}

// GetPartnerByID retrieves a partner by its ID.
// @Summary Get a partner by ID
// @Tags Partner
// @Produce json
// @Param id path string true "Partner ID"
// @Success 200 {object} response.Data[dto.PartnerResponse] "Partner details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/partners/{id} [get]
func (handler *Handler) GetPartnerByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPartnerByID")
	defer scope.End()

	partner, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get partner by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, partner)
}

// UpdatePartner updates a partner by its ID.
// @Summary Update a partner by ID
// @Tags Partner
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Partner ID"
// @Param name formData string false "Partner name"
// @Param website formData string false "Website URL"
// @Param description formData string false "Description"
// @Param sort_order formData integer false "Display order"
// @Param active formData boolean false "Active status"
// @Param logo formData file false "Partner logo"
// @Success 200 {object} response.Message "Partner updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/partners/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdatePartner(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdatePartner")
	defer scope.End()

	if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")
		response.WithError(w, failure.BadRequest(err))

		return
	}

	req := dto.UpdatePartnerRequest{}

	file, fileHeader, err := r.FormFile(constant.FormLogo)
	if err == nil {
		req.Logo = fileHeader
		req.LogoFile = file

		defer file.Close()
	}

	if err := validator.ValidateForm(r.PostForm, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update partner")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Partner updated successfully")
}

// DeletePartner deletes a partner by its ID.
// @Summary Delete a partner by ID
// @Tags Partner
// @Produce json
// @Param id path string true "Partner ID"
// @Success 200 {object} response.Message "Partner deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/partners/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeletePartner(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeletePartner")
	defer scope.End()

	if err := handler.service.Delete(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete partner")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Partner deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Partner deleted successfully")
}
