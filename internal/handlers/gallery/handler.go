package gallery

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"stayhub/infras/otel"
	"stayhub/internal/domains/gallery/model"
	"stayhub/internal/domains/gallery/model/dto"
	"stayhub/internal/domains/gallery/service"
	"stayhub/shared/constant"
	gDto "stayhub/shared/dto"
	"stayhub/shared/failure"
	"stayhub/shared/validator"
	"stayhub/transport/http/response"
)

type Handler struct {
	service service.Gallery
	otel    otel.Otel
}

func New(service service.Gallery, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/galleries", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.UploadPhoto)
		routerGroup.Get("/", handler.GetPhotos)
		routerGroup.Get("/{id}", handler.GetPhotoByID)
		routerGroup.Patch("/{id}", handler.UpdatePhoto)
		routerGroup.Delete("/{id}", handler.DeletePhoto)
	})
}

// UploadPhoto adds a photo to a property's gallery.
// @Summary Upload a property photo
// @Tags Gallery
// @Accept multipart/form-data
// @Produce json
// @Param property_id formData string true "Property ID"
// @Param caption formData string false "Caption"
// @Param sort_order formData int false "Display order"
// @Param image formData file true "JPEG or PNG image"
// @Success 201 {object} response.Data[dto.PhotoResponse] "Photo uploaded"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/galleries [post]
// @Security BearerAuth
func (handler *Handler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UploadPhoto")
	defer scope.End()

	if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")
		response.WithError(w, failure.BadRequest(err))

		return
	}

	req := dto.UploadPhotoRequest{}

	file, fileHeader, err := r.FormFile(constant.FormImage)
	if err == nil {
		req.Image = fileHeader
		req.ImageFile = file

		defer file.Close()
	}

	if err := validator.ValidateForm(r.PostForm, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	photo, err := handler.service.Upload(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to upload photo")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, photo)
}

// GetPhotos lists gallery photos, optionally for one property.
// @Summary Get gallery photos
// @Tags Gallery
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param property_id query string false "Filter by property"
// @Success 200 {object} response.Data[dto.GetPhotosResponse] "List of photos"
// @Failure 500 {object} response.Error
// @Router /v1/galleries [get]
func (handler *Handler) GetPhotos(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPhotos")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	if propertyID := r.URL.Query().Get(model.FieldPropertyID); propertyID != constant.Empty {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldPropertyID,
			Operator: gDto.FilterOperatorEq,
			Value:    propertyID,
			Table:    model.TableName,
		})
	}

	photos, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get photos")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, photos)
}

// GetPhotoByID retrieves one photo.
// @Summary Get a photo by ID
// @Tags Gallery
// @Produce json
// @Param id path string true "Photo ID"
// @Success 200 {object} response.Data[dto.PhotoResponse] "Photo"
// @Failure 404 {object} response.Error
// @Router /v1/galleries/{id} [get]
func (handler *Handler) GetPhotoByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPhotoByID")
	defer scope.End()

	photo, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get photo")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, photo)
}

// UpdatePhoto changes a photo's caption or position.
// @Summary Update a photo
// @Tags Gallery
// @Accept json
// @Produce json
// @Param id path string true "Photo ID"
// @Param request body dto.UpdatePhotoRequest true "Update Photo Request"
// @Success 200 {object} response.Message "Photo updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/galleries/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdatePhoto(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdatePhoto")
	defer scope.End()

	req := dto.UpdatePhotoRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update photo")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Photo updated successfully")
}

// DeletePhoto removes a photo and its stored image.
// @Summary Delete a photo
// @Tags Gallery
// @Produce json
// @Param id path string true "Photo ID"
// @Success 200 {object} response.Message "Photo deleted successfully"
// @Failure 404 {object} response.Error
// @Router /v1/galleries/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeletePhoto(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeletePhoto")
	defer scope.End()

	if err := handler.service.Delete(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete photo")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Photo deleted successfully")
}
