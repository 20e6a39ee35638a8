package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"stayhub/infras/otel"
	"stayhub/internal/domains/auth/model/dto"
	"stayhub/internal/domains/auth/service"
	"stayhub/shared/constant"
	"stayhub/shared/failure"
	"stayhub/shared/validator"
	"stayhub/transport/http/response"
)

type Handler struct {
	service service.Auth
	otel    otel.Otel
}

func New(service service.Auth, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(r chi.Router) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", handler.Register)
		r.Post("/login", handler.Login)
		r.Post("/refresh-token", handler.RefreshToken)
		r.Post("/change-password", handler.ChangePassword)
	})
}

// fail traces and writes err. Client errors are logged at warn level.
func (handler *Handler) fail(w http.ResponseWriter, scope otel.Scope, err error, action string) {
	scope.TraceError(err)

	event := log.Warn()
	if failure.GetCode(err) >= http.StatusInternalServerError {
		event = log.Error()
	}

	event.Err(err).Msg("failed to " + action)

	response.WithError(w, err)
}

// Register handles guest sign up.
// @Summary Register a new user
// @Description Self-service guest registration. The account gets the user role.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Register Request"
// @Success 201 {object} response.Message "User registered successfully"
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/auth/register [post]
func (handler *Handler) Register(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Register")
	defer scope.End()

	var req dto.RegisterRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		handler.fail(w, scope, err, "validate register request")

		return
	}

	if err := handler.service.Register(ctx, req); err != nil {
		handler.fail(w, scope, err, "register user")

		return
	}

	scope.AddEvent("user registered")
	response.WithMessage(w, http.StatusCreated, "User registered successfully")
}

// Login exchanges credentials for a token pair.
// @Summary Login a user
// @Description Returns an access and refresh token together with the signed-in profile.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login Request"
// @Success 200 {object} response.Data[dto.LoginResponse] "User logged in successfully"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/auth/login [post]
func (handler *Handler) Login(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Login")
	defer scope.End()

	var req dto.LoginRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		handler.fail(w, scope, err, "validate login request")

		return
	}

	res, err := handler.service.Login(ctx, req)
	if err != nil {
		handler.fail(w, scope, err, "login user")

		return
	}

	scope.AddEvent("user logged in")
	response.WithJSON(w, http.StatusOK, res)
}

// RefreshToken issues a new token pair from a refresh token.
// @Summary Refresh user token
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.RefreshTokenRequest true "Refresh Token Request"
// @Success 200 {object} response.Data[dto.TokenResponse] "Token refreshed successfully"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/auth/refresh-token [post]
func (handler *Handler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RefreshToken")
	defer scope.End()

	var req dto.RefreshTokenRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		handler.fail(w, scope, err, "validate refresh request")

		return
	}

	res, err := handler.service.RefreshToken(ctx, req)
	if err != nil {
		handler.fail(w, scope, err, "refresh token")

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// ChangePassword rotates the signed-in user's password.
// @Summary Change password
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.ChangePasswordRequest true "Change Password Request"
// @Success 200 {object} response.Message "Password changed successfully"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/auth/change-password [post]
// @Security BearerAuth
func (handler *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ChangePassword")
	defer scope.End()

	var req dto.ChangePasswordRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		handler.fail(w, scope, err, "validate change password request")

		return
	}

	if err := handler.service.ChangePassword(ctx, req); err != nil {
		handler.fail(w, scope, err, "change password")

		return
	}

	scope.AddEvent("password changed")
	response.WithMessage(w, http.StatusOK, "Password changed successfully")
}
