package middleware

import (
	"context"
	"errors"
	"net/http"
	"slices"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"stayhub/config"
	"stayhub/infras/jwt"
	"stayhub/infras/otel"
	"stayhub/permissions"
	"stayhub/shared/constant"
	"stayhub/shared/failure"
	"stayhub/transport/http/response"
)

type SkipAuthKey string

type Auth interface {
	Auth(http.Handler) http.Handler
	APIKey(http.Handler) http.Handler
}

type Role interface {
	RBAC(http.Handler) http.Handler
}

type AuthRole interface {
	Auth
	Role
}

type authRoleImpl struct {
	jwt        jwt.JWT
	otel       otel.Otel
	permission *permissions.PermissionData
	cfg        *config.Config
}

func NewAuthRoleMiddleware(jwtService jwt.JWT, otel otel.Otel, permission *permissions.PermissionData, cfg *config.Config) AuthRole {
	return &authRoleImpl{
		jwt:        jwtService,
		otel:       otel,
		permission: permission,
		cfg:        cfg,
	}
}

// Auth attaches the caller's identity to the request context. Public endpoints accept anonymous
// callers but still pick up a valid bearer token when one is sent.
func (m *authRoleImpl) Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, scope := m.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, "auth.middleware")
		defer scope.End()

		if skip, _ := ctx.Value(SkipAuthKey("skip")).(bool); skip {
			next.ServeHTTP(w, r)

			return
		}

		permission := m.find(r)
		header := r.Header.Get(constant.RequestHeaderAuthorization)

		scope.SetAttributes(map[string]any{
			"middleware.type": "auth",
			"http.path":       permission.Path,
			"http.method":     r.Method,
		})

		if permission.Skip && header == constant.Empty {
			next.ServeHTTP(w, r)

			return
		}

		claims, err := m.authenticate(header)
		if err != nil {
			if permission.Skip {
				next.ServeHTTP(w, r)

				return
			}

			scope.TraceError(err)
			response.WithError(w, err)

			return
		}

		ctx = context.WithValue(ctx, constant.ContextKeyUserID, claims.UserID())
		ctx = context.WithValue(ctx, constant.ContextKeyUserEmail, claims.Email)
		ctx = context.WithValue(ctx, constant.ContextKeyUserRole, claims.Role)
		ctx = context.WithValue(ctx, constant.ContextKeyTokenID, claims.TokenID())

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *authRoleImpl) authenticate(header string) (jwt.Claims, error) {
	if header == constant.Empty {
		return jwt.Claims{}, failure.Unauthorized("Missing authorization header")
	}

	token, err := jwt.FromHeader(header)
	if err != nil {
		return jwt.Claims{}, failure.Unauthorized("Invalid authorization header format")
	}

	claims, err := m.jwt.Validate(token, jwt.AccessToken)
	if err != nil {
		log.Debug().Err(err).Msg("rejected access token")

		switch {
		case errors.Is(err, jwt.ErrExpiredToken):
			return jwt.Claims{}, failure.Unauthorized("Token has expired")
		case errors.Is(err, jwt.ErrInvalidClaim):
			return jwt.Claims{}, failure.Unauthorized("Invalid token claims")
		default:
			return jwt.Claims{}, failure.Unauthorized("Invalid token")
		}
	}

	return claims, nil
}

// RBAC checks the caller's role against the endpoint's allowed roles. It runs after Auth.
func (m *authRoleImpl) RBAC(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, scope := m.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, "rbac.middleware")
		defer scope.End()

		if skip, _ := ctx.Value(SkipAuthKey("skip")).(bool); skip {
			next.ServeHTTP(w, r)

			return
		}

		if m.permission == nil {
			response.WithError(w, failure.ForbiddenError)

			return
		}

		permission := m.find(r)

		if m.permission.Skip || permission.Skip || len(permission.Permissions) == 0 {
			next.ServeHTTP(w, r)

			return
		}

		role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

		if !slices.Contains(permission.Permissions, role) {
			scope.TraceError(failure.ForbiddenError)
			scope.SetAttributes(map[string]any{
				"user_role":     role,
				"allowed_roles": permission.Permissions,
			})

			response.WithError(w, failure.ForbiddenError)

			return
		}

		next.ServeHTTP(w, r)
	})
}

// APIKey marks requests from internal services so Auth and RBAC let them through.
func (m *authRoleImpl) APIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, scope := m.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, "api_key.middleware")
		defer scope.End()

		apiKey := r.Header.Get(constant.RequestHeaderAPIKey)
		if apiKey == constant.Empty {
			scope.SetAttribute("http.source", "client")
			next.ServeHTTP(w, r)

			return
		}

		scope.SetAttribute("http.source", "internal")

		if m.cfg.App.APIKey == constant.Empty || apiKey != m.cfg.App.APIKey {
			scope.TraceError(failure.ForbiddenError)
			response.WithError(w, failure.ForbiddenError)

			return
		}

		ctx = context.WithValue(ctx, SkipAuthKey("skip"), true)
		ctx = context.WithValue(ctx, constant.ContextKeyUserID, constant.InternalActor)
		ctx = context.WithValue(ctx, constant.ContextKeyUserRole, constant.RoleSuperAdmin)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *authRoleImpl) find(r *http.Request) permissions.Permission {
	if m.permission == nil {
		return permissions.Permission{}
	}

	rctx := chi.RouteContext(r.Context())
	if rctx == nil || rctx.Routes == nil {
		return permissions.Permission{}
	}

	path := rctx.Routes.Find(chi.NewRouteContext(), r.Method, r.URL.Path)
	if path == constant.Empty {
		return permissions.Permission{Skip: true}
	}

	return m.permission.FindPermissions(path, r.Method)
}
