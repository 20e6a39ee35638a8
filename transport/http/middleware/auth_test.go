package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"stayhub/config"
	"stayhub/infras/jwt"
	jwtMocks "stayhub/infras/jwt/mocks"
	"stayhub/infras/otel/mocks"
	"stayhub/permissions"
	"stayhub/shared/constant"
	"stayhub/transport/http/middleware"
)

const testPermissions = `{"endpoints":[
	{"method":"GET","path":"/v1/properties","skip":true},
	{"method":"POST","path":"/v1/properties","permissions":["superadmin","admin"]},
	{"method":"GET","path":"/v1/bookings/mybookings","permissions":[]}
]}`

func claimsFor(id, role string) jwt.Claims {
	claims := jwt.Claims{Email: id + "@example.com", Role: role, Kind: jwt.AccessToken}
	claims.Subject = id

	return claims
}

func newAuthRouter(t *testing.T) (*jwtMocks.MockJWT, http.Handler) {
	t.Helper()

	ctrl := gomock.NewController(t)
	signer := jwtMocks.NewMockJWT(ctrl)

	data, err := permissions.Parse([]byte(testPermissions))
	require.NoError(t, err)

	cfg := &config.Config{}
	cfg.App.APIKey = "internal-key"

	auth := middleware.NewAuthRoleMiddleware(signer, mocks.NewOtel(), data, cfg)

	echo := func(w http.ResponseWriter, r *http.Request) {
		id, _ := r.Context().Value(constant.ContextKeyUserID).(string)
		role, _ := r.Context().Value(constant.ContextKeyUserRole).(string)

		w.Header().Set("X-User", id)
		w.Header().Set("X-Role", role)
		w.WriteHeader(http.StatusOK)
	}

	router := chi.NewRouter()
	router.Group(func(api chi.Router) {
		api.Use(auth.APIKey)
		api.Use(auth.Auth)
		api.Use(auth.RBAC)

		api.Route("/v1", func(v1 chi.Router) {
			v1.Route("/properties", func(r chi.Router) {
				r.Get("/", echo)
				r.Post("/", echo)
			})
			v1.Get("/bookings/mybookings", echo)
		})
	})

	return signer, router
}

func TestAuthRole(t *testing.T) {
	tests := []struct {
		name      string
		method    string
		path      string
		headers   map[string]string
		setupMock func(signer *jwtMocks.MockJWT)
		wantCode  int
		wantUser  string
	}{
		{
			name:     "public route without token",
			method:   http.MethodGet,
			path:     "/v1/properties",
			wantCode: http.StatusOK,
		},
		{
			name:    "public route picks up a valid token",
			method:  http.MethodGet,
			path:    "/v1/properties/",
			headers: map[string]string{"Authorization": "Bearer good"},
			setupMock: func(signer *jwtMocks.MockJWT) {
				signer.EXPECT().Validate("good", jwt.AccessToken).Return(claimsFor("user-1", constant.RoleUser), nil)
			},
			wantCode: http.StatusOK,
			wantUser: "user-1",
		},
		{
			name:    "public route ignores a bad token",
			method:  http.MethodGet,
			path:    "/v1/properties",
			headers: map[string]string{"Authorization": "Bearer bad"},
			setupMock: func(signer *jwtMocks.MockJWT) {
				signer.EXPECT().Validate("bad", jwt.AccessToken).Return(jwt.Claims{}, jwt.ErrInvalidToken)
			},
			wantCode: http.StatusOK,
		},
		{
			name:     "protected route without token",
			method:   http.MethodGet,
			path:     "/v1/bookings/mybookings",
			wantCode: http.StatusUnauthorized,
		},
		{
			name:    "malformed header",
			method:  http.MethodGet,
			path:    "/v1/bookings/mybookings",
			headers: map[string]string{"Authorization": "Token abc"},
			wantCode: http.StatusUnauthorized,
		},
		{
			name:    "expired token",
			method:  http.MethodGet,
			path:    "/v1/bookings/mybookings",
			headers: map[string]string{"Authorization": "Bearer old"},
			setupMock: func(signer *jwtMocks.MockJWT) {
				signer.EXPECT().Validate("old", jwt.AccessToken).Return(jwt.Claims{}, jwt.ErrExpiredToken)
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name:    "any signed in caller",
			method:  http.MethodGet,
			path:    "/v1/bookings/mybookings",
			headers: map[string]string{"Authorization": "Bearer good"},
			setupMock: func(signer *jwtMocks.MockJWT) {
				signer.EXPECT().Validate("good", jwt.AccessToken).Return(claimsFor("user-1", constant.RoleUser), nil)
			},
			wantCode: http.StatusOK,
			wantUser: "user-1",
		},
		{
			name:    "guest on a staff route",
			method:  http.MethodPost,
			path:    "/v1/properties",
			headers: map[string]string{"Authorization": "Bearer good"},
			setupMock: func(signer *jwtMocks.MockJWT) {
				signer.EXPECT().Validate("good", jwt.AccessToken).Return(claimsFor("user-1", constant.RoleUser), nil)
			},
			wantCode: http.StatusForbidden,
		},
		{
			name:    "admin on a staff route",
			method:  http.MethodPost,
			path:    "/v1/properties",
			headers: map[string]string{"Authorization": "Bearer good"},
			setupMock: func(signer *jwtMocks.MockJWT) {
				signer.EXPECT().Validate("good", jwt.AccessToken).Return(claimsFor("admin-1", constant.RoleAdmin), nil)
			},
			wantCode: http.StatusOK,
			wantUser: "admin-1",
		},
		{
			name:     "internal api key",
			method:   http.MethodPost,
			path:     "/v1/properties",
			headers:  map[string]string{"X-API-Key": "internal-key"},
			wantCode: http.StatusOK,
			wantUser: constant.InternalActor,
		},
		{
			name:     "wrong api key",
			method:   http.MethodPost,
			path:     "/v1/properties",
			headers:  map[string]string{"X-API-Key": "guess"},
			wantCode: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			signer, router := newAuthRouter(t)
			if tt.setupMock != nil {
				tt.setupMock(signer)
			}

			r := httptest.NewRequest(tt.method, tt.path, nil)
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, r)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, tt.wantUser, rec.Header().Get("X-User"))
		})
	}
}
