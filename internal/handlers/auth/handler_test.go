package auth_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	otelMocks "stayhub/infras/otel/mocks"
	"stayhub/internal/domains/auth/mocks"
	"stayhub/internal/domains/auth/model/dto"
	"stayhub/internal/handlers/auth"
	"stayhub/shared/failure"
)

func TestHandler_Login(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		setupMock func(svc *mocks.MockAuth)
		wantCode  int
		wantBody  string
	}{
		{
			name: "success",
			body: `{"email":"guest@example.com","password":"secret123"}`,
			setupMock: func(svc *mocks.MockAuth) {
				svc.EXPECT().Login(gomock.Any(), dto.LoginRequest{Email: "guest@example.com", Password: "secret123"}).
					Return(dto.LoginResponse{TokenResponse: dto.TokenResponse{AccessToken: "access", TokenType: "Bearer"}}, nil)
			},
			wantCode: http.StatusOK,
			wantBody: `"access_token":"access"`,
		},
		{
			name:      "missing email",
			body:      `{"password":"secret123"}`,
			setupMock: func(_ *mocks.MockAuth) {},
			wantCode:  http.StatusBadRequest,
			wantBody:  "email",
		},
		{
			name:      "malformed body",
			body:      `{"email":`,
			setupMock: func(_ *mocks.MockAuth) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "wrong password",
			body: `{"email":"guest@example.com","password":"nope"}`,
			setupMock: func(svc *mocks.MockAuth) {
				svc.EXPECT().Login(gomock.Any(), gomock.Any()).
					Return(dto.LoginResponse{}, failure.BadRequestFromString("invalid email or password"))
			},
			wantCode: http.StatusBadRequest,
			wantBody: "invalid email or password",
		},
		{
			name: "internal error is not leaked",
			body: `{"email":"guest@example.com","password":"secret123"}`,
			setupMock: func(svc *mocks.MockAuth) {
				svc.EXPECT().Login(gomock.Any(), gomock.Any()).
					Return(dto.LoginResponse{}, errors.New("pq: connection reset"))
			},
			wantCode: http.StatusInternalServerError,
			wantBody: http.StatusText(http.StatusInternalServerError),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			svc := mocks.NewMockAuth(ctrl)
			tt.setupMock(svc)

			handler := auth.New(svc, otelMocks.NewOtel())
			router := chi.NewRouter()
			handler.Router(router)

			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")

			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
			assert.NotContains(t, rec.Body.String(), "pq:")
		})
	}
}

func TestHandler_Register(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockAuth(ctrl)

	svc.EXPECT().Register(gomock.Any(), gomock.Any()).Return(nil)
	svc.EXPECT().Register(gomock.Any(), gomock.Any()).Return(failure.Conflict("email already registered"))

	handler := auth.New(svc, otelMocks.NewOtel())
	router := chi.NewRouter()
	handler.Router(router)

	body := `{"email":"guest@example.com","password":"secret123"}`

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(body)))
	require.Equal(t, http.StatusCreated, rec.Code)

	var msg struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&msg))
	assert.Equal(t, "User registered successfully", msg.Message)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(body)))
	assert.Equal(t, http.StatusConflict, rec.Code)
}
