package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"stayhub/config"
	"stayhub/infras/otel/mocks"
	"stayhub/shared/cache"
	cacheMocks "stayhub/shared/cache/mocks"
)

func TestClientIP(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{
			name:    "first forwarded address wins",
			headers: map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.1"},
			remote:  "10.0.0.2:5555",
			want:    "203.0.113.7",
		},
		{
			name:    "real ip header",
			headers: map[string]string{"X-Real-IP": " 198.51.100.4 "},
			remote:  "10.0.0.2:5555",
			want:    "198.51.100.4",
		},
		{
			name:   "remote address without port",
			remote: "192.0.2.10:4000",
			want:   "192.0.2.10",
		},
		{
			name:   "unparseable remote address",
			remote: "pipe",
			want:   "pipe",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.RemoteAddr = tt.remote

			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}

			assert.Equal(t, tt.want, clientIP(r))
		})
	}
}

func TestLocalLimiter(t *testing.T) {
	limiter := newLocalLimiter(2, 3600)

	assert.True(t, limiter.allow("a"))
	assert.True(t, limiter.allow("a"))
	assert.False(t, limiter.allow("a"))
	assert.True(t, limiter.allow("b"))

	unlimited := newLocalLimiter(0, 0)
	for range 100 {
		assert.True(t, unlimited.allow("a"))
	}
}

func newLimitedApp(t *testing.T, maxRequests int) (*cacheMocks.MockRedisCache, http.Handler) {
	t.Helper()

	ctrl := gomock.NewController(t)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	cfg := &config.Config{}
	cfg.App.RateLimiter.Enable = true
	cfg.App.RateLimiter.MaxRequests = maxRequests
	cfg.App.RateLimiter.WindowSeconds = 60

	app := NewAppMiddleware(mocks.NewOtel(), cfg, mockCache)

	return mockCache, app.RateLimit(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
}

func TestRateLimit(t *testing.T) {
	request := func() *http.Request {
		r := httptest.NewRequest(http.MethodGet, "/v1/properties", nil)
		r.RemoteAddr = "192.0.2.1:1234"

		return r
	}

	t.Run("first request opens a window", func(t *testing.T) {
		mockCache, handler := newLimitedApp(t, 3)

		mockCache.EXPECT().Get(gomock.Any(), "limiter:192.0.2.1", gomock.Any()).Return(cache.Nil)
		mockCache.EXPECT().Save(gomock.Any(), "limiter:192.0.2.1", 1, 60).Return(nil)

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, request())

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, "3", rec.Header().Get("X-RateLimit-Limit"))
		assert.Equal(t, "2", rec.Header().Get("X-RateLimit-Remaining"))
		assert.Equal(t, "60", rec.Header().Get("X-RateLimit-Window"))
	})

	t.Run("budget exhausted", func(t *testing.T) {
		mockCache, handler := newLimitedApp(t, 3)

		mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, _ string, value any) error {
			*(value.(*int)) = 3

			return nil
		})
		mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), 4, 60).Return(nil)

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, request())

		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
		assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))
	})

	t.Run("cache outage falls back to local bucket", func(t *testing.T) {
		mockCache, handler := newLimitedApp(t, 1)

		mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("connection refused")).Times(2)

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, request())
		assert.Equal(t, http.StatusNoContent, rec.Code)

		rec = httptest.NewRecorder()
		handler.ServeHTTP(rec, request())
		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	})

	t.Run("disabled", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		app := NewAppMiddleware(mocks.NewOtel(), &config.Config{}, cacheMocks.NewMockRedisCache(ctrl))

		rec := httptest.NewRecorder()
		app.RateLimit(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		})).ServeHTTP(rec, request())

		assert.Equal(t, http.StatusNoContent, rec.Code)
	})
}
