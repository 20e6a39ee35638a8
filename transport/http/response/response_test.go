package response_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stayhub/shared/failure"
	"stayhub/transport/http/response"
)

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var body T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	return body
}

func TestWithJSON(t *testing.T) {
	rec := httptest.NewRecorder()

	response.WithJSON(rec, http.StatusCreated, map[string]string{"booking_number": "LP123456"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"data":{"booking_number":"LP123456"}}`, rec.Body.String())
}

func TestWithMessage(t *testing.T) {
	rec := httptest.NewRecorder()

	response.WithMessage(rec, http.StatusOK, "Booking cancelled")

	body := decode[response.Message](t, rec)
	require.NotNil(t, body.Message)
	assert.Equal(t, "Booking cancelled", *body.Message)
}

func TestWithError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{
			name:     "client failure keeps its message",
			err:      failure.Conflict("dates already booked: LP100001"),
			wantCode: http.StatusConflict,
			wantMsg:  "dates already booked: LP100001",
		},
		{
			name:     "wrapped failure",
			err:      fmt.Errorf("create booking: %w", failure.NotFound("room not found")),
			wantCode: http.StatusNotFound,
			wantMsg:  "create booking: room not found",
		},
		{
			name:     "server failure keeps its message",
			err:      failure.BadGateway(errors.New("urway gateway rejected the request")),
			wantCode: http.StatusBadGateway,
			wantMsg:  "urway gateway rejected the request",
		},
		{
			name:     "plain errors are hidden",
			err:      errors.New(`pq: relation "bookings" does not exist`),
			wantCode: http.StatusInternalServerError,
			wantMsg:  "Internal Server Error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()

			response.WithError(rec, tt.err)

			assert.Equal(t, tt.wantCode, rec.Code)

			body := decode[response.Error](t, rec)
			require.NotNil(t, body.Error)
			assert.Equal(t, tt.wantMsg, *body.Error)
		})
	}
}

func TestWithRequestLimitExceeded(t *testing.T) {
	rec := httptest.NewRecorder()

	response.WithRequestLimitExceeded(rec, 60)

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "60", rec.Header().Get("Retry-After"))

	rec = httptest.NewRecorder()

	response.WithRequestLimitExceeded(rec, 0)

	assert.Empty(t, rec.Header().Get("Retry-After"))
}

func TestWithPreparingShutdown(t *testing.T) {
	rec := httptest.NewRecorder()

	response.WithPreparingShutdown(rec)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "close", rec.Header().Get("Connection"))
}
