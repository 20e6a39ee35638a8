package failure_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"stayhub/shared/failure"
)

func TestConstructors(t *testing.T) {
	cause := errors.New("check_out must be after check_in")

	tests := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{name: "bad request", err: failure.BadRequest(cause), wantCode: http.StatusBadRequest, wantMsg: cause.Error()},
		{name: "bad request from string", err: failure.BadRequestFromString("guests is required"), wantCode: http.StatusBadRequest, wantMsg: "guests is required"},
		{name: "unauthorized", err: failure.Unauthorized("Token has expired"), wantCode: http.StatusUnauthorized, wantMsg: "Token has expired"},
		{name: "forbidden", err: failure.Forbidden("account is deactivated"), wantCode: http.StatusForbidden, wantMsg: "account is deactivated"},
		{name: "not found", err: failure.NotFound("booking not found"), wantCode: http.StatusNotFound, wantMsg: "booking not found"},
		{name: "conflict", err: failure.Conflict("dates already booked"), wantCode: http.StatusConflict, wantMsg: "dates already booked"},
		{name: "internal", err: failure.InternalError(cause), wantCode: http.StatusInternalServerError, wantMsg: cause.Error()},
		{name: "bad gateway", err: failure.BadGateway(cause), wantCode: http.StatusBadGateway, wantMsg: cause.Error()},
		{name: "unavailable", err: failure.Unavailable("payments are disabled"), wantCode: http.StatusServiceUnavailable, wantMsg: "payments are disabled"},
		{name: "custom", err: failure.New(http.StatusTeapot, "short and stout"), wantCode: http.StatusTeapot, wantMsg: "short and stout"},
		{name: "predefined forbidden", err: failure.ForbiddenError, wantCode: http.StatusForbidden, wantMsg: "You don't have the required permissions"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantCode, failure.GetCode(tt.err))
			assert.Equal(t, tt.wantMsg, tt.err.Error())
		})
	}
}

func TestNilCausesStayNil(t *testing.T) {
	assert.NoError(t, failure.BadRequest(nil))
	assert.NoError(t, failure.InternalError(nil))
	assert.NoError(t, failure.BadGateway(nil))
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "failure", err: failure.NotFound("room not found"), want: http.StatusNotFound},
		{name: "wrapped failure", err: fmt.Errorf("confirm booking: %w", failure.Conflict("already confirmed")), want: http.StatusConflict},
		{name: "plain error", err: errors.New("connection reset"), want: http.StatusInternalServerError},
		{name: "nil", err: nil, want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, failure.GetCode(tt.err))
		})
	}
}
