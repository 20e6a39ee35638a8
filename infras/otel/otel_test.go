package otel_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"stayhub/infras/otel"
	"stayhub/shared/money"
)

func recorder(t *testing.T) (otel.Otel, *tracetest.SpanRecorder) {
	t.Helper()

	spans := tracetest.NewSpanRecorder()

	return otel.NewWithProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(spans))), spans
}

func TestScope_Attributes(t *testing.T) {
	tracer, spans := recorder(t)

	_, scope := tracer.NewScope(context.Background(), "stayhub.service", "booking.Create")
	scope.SetAttribute("booking.number", "LP123456")
	scope.SetAttributes(map[string]any{
		"booking.nights": 3,
		"booking.total":  money.FromMinor(170000),
		"booking.paid":   false,
		"unit.ids":       []string{"room-1"},
	})
	scope.AddEvent("allocated")
	scope.End()

	ended := spans.Ended()
	require.Len(t, ended, 1)

	span := ended[0]
	assert.Equal(t, "booking.Create", span.Name())
	assert.Equal(t, "stayhub.service", span.InstrumentationScope().Name)

	attrs := map[attribute.Key]attribute.Value{}
	for _, kv := range span.Attributes() {
		attrs[kv.Key] = kv.Value
	}

	assert.Equal(t, "LP123456", attrs["booking.number"].AsString())
	assert.Equal(t, int64(3), attrs["booking.nights"].AsInt64())
	assert.Equal(t, "1700.00", attrs["booking.total"].AsString())
	assert.False(t, attrs["booking.paid"].AsBool())
	assert.Equal(t, []string{"room-1"}, attrs["unit.ids"].AsStringSlice())

	require.Len(t, span.Events(), 1)
	assert.Equal(t, "allocated", span.Events()[0].Name)
}

func TestScope_Errors(t *testing.T) {
	tracer, spans := recorder(t)

	_, ok := tracer.NewScope(context.Background(), "stayhub.service", "ok")
	ok.TraceIfError(nil)
	ok.End()

	_, failed := tracer.NewScope(context.Background(), "stayhub.service", "failed")
	failed.TraceIfError(errors.New("dates already booked"))
	failed.End()

	ended := spans.Ended()
	require.Len(t, ended, 2)

	assert.Equal(t, codes.Unset, ended[0].Status().Code)
	assert.Equal(t, codes.Error, ended[1].Status().Code)
	assert.Equal(t, "dates already booked", ended[1].Status().Description)
}

func TestNewScope_NestsUnderParent(t *testing.T) {
	tracer, spans := recorder(t)

	ctx, parent := tracer.NewScope(context.Background(), "stayhub.handler", "handler")
	_, child := tracer.NewScope(ctx, "stayhub.service", "service")
	child.End()
	parent.End()

	ended := spans.Ended()
	require.Len(t, ended, 2)
	assert.Equal(t, ended[1].SpanContext().SpanID(), ended[0].Parent().SpanID())
}
