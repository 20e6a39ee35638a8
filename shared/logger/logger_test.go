package logger_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stayhub/config"
	"stayhub/shared/logger"
)

func TestLevel(t *testing.T) {
	tests := []struct {
		input string
		want  zerolog.Level
	}{
		{input: "", want: zerolog.InfoLevel},
		{input: "debug", want: zerolog.DebugLevel},
		{input: "warn", want: zerolog.WarnLevel},
		{input: "trace", want: zerolog.TraceLevel},
		{input: "loud", want: zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, logger.Level(tt.input))
		})
	}
}

func TestNew_ProductionWritesJSON(t *testing.T) {
	cfg := &config.Config{}
	cfg.Server.Env = "production"
	cfg.App.Name = "stayhub"

	var buf bytes.Buffer

	l := logger.New(cfg, &buf)
	l.Info().Str("bookingNumber", "LP123456").Msg("booking created")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))

	assert.Equal(t, "stayhub", line["service"])
	assert.Equal(t, "production", line["env"])
	assert.Equal(t, "LP123456", line["bookingNumber"])
	assert.Equal(t, "booking created", line["message"])
	assert.Contains(t, line, "time")
}

func TestNew_DevelopmentWritesConsole(t *testing.T) {
	cfg := &config.Config{}
	cfg.Server.Env = "development"

	var buf bytes.Buffer

	l := logger.New(cfg, &buf)
	l.Warn().Msg("cache miss")

	assert.Contains(t, buf.String(), "cache miss")
	assert.False(t, json.Valid(buf.Bytes()))
}

func TestErrorWithStack(t *testing.T) {
	previous := log.Logger

	t.Cleanup(func() { log.Logger = previous })

	var buf bytes.Buffer

	log.Logger = zerolog.New(&buf)

	logger.ErrorWithStack(errors.New("connection refused"))

	assert.Contains(t, buf.String(), "connection refused")
	assert.Contains(t, buf.String(), "logger_test")
}
