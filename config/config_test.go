package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stayhub/config"
)

func validConfig() config.Config {
	cfg := config.Config{}
	cfg.JWT.AccessSecret = "access"
	cfg.JWT.RefreshSecret = "refresh"
	cfg.DB.Postgres.Write.Host = "localhost"
	cfg.Booking.NumberAttempts = 10
	cfg.External.Otel.SampleRatio = 1

	return cfg
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *config.Config)
		wantErr string
	}{
		{
			name:   "valid",
			mutate: func(_ *config.Config) {},
		},
		{
			name:    "missing jwt secret",
			mutate:  func(cfg *config.Config) { cfg.JWT.RefreshSecret = "" },
			wantErr: "JWT_ACCESS_SECRET and JWT_REFRESH_SECRET are required",
		},
		{
			name:    "shared jwt secret",
			mutate:  func(cfg *config.Config) { cfg.JWT.RefreshSecret = "access" },
			wantErr: "must differ",
		},
		{
			name:    "missing write host",
			mutate:  func(cfg *config.Config) { cfg.DB.Postgres.Write.Host = "" },
			wantErr: "DB_POSTGRES_WRITE_HOST",
		},
		{
			name:    "no number attempts",
			mutate:  func(cfg *config.Config) { cfg.Booking.NumberAttempts = 0 },
			wantErr: "BOOKING_NUMBER_ATTEMPTS",
		},
		{
			name:    "sample ratio out of range",
			mutate:  func(cfg *config.Config) { cfg.External.Otel.SampleRatio = 1.5 },
			wantErr: "EXTERNAL_OTEL_SAMPLE_RATIO",
		},
		{
			name:    "kafka without brokers",
			mutate:  func(cfg *config.Config) { cfg.Kafka.Enable = true },
			wantErr: "KAFKA_BROKERS",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)

				return
			}

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestGet_AppliesDefaults(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")

	cfg := config.Get()

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "LP", cfg.Booking.PropertyPrefix)
	assert.Equal(t, "RB", cfg.Booking.RoomPrefix)
	assert.Equal(t, 10, cfg.Booking.NumberAttempts)
	assert.Equal(t, "SAR", cfg.Booking.Currency)
	assert.Same(t, cfg, config.Get())
}
