package logger

import (
	"io"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"stayhub/config"
	"stayhub/shared/constant"
)

const defaultLevel = zerolog.InfoLevel

// Init replaces the global logger with one built from cfg, writing to stdout.
func Init(cfg *config.Config) {
	log.Logger = New(cfg, os.Stdout)
	zerolog.SetGlobalLevel(Level(cfg.Server.LogLevel))

	log.Debug().Str("level", zerolog.GlobalLevel().String()).Msg("logger initialized")
}

// New builds a logger tagged with the app name. Production writes JSON lines,
// every other environment gets the human readable console format.
func New(cfg *config.Config, out io.Writer) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339

	if cfg.Server.Env != constant.ServerEnvProduction {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	ctx := zerolog.New(out).With().Timestamp()

	if cfg.App.Name != constant.Empty {
		ctx = ctx.Str("service", cfg.App.Name)
	}

	if cfg.Server.Env != constant.Empty {
		ctx = ctx.Str("env", cfg.Server.Env)
	}

	return ctx.Logger()
}

// Level parses a zerolog level name; unknown or empty names give info.
func Level(name string) zerolog.Level {
	if name == constant.Empty {
		return defaultLevel
	}

	level, err := zerolog.ParseLevel(name)
	if err != nil {
		return defaultLevel
	}

	return level
}

func ErrorWithStack(err error) {
	log.Error().Msgf("%+v", errors.WithStack(err))
}
