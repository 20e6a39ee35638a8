package main

//go:generate go run github.com/swaggo/swag/cmd/swag init -d ../.. -g cmd/app/main.go -o ../../docs --parseInternal

//nolint:revive
import (
	"github.com/rs/zerolog/log"

	"stayhub/config"
	"stayhub/di"
	_ "stayhub/docs"
	"stayhub/helper"
	"stayhub/shared/logger"
)

// @title StayHub API
// @version 1.0
// @description Property and room booking backend.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
func main() {
	cfg := config.Get()

	logger.Init(cfg)

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	if cfg.DB.Postgres.AutoMigrate {
		if err := helper.MigrateUp(cfg); err != nil {
			log.Fatal().Err(err).Msg("failed to apply migrations")
		}
	}

	server := di.InitializeService()
	server.Serve()
}
