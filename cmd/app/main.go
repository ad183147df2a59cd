package main

import (
	"context"
	"hotelbook/config"
	"hotelbook/di"
	"hotelbook/helper"
	"hotelbook/shared/logger"
	"time"

	"github.com/rs/zerolog/log"
)

const otelShutdownTimeout = 5 * time.Second

// @title Hotelbook API
// @version 1.0
// @description Hotel catalog and room reservation service.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the access token.
func main() {
	logger.InitLogger()

	cfg := config.Get()

	logger.Configure(cfg)

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	if cfg.DB.Postgres.AutoMigrate {
		if err := helper.Up(cfg); err != nil {
			log.Fatal().Err(err).Msg("Failed to run database migrations")
		}
	}

	app := di.InitializeApp()

	ctx, cancel := context.WithCancel(context.Background())

	go app.Listener.Run(ctx)

	app.HTTP.Serve()

	cancel()

	if err := app.Kafka.Close(); err != nil {
		log.Error().Err(err).Msg("Failed to close Kafka client")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), otelShutdownTimeout)
	defer shutdownCancel()

	if err := app.Otel.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Failed to flush traces")
	}
}
