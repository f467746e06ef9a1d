package main

import (
	"context"
	"roomboard/config"
	"roomboard/di"
	"roomboard/shared/logger"

	"github.com/rs/zerolog/log"
)

// @title Room Board API
// @version 1.0
// @description Booking board for a single property: rooms, staff, bookings and the month grid.
// @BasePath /v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Get()

	logger.InitLogger()

	logFile := logger.AttachFile(cfg)
	defer logFile.Close()

	logger.SetLogLevel(cfg)

	app := di.InitializeService()
	defer app.Close()

	if err := app.Seed(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to seed inventory")
	}

	app.HTTP.Serve()
}
