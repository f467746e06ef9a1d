package handler

import (
	"context"
	"net/http"
	"roomboard/config"
	"roomboard/di"
	"roomboard/shared/logger"
	"sync"

	"github.com/rs/zerolog/log"
)

var (
	app     *di.App
	appOnce sync.Once
)

// Handler is the serverless entry point. The board lives in memory, so one app is
// built per instance and reused across invocations.
func Handler(w http.ResponseWriter, r *http.Request) {
	r.RequestURI = r.URL.String()

	appOnce.Do(func() {
		cfg := config.Get()

		logger.InitLogger()

		logger.SetLogLevel(cfg)

		app = di.InitializeService()
		if err := app.Seed(context.Background()); err != nil {
			log.Error().Err(err).Msg("Failed to seed inventory")
		}
	})

	app.HTTP.ServeHTTP(w, r)
}
