package di

import (
	"context"
	"roomboard/config"
	"roomboard/infras/kafka"
	assistantService "roomboard/internal/domains/assistant/service"
	boardService "roomboard/internal/domains/board/service"
	roomRepository "roomboard/internal/domains/room/repository"
	staffRepository "roomboard/internal/domains/staff/repository"
	"roomboard/internal/seed"
	"roomboard/shared"
	"roomboard/shared/cache"
	"roomboard/transport/http"
	"time"

	"github.com/rs/zerolog/log"
)

const closeTimeout = 5 * time.Second

// App is the wired process: the HTTP server plus what has to run around it.
type App struct {
	Config *config.Config
	HTTP   *http.HTTP
	Rooms  roomRepository.Room
	Staff  staffRepository.Staff
	Kafka  kafka.Client
	Cache  cache.RedisCache
	Board  boardService.Board
}

// Seed loads the default inventory into the empty repositories.
func (a *App) Seed(ctx context.Context) error {
	return seed.Load(ctx, a.Config, a.Rooms, a.Staff) //nolint:wrapcheck
}

// Close drops the views this instance cached and releases the outbound connections.
// Entries of other live instances are keyed by their own instance id and stay untouched.
func (a *App) Close() {
	ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()

	shared.InvalidateCaches(ctx, a.Cache,
		shared.BuildCacheKey(boardService.CachePrefix, a.Board.Instance()),
		shared.BuildCacheKey(assistantService.SummaryCachePrefix, a.Board.Instance()),
	)

	if a.Kafka == nil {
		return
	}

	if err := a.Kafka.Close(); err != nil {
		log.Warn().Err(err).Msg("Failed to close Kafka writers")
	}
}
