package redis

import (
	"context"
	"fmt"
	"roomboard/config"

	goRedis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// New connects to the primary Redis. It returns nil when no host is configured,
// in which case callers fall back to in-process behaviour.
func New(config *config.Config) *goRedis.Client {
	primary := config.Cache.Redis.Primary
	if primary.Host == "" {
		log.Warn().Msg("Redis host not set, caching and rate limiting are disabled")

		return nil
	}

	ctx := context.Background()
	client := goRedis.NewClient(&goRedis.Options{
		Addr:     fmt.Sprintf("%s:%s", primary.Host, primary.Port),
		Password: primary.Password,
		DB:       primary.DB,
	})

	_, err := client.Ping(ctx).Result()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}

	log.Info().
		Int("db", primary.DB).
		Str("host", primary.Host).
		Str("port", primary.Port).
		Msg("Connected to Redis")

	return client
}
