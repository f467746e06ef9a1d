package cache

//go:generate go run go.uber.org/mock/mockgen -source=./cache.go -destination=./mocks/cache_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"roomboard/infras/otel"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	otelScopeName         = "cache"
	otelCacheKeyAttribute = "cache.key"
	otelCacheHitAttribute = "cache.hit"

	clearBatchSize = 100
)

// Nil is returned (wrapped) by Get on a cache miss.
var Nil = redis.Nil

// RedisCache stores JSON documents (strings verbatim) with a TTL in seconds.
type RedisCache interface {
	Save(ctx context.Context, key string, value any, duration int) (err error)
	Get(ctx context.Context, key string, value any) (err error)
	// Clear removes every key matching pattern, e.g. "board:*".
	Clear(ctx context.Context, pattern string) error
	// Increment adds one to the counter at key and returns the new value. The TTL is only
	// set while the key has none, so the window opened by the first increment never moves.
	Increment(ctx context.Context, key string, duration int) (count int, err error)
}

type redisCache struct {
	client *redis.Client
	otel   otel.Otel
}

// NewRedisCache falls back to a no-op cache when no client is configured.
func NewRedisCache(client *redis.Client, ot otel.Otel) RedisCache {
	if client == nil {
		return NewNoopCache()
	}

	return &redisCache{
		client: client,
		otel:   ot,
	}
}

// Clear implements RedisCache. Keys are unlinked in batches as the scan finds them.
func (cache *redisCache) Clear(ctx context.Context, pattern string) (err error) {
	ctx, scope := cache.otel.NewScope(ctx, otelScopeName, otelScopeName+".Clear")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute(otelCacheKeyAttribute, pattern)

	removed := 0
	batch := make([]string, 0, clearBatchSize)

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}

		if err := cache.client.Unlink(ctx, batch...).Err(); err != nil {
			log.Error().Err(err).Str("pattern", pattern).Msg("failed to clear cache")

			return fmt.Errorf("failed to clear cache %s: %w", pattern, err)
		}

		removed += len(batch)
		batch = batch[:0]

		return nil
	}

	iter := cache.client.Scan(ctx, 0, pattern, clearBatchSize).Iterator()
	for iter.Next(ctx) {
		batch = append(batch, iter.Val())

		if len(batch) == clearBatchSize {
			if err = flush(); err != nil {
				return err
			}
		}
	}

	if err = iter.Err(); err != nil {
		return fmt.Errorf("failed to scan cache %s: %w", pattern, err)
	}

	if err = flush(); err != nil {
		return err
	}

	scope.SetAttribute("cache.removed", removed)
	log.Debug().Str("pattern", pattern).Int("removed", removed).Msg("cache cleared")

	return nil
}

// Get implements RedisCache. A miss is returned as Nil and is not traced as an error.
func (cache *redisCache) Get(ctx context.Context, key string, value any) (err error) {
	ctx, scope := cache.otel.NewScope(ctx, otelScopeName, otelScopeName+".Get")
	defer scope.End()

	scope.SetAttribute(otelCacheKeyAttribute, key)

	raw, err := cache.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		scope.SetAttribute(otelCacheHitAttribute, false)

		return fmt.Errorf("cache miss %s: %w", key, Nil)
	}

	if err != nil {
		scope.TraceError(err)

		return fmt.Errorf("failed to get cache value: %w", err)
	}

	scope.SetAttribute(otelCacheHitAttribute, true)

	if v, ok := value.(*string); ok {
		*v = string(raw)

		return nil
	}

	if err = json.Unmarshal(raw, value); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("key", key).Msg("failed to unmarshal cache")

		return fmt.Errorf("failed to unmarshal cache value: %w", err)
	}

	return nil
}

// Save implements RedisCache.
func (cache *redisCache) Save(ctx context.Context, key string, value any, duration int) (err error) {
	ctx, scope := cache.otel.NewScope(ctx, otelScopeName, otelScopeName+".Save")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute(otelCacheKeyAttribute, key)

	var raw []byte

	if v, ok := value.(string); ok {
		raw = []byte(v)
	} else if raw, err = json.Marshal(value); err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to marshal cache")

		return fmt.Errorf("failed to marshal cache value: %w", err)
	}

	if err = cache.client.Set(ctx, key, raw, time.Duration(duration)*time.Second).Err(); err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to set cache")

		return fmt.Errorf("failed to set cache value: %w", err)
	}

	log.Debug().Str("key", key).Int("ttl", duration).Msg("cache saved")

	return nil
}

// Increment implements RedisCache with INCR and EXPIRE NX in one transaction.
func (cache *redisCache) Increment(ctx context.Context, key string, duration int) (count int, err error) {
	ctx, scope := cache.otel.NewScope(ctx, otelScopeName, otelScopeName+".Increment")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute(otelCacheKeyAttribute, key)

	var incr *redis.IntCmd

	_, err = cache.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		pipe.ExpireNX(ctx, key, time.Duration(duration)*time.Second)

		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to increment cache counter")

		return 0, fmt.Errorf("failed to increment cache counter: %w", err)
	}

	return int(incr.Val()), nil
}
