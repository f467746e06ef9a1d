package shared

import (
	"context"
	"fmt"
	"math"
	"roomboard/shared/cache"
	"roomboard/shared/constant"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

// ConvertStringToInt returns nil for an empty or non-numeric value.
func ConvertStringToInt(value string) *int {
	if value == "" {
		return nil
	}

	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Error().Err(err).Msg("failed to convert string to int")

		return nil
	}

	return &intValue
}

func CalculateTotalPage(total, limit int) (res int) {
	if total == 0 || limit <= 0 {
		res = 1
	} else {
		res = int(math.Ceil(float64(total) / float64(limit)))
	}

	return res
}

// BuildCacheKey joins prefix and parts with ":", e.g. BuildCacheKey("board", 2024, 6) is "board:2024:6".
func BuildCacheKey(prefix string, parts ...any) string {
	var sb strings.Builder

	sb.WriteString(prefix)

	for _, part := range parts {
		sb.WriteString(":")
		sb.WriteString(fmt.Sprint(part))
	}

	return sb.String()
}

// InvalidateCaches removes every key under each prefix. Failures are logged, not returned.
func InvalidateCaches(ctx context.Context, c cache.RedisCache, prefixes ...string) {
	for _, prefix := range prefixes {
		if err := c.Clear(ctx, prefix+":"+constant.Asterix); err != nil {
			log.Error().Err(err).Str("prefix", prefix).Msg("failed to invalidate cache")
		}
	}
}
