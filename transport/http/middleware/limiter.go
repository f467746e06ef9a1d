package middleware

import (
	"errors"
	"net/http"
	"roomboard/shared"
	"roomboard/shared/cache"
	"roomboard/shared/constant"
	"roomboard/transport/http/response"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

const (
	cacheKeyRateLimit = "limiter"

	headerRetryAfter = "Retry-After"
)

// RateLimit counts requests per client in fixed windows kept in Redis. A window starts with
// the first request and lasts WindowSeconds whatever happens inside it. Without Redis every
// request is the first of its window, so nothing is ever limited.
func (a *appMiddleware) RateLimit() func(http.Handler) http.Handler {
	limiter := a.config.App.RateLimiter

	return func(next http.Handler) http.Handler {
		if !limiter.Enable {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := shared.BuildCacheKey(cacheKeyRateLimit, a.getClientIP(r), a.getUA(r))

			count, ok := a.hit(r, key, limiter.MaxRequests, limiter.WindowSeconds)
			if !ok {
				next.ServeHTTP(w, r)

				return
			}

			w.Header().Set(constant.RequestHeaderRateLimit, strconv.Itoa(limiter.MaxRequests))
			w.Header().Set(constant.RequestHeaderRateLimitRemaining, strconv.Itoa(max(0, limiter.MaxRequests-count)))
			w.Header().Set(constant.RequestHeaderRateLimitWindow, strconv.Itoa(limiter.WindowSeconds))

			if count > limiter.MaxRequests {
				w.Header().Set(headerRetryAfter, strconv.Itoa(limiter.WindowSeconds))
				response.WithRequestLimitExceeded(w)

				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// hit returns the request's position in the current window. Requests past the limit are
// rejected without being recorded. ok is false when Redis could not be reached; such requests
// are let through.
func (a *appMiddleware) hit(r *http.Request, key string, maxRequests, windowSeconds int) (count int, ok bool) {
	var seen int

	err := a.cache.Get(r.Context(), key, &seen)
	if err != nil && !errors.Is(err, cache.Nil) {
		log.Warn().Err(err).Str("key", key).Msg("rate limiter unavailable")

		return 0, false
	}

	if seen >= maxRequests {
		return seen + 1, true
	}

	count, err = a.cache.Increment(r.Context(), key, windowSeconds)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("rate limiter unavailable")

		return 0, false
	}

	return count, true
}

func (a *appMiddleware) getUA(r *http.Request) string {
	ua := r.Header.Get(constant.RequestHeaderUserAgent)
	if ua == "" {
		ua = "unknown"
	}

	return ua
}

// getClientIP prefers the first X-Forwarded-For hop, then X-Real-IP, then the peer address.
func (a *appMiddleware) getClientIP(r *http.Request) string {
	if xff := r.Header.Get(constant.RequestHeaderForwardedFor); xff != "" {
		first, _, _ := strings.Cut(xff, ",")

		return strings.TrimSpace(first)
	}

	if xri := r.Header.Get(constant.RequestHeaderRealIP); xri != "" {
		return strings.TrimSpace(xri)
	}

	return r.RemoteAddr
}
