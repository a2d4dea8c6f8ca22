package httpx

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/keelhaven/clientreg/pkg/slogx"
)

// WindowLimiter counts requests per key in fixed windows. Implementations
// may keep the counters in shared storage so several replicas draw from one
// budget.
type WindowLimiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (allowed bool, retryAfter time.Duration, err error)
}

// RedisWindowLimiter implements WindowLimiter on Redis counters keyed by a
// fixed window index.
type RedisWindowLimiter struct {
	rdb    *redis.Client
	prefix string
}

// NewRedisWindowLimiter builds a limiter over rdb. Keys are namespaced under
// "clientreg:rl".
func NewRedisWindowLimiter(rdb *redis.Client) *RedisWindowLimiter {
	return &RedisWindowLimiter{rdb: rdb, prefix: "clientreg:rl"}
}

func (l *RedisWindowLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, time.Duration, error) {
	if limit <= 0 {
		return false, window, nil
	}

	secs := int64(window.Seconds())
	if secs < 1 {
		secs = 1
	}

	now := time.Now().Unix()
	bucket := now / secs
	bucketKey := fmt.Sprintf("%s:%s:%d", l.prefix, key, bucket)

	n, err := l.rdb.Incr(ctx, bucketKey).Result()
	if err != nil {
		return false, 0, err
	}
	if n == 1 {
		// The bucket index keeps windows separate; the TTL only cleans up.
		_ = l.rdb.Expire(ctx, bucketKey, 2*window).Err()
	}

	if n > int64(limit) {
		retryAfter := time.Duration((bucket+1)*secs-now) * time.Second
		return false, retryAfter, nil
	}
	return true, 0, nil
}

// RateLimitDistributed enforces config per key against a shared
// WindowLimiter. Limiter errors fail open: an unreachable counter store must
// not take the API down with it.
func RateLimitDistributed(config RateLimitConfig, keyExtractor KeyExtractor, limiter WindowLimiter) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			key := keyExtractor(r)
			if key == "" {
				log.Warn("rate limit: no key extracted, allowing request")
				next.ServeHTTP(w, r)
				return
			}

			allowed, retryAfter, err := limiter.Allow(ctx, key, config.RequestsPerWindow, config.Window)
			if err != nil {
				log.Warn("rate limit store unavailable, allowing request", "err", err)
				next.ServeHTTP(w, r)
				return
			}

			if !allowed {
				retrySecs := max(int(retryAfter.Seconds()), 1)
				writeRateLimited(w, config, retrySecs)

				log.Warn("rate limit exceeded",
					"key", key,
					"endpoint", r.URL.Path,
					"retry_after", retrySecs,
				)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
