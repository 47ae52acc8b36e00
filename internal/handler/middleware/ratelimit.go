package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/ExactwareSolution/booktimez-app/internal/pkg/config"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RedisRateLimiter is a fixed-window per-client limiter for the public
// booking endpoint. The window counter lives in Redis so every gateway
// instance shares it.
type RedisRateLimiter struct {
	rdb      *redis.Client
	limit    int
	window   time.Duration
	failOpen bool
}

var redisFixedWindowScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return current
`)

func NewRedisRateLimiter(rdb *redis.Client, cfg config.RateLimitConfig) *RedisRateLimiter {
	limit := cfg.BookingLimit
	if limit <= 0 {
		limit = 60
	}
	window := cfg.BookingWindow
	if window <= 0 {
		window = time.Minute
	}
	return &RedisRateLimiter{
		rdb:      rdb,
		limit:    limit,
		window:   window,
		failOpen: cfg.FailOpen,
	}
}

func (rl *RedisRateLimiter) LimitBooking() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := "rl:booking:" + c.ClientIP()
		count, err := rl.incr(c.Request.Context(), key)
		if err != nil {
			slog.Warn("redis rate limiter error", "error", err.Error())
			if rl.failOpen {
				c.Next()
				return
			}
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{
				"error": "rate limiter unavailable",
			})
			return
		}
		if count > int64(rl.limit) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "rate limit exceeded",
			})
			return
		}
		c.Next()
	}
}

func (rl *RedisRateLimiter) incr(ctx context.Context, key string) (int64, error) {
	res, err := redisFixedWindowScript.Run(ctx, rl.rdb, []string{key}, rl.window.Milliseconds()).Result()
	if err != nil {
		return 0, err
	}
	switch v := res.(type) {
	case int64:
		return v, nil
	case string:
		return strconv.ParseInt(v, 10, 64)
	default:
		return 0, fmt.Errorf("unexpected redis script result type %T", res)
	}
}
