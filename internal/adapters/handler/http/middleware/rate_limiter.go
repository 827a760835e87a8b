package middleware

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RateLimiter is a fixed-window counter per client IP kept in redis.
// Redis failures let the request through.
type RateLimiter struct {
	rdb    *redis.Client
	limit  int
	window time.Duration
	prefix string
}

func NewRateLimiter(rdb *redis.Client, limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		rdb:    rdb,
		limit:  limit,
		window: window,
		prefix: "rate_limit:",
	}
}

// hit counts one request and returns the count in the current window and
// the time left in it.
func (l *RateLimiter) hit(ctx context.Context, key string) (int64, time.Duration, error) {
	pipe := l.rdb.TxPipeline()
	incr := pipe.Incr(ctx, key)
	ttl := pipe.TTL(ctx, key)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, 0, err
	}

	remaining := ttl.Val()
	if remaining < 0 {
		if err := l.rdb.Expire(ctx, key, l.window).Err(); err != nil {
			l.rdb.Del(ctx, key)
			return 0, 0, fmt.Errorf("expire %s: %w", key, err)
		}
		remaining = l.window
	}
	return incr.Val(), remaining, nil
}

func (l *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := l.prefix + c.ClientIP()

		count, ttl, err := l.hit(c.Request.Context(), key)
		if err != nil {
			log.Printf("[CACHE] Rate limiter skipped: %v", err)
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(l.limit))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(max(0, int64(l.limit)-count), 10))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(ttl).Unix(), 10))

		if count > int64(l.limit) {
			rateLimited.Inc()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"status":     "error",
				"message":    "Too many requests. Slow down!",
				"retry_in_s": int(ttl.Seconds()),
			})
			return
		}

		c.Next()
	}
}
