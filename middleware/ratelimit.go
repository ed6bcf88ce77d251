package middleware

import (
	"fmt"
	"strconv"
	"time"

	"github.com/eventhub-id/eventhub-api/utils"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RateLimit allows at most limit requests per window for each client IP
// (and user, when authenticated) within scope. Counters live in Redis so
// every instance shares them. Without Redis requests are let through.
func RateLimit(client *redis.Client, scope string, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if client == nil {
			c.Next()
			return
		}

		key := rateLimitKey(c, scope)
		ctx := c.Request.Context()

		count, err := client.Incr(ctx, key).Result()
		if err != nil {
			utils.Logger().Warn("rate limiter unavailable, allowing request",
				zap.String("scope", scope), zap.Error(err))
			c.Next()
			return
		}
		if count == 1 {
			if err := client.Expire(ctx, key, window).Err(); err != nil {
				utils.Logger().Warn("rate limiter expire failed", zap.String("key", key), zap.Error(err))
			}
		}

		remaining := int64(limit) - count
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Limit", strconv.Itoa(limit))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

		if count > int64(limit) {
			if ttl, err := client.TTL(ctx, key).Result(); err == nil && ttl > 0 {
				c.Header("Retry-After", strconv.Itoa(int(ttl.Round(time.Second).Seconds())))
			}
			utils.Logger().Warn("rate limit exceeded",
				zap.String("scope", scope),
				zap.String("ip", c.ClientIP()),
				zap.Int64("count", count))
			_ = c.Error(utils.TooManyRequestsError(utils.ErrRateLimited, nil))
			c.Abort()
			return
		}
		c.Next()
	}
}

func rateLimitKey(c *gin.Context, scope string) string {
	key := fmt.Sprintf("ratelimit:%s:%s", scope, c.ClientIP())
	if user, ok := CurrentUser(c); ok {
		key = fmt.Sprintf("%s:%d", key, user.ID)
	}
	return key
}
