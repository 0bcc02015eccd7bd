package middleware

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmlee/fantasy-shop-backend/internal/errors"
	"github.com/redis/go-redis/v9"
)

// RateLimitMiddleware enforces a fixed-window request limit per client IP,
// backed by Redis. Used on the auth endpoints to slow down credential
// stuffing. If Redis is unreachable the request is let through; login must
// not fail because the limiter store is down.
type RateLimitMiddleware struct {
	client *redis.Client
	limit  int
	window time.Duration
}

func NewRateLimitMiddleware(client *redis.Client, limit int, window time.Duration) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		client: client,
		limit:  limit,
		window: window,
	}
}

// Limit returns the gin handler applying the limit to a named endpoint group
func (m *RateLimitMiddleware) Limit(scope string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if m.client == nil || m.limit <= 0 {
			c.Next()
			return
		}

		log := GetLoggerFromContext(c)
		key := fmt.Sprintf("ratelimit:%s:%s", scope, c.ClientIP())

		count, err := m.client.Incr(c.Request.Context(), key).Result()
		if err != nil {
			log.Warn("Rate limiter unavailable, allowing request", map[string]interface{}{
				"scope": scope,
				"error": err.Error(),
			})
			c.Next()
			return
		}

		// First hit in the window starts the window clock
		if count == 1 {
			if err := m.client.Expire(c.Request.Context(), key, m.window).Err(); err != nil {
				log.Warn("Failed to set rate limit window", map[string]interface{}{
					"scope": scope,
					"error": err.Error(),
				})
			}
		}

		if count > int64(m.limit) {
			log.Warn("Rate limit exceeded", map[string]interface{}{
				"scope": scope,
				"ip":    c.ClientIP(),
				"count": count,
				"limit": m.limit,
			})
			errors.Respond(c, errors.RateLimitExceeded)
			c.Abort()
			return
		}

		c.Next()
	}
}
