package middleware

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/prasadvy/hotel-room-booking/internal/config"
)

// RateLimit returns a fixed-window limiter backed by Redis, keyed by
// client IP and route.  The first request in a window INCRs the counter
// and sets its expiry; requests past the limit get 429 with a
// Retry-After header.  A nil Redis client or a Redis error lets the
// request through — the limiter protects against abuse, it must never
// take the API down with it.
func RateLimit(rdb *redis.Client, cfg config.RateLimitConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if rdb == nil || !cfg.Enabled {
				return next(c)
			}

			window := time.Now().Unix() / int64(cfg.Window.Seconds())
			key := fmt.Sprintf("%s:%s:%s:%d", cfg.Prefix, c.RealIP(), c.Path(), window)

			ctx := c.Request().Context()
			n, err := rdb.Incr(ctx, key).Result()
			if err != nil {
				log.Printf("ratelimit: incr failed: %v", err)
				return next(c)
			}
			if n == 1 {
				if err := rdb.Expire(ctx, key, cfg.Window).Err(); err != nil {
					log.Printf("ratelimit: expire failed: %v", err)
				}
			}
			if n > int64(cfg.Limit) {
				c.Response().Header().Set("Retry-After", fmt.Sprintf("%d", int(cfg.Window.Seconds())))
				return c.JSON(http.StatusTooManyRequests, echo.Map{"error": "rate limit exceeded"})
			}
			return next(c)
		}
	}
}
