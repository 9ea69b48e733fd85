package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	goredis "github.com/redis/go-redis/v9"

	"github.com/docdyhr/mcp-wordpress-sub005/pkg/choice"
	"github.com/docdyhr/mcp-wordpress-sub005/pkg/circuitbreaker"
	redisLocal "github.com/docdyhr/mcp-wordpress-sub005/pkg/redis"
)

// Health returns a 2** status when the service is running properly.
// Redis being down is reported but not fatal: the cache degrades, the
// service keeps serving.
func Health(rdb *goredis.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
		defer cancel()

		cacheOK := true
		if rdb != nil {
			if err := redisLocal.Ping(ctx, rdb); err != nil {
				cacheOK = false
			}
		}

		return c.JSON(fiber.Map{
			"status": "ok",
			"cache":  cacheOK,
		})
	}
}

// Status reports the breaker registry: an aggregate summary plus
// per-site stats.
func Status(reg *circuitbreaker.Registry) fiber.Handler {
	return func(c *fiber.Ctx) error {
		summary := reg.HealthSummary()

		status := choice.Ternary(summary.Healthy, fiber.StatusOK, fiber.StatusServiceUnavailable)

		return c.Status(status).JSON(fiber.Map{
			"summary":  summary,
			"breakers": reg.AllStats(),
		})
	}
}

// ResetBreakers forces every breaker back to closed.
func ResetBreakers(reg *circuitbreaker.Registry) fiber.Handler {
	return func(c *fiber.Ctx) error {
		reg.ResetAll()
		return c.JSON(fiber.Map{
			"reset": true,
		})
	}
}
