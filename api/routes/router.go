package routes

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	goredis "github.com/redis/go-redis/v9"

	"github.com/docdyhr/mcp-wordpress-sub005/api/handlers"
	"github.com/docdyhr/mcp-wordpress-sub005/pkg/circuitbreaker"
	"github.com/docdyhr/mcp-wordpress-sub005/pkg/tools"
)

func RegisterRoutes(app fiber.Router, reg *tools.Registry, breakers *circuitbreaker.Registry, rdb *goredis.Client, logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}

	app.Get("/health", handlers.Health(rdb))

	v1 := app.Group("/v1")

	v1.Get("/tools", handlers.ListTools(reg))
	v1.Post("/tools/:name", handlers.CallTool(reg))

	v1.Get("/status", handlers.Status(breakers))
	v1.Post("/breakers/reset", handlers.ResetBreakers(breakers))
}
