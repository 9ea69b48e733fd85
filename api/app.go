package api

import (
	"errors"
	"log/slog"
	"runtime/debug"

	"github.com/gofiber/contrib/otelfiber/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	goredis "github.com/redis/go-redis/v9"
	slogfiber "github.com/samber/slog-fiber"

	"github.com/docdyhr/mcp-wordpress-sub005/api/middleware"
	"github.com/docdyhr/mcp-wordpress-sub005/api/routes"
	"github.com/docdyhr/mcp-wordpress-sub005/pkg/circuitbreaker"
	"github.com/docdyhr/mcp-wordpress-sub005/pkg/tools"
	"github.com/docdyhr/mcp-wordpress-sub005/pkg/wordpress"
)

// errorHandler maps domain errors onto HTTP statuses: upstream WordPress
// failures keep their status, an open breaker is 503, a breaker timeout
// is 504, and an unknown tool is 404.
func errorHandler(logger *slog.Logger) fiber.ErrorHandler {
	return func(ctx *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError

		var apiErr *wordpress.APIError
		var openErr *circuitbreaker.OpenError
		var timeoutErr *circuitbreaker.TimeoutError
		var unknownTool *tools.UnknownToolError
		var fiberErr *fiber.Error

		switch {
		case errors.As(err, &apiErr):
			code = apiErr.StatusCode
		case errors.As(err, &openErr):
			code = fiber.StatusServiceUnavailable
		case errors.As(err, &timeoutErr):
			code = fiber.StatusGatewayTimeout
		case errors.As(err, &unknownTool):
			code = fiber.StatusNotFound
		case errors.As(err, &fiberErr):
			code = fiberErr.Code
		}

		logger.Error("request failed",
			slog.Int("status", code),
			slog.Any("error", err),
		)

		return ctx.Status(code).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
}

func stackTraceHandler(logger *slog.Logger) func(*fiber.Ctx, any) {
	return func(c *fiber.Ctx, e any) {
		stack := debug.Stack()
		logger.ErrorContext(
			c.Context(),
			"panic!",
			"stack",
			stack,
			"err",
			e,
		)
	}
}

type Config struct {
	Logger   *slog.Logger
	Tools    *tools.Registry
	Breakers *circuitbreaker.Registry
	Redis    *goredis.Client
	// APIKey protects the tool endpoints when set; empty disables auth.
	APIKey string
}

func New(cfg *Config) (*fiber.App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	fiberConfig := fiber.Config{
		ErrorHandler: errorHandler(logger),
	}

	app := fiber.New(fiberConfig)

	app.Use(recover.New(recover.Config{
		Next:              nil,
		EnableStackTrace:  true,
		StackTraceHandler: stackTraceHandler(logger),
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "*",
		AllowMethods: "*",
	}))

	app.Use(otelfiber.Middleware())

	app.Use(slogfiber.NewWithConfig(
		logger,
		slogfiber.Config{
			WithRequestID: true,
			WithSpanID:    true,
			WithTraceID:   true,
		},
	))

	if cfg.APIKey != "" {
		app.Use(middleware.APIKeyAuth(cfg.APIKey))
	}

	routes.RegisterRoutes(app, cfg.Tools, cfg.Breakers, cfg.Redis, logger)

	return app, nil
}
