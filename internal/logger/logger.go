package logger

import (
	"io"
	"log/slog"

	"github.com/docdyhr/mcp-wordpress-sub005/internal/config"
	"github.com/docdyhr/mcp-wordpress-sub005/pkg/choice"
	"github.com/gofiber/fiber/v2"
	slogfiber "github.com/samber/slog-fiber"
	slogmulti "github.com/samber/slog-multi"
	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel/sdk/log"
)

var (
	Logger     *slog.Logger
	Middleware fiber.Handler
)

func Setup(out io.Writer) {
	provider := log.NewLoggerProvider()
	otelHandler := otelslog.NewHandler(
		"mcp-wordpress",
		otelslog.WithLoggerProvider(provider),
	)

	stdoutHandler := choice.FuncTernary[slog.Handler](
		config.IsProd(),
		func() slog.Handler { return slog.NewTextHandler(out, &slog.HandlerOptions{}) },
		func() slog.Handler { return slog.NewJSONHandler(out, &slog.HandlerOptions{}) },
	)

	Logger = slog.New(
		slogmulti.Fanout(
			stdoutHandler,
			otelHandler,
		),
	)

	cfg := slogfiber.Config{
		WithRequestID: true,
		WithSpanID:    true,
		WithTraceID:   true,
	}

	Middleware = slogfiber.NewWithConfig(Logger, cfg)
}
