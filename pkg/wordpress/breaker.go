package wordpress

import (
	"errors"
	"log/slog"
	"time"

	"github.com/docdyhr/mcp-wordpress-sub005/pkg/circuitbreaker"
)

// BreakerName derives the registry name for a site's breaker.
func BreakerName(siteID string) string {
	return "wordpress:" + siteID
}

// IsDependencyFailure classifies an error against WordPress's error
// vocabulary. Auth failures and missing resources are expected application
// outcomes and say nothing about the site's health; rate limiting, server
// errors and transport failures mean the dependency itself is degraded.
func IsDependencyFailure(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.IsAuth(), apiErr.IsNotFound():
			return false
		case apiErr.IsRateLimited(), apiErr.IsServerError():
			return true
		default:
			// Remaining 4xx: the request was wrong, not the site.
			return false
		}
	}
	// Anything that never produced an HTTP status is a connectivity problem.
	return true
}

// NewSiteBreaker registers (or returns) the breaker guarding one WordPress
// site. Non-zero fields of overrides replace the defaults; the name and
// failure classifier are always derived from the site.
func NewSiteBreaker(reg *circuitbreaker.Registry, siteID string, overrides circuitbreaker.Config, logger *slog.Logger) *circuitbreaker.CircuitBreaker {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(
		slog.String("component", "circuitbreaker"),
		slog.String("site", siteID),
	)

	cfg := overrides
	cfg.Name = BreakerName(siteID)
	cfg.IsFailure = IsDependencyFailure
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.OnOpen == nil {
		cfg.OnOpen = func(name string, failures int) {
			logger.Warn("circuit opened",
				slog.String("breaker", name),
				slog.Int("failures", failures),
			)
		}
	}
	if cfg.OnClose == nil {
		cfg.OnClose = func(name string) {
			logger.Info("circuit closed",
				slog.String("breaker", name),
			)
		}
	}

	return reg.GetBreaker(cfg)
}
