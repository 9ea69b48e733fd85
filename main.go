package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/docdyhr/mcp-wordpress-sub005/api"
	"github.com/docdyhr/mcp-wordpress-sub005/internal/config"
	"github.com/docdyhr/mcp-wordpress-sub005/internal/logger"
	"github.com/docdyhr/mcp-wordpress-sub005/internal/otel"
	"github.com/docdyhr/mcp-wordpress-sub005/pkg/cache"
	"github.com/docdyhr/mcp-wordpress-sub005/pkg/circuitbreaker"
	"github.com/docdyhr/mcp-wordpress-sub005/pkg/redis"
	"github.com/docdyhr/mcp-wordpress-sub005/pkg/tools"
	"github.com/docdyhr/mcp-wordpress-sub005/pkg/wordpress"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownOtel, err := otel.InitOtel(ctx)
	if err != nil {
		log.Println(err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownOtel == nil {
			return
		}
		if shutdownErr := shutdownOtel(shutdownCtx); shutdownErr != nil {
			log.Printf("Error during shutdown: %v", shutdownErr)
		}
	}()

	logger.Setup(os.Stdout)

	app, err := buildApp(ctx, logger.Logger)
	if err != nil {
		logger.Logger.Error("failed to build app", slog.Any("error", err))
		return
	}

	if err := runServer(ctx, app, ":"+config.AppConfig.Port); err != nil {
		logger.Logger.Error("server error", slog.Any("error", err))
	}
}

// siteAuth picks the authenticator for one site's configured method. For
// oauth2 the username and app password carry the client id and secret,
// and tokenURL is the token endpoint.
func siteAuth(ctx context.Context, method, username, appPassword, tokenURL string) (wordpress.Authenticator, error) {
	switch method {
	case "", "app-password":
		return wordpress.AppPasswordAuth{Username: username, AppPassword: appPassword}, nil
	case "basic":
		return wordpress.BasicAuth{Username: username, Password: appPassword}, nil
	case "jwt":
		return wordpress.NewJWTAuth(appPassword)
	case "api-key":
		return wordpress.APIKeyAuth{Key: appPassword}, nil
	case "oauth2":
		if tokenURL == "" {
			return nil, fmt.Errorf("oauth2 auth needs a token URL")
		}
		return wordpress.NewOAuth2Auth(ctx, &clientcredentials.Config{
			ClientID:     username,
			ClientSecret: appPassword,
			TokenURL:     tokenURL,
		}), nil
	default:
		return nil, fmt.Errorf("unsupported auth method %q", method)
	}
}

func buildClients(ctx context.Context, log *slog.Logger, breakers *circuitbreaker.Registry, respCache *cache.Cache) (map[string]*wordpress.Client, string, error) {
	cfg := config.AppConfig
	clients := make(map[string]*wordpress.Client)
	defaultSite := ""

	if cfg.WordPress.SiteURL != "" {
		auth, err := siteAuth(ctx, cfg.WordPress.AuthMethod, cfg.WordPress.Username, cfg.WordPress.AppPassword, cfg.WordPress.TokenURL)
		if err != nil {
			return nil, "", fmt.Errorf("default site: %w", err)
		}
		clients["default"] = newSiteClient("default", cfg.WordPress.SiteURL, auth, log, breakers, respCache)
		defaultSite = "default"
	}

	sites, err := config.LoadSites()
	if err != nil {
		return nil, "", err
	}
	for _, s := range sites {
		auth, err := siteAuth(ctx, s.AuthMethod, s.Username, s.AppPassword, s.TokenURL)
		if err != nil {
			return nil, "", fmt.Errorf("site %s: %w", s.ID, err)
		}
		clients[s.ID] = newSiteClient(s.ID, s.URL, auth, log, breakers, respCache)
		if defaultSite == "" {
			defaultSite = s.ID
		}
	}

	if len(clients) == 0 {
		return nil, "", fmt.Errorf("no WordPress sites configured: set WORDPRESS_SITE_URL or WORDPRESS_SITES_FILE")
	}
	return clients, defaultSite, nil
}

func newSiteClient(id, url string, auth wordpress.Authenticator, log *slog.Logger, breakers *circuitbreaker.Registry, respCache *cache.Cache) *wordpress.Client {
	b := config.AppConfig.Breaker
	breaker := wordpress.NewSiteBreaker(breakers, id, circuitbreaker.Config{
		FailureThreshold: b.FailureThreshold,
		ResetTimeout:     b.ResetTimeout,
		SuccessThreshold: b.SuccessThreshold,
		FailureWindow:    b.FailureWindow,
		Timeout:          b.Timeout,
	}, log)

	return wordpress.NewClient(id, url, auth, wordpress.Options{
		Logger:  log,
		Breaker: breaker,
		Cache:   respCache,
	})
}

func buildApp(ctx context.Context, log *slog.Logger) (*fiber.App, error) {
	cfg := config.AppConfig

	rdb := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr}, log)
	respCache := cache.New(rdb, cfg.Cache.TTL, log)

	breakers := circuitbreaker.NewRegistry()

	clients, defaultSite, err := buildClients(ctx, log, breakers, respCache)
	if err != nil {
		return nil, err
	}

	registry := tools.NewRegistry(log)
	toolset := tools.NewToolset(clients, defaultSite)
	if err := toolset.Register(registry); err != nil {
		return nil, err
	}

	log.Info("serving WordPress tools",
		slog.Int("sites", len(clients)),
		slog.Int("tools", len(registry.List())),
		slog.String("defaultSite", defaultSite),
	)

	return api.New(&api.Config{
		Logger:   log,
		Tools:    registry,
		Breakers: breakers,
		Redis:    rdb,
		APIKey:   cfg.APIKey,
	})
}

func runServer(ctx context.Context, app *fiber.App, addr string) error {
	srvErr := make(chan error, 1)

	go func() {
		srvErr <- app.Listen(addr)
	}()

	select {
	case err := <-srvErr:
		return err
	case <-ctx.Done():
	}

	if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
		return fmt.Errorf("error during shutdown: %w", err)
	}
	return nil
}
