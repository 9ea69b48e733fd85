package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type OtlpConfig struct {
	Endpoint string `env:"ENDPOINT" envDefault:"localhost:4317"`
	Insecure bool   `env:"INSECURE" envDefault:"false"`
}

type OtelConfig struct {
	OtlpExporter OtlpConfig `envPrefix:"EXPORTER_OTLP_"`
}

type RedisConfig struct {
	Addr string `env:"ADDR" envDefault:"localhost:6379"`
}

type CacheConfig struct {
	TTL time.Duration `env:"TTL" envDefault:"5m"`
}

// BreakerConfig tunes the per-site circuit breakers.
type BreakerConfig struct {
	FailureThreshold int           `env:"FAILURE_THRESHOLD" envDefault:"5"`
	ResetTimeout     time.Duration `env:"RESET_TIMEOUT" envDefault:"30s"`
	SuccessThreshold int           `env:"SUCCESS_THRESHOLD" envDefault:"2"`
	FailureWindow    time.Duration `env:"FAILURE_WINDOW" envDefault:"1m"`
	Timeout          time.Duration `env:"TIMEOUT" envDefault:"30s"`
}

// WordPressConfig describes the default site plus an optional sites file
// for multi-site setups.
type WordPressConfig struct {
	SiteURL     string `env:"SITE_URL"`
	Username    string `env:"USERNAME"`
	AppPassword string `env:"APP_PASSWORD"`
	AuthMethod  string `env:"AUTH_METHOD" envDefault:"app-password"`
	// TokenURL is the token endpoint for the oauth2 auth method; Username
	// and AppPassword then carry the client id and secret.
	TokenURL  string `env:"TOKEN_URL"`
	SitesFile string `env:"SITES_FILE"`
}

type Config struct {
	Environment string          `env:"ENVIRONMENT" envDefault:"development"`
	Port        string          `env:"PORT" envDefault:"8080"`
	APIKey      string          `env:"API_KEY"`
	Redis       RedisConfig     `envPrefix:"REDIS_"`
	Cache       CacheConfig     `envPrefix:"CACHE_"`
	Breaker     BreakerConfig   `envPrefix:"BREAKER_"`
	WordPress   WordPressConfig `envPrefix:"WORDPRESS_"`
	Otel        OtelConfig      `envPrefix:"OTEL_"`
}

var AppConfig Config

// Site is one entry from the sites file.
type Site struct {
	ID          string `json:"id"`
	URL         string `json:"url"`
	Username    string `json:"username"`
	AppPassword string `json:"appPassword"`
	AuthMethod  string `json:"authMethod"`
	TokenURL    string `json:"tokenUrl,omitempty"`
}

// LoadSites reads the multi-site definitions from the configured sites
// file. A missing path means single-site mode.
func LoadSites() ([]Site, error) {
	path := AppConfig.WordPress.SitesFile
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading sites file %s: %w", path, err)
	}
	var sites []Site
	if err := json.Unmarshal(data, &sites); err != nil {
		return nil, fmt.Errorf("parsing sites file %s: %w", path, err)
	}
	for i, s := range sites {
		if s.ID == "" || s.URL == "" {
			return nil, fmt.Errorf("sites file %s: entry %d needs id and url", path, i)
		}
	}
	return sites, nil
}

func loadEnv(filename string) error {
	err := godotenv.Load(filename)
	if err == nil || errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("error loading file %s: %w", filename, err)
}

func init() {
	var err error
	var errs error

	environment := getEnv("ENVIRONMENT", "development")
	if environment != "" {
		file := ".env." + environment + ".local"
		err = loadEnv(file)
		if err != nil {
			errs = errors.Join(
				errs,
				fmt.Errorf("error loading %s: %w", file, err),
			)
		}
	}

	err = loadEnv(".env.local")
	if err != nil {
		errs = errors.Join(
			errs,
			fmt.Errorf("error loading .env.local: %w", err),
		)
	}

	err = loadEnv(".env")
	if err != nil {
		errs = errors.Join(
			errs,
			fmt.Errorf("error loading .env: %w", err),
		)
	}

	err = env.Parse(&AppConfig)
	if err != nil {
		errs = errors.Join(
			errs,
			fmt.Errorf("error parsing env: %w", err),
		)
	}

	if errs != nil {
		panic(errs)
	}
}

func getEnv(key, fallback string) string {
	// returns value of associated env key
	value := os.Getenv(key)

	if value != "" {
		return value
	}

	return fallback
}

func IsProd() bool {
	return AppConfig.Environment == "production"
}
