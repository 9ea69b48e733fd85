// Package wordpress is a typed client for the WordPress REST API
// (/wp-json/wp/v2). Every request runs through the site's circuit breaker;
// reads go through the response cache when one is configured.
package wordpress

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/docdyhr/mcp-wordpress-sub005/pkg/cache"
	"github.com/docdyhr/mcp-wordpress-sub005/pkg/circuitbreaker"
)

const apiRoot = "/wp-json/wp/v2"

type HTTPTransport interface {
	Do(req *http.Request) (*http.Response, error)
}

type Options struct {
	// Override for testing the HTTP client
	HTTPClient HTTPTransport
	// Structured logger using slog package
	Logger *slog.Logger
	// Breaker guarding this site; one is created ad hoc when nil.
	Breaker *circuitbreaker.CircuitBreaker
	// Optional read-through cache for GET responses.
	Cache *cache.Cache
}

type Client struct {
	siteID  string
	baseURL string
	auth    Authenticator
	client  HTTPTransport
	logger  *slog.Logger
	breaker *circuitbreaker.CircuitBreaker
	cache   *cache.Cache
}

func NewClient(siteID, baseURL string, auth Authenticator, opts Options) *Client {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(
		slog.String("component", "wordpress"),
		slog.String("site", siteID),
	)

	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{}
	}

	breaker := opts.Breaker
	if breaker == nil {
		breaker = circuitbreaker.New(circuitbreaker.Config{
			Name:      BreakerName(siteID),
			IsFailure: IsDependencyFailure,
		})
	}

	return &Client{
		siteID:  siteID,
		baseURL: strings.TrimRight(baseURL, "/"),
		auth:    auth,
		client:  client,
		logger:  logger,
		breaker: breaker,
		cache:   opts.Cache,
	}
}

// SiteID returns the identifier this client was built for.
func (c *Client) SiteID() string { return c.siteID }

// Breaker exposes the breaker guarding this site, for diagnostics.
func (c *Client) Breaker() *circuitbreaker.CircuitBreaker { return c.breaker }

// Ping verifies the site answers on its API root.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.doJSON(ctx, http.MethodGet, "", nil, nil)
	return err
}

// get performs a cached read and decodes the payload into out.
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	key := cache.Key(c.siteID, path, query)
	if c.cache != nil {
		if payload, ok := c.cache.Get(ctx, key); ok {
			c.logger.Debug("cache hit", slog.String("key", key))
			return json.Unmarshal(payload, out)
		}
	}

	payload, err := c.doJSON(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return err
	}
	if c.cache != nil {
		c.cache.Set(ctx, key, payload)
	}
	return json.Unmarshal(payload, out)
}

// write performs a mutating request and invalidates cached reads under the
// resource path.
func (c *Client) write(ctx context.Context, method, path string, query url.Values, body, out any, invalidate string) error {
	payload, err := c.doJSON(ctx, method, path, query, body)
	if err != nil {
		return err
	}
	if c.cache != nil && invalidate != "" {
		c.cache.Invalidate(ctx, cache.Prefix(c.siteID, invalidate))
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(payload, out)
}

func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, body any) ([]byte, error) {
	var (
		encoded []byte
		err     error
	)
	if body != nil {
		encoded, err = json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
	}
	return c.doRaw(ctx, method, path, query, encoded, "application/json", nil)
}

// doRaw runs one API request through the circuit breaker.
func (c *Client) doRaw(ctx context.Context, method, path string, query url.Values, body []byte, contentType string, extra http.Header) ([]byte, error) {
	result, err := c.breaker.Execute(ctx, func(ctx context.Context) (any, error) {
		return c.roundTrip(ctx, method, path, query, body, contentType, extra)
	})
	if err != nil {
		return nil, err
	}
	return result.([]byte), nil
}

func (c *Client) roundTrip(ctx context.Context, method, path string, query url.Values, body []byte, contentType string, extra http.Header) (any, error) {
	endpoint := c.baseURL + apiRoot + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", contentType)
	}
	for name, values := range extra {
		for _, v := range values {
			req.Header.Add(name, v)
		}
	}
	if c.auth != nil {
		if err := c.auth.Apply(req); err != nil {
			return nil, fmt.Errorf("apply auth: %w", err)
		}
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	latency := time.Since(start)
	if err != nil {
		c.logger.Error("request failed",
			slog.String("method", method),
			slog.String("path", path),
			slog.Duration("latency", latency),
			slog.Any("error", err),
		)
		return nil, fmt.Errorf("wordpress request: %w", err)
	}
	defer resp.Body.Close()

	respBytes, _ := io.ReadAll(resp.Body)

	c.logger.Debug("response received",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", resp.StatusCode),
		slog.Duration("latency", latency),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, decodeAPIError(resp.StatusCode, respBytes)
	}
	return respBytes, nil
}

func decodeAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: status, Message: http.StatusText(status)}

	var envelope wpErrorBody
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Code != "" {
		apiErr.Code = envelope.Code
		apiErr.Message = envelope.Message
	}
	return apiErr
}
