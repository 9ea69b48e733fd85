package api

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docdyhr/mcp-wordpress-sub005/pkg/circuitbreaker"
	"github.com/docdyhr/mcp-wordpress-sub005/pkg/tools"
	"github.com/docdyhr/mcp-wordpress-sub005/pkg/wordpress"
)

func newTestApp(t *testing.T, apiKey string) (*Config, *circuitbreaker.Registry, *tools.Registry) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	breakers := circuitbreaker.NewRegistry()
	reg := tools.NewRegistry(logger)

	return &Config{
		Logger:   logger,
		Tools:    reg,
		Breakers: breakers,
		APIKey:   apiKey,
	}, breakers, reg
}

func TestHealthEndpoint(t *testing.T) {
	cfg, _, _ := newTestApp(t, "")
	app, err := New(cfg)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/health", http.NoBody)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestListAndCallTool(t *testing.T) {
	cfg, _, reg := newTestApp(t, "")
	require.NoError(t, reg.Register(tools.Tool{
		Name:        "echo",
		Description: "repeats its input",
		Handler: func(ctx context.Context, params map[string]any) (string, error) {
			s, _ := params["text"].(string)
			return "echo: " + s, nil
		},
	}))

	app, err := New(cfg)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/v1/tools", http.NoBody)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var listBody struct {
		Tools []tools.Tool `json:"tools"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&listBody))
	require.Len(t, listBody.Tools, 1)
	assert.Equal(t, "echo", listBody.Tools[0].Name)

	callReq := httptest.NewRequest(
		http.MethodPost,
		"/v1/tools/echo",
		strings.NewReader(`{"text":"hi"}`),
	)
	callReq.Header.Set("Content-Type", "application/json")

	callResp, err := app.Test(callReq)
	require.NoError(t, err)
	defer callResp.Body.Close()
	require.Equal(t, http.StatusOK, callResp.StatusCode)

	var callBody struct {
		Tool   string `json:"tool"`
		Result string `json:"result"`
	}
	require.NoError(t, json.NewDecoder(callResp.Body).Decode(&callBody))
	assert.Equal(t, "echo: hi", callBody.Result)
}

func TestUnknownToolIs404(t *testing.T) {
	cfg, _, _ := newTestApp(t, "")
	app, err := New(cfg)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/v1/tools/nope", http.NoBody)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestOpenBreakerIs503(t *testing.T) {
	cfg, _, reg := newTestApp(t, "")
	require.NoError(t, reg.Register(tools.Tool{
		Name:        "broken",
		Description: "always hits an open circuit",
		Handler: func(ctx context.Context, params map[string]any) (string, error) {
			return "", &circuitbreaker.OpenError{Circuit: "wordpress:main"}
		},
	}))

	app, err := New(cfg)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/v1/tools/broken", http.NoBody)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestUpstreamErrorKeepsStatus(t *testing.T) {
	cfg, _, reg := newTestApp(t, "")
	require.NoError(t, reg.Register(tools.Tool{
		Name:        "missing",
		Description: "always 404s upstream",
		Handler: func(ctx context.Context, params map[string]any) (string, error) {
			return "", &wordpress.APIError{
				StatusCode: http.StatusNotFound,
				Code:       "rest_post_invalid_id",
				Message:    "Invalid post ID.",
			}
		},
	}))

	app, err := New(cfg)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/v1/tools/missing", http.NoBody)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestStatusReflectsBreakerRegistry(t *testing.T) {
	cfg, breakers, _ := newTestApp(t, "")
	cb := breakers.GetBreaker(circuitbreaker.Config{Name: "wordpress:main"})

	app, err := New(cfg)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/v1/status", http.NoBody)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cb.ForceOpen()

	resp2, err := app.Test(httptest.NewRequest(http.MethodGet, "/v1/status", http.NoBody))
	require.NoError(t, err)
	defer resp2.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp2.StatusCode)

	resetResp, err := app.Test(httptest.NewRequest(http.MethodPost, "/v1/breakers/reset", http.NoBody))
	require.NoError(t, err)
	defer resetResp.Body.Close()
	require.Equal(t, http.StatusOK, resetResp.StatusCode)

	assert.Equal(t, circuitbreaker.StateClosed, cb.State())
}

func TestAPIKeyGuardsToolEndpoints(t *testing.T) {
	cfg, _, _ := newTestApp(t, "sekret")
	app, err := New(cfg)
	require.NoError(t, err)

	// health stays open
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", http.NoBody))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// tools need the key
	noKey, err := app.Test(httptest.NewRequest(http.MethodGet, "/v1/tools", http.NoBody))
	require.NoError(t, err)
	defer noKey.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, noKey.StatusCode)

	withKey := httptest.NewRequest(http.MethodGet, "/v1/tools", http.NoBody)
	withKey.Header.Set("X-API-Key", "sekret")
	ok, err := app.Test(withKey)
	require.NoError(t, err)
	defer ok.Body.Close()
	assert.Equal(t, http.StatusOK, ok.StatusCode)
}
