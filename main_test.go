package main

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/docdyhr/mcp-wordpress-sub005/internal/config"
)

type routeTest struct {
	description  string
	method       string
	route        string
	expectedCode int
	bodyContains string
}

func TestRoutes(t *testing.T) {
	site := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer site.Close()

	prev := config.AppConfig
	config.AppConfig.WordPress.SiteURL = site.URL
	config.AppConfig.WordPress.Username = "admin"
	config.AppConfig.WordPress.AppPassword = "xxxx yyyy"
	config.AppConfig.Redis.Addr = "127.0.0.1:1" // nothing there; cache degrades
	defer func() { config.AppConfig = prev }()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	app, err := buildApp(context.Background(), logger)
	if err != nil {
		t.Fatalf("buildApp error: %v", err)
	}

	tests := []routeTest{
		{
			description:  "health route",
			method:       http.MethodGet,
			route:        "/health",
			expectedCode: http.StatusOK,
			bodyContains: `"status":"ok"`,
		},
		{
			description:  "tool catalog",
			method:       http.MethodGet,
			route:        "/v1/tools",
			expectedCode: http.StatusOK,
			bodyContains: "wp_list_posts",
		},
		{
			description:  "breaker status",
			method:       http.MethodGet,
			route:        "/v1/status",
			expectedCode: http.StatusOK,
			bodyContains: `"healthy":true`,
		},
		{
			description:  "non existing route",
			method:       http.MethodGet,
			route:        "/i-dont-exist",
			expectedCode: http.StatusNotFound,
		},
		{
			description:  "unknown tool",
			method:       http.MethodPost,
			route:        "/v1/tools/wp_make_coffee",
			expectedCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			req, err := http.NewRequest(tt.method, tt.route, nil)
			if err != nil {
				t.Fatalf("http.NewRequest error: %v", err)
			}

			resp, err := app.Test(req, -1)
			if err != nil {
				t.Fatalf("app.Test error: %v", err)
			}
			defer resp.Body.Close()

			bodyBytes, _ := io.ReadAll(resp.Body)
			body := strings.TrimSpace(string(bodyBytes))

			if resp.StatusCode != tt.expectedCode {
				t.Fatalf(
					"expected status %d, got %d. body=%q",
					tt.expectedCode,
					resp.StatusCode,
					body,
				)
			}

			if tt.bodyContains != "" && !strings.Contains(body, tt.bodyContains) {
				t.Fatalf("expected body to contain %q, got %q", tt.bodyContains, body)
			}
		})
	}
}

func TestSiteAuthMethods(t *testing.T) {
	cases := []struct {
		method  string
		wantErr bool
	}{
		{method: "", wantErr: false},
		{method: "app-password", wantErr: false},
		{method: "basic", wantErr: false},
		{method: "api-key", wantErr: false},
		{method: "oauth2", wantErr: true}, // no token URL
		{method: "carrier-pigeon", wantErr: true},
	}

	for _, tc := range cases {
		_, err := siteAuth(context.Background(), tc.method, "admin", "secret", "")
		if tc.wantErr && err == nil {
			t.Errorf("siteAuth(%q) expected error, got nil", tc.method)
		}
		if !tc.wantErr && err != nil {
			t.Errorf("siteAuth(%q) unexpected error: %v", tc.method, err)
		}
	}
}
