package wordpress

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docdyhr/mcp-wordpress-sub005/pkg/circuitbreaker"
)

func TestIsDependencyFailure(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		countable bool
	}{
		{"unauthorized", &APIError{StatusCode: http.StatusUnauthorized}, false},
		{"forbidden", &APIError{StatusCode: http.StatusForbidden}, false},
		{"not found", &APIError{StatusCode: http.StatusNotFound}, false},
		{"bad request", &APIError{StatusCode: http.StatusBadRequest}, false},
		{"rate limited", &APIError{StatusCode: http.StatusTooManyRequests}, true},
		{"server error", &APIError{StatusCode: http.StatusInternalServerError}, true},
		{"bad gateway", &APIError{StatusCode: http.StatusBadGateway}, true},
		{"transport failure", errors.New("dial tcp: connection refused"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.countable, IsDependencyFailure(tt.err))
		})
	}
}

func TestNewSiteBreaker_RegistersUnderDerivedName(t *testing.T) {
	reg := circuitbreaker.NewRegistry()

	cb := NewSiteBreaker(reg, "site1", circuitbreaker.Config{}, nil)
	require.Equal(t, "wordpress:site1", cb.Name())

	found, ok := reg.Get("wordpress:site1")
	require.True(t, ok)
	assert.Same(t, cb, found)

	again := NewSiteBreaker(reg, "site1", circuitbreaker.Config{}, nil)
	assert.Same(t, cb, again, "the registry hands back the existing breaker")
}

func TestSiteBreaker_NotFoundStaysClosedRateLimitOpens(t *testing.T) {
	reg := circuitbreaker.NewRegistry()
	ctx := context.Background()

	notFoundErr := &APIError{StatusCode: http.StatusNotFound, Code: "rest_post_invalid_id", Message: "Invalid post ID."}
	rateLimitErr := &APIError{StatusCode: http.StatusTooManyRequests, Message: "Too Many Requests"}

	cb := NewSiteBreaker(reg, "site1", circuitbreaker.Config{FailureThreshold: 1}, nil)

	_, err := cb.Execute(ctx, func(ctx context.Context) (any, error) { return nil, notFoundErr })
	require.ErrorIs(t, err, notFoundErr)
	require.Equal(t, circuitbreaker.StateClosed, cb.State(), "a 404 must not degrade circuit health")

	_, err = cb.Execute(ctx, func(ctx context.Context) (any, error) { return nil, rateLimitErr })
	require.ErrorIs(t, err, rateLimitErr)
	assert.Equal(t, circuitbreaker.StateOpen, cb.State(), "a 429 signals the site is degraded")
}
