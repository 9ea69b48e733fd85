package circuitbreaker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

var errBoom = errors.New("boom")

func failingOp(ctx context.Context) (any, error) { return nil, errBoom }

func succeedingOp(ctx context.Context) (any, error) { return "ok", nil }

func TestExecute_SuccessPassesResultThrough(t *testing.T) {
	cb := New(Config{Name: "wp"})

	result, err := cb.Execute(context.Background(), succeedingOp)

	require.NoError(t, err)
	assert.Equal(t, "ok", result)

	stats := cb.Stats()
	assert.Equal(t, int64(1), stats.TotalRequests)
	assert.Equal(t, int64(1), stats.SuccessfulRequests)
	assert.Equal(t, StateClosed, stats.State)
}

func TestExecute_OpensAfterThresholdFailuresInWindow(t *testing.T) {
	clock := newFakeClock()
	cb := New(Config{Name: "wp", FailureThreshold: 3, Clock: clock})

	calls := 0
	op := func(ctx context.Context) (any, error) {
		calls++
		return nil, errBoom
	}

	for i := 0; i < 3; i++ {
		_, err := cb.Execute(context.Background(), op)
		require.ErrorIs(t, err, errBoom, "operation error must be re-raised verbatim")
	}
	require.Equal(t, StateOpen, cb.State())

	// Fourth call is rejected without touching the operation.
	_, err := cb.Execute(context.Background(), op)
	var oe *OpenError
	require.ErrorAs(t, err, &oe)
	assert.Equal(t, "wp", oe.Circuit)
	assert.Equal(t, 3, calls, "rejected call must never invoke the operation")

	stats := cb.Stats()
	assert.Equal(t, int64(1), stats.RejectedRequests)
	assert.Equal(t, int64(4), stats.TotalRequests)
}

func TestState_HalfOpenAfterResetTimeout(t *testing.T) {
	clock := newFakeClock()
	cb := New(Config{
		Name:             "wp",
		FailureThreshold: 1,
		ResetTimeout:     time.Second,
		Clock:            clock,
	})

	_, err := cb.Execute(context.Background(), failingOp)
	require.ErrorIs(t, err, errBoom)
	require.Equal(t, StateOpen, cb.State())

	clock.Advance(1100 * time.Millisecond)
	assert.Equal(t, StateHalfOpen, cb.State())
	assert.True(t, cb.IsAvailable())
}

func TestExecute_HalfOpenClosesAfterSuccessThreshold(t *testing.T) {
	clock := newFakeClock()
	var closed []string
	cb := New(Config{
		Name:             "wp",
		FailureThreshold: 1,
		SuccessThreshold: 2,
		ResetTimeout:     time.Second,
		Clock:            clock,
		OnClose:          func(name string) { closed = append(closed, name) },
	})

	_, _ = cb.Execute(context.Background(), failingOp)
	clock.Advance(2 * time.Second)
	require.Equal(t, StateHalfOpen, cb.State())

	_, err := cb.Execute(context.Background(), succeedingOp)
	require.NoError(t, err)
	require.Equal(t, StateHalfOpen, cb.State(), "one success is not enough to close")

	_, err = cb.Execute(context.Background(), succeedingOp)
	require.NoError(t, err)
	assert.Equal(t, StateClosed, cb.State())
	assert.Equal(t, []string{"wp"}, closed)
}

func TestExecute_HalfOpenFailureReopensImmediately(t *testing.T) {
	clock := newFakeClock()
	var openCounts []int
	cb := New(Config{
		Name:             "wp",
		FailureThreshold: 5,
		ResetTimeout:     time.Second,
		Clock:            clock,
		OnOpen:           func(name string, failures int) { openCounts = append(openCounts, failures) },
	})

	for i := 0; i < 5; i++ {
		_, _ = cb.Execute(context.Background(), failingOp)
	}
	require.Equal(t, StateOpen, cb.State())

	clock.Advance(2 * time.Second)
	require.Equal(t, StateHalfOpen, cb.State())

	// A single failed probe reopens without reaching the failure threshold.
	_, err := cb.Execute(context.Background(), failingOp)
	require.ErrorIs(t, err, errBoom)
	assert.Equal(t, StateOpen, cb.State())
	assert.Equal(t, []int{5, 1}, openCounts)
}

func TestExecute_FailuresOutsideWindowAreForgotten(t *testing.T) {
	clock := newFakeClock()
	cb := New(Config{
		Name:             "wp",
		FailureThreshold: 3,
		FailureWindow:    5 * time.Second,
		Clock:            clock,
	})

	_, _ = cb.Execute(context.Background(), failingOp)
	_, _ = cb.Execute(context.Background(), failingOp)

	clock.Advance(6 * time.Second)

	_, _ = cb.Execute(context.Background(), failingOp)
	assert.Equal(t, StateClosed, cb.State(), "stale failures must not count toward the threshold")
	assert.Equal(t, 1, cb.Stats().FailuresInWindow)
}

func TestExecute_ClassifierKeepsExpectedErrorsOutOfTheWindow(t *testing.T) {
	errNotFound := errors.New("not found")
	cb := New(Config{
		Name:             "wp",
		FailureThreshold: 2,
		IsFailure:        func(err error) bool { return !errors.Is(err, errNotFound) },
	})

	for i := 0; i < 10; i++ {
		_, err := cb.Execute(context.Background(), func(ctx context.Context) (any, error) {
			return nil, errNotFound
		})
		require.ErrorIs(t, err, errNotFound, "non-countable errors are still surfaced")
	}

	stats := cb.Stats()
	assert.Equal(t, StateClosed, stats.State)
	assert.Equal(t, int64(10), stats.FailedRequests, "failures are counted even when not countable")
	assert.Equal(t, 0, stats.FailuresInWindow)
}

func TestExecute_TimeoutAlwaysCountsAsFailure(t *testing.T) {
	cb := New(Config{
		Name:             "wp",
		FailureThreshold: 1,
		Timeout:          20 * time.Millisecond,
		// A classifier that counts nothing; timeouts must bypass it.
		IsFailure: func(error) bool { return false },
	})

	_, err := cb.Execute(context.Background(), func(ctx context.Context) (any, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	})

	var te *TimeoutError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, "wp", te.Circuit)
	assert.Equal(t, 20*time.Millisecond, te.Timeout)
	assert.Equal(t, StateOpen, cb.State())
}

func TestExecute_CallerCancellationIsNotATimeout(t *testing.T) {
	cb := New(Config{Name: "wp", Timeout: time.Minute})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := cb.Execute(ctx, func(ctx context.Context) (any, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	})

	require.ErrorIs(t, err, context.Canceled)
	assert.False(t, IsTimeout(err))
}

func TestReset_ReturnsToClosedWithZeroedCounters(t *testing.T) {
	cb := New(Config{Name: "wp", FailureThreshold: 1})

	_, _ = cb.Execute(context.Background(), failingOp)
	_, _ = cb.Execute(context.Background(), failingOp) // rejected
	require.Equal(t, StateOpen, cb.State())

	cb.Reset()

	stats := cb.Stats()
	assert.Equal(t, StateClosed, stats.State)
	assert.Zero(t, stats.TotalRequests)
	assert.Zero(t, stats.FailedRequests)
	assert.Zero(t, stats.RejectedRequests)
	assert.Zero(t, stats.FailuresInWindow)
}

func TestForceOpenAndForceClose(t *testing.T) {
	cb := New(Config{Name: "wp"})

	cb.ForceOpen()
	require.Equal(t, StateOpen, cb.State())
	require.False(t, cb.IsAvailable())

	_, err := cb.Execute(context.Background(), succeedingOp)
	require.True(t, IsOpen(err))

	cb.ForceClose()
	assert.Equal(t, StateClosed, cb.State())

	result, err := cb.Execute(context.Background(), succeedingOp)
	require.NoError(t, err)
	assert.Equal(t, "ok", result)

	stats := cb.Stats()
	assert.Equal(t, int64(1), stats.RejectedRequests, "forced transitions must not reset counters")
}

func TestCallbackPanicsAreSwallowed(t *testing.T) {
	clock := newFakeClock()
	cb := New(Config{
		Name:             "wp",
		FailureThreshold: 1,
		SuccessThreshold: 1,
		ResetTimeout:     time.Second,
		Clock:            clock,
		OnOpen:           func(string, int) { panic("instrumentation bug") },
		OnClose:          func(string) { panic("instrumentation bug") },
	})

	_, err := cb.Execute(context.Background(), failingOp)
	require.ErrorIs(t, err, errBoom, "callback panic must not mask the real outcome")
	require.Equal(t, StateOpen, cb.State())

	clock.Advance(2 * time.Second)
	_, err = cb.Execute(context.Background(), succeedingOp)
	require.NoError(t, err)
	assert.Equal(t, StateClosed, cb.State())
}

func TestExecute_OperationPanicRethrownOnCallerGoroutine(t *testing.T) {
	cb := New(Config{Name: "wp", FailureThreshold: 1})

	panicky := func(ctx context.Context) (any, error) {
		panic("boom from operation")
	}

	var recovered any
	func() {
		defer func() { recovered = recover() }()
		_, _ = cb.Execute(context.Background(), panicky)
	}()

	require.Equal(t, "boom from operation", recovered,
		"operation panic must surface on the caller's goroutine, not kill the process")

	// The panic counted as a failure and, with threshold 1, opened the circuit.
	assert.Equal(t, StateOpen, cb.State())
	assert.Equal(t, int64(1), cb.Stats().FailedRequests)
}

func TestConfigDefaults(t *testing.T) {
	cfg := Config{}.withDefaults()

	assert.Equal(t, "default", cfg.Name)
	assert.Equal(t, 5, cfg.FailureThreshold)
	assert.Equal(t, 30*time.Second, cfg.ResetTimeout)
	assert.Equal(t, 2, cfg.SuccessThreshold)
	assert.Equal(t, time.Minute, cfg.FailureWindow)
	assert.Equal(t, 10*time.Second, cfg.Timeout)
	require.NotNil(t, cfg.IsFailure)
	assert.True(t, cfg.IsFailure(errBoom), "default classifier counts every error")
	assert.Equal(t, SystemClock, cfg.Clock)
}
