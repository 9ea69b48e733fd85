// Package circuitbreaker guards calls to an unreliable dependency. Once the
// dependency is judged unhealthy the breaker fails fast instead of letting
// every caller pay the cost of a doomed call.
package circuitbreaker

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

type State int

const (
	StateClosed State = iota
	StateOpen
	StateHalfOpen
)

var stateName = map[State]string{
	StateClosed:   "CLOSED",
	StateOpen:     "OPEN",
	StateHalfOpen: "HALF_OPEN",
}

func (s State) String() string {
	if name, ok := stateName[s]; ok {
		return name
	}
	return "UNKNOWN"
}

func (s State) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// Config defines the behaviour and timing characteristics of a breaker.
// Every field except Name has a usable default.
type Config struct {
	// Name identifies the breaker in errors, callbacks and the registry.
	Name string
	// Countable failures within FailureWindow before the circuit opens.
	FailureThreshold int
	// How long an open circuit waits before probing recovery.
	ResetTimeout time.Duration
	// Consecutive successes in half-open required to close the circuit.
	SuccessThreshold int
	// Sliding window over which failures are counted. Older failures are
	// forgotten.
	FailureWindow time.Duration
	// Per-call deadline. A call that does not settle in time counts as a
	// failure regardless of IsFailure.
	Timeout time.Duration
	// IsFailure decides whether an operation error counts toward the
	// threshold. It never affects whether the error is returned to the
	// caller. Nil means every error counts.
	IsFailure func(error) bool
	// OnOpen and OnClose are informational hooks invoked synchronously on
	// state transitions driven by call outcomes. Panics are swallowed.
	OnOpen  func(name string, failures int)
	OnClose func(name string)
	// Clock overrides the time source, for tests.
	Clock Clock
}

func (c Config) withDefaults() Config {
	if c.Name == "" {
		c.Name = "default"
	}
	if c.FailureThreshold <= 0 {
		c.FailureThreshold = 5
	}
	if c.ResetTimeout <= 0 {
		c.ResetTimeout = 30 * time.Second
	}
	if c.SuccessThreshold <= 0 {
		c.SuccessThreshold = 2
	}
	if c.FailureWindow <= 0 {
		c.FailureWindow = time.Minute
	}
	if c.Timeout <= 0 {
		c.Timeout = 10 * time.Second
	}
	if c.IsFailure == nil {
		c.IsFailure = func(error) bool { return true }
	}
	if c.Clock == nil {
		c.Clock = SystemClock
	}
	return c
}

// Stats is a point-in-time snapshot of a breaker.
type Stats struct {
	Name                 string `json:"name"`
	State                State  `json:"state"`
	TotalRequests        int64  `json:"totalRequests"`
	SuccessfulRequests   int64  `json:"successfulRequests"`
	FailedRequests       int64  `json:"failedRequests"`
	RejectedRequests     int64  `json:"rejectedRequests"`
	ConsecutiveSuccesses int    `json:"consecutiveSuccesses"`
	FailuresInWindow     int    `json:"failuresInWindow"`
}

// CircuitBreaker is a three-state guard around calls to one dependency.
// All methods are safe for concurrent use.
type CircuitBreaker struct {
	cfg Config

	mu                   sync.Mutex
	state                State
	openedAt             time.Time
	failureLog           []time.Time
	totalRequests        int64
	successfulRequests   int64
	failedRequests       int64
	rejectedRequests     int64
	consecutiveSuccesses int
}

// New builds a breaker in the closed state. Zero config fields fall back to
// defaults.
func New(cfg Config) *CircuitBreaker {
	return &CircuitBreaker{cfg: cfg.withDefaults()}
}

// Name returns the breaker's configured name.
func (cb *CircuitBreaker) Name() string { return cb.cfg.Name }

// Operation is a unit of work guarded by the breaker. The context carries
// the breaker's per-call deadline; implementations should honour it so a
// timed-out call is actually abandoned rather than left running.
type Operation func(ctx context.Context) (any, error)

// Execute runs op under the breaker's current state. It returns the
// operation's result verbatim, an *OpenError when the circuit rejects the
// call, or a *TimeoutError when the per-call deadline elapses first.
func (cb *CircuitBreaker) Execute(ctx context.Context, op Operation) (any, error) {
	if err := cb.allow(); err != nil {
		return nil, err
	}

	opCtx, cancel := context.WithTimeout(ctx, cb.cfg.Timeout)
	defer cancel()

	type outcome struct {
		result   any
		err      error
		panicked bool
		panicVal any
	}
	settled := make(chan outcome, 1)
	go func() {
		// A panic on this goroutine would kill the process; capture it
		// and rethrow it on the caller's goroutine instead.
		defer func() {
			if r := recover(); r != nil {
				settled <- outcome{panicked: true, panicVal: r}
			}
		}()
		result, err := op(opCtx)
		settled <- outcome{result: result, err: err}
	}()

	select {
	case out := <-settled:
		if out.panicked {
			cb.recordFailure(true)
			panic(out.panicVal)
		}
		if out.err != nil {
			cb.recordFailure(cb.cfg.IsFailure(out.err))
			return out.result, out.err
		}
		cb.recordSuccess()
		return out.result, nil
	case <-opCtx.Done():
		if err := ctx.Err(); err != nil {
			// The caller's own context ended; this is not the breaker's
			// deadline, so classify it like any operation error.
			cb.recordFailure(cb.cfg.IsFailure(err))
			return nil, err
		}
		// The late settlement, if any, is discarded; cancel has already
		// signalled the operation to stop.
		terr := &TimeoutError{Circuit: cb.cfg.Name, Timeout: cb.cfg.Timeout}
		cb.recordFailure(true)
		return nil, terr
	}
}

// allow decides whether a call may proceed, applying the lazy
// open-to-half-open transition and counting rejections.
func (cb *CircuitBreaker) allow() error {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if cb.state == StateOpen {
		if cb.cfg.Clock.Now().Sub(cb.openedAt) >= cb.cfg.ResetTimeout {
			cb.state = StateHalfOpen
			cb.consecutiveSuccesses = 0
		} else {
			cb.totalRequests++
			cb.rejectedRequests++
			return &OpenError{Circuit: cb.cfg.Name}
		}
	}
	return nil
}

func (cb *CircuitBreaker) recordSuccess() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.totalRequests++
	cb.successfulRequests++

	if cb.state == StateHalfOpen {
		cb.consecutiveSuccesses++
		if cb.consecutiveSuccesses >= cb.cfg.SuccessThreshold {
			cb.state = StateClosed
			cb.failureLog = cb.failureLog[:0]
			cb.notifyClose()
		}
	}
}

func (cb *CircuitBreaker) recordFailure(countable bool) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.totalRequests++
	cb.failedRequests++

	switch cb.state {
	case StateHalfOpen:
		// A single failed probe reopens the circuit.
		cb.open(1)
	case StateClosed:
		if !countable {
			return
		}
		now := cb.cfg.Clock.Now()
		cb.failureLog = append(cb.failureLog, now)
		cb.prune(now)
		if len(cb.failureLog) >= cb.cfg.FailureThreshold {
			cb.open(len(cb.failureLog))
		}
	case StateOpen:
		// A call that settled after the circuit already opened no longer
		// moves the state machine.
	}
}

// prune drops failure timestamps older than the window. Callers hold cb.mu.
func (cb *CircuitBreaker) prune(now time.Time) {
	cutoff := now.Add(-cb.cfg.FailureWindow)
	kept := cb.failureLog[:0]
	for _, t := range cb.failureLog {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	cb.failureLog = kept
}

// open transitions to OPEN and fires OnOpen. Callers hold cb.mu.
func (cb *CircuitBreaker) open(failures int) {
	cb.state = StateOpen
	cb.openedAt = cb.cfg.Clock.Now()
	cb.consecutiveSuccesses = 0
	if cb.cfg.OnOpen != nil {
		func() {
			defer func() { _ = recover() }()
			cb.cfg.OnOpen(cb.cfg.Name, failures)
		}()
	}
}

// notifyClose fires OnClose. Callers hold cb.mu.
func (cb *CircuitBreaker) notifyClose() {
	if cb.cfg.OnClose != nil {
		func() {
			defer func() { _ = recover() }()
			cb.cfg.OnClose(cb.cfg.Name)
		}()
	}
}

// State returns the current state, first applying the open-to-half-open
// eligibility check. State is evaluated lazily; there is no background timer.
func (cb *CircuitBreaker) State() State {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if cb.state == StateOpen && cb.cfg.Clock.Now().Sub(cb.openedAt) >= cb.cfg.ResetTimeout {
		cb.state = StateHalfOpen
		cb.consecutiveSuccesses = 0
	}
	return cb.state
}

// IsAvailable reports whether a call right now would not be rejected.
func (cb *CircuitBreaker) IsAvailable() bool {
	return cb.State() != StateOpen
}

// Stats returns a snapshot of the breaker's state and counters. Unlike
// State(), the reported state is the stored one: an open breaker whose reset
// timeout has elapsed still shows OPEN here until something probes it.
func (cb *CircuitBreaker) Stats() Stats {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.prune(cb.cfg.Clock.Now())
	return Stats{
		Name:                 cb.cfg.Name,
		State:                cb.state,
		TotalRequests:        cb.totalRequests,
		SuccessfulRequests:   cb.successfulRequests,
		FailedRequests:       cb.failedRequests,
		RejectedRequests:     cb.rejectedRequests,
		ConsecutiveSuccesses: cb.consecutiveSuccesses,
		FailuresInWindow:     len(cb.failureLog),
	}
}

// ForceOpen opens the circuit immediately, bypassing threshold logic.
// Counters are left untouched and no callbacks fire.
func (cb *CircuitBreaker) ForceOpen() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.state = StateOpen
	cb.openedAt = cb.cfg.Clock.Now()
	cb.consecutiveSuccesses = 0
}

// ForceClose closes the circuit immediately, bypassing threshold logic.
// Counters are left untouched and no callbacks fire.
func (cb *CircuitBreaker) ForceClose() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.state = StateClosed
}

// Reset zeroes all counters and the failure log and forces the closed state.
// Configuration is unchanged.
func (cb *CircuitBreaker) Reset() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.state = StateClosed
	cb.failureLog = nil
	cb.totalRequests = 0
	cb.successfulRequests = 0
	cb.failedRequests = 0
	cb.rejectedRequests = 0
	cb.consecutiveSuccesses = 0
}
