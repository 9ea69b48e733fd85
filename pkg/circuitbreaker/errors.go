package circuitbreaker

import (
	"errors"
	"fmt"
	"time"
)

// OpenError is returned instead of invoking the operation while the circuit
// is open and not yet eligible to probe.
type OpenError struct {
	Circuit string
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("circuit breaker %q is open", e.Circuit)
}

// TimeoutError is returned when the per-call deadline elapses before the
// operation settles.
type TimeoutError struct {
	Circuit string
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("circuit breaker %q: operation timed out after %s", e.Circuit, e.Timeout)
}

// IsOpen reports whether err means the call was rejected by an open circuit.
func IsOpen(err error) bool {
	var oe *OpenError
	return errors.As(err, &oe)
}

// IsTimeout reports whether err means the call was cut off by the breaker's
// per-call deadline.
func IsTimeout(err error) bool {
	var te *TimeoutError
	return errors.As(err, &te)
}
