package circuitbreaker

import "time"

// Clock supplies the breaker's notion of "now". Tests inject a fake
// implementation to advance time without sleeping.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock is the default Clock backed by the wall clock.
var SystemClock Clock = systemClock{}
