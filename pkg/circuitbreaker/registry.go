package circuitbreaker

import "sync"

// Registry is a name-keyed store of breaker instances. It owns the breakers
// it creates; callers may still construct breakers directly and bypass it.
// There is deliberately no package-level default: the composition root builds
// one Registry and hands it to whoever needs breaker lookup.
type Registry struct {
	mu       sync.RWMutex
	breakers map[string]*CircuitBreaker
}

func NewRegistry() *Registry {
	return &Registry{breakers: make(map[string]*CircuitBreaker)}
}

// GetBreaker returns the breaker registered under cfg.Name, creating it from
// cfg on first use. Later calls with the same name return the existing
// instance even if their config differs: first writer wins.
func (r *Registry) GetBreaker(cfg Config) *CircuitBreaker {
	cfg = cfg.withDefaults()

	r.mu.RLock()
	cb, ok := r.breakers[cfg.Name]
	r.mu.RUnlock()
	if ok {
		return cb
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Double-check: another goroutine may have registered it meanwhile.
	if cb, ok = r.breakers[cfg.Name]; ok {
		return cb
	}
	cb = New(cfg)
	r.breakers[cfg.Name] = cb
	return cb
}

// Get looks a breaker up without creating one.
func (r *Registry) Get(name string) (*CircuitBreaker, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cb, ok := r.breakers[name]
	return cb, ok
}

// AllStats snapshots every registered breaker.
func (r *Registry) AllStats() map[string]Stats {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stats := make(map[string]Stats, len(r.breakers))
	for name, cb := range r.breakers {
		stats[name] = cb.Stats()
	}
	return stats
}

// HealthSummary aggregates breaker states across the registry.
type HealthSummary struct {
	Total    int  `json:"total"`
	Open     int  `json:"open"`
	HalfOpen int  `json:"halfOpen"`
	Closed   int  `json:"closed"`
	Healthy  bool `json:"healthy"`
}

// HealthSummary counts breakers per state. Healthy is true iff no breaker is
// open. The per-breaker state check applies probe eligibility, so a breaker
// whose reset timeout has elapsed reports half-open here.
func (r *Registry) HealthSummary() HealthSummary {
	r.mu.RLock()
	defer r.mu.RUnlock()

	summary := HealthSummary{Total: len(r.breakers)}
	for _, cb := range r.breakers {
		switch cb.State() {
		case StateOpen:
			summary.Open++
		case StateHalfOpen:
			summary.HalfOpen++
		case StateClosed:
			summary.Closed++
		}
	}
	summary.Healthy = summary.Open == 0
	return summary
}

// ResetAll resets every registered breaker to closed with zeroed counters.
func (r *Registry) ResetAll() {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, cb := range r.breakers {
		cb.Reset()
	}
}

// Remove drops the named breaker. It reports whether one was registered.
func (r *Registry) Remove(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.breakers[name]
	delete(r.breakers, name)
	return ok
}

// Clear drops every registered breaker.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.breakers = make(map[string]*CircuitBreaker)
}
