package gateway

import (
	"sync"
	"time"
)

// CircuitState represents the current state of a circuit breaker.
type CircuitState int

const (
	CircuitClosed   CircuitState = iota // Healthy, allowing requests
	CircuitOpen                         // Tripped, rejecting requests
	CircuitHalfOpen                     // Allowing a single trial request
)

func (s CircuitState) String() string {
	switch s {
	case CircuitClosed:
		return "closed"
	case CircuitOpen:
		return "open"
	case CircuitHalfOpen:
		return "half-open"
	}
	return "unknown"
}

// CircuitBreakerConfig holds the breaker thresholds shared by every upstream.
type CircuitBreakerConfig struct {
	FailThreshold int           // Consecutive failures before opening
	OpenDuration  time.Duration // How long to stay open before a half-open trial
}

type circuitEntry struct {
	state         CircuitState
	failures      int
	openedAt      time.Time
	trialInFlight bool
}

// CircuitBreaker tracks circuit state per upstream label.
type CircuitBreaker struct {
	mu      sync.Mutex
	cfg     CircuitBreakerConfig
	entries map[string]*circuitEntry
	now     func() time.Time
}

// NewCircuitBreaker creates a breaker. A non-positive FailThreshold disables
// tripping: every request is allowed.
func NewCircuitBreaker(cfg CircuitBreakerConfig) *CircuitBreaker {
	return &CircuitBreaker{
		cfg:     cfg,
		entries: make(map[string]*circuitEntry),
		now:     time.Now,
	}
}

// Allow returns true if the label's circuit permits a request.
func (cb *CircuitBreaker) Allow(label string) bool {
	if cb.cfg.FailThreshold <= 0 {
		return true
	}

	cb.mu.Lock()
	defer cb.mu.Unlock()

	e := cb.getOrCreate(label)

	switch e.state {
	case CircuitClosed:
		return true
	case CircuitOpen:
		if cb.now().Sub(e.openedAt) >= cb.cfg.OpenDuration {
			e.state = CircuitHalfOpen
			e.trialInFlight = true
			return true
		}
		return false
	case CircuitHalfOpen:
		if e.trialInFlight {
			return false
		}
		e.trialInFlight = true
		return true
	}
	return false
}

// RecordSuccess closes the label's circuit and clears its failure count.
func (cb *CircuitBreaker) RecordSuccess(label string) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	e := cb.getOrCreate(label)
	e.failures = 0
	e.state = CircuitClosed
	e.trialInFlight = false
}

// RecordFailure records a failed request and may open the circuit.
func (cb *CircuitBreaker) RecordFailure(label string) {
	if cb.cfg.FailThreshold <= 0 {
		return
	}

	cb.mu.Lock()
	defer cb.mu.Unlock()

	e := cb.getOrCreate(label)
	e.failures++

	if e.state == CircuitHalfOpen || e.failures >= cb.cfg.FailThreshold {
		e.state = CircuitOpen
		e.openedAt = cb.now()
		e.trialInFlight = false
	}
}

// ReleaseTrial frees a pending half-open trial without changing the state.
// A request the caller abandoned says nothing about upstream health.
func (cb *CircuitBreaker) ReleaseTrial(label string) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if e, ok := cb.entries[label]; ok {
		e.trialInFlight = false
	}
}

// State returns the current circuit state for a label.
func (cb *CircuitBreaker) State(label string) CircuitState {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	e, ok := cb.entries[label]
	if !ok {
		return CircuitClosed
	}
	return e.state
}

// Reset clears all circuit state.
func (cb *CircuitBreaker) Reset() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.entries = make(map[string]*circuitEntry)
}

func (cb *CircuitBreaker) getOrCreate(label string) *circuitEntry {
	e, ok := cb.entries[label]
	if !ok {
		e = &circuitEntry{state: CircuitClosed}
		cb.entries[label] = e
	}
	return e
}
