// Package circuitbreaker is a thin generic wrapper around gobreaker, giving
// callers (currently the REST client) shared breaker defaults instead of each
// call site configuring gobreaker.Settings by hand.
package circuitbreaker

import (
	"time"

	"github.com/sony/gobreaker/v2"
)

// CircuitBreaker wraps gobreaker.CircuitBreaker[T] so call sites work with
// whatever result type their operation returns.
type CircuitBreaker[T any] struct {
	cb *gobreaker.CircuitBreaker[T]
}

// New builds a circuit breaker from cfg.
func New[T any](cfg gobreaker.Settings) *CircuitBreaker[T] {
	return &CircuitBreaker[T]{cb: gobreaker.NewCircuitBreaker[T](cfg)}
}

// Execute runs fn through the breaker, short-circuiting with
// gobreaker.ErrOpenState when the breaker is open.
func (c *CircuitBreaker[T]) Execute(fn func() (T, error)) (T, error) {
	return c.cb.Execute(fn)
}

// State returns the breaker's current state.
func (c *CircuitBreaker[T]) State() gobreaker.State {
	return c.cb.State()
}

// DefaultConfig returns standard breaker settings for name: trip after 5
// consecutive failures, half-open after 30s, require 3 consecutive
// successes in half-open to fully close.
func DefaultConfig(name string) gobreaker.Settings {
	return gobreaker.Settings{
		Name:        name,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	}
}
