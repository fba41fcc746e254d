package exchange

import (
	"time"

	"github.com/sony/gobreaker"
)

// newBreaker builds the per-exchange circuit breaker. Only transport-level
// failures count against it; an exchange that is hard down stops consuming
// request slots after five consecutive failures and is probed again a
// minute later.
func newBreaker(name string) *gobreaker.CircuitBreaker {
	settings := gobreaker.Settings{
		Name:     name,
		Interval: 60 * time.Second,
		Timeout:  60 * time.Second,
	}
	settings.ReadyToTrip = func(counts gobreaker.Counts) bool {
		return counts.ConsecutiveFailures >= 5
	}
	return gobreaker.NewCircuitBreaker(settings)
}
