// Package breaker wraps calls to external collaborators in a circuit breaker so a
// failing service is short-circuited instead of being hammered on every refresh.
package breaker

import (
	"time"

	"github.com/sony/gobreaker"

	"github.com/rogerio-castellano/inventory-insights/pkg/logger"
)

type Breaker struct{ cb *gobreaker.CircuitBreaker }

// New returns a breaker that trips after three consecutive failures or when more than
// half of at least ten requests in the window failed.
func New(name string, cooldown time.Duration) *Breaker {
	st := gobreaker.Settings{Name: name}
	st.Interval = 60 * time.Second
	st.Timeout = cooldown
	st.ReadyToTrip = func(counts gobreaker.Counts) bool {
		if counts.ConsecutiveFailures >= 3 {
			return true
		}
		if counts.Requests < 10 {
			return false
		}
		return float64(counts.TotalFailures)/float64(counts.Requests) > 0.5
	}
	st.OnStateChange = func(name string, from, to gobreaker.State) {
		logger.Log.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("circuit breaker state changed")
	}
	return &Breaker{cb: gobreaker.NewCircuitBreaker(st)}
}

func (b *Breaker) Execute(fn func() (any, error)) (any, error) { return b.cb.Execute(fn) }

// Open reports whether calls are currently being rejected.
func (b *Breaker) Open() bool { return b.cb.State() == gobreaker.StateOpen }
