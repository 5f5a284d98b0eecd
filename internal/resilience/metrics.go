package resilience

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// BreakerState exposes the current state per target:
	// 0 closed, 1 open, 2 half-open.
	BreakerState = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "breaker_state",
		Help: "Current circuit breaker state per target (0=closed, 1=open, 2=half_open).",
	}, []string{"target"})

	// BreakerTransitions counts every state change.
	BreakerTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "breaker_transition_total",
		Help: "Circuit breaker state transitions by target and edge.",
	}, []string{"target", "from", "to"})

	// BreakerOpenedTotal counts trips into the open state.
	BreakerOpenedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "breaker_open_total",
		Help: "Times a circuit breaker tripped open.",
	}, []string{"target"})
)
