package spawn

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts spawn activity. A nil *Metrics records nothing.
type Metrics struct {
	// Creates counts entities allocated by Spawn composables.
	Creates prometheus.Counter
	// Updates counts in-place updates of already bound entities.
	Updates prometheus.Counter
	// ObserverRuns counts observer invocations that passed the guard.
	ObserverRuns prometheus.Counter
	// GuardViolations counts observer invocations refused by the guard.
	GuardViolations prometheus.Counter
}

// NewMetrics creates the counters and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Creates: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "actuate",
			Subsystem: "spawn",
			Name:      "creates_total",
			Help:      "Total entities created by spawn composables",
		}),
		Updates: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "actuate",
			Subsystem: "spawn",
			Name:      "updates_total",
			Help:      "Total in-place entity updates by spawn composables",
		}),
		ObserverRuns: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "actuate",
			Subsystem: "observer",
			Name:      "runs_total",
			Help:      "Total observer invocations that ran user logic",
		}),
		GuardViolations: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "actuate",
			Subsystem: "guard",
			Name:      "violations_total",
			Help:      "Total observer invocations after their scope was dropped",
		}),
	}
}

func (m *Metrics) create() {
	if m != nil {
		m.Creates.Inc()
	}
}

func (m *Metrics) update() {
	if m != nil {
		m.Updates.Inc()
	}
}

func (m *Metrics) observerRun() {
	if m != nil {
		m.ObserverRuns.Inc()
	}
}

func (m *Metrics) guardViolation() {
	if m != nil {
		m.GuardViolations.Inc()
	}
}
