package http

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts order actions by name and outcome.
type Metrics struct {
	actions *prometheus.CounterVec
}

// NewMetrics registers the action counter with registerer.
func NewMetrics(registerer prometheus.Registerer) (*Metrics, error) {
	actions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fulfillment",
		Name:      "order_actions_total",
		Help:      "Order actions handled, by action and outcome.",
	}, []string{"action", "outcome"})

	if err := registerer.Register(actions); err != nil {
		return nil, err
	}
	return &Metrics{actions: actions}, nil
}

func (m *Metrics) observe(action string, err error) {
	if m == nil {
		return
	}
	m.actions.WithLabelValues(action, outcomeOf(err)).Inc()
}
