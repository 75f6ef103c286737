package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type metrics struct {
	generated *prometheus.CounterVec
	failed    *prometheus.CounterVec
}

// newMetrics registers the generator counters with reg. A nil reg leaves them
// unregistered.
func newMetrics(reg prometheus.Registerer) *metrics {
	factory := promauto.With(reg)
	return &metrics{
		generated: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "randengine",
			Name:      "generated_total",
			Help:      "Number of successful generation requests by operation.",
		}, []string{"operation"}),
		failed: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "randengine",
			Name:      "generate_errors_total",
			Help:      "Number of failed generation requests by operation.",
		}, []string{"operation"}),
	}
}
