package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Advisory call outcomes.
const (
	OutcomeSucceeded    = "succeeded"
	OutcomeInvalidInput = "invalid_input"
	OutcomeNoOutput     = "no_output"
	OutcomeFailed       = "failed"
)

// AdvisoryMetrics counts model-backed advisory calls by operation and outcome.
type AdvisoryMetrics struct {
	calls    *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func NewAdvisoryMetrics(reg prometheus.Registerer) *AdvisoryMetrics {
	if reg == nil {
		return &AdvisoryMetrics{}
	}
	calls := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "advisory_calls_total",
		Help:      "Advisory calls by operation and outcome.",
	}, []string{"operation", "outcome"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "advisory_call_duration_seconds",
		Help:      "Duration of advisory calls in seconds.",
		Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
	}, []string{"operation"})
	reg.MustRegister(calls, duration)
	return &AdvisoryMetrics{calls: calls, duration: duration}
}

// Observe records one finished call.
func (a *AdvisoryMetrics) Observe(operation, outcome string, elapsed time.Duration) {
	if a == nil || a.calls == nil {
		return
	}
	op := normalizeLabel(operation)
	a.calls.WithLabelValues(op, normalizeLabel(outcome)).Inc()
	a.duration.WithLabelValues(op).Observe(elapsed.Seconds())
}
