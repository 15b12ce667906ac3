package metrics

import "github.com/prometheus/client_golang/prometheus"

// CartMetrics tracks cart mutations, removal events and live sessions.
type CartMetrics struct {
	mutations *prometheus.CounterVec
	removed   prometheus.Counter
	sessions  prometheus.Gauge
}

func NewCartMetrics(reg prometheus.Registerer) *CartMetrics {
	if reg == nil {
		return &CartMetrics{}
	}
	mutations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cart_mutations_total",
		Help:      "Cart mutations by operation.",
	}, []string{"operation"})
	removed := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cart_items_removed_total",
		Help:      "Line items removed from carts.",
	})
	sessions := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "cart_sessions_active",
		Help:      "Cart sessions held in memory.",
	})
	reg.MustRegister(mutations, removed, sessions)
	return &CartMetrics{mutations: mutations, removed: removed, sessions: sessions}
}

func (c *CartMetrics) IncMutation(operation string) {
	if c == nil || c.mutations == nil {
		return
	}
	c.mutations.WithLabelValues(normalizeLabel(operation)).Inc()
}

func (c *CartMetrics) IncItemRemoved() {
	if c == nil || c.removed == nil {
		return
	}
	c.removed.Inc()
}

func (c *CartMetrics) SetActiveSessions(n int) {
	if c == nil || c.sessions == nil {
		return
	}
	c.sessions.Set(float64(n))
}
