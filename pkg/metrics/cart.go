package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// CartMetrics records cart engine activity.
type CartMetrics struct {
	mutations        *prometheus.CounterVec
	estimateDuration *prometheus.HistogramVec
}

// NewCartMetrics registers the cart metrics on the provided registerer.
func NewCartMetrics(reg prometheus.Registerer) *CartMetrics {
	if reg == nil {
		return &CartMetrics{}
	}
	mutations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_mutations_total",
		Help: "Cart engine mutations by operation and outcome.",
	}, []string{"op", "outcome"})
	estimateDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "cart_estimate_duration_seconds",
		Help:    "Duration of delivery estimator calls in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"outcome"})
	reg.MustRegister(mutations, estimateDuration)
	return &CartMetrics{
		mutations:        mutations,
		estimateDuration: estimateDuration,
	}
}

// IncMutation counts one mutation attempt for the named operation.
func (c *CartMetrics) IncMutation(op string, err error) {
	if c == nil || c.mutations == nil {
		return
	}
	c.mutations.WithLabelValues(normalizeLabel(op), outcomeLabel(err)).Inc()
}

// ObserveEstimate records the duration of one estimator round trip.
func (c *CartMetrics) ObserveEstimate(duration time.Duration, err error) {
	if c == nil || c.estimateDuration == nil {
		return
	}
	c.estimateDuration.WithLabelValues(outcomeLabel(err)).Observe(duration.Seconds())
}

func outcomeLabel(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

func normalizeLabel(op string) string {
	if op == "" {
		return "unknown"
	}
	return op
}
