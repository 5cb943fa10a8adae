package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// FlushMetrics records outcomes of cart synchronization flush cycles.
type FlushMetrics struct {
	duration  *prometheus.HistogramVec
	success   *prometheus.CounterVec
	failure   *prometheus.CounterVec
	batchSize prometheus.Histogram
}

// NewFlushMetrics registers the cart flush metrics on the provided registerer.
func NewFlushMetrics(reg prometheus.Registerer) *FlushMetrics {
	if reg == nil {
		return &FlushMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "cart_flush_duration_seconds",
		Help:    "Duration of cart flush cycles in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"trigger"})
	success := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_flush_success",
		Help: "Cart flush cycles that applied every pending change.",
	}, []string{"trigger"})
	failure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_flush_failure",
		Help: "Cart flush cycles with at least one failed change.",
	}, []string{"trigger"})
	batchSize := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "cart_flush_batch_size",
		Help:    "Number of pending changes applied per flush cycle.",
		Buckets: []float64{0, 1, 2, 5, 10, 25, 50, 100},
	})
	reg.MustRegister(duration, success, failure, batchSize)
	return &FlushMetrics{
		duration:  duration,
		success:   success,
		failure:   failure,
		batchSize: batchSize,
	}
}

// ObserveCycle records the outcome of a single flush cycle.
func (f *FlushMetrics) ObserveCycle(trigger string, pending int, duration time.Duration, failed bool) {
	if f == nil || f.duration == nil {
		return
	}
	label := normalizeLabel(trigger)
	f.duration.WithLabelValues(label).Observe(duration.Seconds())
	f.batchSize.Observe(float64(pending))
	if failed {
		f.failure.WithLabelValues(label).Inc()
		return
	}
	f.success.WithLabelValues(label).Inc()
}
