package fetch

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts loader activity. A nil *Metrics records nothing.
type Metrics struct {
	fetches  *prometheus.CounterVec
	hits     *prometheus.CounterVec
	failures *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics registers the loader collectors on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		fetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "masomo",
			Subsystem: "loader",
			Name:      "fetches_total",
			Help:      "Number of fetches performed by a loader.",
		}, []string{"loader"}),
		hits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "masomo",
			Subsystem: "loader",
			Name:      "cache_hits_total",
			Help:      "Number of reads served from a loader cache.",
		}, []string{"loader"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "masomo",
			Subsystem: "loader",
			Name:      "fetch_failures_total",
			Help:      "Number of failed fetches.",
		}, []string{"loader"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "masomo",
			Subsystem: "loader",
			Name:      "fetch_duration_seconds",
			Help:      "Fetch duration, artificial latency included.",
			Buckets:   []float64{.05, .1, .15, .2, .25, .5, 1},
		}, []string{"loader"}),
	}
	reg.MustRegister(m.fetches, m.hits, m.failures, m.duration)
	return m
}

func (m *Metrics) recordHit(loader string) {
	if m == nil {
		return
	}
	m.hits.WithLabelValues(loader).Inc()
}

func (m *Metrics) recordFetch(loader string, d time.Duration, err error) {
	if m == nil {
		return
	}
	m.fetches.WithLabelValues(loader).Inc()
	m.duration.WithLabelValues(loader).Observe(d.Seconds())
	if err != nil {
		m.failures.WithLabelValues(loader).Inc()
	}
}
