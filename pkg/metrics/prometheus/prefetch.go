// Package prometheus provides Prometheus implementations of the
// lightbox metric interfaces. Importing this package registers the
// constructors with pkg/metrics.
package prometheus

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/mstefano/lightbox/pkg/metrics"
	"github.com/mstefano/lightbox/pkg/prefetch"
)

func init() {
	metrics.RegisterPrefetchMetricsConstructor(newPrefetchMetrics)
	metrics.RegisterCatalogMetricsConstructor(newCatalogMetrics)
}

// prefetchMetrics is the Prometheus implementation of prefetch.Metrics.
type prefetchMetrics struct {
	loadsStarted   *prometheus.CounterVec
	loadsReady     *prometheus.CounterVec
	loadsFailed    *prometheus.CounterVec
	loadsCancelled *prometheus.CounterVec
	readyBytes     *prometheus.HistogramVec
	pending        prometheus.Gauge
}

func newPrefetchMetrics() prefetch.Metrics {
	reg := metrics.GetRegistry()
	if reg == nil {
		return nil
	}

	return &prefetchMetrics{
		loadsStarted: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "lightbox_prefetch_loads_started_total",
				Help: "Total number of resource loads started by tier",
			},
			[]string{"tier"},
		),
		loadsReady: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "lightbox_prefetch_loads_ready_total",
				Help: "Total number of resource loads that completed by tier",
			},
			[]string{"tier"},
		),
		loadsFailed: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "lightbox_prefetch_loads_failed_total",
				Help: "Total number of resource loads that failed by tier",
			},
			[]string{"tier"},
		),
		loadsCancelled: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "lightbox_prefetch_loads_cancelled_total",
				Help: "Total number of resource loads cancelled by reconciliation by tier",
			},
			[]string{"tier"},
		),
		readyBytes: promauto.With(reg).NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "lightbox_prefetch_ready_bytes",
				Help: "Distribution of loaded resource sizes by tier",
				Buckets: []float64{
					4096,     // 4KB - thumbnails
					32768,    // 32KB
					131072,   // 128KB
					524288,   // 512KB
					1048576,  // 1MB
					4194304,  // 4MB - typical camera photo
					16777216, // 16MB
				},
			},
			[]string{"tier"},
		),
		pending: promauto.With(reg).NewGauge(
			prometheus.GaugeOpts{
				Name: "lightbox_prefetch_pending",
				Help: "Current number of in-flight resource loads",
			},
		),
	}
}

func (m *prefetchMetrics) RecordLoadStarted(tier string) {
	if m == nil {
		return
	}
	m.loadsStarted.WithLabelValues(tier).Inc()
}

func (m *prefetchMetrics) RecordLoadReady(tier string, bytes int) {
	if m == nil {
		return
	}
	m.loadsReady.WithLabelValues(tier).Inc()
	m.readyBytes.WithLabelValues(tier).Observe(float64(bytes))
}

func (m *prefetchMetrics) RecordLoadFailed(tier string) {
	if m == nil {
		return
	}
	m.loadsFailed.WithLabelValues(tier).Inc()
}

func (m *prefetchMetrics) RecordLoadCancelled(tier string) {
	if m == nil {
		return
	}
	m.loadsCancelled.WithLabelValues(tier).Inc()
}

func (m *prefetchMetrics) RecordPending(count int) {
	if m == nil {
		return
	}
	m.pending.Set(float64(count))
}
