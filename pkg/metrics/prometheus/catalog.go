package prometheus

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/mstefano/lightbox/pkg/catalog"
	"github.com/mstefano/lightbox/pkg/metrics"
)

// catalogMetrics is the Prometheus implementation of catalog.Metrics.
type catalogMetrics struct {
	memoryHits       prometheus.Counter
	snapshotsAdopted prometheus.Counter
	fullFetches      prometheus.Counter
	probes           *prometheus.CounterVec
}

func newCatalogMetrics() catalog.Metrics {
	reg := metrics.GetRegistry()
	if reg == nil {
		return nil
	}

	return &catalogMetrics{
		memoryHits: promauto.With(reg).NewCounter(
			prometheus.CounterOpts{
				Name: "lightbox_catalog_memory_hits_total",
				Help: "Total number of loads served from the in-memory snapshot",
			},
		),
		snapshotsAdopted: promauto.With(reg).NewCounter(
			prometheus.CounterOpts{
				Name: "lightbox_catalog_snapshots_adopted_total",
				Help: "Total number of persisted snapshots adopted after a token match",
			},
		),
		fullFetches: promauto.With(reg).NewCounter(
			prometheus.CounterOpts{
				Name: "lightbox_catalog_full_fetches_total",
				Help: "Total number of full manifest downloads",
			},
		),
		probes: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "lightbox_catalog_probes_total",
				Help: "Total number of generation token probes by outcome",
			},
			[]string{"outcome"}, // "match", "mismatch"
		),
	}
}

func (m *catalogMetrics) RecordMemoryHit() {
	if m == nil {
		return
	}
	m.memoryHits.Inc()
}

func (m *catalogMetrics) RecordSnapshotAdopted() {
	if m == nil {
		return
	}
	m.snapshotsAdopted.Inc()
}

func (m *catalogMetrics) RecordFullFetch() {
	if m == nil {
		return
	}
	m.fullFetches.Inc()
}

func (m *catalogMetrics) RecordProbe(match bool) {
	if m == nil {
		return
	}
	outcome := "mismatch"
	if match {
		outcome = "match"
	}
	m.probes.WithLabelValues(outcome).Inc()
}
