package metrics

import "github.com/mstefano/lightbox/pkg/prefetch"

// NewPrefetchMetrics creates a Prometheus-backed prefetch.Metrics.
//
// Returns nil if metrics are not enabled (InitRegistry not called);
// passing the nil result to the prefetch cache disables instrumentation
// with zero overhead.
func NewPrefetchMetrics() prefetch.Metrics {
	if !IsEnabled() || newPrometheusPrefetchMetrics == nil {
		return nil
	}
	return newPrometheusPrefetchMetrics()
}

// newPrometheusPrefetchMetrics is set by pkg/metrics/prometheus during
// package initialization. The indirection avoids an import cycle.
var newPrometheusPrefetchMetrics func() prefetch.Metrics

// RegisterPrefetchMetricsConstructor registers the Prometheus prefetch
// metrics constructor. Called by pkg/metrics/prometheus.
func RegisterPrefetchMetricsConstructor(constructor func() prefetch.Metrics) {
	newPrometheusPrefetchMetrics = constructor
}
