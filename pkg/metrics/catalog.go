package metrics

import "github.com/mstefano/lightbox/pkg/catalog"

// NewCatalogMetrics creates a Prometheus-backed catalog.Metrics.
//
// Returns nil if metrics are not enabled (InitRegistry not called).
func NewCatalogMetrics() catalog.Metrics {
	if !IsEnabled() || newPrometheusCatalogMetrics == nil {
		return nil
	}
	return newPrometheusCatalogMetrics()
}

// newPrometheusCatalogMetrics is set by pkg/metrics/prometheus during
// package initialization. The indirection avoids an import cycle.
var newPrometheusCatalogMetrics func() catalog.Metrics

// RegisterCatalogMetricsConstructor registers the Prometheus catalog
// metrics constructor. Called by pkg/metrics/prometheus.
func RegisterCatalogMetricsConstructor(constructor func() catalog.Metrics) {
	newPrometheusCatalogMetrics = constructor
}
