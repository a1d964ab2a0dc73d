// Package metrics manages the Prometheus registry for lightbox.
//
// Metrics are opt-in: until InitRegistry is called, the metric
// constructors return nil and every instrumented component runs with
// zero overhead.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	mu       sync.RWMutex
	registry *prometheus.Registry
)

// InitRegistry creates the metrics registry and enables instrumentation.
// Calling it more than once is a no-op.
func InitRegistry() {
	mu.Lock()
	defer mu.Unlock()

	if registry != nil {
		return
	}
	registry = prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

// IsEnabled reports whether InitRegistry has been called.
func IsEnabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return registry != nil
}

// GetRegistry returns the registry, or nil if metrics are disabled.
func GetRegistry() *prometheus.Registry {
	mu.RLock()
	defer mu.RUnlock()
	return registry
}

// Handler returns the /metrics HTTP handler.
// Serves 404 when metrics are disabled.
func Handler() http.Handler {
	mu.RLock()
	reg := registry
	mu.RUnlock()

	if reg == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}
