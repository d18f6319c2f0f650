// Package metrics exposes Prometheus metrics for the server.
//
// The package owns the metric registry and the HTTP server that serves it.
// Individual subsystems register their collectors against the registry
// (see acl.NewMetrics); this package only provides the plumbing.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// NewRegistry creates a registry pre-populated with the standard Go runtime
// and process collectors.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}
