package observability

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	promexporter "go.opentelemetry.io/otel/exporters/prometheus"
)

// newPrometheusReader creates an isolated registry and an OTel reader that
// feeds it. Each call gets its own registry so repeated Init calls in one
// process do not collide on collector registration.
func newPrometheusReader() (*prometheus.Registry, *promexporter.Exporter, error) {
	registry := prometheus.NewRegistry()

	exporter, err := promexporter.New(promexporter.WithRegisterer(registry))
	if err != nil {
		return nil, nil, fmt.Errorf("create prometheus exporter: %w", err)
	}

	return registry, exporter, nil
}

// writeMetricsFile gathers the registry and writes it in the Prometheus text
// exposition format. The file is replaced atomically.
func writeMetricsFile(registry *prometheus.Registry, path string) error {
	err := prometheus.WriteToTextfile(path, registry)
	if err != nil {
		return fmt.Errorf("write metrics file %s: %w", path, err)
	}

	return nil
}
