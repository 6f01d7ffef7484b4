// Package telemetry sets up structured logging and OpenTelemetry metrics
// exported in the Prometheus text format.
package telemetry

import (
	"context"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/attribute"
	promexporter "go.opentelemetry.io/otel/exporters/prometheus"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
)

// Shutdown is a function that cleans up telemetry resources.
type Shutdown func(ctx context.Context) error

// MetricsConfig holds metrics configuration.
type MetricsConfig struct {
	ServiceName string
}

// InitMetrics builds a meter provider that exports into a private Prometheus
// registry. It returns the counters, the /metrics handler and a Shutdown that
// flushes the provider.
func InitMetrics(cfg MetricsConfig) (*Metrics, http.Handler, Shutdown, error) {
	reg := prometheus.NewRegistry()

	exporter, err := promexporter.New(promexporter.WithRegisterer(reg))
	if err != nil {
		return nil, nil, nil, fmt.Errorf("creating prometheus exporter: %w", err)
	}

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(exporter),
		sdkmetric.WithResource(resource.NewSchemaless(
			attribute.String("service.name", cfg.ServiceName),
		)),
	)

	m, err := newMetrics(provider.Meter(instrumentationName))
	if err != nil {
		_ = provider.Shutdown(context.Background())
		return nil, nil, nil, err
	}

	handler := promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
	return m, handler, provider.Shutdown, nil
}
