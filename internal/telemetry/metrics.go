package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/agent-smit/breach-checker"

// Evaluation kinds.
const (
	KindEmail    = "email"
	KindPassword = "password"
)

// Metrics holds the service counters. A nil *Metrics records nothing.
type Metrics struct {
	evaluations metric.Int64Counter
	findings    metric.Int64Counter
	upstream    metric.Int64Counter
}

func newMetrics(meter metric.Meter) (*Metrics, error) {
	evaluations, err := meter.Int64Counter("breachcheck_evaluations",
		metric.WithDescription("Completed evaluations by kind."))
	if err != nil {
		return nil, fmt.Errorf("creating evaluations counter: %w", err)
	}
	findings, err := meter.Int64Counter("breachcheck_findings",
		metric.WithDescription("Findings reported by kind."))
	if err != nil {
		return nil, fmt.Errorf("creating findings counter: %w", err)
	}
	upstream, err := meter.Int64Counter("breachcheck_upstream_requests",
		metric.WithDescription("Breach-service calls by upstream and outcome."))
	if err != nil {
		return nil, fmt.Errorf("creating upstream counter: %w", err)
	}
	return &Metrics{
		evaluations: evaluations,
		findings:    findings,
		upstream:    upstream,
	}, nil
}

// ObserveEvaluation records one completed evaluation and its finding count.
func (m *Metrics) ObserveEvaluation(ctx context.Context, kind string, findings int) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("kind", kind))
	m.evaluations.Add(ctx, 1, attrs)
	if findings > 0 {
		m.findings.Add(ctx, int64(findings), attrs)
	}
}

// ObserveUpstream records the outcome of one breach-service call.
func (m *Metrics) ObserveUpstream(ctx context.Context, upstream, outcome string) {
	if m == nil {
		return
	}
	m.upstream.Add(ctx, 1, metric.WithAttributes(
		attribute.String("upstream", upstream),
		attribute.String("outcome", outcome),
	))
}
