package telemetry

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T, h http.Handler) string {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	return string(body)
}

// metricLine returns the single sample line of the named metric. Label order
// is the exporter's, so callers match labels individually.
func metricLine(t *testing.T, body, name string) string {
	t.Helper()
	var found []string
	for _, line := range strings.Split(body, "\n") {
		if strings.HasPrefix(line, name+"{") {
			found = append(found, line)
		}
	}
	require.Len(t, found, 1, "samples of %s in:\n%s", name, body)
	return found[0]
}

func TestInitMetrics_ExportsCounters(t *testing.T) {
	m, handler, shutdown, err := InitMetrics(MetricsConfig{ServiceName: "breach-checker-test"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = shutdown(context.Background()) })

	ctx := context.Background()
	m.ObserveEvaluation(ctx, KindEmail, 2)
	m.ObserveEvaluation(ctx, KindPassword, 0)
	m.ObserveUpstream(ctx, "range", "circuit_open")

	body := scrape(t, handler)
	assert.Contains(t, body, `breachcheck_evaluations_total{kind="email"`)
	assert.Contains(t, body, `breachcheck_evaluations_total{kind="password"`)
	assert.Contains(t, body, `breachcheck_findings_total{kind="email"`)
	assert.NotContains(t, body, `breachcheck_findings_total{kind="password"`)
	assert.True(t, strings.HasSuffix(metricLine(t, body, "breachcheck_findings_total"), " 2"))
	upstream := metricLine(t, body, "breachcheck_upstream_requests_total")
	assert.Contains(t, upstream, `outcome="circuit_open"`)
	assert.Contains(t, upstream, `upstream="range"`)
	assert.True(t, strings.HasSuffix(upstream, " 1"), "unexpected sample: %s", upstream)
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveEvaluation(context.Background(), KindEmail, 3)
		m.ObserveUpstream(context.Background(), "search", "ok")
	})
}
