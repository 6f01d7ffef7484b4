package api

import (
	"net/http"

	"github.com/agent-smit/breach-checker/internal/gateway"
)

// CircuitReporter exposes per-upstream circuit state.
type CircuitReporter interface {
	State(label string) gateway.CircuitState
}

// HealthHandler provides HTTP handlers for health check endpoints.
type HealthHandler struct {
	Circuits  CircuitReporter
	Upstreams []string
}

type readyResponse struct {
	Status   string            `json:"status"`
	Circuits map[string]string `json:"circuits,omitempty"`
}

// Healthz is a liveness check. Returns 200 if the process is running.
func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	RespondJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

// Readyz is a readiness check. Evaluations degrade to local checks while an
// upstream is down, so it only reports not ready when every upstream circuit
// is open.
func (h *HealthHandler) Readyz(w http.ResponseWriter, r *http.Request) {
	if h.Circuits == nil || len(h.Upstreams) == 0 {
		RespondJSON(w, r, http.StatusOK, readyResponse{Status: "ready"})
		return
	}

	circuits := make(map[string]string, len(h.Upstreams))
	open := 0
	for _, u := range h.Upstreams {
		state := h.Circuits.State(u)
		circuits[u] = state.String()
		if state == gateway.CircuitOpen {
			open++
		}
	}

	if open == len(h.Upstreams) {
		RespondJSON(w, r, http.StatusServiceUnavailable, readyResponse{Status: "not ready", Circuits: circuits})
		return
	}
	RespondJSON(w, r, http.StatusOK, readyResponse{Status: "ready", Circuits: circuits})
}
