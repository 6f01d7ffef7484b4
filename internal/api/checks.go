package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	apierrors "github.com/agent-smit/breach-checker/internal/errors"
	"github.com/agent-smit/breach-checker/internal/finding"
)

// Evaluator produces the findings for a submitted value.
type Evaluator interface {
	Evaluate(ctx context.Context, value string) ([]finding.Finding, error)
}

// EvaluationObserver records completed evaluations.
type EvaluationObserver interface {
	ObserveEvaluation(ctx context.Context, kind string, findings int)
}

// CheckHandler serves POST /api/check-email and /api/check-password.
type CheckHandler struct {
	Kind      string // "email" or "password"; used in messages and metrics
	Evaluator Evaluator
	Metrics   EvaluationObserver // nil = no metrics
	Logger    *slog.Logger
}

type checkRequest struct {
	Value string `json:"value"`
}

type checkResponse struct {
	Breaches []finding.Finding `json:"breaches"`
}

// Check decodes {"value": ...}, runs the evaluator and responds with
// {"breaches": [...]}.
func (h *CheckHandler) Check(w http.ResponseWriter, r *http.Request) {
	var req checkRequest
	if apiErr := decodeJSON(r, &req); apiErr != nil {
		RespondError(w, r, apiErr)
		return
	}
	if req.Value == "" {
		RespondError(w, r, apierrors.Validation(h.Kind+" is required"))
		return
	}

	findings, err := h.Evaluator.Evaluate(r.Context(), req.Value)
	if err != nil {
		h.logger().ErrorContext(r.Context(), "evaluation failed",
			"kind", h.Kind,
			"error", err,
			"request_id", r.Header.Get("X-Request-Id"),
		)
		RespondError(w, r, apierrors.Internal("failed to check "+h.Kind))
		return
	}
	if findings == nil {
		findings = []finding.Finding{}
	}

	if h.Metrics != nil {
		h.Metrics.ObserveEvaluation(r.Context(), h.Kind, len(findings))
	}

	RespondJSON(w, r, http.StatusOK, checkResponse{Breaches: findings})
}

func (h *CheckHandler) logger() *slog.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// decodeJSON decodes the request body into dst, mapping failures to API
// errors. An oversized body yields 413.
func decodeJSON(r *http.Request, dst any) *apierrors.APIError {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return apierrors.PayloadTooLarge(maxErr.Limit)
		}
		return apierrors.Validation("invalid request body")
	}
	return nil
}
