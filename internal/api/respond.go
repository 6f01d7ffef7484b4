package api

import (
	"encoding/json"
	"net/http"

	apierrors "github.com/agent-smit/breach-checker/internal/errors"
)

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	RequestID string `json:"request_id,omitempty"`
}

// RespondJSON writes data as a JSON response.
func RespondJSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// RespondError writes an error JSON response.
func RespondError(w http.ResponseWriter, r *http.Request, err *apierrors.APIError) {
	body := ErrorBody{
		Error: err.Message,
		Code:  err.Code,
	}
	if r != nil {
		body.RequestID = r.Header.Get("X-Request-Id")
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(err.Status)
	json.NewEncoder(w).Encode(body)
}
