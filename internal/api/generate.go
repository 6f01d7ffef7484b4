package api

import (
	"errors"
	"log/slog"
	"net/http"

	apierrors "github.com/agent-smit/breach-checker/internal/errors"
	"github.com/agent-smit/breach-checker/internal/password"
)

// GenerateHandler serves POST /api/generate-password.
type GenerateHandler struct {
	Logger *slog.Logger
}

// generateRequest uses pointers so omitted fields keep their defaults.
type generateRequest struct {
	Length    *int  `json:"length"`
	Uppercase *bool `json:"uppercase"`
	Lowercase *bool `json:"lowercase"`
	Numbers   *bool `json:"numbers"`
	Symbols   *bool `json:"symbols"`
}

type generateResponse struct {
	Password string            `json:"password"`
	Length   int               `json:"length"`
	Strength password.Strength `json:"strength"`
}

func (req generateRequest) options() password.GenerateOptions {
	opts := password.DefaultGenerateOptions()
	if req.Length != nil {
		opts.Length = *req.Length
	}
	if req.Uppercase != nil {
		opts.Uppercase = *req.Uppercase
	}
	if req.Lowercase != nil {
		opts.Lowercase = *req.Lowercase
	}
	if req.Numbers != nil {
		opts.Numbers = *req.Numbers
	}
	if req.Symbols != nil {
		opts.Symbols = *req.Symbols
	}
	return opts
}

// Generate returns a random password and its strength estimate. An empty
// body uses the defaults.
func (h *GenerateHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if r.ContentLength != 0 {
		if apiErr := decodeJSON(r, &req); apiErr != nil {
			RespondError(w, r, apiErr)
			return
		}
	}

	opts := req.options()
	pw, err := password.Generate(opts)
	if err != nil {
		if errors.Is(err, password.ErrInvalidLength) || errors.Is(err, password.ErrEmptyCharset) {
			RespondError(w, r, apierrors.Validation(err.Error()))
			return
		}
		logger := h.Logger
		if logger == nil {
			logger = slog.Default()
		}
		logger.ErrorContext(r.Context(), "password generation failed", "error", err)
		RespondError(w, r, apierrors.Internal("failed to generate password"))
		return
	}

	RespondJSON(w, r, http.StatusOK, generateResponse{
		Password: pw,
		Length:   opts.Length,
		Strength: password.Estimate(pw),
	})
}
