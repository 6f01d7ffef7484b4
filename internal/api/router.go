package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	apierrors "github.com/agent-smit/breach-checker/internal/errors"
)

// DefaultMaxBodySize bounds request bodies when RouterConfig leaves it unset.
const DefaultMaxBodySize = 64 << 10

// RouterConfig holds all dependencies needed to build the router.
type RouterConfig struct {
	Health        *HealthHandler
	EmailCheck    *CheckHandler
	PasswordCheck *CheckHandler
	Generate      *GenerateHandler
	Metrics       http.Handler // nil = no /metrics route
	Logger        *slog.Logger
	MaxBodySize   int64
}

// NewRouter creates the chi router with middleware and all routes.
func NewRouter(cfg RouterConfig) chi.Router {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	maxBody := cfg.MaxBodySize
	if maxBody <= 0 {
		maxBody = DefaultMaxBodySize
	}

	r := chi.NewRouter()

	// Standard middleware
	r.Use(RequestIDMiddleware)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(CORSMiddleware)
	r.Use(SecurityHeadersMiddleware)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		RespondError(w, r, apierrors.NotFound("route", r.URL.Path))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		RespondError(w, r, apierrors.MethodNotAllowed(r.Method))
	})

	// Health routes
	if cfg.Health != nil {
		r.Get("/healthz", cfg.Health.Healthz)
		r.Get("/readyz", cfg.Health.Readyz)
	}
	if cfg.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", cfg.Metrics)
	}

	r.Route("/api", func(r chi.Router) {
		r.Use(MaxBodySize(maxBody))

		if cfg.EmailCheck != nil {
			r.Post("/check-email", cfg.EmailCheck.Check)
		}
		if cfg.PasswordCheck != nil {
			r.Post("/check-password", cfg.PasswordCheck.Check)
		}
		if cfg.Generate != nil {
			r.Post("/generate-password", cfg.Generate.Generate)
		}
	})

	return r
}
