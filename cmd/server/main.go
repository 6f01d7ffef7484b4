package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/agent-smit/breach-checker/internal/api"
	"github.com/agent-smit/breach-checker/internal/config"
	"github.com/agent-smit/breach-checker/internal/email"
	"github.com/agent-smit/breach-checker/internal/gateway"
	"github.com/agent-smit/breach-checker/internal/password"
	"github.com/agent-smit/breach-checker/internal/telemetry"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	logger := telemetry.InitLogger(telemetry.LogConfig{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	logger.Info("starting breach-checker", "port", cfg.Port)

	// Metrics
	var (
		metrics        *telemetry.Metrics
		metricsHandler http.Handler
		observer       gateway.Observer
	)
	if cfg.MetricsEnabled {
		var shutdownMetrics telemetry.Shutdown
		metrics, metricsHandler, shutdownMetrics, err = telemetry.InitMetrics(telemetry.MetricsConfig{
			ServiceName: cfg.OTELServiceName,
		})
		if err != nil {
			return fmt.Errorf("telemetry: %w", err)
		}
		observer = metrics
		defer func() {
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer shutdownCancel()
			if err := shutdownMetrics(shutdownCtx); err != nil {
				logger.Error("telemetry shutdown error", "error", err)
			}
		}()
	}

	// Breach-service client shared by both evaluators
	client := gateway.NewClient(gateway.Config{
		SearchURL:           cfg.BreachSearchURL,
		RangeURL:            cfg.PwnedRangeURL,
		UserAgent:           cfg.HIBPUserAgent,
		APIKey:              cfg.HIBPAPIKey,
		Padding:             cfg.RangePadding,
		Timeout:             cfg.UpstreamTimeout(),
		MaxIdleConnsPerHost: 10,
		Breaker: gateway.CircuitBreakerConfig{
			FailThreshold: cfg.CircuitFailThreshold,
			OpenDuration:  cfg.CircuitOpenDuration(),
		},
	}, observer)

	var evalMetrics api.EvaluationObserver
	if metrics != nil {
		evalMetrics = metrics
	}

	router := api.NewRouter(api.RouterConfig{
		Health: &api.HealthHandler{
			Circuits:  client.Breaker(),
			Upstreams: []string{gateway.UpstreamSearch, gateway.UpstreamRange},
		},
		EmailCheck: &api.CheckHandler{
			Kind:      telemetry.KindEmail,
			Evaluator: email.NewEvaluator(client, logger.With("component", "email")),
			Metrics:   evalMetrics,
			Logger:    logger,
		},
		PasswordCheck: &api.CheckHandler{
			Kind:      telemetry.KindPassword,
			Evaluator: password.NewEvaluator(client, logger.With("component", "password")),
			Metrics:   evalMetrics,
			Logger:    logger,
		},
		Generate:    &api.GenerateHandler{Logger: logger},
		Metrics:     metricsHandler,
		Logger:      logger,
		MaxBodySize: cfg.MaxBodySize,
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	})

	// Graceful shutdown
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer shutdownCancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("server stopped")
	return nil
}
