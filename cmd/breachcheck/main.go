package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/agent-smit/breach-checker/internal/cli"
	"github.com/agent-smit/breach-checker/internal/config"
	"github.com/agent-smit/breach-checker/internal/email"
	"github.com/agent-smit/breach-checker/internal/gateway"
	"github.com/agent-smit/breach-checker/internal/password"
	"github.com/agent-smit/breach-checker/internal/telemetry"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		return 1
	}

	// Remote lookup failures surface as warnings on stderr.
	level := "warn"
	if cfg.LogLevel == "debug" {
		level = cfg.LogLevel
	}
	logger := telemetry.NewLogger(os.Stderr, telemetry.LogConfig{Level: level, Format: cfg.LogFormat})

	client := gateway.NewClient(gateway.Config{
		SearchURL: cfg.BreachSearchURL,
		RangeURL:  cfg.PwnedRangeURL,
		UserAgent: cfg.HIBPUserAgent,
		APIKey:    cfg.HIBPAPIKey,
		Padding:   cfg.RangePadding,
		Timeout:   cfg.UpstreamTimeout(),
	}, nil)

	root := cli.NewRootCommand(&cli.App{
		Email:    email.NewEvaluator(client, logger),
		Password: password.NewEvaluator(client, logger),
		In:       os.Stdin,
		Out:      os.Stdout,
	})

	if err := root.ExecuteContext(ctx); err != nil {
		if errors.Is(err, cli.ErrFindings) {
			return 2
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
