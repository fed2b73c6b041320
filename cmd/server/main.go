// Cinegraph - Movie Similarity Graph and Recommendation Queries
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinegraph

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/tomtom215/cinegraph/internal/api"
	"github.com/tomtom215/cinegraph/internal/config"
	"github.com/tomtom215/cinegraph/internal/logging"
	"github.com/tomtom215/cinegraph/internal/metrics"
	"github.com/tomtom215/cinegraph/internal/middleware"
	"github.com/tomtom215/cinegraph/internal/supervisor"
	"github.com/tomtom215/cinegraph/internal/supervisor/services"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := run(); err != nil {
		logging.Fatal().Err(err).Msg("cinegraph server stopped with an error")
	}
}

func run() error {
	cfg, err := config.LoadWithKoanf()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
		Output:    os.Stderr,
	})
	metrics.AppInfo.WithLabelValues(version, runtime.Version()).Set(1)
	logStartup(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	context.AfterFunc(ctx, func() {
		logging.Info().Msg("shutdown requested, stopping services")
	})

	tree := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		FailureThreshold: 5,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  services.DefaultShutdownGrace,
	})

	logger := logging.Logger()
	graph, err := initGraph(cfg, logger, tree)
	if err != nil {
		return fmt.Errorf("initialize graph engine: %w", err)
	}

	handler := api.NewHandler(ctx, graph.Engine, middleware.NewPerformanceMonitor(1000, time.Second, logger), logger)
	router := api.NewRouter(handler, api.GuardsFromConfig(cfg.Security))
	server := newHTTPServer(cfg, router.SetupChi())
	tree.Add(supervisor.LayerAPI, services.NewHTTPService(server, services.DefaultShutdownGrace))

	logging.Info().Str("addr", server.Addr).Msg("supervisor tree starting")
	err = <-tree.ServeBackground(ctx)

	if unstopped, _ := tree.UnstoppedServiceReport(); len(unstopped) > 0 {
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("service missed its stop deadline")
		}
	}

	status := graph.Engine.Status()
	logging.Info().
		Int("graph_version", status.GraphVersion).
		Int("movies", status.MovieCount).
		Msg("cinegraph stopped")

	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("supervisor tree: %w", err)
	}
	return nil
}

func logStartup(cfg *config.Config) {
	logging.Info().
		Str("version", version).
		Str("catalog", cfg.Catalog.Path).
		Str("format", cfg.Catalog.Format).
		Str("environment", cfg.Server.Environment).
		Msg("cinegraph starting")

	if cfg.Security.RateLimitDisabled {
		logging.Warn().Msg("rate limiting is disabled (DISABLE_RATE_LIMIT=true)")
	}
	if cfg.ShouldWarnAboutCORS() {
		logging.Warn().Msg("CORS allows any origin (CORS_ORIGINS=*); list explicit origins in production")
	}
}

func newHTTPServer(cfg *config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
	}
}
