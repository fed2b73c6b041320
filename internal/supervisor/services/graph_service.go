// Cinegraph - Movie Similarity Graph and Recommendation Queries
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinegraph

package services

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/cinegraph/internal/recommend"
)

// GraphEngine is the part of *recommend.Engine the graph service drives.
type GraphEngine interface {
	// Build loads the catalog and puts a freshly built graph into service.
	Build(ctx context.Context) error

	// CleanupCache drops expired query results and returns how many were removed.
	CleanupCache() int
}

// DefaultCacheCleanupInterval is used when GraphServiceConfig.CacheCleanupInterval is zero.
const DefaultCacheCleanupInterval = time.Minute

// GraphServiceConfig holds configuration for the graph service.
type GraphServiceConfig struct {
	// BuildOnStartup builds the graph as soon as the service starts.
	BuildOnStartup bool

	// RebuildInterval rebuilds the graph periodically. Zero disables rebuilds.
	RebuildInterval time.Duration

	// CacheCleanupInterval is how often expired query results are dropped.
	CacheCleanupInterval time.Duration
}

// GraphService builds the similarity graph under supervision and keeps it fresh.
// A failed build is logged and retried on the next tick; the engine keeps serving
// the last graph that built successfully.
type GraphService struct {
	engine GraphEngine
	config GraphServiceConfig
	logger zerolog.Logger
	name   string
}

// NewGraphService creates a new graph service.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewGraphService(engine GraphEngine, cfg GraphServiceConfig, logger zerolog.Logger) *GraphService {
	if cfg.CacheCleanupInterval <= 0 {
		cfg.CacheCleanupInterval = DefaultCacheCleanupInterval
	}
	return &GraphService{
		engine: engine,
		config: cfg,
		logger: logger.With().Str("service", "graph").Logger(),
		name:   "graph-service",
	}
}

// Serve implements the suture.Service interface.
func (s *GraphService) Serve(ctx context.Context) error {
	s.logger.Info().
		Bool("build_on_startup", s.config.BuildOnStartup).
		Dur("rebuild_interval", s.config.RebuildInterval).
		Msg("graph service starting")

	if s.config.BuildOnStartup {
		if err := s.build(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			s.logger.Warn().Err(err).Msg("initial graph build failed")
		}
	}

	// A nil channel never fires, which disables rebuilds.
	var rebuild <-chan time.Time
	if s.config.RebuildInterval > 0 {
		ticker := time.NewTicker(s.config.RebuildInterval)
		defer ticker.Stop()
		rebuild = ticker.C
	}

	cleanup := time.NewTicker(s.config.CacheCleanupInterval)
	defer cleanup.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("graph service shutting down")
			return ctx.Err()

		case <-rebuild:
			s.logger.Debug().Msg("scheduled rebuild triggered")
			if err := s.build(ctx); err != nil && ctx.Err() == nil {
				s.logger.Warn().Err(err).Msg("scheduled graph build failed")
			}

		case <-cleanup.C:
			if n := s.engine.CleanupCache(); n > 0 {
				s.logger.Debug().Int("removed", n).Msg("expired query results dropped")
			}
		}
	}
}

// build runs one build. A build started through the API is not an error.
func (s *GraphService) build(ctx context.Context) error {
	err := s.engine.Build(ctx)
	if errors.Is(err, recommend.ErrBuildInProgress) {
		s.logger.Debug().Msg("build already in progress, skipping")
		return nil
	}
	return err
}

// String returns the service name for logging.
func (s *GraphService) String() string {
	return s.name
}
