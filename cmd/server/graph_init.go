// Cinegraph - Movie Similarity Graph and Recommendation Queries
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinegraph

package main

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tomtom215/cinegraph/internal/catalog"
	"github.com/tomtom215/cinegraph/internal/config"
	"github.com/tomtom215/cinegraph/internal/moviegraph"
	"github.com/tomtom215/cinegraph/internal/recommend"
	"github.com/tomtom215/cinegraph/internal/supervisor"
	"github.com/tomtom215/cinegraph/internal/supervisor/services"
)

// GraphComponents holds the graph engine and the service that keeps it built.
type GraphComponents struct {
	Engine  *recommend.Engine
	Source  catalog.Source
	Service *services.GraphService
}

// initGraph creates the catalog source and engine, and adds the graph service to
// the data layer of tree. The first build runs once the tree starts.
//
//nolint:gocritic // hugeParam: logger passed by value for zerolog chaining
func initGraph(cfg *config.Config, logger zerolog.Logger, tree *supervisor.SupervisorTree) (*GraphComponents, error) {
	src, err := catalog.NewSource(catalog.Config{
		Path:      cfg.Catalog.Path,
		Format:    cfg.Catalog.Format,
		Delimiter: cfg.Catalog.Delimiter,
	})
	if err != nil {
		return nil, fmt.Errorf("create catalog source: %w", err)
	}

	engine, err := recommend.NewEngine(buildEngineConfig(cfg), logger)
	if err != nil {
		return nil, fmt.Errorf("create graph engine: %w", err)
	}
	engine.SetSource(src)

	service := services.NewGraphService(engine, buildGraphServiceConfig(cfg), logger)
	tree.Add(supervisor.LayerData, service)

	logger.Info().
		Str("source", src.String()).
		Int("workers", cfg.Graph.BuildWorkers).
		Dur("rebuild_interval", cfg.Graph.RebuildInterval).
		Bool("cache_enabled", cfg.Graph.CacheEnabled).
		Msg("graph service added to supervisor tree")

	return &GraphComponents{
		Engine:  engine,
		Source:  src,
		Service: service,
	}, nil
}

// buildEngineConfig creates the engine configuration from app config.
func buildEngineConfig(cfg *config.Config) *recommend.Config {
	return &recommend.Config{
		Build: recommend.BuildConfig{
			Workers: cfg.Graph.BuildWorkers,
			Timeout: cfg.Graph.BuildTimeout,
		},
		Limits: recommend.LimitsConfig{
			ResultLimit:     cfg.Graph.ResultLimit,
			MaxSeeds:        cfg.Graph.MaxSeeds,
			MaxGenreOptions: moviegraph.MaxGenreOptions,
			MaxMatrixSize:   cfg.Graph.MaxMatrixSize,
		},
		Cache: recommend.CacheConfig{
			Enabled:           cfg.Graph.CacheEnabled,
			TTL:               cfg.Graph.CacheTTL,
			MaxEntries:        cfg.Graph.CacheMaxEntries,
			InvalidateOnBuild: true,
		},
	}
}

func buildGraphServiceConfig(cfg *config.Config) services.GraphServiceConfig {
	cleanup := services.DefaultCacheCleanupInterval
	if cfg.Graph.CacheEnabled && cfg.Graph.CacheTTL < cleanup {
		cleanup = cfg.Graph.CacheTTL
	}
	return services.GraphServiceConfig{
		BuildOnStartup:       true,
		RebuildInterval:      cfg.Graph.RebuildInterval,
		CacheCleanupInterval: cleanup,
	}
}
