// Cinegraph - Movie Similarity Graph and Recommendation Queries
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinegraph

package config

import (
	"net"
	"strconv"
	"time"
)

// Config is the server configuration. LoadWithKoanf layers it as built-in
// defaults, then an optional YAML file, then environment variables; the last
// source that sets a key wins. A loaded Config is never mutated.
//
// Catalog and Graph describe the data the server builds from, Server and
// Security the HTTP surface, Logging the process logger.
type Config struct {
	Catalog  CatalogConfig  `koanf:"catalog"`
	Graph    GraphConfig    `koanf:"graph"`
	Server   ServerConfig   `koanf:"server"`
	Security SecurityConfig `koanf:"security"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// CatalogConfig describes the movie catalog file.
//
// Environment Variables:
//   - CATALOG_PATH: Path to the catalog file (default: peliculas.txt)
//   - CATALOG_FORMAT: Reader to use, txt or duckdb (default: txt)
//   - CATALOG_DELIMITER: Single-character field separator (default: ;)
type CatalogConfig struct {
	Path      string `koanf:"path"`
	Format    string `koanf:"format"`
	Delimiter string `koanf:"delimiter"`
}

// GraphConfig holds graph build, query and cache settings.
//
// Environment Variables:
//   - GRAPH_BUILD_WORKERS: Goroutines scoring movie pairs, 0 = runtime.NumCPU() (default: 0)
//   - GRAPH_BUILD_TIMEOUT: Maximum duration of a build (default: 10m)
//   - GRAPH_REBUILD_INTERVAL: Rebuild period, 0 = build once at startup (default: 0)
//   - GRAPH_RESULT_LIMIT: Titles returned by ranked queries (default: 5)
//   - GRAPH_MAX_SEEDS: Maximum titles accepted by a multi-title similarity query (default: 50)
//   - GRAPH_MAX_MATRIX_SIZE: Largest graph served as an adjacency matrix (default: 2000)
//   - GRAPH_CACHE_ENABLED: Cache ranked query results (default: true)
//   - GRAPH_CACHE_TTL: Cache entry lifetime (default: 5m)
//   - GRAPH_CACHE_MAX_ENTRIES: Cache capacity (default: 10000)
type GraphConfig struct {
	BuildWorkers    int           `koanf:"build_workers"`
	BuildTimeout    time.Duration `koanf:"build_timeout"`
	RebuildInterval time.Duration `koanf:"rebuild_interval"`
	ResultLimit     int           `koanf:"result_limit"`
	MaxSeeds        int           `koanf:"max_seeds"`
	MaxMatrixSize   int           `koanf:"max_matrix_size"`
	CacheEnabled    bool          `koanf:"cache_enabled"`
	CacheTTL        time.Duration `koanf:"cache_ttl"`
	CacheMaxEntries int           `koanf:"cache_max_entries"`
}

// ServerConfig holds HTTP server settings.
//
// Environment Variables:
//   - HTTP_HOST, HTTP_PORT: listen address (default: 0.0.0.0:3858)
//   - HTTP_TIMEOUT: read and write timeout per request (default: 30s)
//   - ENVIRONMENT: development, staging or production (default: development)
type ServerConfig struct {
	Port        int           `koanf:"port"`
	Host        string        `koanf:"host"`
	Timeout     time.Duration `koanf:"timeout"`
	Environment string        `koanf:"environment"`
}

// SecurityConfig configures api.GuardsFromConfig.
//
// Environment Variables:
//   - RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW: per-client budget of /api/v1 (default: 100 per 1m)
//   - DISABLE_RATE_LIMIT: turn every limiter off (default: false)
//   - RATE_LIMIT_PER_ROUTE: budget each client per request path (default: false)
//   - CORS_ORIGINS: comma separated allowed origins, empty denies all
type SecurityConfig struct {
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	RateLimitPerRoute bool          `koanf:"rate_limit_per_route"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// LoggingConfig feeds logging.Init.
//
// Environment Variables:
//   - LOG_LEVEL: trace, debug, info, warn or error (default: info)
//   - LOG_FORMAT: json or console (default: json)
//   - LOG_CALLER: add file:line to every event (default: false)
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Addr returns the listen address of the HTTP server.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}
