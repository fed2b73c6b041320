// Cinegraph - Movie Similarity Graph and Recommendation Queries
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinegraph

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// ConfigPathEnvVar names a YAML file tried before DefaultConfigPaths.
const ConfigPathEnvVar = "CONFIG_PATH"

// DefaultConfigPaths are searched in order; the first existing file is loaded.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/cinegraph/config.yaml",
	"/etc/cinegraph/config.yml",
}

// envBindings maps each recognized environment variable to its config key.
// Every other variable is ignored.
var envBindings = map[string]string{
	"CATALOG_PATH":      "catalog.path",
	"CATALOG_FORMAT":    "catalog.format",
	"CATALOG_DELIMITER": "catalog.delimiter",

	"GRAPH_BUILD_WORKERS":     "graph.build_workers",
	"GRAPH_BUILD_TIMEOUT":     "graph.build_timeout",
	"GRAPH_REBUILD_INTERVAL":  "graph.rebuild_interval",
	"GRAPH_RESULT_LIMIT":      "graph.result_limit",
	"GRAPH_MAX_SEEDS":         "graph.max_seeds",
	"GRAPH_MAX_MATRIX_SIZE":   "graph.max_matrix_size",
	"GRAPH_CACHE_ENABLED":     "graph.cache_enabled",
	"GRAPH_CACHE_TTL":         "graph.cache_ttl",
	"GRAPH_CACHE_MAX_ENTRIES": "graph.cache_max_entries",

	"HTTP_PORT":    "server.port",
	"HTTP_HOST":    "server.host",
	"HTTP_TIMEOUT": "server.timeout",
	"ENVIRONMENT":  "server.environment",

	"RATE_LIMIT_REQUESTS":  "security.rate_limit_reqs",
	"RATE_LIMIT_WINDOW":    "security.rate_limit_window",
	"DISABLE_RATE_LIMIT":   "security.rate_limit_disabled",
	"RATE_LIMIT_PER_ROUTE": "security.rate_limit_per_route",
	"CORS_ORIGINS":         "security.cors_origins",

	"LOG_LEVEL":  "logging.level",
	"LOG_FORMAT": "logging.format",
	"LOG_CALLER": "logging.caller",
}

// listKeys arrive from the environment as comma-separated strings.
var listKeys = []string{"security.cors_origins"}

func defaultConfig() *Config {
	return &Config{
		Catalog: CatalogConfig{Path: "peliculas.txt", Format: "txt", Delimiter: ";"},
		Graph: GraphConfig{
			BuildTimeout:    10 * time.Minute,
			ResultLimit:     5,
			MaxSeeds:        50,
			MaxMatrixSize:   2000,
			CacheEnabled:    true,
			CacheTTL:        5 * time.Minute,
			CacheMaxEntries: 10_000,
		},
		Server: ServerConfig{
			Port:        3858,
			Host:        "0.0.0.0",
			Timeout:     30 * time.Second,
			Environment: "development",
		},
		Security: SecurityConfig{
			RateLimitReqs:   100,
			RateLimitWindow: time.Minute,
			CORSOrigins:     []string{},
		},
		Logging: LoggingConfig{Level: "info", Format: "json"},
	}
}

// LoadWithKoanf merges built-in defaults, then the first config file found,
// then the environment, and validates the result. Later layers win.
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}
	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}
	if err := k.Load(env.Provider("", ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}
	for _, key := range listKeys {
		if raw, ok := k.Get(key).(string); ok {
			if err := k.Set(key, splitList(raw)); err != nil {
				return nil, fmt.Errorf("set %s: %w", key, err)
			}
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("decode configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// envKey returns the config key bound to an environment variable, ignoring
// case, or "" so koanf skips it.
func envKey(name string) string {
	return envBindings[strings.ToUpper(name)]
}

// findConfigFile returns "" when neither CONFIG_PATH nor a default path exists.
func findConfigFile() string {
	candidates := DefaultConfigPaths
	if p := os.Getenv(ConfigPathEnvVar); p != "" {
		candidates = append([]string{p}, candidates...)
	}
	for _, p := range candidates {
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p
		}
	}
	return ""
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
