// Cinegraph - Movie Similarity Graph and Recommendation Queries
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinegraph

package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// isolateEnv unsets every bound variable and moves into an empty directory so
// neither the host environment nor a stray config.yaml leaks into a test.
func isolateEnv(t *testing.T) {
	t.Helper()
	for name := range envBindings {
		t.Setenv(name, "")
		os.Unsetenv(name)
	}
	t.Chdir(t.TempDir())
	t.Setenv(ConfigPathEnvVar, "")
}

// TestDefaultConfig verifies that defaultConfig() returns proper defaults
func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.Catalog.Path != "peliculas.txt" {
		t.Errorf("Catalog.Path = %q, want peliculas.txt", cfg.Catalog.Path)
	}
	if cfg.Catalog.Format != "txt" {
		t.Errorf("Catalog.Format = %q, want txt", cfg.Catalog.Format)
	}
	if cfg.Catalog.Delimiter != ";" {
		t.Errorf("Catalog.Delimiter = %q, want ;", cfg.Catalog.Delimiter)
	}

	if cfg.Graph.BuildWorkers != 0 {
		t.Errorf("Graph.BuildWorkers = %d, want 0", cfg.Graph.BuildWorkers)
	}
	if cfg.Graph.BuildTimeout != 10*time.Minute {
		t.Errorf("Graph.BuildTimeout = %v, want 10m", cfg.Graph.BuildTimeout)
	}
	if cfg.Graph.RebuildInterval != 0 {
		t.Errorf("Graph.RebuildInterval = %v, want 0", cfg.Graph.RebuildInterval)
	}
	if cfg.Graph.ResultLimit != 5 {
		t.Errorf("Graph.ResultLimit = %d, want 5", cfg.Graph.ResultLimit)
	}
	if !cfg.Graph.CacheEnabled {
		t.Error("Graph.CacheEnabled should be true by default")
	}

	if cfg.Server.Port != 3858 {
		t.Errorf("Server.Port = %d, want 3858", cfg.Server.Port)
	}
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Server.Host = %q, want 0.0.0.0", cfg.Server.Host)
	}

	if cfg.Security.RateLimitReqs != 100 {
		t.Errorf("Security.RateLimitReqs = %d, want 100", cfg.Security.RateLimitReqs)
	}
	if len(cfg.Security.CORSOrigins) != 0 {
		t.Errorf("Security.CORSOrigins = %v, want empty", cfg.Security.CORSOrigins)
	}

	if cfg.Logging.Level != "info" || cfg.Logging.Format != "json" || cfg.Logging.Caller {
		t.Errorf("Logging = %+v, want info/json/no caller", cfg.Logging)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("defaultConfig().Validate() error = %v", err)
	}
}

func TestEnvKey(t *testing.T) {
	tests := map[string]string{
		"CATALOG_PATH":           "catalog.path",
		"CATALOG_DELIMITER":      "catalog.delimiter",
		"GRAPH_REBUILD_INTERVAL": "graph.rebuild_interval",
		"GRAPH_CACHE_TTL":        "graph.cache_ttl",
		"HTTP_PORT":              "server.port",
		"ENVIRONMENT":            "server.environment",
		"DISABLE_RATE_LIMIT":     "security.rate_limit_disabled",
		"RATE_LIMIT_PER_ROUTE":   "security.rate_limit_per_route",
		"CORS_ORIGINS":           "security.cors_origins",
		"LOG_CALLER":             "logging.caller",
		"catalog_path":           "catalog.path",
		"HOME":                   "",
		"GRAPH_UNKNOWN":          "",
	}

	for name, want := range tests {
		if got := envKey(name); got != want {
			t.Errorf("envKey(%q) = %q, want %q", name, got, want)
		}
	}

	// Every binding must land on a key the defaults define.
	known := koanfKeys(t)
	for name, key := range envBindings {
		if !known[key] {
			t.Errorf("%s is bound to unknown key %q", name, key)
		}
	}
}

// koanfKeys lists the flattened keys of the default configuration.
func koanfKeys(t *testing.T) map[string]bool {
	t.Helper()
	k := koanf.New(".")
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		t.Fatalf("load defaults: %v", err)
	}
	keys := make(map[string]bool)
	for _, key := range k.Keys() {
		keys[key] = true
	}
	return keys
}

func TestSplitList(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"https://a.example", []string{"https://a.example"}},
		{" https://a.example , https://b.example,", []string{"https://a.example", "https://b.example"}},
		{"", nil},
		{" , ", nil},
	}
	for _, tt := range tests {
		if got := splitList(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("splitList(%q) = %#v, want %#v", tt.in, got, tt.want)
		}
	}
}

func TestFindConfigFile(t *testing.T) {
	isolateEnv(t)
	dir, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd() error = %v", err)
	}

	t.Run("no config file exists", func(t *testing.T) {
		if got := findConfigFile(); got != "" {
			t.Errorf("findConfigFile() = %q, want empty string", got)
		}
	})

	t.Run("config.yaml exists", func(t *testing.T) {
		path := filepath.Join(dir, "config.yaml")
		if err := os.WriteFile(path, []byte("logging:\n  level: debug\n"), 0o600); err != nil {
			t.Fatalf("WriteFile() error = %v", err)
		}
		defer os.Remove(path)

		if got := findConfigFile(); got != "config.yaml" {
			t.Errorf("findConfigFile() = %q, want config.yaml", got)
		}
	})

	t.Run("CONFIG_PATH takes precedence", func(t *testing.T) {
		custom := filepath.Join(t.TempDir(), "custom.yaml")
		if err := os.WriteFile(custom, []byte("{}"), 0o600); err != nil {
			t.Fatalf("WriteFile() error = %v", err)
		}
		t.Setenv(ConfigPathEnvVar, custom)

		if got := findConfigFile(); got != custom {
			t.Errorf("findConfigFile() = %q, want %q", got, custom)
		}
	})

	t.Run("CONFIG_PATH pointing at a missing file", func(t *testing.T) {
		t.Setenv(ConfigPathEnvVar, filepath.Join(dir, "missing.yaml"))

		if got := findConfigFile(); got != "" {
			t.Errorf("findConfigFile() = %q, want empty string", got)
		}
	})
}

func TestLoadWithKoanfDefaults(t *testing.T) {
	isolateEnv(t)

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if !reflect.DeepEqual(cfg.Graph, defaultConfig().Graph) {
		t.Errorf("Graph = %+v, want defaults %+v", cfg.Graph, defaultConfig().Graph)
	}
	if cfg.Server.Addr() != "0.0.0.0:3858" {
		t.Errorf("Server.Addr() = %q, want 0.0.0.0:3858", cfg.Server.Addr())
	}
}

func TestLoadWithKoanfEnvVars(t *testing.T) {
	isolateEnv(t)

	t.Setenv("CATALOG_PATH", "/data/movies.csv.gz")
	t.Setenv("CATALOG_FORMAT", "duckdb")
	t.Setenv("CATALOG_DELIMITER", ",")
	t.Setenv("GRAPH_BUILD_WORKERS", "4")
	t.Setenv("GRAPH_REBUILD_INTERVAL", "30m")
	t.Setenv("GRAPH_CACHE_ENABLED", "false")
	t.Setenv("HTTP_PORT", "9000")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example,")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.Catalog.Path != "/data/movies.csv.gz" || cfg.Catalog.Format != "duckdb" || cfg.Catalog.Delimiter != "," {
		t.Errorf("Catalog = %+v, want env overrides", cfg.Catalog)
	}
	if cfg.Graph.BuildWorkers != 4 {
		t.Errorf("Graph.BuildWorkers = %d, want 4", cfg.Graph.BuildWorkers)
	}
	if cfg.Graph.RebuildInterval != 30*time.Minute {
		t.Errorf("Graph.RebuildInterval = %v, want 30m", cfg.Graph.RebuildInterval)
	}
	if cfg.Graph.CacheEnabled {
		t.Error("Graph.CacheEnabled = true, want false")
	}
	if cfg.Server.Port != 9000 {
		t.Errorf("Server.Port = %d, want 9000", cfg.Server.Port)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
	want := []string{"https://a.example", "https://b.example"}
	if !reflect.DeepEqual(cfg.Security.CORSOrigins, want) {
		t.Errorf("Security.CORSOrigins = %v, want %v", cfg.Security.CORSOrigins, want)
	}

	// Defaults still apply to unset values
	if cfg.Graph.ResultLimit != 5 {
		t.Errorf("Graph.ResultLimit = %d, want 5 (default)", cfg.Graph.ResultLimit)
	}
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Server.Host = %q, want 0.0.0.0 (default)", cfg.Server.Host)
	}
}

func TestLoadWithKoanfConfigFile(t *testing.T) {
	isolateEnv(t)

	content := `
catalog:
  path: /srv/peliculas.txt
graph:
  result_limit: 10
  cache_ttl: 1m
server:
  port: 8080
security:
  cors_origins:
    - https://movies.example
logging:
  format: console
`
	path := filepath.Join(t.TempDir(), "cinegraph.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	t.Setenv(ConfigPathEnvVar, path)

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.Catalog.Path != "/srv/peliculas.txt" {
		t.Errorf("Catalog.Path = %q, want /srv/peliculas.txt", cfg.Catalog.Path)
	}
	if cfg.Catalog.Delimiter != ";" {
		t.Errorf("Catalog.Delimiter = %q, want ; (default)", cfg.Catalog.Delimiter)
	}
	if cfg.Graph.ResultLimit != 10 {
		t.Errorf("Graph.ResultLimit = %d, want 10", cfg.Graph.ResultLimit)
	}
	if cfg.Graph.CacheTTL != time.Minute {
		t.Errorf("Graph.CacheTTL = %v, want 1m", cfg.Graph.CacheTTL)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if want := []string{"https://movies.example"}; !reflect.DeepEqual(cfg.Security.CORSOrigins, want) {
		t.Errorf("Security.CORSOrigins = %v, want %v", cfg.Security.CORSOrigins, want)
	}
	if cfg.Logging.Format != "console" {
		t.Errorf("Logging.Format = %q, want console", cfg.Logging.Format)
	}
}

func TestLoadWithKoanfEnvOverridesFile(t *testing.T) {
	isolateEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("server:\n  port: 8080\nlogging:\n  level: warn\n"), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("HTTP_PORT", "7000")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.Server.Port != 7000 {
		t.Errorf("Server.Port = %d, want 7000 (env overrides file)", cfg.Server.Port)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("Logging.Level = %q, want warn (from file)", cfg.Logging.Level)
	}
}

func TestLoadWithKoanfValidation(t *testing.T) {
	tests := []struct {
		name    string
		envVars map[string]string
		errMsg  string
	}{
		{
			name:    "unknown catalog format",
			envVars: map[string]string{"CATALOG_FORMAT": "xlsx"},
			errMsg:  "CATALOG_FORMAT must be one of",
		},
		{
			name:    "multi-character delimiter",
			envVars: map[string]string{"CATALOG_DELIMITER": ";;"},
			errMsg:  "CATALOG_DELIMITER must be a single character",
		},
		{
			name:    "port out of range",
			envVars: map[string]string{"HTTP_PORT": "70000"},
			errMsg:  "HTTP_PORT must be between 1 and 65535",
		},
		{
			name:    "invalid log level",
			envVars: map[string]string{"LOG_LEVEL": "verbose"},
			errMsg:  "LOG_LEVEL must be one of",
		},
		{
			name:    "wildcard CORS in production",
			envVars: map[string]string{"CORS_ORIGINS": "*", "ENVIRONMENT": "production"},
			errMsg:  "CORS_ORIGINS=* is not allowed with ENVIRONMENT=production",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolateEnv(t)
			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}

			_, err := LoadWithKoanf()
			if err == nil {
				t.Fatal("LoadWithKoanf() error = nil, want validation error")
			}
			if !strings.Contains(err.Error(), tt.errMsg) {
				t.Errorf("LoadWithKoanf() error = %q, want it to contain %q", err.Error(), tt.errMsg)
			}
		})
	}
}
