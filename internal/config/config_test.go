// Cinegraph - Movie Similarity Graph and Recommendation Queries
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinegraph

package config

import (
	"strings"
	"testing"
	"time"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"empty catalog path", func(c *Config) { c.Catalog.Path = "  " }, true},
		{"duckdb format", func(c *Config) { c.Catalog.Format = "duckdb" }, false},
		{"unknown format", func(c *Config) { c.Catalog.Format = "csv" }, true},
		{"tab delimiter", func(c *Config) { c.Catalog.Delimiter = "\t" }, false},
		{"empty delimiter", func(c *Config) { c.Catalog.Delimiter = "" }, true},
		{"negative workers", func(c *Config) { c.Graph.BuildWorkers = -1 }, true},
		{"zero build timeout", func(c *Config) { c.Graph.BuildTimeout = 0 }, true},
		{"negative rebuild interval", func(c *Config) { c.Graph.RebuildInterval = -time.Second }, true},
		{"rebuild interval too short", func(c *Config) { c.Graph.RebuildInterval = 30 * time.Second }, true},
		{"hourly rebuild", func(c *Config) { c.Graph.RebuildInterval = time.Hour }, false},
		{"zero result limit", func(c *Config) { c.Graph.ResultLimit = 0 }, true},
		{"zero max seeds", func(c *Config) { c.Graph.MaxSeeds = 0 }, true},
		{"zero matrix size", func(c *Config) { c.Graph.MaxMatrixSize = 0 }, true},
		{"cache without TTL", func(c *Config) { c.Graph.CacheTTL = 0 }, true},
		{"disabled cache without TTL", func(c *Config) {
			c.Graph.CacheEnabled = false
			c.Graph.CacheTTL = 0
			c.Graph.CacheMaxEntries = 0
		}, false},
		{"port zero", func(c *Config) { c.Server.Port = 0 }, true},
		{"zero http timeout", func(c *Config) { c.Server.Timeout = 0 }, true},
		{"rate limit too small", func(c *Config) { c.Security.RateLimitReqs = 0 }, true},
		{"rate limit window too long", func(c *Config) { c.Security.RateLimitWindow = 2 * time.Hour }, true},
		{"rate limit disabled skips bounds", func(c *Config) {
			c.Security.RateLimitDisabled = true
			c.Security.RateLimitReqs = 0
		}, false},
		{"wildcard CORS in development", func(c *Config) { c.Security.CORSOrigins = []string{"*"} }, false},
		{"wildcard CORS in production", func(c *Config) {
			c.Security.CORSOrigins = []string{"*"}
			c.Server.Environment = "production"
		}, true},
		{"console logging", func(c *Config) { c.Logging.Format = "console" }, false},
		{"unknown log format", func(c *Config) { c.Logging.Format = "xml" }, true},
		{"unknown log level", func(c *Config) { c.Logging.Level = "loud" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.modify(cfg)

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_Validate_ReportsEveryProblem(t *testing.T) {
	cfg := defaultConfig()
	cfg.Catalog.Format = "csv"
	cfg.Server.Port = 0
	cfg.Logging.Level = "loud"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() = nil, want error")
	}
	for _, want := range []string{`CATALOG_FORMAT must be one of txt, duckdb, got "csv"`, "HTTP_PORT", "LOG_LEVEL"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("Validate() = %q, missing %q", err, want)
		}
	}
	if n := strings.Count(err.Error(), "\n") + 1; n != 3 {
		t.Errorf("Validate() reported %d problems, want 3:\n%v", n, err)
	}
}

func TestConfig_Environment(t *testing.T) {
	tests := []struct {
		env        string
		production bool
	}{
		{"", false},
		{"development", false},
		{"staging", false},
		{"production", true},
		{"prod", true},
		{"PROD", true},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			cfg := defaultConfig()
			cfg.Server.Environment = tt.env
			if got := cfg.IsProduction(); got != tt.production {
				t.Errorf("IsProduction() = %v, want %v", got, tt.production)
			}
		})
	}
}

func TestShouldWarnAboutCORS(t *testing.T) {
	cfg := defaultConfig()
	if cfg.ShouldWarnAboutCORS() {
		t.Error("ShouldWarnAboutCORS() = true with no origins")
	}
	cfg.Security.CORSOrigins = []string{"https://a.example", "*"}
	if !cfg.ShouldWarnAboutCORS() {
		t.Error("ShouldWarnAboutCORS() = false with wildcard origin")
	}
}

func TestServerConfig_Addr(t *testing.T) {
	s := ServerConfig{Host: "::1", Port: 3858}
	if got := s.Addr(); got != "[::1]:3858" {
		t.Errorf("Addr() = %q, want [::1]:3858", got)
	}
}
