// Cinegraph - Movie Similarity Graph and Recommendation Queries
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinegraph

package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"
	"unicode/utf8"
)

var (
	catalogFormats = []string{"txt", "duckdb"}
	logLevels      = []string{"trace", "debug", "info", "warn", "error"}
	logFormats     = []string{"json", "console"}
)

const (
	minRebuildInterval   = time.Minute
	maxRateLimitRequests = 100_000
	minRateLimitWindow   = time.Second
	maxRateLimitWindow   = time.Hour
)

// problems accumulates one error per invalid setting.
type problems []error

func (p *problems) check(ok bool, format string, args ...interface{}) {
	if !ok {
		*p = append(*p, fmt.Errorf(format, args...))
	}
}

// Validate reports every invalid setting, joined into one error, so a bad
// deployment is fixed in one pass. It returns nil for a usable Config.
func (c *Config) Validate() error {
	var p problems
	c.Catalog.validate(&p)
	c.Graph.validate(&p)
	c.Server.validate(&p)
	c.validateSecurity(&p)
	c.Logging.validate(&p)
	return errors.Join(p...)
}

func (cc CatalogConfig) validate(p *problems) {
	p.check(strings.TrimSpace(cc.Path) != "", "CATALOG_PATH is required")
	p.check(slices.Contains(catalogFormats, cc.Format),
		"CATALOG_FORMAT must be one of %s, got %q", strings.Join(catalogFormats, ", "), cc.Format)
	p.check(utf8.RuneCountInString(cc.Delimiter) == 1,
		"CATALOG_DELIMITER must be a single character, got %q", cc.Delimiter)
}

func (g GraphConfig) validate(p *problems) {
	p.check(g.BuildWorkers >= 0, "GRAPH_BUILD_WORKERS must not be negative")
	p.check(g.BuildTimeout > 0, "GRAPH_BUILD_TIMEOUT must be positive")
	p.check(g.RebuildInterval == 0 || g.RebuildInterval >= minRebuildInterval,
		"GRAPH_REBUILD_INTERVAL must be 0 or at least %v, got %v", minRebuildInterval, g.RebuildInterval)
	p.check(g.ResultLimit > 0, "GRAPH_RESULT_LIMIT must be positive")
	p.check(g.MaxSeeds > 0, "GRAPH_MAX_SEEDS must be positive")
	p.check(g.MaxMatrixSize > 0, "GRAPH_MAX_MATRIX_SIZE must be positive")
	if g.CacheEnabled {
		p.check(g.CacheTTL > 0, "GRAPH_CACHE_TTL must be positive while the cache is enabled")
		p.check(g.CacheMaxEntries > 0, "GRAPH_CACHE_MAX_ENTRIES must be positive while the cache is enabled")
	}
}

func (s ServerConfig) validate(p *problems) {
	p.check(s.Port >= 1 && s.Port <= 65535, "HTTP_PORT must be between 1 and 65535, got %d", s.Port)
	p.check(s.Timeout > 0, "HTTP_TIMEOUT must be positive")
}

// validateSecurity refuses a wildcard CORS origin in production and checks
// rate limit bounds unless rate limiting is off.
func (c *Config) validateSecurity(p *problems) {
	p.check(!(c.hasWildcardCORS() && c.IsProduction()),
		"CORS_ORIGINS=* is not allowed with ENVIRONMENT=%s; list the allowed origins", c.Server.Environment)

	s := c.Security
	if s.RateLimitDisabled {
		return
	}
	p.check(s.RateLimitReqs >= 1 && s.RateLimitReqs <= maxRateLimitRequests,
		"RATE_LIMIT_REQUESTS must be between 1 and %d", maxRateLimitRequests)
	p.check(s.RateLimitWindow >= minRateLimitWindow && s.RateLimitWindow <= maxRateLimitWindow,
		"RATE_LIMIT_WINDOW must be between %v and %v", minRateLimitWindow, maxRateLimitWindow)
}

func (l LoggingConfig) validate(p *problems) {
	p.check(slices.Contains(logLevels, l.Level),
		"LOG_LEVEL must be one of %s, got %q", strings.Join(logLevels, ", "), l.Level)
	p.check(l.Format == "" || slices.Contains(logFormats, l.Format),
		"LOG_FORMAT must be one of %s, got %q", strings.Join(logFormats, ", "), l.Format)
}

func (c *Config) hasWildcardCORS() bool {
	return slices.Contains(c.Security.CORSOrigins, "*")
}

// ShouldWarnAboutCORS reports a wildcard origin, which the server logs at
// startup outside production.
func (c *Config) ShouldWarnAboutCORS() bool {
	return c.hasWildcardCORS()
}

// IsProduction is true for ENVIRONMENT=production or prod, in any case.
func (c *Config) IsProduction() bool {
	switch strings.ToLower(c.Server.Environment) {
	case "production", "prod":
		return true
	}
	return false
}
