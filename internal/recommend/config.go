// Cinegraph - Movie Similarity Graph and Recommendation Queries
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinegraph

package recommend

import (
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/cinegraph/internal/moviegraph"
)

// Config tunes an Engine. It holds only values, so a struct copy is a deep copy.
type Config struct {
	Build  BuildConfig  `json:"build"`
	Limits LimitsConfig `json:"limits"`
	Cache  CacheConfig  `json:"cache"`
}

// BuildConfig controls graph construction.
type BuildConfig struct {
	// Workers scoring movie pairs; 0 means runtime.NumCPU().
	Workers int
	// Timeout bounds catalog load plus build.
	Timeout time.Duration
}

// LimitsConfig bounds what a single query may ask for.
type LimitsConfig struct {
	ResultLimit     int `json:"result_limit"`
	MaxSeeds        int `json:"max_seeds"`
	MaxGenreOptions int `json:"max_genre_options"`
	// MaxMatrixSize is the largest node count AdjacencyMatrix serves.
	MaxMatrixSize int `json:"max_matrix_size"`
}

// CacheConfig controls the query result cache.
type CacheConfig struct {
	Enabled    bool
	TTL        time.Duration
	MaxEntries int
	// InvalidateOnBuild empties the cache after every successful build.
	InvalidateOnBuild bool
}

// DefaultConfig returns the production defaults.
func DefaultConfig() *Config {
	return &Config{
		Build: BuildConfig{Timeout: 10 * time.Minute},
		Limits: LimitsConfig{
			ResultLimit:     moviegraph.DefaultResultLimit,
			MaxSeeds:        50,
			MaxGenreOptions: moviegraph.MaxGenreOptions,
			MaxMatrixSize:   2000,
		},
		Cache: CacheConfig{
			Enabled:           true,
			TTL:               5 * time.Minute,
			MaxEntries:        10_000,
			InvalidateOnBuild: true,
		},
	}
}

// Validate reports every invalid field at once.
func (c *Config) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	if c.Build.Workers < 0 {
		bad("build.workers must be non-negative, got %d", c.Build.Workers)
	}
	if c.Build.Timeout <= 0 {
		bad("build.timeout must be positive, got %v", c.Build.Timeout)
	}

	for name, v := range map[string]int{
		"result_limit":      c.Limits.ResultLimit,
		"max_seeds":         c.Limits.MaxSeeds,
		"max_genre_options": c.Limits.MaxGenreOptions,
		"max_matrix_size":   c.Limits.MaxMatrixSize,
	} {
		if v < 1 {
			bad("limits.%s must be positive, got %d", name, v)
		}
	}

	if c.Cache.Enabled {
		if c.Cache.TTL <= 0 {
			bad("cache.ttl must be positive, got %v", c.Cache.TTL)
		}
		if c.Cache.MaxEntries < 1 {
			bad("cache.max_entries must be positive, got %d", c.Cache.MaxEntries)
		}
	}

	return errors.Join(errs...)
}

// Clone returns an independent copy.
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}

// MarshalJSON writes durations as Go duration strings.
func (b BuildConfig) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Workers int    `json:"workers"`
		Timeout string `json:"timeout"`
	}{b.Workers, b.Timeout.String()})
}

// MarshalJSON writes the TTL as a Go duration string.
func (c CacheConfig) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Enabled           bool   `json:"enabled"`
		TTL               string `json:"ttl"`
		MaxEntries        int    `json:"max_entries"`
		InvalidateOnBuild bool   `json:"invalidate_on_build"`
	}{c.Enabled, c.TTL.String(), c.MaxEntries, c.InvalidateOnBuild})
}
