// Cinegraph - Movie Similarity Graph and Recommendation Queries
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinegraph

package catalog

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/tomtom215/cinegraph/internal/models"
)

// Catalog formats.
const (
	FormatTXT    = "txt"
	FormatDuckDB = "duckdb"
)

// DefaultDelimiter separates columns in the catalog file.
const DefaultDelimiter = ';'

var (
	// ErrMissingColumn is returned when the header lacks a required column.
	ErrMissingColumn = errors.New("catalog: missing required column")

	// ErrUnknownFormat is returned by NewSource for an unsupported format.
	ErrUnknownFormat = errors.New("catalog: unknown format")
)

// Source produces the movie records of a catalog.
type Source interface {
	// Load reads the whole catalog. Rows that cannot be converted are reported
	// in Result.Skipped rather than failing the load.
	Load(ctx context.Context) (*Result, error)

	// String identifies the source in logs and metrics.
	String() string
}

// Result is the outcome of loading a catalog.
type Result struct {
	// Movies holds the converted records in file order.
	Movies []models.Movie

	// Skipped lists the rows that were rejected.
	Skipped []SkippedRow
}

// SkippedRow describes a rejected catalog row.
type SkippedRow struct {
	Line   int    `json:"line"`
	Title  string `json:"title,omitempty"`
	Reason string `json:"reason"`
}

// Config selects and configures a catalog reader.
type Config struct {
	Path      string
	Format    string
	Delimiter string
}

// NewSource returns the reader for cfg.Format. An empty format selects FormatTXT and an
// empty delimiter selects DefaultDelimiter.
func NewSource(cfg Config) (Source, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("catalog: path is required")
	}

	delim := DefaultDelimiter
	if cfg.Delimiter != "" {
		r, size := utf8.DecodeRuneInString(cfg.Delimiter)
		if size != len(cfg.Delimiter) || r == utf8.RuneError {
			return nil, fmt.Errorf("catalog: delimiter must be a single character, got %q", cfg.Delimiter)
		}
		delim = r
	}

	switch cfg.Format {
	case "", FormatTXT:
		return NewTXTReader(cfg.Path, delim), nil
	case FormatDuckDB:
		return NewDuckDBReader(cfg.Path, delim), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, cfg.Format)
	}
}
