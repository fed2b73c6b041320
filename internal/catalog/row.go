// Cinegraph - Movie Similarity Graph and Recommendation Queries
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinegraph

package catalog

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tomtom215/cinegraph/internal/models"
	"github.com/tomtom215/cinegraph/internal/moviegraph"
	"github.com/tomtom215/cinegraph/internal/validation"
)

// columns maps each recognised field to its position in a row.
type columns map[moviegraph.Field]int

// mapHeader resolves header names to fields. Unknown columns are ignored; when a field
// appears twice the first column wins.
func mapHeader(header []string) (columns, error) {
	cols := make(columns, len(header))
	for i, name := range header {
		// A UTF-8 BOM may precede the first header name.
		name = strings.TrimPrefix(name, "\ufeff")
		f, err := moviegraph.ParseField(name)
		if err != nil {
			continue
		}
		if _, dup := cols[f]; !dup {
			cols[f] = i
		}
	}

	for _, required := range []moviegraph.Field{moviegraph.FieldTitle, moviegraph.FieldRating} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, required)
		}
	}
	return cols, nil
}

// cell returns the trimmed value of field in record, or "" when the column is absent.
func (c columns) cell(record []string, f moviegraph.Field) string {
	i, ok := c[f]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

// convert turns a record into a movie. A non-empty reason means the row must be skipped.
func (c columns) convert(record []string) (models.Movie, string) {
	m := models.Movie{
		Title:    c.cell(record, moviegraph.FieldTitle),
		Director: c.cell(record, moviegraph.FieldDirector),
		Genres:   splitGenres(c.cell(record, moviegraph.FieldGenres)),
		Votes:    parseIntOrZero(c.cell(record, moviegraph.FieldVotes)),
		Duration: parseIntOrZero(c.cell(record, moviegraph.FieldDuration)),
		Year:     parseIntOrZero(c.cell(record, moviegraph.FieldYear)),
	}
	if m.Title == "" {
		return m, "missing title"
	}

	raw := c.cell(record, moviegraph.FieldRating)
	rating, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return m, fmt.Sprintf("invalid rating %q", raw)
	}
	m.Rating = rating

	if verr := validation.ValidateStruct(&m); verr != nil {
		return m, verr.Error()
	}
	return m, ""
}

// collect converts record and appends it to the movies or the skipped rows of r.
func (c columns) collect(r *Result, line int, record []string) {
	m, reason := c.convert(record)
	if reason != "" {
		r.Skipped = append(r.Skipped, SkippedRow{Line: line, Title: m.Title, Reason: reason})
		return
	}
	r.Movies = append(r.Movies, m)
}

func splitGenres(s string) []string {
	genres := make([]string, 0, 2)
	for _, g := range strings.Split(s, ",") {
		if g = strings.TrimSpace(g); g != "" {
			genres = append(genres, g)
		}
	}
	return genres
}

// parseIntOrZero parses an integer, returning 0 for empty or malformed input.
func parseIntOrZero(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
