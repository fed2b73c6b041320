// Cinegraph - Movie Similarity Graph and Recommendation Queries
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinegraph

package moviegraph

import "errors"

var (
	// ErrEmptyTitle is returned when a movie without a title is ingested.
	ErrEmptyTitle = errors.New("movie title is empty")

	// ErrGraphBuilt is returned when ingesting into, or building, a graph that has already been built.
	ErrGraphBuilt = errors.New("graph already built")

	// ErrUnknownField is returned when a criterion names a field that does not exist.
	ErrUnknownField = errors.New("unknown field")

	// ErrFieldKind is returned when a criterion kind does not apply to its field.
	ErrFieldKind = errors.New("criterion kind not supported for field")

	// ErrEmptyValue is returned when a text criterion has no usable value.
	ErrEmptyValue = errors.New("criterion value is empty")

	// ErrNegativeValue is returned when a numeric criterion is negative.
	ErrNegativeValue = errors.New("criterion value is negative")
)
