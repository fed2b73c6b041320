// Cinegraph - Movie Similarity Graph and Recommendation Queries
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinegraph

// Package validation checks catalog rows and request bodies against their
// go-playground/validator tags.
//
// Failures name fields by their json tag and read as plain sentences:
//
//	min_weight must be less than or equal to 11
//	titles must be at least 1
//	title must not be blank
//
// The notblank tag rejects strings made only of whitespace. The shared
// validator is built on first use and is safe for concurrent use.
package validation
