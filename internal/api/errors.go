// Cinegraph - Movie Similarity Graph and Recommendation Queries
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinegraph

package api

// Error codes carried in models.APIError.Code.
const (
	ErrCodeValidation       = "VALIDATION_ERROR"
	ErrCodeInvalidJSON      = "INVALID_JSON"
	ErrCodeNotFound         = "NOT_FOUND"
	ErrCodeMethodNotAllowed = "METHOD_NOT_ALLOWED"
	ErrCodeGraphNotReady    = "GRAPH_NOT_READY"
	ErrCodeBuildInProgress  = "BUILD_IN_PROGRESS"
	ErrCodeMatrixTooLarge   = "MATRIX_TOO_LARGE"
	ErrCodeRateLimited      = "RATE_LIMIT_EXCEEDED"
	ErrCodeInternal         = "INTERNAL_ERROR"
)
