// Cinegraph - Movie Similarity Graph and Recommendation Queries
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinegraph

package models

import "time"

// Envelope status values.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// APIResponse wraps every HTTP response body.
//
//	{"status":"success","data":{"titles":["Collateral"],"count":1},
//	 "metadata":{"timestamp":"2026-03-02T12:00:00Z","graph_version":3}}
//
// The readiness probe is the one failure that also fills Data, so callers
// can read the build status from a 503.
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata describes how a response was produced. GraphVersion names the
// graph build that answered; Cached is set when the query cache served it.
type Metadata struct {
	Timestamp    time.Time `json:"timestamp"`
	QueryTimeMS  int64     `json:"query_time_ms,omitempty"`
	Cached       bool      `json:"cached,omitempty"`
	GraphVersion int       `json:"graph_version,omitempty"`
}

// APIError is the error member of a failed response. Code is a stable,
// machine-readable constant such as VALIDATION_ERROR or GRAPH_NOT_READY.
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// Success wraps data in a success envelope stamped with the current time.
func Success(data interface{}, meta Metadata) *APIResponse {
	meta.Timestamp = time.Now()
	return &APIResponse{Status: StatusSuccess, Data: data, Metadata: meta}
}

// Failure builds an error envelope stamped with the current time.
func Failure(code, message string, details map[string]interface{}) *APIResponse {
	return &APIResponse{
		Status:   StatusError,
		Metadata: Metadata{Timestamp: time.Now()},
		Error:    &APIError{Code: code, Message: message, Details: details},
	}
}
