// Cinegraph - Movie Similarity Graph and Recommendation Queries
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinegraph

package logging

import (
	"context"
	"encoding/hex"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type scopeKey struct{}

// scope holds the identifiers stamped on every log line written for one request.
type scope struct {
	requestID     string
	correlationID string
}

func scopeFrom(ctx context.Context) scope {
	s, _ := ctx.Value(scopeKey{}).(scope)
	return s
}

// GenerateRequestID returns a full UUID.
func GenerateRequestID() string {
	return uuid.NewString()
}

// GenerateCorrelationID returns 8 hex characters, short enough to grep for.
func GenerateCorrelationID() string {
	id := uuid.New()
	return hex.EncodeToString(id[:4])
}

func ContextWithRequestID(ctx context.Context, id string) context.Context {
	s := scopeFrom(ctx)
	s.requestID = id
	return context.WithValue(ctx, scopeKey{}, s)
}

func ContextWithCorrelationID(ctx context.Context, id string) context.Context {
	s := scopeFrom(ctx)
	s.correlationID = id
	return context.WithValue(ctx, scopeKey{}, s)
}

func ContextWithNewCorrelationID(ctx context.Context) context.Context {
	return ContextWithCorrelationID(ctx, GenerateCorrelationID())
}

// RequestIDFromContext returns "" when ctx carries no request ID.
func RequestIDFromContext(ctx context.Context) string {
	return scopeFrom(ctx).requestID
}

// CorrelationIDFromContext returns "" when ctx carries no correlation ID.
func CorrelationIDFromContext(ctx context.Context) string {
	return scopeFrom(ctx).correlationID
}

// Ctx returns the process logger with the request_id and correlation_id
// stored in ctx attached.
//
//	logging.Ctx(r.Context()).Info().Str("title", title).Msg("similar movies served")
func Ctx(ctx context.Context) *zerolog.Logger {
	s := scopeFrom(ctx)
	zctx := With()
	if s.requestID != "" {
		zctx = zctx.Str("request_id", s.requestID)
	}
	if s.correlationID != "" {
		zctx = zctx.Str("correlation_id", s.correlationID)
	}
	l := zctx.Logger()
	return &l
}
