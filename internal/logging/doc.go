// Cinegraph - Movie Similarity Graph and Recommendation Queries
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinegraph

// Package logging owns the process-wide zerolog logger.
//
// The server configures it once from LOG_LEVEL, LOG_FORMAT and LOG_CALLER;
// the CLI configures it from --log-level and always logs to stderr in
// console format so stdout carries only results.
//
//	logging.Init(logging.Config{Level: "info", Format: logging.FormatJSON})
//	logging.Info().Int("movies", n).Msg("graph built")
//
// HTTP handlers log through Ctx, which stamps the request_id and
// correlation_id the request middleware stored in the context:
//
//	logging.Ctx(r.Context()).Warn().Str("title", title).Msg("unknown movie")
//
// SlogHandler bridges log/slog into the same logger for libraries that
// only take a *slog.Logger.
//
// Events are only written by Msg, Msgf or Send; a chain without one of
// them is silently dropped.
package logging
