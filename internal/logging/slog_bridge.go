// Cinegraph - Movie Similarity Graph and Recommendation Queries
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinegraph

package logging

import (
	"context"
	"log/slog"

	"github.com/rs/zerolog"
)

// SlogHandler is a slog.Handler that writes through a zerolog logger. The
// supervisor's sutureslog hook only accepts a *slog.Logger, so its events
// reach the process logger through this bridge.
//
// Groups become dotted key prefixes: a "build" group holding "movies" is
// logged as "build.movies".
type SlogHandler struct {
	logger zerolog.Logger
	prefix string
}

// NewSlogHandler bridges to a copy of the current process logger.
func NewSlogHandler() *SlogHandler {
	return NewSlogHandlerWithLogger(Logger())
}

//nolint:gocritic // zerolog.Logger is passed by value throughout zerolog
func NewSlogHandlerWithLogger(l zerolog.Logger) *SlogHandler {
	return &SlogHandler{logger: l}
}

// NewSlogLogger wraps NewSlogHandler in a *slog.Logger.
//
//	events := &sutureslog.Handler{Logger: logging.NewSlogLogger()}
func NewSlogLogger() *slog.Logger {
	return slog.New(NewSlogHandler())
}

func (h *SlogHandler) Enabled(_ context.Context, level slog.Level) bool {
	lvl := zerologLevel(level)
	return lvl >= h.logger.GetLevel() && lvl >= zerolog.GlobalLevel()
}

//nolint:gocritic // slog.Handler passes records by value
func (h *SlogHandler) Handle(_ context.Context, r slog.Record) error {
	fields := make([]interface{}, 0, 2*r.NumAttrs())
	r.Attrs(func(a slog.Attr) bool {
		fields = appendAttr(fields, h.prefix, a)
		return true
	})
	h.logger.WithLevel(zerologLevel(r.Level)).Fields(fields).Msg(r.Message)
	return nil
}

// WithAttrs binds attrs to a child logger so they are encoded once.
func (h *SlogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	var fields []interface{}
	for _, a := range attrs {
		fields = appendAttr(fields, h.prefix, a)
	}
	return &SlogHandler{
		logger: h.logger.With().Fields(fields).Logger(),
		prefix: h.prefix,
	}
}

func (h *SlogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	return &SlogHandler{logger: h.logger, prefix: joinKey(h.prefix, name)}
}

// appendAttr flattens a into key/value pairs for zerolog's Fields.
// Empty attrs are dropped and an unnamed group inlines its members.
func appendAttr(fields []interface{}, prefix string, a slog.Attr) []interface{} {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return fields
	}

	if a.Value.Kind() == slog.KindGroup {
		groupPrefix := prefix
		if a.Key != "" {
			groupPrefix = joinKey(prefix, a.Key)
		}
		for _, member := range a.Value.Group() {
			fields = appendAttr(fields, groupPrefix, member)
		}
		return fields
	}

	return append(fields, joinKey(prefix, a.Key), a.Value.Any())
}

func joinKey(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

func zerologLevel(l slog.Level) zerolog.Level {
	switch {
	case l >= slog.LevelError:
		return zerolog.ErrorLevel
	case l >= slog.LevelWarn:
		return zerolog.WarnLevel
	case l >= slog.LevelInfo:
		return zerolog.InfoLevel
	case l >= slog.LevelDebug:
		return zerolog.DebugLevel
	default:
		return zerolog.TraceLevel
	}
}
