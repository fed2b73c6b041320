// Cinegraph - Movie Similarity Graph and Recommendation Queries
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinegraph

package logging

import (
	"io"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// Output formats accepted by Config.Format.
const (
	FormatJSON    = "json"
	FormatConsole = "console"
)

// Config selects the level, encoding and destination of a logger.
type Config struct {
	Level     string // trace, debug, info, warn, error, fatal or disabled
	Format    string // FormatJSON or FormatConsole
	Caller    bool
	Timestamp bool
	Output    io.Writer // os.Stderr when nil
}

// DefaultConfig is what the process logs with until Init is called.
func DefaultConfig() Config {
	return Config{
		Level:     "info",
		Format:    FormatJSON,
		Timestamp: true,
		Output:    os.Stderr,
	}
}

var global atomic.Pointer[zerolog.Logger]

//nolint:gochecknoinits // package-level helpers must work before Init
func init() {
	Init(DefaultConfig())
}

// New builds a logger from cfg without installing it as the process logger.
func New(cfg Config) zerolog.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	if strings.EqualFold(cfg.Format, FormatConsole) {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.TimeOnly}
	}

	zctx := zerolog.New(out).Level(ParseLevel(cfg.Level)).With()
	if cfg.Timestamp {
		zctx = zctx.Timestamp()
	}
	if cfg.Caller {
		zctx = zctx.Caller()
	}
	return zctx.Logger()
}

// Init replaces the process logger. Safe for concurrent use with the
// package-level event helpers.
func Init(cfg Config) {
	l := New(cfg)
	global.Store(&l)
}

// Replace installs l as the process logger and returns a func that puts the
// previous one back.
//
//nolint:gocritic // zerolog.Logger is passed by value throughout zerolog
func Replace(l zerolog.Logger) (restore func()) {
	prev := global.Swap(&l)
	return func() { global.Store(prev) }
}

// ParseLevel maps a level name to a zerolog level, ignoring case.
// "warning" is accepted for warn; anything unrecognized is info.
func ParseLevel(name string) zerolog.Level {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "warning" {
		name = "warn"
	}
	lvl, err := zerolog.ParseLevel(name)
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

// Logger returns a copy of the process logger.
func Logger() zerolog.Logger { return *global.Load() }

// With starts a child logger of the process logger.
//
//	buildLog := logging.With().Str("source", src.String()).Logger()
func With() zerolog.Context { return global.Load().With() }

func Debug() *zerolog.Event { return global.Load().Debug() }
func Info() *zerolog.Event  { return global.Load().Info() }
func Warn() *zerolog.Event  { return global.Load().Warn() }
func Error() *zerolog.Event { return global.Load().Error() }

// Fatal logs at fatal level and exits the process once the event is sent.
func Fatal() *zerolog.Event { return global.Load().Fatal() }

// NewTestLogger writes JSON lines with timestamps to w at every level.
func NewTestLogger(w io.Writer) zerolog.Logger {
	return zerolog.New(w).Level(zerolog.TraceLevel).With().Timestamp().Logger()
}
