// Cinegraph - Movie Similarity Graph and Recommendation Queries
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinegraph

package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

// captureGlobal routes the process logger into a buffer until the test ends.
func captureGlobal(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	t.Cleanup(Replace(zerolog.New(&buf).Level(zerolog.TraceLevel)))
	return &buf
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"debug", zerolog.DebugLevel},
		{"INFO", zerolog.InfoLevel},
		{" warn ", zerolog.WarnLevel},
		{"Warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"fatal", zerolog.FatalLevel},
		{"disabled", zerolog.Disabled},
		{"", zerolog.InfoLevel},
		{"verbose", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     Config
		log     func(l zerolog.Logger)
		want    []string
		notWant []string
	}{
		{
			name: "json with timestamp and caller",
			cfg:  Config{Level: "debug", Format: FormatJSON, Timestamp: true, Caller: true},
			log:  func(l zerolog.Logger) { l.Debug().Str("source", "txt:peliculas.txt").Msg("loading catalog") },
			want: []string{`"level":"debug"`, `"source":"txt:peliculas.txt"`, `"message":"loading catalog"`, `"time":`, `"caller":`},
		},
		{
			name:    "empty level means info",
			cfg:     Config{},
			log:     func(l zerolog.Logger) { l.Debug().Msg("hidden"); l.Info().Msg("shown") },
			want:    []string{`"message":"shown"`},
			notWant: []string{"hidden", `"time":`},
		},
		{
			name:    "console",
			cfg:     Config{Format: "Console"},
			log:     func(l zerolog.Logger) { l.Warn().Int("skipped", 2).Msg("catalog rows skipped") },
			want:    []string{"catalog rows skipped", "skipped="},
			notWant: []string{`"level"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			cfg := tt.cfg
			cfg.Output = &buf

			tt.log(New(cfg))

			out := buf.String()
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("output %q missing %s", out, w)
				}
			}
			for _, w := range tt.notWant {
				if strings.Contains(out, w) {
					t.Errorf("output %q should not contain %s", out, w)
				}
			}
		})
	}
}

func TestInit_ReplacesProcessLogger(t *testing.T) {
	captureGlobal(t)
	var buf bytes.Buffer

	Init(Config{Level: "warn", Output: &buf})
	Info().Msg("graph built")
	Warn().Str("reason", "bad year").Msg("skipped catalog row")

	out := buf.String()
	if strings.Contains(out, "graph built") {
		t.Errorf("info line written at warn level: %s", out)
	}
	if !strings.Contains(out, `"reason":"bad year"`) {
		t.Errorf("warn line missing: %s", out)
	}
}

func TestReplace_Restore(t *testing.T) {
	outer := captureGlobal(t)

	var inner bytes.Buffer
	restore := Replace(zerolog.New(&inner))
	Error().Msg("inner")
	restore()
	Error().Msg("outer")

	if !strings.Contains(inner.String(), "inner") || strings.Contains(inner.String(), "outer") {
		t.Errorf("inner logger got %q", inner.String())
	}
	if !strings.Contains(outer.String(), "outer") {
		t.Errorf("restored logger got %q", outer.String())
	}
}

func TestPackageHelpers(t *testing.T) {
	buf := captureGlobal(t)

	helpers := map[string]func() *zerolog.Event{
		"debug": Debug,
		"info":  Info,
		"warn":  Warn,
		"error": Error,
	}
	for level, event := range helpers {
		buf.Reset()
		event().Msg("x")
		if !strings.Contains(buf.String(), `"level":"`+level+`"`) {
			t.Errorf("%s helper wrote %q", level, buf.String())
		}
	}

	buf.Reset()
	child := With().Str("component", "recommend").Logger()
	child.Info().Msg("cache cleared")
	if !strings.Contains(buf.String(), `"component":"recommend"`) {
		t.Errorf("With() child wrote %q", buf.String())
	}
}

func TestNewTestLogger(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer

	logger := NewTestLogger(&buf)
	logger.Trace().Str("title", "Heat").Msg("lookup")

	out := buf.String()
	if !strings.Contains(out, `"title":"Heat"`) || !strings.Contains(out, `"time":`) {
		t.Errorf("unexpected output %q", out)
	}
}
