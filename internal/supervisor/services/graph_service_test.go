// Cinegraph - Movie Similarity Graph and Recommendation Queries
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinegraph

package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/thejerf/suture/v4"

	"github.com/tomtom215/cinegraph/internal/catalog"
	"github.com/tomtom215/cinegraph/internal/models"
	"github.com/tomtom215/cinegraph/internal/recommend"
)

// mockGraphEngine records Build and CleanupCache calls.
type mockGraphEngine struct {
	mu         sync.Mutex
	buildCalls int
	cleanups   int
	buildErr   error
}

func (m *mockGraphEngine) Build(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.buildCalls++
	return m.buildErr
}

func (m *mockGraphEngine) CleanupCache() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cleanups++
	return 1
}

func (m *mockGraphEngine) counts() (builds, cleanups int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.buildCalls, m.cleanups
}

func runFor(svc suture.Service, d time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), d)
	defer cancel()
	return svc.Serve(ctx)
}

func TestGraphService_Interface(t *testing.T) {
	var _ suture.Service = (*GraphService)(nil)
	var _ GraphEngine = (*recommend.Engine)(nil)
}

func TestNewGraphService(t *testing.T) {
	svc := NewGraphService(&mockGraphEngine{}, GraphServiceConfig{}, zerolog.Nop())

	if got := svc.String(); got != "graph-service" {
		t.Errorf("String() = %q, want graph-service", got)
	}
	if svc.config.CacheCleanupInterval != DefaultCacheCleanupInterval {
		t.Errorf("CacheCleanupInterval = %v, want %v", svc.config.CacheCleanupInterval, DefaultCacheCleanupInterval)
	}
}

func TestGraphService_Serve(t *testing.T) {
	tests := []struct {
		name         string
		config       GraphServiceConfig
		buildErr     error
		wantMin      int
		wantMax      int
		wantCleanups bool
	}{
		{
			name:    "builds once on startup",
			config:  GraphServiceConfig{BuildOnStartup: true},
			wantMin: 1,
			wantMax: 1,
		},
		{
			name:    "no startup build",
			config:  GraphServiceConfig{},
			wantMin: 0,
			wantMax: 0,
		},
		{
			name:    "rebuilds on interval",
			config:  GraphServiceConfig{BuildOnStartup: true, RebuildInterval: 20 * time.Millisecond},
			wantMin: 3,
			wantMax: 100,
		},
		{
			name:     "keeps running after build failures",
			config:   GraphServiceConfig{BuildOnStartup: true, RebuildInterval: 20 * time.Millisecond},
			buildErr: errors.New("catalog unreadable"),
			wantMin:  3,
			wantMax:  100,
		},
		{
			name:     "build in progress is skipped",
			config:   GraphServiceConfig{BuildOnStartup: true},
			buildErr: recommend.ErrBuildInProgress,
			wantMin:  1,
			wantMax:  1,
		},
		{
			name:         "drops expired cache entries",
			config:       GraphServiceConfig{CacheCleanupInterval: 20 * time.Millisecond},
			wantMin:      0,
			wantMax:      0,
			wantCleanups: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			engine := &mockGraphEngine{buildErr: tt.buildErr}
			svc := NewGraphService(engine, tt.config, zerolog.Nop())

			err := runFor(svc, 150*time.Millisecond)
			if !errors.Is(err, context.DeadlineExceeded) {
				t.Errorf("Serve() = %v, want context.DeadlineExceeded", err)
			}

			builds, cleanups := engine.counts()
			if builds < tt.wantMin || builds > tt.wantMax {
				t.Errorf("Build() called %d times, want %d..%d", builds, tt.wantMin, tt.wantMax)
			}
			if tt.wantCleanups && cleanups == 0 {
				t.Error("CleanupCache() was never called")
			}
		})
	}
}

func TestGraphService_CanceledDuringStartupBuild(t *testing.T) {
	engine := &mockGraphEngine{buildErr: context.Canceled}
	svc := NewGraphService(engine, GraphServiceConfig{BuildOnStartup: true}, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := svc.Serve(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Serve() = %v, want context.Canceled", err)
	}
}

// staticSource serves a fixed catalog.
type staticSource struct {
	movies []models.Movie
}

func (s *staticSource) Load(ctx context.Context) (*catalog.Result, error) {
	return &catalog.Result{Movies: s.movies}, nil
}

func (s *staticSource) String() string {
	return "static:test"
}

func TestGraphService_WithEngine(t *testing.T) {
	engine, err := recommend.NewEngine(nil, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	engine.SetSource(&staticSource{movies: []models.Movie{
		{Title: "Heat", Rating: 8.3, Director: "Michael Mann", Genres: []string{"Crime"}, Year: 1995},
		{Title: "Thief", Rating: 7.4, Director: "Michael Mann", Genres: []string{"Crime"}, Year: 1981},
	}})

	sup := suture.New("test-sup", suture.Spec{Timeout: time.Second})
	sup.Add(NewGraphService(engine, GraphServiceConfig{BuildOnStartup: true}, zerolog.Nop()))

	ctx, cancel := context.WithCancel(context.Background())
	errCh := sup.ServeBackground(ctx)

	deadline := time.Now().Add(2 * time.Second)
	for !engine.Ready() {
		if time.Now().After(deadline) {
			cancel()
			t.Fatalf("graph was not built; status %+v", engine.Status())
		}
		time.Sleep(5 * time.Millisecond)
	}
	cancel()
	<-errCh

	resp, err := engine.SimilarTo("Heat", 0)
	if err != nil {
		t.Fatalf("SimilarTo() error = %v", err)
	}
	if len(resp.Titles) != 1 || resp.Titles[0] != "Thief" {
		t.Errorf("SimilarTo(Heat) = %v, want [Thief]", resp.Titles)
	}
}
