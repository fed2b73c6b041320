// Cinegraph - Movie Similarity Graph and Recommendation Queries
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinegraph

package recommend

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/cinegraph/internal/cache"
	"github.com/tomtom215/cinegraph/internal/catalog"
	"github.com/tomtom215/cinegraph/internal/metrics"
	"github.com/tomtom215/cinegraph/internal/models"
	"github.com/tomtom215/cinegraph/internal/moviegraph"
)

// Query operation names used for logging, metrics and cache keys.
const (
	OpMovie         = "movie"
	OpNeighbors     = "neighbors"
	OpSearch        = "search"
	OpSimilarTo     = "similar_to"
	OpSimilarToMany = "similar_to_many"
	OpMatrix        = "adjacency_matrix"
	OpTitles        = "titles"
)

// snapshot is an immutable, fully built graph together with its version.
type snapshot struct {
	graph   *moviegraph.Graph
	version int
	builtAt time.Time
}

// Engine serves similarity queries from the most recently built graph and rebuilds it
// from a catalog source on demand. Queries never observe a partially built graph: a
// build assembles a fresh graph and swaps it in only after it succeeds.
// It is safe for concurrent use.
type Engine struct {
	config *Config
	logger zerolog.Logger

	// Serving graph
	current atomic.Pointer[snapshot]
	version atomic.Int32

	// Build state
	buildMu     sync.Mutex
	statusMu    sync.RWMutex
	buildStatus BuildStatus

	// Catalog source
	sourceMu sync.RWMutex
	source   catalog.Source

	// Counters
	requestCount atomic.Int64
	cacheHits    atomic.Int64
	cacheMisses  atomic.Int64
	errorCount   atomic.Int64
	buildCount   atomic.Int64

	// Ranked query results, nil when caching is disabled
	cache *cache.LRU[[]string]
}

// NewEngine creates a new graph engine. A nil cfg selects DefaultConfig.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	e := &Engine{
		config: cfg.Clone(),
		logger: logger.With().Str("component", "recommend").Logger(),
	}
	if cfg.Cache.Enabled {
		e.cache = cache.NewLRU[[]string](cfg.Cache.MaxEntries, cfg.Cache.TTL)
	}
	return e, nil
}

// SetSource sets the catalog the next build loads from.
func (e *Engine) SetSource(src catalog.Source) {
	e.sourceMu.Lock()
	defer e.sourceMu.Unlock()
	e.source = src
}

func (e *Engine) getSource() catalog.Source {
	e.sourceMu.RLock()
	defer e.sourceMu.RUnlock()
	return e.source
}

// Build loads the catalog, builds a new graph and puts it into service.
// Only one build runs at a time; a concurrent call returns ErrBuildInProgress.
// If the build fails the previously served graph stays in place.
func (e *Engine) Build(ctx context.Context) error {
	if !e.acquireBuildLock() {
		return ErrBuildInProgress
	}
	defer e.buildMu.Unlock()

	src := e.getSource()
	if src == nil {
		e.finishBuild(0, ErrNoSource)
		return ErrNoSource
	}

	e.logger.Info().Str("source", src.String()).Msg("starting graph build")
	start := time.Now()

	buildCtx, cancel := context.WithTimeout(ctx, e.config.Build.Timeout)
	defer cancel()

	g, result, duplicates, stage, err := e.buildGraph(buildCtx, src)
	duration := time.Since(start)
	if err != nil {
		e.errorCount.Add(1)
		metrics.RecordGraphBuild(duration, 0, 0, 0, stage, err)
		e.finishBuild(duration, err)
		e.logger.Error().
			Err(err).
			Str("stage", stage).
			Dur("duration", duration).
			Msg("graph build failed")
		return err
	}

	snap := &snapshot{
		graph:   g,
		version: int(e.version.Add(1)),
		builtAt: time.Now(),
	}
	e.current.Store(snap)
	e.buildCount.Add(1)

	if e.cache != nil && e.config.Cache.InvalidateOnBuild {
		e.cache.Clear()
		metrics.CacheSize.Set(0)
	}

	e.completeBuild(snap, src, duration, len(result.Skipped), duplicates)
	metrics.RecordGraphBuild(duration, g.Count(), g.EdgeCount(), snap.version, stage, nil)

	e.logger.Info().
		Int("movies", g.Count()).
		Int("edges", g.EdgeCount()).
		Int("skipped_rows", len(result.Skipped)).
		Int("duplicate_titles", duplicates).
		Int("graph_version", snap.version).
		Dur("duration", duration).
		Msg("graph build complete")

	return nil
}

// acquireBuildLock attempts to start a build.
func (e *Engine) acquireBuildLock() bool {
	if !e.buildMu.TryLock() {
		e.logger.Warn().Msg("build already in progress")
		return false
	}

	e.statusMu.Lock()
	e.buildStatus.IsBuilding = true
	e.buildStatus.LastError = ""
	e.statusMu.Unlock()
	return true
}

// buildGraph runs the load, ingest and build stages. It returns the stage it stopped at.
func (e *Engine) buildGraph(ctx context.Context, src catalog.Source) (*moviegraph.Graph, *catalog.Result, int, string, error) {
	result, err := src.Load(ctx)
	if err != nil {
		return nil, nil, 0, "load", fmt.Errorf("load catalog: %w", err)
	}
	metrics.RecordCatalogLoad(src.String(), len(result.Movies), len(result.Skipped))

	for _, s := range result.Skipped {
		e.logger.Debug().
			Int("line", s.Line).
			Str("title", s.Title).
			Str("reason", s.Reason).
			Msg("skipped catalog row")
	}

	g := moviegraph.New(
		moviegraph.WithWorkers(e.config.Build.Workers),
		moviegraph.WithResultLimit(e.config.Limits.ResultLimit),
	)

	duplicates := 0
	for i := range result.Movies {
		added, err := g.AddMovie(result.Movies[i])
		if err != nil {
			return nil, nil, 0, "ingest", fmt.Errorf("add movie %q: %w", result.Movies[i].Title, err)
		}
		if !added {
			duplicates++
			e.logger.Debug().Str("title", result.Movies[i].Title).Msg("duplicate title ignored")
		}
	}

	if err := g.Build(ctx); err != nil {
		return nil, nil, 0, "build", fmt.Errorf("build graph: %w", err)
	}

	return g, result, duplicates, "build", nil
}

// finishBuild records a failed build.
func (e *Engine) finishBuild(duration time.Duration, err error) {
	e.statusMu.Lock()
	defer e.statusMu.Unlock()

	e.buildStatus.IsBuilding = false
	e.buildStatus.LastBuildDurationMS = duration.Milliseconds()
	if err != nil {
		e.buildStatus.LastError = err.Error()
	}
}

// completeBuild records a successful build.
func (e *Engine) completeBuild(snap *snapshot, src catalog.Source, duration time.Duration, skipped, duplicates int) {
	e.statusMu.Lock()
	defer e.statusMu.Unlock()

	e.buildStatus = BuildStatus{
		Ready:               true,
		Source:              src.String(),
		GraphVersion:        snap.version,
		LastBuiltAt:         snap.builtAt,
		LastBuildDurationMS: duration.Milliseconds(),
		MovieCount:          snap.graph.Count(),
		EdgeCount:           snap.graph.EdgeCount(),
		SkippedRows:         skipped,
		DuplicateTitles:     duplicates,
	}
}

// serving returns the graph currently in service.
func (e *Engine) serving() (*snapshot, error) {
	snap := e.current.Load()
	if snap == nil {
		return nil, ErrNotBuilt
	}
	return snap, nil
}

// Ready reports whether a graph is in service.
func (e *Engine) Ready() bool {
	return e.current.Load() != nil
}

// Movie returns the record stored under title and its index.
func (e *Engine) Movie(title string) (models.MovieDetail, error) {
	start := time.Now()
	e.requestCount.Add(1)

	detail, err := e.movie(title)
	e.recordQuery(OpMovie, start, err)
	return detail, err
}

func (e *Engine) movie(title string) (models.MovieDetail, error) {
	snap, err := e.serving()
	if err != nil {
		return models.MovieDetail{}, err
	}
	m, ok := snap.graph.Movie(title)
	if !ok {
		return models.MovieDetail{}, fmt.Errorf("%w: %q", ErrMovieNotFound, title)
	}
	i, _ := snap.graph.Index(title)
	return models.MovieDetail{Movie: m, Index: i}, nil
}

// Neighbors returns the adjacency list of title in build order, empty when
// title is not in the graph.
func (e *Engine) Neighbors(title string) ([]models.Neighbor, error) {
	start := time.Now()
	e.requestCount.Add(1)

	neighbors, err := e.neighbors(title)
	e.recordQuery(OpNeighbors, start, err)
	return neighbors, err
}

func (e *Engine) neighbors(title string) ([]models.Neighbor, error) {
	snap, err := e.serving()
	if err != nil {
		return nil, err
	}
	return snap.graph.Neighbors(title), nil
}

// criterionKey is the cache identity of a criterion. Values stay separate so
// OneOf("a,b") and OneOf("a", "b") never share an entry.
type criterionKey struct {
	Field  string   `json:"field"`
	Kind   string   `json:"kind"`
	Values []string `json:"values,omitempty"`
	Number float64  `json:"number,omitempty"`
}

func searchKey(criteria []moviegraph.Criterion) []criterionKey {
	keys := make([]criterionKey, len(criteria))
	for i, c := range criteria {
		values := c.Values()
		for j, v := range values {
			values[j] = strings.ToLower(v)
		}
		keys[i] = criterionKey{Field: string(c.Field()), Kind: c.Kind().String(), Values: values, Number: c.Number()}
	}
	slices.SortFunc(keys, func(a, b criterionKey) int {
		if c := cmp.Compare(a.Field, b.Field); c != 0 {
			return c
		}
		if c := cmp.Compare(a.Kind, b.Kind); c != 0 {
			return c
		}
		if c := slices.Compare(a.Values, b.Values); c != 0 {
			return c
		}
		return cmp.Compare(a.Number, b.Number)
	})
	return keys
}

// Search returns the best rated movies matching every criterion.
func (e *Engine) Search(criteria ...moviegraph.Criterion) (*Response, error) {
	return e.ranked(OpSearch, searchKey(criteria), func(g *moviegraph.Graph) []string {
		return g.FilterSearch(criteria...)
	})
}

// SimilarTo returns the movies most similar to title. An unknown title yields
// no titles and is listed in Response.Unknown.
func (e *Engine) SimilarTo(title string, minWeight int) (*Response, error) {
	params := struct {
		Title     string `json:"title"`
		MinWeight int    `json:"min_weight"`
	}{title, max(minWeight, 1)}

	resp, err := e.ranked(OpSimilarTo, params, func(g *moviegraph.Graph) []string {
		return g.SimilarTo(title, minWeight)
	})
	if err != nil {
		return nil, err
	}
	resp.Unknown = e.unknownTitles(title)
	return resp, nil
}

// unknownTitles returns the titles absent from the serving graph.
func (e *Engine) unknownTitles(titles ...string) []string {
	snap := e.current.Load()
	if snap == nil {
		return nil
	}
	var unknown []string
	for _, t := range titles {
		if _, ok := snap.graph.Index(t); !ok {
			unknown = append(unknown, t)
		}
	}
	return unknown
}

// SimilarToMany returns the movies most similar to any of titles. Unknown seed titles
// are skipped and reported in Response.Unknown.
func (e *Engine) SimilarToMany(titles []string, minWeight int) (*Response, error) {
	if len(titles) > e.config.Limits.MaxSeeds {
		e.requestCount.Add(1)
		err := fmt.Errorf("%w: %d > %d", ErrTooManySeeds, len(titles), e.config.Limits.MaxSeeds)
		e.recordQuery(OpSimilarToMany, time.Now(), err)
		return nil, err
	}

	params := struct {
		Titles    []string `json:"titles"`
		MinWeight int      `json:"min_weight"`
	}{titles, max(minWeight, 1)}

	resp, err := e.ranked(OpSimilarToMany, params, func(g *moviegraph.Graph) []string {
		return g.SimilarToMany(titles, minWeight)
	})
	if err != nil {
		return nil, err
	}

	resp.Unknown = e.unknownTitles(titles...)
	return resp, nil
}

// ranked runs a ranked query against the serving graph, consulting the result cache.
func (e *Engine) ranked(op string, params interface{}, query func(*moviegraph.Graph) []string) (*Response, error) {
	start := time.Now()
	e.requestCount.Add(1)

	snap, err := e.serving()
	if err != nil {
		e.recordQuery(op, start, err)
		return nil, err
	}

	key := cacheKey(snap.version, op, params)
	if titles, ok := e.cacheGet(op, key); ok {
		resp := e.response(op, snap, titles, start, true)
		e.recordQuery(op, start, nil)
		return resp, nil
	}

	titles := query(snap.graph)
	e.cachePut(key, titles)

	resp := e.response(op, snap, slices.Clone(titles), start, false)
	e.recordQuery(op, start, nil)

	e.logger.Debug().
		Str("operation", op).
		Int("returned", len(titles)).
		Int64("latency_ms", resp.Metadata.LatencyMS).
		Msg("query complete")

	return resp, nil
}

// AdjacencyMatrix returns the weight matrix of the serving graph.
func (e *Engine) AdjacencyMatrix() (*Matrix, error) {
	start := time.Now()
	e.requestCount.Add(1)

	m, err := e.adjacencyMatrix()
	e.recordQuery(OpMatrix, start, err)
	return m, err
}

func (e *Engine) adjacencyMatrix() (*Matrix, error) {
	snap, err := e.serving()
	if err != nil {
		return nil, err
	}
	if n := snap.graph.Count(); n > e.config.Limits.MaxMatrixSize {
		return nil, fmt.Errorf("%w: %d movies > %d", ErrMatrixTooLarge, n, e.config.Limits.MaxMatrixSize)
	}
	return &Matrix{
		Titles:       snap.graph.Titles(),
		Weights:      snap.graph.AdjacencyMatrix(),
		GraphVersion: snap.version,
	}, nil
}

// Titles returns every title of the serving graph in index order.
func (e *Engine) Titles() ([]string, error) {
	start := time.Now()
	e.requestCount.Add(1)

	snap, err := e.serving()
	e.recordQuery(OpTitles, start, err)
	if err != nil {
		return nil, err
	}
	return snap.graph.Titles(), nil
}

// Status returns the current build status.
func (e *Engine) Status() BuildStatus {
	e.statusMu.RLock()
	defer e.statusMu.RUnlock()
	return e.buildStatus
}

// Metrics returns the current engine metrics.
func (e *Engine) Metrics() Metrics {
	m := Metrics{
		RequestCount: e.requestCount.Load(),
		CacheHits:    e.cacheHits.Load(),
		CacheMisses:  e.cacheMisses.Load(),
		ErrorCount:   e.errorCount.Load(),
		BuildCount:   e.buildCount.Load(),
	}
	if e.cache != nil {
		stats := e.cache.Stats()
		m.Cache = &stats
	}
	return m
}

// Config returns a copy of the current configuration.
func (e *Engine) Config() *Config {
	return e.config.Clone()
}

// CleanupCache drops expired cache entries and returns how many were removed.
func (e *Engine) CleanupCache() int {
	if e.cache == nil {
		return 0
	}
	n := e.cache.CleanupExpired()
	metrics.CacheSize.Set(float64(e.cache.Len()))
	return n
}

func (e *Engine) response(op string, snap *snapshot, titles []string, start time.Time, hit bool) *Response {
	return &Response{
		Titles: titles,
		Metadata: ResponseMetadata{
			Operation:    op,
			LatencyMS:    time.Since(start).Milliseconds(),
			CacheHit:     hit,
			GraphVersion: snap.version,
			BuiltAt:      snap.builtAt,
			Timestamp:    time.Now(),
		},
	}
}

func (e *Engine) recordQuery(op string, start time.Time, err error) {
	if err != nil && !errors.Is(err, ErrNotBuilt) && !errors.Is(err, ErrMovieNotFound) {
		e.errorCount.Add(1)
	}
	metrics.RecordQuery(op, time.Since(start), err)
}

// cacheKey scopes a query key to a graph version so results of an older graph are never served.
func cacheKey(version int, op string, params interface{}) string {
	return fmt.Sprintf("v%d:%s", version, cache.GenerateKey(op, params))
}

// cacheGet returns a copy of a cached ranking.
func (e *Engine) cacheGet(op, key string) ([]string, bool) {
	if e.cache == nil {
		return nil, false
	}
	titles, ok := e.cache.Get(key)
	metrics.RecordCacheLookup(op, ok)
	if !ok {
		e.cacheMisses.Add(1)
		return nil, false
	}
	e.cacheHits.Add(1)
	return slices.Clone(titles), true
}

func (e *Engine) cachePut(key string, titles []string) {
	if e.cache == nil {
		return
	}
	e.cache.Add(key, titles)
	metrics.CacheSize.Set(float64(e.cache.Len()))
}
