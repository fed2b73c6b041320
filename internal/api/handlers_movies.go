// Cinegraph - Movie Similarity Graph and Recommendation Queries
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinegraph

package api

import (
	"net/http"
	"strings"

	"github.com/tomtom215/cinegraph/internal/models"
	"github.com/tomtom215/cinegraph/internal/recommend"
)

// Movie handles GET /api/v1/movies/{title}
// Returns the catalog record and its index in the adjacency matrix.
func (h *Handler) Movie(w http.ResponseWriter, r *http.Request) {
	detail, err := h.engine.Movie(titleParam(r))
	if err != nil {
		respondEngineError(w, err)
		return
	}

	respondSuccess(w, detail, models.Metadata{GraphVersion: h.engine.Status().GraphVersion})
}

// MovieNeighbors handles GET /api/v1/movies/{title}/neighbors
// Returns the movie's adjacency list in build order.
func (h *Handler) MovieNeighbors(w http.ResponseWriter, r *http.Request) {
	title := titleParam(r)

	neighbors, err := h.engine.Neighbors(title)
	if err != nil {
		respondEngineError(w, err)
		return
	}

	respondSuccess(w, models.NeighborsResponse{
		Title:     title,
		Neighbors: neighbors,
		Count:     len(neighbors),
	}, models.Metadata{GraphVersion: h.engine.Status().GraphVersion})
}

// MovieSimilar handles GET /api/v1/movies/{title}/similar?min_weight=N
// Returns the best-weighted neighbors at or above min_weight.
func (h *Handler) MovieSimilar(w http.ResponseWriter, r *http.Request) {
	minWeight, err := queryInt(r, "min_weight", 0)
	if err != nil {
		respondErrorWithDetails(w, http.StatusBadRequest, ErrCodeValidation, err.Error(),
			map[string]interface{}{"field": "min_weight"}, nil)
		return
	}

	req := models.SimilarRequest{
		Title:     titleParam(r),
		MinWeight: minWeight,
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondValidationError(w, apiErr)
		return
	}

	resp, err := h.engine.SimilarTo(req.Title, req.MinWeight)
	if err != nil {
		respondEngineError(w, err)
		return
	}

	respondRanked(w, resp)
}

// SimilarMany handles POST /api/v1/movies/similar
// Merges the neighborhoods of several seed titles. Unknown seeds are reported, not rejected.
func (h *Handler) SimilarMany(w http.ResponseWriter, r *http.Request) {
	var req models.SimilarManyRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidJSON, "Invalid JSON body", err)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondValidationError(w, apiErr)
		return
	}

	titles := make([]string, len(req.Titles))
	for i, t := range req.Titles {
		titles[i] = strings.TrimSpace(t)
	}

	resp, err := h.engine.SimilarToMany(titles, req.MinWeight)
	if err != nil {
		respondEngineError(w, err)
		return
	}

	respondRanked(w, resp)
}

// Search handles POST /api/v1/movies/search
// Every populated field of the body becomes a filter; results are best rated first.
// Genre lists longer than the configured limit are cut, not rejected.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	var req models.SearchRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidJSON, "Invalid JSON body", err)
		return
	}

	req.Genres = recommend.TruncateGenres(req.Genres, h.engine.Config().Limits.MaxGenreOptions)
	if apiErr := validateRequest(&req); apiErr != nil {
		respondValidationError(w, apiErr)
		return
	}

	criteria, err := recommend.CriteriaFromRequest(&req, h.engine.Config().Limits.MaxGenreOptions)
	if err != nil {
		respondError(w, http.StatusBadRequest, ErrCodeValidation, err.Error(), nil)
		return
	}

	resp, err := h.engine.Search(criteria...)
	if err != nil {
		respondEngineError(w, err)
		return
	}

	respondRanked(w, resp)
}

// respondRanked wraps a ranked engine response in the API envelope.
func respondRanked(w http.ResponseWriter, resp *recommend.Response) {
	respondSuccess(w, models.TitlesResponse{
		Titles:  resp.Titles,
		Count:   len(resp.Titles),
		Unknown: resp.Unknown,
	}, models.Metadata{
		QueryTimeMS:  resp.Metadata.LatencyMS,
		Cached:       resp.Metadata.CacheHit,
		GraphVersion: resp.Metadata.GraphVersion,
	})
}
