// Cinegraph - Movie Similarity Graph and Recommendation Queries
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinegraph

package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/tomtom215/cinegraph/internal/logging"
	"github.com/tomtom215/cinegraph/internal/middleware"
	"github.com/tomtom215/cinegraph/internal/models"
	"github.com/tomtom215/cinegraph/internal/recommend"
)

// GraphStatusResponse is the body of GET /api/v1/graph/status.
type GraphStatusResponse struct {
	Build     recommend.BuildStatus      `json:"build"`
	Metrics   recommend.Metrics          `json:"metrics"`
	Config    *recommend.Config          `json:"config"`
	Endpoints []middleware.EndpointStats `json:"endpoints,omitempty"`
}

// GraphStatus handles GET /api/v1/graph/status
// Returns build status, engine counters, the effective engine configuration and
// per-endpoint latency over the recent request window.
func (h *Handler) GraphStatus(w http.ResponseWriter, r *http.Request) {
	status := h.engine.Status()

	resp := GraphStatusResponse{
		Build:   status,
		Metrics: h.engine.Metrics(),
		Config:  h.engine.Config(),
	}
	if h.perfMon != nil {
		resp.Endpoints = h.perfMon.GetStats()
	}

	respondSuccess(w, resp, models.Metadata{GraphVersion: status.GraphVersion})
}

// GraphRebuild handles POST /api/v1/graph/rebuild
// Reloads the catalog and builds a fresh graph. By default the build runs in the
// background and 202 is returned; with ?wait=true the request blocks until the build
// finishes. 409 is returned while another build is running.
func (h *Handler) GraphRebuild(w http.ResponseWriter, r *http.Request) {
	wait, _ := strconv.ParseBool(r.URL.Query().Get("wait"))

	if h.engine.Status().IsBuilding {
		respondEngineError(w, recommend.ErrBuildInProgress)
		return
	}

	if wait {
		if err := h.engine.Build(r.Context()); err != nil {
			if errors.Is(err, recommend.ErrBuildInProgress) {
				respondEngineError(w, err)
				return
			}
			status := h.engine.Status()
			respondErrorWithDetails(w, http.StatusInternalServerError, ErrCodeInternal, "Graph build failed",
				map[string]interface{}{"last_error": status.LastError}, err)
			return
		}
		status := h.engine.Status()
		respondSuccess(w, status, models.Metadata{GraphVersion: status.GraphVersion})
		return
	}

	logger := logging.Ctx(r.Context())
	go func() {
		err := h.engine.Build(h.buildCtx)
		switch {
		case err == nil:
		case errors.Is(err, recommend.ErrBuildInProgress):
			logger.Info().Msg("rebuild skipped: build already in progress")
		default:
			logger.Error().Err(err).Msg("requested graph rebuild failed")
		}
	}()

	respondJSON(w, http.StatusAccepted, models.Success(map[string]string{
		"message": "Graph rebuild started",
	}, models.Metadata{}))
}

// GraphMatrix handles GET /api/v1/graph/matrix
// Returns the adjacency matrix with titles[i] labelling row and column i.
func (h *Handler) GraphMatrix(w http.ResponseWriter, r *http.Request) {
	matrix, err := h.engine.AdjacencyMatrix()
	if err != nil {
		respondEngineError(w, err)
		return
	}

	respondSuccess(w, models.MatrixResponse{
		Titles: matrix.Titles,
		Matrix: matrix.Weights,
	}, models.Metadata{GraphVersion: matrix.GraphVersion})
}
