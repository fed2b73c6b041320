// Cinegraph - Movie Similarity Graph and Recommendation Queries
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinegraph

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/cinegraph/internal/models"
)

// HealthLive handles liveness probe requests (Kubernetes-style)
// Returns 200 OK if the process is alive, whether or not a graph is built.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, map[string]interface{}{
		"alive":  true,
		"uptime": time.Since(h.startTime).Seconds(),
	}, models.Metadata{})
}

// HealthReady handles readiness probe requests (Kubernetes-style)
// Returns 200 OK once a graph is being served and 503 before the first successful build.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	status := h.engine.Status()

	data := map[string]interface{}{
		"ready":         status.Ready,
		"is_building":   status.IsBuilding,
		"graph_version": status.GraphVersion,
		"movie_count":   status.MovieCount,
	}
	if status.LastError != "" {
		data["last_error"] = status.LastError
	}

	if !status.Ready {
		resp := models.Failure(ErrCodeGraphNotReady, "The similarity graph has not been built yet", nil)
		resp.Data = data
		respondJSON(w, http.StatusServiceUnavailable, resp)
		return
	}

	respondSuccess(w, data, models.Metadata{GraphVersion: status.GraphVersion})
}
