// Cinegraph - Movie Similarity Graph and Recommendation Queries
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinegraph

package api

import (
	"errors"
	"fmt"
	"hash/fnv"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/tomtom215/cinegraph/internal/logging"
	"github.com/tomtom215/cinegraph/internal/models"
	"github.com/tomtom215/cinegraph/internal/recommend"
	"github.com/tomtom215/cinegraph/internal/validation"
)

// maxBodyBytes bounds JSON request bodies.
const maxBodyBytes = 1 << 20

// sanitizeLogValue escapes control characters so user input cannot forge log lines.
func sanitizeLogValue(s string) string {
	if !strings.ContainsFunc(s, isControl) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 8)
	for _, r := range s {
		if isControl(r) {
			fmt.Fprintf(&b, "\\x%02x", r)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func isControl(r rune) bool { return r < 0x20 || r == 0x7F }

// respondJSON writes the envelope with an ETag. Marshal failures become a bare 500.
func respondJSON(w http.ResponseWriter, status int, response *models.APIResponse) {
	data, err := json.Marshal(response)
	if err != nil {
		logging.Error().Err(err).Msg("marshal response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	h := w.Header()
	h.Set("Content-Type", "application/json")
	h.Set("Cache-Control", "no-cache")
	h.Set("Vary", "Accept-Encoding")
	h.Set("ETag", weakETag(data))
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Debug().Err(err).Msg("write response")
	}
}

// respondSuccess sends a 200 envelope around data.
func respondSuccess(w http.ResponseWriter, data interface{}, meta models.Metadata) {
	respondJSON(w, http.StatusOK, models.Success(data, meta))
}

// weakETag tags a response body with its FNV-1a hash.
func weakETag(body []byte) string {
	h := fnv.New32a()
	_, _ = h.Write(body)
	return `W/"` + strconv.FormatUint(uint64(h.Sum32()), 16) + `"`
}

// respondError sends an error response
func respondError(w http.ResponseWriter, status int, code, message string, err error) {
	respondErrorWithDetails(w, status, code, message, nil, err)
}

func respondErrorWithDetails(w http.ResponseWriter, status int, code, message string, details map[string]interface{}, err error) {
	if err != nil {
		event := logging.Warn()
		if status >= http.StatusInternalServerError {
			event = logging.Error()
		}
		event.Str("code", sanitizeLogValue(code)).Str("error", sanitizeLogValue(err.Error())).Msg("API error")
	}

	respondJSON(w, status, models.Failure(code, message, details))
}

// respondValidationError sends a 400 for a failed validation.
func respondValidationError(w http.ResponseWriter, apiErr *models.APIError) {
	respondErrorWithDetails(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, apiErr.Details, nil)
}

// respondEngineError maps engine errors to HTTP responses.
func respondEngineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, recommend.ErrNotBuilt):
		respondError(w, http.StatusServiceUnavailable, ErrCodeGraphNotReady, "The similarity graph has not been built yet", nil)
	case errors.Is(err, recommend.ErrMovieNotFound):
		respondError(w, http.StatusNotFound, ErrCodeNotFound, "Movie not found", nil)
	case errors.Is(err, recommend.ErrTooManySeeds):
		respondError(w, http.StatusBadRequest, ErrCodeValidation, err.Error(), nil)
	case errors.Is(err, recommend.ErrMatrixTooLarge):
		respondError(w, http.StatusUnprocessableEntity, ErrCodeMatrixTooLarge, err.Error(), nil)
	case errors.Is(err, recommend.ErrBuildInProgress):
		respondError(w, http.StatusConflict, ErrCodeBuildInProgress, "A graph build is already in progress", nil)
	default:
		respondError(w, http.StatusInternalServerError, ErrCodeInternal, "Internal server error", err)
	}
}

// validateRequest runs the struct tags of v; nil means valid.
func validateRequest(v interface{}) *models.APIError {
	if verr := validation.ValidateStruct(v); verr != nil {
		return verr.ToAPIError()
	}
	return nil
}

// decodeJSONBody decodes a bounded JSON request body into dst, rejecting unknown fields.
func decodeJSONBody(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("request body is empty")
		}
		return err
	}
	return nil
}

// queryInt reads an integer query parameter, def when absent.
func queryInt(r *http.Request, key string, def int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", key)
	}
	return n, nil
}

// titleParam returns the {title} path parameter. Titles that needed escaping beyond the
// default path encoding (such as an embedded slash) arrive raw and are unescaped here.
func titleParam(r *http.Request) string {
	title := chi.URLParam(r, "title")
	if r.URL.RawPath == "" {
		return title
	}
	if unescaped, err := url.PathUnescape(title); err == nil {
		return unescaped
	}
	return title
}
