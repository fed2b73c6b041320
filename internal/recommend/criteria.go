// Cinegraph - Movie Similarity Graph and Recommendation Queries
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinegraph

package recommend

import (
	"strings"

	"github.com/tomtom215/cinegraph/internal/models"
	"github.com/tomtom215/cinegraph/internal/moviegraph"
)

// CriteriaFromRequest converts a search request into filter criteria, one per
// populated field. Genres are trimmed, blanks dropped and the list cut to
// maxGenres. An empty request yields no criteria.
func CriteriaFromRequest(req *models.SearchRequest, maxGenres int) ([]moviegraph.Criterion, error) {
	var criteria []moviegraph.Criterion

	add := func(c moviegraph.Criterion, err error) error {
		if err != nil {
			return err
		}
		criteria = append(criteria, c)
		return nil
	}

	if strings.TrimSpace(req.Title) != "" {
		if err := add(moviegraph.StringEquals(moviegraph.FieldTitle, req.Title)); err != nil {
			return nil, err
		}
	}
	if strings.TrimSpace(req.Director) != "" {
		if err := add(moviegraph.StringEquals(moviegraph.FieldDirector, req.Director)); err != nil {
			return nil, err
		}
	}
	if genres := TruncateGenres(req.Genres, maxGenres); len(genres) > 0 {
		if err := add(moviegraph.OneOf(moviegraph.FieldGenres, genres...)); err != nil {
			return nil, err
		}
	}

	numeric := []struct {
		field moviegraph.Field
		set   bool
		value float64
	}{
		{moviegraph.FieldRating, req.Rating != nil, deref(req.Rating)},
		{moviegraph.FieldVotes, req.Votes != nil, float64(derefInt(req.Votes))},
		{moviegraph.FieldDuration, req.Duration != nil, float64(derefInt(req.Duration))},
		{moviegraph.FieldYear, req.Year != nil, float64(derefInt(req.Year))},
	}
	for _, n := range numeric {
		if !n.set {
			continue
		}
		if err := add(moviegraph.NumberEquals(n.field, n.value)); err != nil {
			return nil, err
		}
	}

	return criteria, nil
}

// TruncateGenres trims genres, drops blanks and keeps at most limit of them.
// A limit below 1 keeps them all.
func TruncateGenres(genres []string, limit int) []string {
	kept := make([]string, 0, len(genres))
	for _, g := range genres {
		if g = strings.TrimSpace(g); g != "" {
			kept = append(kept, g)
		}
	}
	if limit > 0 && len(kept) > limit {
		kept = kept[:limit]
	}
	return kept
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

func derefInt(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}
