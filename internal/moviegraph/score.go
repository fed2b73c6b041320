// Cinegraph - Movie Similarity Graph and Recommendation Queries
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinegraph

package moviegraph

import (
	"math"

	"github.com/tomtom215/cinegraph/internal/models"
)

// Rule weights. Year rules are exclusive; all others add up independently.
const (
	WeightSharedGenre   = 2
	WeightSameDirector  = 3
	WeightSameYear      = 2
	WeightCloseYear     = 1
	WeightCloseRating   = 2
	WeightCloseDuration = 1
	WeightCloseVotes    = 1

	// MaxScore is the score of two movies that satisfy every rule.
	MaxScore = WeightSharedGenre + WeightSameDirector + WeightSameYear +
		WeightCloseRating + WeightCloseDuration + WeightCloseVotes
)

// Rule thresholds.
const (
	CloseYearSpan      = 10
	CloseRatingDelta   = 0.5
	CloseDurationDelta = 10
	CloseVotesDelta    = 50
)

// Score returns the similarity weight between two distinct movies.
// It is symmetric: Score(a, b) == Score(b, a).
func Score(a, b *models.Movie) int {
	score := 0

	if sharesGenre(a.Genres, b.Genres) {
		score += WeightSharedGenre
	}

	if a.Director == b.Director {
		score += WeightSameDirector
	}

	if a.Year == b.Year {
		score += WeightSameYear
	} else if absInt(a.Year-b.Year) <= CloseYearSpan {
		score += WeightCloseYear
	}

	if math.Abs(a.Rating-b.Rating) < CloseRatingDelta {
		score += WeightCloseRating
	}

	if absInt(a.Duration-b.Duration) < CloseDurationDelta {
		score += WeightCloseDuration
	}

	if absInt(a.Votes-b.Votes) < CloseVotesDelta {
		score += WeightCloseVotes
	}

	return score
}

// sharesGenre reports whether the two genre lists have an element in common.
func sharesGenre(a, b []string) bool {
	for _, ga := range a {
		for _, gb := range b {
			if ga == gb {
				return true
			}
		}
	}
	return false
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
