// Cinegraph - Movie Similarity Graph and Recommendation Queries
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinegraph

package moviegraph

import (
	"testing"

	"github.com/tomtom215/cinegraph/internal/models"
)

// farApart returns two movies that satisfy no scoring rule.
func farApart() (models.Movie, models.Movie) {
	a := models.Movie{
		Title:    "A",
		Rating:   2.0,
		Votes:    10,
		Duration: 90,
		Director: "Alpha",
		Genres:   []string{"Drama"},
		Year:     1950,
	}
	b := models.Movie{
		Title:    "B",
		Rating:   9.0,
		Votes:    10000,
		Duration: 200,
		Director: "Beta",
		Genres:   []string{"Comedy"},
		Year:     2000,
	}
	return a, b
}

func TestScore(t *testing.T) {
	tests := []struct {
		name   string
		modify func(a, b *models.Movie)
		want   int
	}{
		{
			name:   "no rule matches",
			modify: func(a, b *models.Movie) {},
			want:   0,
		},
		{
			name: "shared genre",
			modify: func(a, b *models.Movie) {
				a.Genres = []string{"Drama", "Crime"}
				b.Genres = []string{"Comedy", "Crime"}
			},
			want: WeightSharedGenre,
		},
		{
			name: "genre comparison is case-sensitive",
			modify: func(a, b *models.Movie) {
				b.Genres = []string{"drama"}
			},
			want: 0,
		},
		{
			name: "same director",
			modify: func(a, b *models.Movie) {
				b.Director = "Alpha"
			},
			want: WeightSameDirector,
		},
		{
			name: "both directors unknown",
			modify: func(a, b *models.Movie) {
				a.Director = ""
				b.Director = ""
			},
			want: WeightSameDirector,
		},
		{
			name: "same year",
			modify: func(a, b *models.Movie) {
				b.Year = 1950
			},
			want: WeightSameYear,
		},
		{
			name: "years ten apart are close",
			modify: func(a, b *models.Movie) {
				b.Year = 1960
			},
			want: WeightCloseYear,
		},
		{
			name: "years eleven apart are not close",
			modify: func(a, b *models.Movie) {
				b.Year = 1961
			},
			want: 0,
		},
		{
			name: "close rating",
			modify: func(a, b *models.Movie) {
				b.Rating = 2.49
			},
			want: WeightCloseRating,
		},
		{
			name: "rating half a point apart is not close",
			modify: func(a, b *models.Movie) {
				b.Rating = 2.5
			},
			want: 0,
		},
		{
			name: "close duration",
			modify: func(a, b *models.Movie) {
				b.Duration = 99
			},
			want: WeightCloseDuration,
		},
		{
			name: "duration ten minutes apart is not close",
			modify: func(a, b *models.Movie) {
				b.Duration = 100
			},
			want: 0,
		},
		{
			name: "close votes",
			modify: func(a, b *models.Movie) {
				b.Votes = 59
			},
			want: WeightCloseVotes,
		},
		{
			name: "votes fifty apart are not close",
			modify: func(a, b *models.Movie) {
				b.Votes = 60
			},
			want: 0,
		},
		{
			name: "every rule matches",
			modify: func(a, b *models.Movie) {
				*b = a.Clone()
				b.Title = "B"
			},
			want: MaxScore,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, b := farApart()
			tt.modify(&a, &b)

			if got := Score(&a, &b); got != tt.want {
				t.Errorf("Score(a, b) = %d, want %d", got, tt.want)
			}
			if got := Score(&b, &a); got != tt.want {
				t.Errorf("Score(b, a) = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestMaxScore(t *testing.T) {
	if MaxScore != 11 {
		t.Errorf("MaxScore = %d, want 11", MaxScore)
	}
}

func TestScore_YearRulesAreExclusive(t *testing.T) {
	a, b := farApart()
	b.Year = a.Year

	got := Score(&a, &b)
	if got != WeightSameYear {
		t.Errorf("Score() = %d, want only the same-year weight %d", got, WeightSameYear)
	}
}

func TestScore_Symmetric(t *testing.T) {
	movies := fixtureMovies(30)
	for i := range movies {
		for j := range movies {
			if i == j {
				continue
			}
			ab := Score(&movies[i], &movies[j])
			ba := Score(&movies[j], &movies[i])
			if ab != ba {
				t.Fatalf("Score(%q, %q) = %d but reverse = %d", movies[i].Title, movies[j].Title, ab, ba)
			}
			if ab < 0 || ab > MaxScore {
				t.Fatalf("Score(%q, %q) = %d out of range [0, %d]", movies[i].Title, movies[j].Title, ab, MaxScore)
			}
		}
	}
}
