// Cinegraph - Movie Similarity Graph and Recommendation Queries
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinegraph

package recommend

import (
	"errors"
	"reflect"
	"testing"

	"github.com/tomtom215/cinegraph/internal/models"
	"github.com/tomtom215/cinegraph/internal/moviegraph"
)

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

func criteriaStrings(criteria []moviegraph.Criterion) []string {
	out := make([]string, len(criteria))
	for i, c := range criteria {
		out[i] = c.String()
	}
	return out
}

func TestCriteriaFromRequest(t *testing.T) {
	tests := []struct {
		name string
		req  models.SearchRequest
		want []string
	}{
		{
			name: "empty request",
			req:  models.SearchRequest{},
			want: []string{},
		},
		{
			name: "director only",
			req:  models.SearchRequest{Director: "  Michael Mann "},
			want: []string{"director=michael mann"},
		},
		{
			name: "genres truncated to three",
			req:  models.SearchRequest{Genres: []string{"Crime", " ", "Drama", "Thriller", "Action"}},
			want: []string{"genres in [crime,drama,thriller]"},
		},
		{
			name: "every field",
			req: models.SearchRequest{
				Title:    "Heat",
				Director: "Michael Mann",
				Genres:   []string{"Crime"},
				Rating:   floatPtr(8.3),
				Votes:    intPtr(700),
				Duration: intPtr(170),
				Year:     intPtr(1995),
			},
			want: []string{
				"title=heat",
				"director=michael mann",
				"genres in [crime]",
				"rating==8.3",
				"votes==700",
				"duration==170",
				"year==1995",
			},
		},
		{
			name: "zero votes is a filter",
			req:  models.SearchRequest{Votes: intPtr(0)},
			want: []string{"votes==0"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			criteria, err := CriteriaFromRequest(&tt.req, moviegraph.MaxGenreOptions)
			if err != nil {
				t.Fatalf("CriteriaFromRequest() error = %v", err)
			}
			if got := criteriaStrings(criteria); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("criteria = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCriteriaFromRequest_NegativeNumber(t *testing.T) {
	req := models.SearchRequest{Year: intPtr(-1)}

	_, err := CriteriaFromRequest(&req, moviegraph.MaxGenreOptions)
	if !errors.Is(err, moviegraph.ErrNegativeValue) {
		t.Errorf("error = %v, want ErrNegativeValue", err)
	}
}

func TestTruncateGenres(t *testing.T) {
	tests := []struct {
		name   string
		genres []string
		limit  int
		want   []string
	}{
		{"nil", nil, 3, []string{}},
		{"under limit", []string{"Crime"}, 3, []string{"Crime"}},
		{"blanks dropped before truncation", []string{"", "Crime", " ", "Drama", "War", "Noir"}, 3, []string{"Crime", "Drama", "War"}},
		{"no limit", []string{"A", "B", "C", "D"}, 0, []string{"A", "B", "C", "D"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TruncateGenres(tt.genres, tt.limit); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("TruncateGenres() = %v, want %v", got, tt.want)
			}
		})
	}
}
