package venues

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func venue(name, city string, active bool, rating float64, scores map[string]float64) Venue {
	ms := make([]string, 0, len(scores))
	for m := range scores {
		ms = append(ms, m)
	}
	return Venue{
		ID:            name,
		Name:          name,
		City:          city,
		IsActive:      active,
		AverageRating: rating,
		Moods:         ms,
		MoodScores:    scores,
	}
}

func names(vs []Venue) []string {
	out := make([]string, 0, len(vs))
	for _, v := range vs {
		out = append(out, v.Name)
	}
	return out
}

func TestRankByMood(t *testing.T) {
	vs := []Venue{
		venue("low", "Mumbai", true, 5, map[string]float64{"foodie": 0.69}),
		venue("edge", "Mumbai", true, 3.1, map[string]float64{"foodie": 0.7}),
		venue("top", "Mumbai", true, 4.0, map[string]float64{"foodie": 0.95}),
		venue("tie-better", "Delhi", true, 4.8, map[string]float64{"foodie": 0.8}),
		venue("tie-worse", "Mumbai", true, 4.1, map[string]float64{"foodie": 0.8}),
		venue("closed", "Mumbai", false, 5, map[string]float64{"foodie": 1}),
		venue("other", "Mumbai", true, 5, map[string]float64{"nature": 1}),
	}

	t.Run("threshold and ordering", func(t *testing.T) {
		got := RankByMood(vs, "foodie", "")
		assert.Equal(t, []string{"top", "tie-better", "tie-worse", "edge"}, names(got))
	})

	t.Run("city is a case-insensitive substring", func(t *testing.T) {
		got := RankByMood(vs, "foodie", "mum")
		assert.Equal(t, []string{"top", "tie-worse", "edge"}, names(got))
	})

	t.Run("score without membership is ignored", func(t *testing.T) {
		stray := venue("stray", "Pune", true, 5, nil)
		stray.MoodScores = map[string]float64{"foodie": 0.9}
		assert.Empty(t, RankByMood([]Venue{stray}, "foodie", ""))
	})

	t.Run("membership without score is ignored", func(t *testing.T) {
		bare := Venue{Name: "bare", IsActive: true, Moods: []string{"foodie"}}
		assert.Empty(t, RankByMood([]Venue{bare}, "foodie", ""))
	})
}

func TestFilterMatches(t *testing.T) {
	v := venue("cafe", "New Delhi", true, 4, map[string]float64{"romantic": 0.9})
	v.Category = "cafe"
	v.PriceRange = "$$"

	tests := []struct {
		name   string
		filter Filter
		want   bool
	}{
		{"empty", Filter{}, true},
		{"mood", Filter{Mood: "romantic"}, true},
		{"wrong mood", Filter{Mood: "club"}, false},
		{"city substring", Filter{City: "delhi"}, true},
		{"category", Filter{Category: "park"}, false},
		{"price", Filter{PriceRange: "$$"}, true},
		{"price mismatch", Filter{PriceRange: "$$$$"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Matches(&v))
		})
	}

	v.IsActive = false
	assert.False(t, Filter{}.Matches(&v))
}
