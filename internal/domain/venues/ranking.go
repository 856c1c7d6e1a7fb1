package venues

import (
	"sort"
	"strings"

	"diljourney/internal/domain/moods"
)

// RankByMood keeps the active venues tagged with mood whose affinity reaches
// moods.Threshold, ordered by affinity then average rating, both descending.
func RankByMood(vs []Venue, mood, city string) []Venue {
	out := make([]Venue, 0, len(vs))
	for _, v := range vs {
		if !v.IsActive || !v.HasMood(mood) || v.MoodScore(mood) < moods.Threshold {
			continue
		}
		if !CityMatches(v.City, city) {
			continue
		}
		out = append(out, v)
	}

	sort.SliceStable(out, func(i, j int) bool {
		si, sj := out[i].MoodScore(mood), out[j].MoodScore(mood)
		if si != sj {
			return si > sj
		}
		return out[i].AverageRating > out[j].AverageRating
	})
	return out
}

// CityMatches is the case-insensitive substring match used for the city filter.
// An empty filter matches everything.
func CityMatches(city, filter string) bool {
	if filter == "" {
		return true
	}
	return strings.Contains(strings.ToLower(city), strings.ToLower(filter))
}

// Matches reports whether v passes the listing filter (pagination aside).
func (f Filter) Matches(v *Venue) bool {
	if !v.IsActive {
		return false
	}
	if f.Mood != "" && !v.HasMood(f.Mood) {
		return false
	}
	if f.Category != "" && v.Category != f.Category {
		return false
	}
	if f.PriceRange != "" && v.PriceRange != f.PriceRange {
		return false
	}
	return CityMatches(v.City, f.City)
}
