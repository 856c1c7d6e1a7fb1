package venues

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryRepository keeps venues in process memory.
type MemoryRepository struct {
	mu     sync.RWMutex
	venues map[string]*Venue
	order  []string
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{venues: make(map[string]*Venue)}
}

func (r *MemoryRepository) Create(_ context.Context, venue *Venue) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	venue.ApplyDefaults()
	now := time.Now().UTC()
	venue.ID = uuid.NewString()
	venue.Name = strings.TrimSpace(venue.Name)
	venue.AverageRating = 0
	venue.TotalReviews = 0
	venue.CreatedAt = now
	venue.UpdatedAt = now

	r.venues[venue.ID] = cloneVenue(venue)
	r.order = append(r.order, venue.ID)
	return nil
}

func (r *MemoryRepository) GetByID(_ context.Context, id string) (*Venue, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	v, ok := r.venues[id]
	if !ok {
		return nil, ErrVenueNotFound
	}
	return cloneVenue(v), nil
}

func (r *MemoryRepository) ListByIDs(_ context.Context, ids []string) ([]Venue, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []Venue{}
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		v, ok := r.venues[id]
		if !ok || !v.IsActive || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, *cloneVenue(v))
	}
	return out, nil
}

func (r *MemoryRepository) List(_ context.Context, filter Filter) ([]Venue, int, error) {
	matched := []Venue{}
	for _, v := range r.snapshot() {
		if filter.Matches(&v) {
			matched = append(matched, v)
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].AverageRating > matched[j].AverageRating
	})

	total := len(matched)
	start := min(max(filter.Offset, 0), total)
	end := total
	if filter.Limit > 0 {
		end = min(start+filter.Limit, total)
	}
	return matched[start:end], total, nil
}

func (r *MemoryRepository) ByMood(_ context.Context, mood, city string, limit int) ([]Venue, error) {
	ranked := RankByMood(r.snapshot(), mood, city)
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked, nil
}

func (r *MemoryRepository) Cities(_ context.Context) ([]string, error) {
	seen := map[string]bool{}
	cities := []string{}
	for _, v := range r.snapshot() {
		if !v.IsActive || seen[v.City] {
			continue
		}
		seen[v.City] = true
		cities = append(cities, v.City)
	}
	sort.Strings(cities)
	return cities, nil
}

func (r *MemoryRepository) SetRating(_ context.Context, id string, average float64, total int) error {
	return r.mutate(id, func(v *Venue) {
		v.AverageRating = average
		v.TotalReviews = total
	})
}

func (r *MemoryRepository) AddImage(_ context.Context, id, url string) error {
	return r.mutate(id, func(v *Venue) {
		v.Images = append(v.Images, url)
	})
}

func (r *MemoryRepository) RemoveImage(_ context.Context, id, url string) error {
	return r.mutate(id, func(v *Venue) {
		kept := make([]string, 0, len(v.Images))
		for _, img := range v.Images {
			if img != url {
				kept = append(kept, img)
			}
		}
		v.Images = kept
	})
}

func (r *MemoryRepository) DeleteAll(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := int64(len(r.venues))
	r.venues = make(map[string]*Venue)
	r.order = nil
	return n, nil
}

func (r *MemoryRepository) mutate(id string, fn func(v *Venue)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	v, ok := r.venues[id]
	if !ok {
		return ErrVenueNotFound
	}
	fn(v)
	v.UpdatedAt = time.Now().UTC()
	return nil
}

// snapshot returns copies of every venue in insertion order.
func (r *MemoryRepository) snapshot() []Venue {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Venue, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, *cloneVenue(r.venues[id]))
	}
	return out
}

func cloneVenue(v *Venue) *Venue {
	c := *v
	c.Moods = append([]string{}, v.Moods...)
	c.Images = append([]string{}, v.Images...)
	c.Location.Coordinates = append([]float64{}, v.Location.Coordinates...)
	c.MoodScores = make(map[string]float64, len(v.MoodScores))
	for k, s := range v.MoodScores {
		c.MoodScores[k] = s
	}
	return &c
}
