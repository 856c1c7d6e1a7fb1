package reviews

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

type MemoryRepository struct {
	mu      sync.RWMutex
	reviews map[string]*Review
	seq     map[string]int
	next    int
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{reviews: make(map[string]*Review), seq: make(map[string]int)}
}

func (r *MemoryRepository) Create(_ context.Context, review *Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.reviews {
		if existing.UserID == review.UserID && existing.VenueID == review.VenueID {
			return ErrDuplicateReview
		}
	}

	review.ID = uuid.NewString()
	review.prepare(time.Now().UTC())
	c := *review
	r.reviews[review.ID] = &c
	r.next++
	r.seq[review.ID] = r.next
	return nil
}

func (r *MemoryRepository) GetByID(_ context.Context, id string) (*Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rev, ok := r.reviews[id]
	if !ok {
		return nil, ErrNotFound
	}
	c := *rev
	return &c, nil
}

func (r *MemoryRepository) Update(_ context.Context, id string, update Update) (*Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rev, ok := r.reviews[id]
	if !ok {
		return nil, ErrNotFound
	}
	update.apply(rev)
	rev.UpdatedAt = time.Now().UTC()
	c := *rev
	return &c, nil
}

func (r *MemoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.reviews[id]; !ok {
		return ErrNotFound
	}
	delete(r.reviews, id)
	delete(r.seq, id)
	return nil
}

func (r *MemoryRepository) HasReview(_ context.Context, userID, venueID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, rev := range r.reviews {
		if rev.UserID == userID && rev.VenueID == venueID {
			return true, nil
		}
	}
	return false, nil
}

func (r *MemoryRepository) ListByVenue(_ context.Context, venueID string, filter ListFilter) ([]Review, int, error) {
	matched := r.where(func(rev *Review) bool {
		return rev.VenueID == venueID && (filter.Mood == "" || rev.Mood == filter.Mood)
	})

	total := len(matched)
	start := min(max(filter.Offset, 0), total)
	end := total
	if filter.Limit > 0 {
		end = min(start+filter.Limit, total)
	}
	return matched[start:end], total, nil
}

func (r *MemoryRepository) ListByUser(_ context.Context, userID string) ([]Review, error) {
	return r.where(func(rev *Review) bool { return rev.UserID == userID }), nil
}

func (r *MemoryRepository) RatingStats(_ context.Context, venueID string) (int, float64, error) {
	matched := r.where(func(rev *Review) bool { return rev.VenueID == venueID })
	if len(matched) == 0 {
		return 0, 0, nil
	}
	sum := 0
	for _, rev := range matched {
		sum += rev.Rating
	}
	return len(matched), float64(sum) / float64(len(matched)), nil
}

func (r *MemoryRepository) MoodSummary(_ context.Context, venueID string) ([]MoodSummary, error) {
	byMood := map[string]*MoodSummary{}
	sums := map[string]int{}
	order := []string{}

	for _, rev := range r.where(func(rev *Review) bool { return rev.VenueID == venueID }) {
		s, ok := byMood[rev.Mood]
		if !ok {
			s = &MoodSummary{Mood: rev.Mood}
			byMood[rev.Mood] = s
			order = append(order, rev.Mood)
		}
		s.Count++
		sums[rev.Mood] += rev.Rating
		if rev.MoodMatch {
			s.MoodMatchCount++
		}
	}

	out := make([]MoodSummary, 0, len(order))
	for _, m := range order {
		s := byMood[m]
		s.AvgRating = float64(sums[m]) / float64(s.Count)
		out = append(out, *s)
	}
	sortSummary(out)
	return out, nil
}

// where returns copies of the matching reviews, newest first.
func (r *MemoryRepository) where(keep func(*Review) bool) []Review {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []Review{}
	for _, rev := range r.reviews {
		if keep(rev) {
			out = append(out, *rev)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return r.seq[out[i].ID] > r.seq[out[j].ID]
	})
	return out
}

// sortSummary orders by count desc, then mood name for a stable result.
func sortSummary(s []MoodSummary) {
	sort.Slice(s, func(i, j int) bool {
		if s[i].Count != s[j].Count {
			return s[i].Count > s[j].Count
		}
		return s[i].Mood < s[j].Mood
	})
}
