package ratings

import (
	"context"
	"fmt"
	"math"

	"diljourney/internal/domain/reviews"
	"diljourney/internal/domain/venues"
	"diljourney/internal/metrics"
)

// Recalculator keeps a venue's averageRating and totalReviews in step with
// its stored reviews.
type Recalculator struct {
	reviews reviews.Store
	venues  venues.Store
}

func NewRecalculator(r reviews.Store, v venues.Store) *Recalculator {
	return &Recalculator{reviews: r, venues: v}
}

// Recalculate recomputes the aggregate for venueID and returns the values
// written. A venue without reviews is reset to 0/0.
func (rc *Recalculator) Recalculate(ctx context.Context, venueID string) (average float64, total int, err error) {
	defer func() { metrics.RecordRatingRecalculation(err) }()

	total, mean, err := rc.reviews.RatingStats(ctx, venueID)
	if err != nil {
		return 0, 0, fmt.Errorf("rating stats for venue %s: %w", venueID, err)
	}
	if total > 0 {
		average = Round(mean)
	}

	if err = rc.venues.SetRating(ctx, venueID, average, total); err != nil {
		return 0, 0, fmt.Errorf("store rating for venue %s: %w", venueID, err)
	}
	return average, total, nil
}

// Round rounds to one decimal place, halves away from zero.
func Round(avg float64) float64 {
	return math.Round(avg*10) / 10
}
