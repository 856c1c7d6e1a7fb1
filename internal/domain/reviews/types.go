package reviews

import (
	"context"
	"errors"
	"strings"
	"time"
)

var (
	ErrNotFound          = errors.New("review not found")
	ErrDuplicateReview   = errors.New("you have already reviewed this venue")
	QueryTimeoutDuration = time.Second * 5
)

type Review struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user"`
	VenueID   string    `json:"venue"`
	Mood      string    `json:"mood"`
	Rating    int       `json:"rating"` // 1-5
	MoodMatch bool      `json:"moodMatch"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	VisitDate time.Time `json:"visitDate"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// prepare normalizes a review before it is first stored.
func (r *Review) prepare(now time.Time) {
	r.Title = strings.TrimSpace(r.Title)
	if r.VisitDate.IsZero() {
		r.VisitDate = now
	}
	r.CreatedAt = now
	r.UpdatedAt = now
}

// Update is a partial edit; nil fields are left untouched.
type Update struct {
	Rating    *int
	MoodMatch *bool
	Title     *string
	Body      *string
}

func (u Update) apply(r *Review) {
	if u.Rating != nil {
		r.Rating = *u.Rating
	}
	if u.MoodMatch != nil {
		r.MoodMatch = *u.MoodMatch
	}
	if u.Title != nil {
		r.Title = strings.TrimSpace(*u.Title)
	}
	if u.Body != nil {
		r.Body = *u.Body
	}
}

type MoodSummary struct {
	Mood           string  `json:"mood"`
	Count          int     `json:"count"`
	AvgRating      float64 `json:"avgRating"`
	MoodMatchCount int     `json:"moodMatchCount"`
}

type ListFilter struct {
	Mood   string
	Limit  int
	Offset int
}

type Store interface {
	Create(ctx context.Context, review *Review) error
	GetByID(ctx context.Context, id string) (*Review, error)
	Update(ctx context.Context, id string, update Update) (*Review, error)
	Delete(ctx context.Context, id string) error
	HasReview(ctx context.Context, userID, venueID string) (bool, error)
	// ListByVenue returns one page of a venue's reviews, newest first, and the
	// number of reviews matching the filter.
	ListByVenue(ctx context.Context, venueID string, filter ListFilter) ([]Review, int, error)
	ListByUser(ctx context.Context, userID string) ([]Review, error)
	RatingStats(ctx context.Context, venueID string) (count int, average float64, err error)
	MoodSummary(ctx context.Context, venueID string) ([]MoodSummary, error)
}
