package venues

import (
	"context"
	"errors"
	"time"
)

var (
	ErrVenueNotFound     = errors.New("venue not found")
	QueryTimeoutDuration = time.Second * 5
)

// Point is a GeoJSON point; Coordinates are [longitude, latitude].
type Point struct {
	Type        string    `json:"type" bson:"type"`
	Coordinates []float64 `json:"coordinates" bson:"coordinates"`
}

type Ambiance struct {
	Lighting    string `json:"lighting" bson:"lighting"`
	NoiseLevel  string `json:"noiseLevel" bson:"noiseLevel"`
	Seating     string `json:"seating" bson:"seating"`
	OutdoorArea bool   `json:"outdoorArea" bson:"outdoorArea"`
	Decor       string `json:"decor" bson:"decor"`
}

type Venue struct {
	ID            string             `json:"id"`
	Name          string             `json:"name"`
	Description   string             `json:"description"`
	Moods         []string           `json:"moods"`
	MoodScores    map[string]float64 `json:"moodScores"`
	Category      string             `json:"category"`
	Address       string             `json:"address"`
	City          string             `json:"city"`
	Location      Point              `json:"location"`
	Images        []string           `json:"images"`
	Ambiance      Ambiance           `json:"ambiance"`
	ActivityGuide string             `json:"activityGuide"`
	SeekingGuide  string             `json:"seekingGuide"`
	PriceRange    string             `json:"priceRange"`
	Cuisine       string             `json:"cuisine"`
	OpeningHours  string             `json:"openingHours"`
	AverageRating float64            `json:"averageRating"`
	TotalReviews  int                `json:"totalReviews"`
	IsActive      bool               `json:"isActive"`
	CreatedAt     time.Time          `json:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt"`
}

// MoodScore returns the venue's affinity for mood; unscored moods count as 0.
func (v *Venue) MoodScore(mood string) float64 {
	return v.MoodScores[mood]
}

func (v *Venue) HasMood(mood string) bool {
	for _, m := range v.Moods {
		if m == mood {
			return true
		}
	}
	return false
}

// ApplyDefaults fills the optional fields a new venue is stored with.
func (v *Venue) ApplyDefaults() {
	if v.MoodScores == nil {
		v.MoodScores = map[string]float64{}
	}
	if v.PriceRange == "" {
		v.PriceRange = "$$"
	}
	if v.Images == nil {
		v.Images = []string{}
	}
	if v.Location.Type == "" {
		v.Location.Type = "Point"
	}
	if len(v.Location.Coordinates) != 2 {
		v.Location.Coordinates = []float64{0, 0}
	}
	if v.Ambiance.Lighting == "" {
		v.Ambiance.Lighting = "warm"
	}
	if v.Ambiance.NoiseLevel == "" {
		v.Ambiance.NoiseLevel = "moderate"
	}
	if v.Ambiance.Seating == "" {
		v.Ambiance.Seating = "mixed"
	}
	if v.Ambiance.Decor == "" {
		v.Ambiance.Decor = "modern"
	}
}

// Summary is the compact projection embedded in saved-venue lists and reviews.
type Summary struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Category      string   `json:"category"`
	City          string   `json:"city"`
	Moods         []string `json:"moods,omitempty"`
	AverageRating float64  `json:"averageRating"`
	TotalReviews  int      `json:"totalReviews"`
	Images        []string `json:"images,omitempty"`
	PriceRange    string   `json:"priceRange,omitempty"`
}

func (v *Venue) Summary() Summary {
	return Summary{
		ID:            v.ID,
		Name:          v.Name,
		Category:      v.Category,
		City:          v.City,
		Moods:         v.Moods,
		AverageRating: v.AverageRating,
		TotalReviews:  v.TotalReviews,
		Images:        v.Images,
		PriceRange:    v.PriceRange,
	}
}

type Filter struct {
	Mood       string
	City       string
	Category   string
	PriceRange string
	Limit      int
	Offset     int
}

type Store interface {
	Create(ctx context.Context, venue *Venue) error
	GetByID(ctx context.Context, id string) (*Venue, error)
	// ListByIDs returns the active venues among ids, in the order given.
	ListByIDs(ctx context.Context, ids []string) ([]Venue, error)
	List(ctx context.Context, filter Filter) ([]Venue, int, error)
	ByMood(ctx context.Context, mood, city string, limit int) ([]Venue, error)
	Cities(ctx context.Context) ([]string, error)
	SetRating(ctx context.Context, id string, average float64, total int) error
	AddImage(ctx context.Context, id, url string) error
	RemoveImage(ctx context.Context, id, url string) error
	DeleteAll(ctx context.Context) (int64, error)
}
