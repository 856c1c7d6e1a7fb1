package main

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"diljourney/internal/domain/reviews"
	"diljourney/internal/domain/venues"
	"diljourney/internal/metrics"
	"diljourney/internal/ratings"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reviewPayload(mood string, rating int, match bool) map[string]any {
	return map[string]any{
		"mood":      mood,
		"rating":    rating,
		"moodMatch": match,
		"title":     "  Lovely  ",
		"body":      "Would come back.",
	}
}

func TestReviewLifecycle(t *testing.T) {
	app := newTestApplication(t)
	h := app.mount()
	ctx := context.Background()

	v := seedVenue(t, app, "Cafe Aroma", "Mumbai", map[string]float64{"foodie": 0.9})
	alice, _ := registerUser(t, h, "Alice", "alice@example.com")
	bob, _ := registerUser(t, h, "Bob", "bob@example.com")

	path := "/api/reviews/venue/" + v.ID

	rr, _ := doRequest(t, h, http.MethodPost, path, reviewPayload("foodie", 4, true), "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr, env := doRequest(t, h, http.MethodPost, path, reviewPayload("Foodie", 4, true), alice)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	var aliceReview reviews.Review
	decodeData(t, env, &aliceReview)
	assert.Equal(t, "foodie", aliceReview.Mood)
	assert.Equal(t, "Lovely", aliceReview.Title)
	assert.False(t, aliceReview.VisitDate.IsZero())

	rr, _ = doRequest(t, h, http.MethodPost, path, reviewPayload("romantic", 5, false), bob)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	venue, err := app.store.Venues.GetByID(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, 4.5, venue.AverageRating)
	assert.Equal(t, 2, venue.TotalReviews)

	t.Run("one review per user", func(t *testing.T) {
		rr, env := doRequest(t, h, http.MethodPost, path, reviewPayload("foodie", 1, false), alice)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, msgAlreadyReviewed, env.Message)
	})

	t.Run("list newest first with authors", func(t *testing.T) {
		rr, env := doRequest(t, h, http.MethodGet, path, nil, "")
		require.Equal(t, http.StatusOK, rr.Code)

		var resp struct {
			Count   int `json:"count"`
			Total   int `json:"total"`
			Reviews []struct {
				ID   string `json:"id"`
				User struct {
					Name string `json:"name"`
				} `json:"user"`
			} `json:"reviews"`
		}
		decodeData(t, env, &resp)
		require.Equal(t, 2, resp.Total)
		assert.Equal(t, "Bob", resp.Reviews[0].User.Name)
		assert.Equal(t, "Alice", resp.Reviews[1].User.Name)
	})

	t.Run("list filtered by mood", func(t *testing.T) {
		_, env := doRequest(t, h, http.MethodGet, path+"?mood=foodie", nil, "")

		var resp ReviewListResponse
		decodeData(t, env, &resp)
		require.Equal(t, 1, resp.Total)
		assert.Equal(t, aliceReview.ID, resp.Reviews[0].ID)
	})

	t.Run("summary", func(t *testing.T) {
		_, env := doRequest(t, h, http.MethodGet, path+"/summary", nil, "")

		var summary []reviews.MoodSummary
		decodeData(t, env, &summary)
		require.Len(t, summary, 2)
		for _, s := range summary {
			assert.Equal(t, 1, s.Count)
		}
	})

	t.Run("only the author may edit", func(t *testing.T) {
		rr, env := doRequest(t, h, http.MethodPut, "/api/reviews/"+aliceReview.ID, map[string]any{"rating": 1}, bob)
		assert.Equal(t, http.StatusForbidden, rr.Code)
		assert.Equal(t, "Not authorized to edit this review.", env.Message)
	})

	t.Run("edit recalculates rating", func(t *testing.T) {
		rr, env := doRequest(t, h, http.MethodPut, "/api/reviews/"+aliceReview.ID, map[string]any{"rating": 2}, alice)
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

		var updated reviews.Review
		decodeData(t, env, &updated)
		assert.Equal(t, 2, updated.Rating)

		venue, err := app.store.Venues.GetByID(ctx, v.ID)
		require.NoError(t, err)
		assert.Equal(t, 3.5, venue.AverageRating)
	})

	t.Run("edit validation", func(t *testing.T) {
		rr, _ := doRequest(t, h, http.MethodPut, "/api/reviews/"+aliceReview.ID, map[string]any{"rating": 9}, alice)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("only the author may delete", func(t *testing.T) {
		rr, env := doRequest(t, h, http.MethodDelete, "/api/reviews/"+aliceReview.ID, nil, bob)
		assert.Equal(t, http.StatusForbidden, rr.Code)
		assert.Equal(t, "Not authorized to delete this review.", env.Message)
	})

	t.Run("delete recalculates rating", func(t *testing.T) {
		rr, env := doRequest(t, h, http.MethodDelete, "/api/reviews/"+aliceReview.ID, nil, alice)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "Review deleted successfully.", env.Message)

		venue, err := app.store.Venues.GetByID(ctx, v.ID)
		require.NoError(t, err)
		assert.Equal(t, 5.0, venue.AverageRating)
		assert.Equal(t, 1, venue.TotalReviews)

		rr, env = doRequest(t, h, http.MethodDelete, "/api/reviews/"+aliceReview.ID, nil, alice)
		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Equal(t, "Review not found.", env.Message)
	})
}

func TestCreateReviewValidation(t *testing.T) {
	app := newTestApplication(t)
	h := app.mount()

	v := seedVenue(t, app, "Cafe Aroma", "Mumbai", nil)
	token, _ := registerUser(t, h, "Alice", "alice@example.com")

	tests := []struct {
		name    string
		payload map[string]any
		want    string
	}{
		{"venue-only mood", reviewPayload("gym", 4, true), "mood must be one of: family, foodie, romantic, nature, lonely, club"},
		{"rating too high", reviewPayload("foodie", 6, true), "rating must be at most 5"},
		{"rating missing", map[string]any{"mood": "foodie", "moodMatch": true, "body": "ok"}, "rating is required"},
		{"moodMatch missing", map[string]any{"mood": "foodie", "rating": 3, "body": "ok"}, "moodMatch is required"},
		{"body missing", map[string]any{"mood": "foodie", "rating": 3, "moodMatch": false}, "body is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr, env := doRequest(t, h, http.MethodPost, "/api/reviews/venue/"+v.ID, tt.payload, token)
			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.Contains(t, env.Errors, tt.want)
		})
	}

	t.Run("malformed body", func(t *testing.T) {
		payload := reviewPayload("foodie", 4, true)
		payload["rating"] = "5"
		rr, env := doRequest(t, h, http.MethodPost, "/api/reviews/venue/"+v.ID, payload, token)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "invalid request body", env.Message)
		assert.Equal(t, []string{"rating has the wrong type"}, env.Errors)
	})

	t.Run("unknown venue", func(t *testing.T) {
		rr, env := doRequest(t, h, http.MethodPost, "/api/reviews/venue/nope", reviewPayload("foodie", 4, true), token)
		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Equal(t, "Venue not found.", env.Message)
	})
}

// brokenRatingStore fails every aggregate write.
type brokenRatingStore struct {
	venues.Store
}

func (brokenRatingStore) SetRating(context.Context, string, float64, int) error {
	return errors.New("write failed")
}

func TestReviewSurvivesRatingWriteFailure(t *testing.T) {
	app := newTestApplication(t)
	broken := brokenRatingStore{Store: app.store.Venues}
	app.store.Venues = broken
	app.ratings = ratings.NewRecalculator(app.store.Reviews, broken)
	h := app.mount()
	ctx := context.Background()

	v := seedVenue(t, app, "Cafe Aroma", "Mumbai", map[string]float64{"foodie": 0.9})
	token, _ := registerUser(t, h, "Alice", "alice@example.com")
	failures := func() float64 {
		return testutil.ToFloat64(metrics.RatingRecalculations.WithLabelValues("error"))
	}
	before := failures()

	rr, env := doRequest(t, h, http.MethodPost, "/api/reviews/venue/"+v.ID, reviewPayload("foodie", 4, true), token)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	var created reviews.Review
	decodeData(t, env, &created)

	stored, err := app.store.Reviews.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, stored.Rating)
	assert.Equal(t, before+1, failures())

	rr, _ = doRequest(t, h, http.MethodPut, "/api/reviews/"+created.ID, map[string]any{"rating": 2}, token)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	stored, err = app.store.Reviews.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stored.Rating)
	assert.Equal(t, before+2, failures())

	venue, err := app.store.Venues.GetByID(ctx, v.ID)
	require.NoError(t, err)
	assert.Zero(t, venue.TotalReviews, "aggregate was never written")

	rr, env = doRequest(t, h, http.MethodDelete, "/api/reviews/"+created.ID, nil, token)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, "Review deleted successfully.", env.Message)

	_, err = app.store.Reviews.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, reviews.ErrNotFound)
	assert.Equal(t, before+3, failures())
}
