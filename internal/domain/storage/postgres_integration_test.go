//go:build integration

package storage

import (
	"context"
	"fmt"
	"testing"
	"time"

	"diljourney/internal/db"
	"diljourney/internal/domain/reviews"
	"diljourney/internal/domain/users"
	"diljourney/internal/domain/venues"
	"diljourney/internal/ratings"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func startPostgres(t *testing.T) *Container {
	t.Helper()
	skipIfNoDocker(t)

	ctx := context.Background()
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "diljourney",
				"POSTGRES_PASSWORD": "diljourney",
				"POSTGRES_DB":       "diljourney_test",
			},
			// the server restarts once after initdb
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(2 * time.Minute),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("Warning: failed to terminate container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	dsn := fmt.Sprintf("postgres://diljourney:diljourney@%s:%s/diljourney_test?sslmode=disable", host, port.Port())
	pool, err := db.New(dsn, 5, time.Minute)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, db.Migrate(ctx, pool))
	// schema is idempotent
	require.NoError(t, db.Migrate(ctx, pool))

	return NewPostgresContainer(pool)
}

func TestPostgresRepositories(t *testing.T) {
	c := startPostgres(t)
	ctx := context.Background()
	assert.Equal(t, DriverPostgres, c.Driver)

	newUser := func(name, email string) *users.User {
		u := &users.User{Name: name, Email: email}
		require.NoError(t, u.Password.Set("secret123"))
		require.NoError(t, c.Users.Create(ctx, u))
		return u
	}
	asha := newUser("Asha", "Asha@Example.com")
	ravi := newUser("Ravi", "ravi@example.com")

	dup := &users.User{Name: "Other", Email: "asha@example.com"}
	require.NoError(t, dup.Password.Set("secret123"))
	assert.ErrorIs(t, c.Users.Create(ctx, dup), users.ErrDuplicateEmail)

	got, err := c.Users.GetByEmail(ctx, "asha@example.com")
	require.NoError(t, err)
	assert.Equal(t, asha.ID, got.ID)
	assert.NoError(t, got.Password.Compare("secret123"))

	_, err = c.Users.GetByID(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, users.ErrNotFound)

	cafe := &venues.Venue{
		Name:       "Cafe Aroma",
		Moods:      []string{"romantic"},
		MoodScores: map[string]float64{"romantic": 0.9},
		Category:   "cafe",
		Address:    "1 Marine Dr",
		City:       "Mumbai",
		IsActive:   true,
	}
	terrace := &venues.Venue{
		Name:       "Terrace",
		Moods:      []string{"romantic"},
		MoodScores: map[string]float64{"romantic": 0.75},
		Category:   "restaurant",
		Address:    "4 Hill Rd",
		City:       "Mumbai",
		IsActive:   true,
	}
	bar := &venues.Venue{
		Name:       "Loud Bar",
		Moods:      []string{"club", "romantic"},
		MoodScores: map[string]float64{"club": 0.95, "romantic": 0.5},
		Category:   "bar",
		Address:    "7 Link Rd",
		City:       "Mumbai",
		IsActive:   true,
	}
	untagged := &venues.Venue{
		Name:       "Garden",
		Moods:      []string{"nature"},
		MoodScores: map[string]float64{"nature": 0.8, "romantic": 0.99},
		Category:   "park",
		Address:    "2 Ring Rd",
		City:       "Delhi",
		IsActive:   true,
	}
	for _, v := range []*venues.Venue{cafe, terrace, bar, untagged} {
		require.NoError(t, c.Venues.Create(ctx, v))
	}

	t.Run("mood ranking", func(t *testing.T) {
		romantic, err := c.Venues.ByMood(ctx, "romantic", "mum", 12)
		require.NoError(t, err)
		require.Len(t, romantic, 2, "score below threshold or mood not tagged is excluded")
		assert.Equal(t, cafe.ID, romantic[0].ID)
		assert.Equal(t, terrace.ID, romantic[1].ID)
		assert.Equal(t, 0.9, romantic[0].MoodScore("romantic"))

		limited, err := c.Venues.ByMood(ctx, "romantic", "", 1)
		require.NoError(t, err)
		require.Len(t, limited, 1)
		assert.Equal(t, cafe.ID, limited[0].ID)

		none, err := c.Venues.ByMood(ctx, "romantic", "delhi", 12)
		require.NoError(t, err)
		assert.Empty(t, none)
	})

	rv := &reviews.Review{UserID: asha.ID, VenueID: cafe.ID, Mood: "romantic", Rating: 4, MoodMatch: true, Body: "Lovely"}
	require.NoError(t, c.Reviews.Create(ctx, rv))
	assert.NotEmpty(t, rv.ID)

	t.Run("one review per user and venue", func(t *testing.T) {
		again := &reviews.Review{UserID: asha.ID, VenueID: cafe.ID, Mood: "foodie", Rating: 2, Body: "Again"}
		assert.ErrorIs(t, c.Reviews.Create(ctx, again), reviews.ErrDuplicateReview)

		has, err := c.Reviews.HasReview(ctx, asha.ID, cafe.ID)
		require.NoError(t, err)
		assert.True(t, has)
	})

	other := &reviews.Review{UserID: ravi.ID, VenueID: cafe.ID, Mood: "foodie", Rating: 5, MoodMatch: false, Body: "Great coffee"}
	require.NoError(t, c.Reviews.Create(ctx, other))

	rc := ratings.NewRecalculator(c.Reviews, c.Venues)

	t.Run("rating stats", func(t *testing.T) {
		total, mean, err := c.Reviews.RatingStats(ctx, cafe.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, total)
		assert.Equal(t, 4.5, mean)

		avg, n, err := rc.Recalculate(ctx, cafe.ID)
		require.NoError(t, err)
		assert.Equal(t, 4.5, avg)
		assert.Equal(t, 2, n)

		stored, err := c.Venues.GetByID(ctx, cafe.ID)
		require.NoError(t, err)
		assert.Equal(t, 4.5, stored.AverageRating)
		assert.Equal(t, 2, stored.TotalReviews)

		total, mean, err = c.Reviews.RatingStats(ctx, bar.ID)
		require.NoError(t, err)
		assert.Zero(t, total)
		assert.Zero(t, mean)
	})

	t.Run("mood summary", func(t *testing.T) {
		summary, err := c.Reviews.MoodSummary(ctx, cafe.ID)
		require.NoError(t, err)
		require.Len(t, summary, 2)
		assert.Equal(t, reviews.MoodSummary{Mood: "foodie", Count: 1, AvgRating: 5, MoodMatchCount: 0}, summary[0])
		assert.Equal(t, reviews.MoodSummary{Mood: "romantic", Count: 1, AvgRating: 4, MoodMatchCount: 1}, summary[1])

		empty, err := c.Reviews.MoodSummary(ctx, bar.ID)
		require.NoError(t, err)
		assert.Empty(t, empty)
	})

	t.Run("list by venue", func(t *testing.T) {
		page, total, err := c.Reviews.ListByVenue(ctx, cafe.ID, reviews.ListFilter{Limit: 1})
		require.NoError(t, err)
		assert.Equal(t, 2, total)
		require.Len(t, page, 1)
		assert.Equal(t, other.ID, page[0].ID, "newest first")

		page, total, err = c.Reviews.ListByVenue(ctx, cafe.ID, reviews.ListFilter{Mood: "romantic", Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, 1, total)
		require.Len(t, page, 1)
		assert.Equal(t, rv.ID, page[0].ID)
	})

	t.Run("delete resets aggregate", func(t *testing.T) {
		require.NoError(t, c.Reviews.Delete(ctx, rv.ID))
		require.NoError(t, c.Reviews.Delete(ctx, other.ID))

		avg, total, err := rc.Recalculate(ctx, cafe.ID)
		require.NoError(t, err)
		assert.Zero(t, avg)
		assert.Zero(t, total)

		_, err = c.Reviews.GetByID(ctx, rv.ID)
		assert.ErrorIs(t, err, reviews.ErrNotFound)
	})

	t.Run("malformed ids are not found", func(t *testing.T) {
		_, err := c.Venues.GetByID(ctx, "not-a-uuid")
		assert.ErrorIs(t, err, venues.ErrVenueNotFound)

		_, err = c.Reviews.GetByID(ctx, "not-a-uuid")
		assert.ErrorIs(t, err, reviews.ErrNotFound)
	})

	t.Run("saved venues", func(t *testing.T) {
		saved, err := c.Users.AddSavedVenue(ctx, asha.ID, cafe.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{cafe.ID}, saved)

		_, err = c.Users.AddSavedVenue(ctx, asha.ID, cafe.ID)
		assert.ErrorIs(t, err, users.ErrAlreadySaved)
	})

	cities, err := c.Venues.Cities(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Delhi", "Mumbai"}, cities)
}
