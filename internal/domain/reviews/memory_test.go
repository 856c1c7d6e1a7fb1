package reviews

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func add(t *testing.T, repo *MemoryRepository, user, venue, mood string, rating int, match bool) *Review {
	t.Helper()
	rev := &Review{UserID: user, VenueID: venue, Mood: mood, Rating: rating, MoodMatch: match, Title: "  nice  ", Body: "good"}
	require.NoError(t, repo.Create(context.Background(), rev))
	return rev
}

func TestMemoryRepositoryOneReviewPerUserAndVenue(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	rev := add(t, repo, "u1", "v1", "foodie", 4, true)
	assert.NotEmpty(t, rev.ID)
	assert.Equal(t, "nice", rev.Title)
	assert.False(t, rev.VisitDate.IsZero())

	err := repo.Create(ctx, &Review{UserID: "u1", VenueID: "v1", Mood: "club", Rating: 1, Body: "again"})
	assert.ErrorIs(t, err, ErrDuplicateReview)

	has, err := repo.HasReview(ctx, "u1", "v1")
	require.NoError(t, err)
	assert.True(t, has)

	has, err = repo.HasReview(ctx, "u1", "v2")
	require.NoError(t, err)
	assert.False(t, has)
}

func TestMemoryRepositoryUpdateAndDelete(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()
	rev := add(t, repo, "u1", "v1", "foodie", 4, true)

	rating := 2
	got, err := repo.Update(ctx, rev.ID, Update{Rating: &rating})
	require.NoError(t, err)
	assert.Equal(t, 2, got.Rating)
	assert.Equal(t, "good", got.Body, "untouched fields stay")

	_, err = repo.Update(ctx, "missing", Update{Rating: &rating})
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, repo.Delete(ctx, rev.ID))
	assert.ErrorIs(t, repo.Delete(ctx, rev.ID), ErrNotFound)
	_, err = repo.GetByID(ctx, rev.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryRepositoryListing(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	first := add(t, repo, "u1", "v1", "foodie", 4, true)
	second := add(t, repo, "u2", "v1", "romantic", 5, false)
	third := add(t, repo, "u3", "v1", "foodie", 3, false)
	add(t, repo, "u1", "v2", "club", 5, true)

	page, total, err := repo.ListByVenue(ctx, "v1", ListFilter{Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, page, 2)
	assert.Equal(t, third.ID, page[0].ID, "newest first")
	assert.Equal(t, second.ID, page[1].ID)

	page, total, err = repo.ListByVenue(ctx, "v1", ListFilter{Mood: "foodie", Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Equal(t, []string{third.ID, first.ID}, []string{page[0].ID, page[1].ID})

	page, _, err = repo.ListByVenue(ctx, "v1", ListFilter{Limit: 2, Offset: -2})
	require.NoError(t, err)
	assert.Len(t, page, 2)

	mine, err := repo.ListByUser(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, mine, 2)
	assert.Equal(t, "v2", mine[0].VenueID)
}

func TestMemoryRepositoryStatsAndSummary(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	count, avg, err := repo.RatingStats(ctx, "v1")
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Zero(t, avg)

	add(t, repo, "u1", "v1", "foodie", 4, true)
	add(t, repo, "u2", "v1", "foodie", 5, false)
	add(t, repo, "u3", "v1", "romantic", 5, true)

	count, avg, err = repo.RatingStats(ctx, "v1")
	require.NoError(t, err)
	assert.Equal(t, 3, count)
	assert.InDelta(t, 14.0/3.0, avg, 1e-9)

	summary, err := repo.MoodSummary(ctx, "v1")
	require.NoError(t, err)
	assert.Equal(t, []MoodSummary{
		{Mood: "foodie", Count: 2, AvgRating: 4.5, MoodMatchCount: 1},
		{Mood: "romantic", Count: 1, AvgRating: 5, MoodMatchCount: 1},
	}, summary)
}
