package venues

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedMemory(t *testing.T) (*MemoryRepository, []*Venue) {
	t.Helper()
	repo := NewMemoryRepository()
	ctx := context.Background()

	in := []*Venue{
		{Name: "Spice Route", City: "Mumbai", Category: "restaurant", IsActive: true,
			Moods: []string{"foodie"}, MoodScores: map[string]float64{"foodie": 0.9}},
		{Name: "Lodhi Garden", City: "New Delhi", Category: "park", IsActive: true,
			Moods: []string{"nature", "lonely"}, MoodScores: map[string]float64{"nature": 0.95, "lonely": 0.8}},
		{Name: "Old Cafe", City: "Mumbai", Category: "cafe", IsActive: false,
			Moods: []string{"foodie"}, MoodScores: map[string]float64{"foodie": 1}},
	}
	for _, v := range in {
		require.NoError(t, repo.Create(ctx, v))
	}
	return repo, in
}

func TestMemoryRepositoryCreateDefaults(t *testing.T) {
	repo, in := seedMemory(t)

	got, err := repo.GetByID(context.Background(), in[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "$$", got.PriceRange)
	assert.Equal(t, "Point", got.Location.Type)
	assert.Equal(t, "warm", got.Ambiance.Lighting)
	assert.Zero(t, got.AverageRating)
	assert.Zero(t, got.TotalReviews)

	_, err = repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrVenueNotFound)
}

func TestMemoryRepositoryListPaginates(t *testing.T) {
	repo, in := seedMemory(t)
	ctx := context.Background()
	require.NoError(t, repo.SetRating(ctx, in[1].ID, 4.5, 2))

	vs, total, err := repo.List(ctx, Filter{Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, 2, total, "inactive venues are not counted")
	require.Len(t, vs, 1)
	assert.Equal(t, "Lodhi Garden", vs[0].Name)

	vs, _, err = repo.List(ctx, Filter{Limit: 1, Offset: 1})
	require.NoError(t, err)
	require.Len(t, vs, 1)
	assert.Equal(t, "Spice Route", vs[0].Name)

	vs, total, err = repo.List(ctx, Filter{Limit: 10, Offset: 20})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Empty(t, vs)

	vs, _, err = repo.List(ctx, Filter{Limit: 1, Offset: -50})
	require.NoError(t, err)
	require.Len(t, vs, 1)
	assert.Equal(t, "Lodhi Garden", vs[0].Name)
}

func TestMemoryRepositoryByMoodAndCities(t *testing.T) {
	repo, _ := seedMemory(t)
	ctx := context.Background()

	vs, err := repo.ByMood(ctx, "foodie", "", 12)
	require.NoError(t, err)
	assert.Equal(t, []string{"Spice Route"}, names(vs))

	vs, err = repo.ByMood(ctx, "nature", "mumbai", 12)
	require.NoError(t, err)
	assert.Empty(t, vs)

	cities, err := repo.Cities(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Mumbai", "New Delhi"}, cities)
}

func TestMemoryRepositoryImagesAndListByIDs(t *testing.T) {
	repo, in := seedMemory(t)
	ctx := context.Background()

	require.NoError(t, repo.AddImage(ctx, in[0].ID, "https://img/a.jpg"))
	require.NoError(t, repo.AddImage(ctx, in[0].ID, "https://img/b.jpg"))
	require.NoError(t, repo.RemoveImage(ctx, in[0].ID, "https://img/a.jpg"))

	got, err := repo.GetByID(ctx, in[0].ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://img/b.jpg"}, got.Images)

	assert.ErrorIs(t, repo.AddImage(ctx, "missing", "x"), ErrVenueNotFound)

	vs, err := repo.ListByIDs(ctx, []string{in[1].ID, in[2].ID, "missing", in[0].ID})
	require.NoError(t, err)
	assert.Equal(t, []string{"Lodhi Garden", "Spice Route"}, names(vs))

	n, err := repo.DeleteAll(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)
}
