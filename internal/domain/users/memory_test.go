package users

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestUser(t *testing.T, email string) *User {
	t.Helper()
	u := &User{Name: "  Asha  ", Email: email}
	require.NoError(t, u.Password.Set("secret123"))
	return u
}

func TestMemoryRepositoryCreateNormalizes(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	u := newTestUser(t, " Asha@Example.COM ")
	require.NoError(t, repo.Create(ctx, u))

	assert.NotEmpty(t, u.ID)
	assert.Equal(t, "Asha", u.Name)
	assert.Equal(t, "asha@example.com", u.Email)
	assert.Empty(t, u.SavedVenues)

	got, err := repo.GetByEmail(ctx, "ASHA@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.NoError(t, got.Password.Compare("secret123"))
	assert.Error(t, got.Password.Compare("wrong"))
}

func TestMemoryRepositoryDuplicateEmail(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newTestUser(t, "dup@example.com")))
	err := repo.Create(ctx, newTestUser(t, "DUP@example.com"))
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestMemoryRepositorySavedVenues(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	u := newTestUser(t, "saver@example.com")
	require.NoError(t, repo.Create(ctx, u))

	saved, err := repo.AddSavedVenue(ctx, u.ID, "v1")
	require.NoError(t, err)
	assert.Equal(t, []string{"v1"}, saved)

	_, err = repo.AddSavedVenue(ctx, u.ID, "v1")
	assert.ErrorIs(t, err, ErrAlreadySaved)

	saved, err = repo.AddSavedVenue(ctx, u.ID, "v2")
	require.NoError(t, err)
	assert.Equal(t, []string{"v1", "v2"}, saved)

	saved, err = repo.RemoveSavedVenue(ctx, u.ID, "v1")
	require.NoError(t, err)
	assert.Equal(t, []string{"v2"}, saved)

	// removing something that is not saved is not an error
	saved, err = repo.RemoveSavedVenue(ctx, u.ID, "nope")
	require.NoError(t, err)
	assert.Equal(t, []string{"v2"}, saved)

	_, err = repo.AddSavedVenue(ctx, "ghost", "v1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryRepositoryUpdateProfile(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	u := newTestUser(t, "profile@example.com")
	require.NoError(t, repo.Create(ctx, u))

	bio := "coffee and long walks"
	got, err := repo.UpdateProfile(ctx, u.ID, ProfileUpdate{Bio: &bio, FavoriteMoods: []string{"chill"}})
	require.NoError(t, err)
	assert.Equal(t, "Asha", got.Name, "unset fields stay")
	assert.Equal(t, bio, got.Bio)
	assert.Equal(t, []string{"chill"}, got.FavoriteMoods)

	_, err = repo.UpdateProfile(ctx, "ghost", ProfileUpdate{Bio: &bio})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryRepositoryReturnsCopies(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	u := newTestUser(t, "copy@example.com")
	require.NoError(t, repo.Create(ctx, u))

	got, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	got.SavedVenues = append(got.SavedVenues, "leak")

	again, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Empty(t, again.SavedVenues)
}
