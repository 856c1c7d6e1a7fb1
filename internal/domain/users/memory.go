package users

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryRepository keeps users in process memory. It backs local runs without
// a database and the handler tests.
type MemoryRepository struct {
	mu    sync.RWMutex
	users map[string]*User
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{users: make(map[string]*User)}
}

func (r *MemoryRepository) Create(_ context.Context, user *User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	email := NormalizeEmail(user.Email)
	for _, u := range r.users {
		if u.Email == email {
			return ErrDuplicateEmail
		}
	}

	now := time.Now().UTC()
	user.ID = uuid.NewString()
	user.Name = strings.TrimSpace(user.Name)
	user.Email = email
	user.SavedVenues = []string{}
	user.FavoriteMoods = nonNil(user.FavoriteMoods)
	user.Preferences = nonNil(user.Preferences)
	user.CreatedAt = now
	user.UpdatedAt = now

	r.users[user.ID] = clone(user)
	return nil
}

func (r *MemoryRepository) GetByID(_ context.Context, id string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return clone(u), nil
}

func (r *MemoryRepository) GetByEmail(_ context.Context, email string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	email = NormalizeEmail(email)
	for _, u := range r.users {
		if u.Email == email {
			return clone(u), nil
		}
	}
	return nil, ErrNotFound
}

func (r *MemoryRepository) ListByIDs(_ context.Context, ids []string) ([]User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []User{}
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			out = append(out, *clone(u))
		}
	}
	return out, nil
}

func (r *MemoryRepository) UpdateProfile(_ context.Context, id string, update ProfileUpdate) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		update.Name = &name
	}
	update.apply(u)
	u.UpdatedAt = time.Now().UTC()
	return clone(u), nil
}

func (r *MemoryRepository) UpdatePassword(_ context.Context, user *User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[user.ID]
	if !ok {
		return ErrNotFound
	}
	u.Password.hash = append([]byte{}, user.Password.hash...)
	u.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *MemoryRepository) AddSavedVenue(_ context.Context, userID, venueID string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[userID]
	if !ok {
		return nil, ErrNotFound
	}
	if u.HasSaved(venueID) {
		return nil, ErrAlreadySaved
	}
	u.SavedVenues = append(u.SavedVenues, venueID)
	u.UpdatedAt = time.Now().UTC()
	return append([]string{}, u.SavedVenues...), nil
}

func (r *MemoryRepository) RemoveSavedVenue(_ context.Context, userID, venueID string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[userID]
	if !ok {
		return nil, ErrNotFound
	}
	kept := make([]string, 0, len(u.SavedVenues))
	for _, id := range u.SavedVenues {
		if id != venueID {
			kept = append(kept, id)
		}
	}
	u.SavedVenues = kept
	u.UpdatedAt = time.Now().UTC()
	return append([]string{}, kept...), nil
}

func clone(u *User) *User {
	c := *u
	c.SavedVenues = append([]string{}, u.SavedVenues...)
	c.FavoriteMoods = append([]string{}, u.FavoriteMoods...)
	c.Preferences = append([]string{}, u.Preferences...)
	c.Password.hash = append([]byte{}, u.Password.hash...)
	if u.Age != nil {
		age := *u.Age
		c.Age = &age
	}
	return &c
}
