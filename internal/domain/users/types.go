package users

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrNotFound          = errors.New("resource not found")
	ErrDuplicateEmail    = errors.New("an account with this email already exists")
	ErrAlreadySaved      = errors.New("venue already saved")
	QueryTimeoutDuration = time.Second * 5
)

type User struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Password      password  `json:"-"`
	Avatar        string    `json:"avatar"`
	Bio           string    `json:"bio"`
	City          string    `json:"city"`
	SavedVenues   []string  `json:"savedVenues"`
	FavoriteMoods []string  `json:"favoriteMoods"`
	Age           *int      `json:"age,omitempty"`
	Gender        string    `json:"gender"`
	Preferences   []string  `json:"preferences"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Summary is the author projection attached to reviews.
type Summary struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

func (u *User) Summary() Summary {
	return Summary{ID: u.ID, Name: u.Name, Avatar: u.Avatar}
}

// HasSaved reports whether venueID is in the user's saved list.
func (u *User) HasSaved(venueID string) bool {
	for _, id := range u.SavedVenues {
		if id == venueID {
			return true
		}
	}
	return false
}

// ProfileUpdate carries the fields a user may change on their profile. Nil
// means "leave as is".
type ProfileUpdate struct {
	Name          *string
	Bio           *string
	City          *string
	Avatar        *string
	FavoriteMoods []string
}

func (p ProfileUpdate) Empty() bool {
	return p.Name == nil && p.Bio == nil && p.City == nil && p.Avatar == nil && p.FavoriteMoods == nil
}

func (p ProfileUpdate) apply(u *User) {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Bio != nil {
		u.Bio = *p.Bio
	}
	if p.City != nil {
		u.City = *p.City
	}
	if p.Avatar != nil {
		u.Avatar = *p.Avatar
	}
	if p.FavoriteMoods != nil {
		u.FavoriteMoods = append([]string{}, p.FavoriteMoods...)
	}
}

// NormalizeEmail lower-cases and trims an address the way it is stored.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Password struct to store plain text and hash
type password struct {
	text *string
	hash []byte
}

func (p *password) Set(text string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(text), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	p.text = &text
	p.hash = hash

	return nil
}

func (p *password) Compare(text string) error {
	return bcrypt.CompareHashAndPassword(p.hash, []byte(text))
}

type Store interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	ListByIDs(ctx context.Context, ids []string) ([]User, error)
	UpdateProfile(ctx context.Context, id string, update ProfileUpdate) (*User, error)
	UpdatePassword(ctx context.Context, user *User) error
	AddSavedVenue(ctx context.Context, userID, venueID string) ([]string, error)
	RemoveSavedVenue(ctx context.Context, userID, venueID string) ([]string, error)
}
