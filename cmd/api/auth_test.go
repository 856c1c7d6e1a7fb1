package main

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	app := newTestApplication(t)
	h := app.mount()

	rr, env := doRequest(t, h, http.MethodPost, "/api/auth/register", map[string]any{
		"name":        "  Asha  ",
		"email":       "Asha@Example.com ",
		"password":    "secret123",
		"primaryMood": "Foodie",
	}, "")
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	assert.True(t, env.Success)

	var reg struct {
		Token string `json:"token"`
		User  struct {
			ID            string   `json:"id"`
			Name          string   `json:"name"`
			Email         string   `json:"email"`
			Password      any      `json:"password"`
			FavoriteMoods []string `json:"favoriteMoods"`
		} `json:"user"`
	}
	decodeData(t, env, &reg)
	assert.NotEmpty(t, reg.Token)
	assert.Equal(t, "Asha", reg.User.Name)
	assert.Equal(t, "asha@example.com", reg.User.Email)
	assert.Nil(t, reg.User.Password)
	assert.Equal(t, []string{"foodie"}, reg.User.FavoriteMoods)

	t.Run("duplicate email", func(t *testing.T) {
		rr, env := doRequest(t, h, http.MethodPost, "/api/auth/register", map[string]any{
			"name":     "Other",
			"email":    "asha@example.com",
			"password": "secret123",
		}, "")
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "An account with this email already exists.", env.Message)
	})

	t.Run("login", func(t *testing.T) {
		rr, env := doRequest(t, h, http.MethodPost, "/api/auth/login", map[string]any{
			"email":    "ASHA@example.com",
			"password": "secret123",
		}, "")
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

		var resp AuthResponse
		decodeData(t, env, &resp)
		assert.NotEmpty(t, resp.Token)
		assert.Equal(t, reg.User.ID, resp.User.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		rr, env := doRequest(t, h, http.MethodPost, "/api/auth/login", map[string]any{
			"email":    "asha@example.com",
			"password": "nope-nope",
		}, "")
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Equal(t, "Invalid email or password.", env.Message)
	})

	t.Run("unknown email", func(t *testing.T) {
		rr, env := doRequest(t, h, http.MethodPost, "/api/auth/login", map[string]any{
			"email":    "ghost@example.com",
			"password": "secret123",
		}, "")
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Equal(t, "Invalid email or password.", env.Message)
	})

	t.Run("me", func(t *testing.T) {
		rr, env := doRequest(t, h, http.MethodGet, "/api/auth/me", nil, reg.Token)
		require.Equal(t, http.StatusOK, rr.Code)

		var me struct {
			ID          string `json:"id"`
			Email       string `json:"email"`
			SavedVenues []any  `json:"savedVenues"`
		}
		decodeData(t, env, &me)
		assert.Equal(t, reg.User.ID, me.ID)
		assert.Equal(t, "asha@example.com", me.Email)
		assert.Empty(t, me.SavedVenues)
	})

	t.Run("logout", func(t *testing.T) {
		rr, env := doRequest(t, h, http.MethodPost, "/api/auth/logout", nil, reg.Token)
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "Logged out successfully.", env.Message)
	})
}

func TestRegisterValidation(t *testing.T) {
	app := newTestApplication(t)
	h := app.mount()

	tests := []struct {
		name    string
		payload map[string]any
		want    string
	}{
		{
			name:    "missing name",
			payload: map[string]any{"email": "a@b.co", "password": "secret123"},
			want:    "name is required",
		},
		{
			name:    "bad email",
			payload: map[string]any{"name": "A", "email": "nope", "password": "secret123"},
			want:    "Please enter a valid email",
		},
		{
			name:    "short password",
			payload: map[string]any{"name": "A", "email": "a@b.co", "password": "123"},
			want:    "password must be at least 6 characters",
		},
		{
			name:    "too young",
			payload: map[string]any{"name": "A", "email": "a@b.co", "password": "secret123", "age": 12},
			want:    "age must be at least 13",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr, env := doRequest(t, h, http.MethodPost, "/api/auth/register", tt.payload, "")
			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.False(t, env.Success)
			assert.Contains(t, env.Errors, tt.want)
		})
	}

	t.Run("unknown field", func(t *testing.T) {
		rr, env := doRequest(t, h, http.MethodPost, "/api/auth/register", map[string]any{
			"name": "A", "email": "a@b.co", "password": "secret123", "role": "admin",
		}, "")
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "invalid request body", env.Message)
		assert.Equal(t, []string{`unknown field "role"`}, env.Errors)
	})

	t.Run("empty body", func(t *testing.T) {
		rr, env := doRequest(t, h, http.MethodPost, "/api/auth/register", nil, "")
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, []string{"request body must not be empty"}, env.Errors)
	})
}
