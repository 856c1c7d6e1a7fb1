package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"diljourney/internal/auth"
	"diljourney/internal/domain/storage"
	"diljourney/internal/domain/venues"
	"diljourney/internal/ratelimiter"
	"diljourney/internal/ratings"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestApplication(t *testing.T) *application {
	t.Helper()

	store := storage.NewMemoryContainer()
	return &application{
		config: config{
			env:         "test",
			clientURL:   "*",
			rateLimiter: ratelimiter.Config{Enabled: false},
			auth: authConfig{
				basic: basicConfig{user: "admin", pass: "secret"},
			},
		},
		store:         store,
		logger:        zap.NewNop().Sugar(),
		authenticator: auth.NewJWTAuthenticator("test-secret", "diljourney", "diljourney", time.Hour),
		ratings:       ratings.NewRecalculator(store.Reviews, store.Venues),
	}
}

// envelope is the union of the success and error bodies.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Status  int             `json:"status"`
	Errors  []string        `json:"errors"`
}

func doRequest(t *testing.T, h http.Handler, method, path string, body any, token string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	var env envelope
	if rr.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env), rr.Body.String())
	}
	return rr, env
}

func decodeData(t *testing.T, env envelope, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(env.Data, v), string(env.Data))
}

// registerUser signs up a user through the API and returns its token and id.
func registerUser(t *testing.T, h http.Handler, name, email string) (string, string) {
	t.Helper()

	rr, env := doRequest(t, h, http.MethodPost, "/api/auth/register", map[string]any{
		"name":     name,
		"email":    email,
		"password": "secret123",
	}, "")
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var resp struct {
		Token string `json:"token"`
		User  struct {
			ID string `json:"id"`
		} `json:"user"`
	}
	decodeData(t, env, &resp)
	require.NotEmpty(t, resp.Token)
	return resp.Token, resp.User.ID
}

func seedVenue(t *testing.T, app *application, name, city string, scores map[string]float64) *venues.Venue {
	t.Helper()

	v := &venues.Venue{
		Name:        name,
		Description: name + " description",
		Category:    "cafe",
		Address:     "1 Main St",
		City:        city,
		MoodScores:  scores,
		IsActive:    true,
	}
	for m := range scores {
		v.Moods = append(v.Moods, m)
	}
	require.NoError(t, app.store.Venues.Create(context.Background(), v))
	return v
}

func TestHealth(t *testing.T) {
	app := newTestApplication(t)
	h := app.mount()

	for _, path := range []string{"/", "/health"} {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))

		require.Equal(t, http.StatusOK, rr.Code)
		var body healthResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
		assert.True(t, body.Success)
		assert.Equal(t, "OK", body.Status)
		assert.Equal(t, storage.DriverMemory, body.Store)
	}
}

func TestUnknownRoute(t *testing.T) {
	app := newTestApplication(t)

	rr, env := doRequest(t, app.mount(), http.MethodGet, "/api/nope", nil, "")

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.False(t, env.Success)
	assert.Equal(t, "Route not found", env.Message)
}

func TestDebugVarsRequiresBasicAuth(t *testing.T) {
	app := newTestApplication(t)
	h := app.mount()

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/debug/vars", nil))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.NotEmpty(t, rr.Header().Get("WWW-Authenticate"))

	req := httptest.NewRequest(http.MethodGet, "/debug/vars", nil)
	req.SetBasicAuth("admin", "secret")
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestRateLimiterMiddleware(t *testing.T) {
	app := newTestApplication(t)
	app.config.rateLimiter = ratelimiter.Config{RequestsPerTimeFrame: 2, TimeFrame: time.Minute, Enabled: true}
	limiter := ratelimiter.NewFixedWindowLimiter(2, time.Minute)
	defer limiter.Stop()
	app.rateLimiter = limiter

	h := app.mount()
	for i := 0; i < 2; i++ {
		rr, _ := doRequest(t, h, http.MethodGet, "/health", nil, "")
		require.Equal(t, http.StatusOK, rr.Code)
	}

	rr, env := doRequest(t, h, http.MethodGet, "/health", nil, "")
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.False(t, env.Success)
	assert.NotEmpty(t, rr.Header().Get("Retry-After"))
}

func TestAuthTokenMiddleware(t *testing.T) {
	app := newTestApplication(t)
	h := app.mount()

	tests := []struct {
		name   string
		header string
		msg    string
	}{
		{"missing", "", "Not authorized. No token provided."},
		{"wrong scheme", "Token abc", "Not authorized. No token provided."},
		{"garbage", "Bearer not-a-jwt", "Not authorized. Token is invalid or expired."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)

			assert.Equal(t, http.StatusUnauthorized, rr.Code)
			var env envelope
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
			assert.Equal(t, tt.msg, env.Message)
		})
	}

	t.Run("user deleted", func(t *testing.T) {
		token, err := app.authenticator.GenerateToken("does-not-exist")
		require.NoError(t, err)

		rr, env := doRequest(t, h, http.MethodGet, "/api/auth/me", nil, token)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Equal(t, "Not authorized. User no longer exists.", env.Message)
	})
}
