package main

import (
	"errors"
	"net/http"
	"strings"

	"diljourney/internal/domain/users"
	"diljourney/internal/domain/venues"
	"diljourney/internal/mailer"
)

// ErrorResponse is the failure envelope shared by every endpoint.
//
//	@name			ErrorResponse
//	@description	Standard error response returned by all API endpoints
type ErrorResponse struct {
	Success bool     `json:"success" example:"false"`
	Message string   `json:"message" example:"Venue not found."`
	Status  int      `json:"status" example:"404"`
	Errors  []string `json:"errors,omitempty"`
}

type RegisterUserPayload struct {
	Name        string   `json:"name" validate:"required,max=50"`
	Email       string   `json:"email" validate:"required,email,max=255"`
	Password    string   `json:"password" validate:"required,min=6,max=72"`
	Age         *int     `json:"age" validate:"omitempty,min=13,max=120"`
	Gender      string   `json:"gender" validate:"omitempty,oneof=male female non-binary other prefer-not-to-say"`
	PrimaryMood string   `json:"primaryMood" validate:"omitempty,favmood"`
	Preferences []string `json:"preferences" validate:"omitempty,dive,oneof=music quotes videos activities"`
}

type LoginPayload struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,max=72"`
}

type AuthResponse struct {
	Token string      `json:"token"`
	User  *users.User `json:"user"`
}

// registerUserHandler godoc
//
//	@Summary		Registers a user
//	@Description	Creates an account and returns a bearer token. A welcome email is sent when mail is configured.
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		RegisterUserPayload	true	"Account details"
//	@Success		201		{object}	AuthResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		500		{object}	ErrorResponse
//	@Router			/auth/register [post]
func (app *application) registerUserHandler(w http.ResponseWriter, r *http.Request) {
	var payload RegisterUserPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.malformedJSONResponse(w, r, err)
		return
	}

	payload.Name = strings.TrimSpace(payload.Name)
	payload.Email = users.NormalizeEmail(payload.Email)
	payload.PrimaryMood = strings.ToLower(strings.TrimSpace(payload.PrimaryMood))

	if err := Validate.Struct(payload); err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	user := &users.User{
		Name:        payload.Name,
		Email:       payload.Email,
		Age:         payload.Age,
		Gender:      payload.Gender,
		Preferences: payload.Preferences,
	}
	if payload.PrimaryMood != "" {
		user.FavoriteMoods = []string{payload.PrimaryMood}
	}
	if err := user.Password.Set(payload.Password); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.store.Users.Create(r.Context(), user); err != nil {
		if errors.Is(err, users.ErrDuplicateEmail) {
			app.badRequestResponse(w, r, errors.New("An account with this email already exists."))
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	token, err := app.authenticator.GenerateToken(user.ID)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	app.sendWelcomeEmail(user, payload.PrimaryMood)

	if err := app.jsonResponse(w, http.StatusCreated, AuthResponse{Token: token, User: user}); err != nil {
		app.internalServerError(w, r, err)
	}
}

// sendWelcomeEmail queues the welcome mail. Delivery problems never fail the
// registration.
func (app *application) sendWelcomeEmail(user *users.User, mood string) {
	if app.mailer == nil {
		return
	}

	vars := struct {
		Username   string
		Mood       string
		ExploreURL string
	}{
		Username:   user.Name,
		Mood:       mood,
		ExploreURL: app.config.clientURL,
	}

	app.background(func() {
		status, err := app.mailer.Send(mailer.UserWelcomeTemplate, user.Name, user.Email, vars)
		if err != nil {
			app.logger.Errorw("error sending welcome email", "email", user.Email, "error", err)
			return
		}
		app.logger.Infow("welcome email sent", "status code", status)
	})
}

// loginHandler godoc
//
//	@Summary		Logs a user in
//	@Description	Exchanges email and password for a bearer token.
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		LoginPayload	true	"Credentials"
//	@Success		200		{object}	AuthResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		401		{object}	ErrorResponse
//	@Failure		500		{object}	ErrorResponse
//	@Router			/auth/login [post]
func (app *application) loginHandler(w http.ResponseWriter, r *http.Request) {
	var payload LoginPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.malformedJSONResponse(w, r, err)
		return
	}

	payload.Email = users.NormalizeEmail(payload.Email)
	if err := Validate.Struct(payload); err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	const invalid = "Invalid email or password."

	user, err := app.store.Users.GetByEmail(r.Context(), payload.Email)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			app.unauthorizedErrorResponse(w, r, invalid, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	if err := user.Password.Compare(payload.Password); err != nil {
		app.unauthorizedErrorResponse(w, r, invalid, err)
		return
	}

	token, err := app.authenticator.GenerateToken(user.ID)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, AuthResponse{Token: token, User: user}); err != nil {
		app.internalServerError(w, r, err)
	}
}

// MeResponse is the current user with saved venues expanded.
type MeResponse struct {
	*users.User
	SavedVenues []venues.Summary `json:"savedVenues"`
}

// getMeHandler godoc
//
//	@Summary		Current user
//	@Description	Returns the authenticated user with saved venues expanded.
//	@Tags			auth
//	@Produce		json
//	@Success		200	{object}	MeResponse
//	@Failure		401	{object}	ErrorResponse
//	@Failure		500	{object}	ErrorResponse
//	@Security		ApiKeyAuth
//	@Router			/auth/me [get]
func (app *application) getMeHandler(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)

	saved, err := app.savedVenueSummaries(r, user)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, MeResponse{User: user, SavedVenues: saved}); err != nil {
		app.internalServerError(w, r, err)
	}
}

// logoutHandler godoc
//
//	@Summary		Logs out
//	@Description	Tokens are stateless; the client discards its copy.
//	@Tags			auth
//	@Produce		json
//	@Success		200	{object}	map[string]any
//	@Failure		401	{object}	ErrorResponse
//	@Security		ApiKeyAuth
//	@Router			/auth/logout [post]
func (app *application) logoutHandler(w http.ResponseWriter, r *http.Request) {
	app.messageResponse(w, http.StatusOK, "Logged out successfully.")
}

func (app *application) savedVenueSummaries(r *http.Request, user *users.User) ([]venues.Summary, error) {
	vs, err := app.store.Venues.ListByIDs(r.Context(), user.SavedVenues)
	if err != nil {
		return nil, err
	}
	out := make([]venues.Summary, 0, len(vs))
	for i := range vs {
		if vs[i].IsActive {
			out = append(out, vs[i].Summary())
		}
	}
	return out, nil
}
