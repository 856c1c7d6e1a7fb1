package main

import (
	"errors"
	"net/http"
	"strings"

	"diljourney/internal/domain/reviews"
	"diljourney/internal/domain/users"
	"diljourney/internal/domain/venues"

	"github.com/go-chi/chi/v5"
)

type UpdateProfilePayload struct {
	Name          *string  `json:"name" validate:"omitempty,min=1,max=50"`
	Bio           *string  `json:"bio" validate:"omitempty,max=200"`
	City          *string  `json:"city" validate:"omitempty,max=100"`
	Avatar        *string  `json:"avatar" validate:"omitempty,max=500"`
	FavoriteMoods []string `json:"favoriteMoods" validate:"omitempty,dive,favmood"`
}

// updateProfileHandler godoc
//
//	@Summary		Update profile
//	@Description	Partial update; omitted fields are left unchanged.
//	@Tags			profile
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		UpdateProfilePayload	true	"Profile fields"
//	@Success		200		{object}	users.User
//	@Failure		400		{object}	ErrorResponse
//	@Failure		401		{object}	ErrorResponse
//	@Failure		500		{object}	ErrorResponse
//	@Security		ApiKeyAuth
//	@Router			/profile/update [put]
func (app *application) updateProfileHandler(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)

	var payload UpdateProfilePayload
	if err := readJSON(w, r, &payload); err != nil {
		app.malformedJSONResponse(w, r, err)
		return
	}

	if payload.Name != nil {
		name := strings.TrimSpace(*payload.Name)
		payload.Name = &name
	}
	for i, m := range payload.FavoriteMoods {
		payload.FavoriteMoods[i] = strings.ToLower(strings.TrimSpace(m))
	}

	if err := Validate.Struct(payload); err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	update := users.ProfileUpdate{
		Name:          payload.Name,
		Bio:           payload.Bio,
		City:          payload.City,
		Avatar:        payload.Avatar,
		FavoriteMoods: payload.FavoriteMoods,
	}
	if update.Empty() {
		if err := app.jsonResponse(w, http.StatusOK, user); err != nil {
			app.internalServerError(w, r, err)
		}
		return
	}

	updated, err := app.store.Users.UpdateProfile(r.Context(), user.ID, update)
	if err != nil {
		switch {
		case errors.Is(err, users.ErrNotFound):
			app.notFoundResponse(w, r, "User not found.")
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, updated); err != nil {
		app.internalServerError(w, r, err)
	}
}

type ChangePasswordPayload struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// changePasswordHandler godoc
//
//	@Summary		Change password
//	@Tags			profile
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		ChangePasswordPayload	true	"Current and new password"
//	@Success		200		{object}	map[string]any
//	@Failure		400		{object}	ErrorResponse
//	@Failure		401		{object}	ErrorResponse
//	@Failure		500		{object}	ErrorResponse
//	@Security		ApiKeyAuth
//	@Router			/profile/change-password [put]
func (app *application) changePasswordHandler(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)

	var payload ChangePasswordPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.malformedJSONResponse(w, r, err)
		return
	}

	if payload.CurrentPassword == "" || payload.NewPassword == "" {
		app.badRequestResponse(w, r, errors.New("Please provide both current and new password."))
		return
	}
	if len(payload.NewPassword) < 6 {
		app.badRequestResponse(w, r, errors.New("New password must be at least 6 characters."))
		return
	}
	if len(payload.NewPassword) > 72 {
		app.badRequestResponse(w, r, errors.New("New password must be at most 72 characters."))
		return
	}

	if err := user.Password.Compare(payload.CurrentPassword); err != nil {
		app.unauthorizedErrorResponse(w, r, "Current password is incorrect.", err)
		return
	}

	if err := user.Password.Set(payload.NewPassword); err != nil {
		app.internalServerError(w, r, err)
		return
	}
	if err := app.store.Users.UpdatePassword(r.Context(), user); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	app.messageResponse(w, http.StatusOK, "Password updated successfully.")
}

type SavedVenuesResponse struct {
	Count       int              `json:"count"`
	SavedVenues []venues.Summary `json:"savedVenues"`
}

// savedVenuesHandler godoc
//
//	@Summary		Saved venues
//	@Description	Active saved venues in the order they were saved.
//	@Tags			profile
//	@Produce		json
//	@Success		200	{object}	SavedVenuesResponse
//	@Failure		401	{object}	ErrorResponse
//	@Failure		500	{object}	ErrorResponse
//	@Security		ApiKeyAuth
//	@Router			/profile/saved-venues [get]
func (app *application) savedVenuesHandler(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)

	saved, err := app.savedVenueSummaries(r, user)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	resp := SavedVenuesResponse{Count: len(saved), SavedVenues: saved}
	if err := app.jsonResponse(w, http.StatusOK, resp); err != nil {
		app.internalServerError(w, r, err)
	}
}

type SavedIDsResponse struct {
	Message     string   `json:"message"`
	SavedVenues []string `json:"savedVenues"`
}

// saveVenueHandler godoc
//
//	@Summary		Save a venue
//	@Tags			profile
//	@Produce		json
//	@Param			venueID	path		string	true	"Venue ID"
//	@Success		200		{object}	SavedIDsResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		500		{object}	ErrorResponse
//	@Security		ApiKeyAuth
//	@Router			/profile/save-venue/{venueID} [post]
func (app *application) saveVenueHandler(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)

	venue, ok := app.activeVenue(w, r, chi.URLParam(r, "venueID"))
	if !ok {
		return
	}

	ids, err := app.store.Users.AddSavedVenue(r.Context(), user.ID, venue.ID)
	if err != nil {
		switch {
		case errors.Is(err, users.ErrAlreadySaved):
			app.badRequestResponse(w, r, errors.New("Venue already saved."))
		case errors.Is(err, users.ErrNotFound):
			app.notFoundResponse(w, r, "User not found.")
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	resp := SavedIDsResponse{Message: "Venue saved successfully.", SavedVenues: ids}
	if err := app.jsonResponse(w, http.StatusOK, resp); err != nil {
		app.internalServerError(w, r, err)
	}
}

// removeSavedVenueHandler godoc
//
//	@Summary		Unsave a venue
//	@Description	Idempotent; returns the remaining saved ids.
//	@Tags			profile
//	@Produce		json
//	@Param			venueID	path		string	true	"Venue ID"
//	@Success		200		{object}	SavedIDsResponse
//	@Failure		401		{object}	ErrorResponse
//	@Failure		500		{object}	ErrorResponse
//	@Security		ApiKeyAuth
//	@Router			/profile/save-venue/{venueID} [delete]
func (app *application) removeSavedVenueHandler(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)

	ids, err := app.store.Users.RemoveSavedVenue(r.Context(), user.ID, chi.URLParam(r, "venueID"))
	if err != nil {
		switch {
		case errors.Is(err, users.ErrNotFound):
			app.notFoundResponse(w, r, "User not found.")
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	resp := SavedIDsResponse{Message: "Venue removed from saved.", SavedVenues: ids}
	if err := app.jsonResponse(w, http.StatusOK, resp); err != nil {
		app.internalServerError(w, r, err)
	}
}

// UserReview is a review with the reviewed venue attached.
type UserReview struct {
	reviews.Review
	Venue *venues.Summary `json:"venue"`
}

type MyReviewsResponse struct {
	Count   int          `json:"count"`
	Reviews []UserReview `json:"reviews"`
}

// myReviewsHandler godoc
//
//	@Summary		My reviews
//	@Description	The caller's reviews, newest first, with venue name, category and city.
//	@Tags			profile
//	@Produce		json
//	@Success		200	{object}	MyReviewsResponse
//	@Failure		401	{object}	ErrorResponse
//	@Failure		500	{object}	ErrorResponse
//	@Security		ApiKeyAuth
//	@Router			/profile/my-reviews [get]
func (app *application) myReviewsHandler(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)
	ctx := r.Context()

	rs, err := app.store.Reviews.ListByUser(ctx, user.ID)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	ids := make([]string, 0, len(rs))
	for _, rv := range rs {
		ids = append(ids, rv.VenueID)
	}
	vs, err := app.store.Venues.ListByIDs(ctx, ids)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}
	byID := make(map[string]venues.Summary, len(vs))
	for i := range vs {
		byID[vs[i].ID] = vs[i].Summary()
	}

	out := make([]UserReview, 0, len(rs))
	for _, rv := range rs {
		ur := UserReview{Review: rv}
		if s, ok := byID[rv.VenueID]; ok {
			ur.Venue = &s
		}
		out = append(out, ur)
	}

	if err := app.jsonResponse(w, http.StatusOK, MyReviewsResponse{Count: len(out), Reviews: out}); err != nil {
		app.internalServerError(w, r, err)
	}
}
