package main

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"diljourney/internal/domain/moods"
	"diljourney/internal/domain/reviews"
	"diljourney/internal/domain/users"
	"diljourney/internal/params"
	"diljourney/internal/ratings"

	"github.com/go-chi/chi/v5"
)

const (
	msgReviewNotFound  = "Review not found."
	msgAlreadyReviewed = "You have already reviewed this venue. You can edit your existing review."
)

// VenueReview is a review with its author attached.
type VenueReview struct {
	reviews.Review
	User *users.Summary `json:"user"`
}

type ReviewListResponse struct {
	Count       int           `json:"count"`
	Total       int           `json:"total"`
	Pages       int           `json:"pages"`
	CurrentPage int           `json:"currentPage"`
	Reviews     []VenueReview `json:"reviews"`
}

// listVenueReviewsHandler godoc
//
//	@Summary		Reviews for a venue
//	@Description	Newest first, with author name and avatar.
//	@Tags			reviews
//	@Produce		json
//	@Param			venueID	path		string	true	"Venue ID"
//	@Param			mood	query		string	false	"Review mood"
//	@Param			page	query		int		false	"Page (default 1)"
//	@Param			limit	query		int		false	"Page size (default 10, max 50)"
//	@Success		200		{object}	ReviewListResponse
//	@Failure		500		{object}	ErrorResponse
//	@Router			/reviews/venue/{venueID} [get]
func (app *application) listVenueReviewsHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()
	p := params.ParsePagination(q)

	filter := reviews.ListFilter{
		Mood:   moods.Normalize(q.Get("mood")),
		Limit:  p.Limit,
		Offset: p.Offset,
	}

	rs, total, err := app.store.Reviews.ListByVenue(ctx, chi.URLParam(r, "venueID"), filter)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}
	p.ComputeMeta(total)

	authors, err := app.authorSummaries(ctx, rs)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	out := make([]VenueReview, 0, len(rs))
	for _, rv := range rs {
		vr := VenueReview{Review: rv}
		if a, ok := authors[rv.UserID]; ok {
			vr.User = &a
		}
		out = append(out, vr)
	}

	resp := ReviewListResponse{
		Count:       len(out),
		Total:       p.Total,
		Pages:       p.Pages,
		CurrentPage: p.Page,
		Reviews:     out,
	}
	if err := app.jsonResponse(w, http.StatusOK, resp); err != nil {
		app.internalServerError(w, r, err)
	}
}

func (app *application) authorSummaries(ctx context.Context, rs []reviews.Review) (map[string]users.Summary, error) {
	seen := make(map[string]bool, len(rs))
	ids := make([]string, 0, len(rs))
	for _, rv := range rs {
		if !seen[rv.UserID] {
			seen[rv.UserID] = true
			ids = append(ids, rv.UserID)
		}
	}

	us, err := app.store.Users.ListByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make(map[string]users.Summary, len(us))
	for i := range us {
		out[us[i].ID] = us[i].Summary()
	}
	return out, nil
}

// venueReviewSummaryHandler godoc
//
//	@Summary		Mood breakdown for a venue
//	@Description	Review count, average rating and mood-match count per mood, most reviewed first.
//	@Tags			reviews
//	@Produce		json
//	@Param			venueID	path		string	true	"Venue ID"
//	@Success		200		{array}		reviews.MoodSummary
//	@Failure		500		{object}	ErrorResponse
//	@Router			/reviews/venue/{venueID}/summary [get]
func (app *application) venueReviewSummaryHandler(w http.ResponseWriter, r *http.Request) {
	summary, err := app.store.Reviews.MoodSummary(r.Context(), chi.URLParam(r, "venueID"))
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	for i := range summary {
		summary[i].AvgRating = ratings.Round(summary[i].AvgRating)
	}

	if err := app.jsonResponse(w, http.StatusOK, summary); err != nil {
		app.internalServerError(w, r, err)
	}
}

type CreateReviewPayload struct {
	Mood      string     `json:"mood" validate:"required,mood"`
	Rating    int        `json:"rating" validate:"required,min=1,max=5"`
	MoodMatch *bool      `json:"moodMatch" validate:"required"`
	Title     string     `json:"title" validate:"max=100"`
	Body      string     `json:"body" validate:"required,max=1000"`
	VisitDate *time.Time `json:"visitDate"`
}

// createReviewHandler godoc
//
//	@Summary		Review a venue
//	@Description	One review per user and venue. The venue rating is recalculated afterwards.
//	@Tags			reviews
//	@Accept			json
//	@Produce		json
//	@Param			venueID	path		string				true	"Venue ID"
//	@Param			payload	body		CreateReviewPayload	true	"Review"
//	@Success		201		{object}	reviews.Review
//	@Failure		400		{object}	ErrorResponse
//	@Failure		401		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		500		{object}	ErrorResponse
//	@Security		ApiKeyAuth
//	@Router			/reviews/venue/{venueID} [post]
func (app *application) createReviewHandler(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)
	ctx := r.Context()

	var payload CreateReviewPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.malformedJSONResponse(w, r, err)
		return
	}

	payload.Mood = moods.Normalize(payload.Mood)
	payload.Body = strings.TrimSpace(payload.Body)
	if err := Validate.Struct(payload); err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	venue, ok := app.activeVenue(w, r, chi.URLParam(r, "venueID"))
	if !ok {
		return
	}

	exists, err := app.store.Reviews.HasReview(ctx, user.ID, venue.ID)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}
	if exists {
		app.badRequestResponse(w, r, errors.New(msgAlreadyReviewed))
		return
	}

	review := &reviews.Review{
		UserID:    user.ID,
		VenueID:   venue.ID,
		Mood:      payload.Mood,
		Rating:    payload.Rating,
		MoodMatch: *payload.MoodMatch,
		Title:     payload.Title,
		Body:      payload.Body,
	}
	if payload.VisitDate != nil {
		review.VisitDate = *payload.VisitDate
	}

	if err := app.store.Reviews.Create(ctx, review); err != nil {
		if errors.Is(err, reviews.ErrDuplicateReview) {
			app.badRequestResponse(w, r, errors.New(msgAlreadyReviewed))
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	app.recalculateRating(ctx, venue.ID)

	if err := app.jsonResponse(w, http.StatusCreated, review); err != nil {
		app.internalServerError(w, r, err)
	}
}

type UpdateReviewPayload struct {
	Rating    *int    `json:"rating" validate:"omitempty,min=1,max=5"`
	MoodMatch *bool   `json:"moodMatch"`
	Title     *string `json:"title" validate:"omitempty,max=100"`
	Body      *string `json:"body" validate:"omitempty,min=1,max=1000"`
}

// updateReviewHandler godoc
//
//	@Summary		Edit a review
//	@Description	Only the author may edit. The venue rating is recalculated afterwards.
//	@Tags			reviews
//	@Accept			json
//	@Produce		json
//	@Param			reviewID	path		string				true	"Review ID"
//	@Param			payload		body		UpdateReviewPayload	true	"Fields to change"
//	@Success		200			{object}	reviews.Review
//	@Failure		400			{object}	ErrorResponse
//	@Failure		403			{object}	ErrorResponse
//	@Failure		404			{object}	ErrorResponse
//	@Failure		500			{object}	ErrorResponse
//	@Security		ApiKeyAuth
//	@Router			/reviews/{reviewID} [put]
func (app *application) updateReviewHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	review, ok := app.ownReview(w, r, "Not authorized to edit this review.")
	if !ok {
		return
	}

	var payload UpdateReviewPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.malformedJSONResponse(w, r, err)
		return
	}
	if payload.Body != nil {
		body := strings.TrimSpace(*payload.Body)
		payload.Body = &body
	}
	if err := Validate.Struct(payload); err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	updated, err := app.store.Reviews.Update(ctx, review.ID, reviews.Update{
		Rating:    payload.Rating,
		MoodMatch: payload.MoodMatch,
		Title:     payload.Title,
		Body:      payload.Body,
	})
	if err != nil {
		if errors.Is(err, reviews.ErrNotFound) {
			app.notFoundResponse(w, r, msgReviewNotFound)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	app.recalculateRating(ctx, updated.VenueID)

	if err := app.jsonResponse(w, http.StatusOK, updated); err != nil {
		app.internalServerError(w, r, err)
	}
}

// deleteReviewHandler godoc
//
//	@Summary		Delete a review
//	@Description	Only the author may delete. The venue rating is recalculated afterwards.
//	@Tags			reviews
//	@Produce		json
//	@Param			reviewID	path		string	true	"Review ID"
//	@Success		200			{object}	map[string]any
//	@Failure		403			{object}	ErrorResponse
//	@Failure		404			{object}	ErrorResponse
//	@Failure		500			{object}	ErrorResponse
//	@Security		ApiKeyAuth
//	@Router			/reviews/{reviewID} [delete]
func (app *application) deleteReviewHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	review, ok := app.ownReview(w, r, "Not authorized to delete this review.")
	if !ok {
		return
	}

	if err := app.store.Reviews.Delete(ctx, review.ID); err != nil {
		if errors.Is(err, reviews.ErrNotFound) {
			app.notFoundResponse(w, r, msgReviewNotFound)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	app.recalculateRating(ctx, review.VenueID)

	app.messageResponse(w, http.StatusOK, "Review deleted successfully.")
}

// ownReview loads the review named in the path and checks the caller wrote
// it, writing the 404/403 itself otherwise.
func (app *application) ownReview(w http.ResponseWriter, r *http.Request, forbidden string) (*reviews.Review, bool) {
	user := getUserFromContext(r)

	review, err := app.store.Reviews.GetByID(r.Context(), chi.URLParam(r, "reviewID"))
	if err != nil {
		if errors.Is(err, reviews.ErrNotFound) {
			app.notFoundResponse(w, r, msgReviewNotFound)
			return nil, false
		}
		app.internalServerError(w, r, err)
		return nil, false
	}

	if review.UserID != user.ID {
		app.forbiddenResponse(w, r, forbidden)
		return nil, false
	}
	return review, true
}

// recalculateRating refreshes the venue aggregate after a review change. A
// failure is logged and never fails the request that triggered it.
func (app *application) recalculateRating(ctx context.Context, venueID string) {
	avg, total, err := app.ratings.Recalculate(ctx, venueID)
	if err != nil {
		app.logger.Errorw("rating recalculation failed", "venueID", venueID, "error", err)
		return
	}
	app.logger.Debugw("venue rating updated", "venueID", venueID, "averageRating", avg, "totalReviews", total)
}
