package main

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"diljourney/internal/domain/moods"
	"diljourney/internal/domain/venues"
	"diljourney/internal/params"

	"github.com/go-chi/chi/v5"
)

const defaultMoodLimit = 12

const msgVenueNotFound = "Venue not found."

type VenueListResponse struct {
	Count       int            `json:"count"`
	Total       int            `json:"total"`
	Pages       int            `json:"pages"`
	CurrentPage int            `json:"currentPage"`
	Venues      []venues.Venue `json:"venues"`
}

// listVenuesHandler godoc
//
//	@Summary		List venues
//	@Description	Active venues, highest rated first, with optional filters.
//	@Tags			venues
//	@Produce		json
//	@Param			mood		query		string	false	"Venue mood"
//	@Param			city		query		string	false	"City (case-insensitive, partial)"
//	@Param			category	query		string	false	"Category"
//	@Param			priceRange	query		string	false	"$, $$, $$$ or $$$$"
//	@Param			page		query		int		false	"Page (default 1)"
//	@Param			limit		query		int		false	"Page size (default 10, max 50)"
//	@Success		200			{object}	VenueListResponse
//	@Failure		500			{object}	ErrorResponse
//	@Router			/venues [get]
func (app *application) listVenuesHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	p := params.ParsePagination(q)

	filter := venues.Filter{
		Mood:       moods.Normalize(q.Get("mood")),
		City:       strings.TrimSpace(q.Get("city")),
		Category:   strings.TrimSpace(q.Get("category")),
		PriceRange: strings.TrimSpace(q.Get("priceRange")),
		Limit:      p.Limit,
		Offset:     p.Offset,
	}

	vs, total, err := app.store.Venues.List(r.Context(), filter)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}
	p.ComputeMeta(total)

	resp := VenueListResponse{
		Count:       len(vs),
		Total:       p.Total,
		Pages:       p.Pages,
		CurrentPage: p.Page,
		Venues:      vs,
	}
	if err := app.jsonResponse(w, http.StatusOK, resp); err != nil {
		app.internalServerError(w, r, err)
	}
}

type MoodVenuesResponse struct {
	Mood   string         `json:"mood"`
	Guide  moods.Guide    `json:"guide"`
	Count  int            `json:"count"`
	Venues []venues.Venue `json:"venues"`
}

// venuesByMoodHandler godoc
//
//	@Summary		Venues for a mood
//	@Description	Active venues scoring at least 0.7 for the mood, best match first, with the mood guide.
//	@Tags			venues
//	@Produce		json
//	@Param			mood	path		string	true	"Venue mood"
//	@Param			city	query		string	false	"City (case-insensitive, partial)"
//	@Param			limit	query		int		false	"Maximum results (default 12)"
//	@Success		200		{object}	MoodVenuesResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		500		{object}	ErrorResponse
//	@Router			/venues/mood/{mood} [get]
func (app *application) venuesByMoodHandler(w http.ResponseWriter, r *http.Request) {
	mood := moods.Normalize(chi.URLParam(r, "mood"))
	if !moods.IsVenueMood(mood) {
		app.badRequestResponse(w, r, fmt.Errorf("Invalid mood. Choose from: %s", strings.Join(moods.Venue, ", ")))
		return
	}

	limit := defaultMoodLimit
	if s := strings.TrimSpace(r.URL.Query().Get("limit")); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			limit = min(n, params.MaxLimit)
		}
	}

	vs, err := app.store.Venues.ByMood(r.Context(), mood, strings.TrimSpace(r.URL.Query().Get("city")), limit)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	resp := MoodVenuesResponse{
		Mood:   mood,
		Guide:  moods.GuideFor(mood),
		Count:  len(vs),
		Venues: vs,
	}
	if err := app.jsonResponse(w, http.StatusOK, resp); err != nil {
		app.internalServerError(w, r, err)
	}
}

// listCitiesHandler godoc
//
//	@Summary		Cities with venues
//	@Tags			venues
//	@Produce		json
//	@Success		200	{array}		string
//	@Failure		500	{object}	ErrorResponse
//	@Router			/venues/cities [get]
func (app *application) listCitiesHandler(w http.ResponseWriter, r *http.Request) {
	cities, err := app.store.Venues.Cities(r.Context())
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, cities); err != nil {
		app.internalServerError(w, r, err)
	}
}

// getVenueHandler godoc
//
//	@Summary		Venue details
//	@Tags			venues
//	@Produce		json
//	@Param			venueID	path		string	true	"Venue ID"
//	@Success		200		{object}	venues.Venue
//	@Failure		404		{object}	ErrorResponse
//	@Failure		500		{object}	ErrorResponse
//	@Router			/venues/{venueID} [get]
func (app *application) getVenueHandler(w http.ResponseWriter, r *http.Request) {
	venue, ok := app.activeVenue(w, r, chi.URLParam(r, "venueID"))
	if !ok {
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, venue); err != nil {
		app.internalServerError(w, r, err)
	}
}

// activeVenue loads a venue and writes the 404/500 itself when it cannot be
// served. Inactive venues count as missing.
func (app *application) activeVenue(w http.ResponseWriter, r *http.Request, id string) (*venues.Venue, bool) {
	venue, err := app.store.Venues.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, venues.ErrVenueNotFound) {
			app.notFoundResponse(w, r, msgVenueNotFound)
			return nil, false
		}
		app.internalServerError(w, r, err)
		return nil, false
	}
	if !venue.IsActive {
		app.notFoundResponse(w, r, msgVenueNotFound)
		return nil, false
	}
	return venue, true
}

type LocationPayload struct {
	Type        string    `json:"type" validate:"omitempty,eq=Point"`
	Coordinates []float64 `json:"coordinates" validate:"omitempty,len=2"`
}

type AmbiancePayload struct {
	Lighting    string `json:"lighting" validate:"omitempty,oneof=dim warm bright natural"`
	NoiseLevel  string `json:"noiseLevel" validate:"omitempty,oneof=quiet moderate loud vibrant"`
	Seating     string `json:"seating" validate:"omitempty,oneof=private communal mixed"`
	OutdoorArea bool   `json:"outdoorArea"`
	Decor       string `json:"decor" validate:"omitempty,oneof=rustic modern elegant minimalist vibrant"`
}

type CreateVenuePayload struct {
	Name          string             `json:"name" validate:"required,max=120"`
	Description   string             `json:"description" validate:"required"`
	Moods         []string           `json:"moods" validate:"required,min=1,dive,venuemood"`
	MoodScores    map[string]float64 `json:"moodScores" validate:"omitempty,dive,keys,venuemood,endkeys,min=0,max=1"`
	Category      string             `json:"category" validate:"required,oneof=restaurant cafe park club bar museum activity other"`
	Address       string             `json:"address" validate:"required"`
	City          string             `json:"city" validate:"required"`
	Location      *LocationPayload   `json:"location"`
	Images        []string           `json:"images" validate:"omitempty,dive,url"`
	Ambiance      *AmbiancePayload   `json:"ambiance"`
	ActivityGuide string             `json:"activityGuide"`
	SeekingGuide  string             `json:"seekingGuide"`
	PriceRange    string             `json:"priceRange" validate:"omitempty,oneof=$ $$ $$$ $$$$"`
	Cuisine       string             `json:"cuisine"`
	OpeningHours  string             `json:"openingHours"`
}

// normalize lower-cases mood names so validation sees canonical keys.
func (p *CreateVenuePayload) normalize() {
	for i, m := range p.Moods {
		p.Moods[i] = moods.Normalize(m)
	}
	if len(p.MoodScores) == 0 {
		return
	}
	scores := make(map[string]float64, len(p.MoodScores))
	for m, s := range p.MoodScores {
		scores[moods.Normalize(m)] = s
	}
	p.MoodScores = scores
}

func (p CreateVenuePayload) toVenue() *venues.Venue {
	v := &venues.Venue{
		Name:          strings.TrimSpace(p.Name),
		Description:   p.Description,
		MoodScores:    map[string]float64{},
		Category:      p.Category,
		Address:       p.Address,
		City:          strings.TrimSpace(p.City),
		Images:        p.Images,
		ActivityGuide: p.ActivityGuide,
		SeekingGuide:  p.SeekingGuide,
		PriceRange:    p.PriceRange,
		Cuisine:       p.Cuisine,
		OpeningHours:  p.OpeningHours,
		IsActive:      true,
	}
	for _, m := range p.Moods {
		if m = moods.Normalize(m); !v.HasMood(m) {
			v.Moods = append(v.Moods, m)
		}
	}
	for m, s := range p.MoodScores {
		v.MoodScores[m] = s
	}
	if p.Location != nil {
		v.Location = venues.Point{Type: "Point", Coordinates: p.Location.Coordinates}
	}
	if p.Ambiance != nil {
		v.Ambiance = venues.Ambiance(*p.Ambiance)
	}
	return v
}

// createVenueHandler godoc
//
//	@Summary		Create a venue
//	@Tags			venues
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		CreateVenuePayload	true	"Venue"
//	@Success		201		{object}	venues.Venue
//	@Failure		400		{object}	ErrorResponse
//	@Failure		401		{object}	ErrorResponse
//	@Failure		500		{object}	ErrorResponse
//	@Security		ApiKeyAuth
//	@Router			/venues [post]
func (app *application) createVenueHandler(w http.ResponseWriter, r *http.Request) {
	var payload CreateVenuePayload
	if err := readJSON(w, r, &payload); err != nil {
		app.malformedJSONResponse(w, r, err)
		return
	}

	payload.normalize()
	if err := Validate.Struct(payload); err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	venue := payload.toVenue()
	if err := app.store.Venues.Create(r.Context(), venue); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusCreated, venue); err != nil {
		app.internalServerError(w, r, err)
	}
}
