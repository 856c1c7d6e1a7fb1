package main

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"diljourney/internal/metrics"

	"github.com/go-chi/chi/v5"
)

const (
	maxPhotoBytes   = 5 << 20
	msgNoMediaStore = "photo storage is not configured"
)

var allowedPhotoTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
}

// uploadVenuePhotoHandler godoc
//
//	@Summary		Upload a venue photo
//	@Description	Stores a JPEG or PNG (max 5 MB) and appends its URL to the venue images.
//	@Tags			venues
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			venueID	path		string	true	"Venue ID"
//	@Param			photo	formData	file	true	"Photo"
//	@Success		201		{object}	map[string]string
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		503		{object}	ErrorResponse
//	@Security		ApiKeyAuth
//	@Router			/venues/{venueID}/photos [post]
func (app *application) uploadVenuePhotoHandler(w http.ResponseWriter, r *http.Request) {
	if app.media == nil {
		app.serviceUnavailableResponse(w, r, msgNoMediaStore)
		return
	}

	venue, ok := app.activeVenue(w, r, chi.URLParam(r, "venueID"))
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxPhotoBytes+1<<20)
	if err := r.ParseMultipartForm(maxPhotoBytes); err != nil {
		app.badRequestResponse(w, r, fmt.Errorf("parse form: %w", err))
		return
	}

	file, header, err := r.FormFile("photo")
	if err != nil {
		app.badRequestResponse(w, r, errors.New("photo file is required"))
		return
	}
	defer file.Close()

	if header.Size > maxPhotoBytes {
		app.badRequestResponse(w, r, errors.New("photo must be 5MB or smaller"))
		return
	}

	sniff := make([]byte, 512)
	n, err := io.ReadFull(file, sniff)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) {
		app.badRequestResponse(w, r, fmt.Errorf("read photo: %w", err))
		return
	}
	if !allowedPhotoTypes[http.DetectContentType(sniff[:n])] {
		app.badRequestResponse(w, r, errors.New("only JPEG and PNG photos are allowed"))
		return
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	publicID := fmt.Sprintf("venue_%s_image_%d", venue.ID, time.Now().UnixNano())
	url, err := app.media.Upload(r.Context(), file, publicID)
	metrics.RecordMediaOperation("upload", err)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.store.Venues.AddImage(r.Context(), venue.ID, url); err != nil {
		app.logger.Warnw("orphaned photo after failed save", "venueID", venue.ID, "url", url)
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusCreated, map[string]string{"url": url}); err != nil {
		app.internalServerError(w, r, err)
	}
}

// deleteVenuePhotoHandler godoc
//
//	@Summary		Remove a venue photo
//	@Tags			venues
//	@Produce		json
//	@Param			venueID		path		string	true	"Venue ID"
//	@Param			photo_url	query		string	true	"URL returned on upload"
//	@Success		200			{object}	map[string]any
//	@Failure		400			{object}	ErrorResponse
//	@Failure		404			{object}	ErrorResponse
//	@Failure		503			{object}	ErrorResponse
//	@Security		ApiKeyAuth
//	@Router			/venues/{venueID}/photos [delete]
func (app *application) deleteVenuePhotoHandler(w http.ResponseWriter, r *http.Request) {
	if app.media == nil {
		app.serviceUnavailableResponse(w, r, msgNoMediaStore)
		return
	}

	venue, ok := app.activeVenue(w, r, chi.URLParam(r, "venueID"))
	if !ok {
		return
	}

	photoURL := strings.TrimSpace(r.URL.Query().Get("photo_url"))
	if photoURL == "" {
		app.badRequestResponse(w, r, errors.New("photo_url is required"))
		return
	}

	found := false
	for _, img := range venue.Images {
		if img == photoURL {
			found = true
			break
		}
	}
	if !found {
		app.notFoundResponse(w, r, "Photo not found.")
		return
	}

	err := app.media.Delete(r.Context(), photoURL)
	metrics.RecordMediaOperation("delete", err)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.store.Venues.RemoveImage(r.Context(), venue.ID, photoURL); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	app.messageResponse(w, http.StatusOK, "Photo removed.")
}
