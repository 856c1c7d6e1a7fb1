package main

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"diljourney/internal/metrics"
)

func (app *application) internalServerError(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Errorw("internal error", "method", r.Method, "path", r.URL.Path, "error", err.Error())

	writeJSONError(w, http.StatusInternalServerError, "the server encountered a problem")
}

func (app *application) badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Warnw("bad request", "method", r.Method, "path", r.URL.Path, "error", err.Error())

	writeJSONError(w, http.StatusBadRequest, err.Error())
}

// malformedJSONResponse reports a body that could not be decoded.
func (app *application) malformedJSONResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Warnw("malformed body", "method", r.Method, "path", r.URL.Path, "error", err.Error())

	writeJSON(w, http.StatusBadRequest, &errorEnvelope{
		Success: false,
		Message: "invalid request body",
		Status:  http.StatusBadRequest,
		Errors:  []string{decodeMessage(err)},
	})
}

// failedValidationResponse reports every field problem under "errors".
func (app *application) failedValidationResponse(w http.ResponseWriter, r *http.Request, err error) {
	messages := validationMessages(err)
	app.logger.Warnw("validation failed", "method", r.Method, "path", r.URL.Path, "errors", strings.Join(messages, "; "))

	writeJSON(w, http.StatusBadRequest, &errorEnvelope{
		Success: false,
		Message: "validation failed",
		Status:  http.StatusBadRequest,
		Errors:  messages,
	})
}

func (app *application) notFoundResponse(w http.ResponseWriter, r *http.Request, message string) {
	app.logger.Warnw("not found", "method", r.Method, "path", r.URL.Path, "message", message)

	writeJSONError(w, http.StatusNotFound, message)
}

func (app *application) unauthorizedErrorResponse(w http.ResponseWriter, r *http.Request, message string, err error) {
	app.logger.Warnw("unauthorized", "method", r.Method, "path", r.URL.Path, "error", err)

	writeJSONError(w, http.StatusUnauthorized, message)
}

func (app *application) unauthorizedBasicErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Warnw("unauthorized basic error", "method", r.Method, "path", r.URL.Path, "error", err.Error())

	w.Header().Set("WWW-Authenticate", `Basic realm="restricted", charset="UTF-8"`)

	writeJSONError(w, http.StatusUnauthorized, "unauthorized")
}

func (app *application) forbiddenResponse(w http.ResponseWriter, r *http.Request, message string) {
	app.logger.Warnw("forbidden", "method", r.Method, "path", r.URL.Path)

	writeJSONError(w, http.StatusForbidden, message)
}

func (app *application) rateLimitExceededResponse(w http.ResponseWriter, r *http.Request, retryAfter time.Duration) {
	app.logger.Warnw("rate limit exceeded", "method", r.Method, "path", r.URL.Path)
	metrics.APIRateLimitHits.Inc()

	seconds := int(retryAfter.Round(time.Second).Seconds())
	if seconds < 1 {
		seconds = 1
	}
	w.Header().Set("Retry-After", fmt.Sprintf("%d", seconds))

	writeJSONError(w, http.StatusTooManyRequests, "rate limit exceeded, retry after: "+retryAfter.Round(time.Second).String())
}

func (app *application) serviceUnavailableResponse(w http.ResponseWriter, r *http.Request, message string) {
	app.logger.Warnw("service unavailable", "method", r.Method, "path", r.URL.Path, "message", message)

	writeJSONError(w, http.StatusServiceUnavailable, message)
}

func (app *application) routeNotFoundHandler(w http.ResponseWriter, r *http.Request) {
	writeJSONError(w, http.StatusNotFound, "Route not found")
}
