package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"diljourney/internal/domain/moods"

	"github.com/go-playground/validator/v10"
)

var Validate *validator.Validate

func init() {
	Validate = validator.New(validator.WithRequiredStructEnabled())

	// report json names in messages
	Validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	Validate.RegisterValidation("mood", func(fl validator.FieldLevel) bool {
		return moods.IsReviewMood(fl.Field().String())
	})
	Validate.RegisterValidation("venuemood", func(fl validator.FieldLevel) bool {
		return moods.IsVenueMood(fl.Field().String())
	})
	Validate.RegisterValidation("favmood", func(fl validator.FieldLevel) bool {
		return moods.IsFavoriteMood(fl.Field().String())
	})
}

func writeJSON(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// readJSON parses the body into data, capped at 1MB.
func readJSON(w http.ResponseWriter, r *http.Request, data any) error {
	maxBytes := 1_048_578
	r.Body = http.MaxBytesReader(w, r.Body, int64(maxBytes))

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(data)
}

// decodeMessage turns a readJSON error into a message fit for clients.
func decodeMessage(err error) string {
	var (
		syntaxErr   *json.SyntaxError
		typeErr     *json.UnmarshalTypeError
		maxBytesErr *http.MaxBytesError
	)

	switch {
	case errors.As(err, &syntaxErr), errors.Is(err, io.ErrUnexpectedEOF):
		return "request body contains badly-formed JSON"
	case errors.As(err, &typeErr):
		if typeErr.Field != "" {
			return fmt.Sprintf("%s has the wrong type", typeErr.Field)
		}
		return "request body contains a value of the wrong type"
	case errors.Is(err, io.EOF):
		return "request body must not be empty"
	case errors.As(err, &maxBytesErr):
		return "request body must not be larger than 1MB"
	case strings.HasPrefix(err.Error(), "json: unknown field "):
		return "unknown field " + strings.TrimPrefix(err.Error(), "json: unknown field ")
	default:
		return "request body could not be read"
	}
}

type errorEnvelope struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Status  int      `json:"status"`
	Errors  []string `json:"errors,omitempty"`
}

func writeJSONError(w http.ResponseWriter, status int, message string) error {
	return writeJSON(w, status, &errorEnvelope{
		Success: false,
		Message: message,
		Status:  status,
	})
}

func (app *application) jsonResponse(w http.ResponseWriter, status int, data any) error {
	type envelope struct {
		Success bool `json:"success"`
		Data    any  `json:"data"`
	}
	return writeJSON(w, status, &envelope{Success: true, Data: data})
}

func (app *application) messageResponse(w http.ResponseWriter, status int, message string) error {
	type envelope struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	return writeJSON(w, status, &envelope{Success: true, Message: message})
}

// validationMessages turns validator output into one readable line per field.
func validationMessages(err error) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{err.Error()}
	}

	out := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, fieldMessage(fe))
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	field := fe.Field()
	numeric := false
	switch fe.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64, reflect.Float32, reflect.Float64:
		numeric = true
	}

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return "Please enter a valid email"
	case "min":
		if numeric {
			return fmt.Sprintf("%s must be at least %s", field, fe.Param())
		}
		if fe.Kind() == reflect.Slice || fe.Kind() == reflect.Map {
			return fmt.Sprintf("%s must contain at least %s item(s)", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		if numeric {
			return fmt.Sprintf("%s must be at most %s", field, fe.Param())
		}
		return fmt.Sprintf("%s cannot exceed %s characters", field, fe.Param())
	case "len":
		return fmt.Sprintf("%s must have exactly %s items", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "mood":
		return fmt.Sprintf("%s must be one of: %s", field, strings.Join(moods.Review, ", "))
	case "venuemood":
		return fmt.Sprintf("%s must be one of: %s", field, strings.Join(moods.Venue, ", "))
	case "favmood":
		return fmt.Sprintf("%s must be one of: %s", field, strings.Join(moods.Favorite, ", "))
	case "url":
		return fmt.Sprintf("%s must be a valid URL", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
