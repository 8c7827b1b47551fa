// Package validator decodes JSON request bodies and checks them against
// go-playground/validator struct tags. Failures are written in the same
// {"error","fields"} shape the inventory handlers use for domain validation.
package validator

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/ghuser/stocktracker/pkg/httpx"
)

var (
	validate = newValidate()
	// messages holds the texts of tags added through RegisterTag.
	messages sync.Map
)

func newValidate() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their JSON name so messages line up with the body.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return v
}

// RegisterTag adds a string-field tag backed by ok. Failures report message.
// Call it from package init, before any request is validated.
func RegisterTag(tag, message string, ok func(string) bool) error {
	err := validate.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
		if fl.Field().Kind() != reflect.String {
			return false
		}
		return ok(fl.Field().String())
	})
	if err != nil {
		return fmt.Errorf("validator: register %q: %w", tag, err)
	}
	messages.Store(tag, message)
	return nil
}

// Validate runs the struct tags of s.
func Validate(s any) error {
	return validate.Struct(s)
}

// FormatValidationErrors maps each failing field to a message. Errors that
// did not come from Validate give an empty map.
func FormatValidationErrors(err error) map[string]string {
	out := make(map[string]string)
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return out
	}
	for _, fe := range ve {
		out[fe.Field()] = fieldMessage(fe)
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "uuid", "uuid4":
		return "Must be a valid UUID"
	case "min":
		return fmt.Sprintf("Minimum length is %s", fe.Param())
	case "max":
		return fmt.Sprintf("Maximum length is %s", fe.Param())
	case "gte":
		if fe.Param() == "0" {
			return "Cannot be negative"
		}
		return fmt.Sprintf("Must be at least %s", fe.Param())
	case "lte":
		return fmt.Sprintf("Must be at most %s", fe.Param())
	case "oneof":
		return "Must be one of: " + strings.Join(strings.Fields(fe.Param()), ", ")
	default:
		if msg, ok := messages.Load(fe.Tag()); ok {
			return msg.(string)
		}
		return fmt.Sprintf("Failed the %q check", fe.Tag())
	}
}

// RequestError is a body that could not be decoded or validated.
type RequestError struct {
	Status  int
	Message string
	Fields  map[string]string
}

func (e *RequestError) Error() string { return e.Message }

// Decode reads one JSON object into T, rejecting unknown fields, and runs
// Validate on it.
func Decode[T any](r *http.Request) (*T, error) {
	var v T
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&v); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			return nil, &RequestError{Status: http.StatusRequestEntityTooLarge, Message: "Request body too large"}
		case errors.Is(err, io.EOF):
			return nil, &RequestError{Status: http.StatusBadRequest, Message: "Request body is required"}
		default:
			return nil, &RequestError{Status: http.StatusBadRequest, Message: "Invalid JSON"}
		}
	}
	if err := Validate(&v); err != nil {
		return nil, &RequestError{
			Status:  http.StatusUnprocessableEntity,
			Message: "Validation failed",
			Fields:  FormatValidationErrors(err),
		}
	}
	return &v, nil
}

// ValidateRequest is Decode that writes the failure response itself.
// Handlers return immediately when ok is false.
func ValidateRequest[T any](w http.ResponseWriter, r *http.Request) (*T, bool) {
	v, err := Decode[T](r)
	if err == nil {
		return v, true
	}
	var re *RequestError
	if !errors.As(err, &re) {
		httpx.JSONError(w, http.StatusBadRequest, err.Error())
		return nil, false
	}
	if re.Fields != nil {
		httpx.JSON(w, re.Status, map[string]any{"error": re.Message, "fields": re.Fields})
		return nil, false
	}
	httpx.JSONError(w, re.Status, re.Message)
	return nil, false
}
