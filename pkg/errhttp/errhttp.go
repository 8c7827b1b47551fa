// Package errhttp maps domain sentinel errors to HTTP status codes.
// Add a case to mapErrorToStatus for each new domain sentinel error.
package errhttp

import (
	"errors"
	"net/http"

	"github.com/ghuser/stocktracker/pkg/httpx"
	inventory "github.com/ghuser/stocktracker/services/inventory/domain"
)

// ErrorResponse is the JSON body of every error response.
type ErrorResponse struct {
	Error  string            `json:"error" example:"item not found"`
	Fields map[string]string `json:"fields,omitempty"`
} // @name ErrorResponse

// Writer renders errors, hiding 5xx details in production.
type Writer struct {
	production bool
}

// New returns a Writer. isProduction replaces 5xx messages with the status text.
func New(isProduction bool) *Writer {
	return &Writer{production: isProduction}
}

// WriteError maps err to an HTTP status code and writes a JSON error response.
// Uses errors.Is() so wrapped sentinel errors are matched correctly.
// Defaults to 500 Internal Server Error for unrecognized errors.
func (wr *Writer) WriteError(w http.ResponseWriter, err error) {
	status := MapErrorToStatus(err)
	body := ErrorResponse{Error: httpx.SafeError(err, status, wr.production)}

	var ve *inventory.ValidationError
	if errors.As(err, &ve) {
		body.Error = "Validation failed"
		body.Fields = ve.Fields
	}
	httpx.JSON(w, status, body)
}

// WriteError writes err without production masking.
func WriteError(w http.ResponseWriter, err error) {
	(&Writer{}).WriteError(w, err)
}

// MapErrorToStatus returns the HTTP status for err.
func MapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, inventory.ErrItemNotFound):
		return http.StatusNotFound // 404
	case errors.Is(err, inventory.ErrInvalidOperation):
		return http.StatusConflict // 409
	case errors.Is(err, inventory.ErrInvalidItem):
		return http.StatusUnprocessableEntity // 422
	case errors.Is(err, inventory.ErrDuplicateName):
		return http.StatusConflict // 409
	default:
		return http.StatusInternalServerError // 500
	}
}
