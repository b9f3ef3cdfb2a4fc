// Package response provides helpers for writing consistent JSON HTTP
// responses.
//
// Every handler in this application sends JSON back to the client.
// Rather than repeating the same three lines (set header, set status,
// encode JSON) in every handler, they are centralised here, and error
// responses always share one envelope:
//
//	{ "status": "error", "error": "item not found" }
package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Response is the standard envelope returned for error cases.
// Success responses may return any JSON shape (an item, a list, an
// id…); error responses always look like this.
type Response struct {
	Status string `json:"status"` // "ok" or "error"
	Error  string `json:"error"`  // human-readable error detail
}

// Status string constants — a typo in a literal would silently send
// the wrong status; a typo here is a compile error.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// WriteJSON writes a JSON-encoded response with the given HTTP status
// code. data can be a struct, map, slice, or primitive.
//
// Order matters: Header() → WriteHeader() → body. Once WriteHeader is
// called, headers are locked.
func WriteJSON(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	return json.NewEncoder(w).Encode(data)
}

// GeneralError wraps any Go error into the standard Response shape.
// Use this for unexpected errors (DB failures, decode errors, etc.).
func GeneralError(err error) Response {
	return Response{
		Status: StatusError,
		Error:  err.Error(),
	}
}

// NotFoundError builds the envelope for a missing resource, with the
// short detail text the API promises ("item not found").
func NotFoundError(resource string) Response {
	return Response{
		Status: StatusError,
		Error:  fmt.Sprintf("%s not found", resource),
	}
}

// ValidationError converts a slice of validator.FieldError values into
// a single human-readable Response.
//
// go-playground/validator returns one FieldError per failing struct
// field; each becomes a plain English sentence, joined with ", " so
// the client sees one descriptive error string.
func ValidationError(errs validator.ValidationErrors) Response {
	var errMessages []string

	for _, e := range errs {
		switch e.ActualTag() {
		case "required":
			errMessages = append(errMessages,
				fmt.Sprintf("field %s is required", e.Field()))
		case "email":
			errMessages = append(errMessages,
				fmt.Sprintf("field %s must be a valid email address", e.Field()))
		default:
			errMessages = append(errMessages,
				fmt.Sprintf("field %s is invalid", e.Field()))
		}
	}

	return Response{
		Status: StatusError,
		Error:  strings.Join(errMessages, ", "),
	}
}

// ValidationErrors reports whether err came from struct validation and
// returns the typed slice when it did. Handlers use this instead of a
// bare type assertion so a non-validation error cannot panic.
func ValidationErrors(err error) (validator.ValidationErrors, bool) {
	var verrs validator.ValidationErrors
	ok := errors.As(err, &verrs)
	return verrs, ok
}
