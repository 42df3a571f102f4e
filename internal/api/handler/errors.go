package handler

import (
	"net/http"

	"github.com/mcoot/tictactoe-go/internal/api/apierr"
)

// Re-export from apierr for convenience
type APIError = apierr.APIError

// Re-export error codes
const (
	CodeInvalidRequest = apierr.CodeInvalidRequest
	CodeGameNotFound   = apierr.CodeGameNotFound
	CodeNotFound       = apierr.CodeNotFound
	CodeInternalError  = apierr.CodeInternalError
)

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	apierr.WriteError(w, err)
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return apierr.NewInvalidRequestError(message)
}

// NotFound writes the error body for unmatched routes
func NotFound(w http.ResponseWriter, _ *http.Request) {
	apierr.WriteError(w, apierr.NewNotFoundError())
}
