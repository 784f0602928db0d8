package blerror

import (
	"net/http"

	"github.com/pkg/errors"
)

// A Kind classifies the errors rendered by the API.
type Kind string

// Error kinds, each one maps to a single HTTP status code.
const (
	KindValidation     Kind = "validation"
	KindConflict       Kind = "conflict"
	KindAuthentication Kind = "invalid-auth"
	KindAuthorization  Kind = "unauthorized"
	KindNotFound       Kind = "not-found"
	KindState          Kind = "invalid-state"
	KindNotModified    Kind = "not-modified"
)

var codes = map[Kind]int{
	KindValidation:     http.StatusBadRequest,
	KindConflict:       http.StatusConflict,
	KindAuthentication: http.StatusUnauthorized,
	KindAuthorization:  http.StatusUnauthorized,
	KindNotFound:       http.StatusNotFound,
	KindState:          http.StatusForbidden,
	KindNotModified:    http.StatusNotModified,
}

type (
	// A BLError represents the error format that can be rendered by the bucketlist server.
	BLError struct {
		HTTPCode   int `json:"-"`
		FieldError err `json:"error"`
	}

	err struct {
		Tag     Kind   `json:"tag,omitempty"`
		Message string `json:"message"`
	}
)

// StatusCode returns the HTTP status code.
func StatusCode(err error) int {
	var blerr *BLError
	if errors.As(err, &blerr) {
		return blerr.HTTPCode
	}
	return http.StatusInternalServerError
}

// KindOf returns the kind of the given error or an empty kind for internal errors.
func KindOf(err error) Kind {
	var blerr *BLError
	if errors.As(err, &blerr) {
		return blerr.FieldError.Tag
	}
	return ""
}

// Is returns true if err is a BLError of the given kind.
func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// New returns a new BLError with the given kind and message.
func New(kind Kind, message string) *BLError {
	return &BLError{
		HTTPCode:   codes[kind],
		FieldError: err{Tag: kind, Message: message},
	}
}

// Validation returns an error for malformed, missing or out of range inputs.
func Validation(message string) *BLError {
	return New(KindValidation, message)
}

// Conflict returns an error for duplicated resources.
func Conflict(message string) *BLError {
	return New(KindConflict, message)
}

// Authentication returns an error for missing, invalid or expired credentials.
func Authentication(message string) *BLError {
	return New(KindAuthentication, message)
}

// Authorization returns an error for authenticated users acting on resources they do not own.
func Authorization(message string) *BLError {
	return New(KindAuthorization, message)
}

// NotFound returns an error for missing resources.
func NotFound(message string) *BLError {
	return New(KindNotFound, message)
}

// State returns an error for forbidden state transitions.
func State(message string) *BLError {
	return New(KindState, message)
}

// NotModified returns an error for updates that do not change anything.
func NotModified(message string) *BLError {
	return New(KindNotModified, message)
}

// Error implements error interface.
func (e *BLError) Error() string {
	return e.FieldError.Message
}

// Kind returns the error kind.
func (e *BLError) Kind() Kind {
	return e.FieldError.Tag
}
