package apperror

import (
	"errors"
	"net/http"
)

// Kind classifies an error so the HTTP layer can map it to a status code
// without inspecting message strings.
type Kind int

const (
	KindValidation Kind = iota // missing/empty required field
	KindNotFound               // unknown session or message
	KindAuth                   // bad or missing credential
	KindConflict               // unique constraint hit (session id taken)
	KindStore                  // any failure from the persistence layer
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func NewValidation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

func NewNotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func NewAuth(message string) *Error {
	return &Error{Kind: KindAuth, Message: message}
}

func NewConflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

// NewStore wraps a persistence failure. The wrapped error is logged by the
// error handler middleware but never exposed to the client.
func NewStore(err error) *Error {
	return &Error{Kind: KindStore, Message: "internal storage error", Err: err}
}

// HTTPStatus maps an error to the status code it should be surfaced with.
// Unclassified errors are treated as internal.
func HTTPStatus(err error) int {
	var appErr *Error
	if !errors.As(err, &appErr) {
		return http.StatusInternalServerError
	}
	switch appErr.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindAuth:
		return http.StatusUnauthorized
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var appErr *Error
	return errors.As(err, &appErr) && appErr.Kind == kind
}
