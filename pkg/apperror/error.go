package apperror

import (
	"errors"
	"net/http"
)

// Kind classifies an error independently of its transport status code.
type Kind string

const (
	KindBadRequest      Kind = "bad_request"
	KindUnauthenticated Kind = "unauthenticated"
	KindNotFound        Kind = "not_found"
	KindValidation      Kind = "validation"
	KindReference       Kind = "reference"
	KindStorage         Kind = "storage"
)

type AppError struct {
	Code    int    `json:"code"`
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func BadRequest(message string) *AppError {
	e := New(http.StatusBadRequest, message, nil)
	e.Kind = KindBadRequest
	return e
}

func Unauthorized(message string) *AppError {
	e := New(http.StatusUnauthorized, message, nil)
	e.Kind = KindUnauthenticated
	return e
}

// NotFound is also returned for records owned by someone else, so callers
// cannot tell the two cases apart.
func NotFound(message string) *AppError {
	e := New(http.StatusNotFound, message, nil)
	e.Kind = KindNotFound
	return e
}

// Validation reports a payload field outside its allowed domain.
func Validation(field, message string) *AppError {
	e := New(http.StatusBadRequest, message, nil)
	e.Kind = KindValidation
	e.Field = field
	return e
}

// Reference reports a foreign key that does not resolve to a record owned by the caller.
func Reference(field, message string) *AppError {
	e := New(http.StatusUnprocessableEntity, message, nil)
	e.Kind = KindReference
	e.Field = field
	return e
}

func Internal(err error) *AppError {
	e := New(http.StatusInternalServerError, "Internal Server Error", err)
	e.Kind = KindStorage
	return e
}

// KindOf returns the kind of the first AppError in err's chain, or "" if there is none.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return ""
}

func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
