package apperrors

import (
	"errors"
	"fmt"
	"net/http"

	"gorm.io/gorm"
)

type Kind int

const (
	KindValidation Kind = iota + 1
	KindAuthentication
	KindForbidden
	KindNotFound
	KindConflict
	KindRateLimited
	KindInternal
)

// FieldError reports a single validation violation on a named field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is the one error type the handler layer knows how to render.
// Everything the services return funnels into it.
type Error struct {
	Kind    Kind
	Message string
	Fields  []FieldError
	// RetryAfter is the number of seconds a rate-limited client should
	// wait before retrying. Only meaningful for KindRateLimited.
	RetryAfter int
	Err        error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindAuthentication:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

func NewValidation(fields []FieldError) *Error {
	return &Error{Kind: KindValidation, Message: "validation failed", Fields: fields}
}

func NewValidationMessage(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

func NewAuthentication(message string) *Error {
	return &Error{Kind: KindAuthentication, Message: message}
}

func NewForbidden(message string) *Error {
	return &Error{Kind: KindForbidden, Message: message}
}

func NewNotFound(resource string) *Error {
	return &Error{Kind: KindNotFound, Message: resource + " not found"}
}

func NewConflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

func NewRateLimited(retryAfter int) *Error {
	return &Error{
		Kind:       KindRateLimited,
		Message:    "too many requests",
		RetryAfter: retryAfter,
	}
}

func NewInternal(err error) *Error {
	return &Error{Kind: KindInternal, Message: "internal server error", Err: err}
}

// As unwraps err into *Error if possible.
func As(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// FromDB translates storage-layer errors into the taxonomy so raw driver
// text never reaches a response. A uniqueness race that slips past a
// pre-check surfaces here as the same conflict the pre-check would report.
func FromDB(err error, resource string) *Error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return NewNotFound(resource)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return NewConflict(resource + " already exists")
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return NewValidationMessage("referenced " + resource + " does not exist")
	default:
		return NewInternal(err)
	}
}
