// Package apperr defines the error kinds shared by the ledger, service and
// handler layers. Callers wrap one of the sentinels so handlers can map the
// kind to a status with errors.Is.
package apperr

import (
	"errors"
	"fmt"
)

var (
	ErrValidation      = errors.New("validation failed")
	ErrNotFound        = errors.New("not found")
	ErrForbidden       = errors.New("not authorized")
	ErrUnauthenticated = errors.New("not authenticated")
	ErrConflict        = errors.New("conflict")
	ErrRateLimited     = errors.New("too many requests")
	ErrEmailDelivery   = errors.New("email could not be sent")
)

// Error pairs a sentinel kind with the message shown to the caller and an
// optional underlying cause.
type Error struct {
	Kind    error
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Is(target error) bool {
	return e.Kind == target
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func Validation(format string, args ...any) error {
	return &Error{Kind: ErrValidation, Message: fmt.Sprintf(format, args...)}
}

func NotFound(entity string) error {
	return &Error{Kind: ErrNotFound, Message: entity + " not found"}
}

func Forbidden(entity string) error {
	return &Error{Kind: ErrForbidden, Message: "user not authorized for this " + entity}
}

func Unauthenticated(message string) error {
	return &Error{Kind: ErrUnauthenticated, Message: message}
}

func Conflict(format string, args ...any) error {
	return &Error{Kind: ErrConflict, Message: fmt.Sprintf(format, args...)}
}

func RateLimited(message string) error {
	return &Error{Kind: ErrRateLimited, Message: message}
}

func EmailDelivery(cause error) error {
	return &Error{Kind: ErrEmailDelivery, Message: ErrEmailDelivery.Error(), Cause: cause}
}

// Message returns the caller-facing text of err. Errors that carry no kind
// are internal and get a generic message.
func Message(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "internal server error"
}
