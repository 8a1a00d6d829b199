package apperr

import (
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

// Status maps an error kind to its HTTP status.
func Status(err error) int {
	switch {
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrRateLimited):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// ToHuma converts a service error into a huma status error. fallback is the
// message used for errors without a kind.
func ToHuma(err error, fallback string) error {
	status := Status(err)
	if status == http.StatusInternalServerError {
		var appErr *Error
		if errors.As(err, &appErr) {
			return huma.NewError(status, appErr.Message, err)
		}
		return huma.NewError(status, fallback, err)
	}
	return huma.NewError(status, Message(err))
}

// HideInternalDetails replaces huma.NewError so that 5xx responses no longer
// include the wrapped errors. Used in production mode.
func HideInternalDetails() {
	newError := huma.NewError
	huma.NewError = func(status int, msg string, errs ...error) huma.StatusError {
		if status >= http.StatusInternalServerError {
			return newError(status, msg)
		}
		return newError(status, msg, errs...)
	}
}
