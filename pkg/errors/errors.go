package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

func Wrap(err error, code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common error codes
const (
	ErrCodeValidation        = "VALIDATION_ERROR"
	ErrCodeNotFound          = "NOT_FOUND"
	ErrCodeUnauthorized      = "UNAUTHORIZED"
	ErrCodeForbidden         = "FORBIDDEN"
	ErrCodeInternalError     = "INTERNAL_ERROR"
	ErrCodeAlreadyExists     = "ALREADY_EXISTS"
	ErrCodeAlreadyFriends    = "ALREADY_FRIENDS"
	ErrCodeAlreadyRequested  = "ALREADY_REQUESTED"
	ErrCodeNoSuchRequest     = "NO_SUCH_REQUEST"
	ErrCodeNotFriends        = "NOT_FRIENDS"
	ErrCodeRateLimitExceeded = "RATE_LIMIT_EXCEEDED"
)

// Code extracts the error code from an error, or ErrCodeInternalError
// for anything that is not an *AppError.
func Code(err error) string {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code
	}
	return ErrCodeInternalError
}

// HTTPStatus maps an error to the status the boundary layer responds with.
// State-machine violations are plain client errors; duplicate registrations
// and lost accept/refuse races are conflicts.
func HTTPStatus(err error) int {
	switch Code(err) {
	case ErrCodeValidation, ErrCodeAlreadyFriends, ErrCodeAlreadyRequested, ErrCodeNotFriends:
		return http.StatusBadRequest
	case ErrCodeNotFound:
		return http.StatusNotFound
	case ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case ErrCodeForbidden:
		return http.StatusForbidden
	case ErrCodeAlreadyExists, ErrCodeNoSuchRequest:
		return http.StatusConflict
	case ErrCodeRateLimitExceeded:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
