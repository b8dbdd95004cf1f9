// Package apperror defines the typed errors returned across the service and
// their mapping onto HTTP status codes.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorType int

const (
	UnknownError ErrorType = iota
	DatabaseError
	AuthError
	NotFoundError
	ValidationError
	ConflictError
	InternalError
)

// AppError carries a user-facing message and an optional underlying cause.
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// StatusCode returns the HTTP status code appropriate for the error type.
func (e *AppError) StatusCode() int {
	switch e.Type {
	case AuthError:
		return http.StatusUnauthorized
	case NotFoundError:
		return http.StatusNotFound
	case ValidationError:
		return http.StatusBadRequest
	case ConflictError:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func NewAppError(errType ErrorType, message string, err error) *AppError {
	return &AppError{Type: errType, Message: message, Err: err}
}

func NewDatabaseError(message string, err error) *AppError {
	return NewAppError(DatabaseError, message, err)
}

func NewAuthError(message string, err error) *AppError {
	return NewAppError(AuthError, message, err)
}

func NewNotFoundError(message string, err error) *AppError {
	return NewAppError(NotFoundError, message, err)
}

func NewValidationError(message string, err error) *AppError {
	return NewAppError(ValidationError, message, err)
}

func NewConflictError(message string, err error) *AppError {
	return NewAppError(ConflictError, message, err)
}

func NewInternalError(message string, err error) *AppError {
	return NewAppError(InternalError, message, err)
}

// ErrorResponse is the JSON body written for every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ToResponse exposes only the message, never the wrapped cause.
func (e *AppError) ToResponse() ErrorResponse {
	return ErrorResponse{Error: e.Message}
}

// FromError finds an *AppError anywhere in err's chain.
func FromError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

func is(err error, t ErrorType) bool {
	appErr, ok := FromError(err)
	return ok && appErr.Type == t
}

func IsNotFound(err error) bool { return is(err, NotFoundError) }
func IsConflict(err error) bool { return is(err, ConflictError) }
func IsValidation(err error) bool { return is(err, ValidationError) }
func IsAuthError(err error) bool { return is(err, AuthError) }
func IsDatabaseError(err error) bool { return is(err, DatabaseError) }
