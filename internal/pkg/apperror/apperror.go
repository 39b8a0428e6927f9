package apperror

import "net/http"

// AppError is an error carrying the HTTP status code it should surface as,
// plus an optional internal cause that is never exposed to clients.
type AppError struct {
	Code    int    // HTTP status code (e.g. 404, 409)
	Message string // User-facing message
	Err     error  // Underlying error, if any
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates an AppError with a status code and message.
func New(code int, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// Wrap creates an AppError that wraps an existing error.
func Wrap(err error, code int, message string) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NotFound creates a 404 AppError.
func NotFound(message string) *AppError {
	return New(http.StatusNotFound, message)
}

// Conflict creates a 409 AppError.
func Conflict(message string) *AppError {
	return New(http.StatusConflict, message)
}

// BadRequest creates a 400 AppError.
func BadRequest(message string) *AppError {
	return New(http.StatusBadRequest, message)
}

// Forbidden creates a 403 AppError.
func Forbidden(message string) *AppError {
	return New(http.StatusForbidden, message)
}
