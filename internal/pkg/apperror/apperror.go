package apperror

import "net/http"

// AppError is an error the boundary layer can show to the caller.
// Code is the HTTP status the error maps to.
type AppError struct {
	Code    int    // HTTP Status Code (e.g., 400, 404)
	Message string // User-facing error message
	Err     error  // The underlying error, if any (not exposed to user)
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError with a status code and message.
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

func NotFound(message string) *AppError   { return New(http.StatusNotFound, message) }
func Validation(message string) *AppError { return New(http.StatusBadRequest, message) }
func Conflict(message string) *AppError   { return New(http.StatusConflict, message) }

// Detail returns a copy of e whose message is extended with detail.
// The copy wraps e, so errors.Is(copy, e) holds.
func (e *AppError) Detail(detail string) *AppError {
	return &AppError{Code: e.Code, Message: e.Message + ": " + detail, Err: e}
}

