package apperror

import "fmt"

type AppError struct {
	Code       string // Error code (e.g., INVALID_INPUT)
	Message    string // Default user-facing message
	MessageKey string // Catalog key, preferred over Message when present
	HTTPStatus int    // HTTP status code
	Err        error  // Wrapped original error (optional)
}

// Error implements error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap implements errors.Unwrap interface for errors.Is/As
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches sentinel errors by code and key so a wrapped copy still
// satisfies errors.Is against the sentinel it was built from.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code && e.MessageKey == t.MessageKey && e.Message == t.Message
}

// NewLocalized creates an AppError whose message is resolved from the
// catalog at response time. message is the fallback used in logs.
func NewLocalized(code, key, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		MessageKey: key,
		HTTPStatus: httpStatus,
	}
}

// WithCause returns a copy of e wrapping err.
func (e *AppError) WithCause(err error) *AppError {
	cp := *e
	cp.Err = err
	return &cp
}
