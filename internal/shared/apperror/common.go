package apperror

import "net/http"

var (
	ErrNotFound = NewLocalized(
		CodeNotFound,
		"common.not_found",
		"Resource not found",
		http.StatusNotFound,
	)

	ErrInternal = NewLocalized(
		CodeInternalError,
		"common.internal",
		"An unexpected error occurred",
		http.StatusInternalServerError,
	)

	ErrUnauthorized = NewLocalized(
		CodeUnauthorized,
		"common.unauthorized",
		"Authentication is required",
		http.StatusUnauthorized,
	)

	ErrInvalidInput = NewLocalized(
		CodeInvalidInput,
		"common.invalid_input",
		"The provided input is invalid",
		http.StatusBadRequest,
	)

	ErrTooManyRequests = NewLocalized(
		CodeTooManyRequests,
		"common.too_many_requests",
		"Too many requests",
		http.StatusTooManyRequests,
	)
)
