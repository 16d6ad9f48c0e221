package adminerrors

import (
	"go-absensi/internal/shared/apperror"
	"net/http"
)

var (
	// ErrInvalidCredentials sengaja seragam untuk username tidak ada, akun
	// nonaktif, dan password salah.
	ErrInvalidCredentials = apperror.NewLocalized(
		apperror.CodeUnauthorized,
		"admin.invalid_credentials",
		"Invalid username or password",
		http.StatusUnauthorized,
	)
	ErrAdminNotFound = apperror.NewLocalized(
		apperror.CodeNotFound,
		"admin.not_found",
		"Admin not found",
		http.StatusNotFound,
	)
	ErrUsernameTaken = apperror.NewLocalized(
		apperror.CodeConflict,
		"admin.username_taken",
		"Username already exists",
		http.StatusConflict,
	)
	ErrTokenMissing = apperror.NewLocalized(
		apperror.CodeUnauthorized,
		"auth.token_missing",
		"Token not found",
		http.StatusUnauthorized,
	)
	ErrInvalidToken = apperror.NewLocalized(
		apperror.CodeUnauthorized,
		"auth.token_invalid",
		"Invalid token",
		http.StatusUnauthorized,
	)
	ErrTokenExpired = apperror.NewLocalized(
		apperror.CodeUnauthorized,
		"auth.token_expired",
		"Token expired",
		http.StatusUnauthorized,
	)
)
