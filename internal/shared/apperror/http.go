package apperror

import (
	"context"
	"errors"

	"go-absensi/internal/shared/i18n"
)

type HTTPError struct {
	Status  int
	Code    string
	Message string
	Details any
}

// ToHTTP converts any error into a response-ready HTTPError. Unclassified
// errors become a generic 500 so storage faults never leak internals.
func ToHTTP(ctx context.Context, err error) HTTPError {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		appErr = ErrInternal
	}

	msg := appErr.Message
	if appErr.MessageKey != "" {
		msg = i18n.T(ctx, appErr.MessageKey)
	}

	var details any
	var verr *ValidationError
	if errors.As(err, &verr) {
		if fields := verr.Localize(ctx); len(fields) > 0 {
			// Ambil error pertama sebagai pesan utama
			msg = fields[0].Message
			details = fields
		}
	}

	return HTTPError{
		Status:  appErr.HTTPStatus,
		Code:    appErr.Code,
		Message: msg,
		Details: details,
	}
}
