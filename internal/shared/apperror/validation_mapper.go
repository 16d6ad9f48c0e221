package apperror

import (
	"context"
	"errors"
	"strings"

	"go-absensi/internal/shared/contextutil"
	"go-absensi/internal/shared/i18n"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// FieldViolation is one failed rule on one request field.
type FieldViolation struct {
	Field string // json name, thanks to RegisterTagNameFunc in Init
	Tag   string
	Param string
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries field-level violations and unwraps to
// ErrInvalidInput so it is reported as a 400.
type ValidationError struct {
	Violations []FieldViolation
}

func (v *ValidationError) Error() string {
	if len(v.Violations) == 0 {
		return ErrInvalidInput.Message
	}
	parts := make([]string, 0, len(v.Violations))
	for _, fv := range v.Violations {
		parts = append(parts, fv.Field+":"+fv.Tag)
	}
	return ErrInvalidInput.Message + ": " + strings.Join(parts, ", ")
}

func (v *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// Localize renders every violation in the request language.
func (v *ValidationError) Localize(ctx context.Context) []FieldError {
	if len(v.Violations) == 0 {
		return nil
	}
	loc := i18n.Default()
	p := loc.PrinterFromContext(ctx)
	tag := contextutil.GetLanguage(ctx, loc.Fallback())

	out := make([]FieldError, 0, len(v.Violations))
	for _, fv := range v.Violations {
		label := formatFieldName(fv.Field)
		if key := "field." + fv.Field; loc.Has(tag, key) {
			label = p.Sprintf(key)
		}

		var msg string
		switch fv.Tag {
		case "required", "notblank":
			msg = p.Sprintf("validation.required", label)
		case "min":
			msg = p.Sprintf("validation.min", label, fv.Param)
		case "max":
			msg = p.Sprintf("validation.max", label, fv.Param)
		case "personname":
			msg = p.Sprintf("validation.personname", label)
		case "idphone":
			msg = p.Sprintf("validation.idphone")
		case "socialhandle":
			msg = p.Sprintf("validation.socialhandle", label)
		default:
			msg = p.Sprintf("validation.invalid", label)
		}
		out = append(out, FieldError{Field: fv.Field, Message: msg})
	}
	return out
}

func formatFieldName(s string) string {
	// 1. Ganti underscore dengan spasi (recipient_phone -> recipient phone)
	s = strings.ReplaceAll(s, "_", " ")

	// 2. Ubah jadi Title Case (recipient phone -> Recipient Phone)
	caser := cases.Title(language.English)
	return caser.String(s)
}

// MapValidationError turns a binding error into a *ValidationError. Errors
// that are not validator errors (bad JSON, wrong types) carry no details.
func MapValidationError(err error) error {
	var errs validator.ValidationErrors
	if errors.As(err, &errs) {
		out := &ValidationError{Violations: make([]FieldViolation, 0, len(errs))}
		for _, e := range errs {
			out.Violations = append(out.Violations, FieldViolation{
				Field: e.Field(),
				Tag:   e.Tag(),
				Param: e.Param(),
			})
		}
		return out
	}

	return &ValidationError{}
}

// Invalid builds a single-field validation error outside of binding.
func Invalid(field, tag string) error {
	return &ValidationError{Violations: []FieldViolation{{Field: field, Tag: tag}}}
}
