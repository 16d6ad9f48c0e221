package attendance

import (
	"regexp"
	"strings"

	"go-absensi/internal/shared/apperror"

	"github.com/go-playground/validator/v10"
)

var (
	personNamePattern   = regexp.MustCompile(`^[\p{L} ]+$`)
	phonePattern        = regexp.MustCompile(`^(\+62|08)[0-9]{8,12}$`)
	socialHandlePattern = regexp.MustCompile(`^[a-zA-Z0-9._]{3,30}$`)
)

func matchString(re *regexp.Regexp) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return re.MatchString(fl.Field().String())
	}
}

// RegisterValidators adds the binding tags used by the attendance DTOs.
func RegisterValidators() error {
	validators := map[string]validator.Func{
		"personname":   matchString(personNamePattern),
		"idphone":      matchString(phonePattern),
		"socialhandle": matchString(socialHandlePattern),
		"notblank": func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		},
	}
	for tag, fn := range validators {
		if err := apperror.RegisterValidation(tag, fn); err != nil {
			return err
		}
	}
	return nil
}
