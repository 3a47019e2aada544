package common

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var alphanumDashRegex = regexp.MustCompile(`^[a-zA-Z0-9-]+$`)

// RegisterValidators adds the custom binding tags used by request DTOs.
func RegisterValidators(v *validator.Validate) error {
	return v.RegisterValidation("alphanumdash", func(fl validator.FieldLevel) bool {
		return alphanumDashRegex.MatchString(fl.Field().String())
	})
}
