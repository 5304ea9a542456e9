package validators

import (
	"github.com/bmatcuk/doublestar/v4"
	"github.com/go-playground/validator/v10"
)

// Validate is a type alias for validator.Validate.
type Validate = validator.Validate

// ValidationErrors is a type alias for validator.ValidationErrors.
type ValidationErrors = validator.ValidationErrors

// FieldError is a type alias for validator.FieldError.
type FieldError = validator.FieldError

// New creates a new validator instance with the "logglob" tag registered.
// logglob accepts "-" (stdin) or any valid doublestar pattern.
func New() *Validate {
	v := validator.New()
	_ = v.RegisterValidation("logglob", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return s == "-" || doublestar.ValidatePathPattern(s)
	})
	return v
}
