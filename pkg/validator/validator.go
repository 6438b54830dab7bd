package validator

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

// resourceIDPattern accepts platform ids and hex object ids
var resourceIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// CustomValidator implements echo.Validator using go-playground/validator
type CustomValidator struct {
	v *validator.Validate
}

// New creates a new CustomValidator instance
func New() *CustomValidator {
	v := validator.New()
	_ = v.RegisterValidation("resource_id", func(fl validator.FieldLevel) bool {
		return IsResourceID(fl.Field().String())
	})
	return &CustomValidator{v: v}
}

// Validate performs struct validation
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.v.Struct(i)
}

// IsResourceID reports whether s looks like a video or channel id
func IsResourceID(s string) bool {
	return resourceIDPattern.MatchString(s)
}
