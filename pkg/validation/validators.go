package validation

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// RegisterValidators registers custom validators on the validator instance
// used by gin's binding engine.
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("future_date", FutureDate)
	_ = v.RegisterValidation("employment_type", EmploymentType)
}

// FutureDate validates that a time.Time field is strictly in the future.
// Zero values pass; combine with required when the field is mandatory.
func FutureDate(fl validator.FieldLevel) bool {
	t, ok := fl.Field().Interface().(time.Time)
	if !ok {
		return false
	}
	if t.IsZero() {
		return true
	}
	return t.After(time.Now())
}

// EmploymentType validates the employment-type enum on request payloads.
func EmploymentType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "", "full_time", "part_time", "internship", "contract", "freelance":
		return true
	}
	return false
}
