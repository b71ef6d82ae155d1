// Package validation integrates go-playground/validator with Echo.
package validation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	autoscope "github.com/dukerupert/autoscope"
)

// Validator implements echo.Validator over struct validation tags.
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a new validator instance.
func NewValidator() *Validator {
	v := validator.New()

	v.RegisterValidation("severity", func(fl validator.FieldLevel) bool {
		return autoscope.Severity(fl.Field().String()).IsValid()
	})
	v.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		return autoscope.PointCategory(fl.Field().String()).IsValid()
	})

	return &Validator{validate: v}
}

// Validate validates a struct using its validation tags. Errors are
// flattened into a single readable message.
func (v *Validator) Validate(i interface{}) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	formatted := FormatValidationErrors(validationErrors)
	fields := make([]string, 0, len(formatted))
	for field := range formatted {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	messages := make([]string, 0, len(fields))
	for _, field := range fields {
		messages = append(messages, fmt.Sprintf("%s: %s", field, formatted[field]))
	}
	return fmt.Errorf("%s", strings.Join(messages, "; "))
}

// FormatValidationErrors converts validator errors to user-friendly
// messages keyed by lowercased field name.
func FormatValidationErrors(err error) map[string]string {
	out := make(map[string]string)

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		out["_error"] = err.Error()
		return out
	}

	for _, fieldErr := range validationErrors {
		fieldName := strings.ToLower(fieldErr.Field())

		switch fieldErr.Tag() {
		case "required":
			out[fieldName] = "is required"
		case "email":
			out[fieldName] = "must be a valid email address"
		case "min":
			out[fieldName] = fmt.Sprintf("must be at least %s", fieldErr.Param())
		case "max":
			out[fieldName] = fmt.Sprintf("must be no more than %s", fieldErr.Param())
		case "gte":
			out[fieldName] = fmt.Sprintf("must be greater than or equal to %s", fieldErr.Param())
		case "lte":
			out[fieldName] = fmt.Sprintf("must be less than or equal to %s", fieldErr.Param())
		case "len":
			out[fieldName] = fmt.Sprintf("must be exactly %s characters", fieldErr.Param())
		case "oneof":
			out[fieldName] = fmt.Sprintf("must be one of: %s", fieldErr.Param())
		case "severity":
			out[fieldName] = "must be a known severity"
		case "category":
			out[fieldName] = "must be a known category"
		default:
			out[fieldName] = fmt.Sprintf("failed validation: %s", fieldErr.Tag())
		}
	}

	return out
}
