// package validation provides helper functions for request data validation.
// It uses the go-playground/validator library and includes custom validation
// rules.
package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/stazhbg/internship-portal/internal/domain"
)

var validate = validator.New()

func init() {
	// "custom_id" keeps entity and session identifiers to URL-safe
	// characters. Empty strings pass so 'required' can report them.
	err := validate.RegisterValidation("custom_id", func(fl validator.FieldLevel) bool {
		if fl.Field().String() == "" {
			return true
		}

		re := regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

		return re.MatchString(fl.Field().String())
	})
	if err != nil {
		panic(fmt.Sprintf("failed to register custom validation: %v", err))
	}

	// "role" restricts a field to the closed role set.
	err = validate.RegisterValidation("role", func(fl validator.FieldLevel) bool {
		if fl.Field().String() == "" {
			return true
		}

		return domain.Role(fl.Field().String()).IsValid()
	})
	if err != nil {
		panic(fmt.Sprintf("failed to register custom validation: %v", err))
	}

	// "phase_type" restricts a field to the closed phase type set.
	err = validate.RegisterValidation("phase_type", func(fl validator.FieldLevel) bool {
		if fl.Field().String() == "" {
			return true
		}

		return domain.PhaseType(fl.Field().String()).IsValid()
	})
	if err != nil {
		panic(fmt.Sprintf("failed to register custom validation: %v", err))
	}
}

// ValidationError holds a slice of user-facing validation messages.
type ValidationError struct {
	Errors []string
}

func (v *ValidationError) Error() string {
	return strings.Join(v.Errors, ", ")
}

// ValidateStruct checks a struct against its validation tags and returns a
// *ValidationError with user-friendly messages on failure.
func ValidateStruct(s interface{}) error {
	if err := validate.Struct(s); err != nil {
		var validationErrors []string

		for _, err := range err.(validator.ValidationErrors) {
			var message string

			switch err.Tag() {
			case "custom_id":
				message = fmt.Sprintf(
					"field '%s' must contain only letters, numbers, hyphens, and underscores",
					err.Field(),
				)
			case "role":
				message = fmt.Sprintf(
					"field '%s' must be one of: student, company, admin",
					err.Field(),
				)
			case "phase_type":
				message = fmt.Sprintf(
					"field '%s' is not a known phase type",
					err.Field(),
				)
			default:
				message = fmt.Sprintf(
					"field '%s' failed on the '%s' tag",
					err.Field(),
					err.Tag(),
				)
			}
			validationErrors = append(validationErrors, message)
		}

		return &ValidationError{Errors: validationErrors}
	}

	return nil
}
