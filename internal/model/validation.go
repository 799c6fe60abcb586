package model

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidField is returned when an applicant attribute fails validation.
var ErrInvalidField = errors.New("invalid applicant field")

var (
	personNamePattern = regexp.MustCompile(`^[\p{L}\p{N}][\p{L}\p{N} .'\-]*$`)
	phonePattern      = regexp.MustCompile(`^[0-9]{3,}$`)

	validate = newValidator()
)

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("personname", func(fl validator.FieldLevel) bool {
		return personNamePattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("status", func(fl validator.FieldLevel) bool {
		_, err := ParseStatus(fl.Field().String())
		return err == nil
	})
	return v
}

// ValidateFields checks every attribute against its value rules.
func ValidateFields(fields ApplicantFields) error {
	if err := validate.Struct(fields); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// formatValidationError turns validator errors into one readable message.
func formatValidationError(err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fmt.Errorf("%w: %v", ErrInvalidField, err)
	}
	messages := make([]string, 0, len(validationErrors))
	for _, fe := range validationErrors {
		messages = append(messages, formatFieldError(fe))
	}
	return fmt.Errorf("%w: %s", ErrInvalidField, strings.Join(messages, "; "))
}

func formatFieldError(fe validator.FieldError) string {
	field := fieldLabel(fe.StructField())

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "personname":
		return fmt.Sprintf("%s should only contain letters, digits, spaces and . ' -", field)
	case "phone":
		return fmt.Sprintf("%s should only contain digits and be at least 3 digits long", field)
	case "status":
		return fmt.Sprintf("%s must be one of %s", field, joinStatuses())
	case "alphanum":
		return fmt.Sprintf("%s should be alphanumeric", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

func fieldLabel(structField string) string {
	switch {
	case structField == "JobPosition":
		return "job position"
	case strings.HasPrefix(structField, "Tags"):
		return "tag"
	default:
		return strings.ToLower(structField)
	}
}
