package validate

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// rejects strings made of one repeated character, e.g. "aaaaaaaaaa"
	v.RegisterValidation("noAllRepeatingChars", noAllRepeatingChars)

	return v
}

// StructFields validates v against its `validate` struct tags and returns a
// field-to-message map usable as the errors payload of a 422 response.
func StructFields(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	fieldErrors := make(fieldErrorMap, len(validationErrors))
	for _, fieldError := range validationErrors {
		fieldErrors[fieldError.Field()] = fmt.Sprintf(
			"failed on the '%s' rule",
			fieldError.Tag(),
		)
	}

	return fieldErrors
}

type fieldErrorMap map[string]string

func (m fieldErrorMap) Error() string {
	parts := make([]string, 0, len(m))
	for field, msg := range m {
		parts = append(parts, fmt.Sprintf("%s: %s", field, msg))
	}

	return strings.Join(parts, "; ")
}

func noAllRepeatingChars(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if len(value) < 2 {
		return true
	}

	first := rune(value[0])
	for _, r := range value {
		if r != first {
			return true
		}
	}

	return false
}
