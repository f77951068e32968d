package exceptions

import (
	"errors"
	"mediscan-service/internal/pkg/constvars"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FormatFirstValidationError renders the first failed field as
// "<field> <message>", the only detail a client sees for a 400.
func FormatFirstValidationError(err error) string {
	if err == nil {
		return constvars.ErrClientCannotProcessRequest
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) || len(validationErrors) == 0 {
		return constvars.ErrDevInvalidInput
	}

	field := validationErrors[0]
	return strings.ToLower(field.Field()) + " " + describeTag(field.Tag(), field.Param())
}

func describeTag(tag, param string) string {
	message, ok := constvars.CustomValidationErrorMessages[tag]
	if !ok {
		return "is invalid"
	}
	if !constvars.TagsWithParams[tag] {
		return message
	}
	if tag == "oneof" {
		param = strings.Join(strings.Fields(param), ", ")
	}
	return strings.Replace(message, "%s", param, 1)
}
