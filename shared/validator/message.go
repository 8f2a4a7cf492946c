package validator

import (
	"errors"
	"strings"

	val "github.com/go-playground/validator/v10"
)

var (
	messages = map[string]string{
		"required":     "{field} is required",
		"gte":          "{field} must be greater than or equal to {param}",
		"gt":           "{field} must be greater than {param}",
		"lte":          "{field} must be less than or equal to {param}",
		"oneof":        "{field} must be one of {param}",
		"max":          "{field} must be less than or equal to {param}",
		"min":          "{field} must be greater than or equal to {param}",
		"email":        "{field} must be a valid email address",
		"uuid":         "{field} must be a valid uuid",
		"calendardate": "{field} must be a valid date",
		"dive":         "{field} contains an invalid item",
	}
)

func message(err error) string {
	var valErrors val.ValidationErrors

	if !errors.As(err, &valErrors) {
		return err.Error()
	}

	for _, valErr := range valErrors {
		template := messages[valErr.Tag()]
		if template == "" {
			continue
		}

		field := valErr.Field()
		if field == "" {
			field = "value"
		}

		template = strings.ReplaceAll(template, "{field}", field)

		return strings.ReplaceAll(template, "{param}", valErr.Param())
	}

	return valErrors.Error()
}
