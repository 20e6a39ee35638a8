package validator

import (
	"errors"
	"strings"

	val "github.com/go-playground/validator/v10"
)

var (
	messages = map[string]string{
		"required":    "{field} is required",
		"gte":         "{field} must be greater than or equal to {param}",
		"lte":         "{field} must be less than or equal to {param}",
		"oneof":       "{field} must be one of {param}",
		"max":         "{field} must be less than or equal to {param}",
		"min":         "{field} must be greater than or equal to {param}",
		"email":       "{field} must be a valid email address",
		"gt":          "{field} must be greater than {param}",
		"len":         "{field} must be {param} characters long",
		"date":        "{field} must be a date in YYYY-MM-DD format",
		"month":       "{field} must be a month in YYYY-MM format",
		"amount":      "{field} must be a non-negative amount with at most two decimals",
		"uuid":        "{field} must be a valid UUID",
		"mimetypes":   "{field} must be one of {param}",
		"maxfilesize": "{field} must be at most {param} MB",
		"e164":        "{field} must be a phone number in international format",
	}
)

// message renders the first validation failure that has a friendly template.
func message(err error) string {
	var valErrors val.ValidationErrors
	if !errors.As(err, &valErrors) {
		return err.Error()
	}

	for _, valErr := range valErrors {
		template, ok := messages[valErr.Tag()]
		if !ok {
			continue
		}

		return strings.NewReplacer("{field}", valErr.Field(), "{param}", valErr.Param()).Replace(template)
	}

	return valErrors.Error()
}
