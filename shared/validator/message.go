package validator

import (
	"errors"
	"strings"

	val "github.com/go-playground/validator/v10"
)

var messages = map[string]string{
	"required": "{field} is required",
	"oneof":    "{field} must be one of {param}",
	"max":      "{field} must be at most {param}",
	"min":      "{field} must be at least {param}",
	"unique":   "{field} must not contain duplicates",
	"enum":     "{field} has an unsupported value",
	"date":     "{field} must be a date formatted as YYYY-MM-DD",
	"notblank": "{field} must not be blank",
	"numeric":  "{field} must contain only digits",
}

// message renders the first violation that has a template; the rest fall back to the validator's own text.
func message(err error) string {
	var fieldErrs val.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err.Error()
	}

	for _, fieldErr := range fieldErrs {
		tmpl, ok := messages[fieldErr.Tag()]
		if !ok {
			continue
		}

		return strings.NewReplacer("{field}", fieldErr.Field(), "{param}", fieldErr.Param()).Replace(tmpl)
	}

	return fieldErrs.Error()
}
