package utils

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// FormatValidationError turns a gin binding error into a single client-facing
// message listing every invalid field, not just the first. Non-validator
// errors (malformed JSON, type mismatches) get a field-level message where
// the decoder knows the field, a generic one otherwise.
func FormatValidationError(err error) string {
	if errs, ok := err.(validator.ValidationErrors); ok {
		var parts []string
		for _, e := range errs {
			parts = append(parts, fieldMessage(e))
		}
		return strings.Join(parts, "; ")
	}

	if jsonErr, ok := err.(*json.UnmarshalTypeError); ok && jsonErr.Field != "" {
		return fmt.Sprintf("field '%s' has an invalid type", jsonErr.Field)
	}

	return "Invalid request payload"
}

func fieldMessage(e validator.FieldError) string {
	field := toSnakeCase(e.Field())
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("field '%s' is required", field)
	case "min":
		return fmt.Sprintf("field '%s' must be at least %s", field, e.Param())
	case "max":
		return fmt.Sprintf("field '%s' must be at most %s", field, e.Param())
	default:
		return fmt.Sprintf("field '%s' failed validation '%s'", field, e.Tag())
	}
}

// toSnakeCase maps struct field names to their JSON spelling, e.g.
// ApplicableLLM -> applicable_llm.
func toSnakeCase(name string) string {
	var sb strings.Builder
	runes := []rune(name)
	for i, r := range runes {
		if unicode.IsUpper(r) {
			if i > 0 && (!unicode.IsUpper(runes[i-1]) || (i+1 < len(runes) && !unicode.IsUpper(runes[i+1]))) {
				sb.WriteByte('_')
			}
			sb.WriteRune(unicode.ToLower(r))
		} else {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
