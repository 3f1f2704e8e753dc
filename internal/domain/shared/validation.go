package shared

import (
	"errors"
	"sort"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ValidationError converts an ozzo-validation error into an INVALID_INPUT domain
// error. Field errors are reported in a stable order.
func ValidationError(err error) error {
	if err == nil {
		return nil
	}

	var fieldErrs validation.Errors
	if errors.As(err, &fieldErrs) {
		keys := make([]string, 0, len(fieldErrs))
		for k := range fieldErrs {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			if fieldErrs[k] == nil {
				continue
			}
			parts = append(parts, k+": "+fieldErrs[k].Error())
		}
		if len(parts) == 0 {
			return nil
		}
		return NewDomainError("INVALID_INPUT", strings.Join(parts, "; "))
	}

	var internal validation.InternalError
	if errors.As(err, &internal) {
		return err
	}

	return NewDomainError("INVALID_INPUT", err.Error())
}

// ValidateField validates a single named value and returns a domain error
func ValidateField(name string, value interface{}, rules ...validation.Rule) error {
	return ValidationError(validation.Errors{
		name: validation.Validate(value, rules...),
	}.Filter())
}
