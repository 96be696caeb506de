package errs

import (
	"errors"
	"sort"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// FromValidation converts an ozzo-validation result into an *ApiErr naming
// the first offending field in sorted order. prefix is prepended to field
// names, e.g. "media[2].".
func FromValidation(err error, prefix string) error {
	if err == nil {
		return nil
	}

	var fieldErrs validation.Errors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return NewValidationError(strings.TrimSuffix(prefix, "."), err.Error())
	}

	fields := make([]string, 0, len(fieldErrs))
	for field := range fieldErrs {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	field := fields[0]
	fieldErr := fieldErrs[field]

	var ozzoErr validation.Error
	if errors.As(fieldErr, &ozzoErr) && ozzoErr.Code() == validation.ErrRequired.Code() {
		return NewMissingRequiredFieldError(prefix + field)
	}
	return NewInvalidFieldError(prefix+field, fieldErr.Error())
}
