// Package validator wraps go-playground/validator for declarative struct
// validation with stable, loggable error messages.
package validator

import (
	"errors"
	"fmt"

	gvalidator "github.com/go-playground/validator/v10"
)

// ErrValidationFailed is the root of every error chain returned when one or
// more validation rules are violated, so callers can detect validation
// failures with errors.Is regardless of how many fields failed.
var ErrValidationFailed = errors.New("struct validation failed")

// errStringFormat renders one message per failed field, e.g.
// "'PollingInterval': value '0s' does not satisfy the 'gt' rule".
const errStringFormat = "'%s': value '%v' does not satisfy the '%s' rule"

var validate *gvalidator.Validate

func init() {
	validate = gvalidator.New(gvalidator.WithRequiredStructEnabled())
}

// formatError converts the library's field errors into a joined error chain
// rooted at ErrValidationFailed. Non-validation errors pass through as-is.
func formatError(err error) error {
	var fieldErrors gvalidator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return err
	}

	errs := []error{ErrValidationFailed}
	for _, fieldErr := range fieldErrors {
		errs = append(errs, fmt.Errorf(errStringFormat,
			fieldErr.Field(),
			fieldErr.Value(),
			fieldErr.Tag(),
		))
	}

	return errors.Join(errs...)
}

// Validate checks v against its `validate` struct tags. It returns nil when
// every rule passes, or an error chain rooted at ErrValidationFailed listing
// each violated rule.
func Validate(v any) error {
	if err := validate.Struct(v); err != nil {
		return formatError(err)
	}

	return nil
}
