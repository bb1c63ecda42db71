// Package validation provides custom validation rules for the application.
package validation

import (
	"encoding/json"
	"fmt"
	"strings"

	validation "github.com/jellydator/validation"

	apperrors "github.com/reybeld94/terminal-api/internal/errors"
)

// WrapValidationError wraps validation errors as domain ErrInvalidInput while
// keeping the field-level errors reachable in the chain for response building.
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", apperrors.ErrInvalidInput, err)
}

// NotBlank validates that a string is not empty or whitespace-only
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.TrimSpace(s) != ""
	},
	validation.NewError("validation_not_blank", "cannot be blank"),
)

// PositiveID validates that an integer identifier is at least 1.
// Used for the foreign keys terminals send with clock requests.
var PositiveID = validation.Min(int64(1)).Error("must be a positive identifier")

// Decimal validates that a json.Number holds a parseable decimal value.
type Decimal struct{}

// Validate checks the value is a json.Number carrying a valid decimal.
func (d Decimal) Validate(value interface{}) error {
	n, ok := value.(json.Number)
	if !ok {
		return validation.NewError("validation_decimal", "must be a number")
	}
	if n == "" {
		return nil
	}
	if _, err := n.Float64(); err != nil {
		return validation.NewError("validation_decimal", "must be a valid decimal")
	}
	return nil
}
