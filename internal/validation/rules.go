// Package validation provides custom validation rules for the application.
package validation

import (
	"regexp"
	"strings"

	validation "github.com/jellydator/validation"

	apperrors "github.com/allisson/fieldcrypt/internal/errors"
)

var (
	// entityTypeRegex matches policy entity type names such as "morador" or "conta_bancaria".
	entityTypeRegex = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

	// digitRegex finds at least one ASCII digit.
	digitRegex = regexp.MustCompile(`[0-9]`)
)

// WrapValidationError wraps validation errors as domain ErrInvalidInput
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// NoWhitespace validates that string doesn't contain leading/trailing whitespace
var NoWhitespace = validation.NewStringRuleWithError(
	func(s string) bool {
		return s == strings.TrimSpace(s)
	},
	validation.NewError("validation_no_whitespace", "must not contain leading or trailing whitespace"),
)

// NotBlank validates that a string is not empty after trimming whitespace
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.TrimSpace(s) != ""
	},
	validation.NewError("validation_not_blank", "must not be blank"),
)

// EntityType validates entity type names: lowercase letters, digits and underscores,
// starting with a letter.
var EntityType = validation.NewStringRuleWithError(
	func(s string) bool {
		return entityTypeRegex.MatchString(s)
	},
	validation.NewError("validation_entity_type", "must be lowercase letters, digits or underscores"),
)

// HasDigits validates that a document number contains at least one digit. Formatting
// characters are allowed since documents are normalized before hashing.
var HasDigits = validation.NewStringRuleWithError(
	func(s string) bool {
		return digitRegex.MatchString(s)
	},
	validation.NewError("validation_has_digits", "must contain at least one digit"),
)
