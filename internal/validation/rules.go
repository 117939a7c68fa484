// Package validation provides custom validation rules for the application.
package validation

import (
	"regexp"
	"strings"

	validation "github.com/jellydator/validation"

	apperrors "github.com/regwatch/securelink/internal/errors"
)

// tokenRegex matches the unpadded base64url alphabet used for link tokens.
var tokenRegex = regexp.MustCompile(`^[A-Za-z0-9_\-]{43}$`)

// WrapValidationError wraps validation errors as domain ErrInvalidInput.
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// Token validates the shape of a link token: 43 unpadded base64url characters.
// Malformed tokens are rejected before any storage lookup.
var Token = validation.NewStringRuleWithError(
	func(s string) bool {
		return tokenRegex.MatchString(s)
	},
	validation.NewError("validation_token_format", "must be a valid link token"),
)

// NotBlank validates that a string is not empty after trimming whitespace.
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.TrimSpace(s) != ""
	},
	validation.NewError("validation_not_blank", "must not be blank"),
)
