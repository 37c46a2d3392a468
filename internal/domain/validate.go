package domain

import (
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// Field length limits shared by users and cards.
const (
	NameMinLength = 2
	NameMaxLength = 30
)

var validate = validator.New()

func isValidEmail(email string) bool {
	return validate.Var(email, "required,email") == nil
}

// isValidURL accepts absolute http and https URLs with a host.
func isValidURL(link string) bool {
	return validate.Var(link, "required,http_url") == nil
}

func checkLength(field, value string) error {
	n := utf8.RuneCountInString(value)
	if n < NameMinLength || n > NameMaxLength {
		return NewValidationError(field, "must be between 2 and 30 characters", ErrValidation)
	}
	return nil
}

// NormalizeEmail trims surrounding whitespace and lower-cases an email address
// so that uniqueness checks are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
