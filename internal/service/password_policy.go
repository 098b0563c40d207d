package service

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/carson-networks/budget-tracker/internal/auth"
)

const minPasswordLength = 8

// checkPasswordPolicy requires at least eight characters, at most
// auth.MaxPasswordBytes bytes, and one upper, one lower and one digit.
func checkPasswordPolicy(password string) error {
	if utf8.RuneCountInString(password) < minPasswordLength {
		return fmt.Errorf("%w: must be at least %d characters long", ErrWeakCredential, minPasswordLength)
	}
	if len(password) > auth.MaxPasswordBytes {
		return fmt.Errorf("%w: must be at most %d bytes long", ErrWeakCredential, auth.MaxPasswordBytes)
	}

	var hasUpper, hasLower, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}

	switch {
	case !hasUpper:
		return fmt.Errorf("%w: must contain at least one uppercase letter", ErrWeakCredential)
	case !hasLower:
		return fmt.Errorf("%w: must contain at least one lowercase letter", ErrWeakCredential)
	case !hasDigit:
		return fmt.Errorf("%w: must contain at least one digit", ErrWeakCredential)
	}
	return nil
}
