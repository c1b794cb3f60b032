package auth

import (
	"errors"
	"unicode"
)

const minPasswordLength = 8

// ValidatePasswordStrength applies the password policy for new passwords.
// Passwords must be at least 8 characters and not entirely numeric.
func ValidatePasswordStrength(password string) error {
	if len(password) < minPasswordLength {
		return errors.New("password must be at least 8 characters")
	}
	if len(password) > maxPasswordLength {
		return errors.New("password exceeds maximum length")
	}

	allDigits := true
	for _, r := range password {
		if !unicode.IsDigit(r) {
			allDigits = false
			break
		}
	}
	if allDigits {
		return errors.New("password cannot be entirely numeric")
	}

	return nil
}
