// Package validation holds input format checks shared by handlers.
package validation

import (
	"fmt"
	"regexp"
	"unicode"
)

const (
	minPasswordLength = 12
	maxPasswordLength = 128
	minUsernameLength = 3
	maxUsernameLength = 30
)

var usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// ValidateUsername checks length and character set. Usernames cannot start
// or end with a separator so they read cleanly in audit logs.
func ValidateUsername(username string) error {
	if len(username) < minUsernameLength || len(username) > maxUsernameLength {
		return fmt.Errorf("username must be %d-%d characters", minUsernameLength, maxUsernameLength)
	}
	if !usernameRegex.MatchString(username) {
		return fmt.Errorf("username may only contain letters, numbers, hyphens, and underscores")
	}
	first, last := username[0], username[len(username)-1]
	if first == '-' || first == '_' || last == '-' || last == '_' {
		return fmt.Errorf("username cannot start or end with a hyphen or underscore")
	}
	return nil
}

// ValidatePassword enforces length and character-class requirements. Letter
// classes are unicode-aware so non-ASCII passwords are not penalized.
func ValidatePassword(password string) error {
	runes := []rune(password)
	if len(runes) < minPasswordLength {
		return fmt.Errorf("password must be at least %d characters", minPasswordLength)
	}
	if len(runes) > maxPasswordLength {
		return fmt.Errorf("password must be at most %d characters", maxPasswordLength)
	}

	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, r := range runes {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			hasSpecial = true
		}
	}
	if !hasUpper || !hasLower || !hasDigit || !hasSpecial {
		return fmt.Errorf("password must contain an uppercase letter, a lowercase letter, a digit, and a special character")
	}
	return nil
}
