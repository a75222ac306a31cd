package utils

import (
	"regexp"
	"strings"
)

const (
	MinUsernameLength = 3
	MaxUsernameLength = 20
)

// Letters, digits and underscores, not starting with an underscore.
var usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9_]*$`)

// reservedUsernames could be mistaken for the service speaking.
var reservedUsernames = map[string]bool{
	"admin":   true,
	"reflect": true,
	"root":    true,
	"support": true,
	"system":  true,
}

// ValidateUsername checks the anonymous username rules: 3-20 characters,
// letters, numbers and underscores, starting with a letter or number.
func ValidateUsername(username string) error {
	username = strings.TrimSpace(username)

	switch {
	case len(username) < MinUsernameLength:
		return usernameError("Username must be at least 3 characters")
	case len(username) > MaxUsernameLength:
		return usernameError("Username must be at most 20 characters")
	case strings.HasPrefix(username, "_"):
		return usernameError("Username must start with a letter or number")
	case !usernameRegex.MatchString(username):
		return usernameError("Username can only contain letters, numbers, and underscores")
	case reservedUsernames[NormalizeUsername(username)]:
		return usernameError("This username is reserved")
	}
	return nil
}

// NormalizeUsername lowercases username for storage and lookup. Usernames
// are unique regardless of letter case.
func NormalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

// ValidationError is a rule violation on a single request field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func usernameError(msg string) error {
	return &ValidationError{Field: "username", Message: msg}
}
