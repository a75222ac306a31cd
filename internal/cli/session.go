package cli

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
)

const (
	keyringService = "reflect"
	keyringUser    = "session-token"
)

var (
	// ErrNoSession is returned when neither the keyring nor the environment holds a token.
	ErrNoSession = errors.New("not logged in, run `reflect login` first")
	// ErrKeyringUnavailable is returned when the OS keyring cannot be used.
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

// LoadToken returns the stored session token, or fallback when the keyring
// holds none or cannot be reached.
func LoadToken(fallback string) (string, error) {
	token, err := keyring.Get(keyringService, keyringUser)
	switch {
	case err == nil && token != "":
		return token, nil
	case fallback != "":
		return fallback, nil
	case err == nil, errors.Is(err, keyring.ErrNotFound):
		return "", ErrNoSession
	default:
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
}

// SaveToken stores the session token in the OS keyring.
func SaveToken(token string) error {
	if token == "" {
		return errors.New("session token cannot be empty")
	}
	if err := keyring.Set(keyringService, keyringUser, token); err != nil {
		return fmt.Errorf("failed to store session in keyring: %w", err)
	}
	return nil
}

// DeleteToken forgets the stored session. A missing entry is not an error.
func DeleteToken() error {
	err := keyring.Delete(keyringService, keyringUser)
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("failed to delete session from keyring: %w", err)
	}
	return nil
}
