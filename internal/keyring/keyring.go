package keyring

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"

	"github.com/julianstephens/lockclock/internal/constants"
)

var (
	// ErrNotFound is returned when no password is stored in the keyring
	ErrNotFound = errors.New("credentials not found in keyring")
	// ErrKeyringUnavailable is returned when the OS keyring is not available
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

func account(username string) string {
	if username == "" {
		return constants.DefaultKeyringUser
	}
	return constants.DefaultKeyringUser + ":" + username
}

// GetCalDAVPassword retrieves the CalDAV password for username from the OS keyring.
// Returns ErrNotFound if no password is stored.
func GetCalDAVPassword(username string) (string, error) {
	secret, err := keyring.Get(constants.AppName, account(username))
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return secret, nil
}

// SetCalDAVPassword stores the CalDAV password for username in the OS keyring
func SetCalDAVPassword(username, password string) error {
	if password == "" {
		return errors.New("password cannot be empty")
	}
	if err := keyring.Set(constants.AppName, account(username), password); err != nil {
		return fmt.Errorf("failed to store credentials in keyring: %w", err)
	}
	return nil
}

// DeleteCalDAVPassword removes the CalDAV password for username from the OS keyring
func DeleteCalDAVPassword(username string) error {
	if err := keyring.Delete(constants.AppName, account(username)); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete credentials from keyring: %w", err)
	}
	return nil
}

// IsAvailable checks if the OS keyring is available on the current system.
// This is a best-effort check.
func IsAvailable() bool {
	_, err := keyring.Get(constants.AppName, "test-availability")
	return err == nil || errors.Is(err, keyring.ErrNotFound)
}
