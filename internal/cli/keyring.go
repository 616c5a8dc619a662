package cli

import (
	"errors"
	"fmt"

	"github.com/julianstephens/lockclock/internal/keyring"
)

// KeyringSetCmd stores the CalDAV password in the OS keyring
type KeyringSetCmd struct {
	Password string `arg:"" help:"CalDAV password to store in the keyring."`
}

func (cmd *KeyringSetCmd) Run(ctx *Context) error {
	if cmd.Password == "" {
		return errors.New("password cannot be empty")
	}
	user := ctx.Config.Calendar.CalDAVUsername
	if err := keyring.SetCalDAVPassword(user, cmd.Password); err != nil {
		return fmt.Errorf("failed to store password in keyring: %w", err)
	}
	fmt.Println("✓ CalDAV password stored in OS keyring")
	return nil
}

// KeyringDeleteCmd removes the CalDAV password from the OS keyring
type KeyringDeleteCmd struct{}

func (cmd *KeyringDeleteCmd) Run(ctx *Context) error {
	user := ctx.Config.Calendar.CalDAVUsername
	if err := keyring.DeleteCalDAVPassword(user); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return errors.New("no CalDAV password found in keyring")
		}
		return fmt.Errorf("failed to delete password from keyring: %w", err)
	}
	fmt.Println("✓ CalDAV password removed from OS keyring")
	return nil
}
