package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/julianstephens/lockclock/internal/config"
)

type InitCmd struct{}

func (c *InitCmd) Run(ctx *Context) error {
	if err := ctx.Store.Init(); err != nil {
		return err
	}
	fmt.Printf("Initialized lockclock storage at: %s\n", ctx.Store.GetConfigPath())

	if ctx.ProvidersPath == "" {
		return nil
	}
	if _, err := os.Stat(ctx.ProvidersPath); err == nil {
		return nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to access provider config: %w", err)
	}
	if err := config.Save(ctx.ProvidersPath, ctx.Config); err != nil {
		return err
	}
	fmt.Printf("Wrote provider config to: %s\n", ctx.ProvidersPath)
	return nil
}
