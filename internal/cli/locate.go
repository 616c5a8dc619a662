package cli

import (
	"context"
	"fmt"

	"github.com/julianstephens/lockclock/internal/constants"
)

type LocateCmd struct {
	Text   string `arg:"" help:"City name or postal code."`
	Enable bool   `help:"Also switch the widget to the custom location."`
}

// Run resolves the text and stores it as typed, along with the location code.
// Nothing is stored when the lookup fails.
func (c *LocateCmd) Run(ctx *Context) error {
	lookupCtx, cancel := context.WithTimeout(context.Background(), ctx.Config.Geocoder.Timeout)
	defer cancel()

	res := ctx.Geocoder.Resolve(lookupCtx, c.Text)
	if !res.OK() {
		return fmt.Errorf("%s: %w", constants.LocationErrorToast, res.Err())
	}

	err := ctx.SignalChanges(func() error {
		if err := ctx.Store.PutString(constants.KeyCustomLocationString, c.Text); err != nil {
			return fmt.Errorf("failed to save custom location: %w", err)
		}
		if err := ctx.Store.PutString(constants.KeyCustomLocationID, res.Location.Code); err != nil {
			return fmt.Errorf("failed to save location code: %w", err)
		}
		if c.Enable {
			return ctx.Store.PutBool(constants.KeyUseCustomLocation, true)
		}
		return nil
	})
	if err != nil {
		return err
	}

	fmt.Printf("Custom location set to %q (%s, code %s)\n", c.Text, res.Location.Label(), res.Location.Code)
	return nil
}
