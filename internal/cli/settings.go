package cli

import (
	"fmt"
	"strings"

	"github.com/julianstephens/lockclock/internal/constants"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`

	UseMetric         *bool   `help:"Show temperatures in metric units."`
	ShowLocation      *bool   `help:"Show the location name on the widget."`
	ShowTimestamp     *bool   `help:"Show the weather update time."`
	UseCustomLocation *bool   `help:"Use the custom location instead of the device location."`
	RefreshInterval   *string `help:"Weather refresh interval in minutes (15, 30, 60, 120 or 240)."`
}

func (c *SettingsCmd) Run(ctx *Context) error {
	if c.List {
		return c.list(ctx)
	}

	if c.RefreshInterval != nil && !constants.IsRefreshValue(*c.RefreshInterval) {
		return fmt.Errorf("invalid refresh interval %q", *c.RefreshInterval)
	}

	type boolFlag struct {
		key   string
		value *bool
	}
	bools := []boolFlag{
		{constants.KeyUseMetric, c.UseMetric},
		{constants.KeyShowLocation, c.ShowLocation},
		{constants.KeyShowTimestamp, c.ShowTimestamp},
		{constants.KeyUseCustomLocation, c.UseCustomLocation},
	}

	updated := c.RefreshInterval != nil
	for _, f := range bools {
		if f.value != nil {
			updated = true
		}
	}
	if !updated {
		fmt.Println("No changes specified. Use --list to view settings or flags to update them.")
		return nil
	}

	err := ctx.SignalChanges(func() error {
		for _, f := range bools {
			if f.value == nil {
				continue
			}
			if err := ctx.Store.PutBool(f.key, *f.value); err != nil {
				return fmt.Errorf("failed to save %s: %w", f.key, err)
			}
		}
		if c.RefreshInterval != nil {
			if err := ctx.Store.PutString(constants.KeyRefreshInterval, *c.RefreshInterval); err != nil {
				return fmt.Errorf("failed to save refresh interval: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	fmt.Println("Settings updated successfully.")
	return nil
}

func (c *SettingsCmd) list(ctx *Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	enabled, err := ctx.Store.LocationProviderEnabled()
	if err != nil {
		return fmt.Errorf("failed to get location services state: %w", err)
	}

	calendars := "none"
	if len(settings.Calendars) > 0 {
		calendars = strings.Join(settings.Calendars, ", ")
	}

	fmt.Println("Weather:")
	fmt.Printf("  Use Metric:            %v\n", settings.UseMetric)
	fmt.Printf("  Show Location:         %v\n", settings.ShowLocation)
	fmt.Printf("  Show Timestamp:        %v\n", settings.ShowTimestamp)
	fmt.Printf("  Use Custom Location:   %v\n", settings.UseCustomLocation)
	fmt.Printf("  Custom Location:       %s\n", settings.LocationSummary())
	fmt.Printf("  Refresh Interval:      %s\n", constants.RefreshLabel(settings.RefreshInterval))
	fmt.Println("\nCalendar:")
	fmt.Printf("  Selected Calendars:    %s\n", calendars)
	fmt.Println("\nSystem:")
	fmt.Printf("  Location Services:     %v\n", enabled)
	return nil
}
