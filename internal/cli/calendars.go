package cli

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/julianstephens/lockclock/internal/calendars"
	"github.com/julianstephens/lockclock/internal/constants"
	"github.com/julianstephens/lockclock/internal/models"
	"github.com/julianstephens/lockclock/internal/storage"
)

type CalendarsListCmd struct{}

func (c *CalendarsListCmd) Run(ctx *Context) error {
	entries := calendars.FindEntries(context.Background(), ctx.Calendars)
	if entries.Len() == 0 {
		fmt.Println(constants.NoCalendarsSummary)
		return nil
	}

	selected, err := ctx.Store.GetStringSet(constants.KeyCalendarList)
	if err != nil {
		return fmt.Errorf("failed to get calendar selection: %w", err)
	}
	for i, id := range entries.EntryValues {
		mark := "[ ]"
		if slices.Contains(selected, id) {
			mark = "[x]"
		}
		fmt.Printf("%s %s (%s)\n", mark, entries.Entries[i], id)
	}
	return nil
}

type CalendarsAddCmd struct {
	ID   string `arg:"" help:"Calendar ID."`
	Name string `arg:"" help:"Display name."`
}

func (c *CalendarsAddCmd) Run(ctx *Context) error {
	if err := ctx.Store.AddCalendar(models.Calendar{ID: c.ID, DisplayName: c.Name}); err != nil {
		return fmt.Errorf("failed to add calendar: %w", err)
	}
	fmt.Printf("Added calendar %s (%s)\n", c.Name, c.ID)
	return nil
}

type CalendarsRemoveCmd struct {
	ID string `arg:"" help:"Calendar ID."`
}

func (c *CalendarsRemoveCmd) Run(ctx *Context) error {
	if err := ctx.Store.RemoveCalendar(c.ID); err != nil {
		if errors.Is(err, storage.ErrCalendarNotFound) {
			return fmt.Errorf("no calendar with ID %s", c.ID)
		}
		return fmt.Errorf("failed to remove calendar: %w", err)
	}
	fmt.Printf("Removed calendar %s\n", c.ID)
	return nil
}

type CalendarsSelectCmd struct {
	IDs []string `arg:"" optional:"" help:"IDs of the calendars to show. Omit to show none."`
}

func (c *CalendarsSelectCmd) Run(ctx *Context) error {
	entries := calendars.FindEntries(context.Background(), ctx.Calendars)
	for _, id := range c.IDs {
		if !slices.Contains(entries.EntryValues, id) {
			return fmt.Errorf("unknown calendar ID %s", id)
		}
	}

	selected := c.IDs
	if selected == nil {
		selected = []string{}
	}
	if err := ctx.SignalChanges(func() error {
		return ctx.Store.PutStringSet(constants.KeyCalendarList, selected)
	}); err != nil {
		return fmt.Errorf("failed to save calendar selection: %w", err)
	}
	fmt.Printf("Calendars: %s\n", entries.Summary(selected))
	return nil
}
