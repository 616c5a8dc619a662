package handlers

import (
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/lockclock/internal/constants"
	"github.com/julianstephens/lockclock/internal/models"
	"github.com/julianstephens/lockclock/internal/tui/state"
)

// NewLocationForm creates the custom location edit dialog
func NewLocationForm(fm *state.LocationFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Custom location").
				Description("City name or postal code").
				Value(&fm.Text).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("location cannot be empty")
					}
					return nil
				}),
		),
	).WithTheme(huh.ThemeDracula())
}

// NewRefreshForm creates the refresh interval list dialog
func NewRefreshForm(fm *state.RefreshFormModel) *huh.Form {
	options := make([]huh.Option[string], 0, len(constants.RefreshOptions))
	for _, opt := range constants.RefreshOptions {
		options = append(options, huh.NewOption(opt.Label, opt.Value))
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Refresh interval").
				Options(options...).
				Value(&fm.Value),
		),
	).WithTheme(huh.ThemeDracula())
}

// NewCalendarForm creates the calendar multi-select with stored choices checked
func NewCalendarForm(fm *state.CalendarFormModel, entries models.CalendarEntries) *huh.Form {
	options := make([]huh.Option[string], 0, entries.Len())
	for i, value := range entries.EntryValues {
		opt := huh.NewOption(entries.Entries[i], value)
		if slices.Contains(fm.Selected, value) {
			opt = opt.Selected(true)
		}
		options = append(options, opt)
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Calendars").
				Description("Events from the checked calendars are shown on the widget").
				Value(&fm.Selected).
				Options(options...),
		),
	).WithTheme(huh.ThemeDracula())
}

// NewWarningForm creates the location services confirmation
func NewWarningForm(fm *state.WarningFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Location services are disabled").
				Description("The widget needs the device location for weather. Enable it, or set a custom location.").
				Affirmative("Enable").
				Negative("Cancel").
				Value(&fm.Enable),
		),
	).WithTheme(huh.ThemeDracula())
}

func updateForm(m *state.Model, msg tea.Msg) tea.Cmd {
	form, cmd := m.Form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.Form = f
	}
	return cmd
}

func closeDialog(m *state.Model) {
	m.Form = nil
	m.FormError = ""
	m.State = constants.StateList
}

func isEsc(msg tea.Msg) bool {
	k, ok := msg.(tea.KeyMsg)
	return ok && k.Type == tea.KeyEsc
}
