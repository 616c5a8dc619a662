package handlers

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/lockclock/internal/calendars"
	"github.com/julianstephens/lockclock/internal/constants"
	"github.com/julianstephens/lockclock/internal/logger"
	"github.com/julianstephens/lockclock/internal/models"
	"github.com/julianstephens/lockclock/internal/tui/state"
)

// CalendarsLoadedMsg carries the enumerated calendars
type CalendarsLoadedMsg struct {
	Entries models.CalendarEntries
}

// LoadCalendarsCmd enumerates calendars off the update loop
func LoadCalendarsCmd(ctx context.Context, p calendars.Provider) tea.Cmd {
	return func() tea.Msg {
		return CalendarsLoadedMsg{Entries: calendars.FindEntries(ctx, p)}
	}
}

// HandleCalendarsLoaded fills the calendar row
func HandleCalendarsLoaded(m *state.Model, msg CalendarsLoadedMsg) {
	m.CalendarEntries = msg.Entries
	m.CalendarsLoaded = true
	m.Prefs.SetEnabled(constants.KeyCalendarList, true)
	refreshCalendarSummary(m)
}

func refreshCalendarSummary(m *state.Model) {
	if !m.CalendarsLoaded {
		return
	}
	selected, err := m.Store.GetStringSet(constants.KeyCalendarList)
	if err != nil {
		logger.Warn("Failed to read calendar selection", "error", err)
	}
	m.Prefs.SetSummary(constants.KeyCalendarList, m.CalendarEntries.Summary(selected))
}

// OpenCalendarDialog opens the multi-select. Nothing opens without calendars.
func OpenCalendarDialog(m *state.Model) tea.Cmd {
	if !m.CalendarsLoaded || m.CalendarEntries.Len() == 0 {
		return nil
	}
	selected, err := m.Store.GetStringSet(constants.KeyCalendarList)
	if err != nil {
		logger.Warn("Failed to read calendar selection", "error", err)
		selected = []string{}
	}
	m.CalendarForm = &state.CalendarFormModel{Selected: selected}
	m.Form = NewCalendarForm(m.CalendarForm, m.CalendarEntries)
	m.FormError = ""
	m.State = constants.StateSelectCalendars
	return m.Form.Init()
}

// HandleSelectCalendarsState handles the calendar multi-select
func HandleSelectCalendarsState(m *state.Model, msg tea.Msg) tea.Cmd {
	if isEsc(msg) {
		m.CalendarForm = nil
		closeDialog(m)
		return nil
	}

	var cmds []tea.Cmd
	cmds = append(cmds, updateForm(m, msg))

	switch m.Form.State {
	case huh.StateCompleted:
		if err := SaveCalendarSelection(m, m.CalendarForm.Selected); err != nil {
			m.FormError = "Failed to save calendars: " + err.Error()
			m.Form.State = huh.StateNormal
			return tea.Batch(cmds...)
		}
		m.CalendarForm = nil
		closeDialog(m)
	case huh.StateAborted:
		m.CalendarForm = nil
		closeDialog(m)
	}
	return tea.Batch(cmds...)
}

// SaveCalendarSelection persists the checked calendar IDs
func SaveCalendarSelection(m *state.Model, selected []string) error {
	if err := m.Store.PutStringSet(constants.KeyCalendarList, selected); err != nil {
		return err
	}
	refreshCalendarSummary(m)
	return nil
}
