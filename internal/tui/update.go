package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/lockclock/internal/constants"
	"github.com/julianstephens/lockclock/internal/tui/components/preferences"
	"github.com/julianstephens/lockclock/internal/tui/components/toast"
	"github.com/julianstephens/lockclock/internal/tui/handlers"
	"github.com/julianstephens/lockclock/internal/tui/state"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Help.Width = msg.Width
		m.Prefs.SetSize(msg.Width-4, msg.Height-6)
		return m, nil

	case state.SettingChangedMsg:
		return m, tea.Batch(handlers.HandleSettingChanged(m.Model, msg), m.Session.WaitForChange())

	case handlers.SignalSentMsg:
		handlers.HandleSignalSent(msg)
		return m, nil

	case handlers.GeocodeResultMsg:
		return m, handlers.HandleGeocodeResult(m.Model, msg)

	case handlers.CalendarsLoadedMsg:
		handlers.HandleCalendarsLoaded(m.Model, msg)
		return m, nil

	case toast.ExpiredMsg:
		m.Toast = m.Toast.Update(msg)
		return m, nil

	case preferences.ActivateMsg:
		return m, handlers.HandleActivate(m.Model, msg)

	case tea.KeyMsg:
		if handled, cmd := handlers.HandleGlobalKeys(m.Model, msg); handled {
			if m.Quitting {
				m.Close()
			}
			return m, cmd
		}
	}

	var progressCmd tea.Cmd
	m.Progress, progressCmd = m.Progress.Update(msg)

	var cmd tea.Cmd
	switch m.State {
	case constants.StateEditLocation:
		cmd = handlers.HandleEditLocationState(m.Model, msg)
	case constants.StateSelectCalendars:
		cmd = handlers.HandleSelectCalendarsState(m.Model, msg)
	case constants.StateSelectRefresh:
		cmd = handlers.HandleSelectRefreshState(m.Model, msg)
	case constants.StateLocationWarning:
		cmd = handlers.HandleLocationWarningState(m.Model, msg)
	default:
		m.Prefs, cmd = m.Prefs.Update(msg)
	}
	return m, tea.Batch(progressCmd, cmd)
}
