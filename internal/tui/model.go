package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/lockclock/internal/constants"
	"github.com/julianstephens/lockclock/internal/tui/handlers"
	"github.com/julianstephens/lockclock/internal/tui/state"
)

// Model is the widget settings screen
type Model struct {
	*state.Model
	initCmd tea.Cmd
}

// NewModel reads the stored settings, subscribes to changes and opens the
// location services warning when it applies.
func NewModel(deps state.Deps) Model {
	s := state.New(deps)
	m := Model{Model: &s}
	if handlers.ShouldWarn(deps.Store) {
		m.initCmd = handlers.OpenLocationWarning(m.Model)
	}
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.Session.WaitForChange(),
		handlers.LoadCalendarsCmd(m.Session.Context(), m.Calendars),
		m.initCmd,
	)
}

// Close ends the screen: the store subscription is released and any running
// lookup is cancelled. Results arriving afterwards are dropped.
func (m Model) Close() {
	m.CancelLookup()
	m.Session.Close()
}

func (m Model) ShortHelp() []key.Binding {
	if m.State != constants.StateList {
		return []key.Binding{m.Keys.Back}
	}
	return []key.Binding{m.Keys.Up, m.Keys.Down, m.Keys.Activate, m.Keys.Quit, m.Keys.Help}
}

func (m Model) FullHelp() [][]key.Binding {
	if m.State != constants.StateList {
		return [][]key.Binding{{m.Keys.Back}}
	}
	return [][]key.Binding{
		m.Prefs.HelpKeys(),
		{m.Keys.Help, m.Keys.Quit},
	}
}
