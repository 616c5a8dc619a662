package handlers

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/lockclock/internal/constants"
	"github.com/julianstephens/lockclock/internal/logger"
	"github.com/julianstephens/lockclock/internal/tui/state"
)

// OpenRefreshDialog opens the refresh interval list on the stored choice
func OpenRefreshDialog(m *state.Model) tea.Cmd {
	value, err := m.Store.GetString(constants.KeyRefreshInterval, constants.DefaultRefreshInterval)
	if err != nil {
		logger.Warn("Failed to read refresh interval", "error", err)
		value = constants.DefaultRefreshInterval
	}
	m.RefreshForm = &state.RefreshFormModel{Value: value}
	m.Form = NewRefreshForm(m.RefreshForm)
	m.FormError = ""
	m.State = constants.StateSelectRefresh
	return m.Form.Init()
}

// HandleSelectRefreshState handles the refresh interval list
func HandleSelectRefreshState(m *state.Model, msg tea.Msg) tea.Cmd {
	if isEsc(msg) {
		m.RefreshForm = nil
		closeDialog(m)
		return nil
	}

	var cmds []tea.Cmd
	cmds = append(cmds, updateForm(m, msg))

	switch m.Form.State {
	case huh.StateCompleted:
		if err := SaveRefreshSelection(m, m.RefreshForm.Value); err != nil {
			m.FormError = "Failed to save refresh interval: " + err.Error()
			m.Form.State = huh.StateNormal
			return tea.Batch(cmds...)
		}
		m.RefreshForm = nil
		closeDialog(m)
	case huh.StateAborted:
		m.RefreshForm = nil
		closeDialog(m)
	}
	return tea.Batch(cmds...)
}

// SaveRefreshSelection persists the chosen interval. The row summary follows
// from the change notification.
func SaveRefreshSelection(m *state.Model, value string) error {
	return m.Store.PutString(constants.KeyRefreshInterval, value)
}
