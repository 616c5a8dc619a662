package handlers

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/lockclock/internal/constants"
	"github.com/julianstephens/lockclock/internal/logger"
	"github.com/julianstephens/lockclock/internal/storage"
	"github.com/julianstephens/lockclock/internal/tui/state"
)

// ShouldWarn reports whether location services are off while the widget
// relies on the device location.
func ShouldWarn(store storage.Provider) bool {
	enabled, err := store.LocationProviderEnabled()
	if err != nil {
		logger.Warn("Failed to read location provider state", "error", err)
		return false
	}
	custom, err := store.GetBool(constants.KeyUseCustomLocation, constants.DefaultUseCustomLocation)
	if err != nil {
		logger.Warn("Failed to read custom location toggle", "error", err)
		return false
	}
	return !enabled && !custom
}

// OpenLocationWarning shows the location services confirmation
func OpenLocationWarning(m *state.Model) tea.Cmd {
	m.WarningForm = &state.WarningFormModel{Enable: true}
	m.Form = NewWarningForm(m.WarningForm)
	m.State = constants.StateLocationWarning
	return m.Form.Init()
}

// HandleLocationWarningState handles the location services confirmation
func HandleLocationWarningState(m *state.Model, msg tea.Msg) tea.Cmd {
	if isEsc(msg) {
		ApplyWarningChoice(m, false)
		return nil
	}

	var cmds []tea.Cmd
	cmds = append(cmds, updateForm(m, msg))

	switch m.Form.State {
	case huh.StateCompleted:
		ApplyWarningChoice(m, m.WarningForm.Enable)
	case huh.StateAborted:
		ApplyWarningChoice(m, false)
	}
	return tea.Batch(cmds...)
}

// ApplyWarningChoice enables the location provider when accepted and
// dismisses the warning either way.
func ApplyWarningChoice(m *state.Model, accept bool) {
	m.WarningForm = nil
	closeDialog(m)
	if !accept {
		return
	}
	if err := m.Store.SetLocationProviderEnabled(true); err != nil {
		logger.Error("Failed to enable location provider", "error", err)
		m.FormError = "Failed to enable location services: " + err.Error()
		return
	}
	logger.Info("Location provider enabled")
}
