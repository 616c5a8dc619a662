package handlers

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/lockclock/internal/constants"
	"github.com/julianstephens/lockclock/internal/logger"
	"github.com/julianstephens/lockclock/internal/models"
	"github.com/julianstephens/lockclock/internal/notifier"
	"github.com/julianstephens/lockclock/internal/tui/components/preferences"
	"github.com/julianstephens/lockclock/internal/tui/state"
)

// SignalSentMsg reports the outcome of a widget refresh signal
type SignalSentMsg struct {
	Key string
	Err error
}

// HandleActivate dispatches an activated preference row
func HandleActivate(m *state.Model, msg preferences.ActivateMsg) tea.Cmd {
	if msg.Kind == preferences.RowToggle {
		return ToggleRow(m, msg.Key)
	}
	switch msg.Key {
	case constants.KeyCustomLocationString:
		return OpenLocationDialog(m)
	case constants.KeyRefreshInterval:
		return OpenRefreshDialog(m)
	case constants.KeyCalendarList:
		return OpenCalendarDialog(m)
	}
	return nil
}

// ToggleRow flips a checkbox preference and persists it
func ToggleRow(m *state.Model, key string) tea.Cmd {
	row, ok := m.Prefs.Row(key)
	if !ok {
		return nil
	}
	value := !row.Checked
	if err := m.Store.PutBool(key, value); err != nil {
		logger.Error("Failed to save setting", "key", key, "error", err)
		m.FormError = "Failed to save setting: " + err.Error()
		return nil
	}
	m.FormError = ""
	m.Prefs.SetChecked(key, value)
	if key == constants.KeyUseCustomLocation {
		RefreshLocationSummary(m)
	}
	return nil
}

// RefreshLocationSummary recomputes the custom location row from the toggle
// and the stored string.
func RefreshLocationSummary(m *state.Model) {
	row, _ := m.Prefs.Row(constants.KeyUseCustomLocation)
	stored, err := m.Store.Contains(constants.KeyCustomLocationString)
	if err != nil {
		logger.Warn("Failed to read custom location", "error", err)
	}
	text, err := m.Store.GetString(constants.KeyCustomLocationString, "")
	if err != nil {
		logger.Warn("Failed to read custom location", "error", err)
		stored = false
	}
	m.Prefs.SetSummary(constants.KeyCustomLocationString, models.LocationSummary(row.Checked, text, stored))
	m.Prefs.SetEnabled(constants.KeyCustomLocationString, row.Checked)
}

// HandleSettingChanged syncs the row of a changed key and signals the widget
func HandleSettingChanged(m *state.Model, msg state.SettingChangedMsg) tea.Cmd {
	switch msg.Key {
	case constants.KeyUseMetric, constants.KeyShowLocation, constants.KeyShowTimestamp:
		if v, err := m.Store.GetBool(msg.Key, true); err == nil {
			m.Prefs.SetChecked(msg.Key, v)
		}
	case constants.KeyUseCustomLocation:
		if v, err := m.Store.GetBool(msg.Key, constants.DefaultUseCustomLocation); err == nil {
			m.Prefs.SetChecked(msg.Key, v)
		}
		RefreshLocationSummary(m)
	case constants.KeyCustomLocationString:
		RefreshLocationSummary(m)
	case constants.KeyRefreshInterval:
		value, err := m.Store.GetString(msg.Key, constants.DefaultRefreshInterval)
		if err != nil {
			logger.Warn("Failed to read refresh interval", "error", err)
			break
		}
		m.Prefs.SetSummary(msg.Key, constants.RefreshLabel(value))
	case constants.KeyCalendarList:
		refreshCalendarSummary(m)
	}
	return SignalCmd(m.Signaler, msg.Key)
}

// SignalCmd tells the widget renderer that key changed
func SignalCmd(sig notifier.Signaler, key string) tea.Cmd {
	if sig == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), constants.WidgetSignalTimeout)
		defer cancel()
		return SignalSentMsg{Key: key, Err: sig.Notify(ctx, key)}
	}
}

// HandleSignalSent logs failed signals. Signals are not retried.
func HandleSignalSent(msg SignalSentMsg) {
	switch {
	case msg.Err == nil:
	case errors.Is(msg.Err, notifier.ErrRendererNotRunning):
		logger.Debug("Widget not running, skipped refresh signal", "key", msg.Key)
	default:
		logger.Warn("Failed to signal widget", "key", msg.Key, "error", msg.Err)
	}
}
