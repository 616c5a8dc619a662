package handlers

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/google/uuid"

	"github.com/julianstephens/lockclock/internal/constants"
	"github.com/julianstephens/lockclock/internal/geocode"
	"github.com/julianstephens/lockclock/internal/logger"
	"github.com/julianstephens/lockclock/internal/tui/state"
)

var errNoGeocoder = errors.New("no geocoder configured")

// GeocodeResultMsg carries a finished lookup back to the update loop
type GeocodeResultMsg struct {
	Token  string
	Query  string
	Result geocode.Result
}

// OpenLocationDialog opens the edit dialog pre-filled with the stored text
func OpenLocationDialog(m *state.Model) tea.Cmd {
	text, err := m.Store.GetString(constants.KeyCustomLocationString, "")
	if err != nil {
		logger.Warn("Failed to read custom location", "error", err)
	}
	m.LocationForm = &state.LocationFormModel{Text: text}
	m.Form = NewLocationForm(m.LocationForm)
	m.FormError = ""
	m.State = constants.StateEditLocation
	return m.Form.Init()
}

// HandleEditLocationState handles the custom location dialog. Keys other
// than esc are ignored while a lookup is running.
func HandleEditLocationState(m *state.Model, msg tea.Msg) tea.Cmd {
	if isEsc(msg) {
		CloseLocationDialog(m)
		return nil
	}
	if _, ok := msg.(tea.KeyMsg); ok && m.PendingLookup != nil {
		return nil
	}

	var cmds []tea.Cmd
	cmds = append(cmds, updateForm(m, msg))

	switch m.Form.State {
	case huh.StateCompleted:
		cmds = append(cmds, SubmitLocation(m, m.LocationForm.Text))
	case huh.StateAborted:
		CloseLocationDialog(m)
	}
	return tea.Batch(cmds...)
}

// CloseLocationDialog closes the dialog and abandons any running lookup
func CloseLocationDialog(m *state.Model) {
	m.CancelLookup()
	m.Progress.Dismiss()
	m.LocationForm = nil
	closeDialog(m)
}

// SubmitLocation starts a lookup for text unless one is already running
func SubmitLocation(m *state.Model, text string) tea.Cmd {
	if m.PendingLookup != nil {
		logger.Debug("Ignoring location submit while lookup is pending", "query", text)
		return nil
	}

	ctx, cancel := context.WithTimeout(m.Session.Context(), m.GeocodeTimeout)
	lookup := &state.Lookup{
		Token:  uuid.New().String(),
		Query:  text,
		Cancel: cancel,
	}
	m.PendingLookup = lookup
	logger.Debug("Starting location lookup", "query", text, "token", lookup.Token)

	return tea.Batch(
		m.Progress.Show(constants.LocationLookupLabel),
		LookupCmd(ctx, cancel, m.Geocoder, lookup.Token, text),
	)
}

// LookupCmd resolves query off the update loop
func LookupCmd(ctx context.Context, cancel context.CancelFunc, g geocode.Geocoder, token, query string) tea.Cmd {
	return func() tea.Msg {
		defer cancel()
		if g == nil {
			return GeocodeResultMsg{Token: token, Query: query, Result: geocode.Fail(geocode.ReasonNetwork, errNoGeocoder)}
		}
		return GeocodeResultMsg{Token: token, Query: query, Result: g.Resolve(ctx, query)}
	}
}

// HandleGeocodeResult applies a lookup outcome. Results for anything but the
// pending lookup are dropped.
func HandleGeocodeResult(m *state.Model, msg GeocodeResultMsg) tea.Cmd {
	if m.PendingLookup == nil || m.PendingLookup.Token != msg.Token {
		logger.Debug("Dropping stale location result", "token", msg.Token)
		return nil
	}
	m.PendingLookup = nil
	m.Progress.Dismiss()

	if !msg.Result.OK() {
		logger.Warn("Location lookup failed", "query", msg.Query, "reason", msg.Result.Failure.Reason, "error", msg.Result.Err())
		return keepLocationDialog(m, msg.Query, constants.LocationErrorToast)
	}

	if err := m.Store.PutString(constants.KeyCustomLocationString, msg.Query); err != nil {
		logger.Error("Failed to save custom location", "error", err)
		return keepLocationDialog(m, msg.Query, "Failed to save location")
	}
	if err := m.Store.PutString(constants.KeyCustomLocationID, msg.Result.Location.Code); err != nil {
		logger.Error("Failed to save custom location id", "error", err)
	}
	logger.Info("Custom location set", "query", msg.Query, "code", msg.Result.Location.Code, "label", msg.Result.Location.Label())

	RefreshLocationSummary(m)
	m.LocationForm = nil
	closeDialog(m)
	return nil
}

// keepLocationDialog shows a toast and reopens the form with the typed text
func keepLocationDialog(m *state.Model, query, toastText string) tea.Cmd {
	cmds := []tea.Cmd{m.Toast.Show(toastText, constants.ToastDuration)}
	if m.State == constants.StateEditLocation {
		m.LocationForm = &state.LocationFormModel{Text: query}
		m.Form = NewLocationForm(m.LocationForm)
		cmds = append(cmds, m.Form.Init())
	}
	return tea.Batch(cmds...)
}
