package state

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/lockclock/internal/calendars"
	"github.com/julianstephens/lockclock/internal/constants"
	"github.com/julianstephens/lockclock/internal/geocode"
	"github.com/julianstephens/lockclock/internal/logger"
	"github.com/julianstephens/lockclock/internal/models"
	"github.com/julianstephens/lockclock/internal/notifier"
	"github.com/julianstephens/lockclock/internal/storage"
	"github.com/julianstephens/lockclock/internal/tui/components/preferences"
	"github.com/julianstephens/lockclock/internal/tui/components/progress"
	"github.com/julianstephens/lockclock/internal/tui/components/toast"
)

// LocationFormModel represents the form model for the custom location dialog
type LocationFormModel struct {
	Text string
}

// CalendarFormModel represents the form model for the calendar multi-select
type CalendarFormModel struct {
	Selected []string
}

// RefreshFormModel represents the form model for the refresh interval list
type RefreshFormModel struct {
	Value string
}

// WarningFormModel represents the form model for the location services warning
type WarningFormModel struct {
	Enable bool
}

// Lookup is the single in-flight geocode request
type Lookup struct {
	Token  string
	Query  string
	Cancel context.CancelFunc
}

// Deps are the collaborators of the settings screen
type Deps struct {
	Store          storage.Provider
	Geocoder       geocode.Geocoder
	Calendars      calendars.Provider
	Signaler       notifier.Signaler
	GeocodeTimeout time.Duration
}

// Model represents the shared state for the TUI
type Model struct {
	Store           storage.Provider
	Geocoder        geocode.Geocoder
	Calendars       calendars.Provider
	Signaler        notifier.Signaler
	GeocodeTimeout  time.Duration
	State           constants.SessionState
	Keys            KeyMap
	Help            help.Model
	Prefs           preferences.Model
	Progress        progress.Model
	Toast           toast.Model
	Form            *huh.Form
	LocationForm    *LocationFormModel
	CalendarForm    *CalendarFormModel
	RefreshForm     *RefreshFormModel
	WarningForm     *WarningFormModel
	CalendarEntries models.CalendarEntries
	CalendarsLoaded bool
	PendingLookup   *Lookup
	Session         *Session
	FormError       string // Error message to display for form operations
	Quitting        bool
	Width           int
	Height          int
}

// New creates a new state Model from the stored settings and subscribes to
// changes.
func New(deps Deps) Model {
	settings, err := deps.Store.GetSettings()
	if err != nil {
		logger.Warn("Failed to read settings, using defaults", "error", err)
		settings = models.DefaultSettings()
	}

	timeout := deps.GeocodeTimeout
	if timeout <= 0 {
		timeout = constants.DefaultGeocodeTimeout
	}

	return Model{
		Store:          deps.Store,
		Geocoder:       deps.Geocoder,
		Calendars:      deps.Calendars,
		Signaler:       deps.Signaler,
		GeocodeTimeout: timeout,
		State:          constants.StateList,
		Keys:           DefaultKeyMap(),
		Help:           help.New(),
		Prefs:          preferences.New(SettingsRows(settings), 0, 0),
		Progress:       progress.New(),
		Session:        NewSession(deps.Store),
	}
}

// SettingsRows builds the preference rows for settings
func SettingsRows(s models.Settings) []preferences.Row {
	return []preferences.Row{
		{Key: constants.KeyUseMetric, Title: "Use metric units", Kind: preferences.RowToggle, Checked: s.UseMetric, Enabled: true},
		{Key: constants.KeyShowLocation, Title: "Show location", Kind: preferences.RowToggle, Checked: s.ShowLocation, Enabled: true},
		{Key: constants.KeyShowTimestamp, Title: "Show timestamp", Kind: preferences.RowToggle, Checked: s.ShowTimestamp, Enabled: true},
		{Key: constants.KeyUseCustomLocation, Title: "Use custom location", Kind: preferences.RowToggle, Checked: s.UseCustomLocation, Enabled: true},
		{Key: constants.KeyCustomLocationString, Title: "Custom location", Kind: preferences.RowDialog, Summary: s.LocationSummary(), Enabled: s.UseCustomLocation},
		{Key: constants.KeyRefreshInterval, Title: "Refresh interval", Kind: preferences.RowList, Summary: constants.RefreshLabel(s.RefreshInterval), Enabled: true},
		{Key: constants.KeyCalendarList, Title: "Calendars", Kind: preferences.RowMultiSelect, Summary: "Loading...", Enabled: false},
	}
}

// CancelLookup cancels and forgets the in-flight geocode request
func (m *Model) CancelLookup() {
	if m.PendingLookup == nil {
		return
	}
	m.PendingLookup.Cancel()
	m.PendingLookup = nil
}
