package constants

import "time"

// SessionState represents the current state of the TUI application
type SessionState int

const (
	StateList SessionState = iota
	StateEditLocation
	StateSelectCalendars
	StateSelectRefresh
	StateLocationWarning
)

const (
	AppName              = "lockclock"
	DefaultKeyringUser   = "caldav-password"
	DefaultConfigPath    = "~/.config/lockclock/lockclock.db"
	DefaultProvidersPath = "~/.config/lockclock/providers.toml"
	Version              = "v0.1.0"
	EnvPrefix            = "LOCKCLOCK"

	// Widget refresh signal constants
	WidgetLockfileName   = "lockclock-widget.lock"
	WidgetProcessName    = "lockclock-widget"
	WidgetAppIdentifier  = "lockclock-widget"
	WidgetSecretHeader   = "X-Lockclock-Secret"
	SettingsChangedEvent = "settings_changed"
	WidgetSignalTimeout  = 5 * time.Second

	// Geocoding constants
	DefaultGeocoderURL    = "https://geocoding-api.open-meteo.com"
	DefaultGeocodeTimeout = 15 * time.Second
	ToastDuration         = 3 * time.Second

	// Calendar source constants
	CalendarSourceLocal  = "local"
	CalendarSourceCalDAV = "caldav"
	CalendarSourceICS    = "ics"

	// ChangeBufferSize bounds pending change notifications per screen
	ChangeBufferSize = 32
)
