package constants

// Settings record keys
const (
	KeyUseMetric            = "weather_use_metric"
	KeyShowLocation         = "weather_show_location"
	KeyShowTimestamp        = "weather_show_timestamp"
	KeyUseCustomLocation    = "weather_use_custom_location"
	KeyCustomLocationString = "weather_custom_location_string"
	KeyCustomLocationID     = "weather_custom_location_id"
	KeyRefreshInterval      = "weather_refresh_interval"
	KeyCalendarList         = "calendar_list"
)

// Default settings values
const (
	DefaultUseMetric         = true
	DefaultShowLocation      = true
	DefaultShowTimestamp     = true
	DefaultUseCustomLocation = false
	DefaultRefreshInterval   = "60"
)

// Summary labels
const (
	DeviceLocationSummary  = "Use device location"
	UnknownLocationSummary = "Unknown"
	NoCalendarsSummary     = "No calendars"
	NoneSelectedSummary    = "No calendars selected"
	LocationErrorToast     = "Couldn't determine location"
	LocationLookupLabel    = "Looking up location..."
)

// RefreshOption is one choice of the refresh interval list
type RefreshOption struct {
	Label string
	Value string
}

// RefreshOptions lists the refresh interval choices in display order
var RefreshOptions = []RefreshOption{
	{Label: "15 minutes", Value: "15"},
	{Label: "30 minutes", Value: "30"},
	{Label: "1 hour", Value: "60"},
	{Label: "2 hours", Value: "120"},
	{Label: "4 hours", Value: "240"},
}

// RefreshLabel returns the display label for a refresh interval value.
// Unknown values are returned unchanged.
func RefreshLabel(value string) string {
	for _, opt := range RefreshOptions {
		if opt.Value == value {
			return opt.Label
		}
	}
	return value
}

// IsRefreshValue reports whether value is one of the refresh choices
func IsRefreshValue(value string) bool {
	for _, opt := range RefreshOptions {
		if opt.Value == value {
			return true
		}
	}
	return false
}
