package models

import "github.com/julianstephens/lockclock/internal/constants"

// Settings is the typed view of the widget settings record
type Settings struct {
	UseMetric         bool     `json:"weather_use_metric"`             // metric units for temperature and wind
	ShowLocation      bool     `json:"weather_show_location"`          // show the location name on the widget
	ShowTimestamp     bool     `json:"weather_show_timestamp"`         // show when weather was last refreshed
	UseCustomLocation bool     `json:"weather_use_custom_location"`    // use the typed location instead of the device location
	CustomLocation    string   `json:"weather_custom_location_string"` // raw text the user typed, empty when unset
	CustomLocationID  string   `json:"weather_custom_location_id"`     // geocoder code for CustomLocation
	RefreshInterval   string   `json:"weather_refresh_interval"`       // minutes between weather refreshes
	Calendars         []string `json:"calendar_list"`                  // IDs of calendars shown in the agenda
	HasCustomLocation bool     `json:"-"`                              // whether a custom location string is stored
}

// DefaultSettings returns the settings record used for absent keys
func DefaultSettings() Settings {
	return Settings{
		UseMetric:         constants.DefaultUseMetric,
		ShowLocation:      constants.DefaultShowLocation,
		ShowTimestamp:     constants.DefaultShowTimestamp,
		UseCustomLocation: constants.DefaultUseCustomLocation,
		RefreshInterval:   constants.DefaultRefreshInterval,
		Calendars:         []string{},
	}
}

// LocationSummary returns the text shown under the custom location row.
func (s Settings) LocationSummary() string {
	return LocationSummary(s.UseCustomLocation, s.CustomLocation, s.HasCustomLocation)
}

// LocationSummary computes the custom location summary from its parts
func LocationSummary(useCustom bool, location string, stored bool) string {
	if !useCustom {
		return constants.DeviceLocationSummary
	}
	if !stored {
		return constants.UnknownLocationSummary
	}
	return location
}
