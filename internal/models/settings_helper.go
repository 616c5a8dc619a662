package models

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"github.com/julianstephens/lockclock/internal/constants"
)

// MapToSettings converts raw stored values to a Settings struct.
// Keys missing from data keep their defaults.
func MapToSettings(data map[string]string) (Settings, error) {
	settings := DefaultSettings()

	for key, value := range data {
		switch key {
		case constants.KeyUseMetric:
			b, err := strconv.ParseBool(value)
			if err != nil {
				return Settings{}, fmt.Errorf("parsing %s: %w", key, err)
			}
			settings.UseMetric = b
		case constants.KeyShowLocation:
			b, err := strconv.ParseBool(value)
			if err != nil {
				return Settings{}, fmt.Errorf("parsing %s: %w", key, err)
			}
			settings.ShowLocation = b
		case constants.KeyShowTimestamp:
			b, err := strconv.ParseBool(value)
			if err != nil {
				return Settings{}, fmt.Errorf("parsing %s: %w", key, err)
			}
			settings.ShowTimestamp = b
		case constants.KeyUseCustomLocation:
			b, err := strconv.ParseBool(value)
			if err != nil {
				return Settings{}, fmt.Errorf("parsing %s: %w", key, err)
			}
			settings.UseCustomLocation = b
		case constants.KeyCustomLocationString:
			settings.CustomLocation = value
			settings.HasCustomLocation = true
		case constants.KeyCustomLocationID:
			settings.CustomLocationID = value
		case constants.KeyRefreshInterval:
			settings.RefreshInterval = value
		case constants.KeyCalendarList:
			set, err := DecodeStringSet(value)
			if err != nil {
				return Settings{}, fmt.Errorf("parsing %s: %w", key, err)
			}
			settings.Calendars = set
		}
	}
	return settings, nil
}

// EncodeStringSet serializes a set as a sorted, de-duplicated JSON array
func EncodeStringSet(values []string) (string, error) {
	set := NormalizeStringSet(values)
	data, err := json.Marshal(set)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// DecodeStringSet parses a JSON array produced by EncodeStringSet
func DecodeStringSet(raw string) ([]string, error) {
	if raw == "" {
		return []string{}, nil
	}
	var values []string
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		return nil, err
	}
	return NormalizeStringSet(values), nil
}

// NormalizeStringSet returns a sorted copy of values without duplicates
func NormalizeStringSet(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	set := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		set = append(set, v)
	}
	sort.Strings(set)
	return set
}
