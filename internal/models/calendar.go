package models

import (
	"strings"

	"github.com/julianstephens/lockclock/internal/constants"
)

// Calendar is one calendar reported by a calendar provider
type Calendar struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}

// CalendarEntries holds the parallel label and value lists backing the
// calendar multi-select. Entries[i] is the label for EntryValues[i].
type CalendarEntries struct {
	Entries     []string
	EntryValues []string
}

// NewCalendarEntries builds entry lists from calendars, preserving order
func NewCalendarEntries(calendars []Calendar) CalendarEntries {
	entries := CalendarEntries{
		Entries:     make([]string, 0, len(calendars)),
		EntryValues: make([]string, 0, len(calendars)),
	}
	for _, cal := range calendars {
		entries.Entries = append(entries.Entries, cal.DisplayName)
		entries.EntryValues = append(entries.EntryValues, cal.ID)
	}
	return entries
}

// Len returns the number of entries
func (e CalendarEntries) Len() int {
	return len(e.EntryValues)
}

// Summary lists the labels of the selected values in entry order
func (e CalendarEntries) Summary(selected []string) string {
	if e.Len() == 0 {
		return constants.NoCalendarsSummary
	}
	chosen := make(map[string]bool, len(selected))
	for _, v := range selected {
		chosen[v] = true
	}
	var names []string
	for i, v := range e.EntryValues {
		if chosen[v] {
			names = append(names, e.Entries[i])
		}
	}
	if len(names) == 0 {
		return constants.NoneSelectedSummary
	}
	return strings.Join(names, ", ")
}
