package storage

import (
	"errors"
	"strings"

	"github.com/julianstephens/lockclock/internal/models"
)

var (
	// ErrNotLoaded is returned when the store is used before Init or Load
	ErrNotLoaded = errors.New("storage not loaded")
	// ErrTypeMismatch is returned when a key is read as a different type than it was stored
	ErrTypeMismatch = errors.New("stored value has a different type")
	// ErrCalendarNotFound is returned when removing an unknown calendar
	ErrCalendarNotFound = errors.New("calendar not found")
)

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Preferences. Getters return def when the key is absent.
	GetBool(key string, def bool) (bool, error)
	GetString(key string, def string) (string, error)
	GetStringSet(key string) ([]string, error)
	PutBool(key string, value bool) error
	PutString(key string, value string) error
	PutStringSet(key string, values []string) error
	Contains(key string) (bool, error)
	Remove(key string) error
	GetSettings() (models.Settings, error)

	// Subscribe registers fn to be called with the key of every preference
	// whose stored value changes. Callbacks run on the writing goroutine and
	// must not call back into the store.
	Subscribe(fn func(key string)) *Subscription

	// System state
	LocationProviderEnabled() (bool, error)
	SetLocationProviderEnabled(enabled bool) error

	// Local calendars, listed in insertion order
	ListCalendars() ([]models.Calendar, error)
	AddCalendar(cal models.Calendar) error
	RemoveCalendar(id string) error

	// Utils
	GetConfigPath() string
}

// New returns the store matching the config path: a JSON file store for
// paths ending in .json, SQLite otherwise.
func New(path string) Provider {
	if strings.HasSuffix(strings.ToLower(path), ".json") {
		return NewJSONStore(path)
	}
	return NewSQLiteStore(path)
}
