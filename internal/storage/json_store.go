package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/julianstephens/lockclock/internal/models"
)

type Store struct {
	Version     int               `json:"version"`
	Preferences map[string]entry  `json:"preferences"`
	System      map[string]bool   `json:"system"`
	Calendars   []models.Calendar `json:"calendars"`
}

type JSONStore struct {
	preferences
	path string

	// fileMu guards store and the file; preferences.mu is taken first when both are held.
	fileMu sync.Mutex
	store  *Store
}

func NewJSONStore(configPath string) *JSONStore {
	s := &JSONStore{path: configPath}
	s.backend = s
	return s
}

func (s *JSONStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		if err := s.Load(); err != nil {
			return err
		}
	} else {
		s.fileMu.Lock()
		s.store = &Store{Version: 1}
		s.normalize()
		err := s.save()
		s.fileMu.Unlock()
		if err != nil {
			return err
		}
	}

	return s.seedDefaults()
}

func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run 'lockclock init' first")
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	store := &Store{}
	if err := json.Unmarshal(data, store); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}

	s.fileMu.Lock()
	defer s.fileMu.Unlock()
	s.store = store
	s.normalize()
	return nil
}

func (s *JSONStore) normalize() {
	if s.store.Preferences == nil {
		s.store.Preferences = make(map[string]entry)
	}
	if s.store.System == nil {
		s.store.System = make(map[string]bool)
	}
	if s.store.Calendars == nil {
		s.store.Calendars = []models.Calendar{}
	}
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}

// save writes the store through a temp file so a crash never leaves a partial file.
func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.store, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	return nil
}

func (s *JSONStore) getEntry(key string) (entry, bool, error) {
	s.fileMu.Lock()
	defer s.fileMu.Unlock()

	if s.store == nil {
		return entry{}, false, ErrNotLoaded
	}
	e, ok := s.store.Preferences[key]
	return e, ok, nil
}

func (s *JSONStore) putEntry(key string, e entry) error {
	s.fileMu.Lock()
	defer s.fileMu.Unlock()

	if s.store == nil {
		return ErrNotLoaded
	}
	prev, had := s.store.Preferences[key]
	s.store.Preferences[key] = e
	if err := s.save(); err != nil {
		if had {
			s.store.Preferences[key] = prev
		} else {
			delete(s.store.Preferences, key)
		}
		return err
	}
	return nil
}

func (s *JSONStore) deleteEntry(key string) error {
	s.fileMu.Lock()
	defer s.fileMu.Unlock()

	if s.store == nil {
		return ErrNotLoaded
	}
	prev, had := s.store.Preferences[key]
	delete(s.store.Preferences, key)
	if err := s.save(); err != nil {
		if had {
			s.store.Preferences[key] = prev
		}
		return err
	}
	return nil
}

func (s *JSONStore) allEntries() (map[string]entry, error) {
	s.fileMu.Lock()
	defer s.fileMu.Unlock()

	if s.store == nil {
		return nil, ErrNotLoaded
	}
	entries := make(map[string]entry, len(s.store.Preferences))
	for k, v := range s.store.Preferences {
		entries[k] = v
	}
	return entries, nil
}

func (s *JSONStore) LocationProviderEnabled() (bool, error) {
	s.fileMu.Lock()
	defer s.fileMu.Unlock()

	if s.store == nil {
		return false, ErrNotLoaded
	}
	return s.store.System[systemLocationProvider], nil
}

func (s *JSONStore) SetLocationProviderEnabled(enabled bool) error {
	s.fileMu.Lock()
	defer s.fileMu.Unlock()

	if s.store == nil {
		return ErrNotLoaded
	}
	prev := s.store.System[systemLocationProvider]
	s.store.System[systemLocationProvider] = enabled
	if err := s.save(); err != nil {
		s.store.System[systemLocationProvider] = prev
		return err
	}
	return nil
}

func (s *JSONStore) ListCalendars() ([]models.Calendar, error) {
	s.fileMu.Lock()
	defer s.fileMu.Unlock()

	if s.store == nil {
		return nil, ErrNotLoaded
	}
	calendars := make([]models.Calendar, len(s.store.Calendars))
	copy(calendars, s.store.Calendars)
	return calendars, nil
}

func (s *JSONStore) AddCalendar(cal models.Calendar) error {
	if cal.ID == "" {
		return errors.New("calendar id cannot be empty")
	}

	s.fileMu.Lock()
	defer s.fileMu.Unlock()

	if s.store == nil {
		return ErrNotLoaded
	}
	prev := make([]models.Calendar, len(s.store.Calendars))
	copy(prev, s.store.Calendars)

	replaced := false
	for i := range s.store.Calendars {
		if s.store.Calendars[i].ID == cal.ID {
			s.store.Calendars[i].DisplayName = cal.DisplayName
			replaced = true
			break
		}
	}
	if !replaced {
		s.store.Calendars = append(s.store.Calendars, cal)
	}
	if err := s.save(); err != nil {
		s.store.Calendars = prev
		return err
	}
	return nil
}

func (s *JSONStore) RemoveCalendar(id string) error {
	s.fileMu.Lock()
	defer s.fileMu.Unlock()

	if s.store == nil {
		return ErrNotLoaded
	}
	for i, cal := range s.store.Calendars {
		if cal.ID != id {
			continue
		}
		prev := s.store.Calendars
		remaining := make([]models.Calendar, 0, len(prev)-1)
		remaining = append(remaining, prev[:i]...)
		remaining = append(remaining, prev[i+1:]...)
		s.store.Calendars = remaining
		if err := s.save(); err != nil {
			s.store.Calendars = prev
			return err
		}
		return nil
	}
	return fmt.Errorf("%w: %s", ErrCalendarNotFound, id)
}
