package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/lockclock/internal/migration"
	"github.com/julianstephens/lockclock/internal/models"
	"github.com/julianstephens/lockclock/migrations"
)

const systemLocationProvider = "location_provider_enabled"

type SQLiteStore struct {
	preferences
	path string
	db   *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	s := &SQLiteStore{path: path}
	s.backend = s
	return s
}

func (s *SQLiteStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if s.db == nil {
		db, err := s.open()
		if err != nil {
			return err
		}
		s.db = db
	}

	if err := s.runMigrations(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return s.seedDefaults()
}

func (s *SQLiteStore) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run 'lockclock init' first")
	}

	db, err := s.open()
	if err != nil {
		return err
	}
	s.db = db

	runner, err := s.runner()
	if err != nil {
		return err
	}
	return runner.Validate(context.Background())
}

func (s *SQLiteStore) open() (*sql.DB, error) {
	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// busy_timeout is per connection
	db.SetMaxOpenConns(1)
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to configure database: %w", err)
	}
	return db, nil
}

func (s *SQLiteStore) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *SQLiteStore) GetConfigPath() string {
	return s.path
}

func (s *SQLiteStore) runner() (*migration.Runner, error) {
	subFS, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		return nil, fmt.Errorf("failed to access sqlite migrations: %w", err)
	}
	return migration.NewRunner(s.db, subFS), nil
}

func (s *SQLiteStore) runMigrations() error {
	runner, err := s.runner()
	if err != nil {
		return err
	}
	_, err = runner.Apply(context.Background())
	return err
}

func (s *SQLiteStore) getEntry(key string) (entry, bool, error) {
	if s.db == nil {
		return entry{}, false, ErrNotLoaded
	}
	var e entry
	err := s.db.QueryRow("SELECT kind, value FROM preferences WHERE key = ?", key).Scan(&e.Kind, &e.Value)
	if errors.Is(err, sql.ErrNoRows) {
		return entry{}, false, nil
	}
	if err != nil {
		return entry{}, false, err
	}
	return e, true, nil
}

func (s *SQLiteStore) putEntry(key string, e entry) error {
	if s.db == nil {
		return ErrNotLoaded
	}
	_, err := s.db.Exec("INSERT OR REPLACE INTO preferences (key, kind, value) VALUES (?, ?, ?)", key, e.Kind, e.Value)
	return err
}

func (s *SQLiteStore) deleteEntry(key string) error {
	if s.db == nil {
		return ErrNotLoaded
	}
	_, err := s.db.Exec("DELETE FROM preferences WHERE key = ?", key)
	return err
}

func (s *SQLiteStore) allEntries() (map[string]entry, error) {
	if s.db == nil {
		return nil, ErrNotLoaded
	}
	rows, err := s.db.Query("SELECT key, kind, value FROM preferences")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make(map[string]entry)
	for rows.Next() {
		var key string
		var e entry
		if err := rows.Scan(&key, &e.Kind, &e.Value); err != nil {
			return nil, err
		}
		entries[key] = e
	}
	return entries, rows.Err()
}

func (s *SQLiteStore) LocationProviderEnabled() (bool, error) {
	if s.db == nil {
		return false, ErrNotLoaded
	}
	var value string
	err := s.db.QueryRow("SELECT value FROM system_settings WHERE key = ?", systemLocationProvider).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return strconv.ParseBool(value)
}

func (s *SQLiteStore) SetLocationProviderEnabled(enabled bool) error {
	if s.db == nil {
		return ErrNotLoaded
	}
	_, err := s.db.Exec("INSERT OR REPLACE INTO system_settings (key, value) VALUES (?, ?)",
		systemLocationProvider, strconv.FormatBool(enabled))
	if err != nil {
		return fmt.Errorf("failed to save %s: %w", systemLocationProvider, err)
	}
	return nil
}

func (s *SQLiteStore) ListCalendars() ([]models.Calendar, error) {
	if s.db == nil {
		return nil, ErrNotLoaded
	}
	rows, err := s.db.Query("SELECT id, display_name FROM calendars ORDER BY seq")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	calendars := []models.Calendar{}
	for rows.Next() {
		var cal models.Calendar
		if err := rows.Scan(&cal.ID, &cal.DisplayName); err != nil {
			return nil, err
		}
		calendars = append(calendars, cal)
	}
	return calendars, rows.Err()
}

func (s *SQLiteStore) AddCalendar(cal models.Calendar) error {
	if s.db == nil {
		return ErrNotLoaded
	}
	if cal.ID == "" {
		return errors.New("calendar id cannot be empty")
	}
	_, err := s.db.Exec(`
		INSERT INTO calendars (id, display_name) VALUES (?, ?)
		ON CONFLICT(id) DO UPDATE SET display_name = excluded.display_name
	`, cal.ID, cal.DisplayName)
	if err != nil {
		return fmt.Errorf("failed to save calendar %s: %w", cal.ID, err)
	}
	return nil
}

func (s *SQLiteStore) RemoveCalendar(id string) error {
	if s.db == nil {
		return ErrNotLoaded
	}
	res, err := s.db.Exec("DELETE FROM calendars WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to remove calendar %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrCalendarNotFound, id)
	}
	return nil
}
