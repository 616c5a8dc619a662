package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	gokeyring "github.com/zalando/go-keyring"

	"github.com/julianstephens/lockclock/internal/constants"
	"github.com/julianstephens/lockclock/internal/keyring"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Geocoder.URL != constants.DefaultGeocoderURL {
		t.Errorf("expected default geocoder url, got %q", cfg.Geocoder.URL)
	}
	if cfg.Geocoder.Timeout != constants.DefaultGeocodeTimeout {
		t.Errorf("expected default timeout, got %v", cfg.Geocoder.Timeout)
	}
	if cfg.Calendar.Source != constants.CalendarSourceLocal {
		t.Errorf("expected local calendar source, got %q", cfg.Calendar.Source)
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "providers.toml")
	content := `
[geocoder]
url = "http://localhost:9999"
timeout = "2s"

[calendar]
source = "caldav"
caldav_url = "https://dav.example.com"
caldav_username = "alice"

[widget]
lockfile_dir = "/tmp/widget"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Geocoder.URL != "http://localhost:9999" || cfg.Geocoder.Timeout != 2*time.Second {
		t.Errorf("unexpected geocoder config: %+v", cfg.Geocoder)
	}
	if cfg.Calendar.Source != "caldav" || cfg.Calendar.CalDAVURL != "https://dav.example.com" || cfg.Calendar.CalDAVUsername != "alice" {
		t.Errorf("unexpected calendar config: %+v", cfg.Calendar)
	}
	if cfg.Widget.LockfileDir != "/tmp/widget" {
		t.Errorf("unexpected lockfile dir: %q", cfg.Widget.LockfileDir)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("LOCKCLOCK_GEOCODER_URL", "http://env.example")
	t.Setenv("LOCKCLOCK_CALDAV_PASSWORD", "from-env")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Geocoder.URL != "http://env.example" {
		t.Errorf("expected env geocoder url, got %q", cfg.Geocoder.URL)
	}
	pw, err := cfg.CalDAVPassword()
	if err != nil {
		t.Fatalf("CalDAVPassword failed: %v", err)
	}
	if pw != "from-env" {
		t.Errorf("expected env password, got %q", pw)
	}
}

func TestCalDAVPassword_Keyring(t *testing.T) {
	gokeyring.MockInit()

	cfg := Default()
	cfg.Calendar.CalDAVUsername = "alice"

	if _, err := cfg.CalDAVPassword(); !errors.Is(err, keyring.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if err := keyring.SetCalDAVPassword("alice", "kr-secret"); err != nil {
		t.Fatal(err)
	}
	pw, err := cfg.CalDAVPassword()
	if err != nil {
		t.Fatalf("CalDAVPassword failed: %v", err)
	}
	if pw != "kr-secret" {
		t.Errorf("expected keyring password, got %q", pw)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"default", func(c *Config) {}, false},
		{"unknown source", func(c *Config) { c.Calendar.Source = "exchange" }, true},
		{"caldav without url", func(c *Config) { c.Calendar.Source = constants.CalendarSourceCalDAV }, true},
		{"ics without dir", func(c *Config) { c.Calendar.Source = constants.CalendarSourceICS }, true},
		{"ics with dir", func(c *Config) {
			c.Calendar.Source = constants.CalendarSourceICS
			c.Calendar.ICSDir = "/tmp/cals"
		}, false},
		{"empty geocoder url", func(c *Config) { c.Geocoder.URL = "" }, true},
		{"zero timeout", func(c *Config) { c.Geocoder.Timeout = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "providers.toml")
	cfg := Default()
	cfg.Calendar.Source = constants.CalendarSourceICS
	cfg.Calendar.ICSDir = "/srv/calendars"
	cfg.Geocoder.Timeout = 5 * time.Second

	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Calendar.ICSDir != "/srv/calendars" || loaded.Geocoder.Timeout != 5*time.Second {
		t.Errorf("unexpected loaded config: %+v", loaded)
	}
}
