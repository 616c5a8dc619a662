package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/julianstephens/lockclock/internal/constants"
	"github.com/julianstephens/lockclock/internal/keyring"
)

// Config holds the provider configuration.
type Config struct {
	Geocoder GeocoderConfig `mapstructure:"geocoder"`
	Calendar CalendarConfig `mapstructure:"calendar"`
	Widget   WidgetConfig   `mapstructure:"widget"`
}

// GeocoderConfig holds geocoding service settings.
type GeocoderConfig struct {
	URL     string        `mapstructure:"url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// CalendarConfig selects and configures the calendar provider.
type CalendarConfig struct {
	Source         string `mapstructure:"source"`
	CalDAVURL      string `mapstructure:"caldav_url"`
	CalDAVUsername string `mapstructure:"caldav_username"`
	CalDAVPassword string `mapstructure:"caldav_password"`
	ICSDir         string `mapstructure:"ics_dir"`
}

// WidgetConfig locates the widget renderer.
type WidgetConfig struct {
	LockfileDir string `mapstructure:"lockfile_dir"`
}

func newViper() *viper.Viper {
	v := viper.New()

	v.SetDefault("geocoder.url", constants.DefaultGeocoderURL)
	v.SetDefault("geocoder.timeout", constants.DefaultGeocodeTimeout)
	v.SetDefault("calendar.source", constants.CalendarSourceLocal)
	v.SetDefault("calendar.caldav_url", "")
	v.SetDefault("calendar.caldav_username", "")
	v.SetDefault("calendar.caldav_password", "")
	v.SetDefault("calendar.ics_dir", "")
	v.SetDefault("widget.lockfile_dir", "")

	v.SetConfigType("toml")
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("calendar.caldav_password", constants.EnvPrefix+"_CALDAV_PASSWORD")
	return v
}

// Load reads configuration from path (if it exists) and the environment.
// Env var overrides use prefix LOCKCLOCK_, e.g. LOCKCLOCK_GEOCODER_URL.
func Load(path string) (Config, error) {
	v := newViper()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			if err := v.ReadInConfig(); err != nil {
				return Config{}, fmt.Errorf("read config %s: %w", path, err)
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("stat config %s: %w", path, err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks the calendar source and geocoder settings.
func (c Config) Validate() error {
	switch c.Calendar.Source {
	case constants.CalendarSourceLocal:
	case constants.CalendarSourceCalDAV:
		if c.Calendar.CalDAVURL == "" {
			return errors.New("calendar.caldav_url is required for the caldav source")
		}
	case constants.CalendarSourceICS:
		if c.Calendar.ICSDir == "" {
			return errors.New("calendar.ics_dir is required for the ics source")
		}
	default:
		return fmt.Errorf("unknown calendar.source %q", c.Calendar.Source)
	}
	if c.Geocoder.URL == "" {
		return errors.New("geocoder.url cannot be empty")
	}
	if c.Geocoder.Timeout <= 0 {
		return errors.New("geocoder.timeout must be positive")
	}
	return nil
}

// CalDAVPassword returns the configured password, falling back to the OS keyring.
func (c Config) CalDAVPassword() (string, error) {
	if c.Calendar.CalDAVPassword != "" {
		return c.Calendar.CalDAVPassword, nil
	}
	return keyring.GetCalDAVPassword(c.Calendar.CalDAVUsername)
}

// Save writes cfg to path as TOML, creating the directory if needed.
// The CalDAV password is never written; keep it in the keyring or environment.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("geocoder.url", cfg.Geocoder.URL)
	v.Set("geocoder.timeout", cfg.Geocoder.Timeout.String())
	v.Set("calendar.source", cfg.Calendar.Source)
	v.Set("calendar.caldav_url", cfg.Calendar.CalDAVURL)
	v.Set("calendar.caldav_username", cfg.Calendar.CalDAVUsername)
	v.Set("calendar.ics_dir", cfg.Calendar.ICSDir)
	v.Set("widget.lockfile_dir", cfg.Widget.LockfileDir)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Geocoder: GeocoderConfig{
			URL:     constants.DefaultGeocoderURL,
			Timeout: constants.DefaultGeocodeTimeout,
		},
		Calendar: CalendarConfig{Source: constants.CalendarSourceLocal},
	}
}
