// Package calendars enumerates the calendars that can feed the agenda.
package calendars

import (
	"context"
	"fmt"

	"github.com/julianstephens/lockclock/internal/config"
	"github.com/julianstephens/lockclock/internal/constants"
	"github.com/julianstephens/lockclock/internal/logger"
	"github.com/julianstephens/lockclock/internal/models"
	"github.com/julianstephens/lockclock/internal/storage"
)

// Provider lists calendars in the provider's own order
type Provider interface {
	Calendars(ctx context.Context) ([]models.Calendar, error)
}

// FindEntries queries p and returns parallel label/value lists in provider
// order. Provider errors are logged and produce empty lists.
func FindEntries(ctx context.Context, p Provider) models.CalendarEntries {
	if p == nil {
		return models.NewCalendarEntries(nil)
	}
	cals, err := p.Calendars(ctx)
	if err != nil {
		logger.Warn("Calendar query failed", "error", err)
		return models.NewCalendarEntries(nil)
	}
	return models.NewCalendarEntries(cals)
}

// New returns the provider selected by cfg.Calendar.Source
func New(cfg config.Config, store storage.Provider) (Provider, error) {
	switch cfg.Calendar.Source {
	case constants.CalendarSourceLocal, "":
		return NewLocalProvider(store), nil
	case constants.CalendarSourceICS:
		return NewICSDirProvider(cfg.Calendar.ICSDir), nil
	case constants.CalendarSourceCalDAV:
		password, err := cfg.CalDAVPassword()
		if err != nil {
			return nil, fmt.Errorf("caldav password: %w", err)
		}
		return NewCalDAVProvider(cfg.Calendar.CalDAVURL, cfg.Calendar.CalDAVUsername, password), nil
	default:
		return nil, fmt.Errorf("unknown calendar source %q", cfg.Calendar.Source)
	}
}

// LocalProvider lists the calendars kept in the settings store
type LocalProvider struct {
	store storage.Provider
}

func NewLocalProvider(store storage.Provider) *LocalProvider {
	return &LocalProvider{store: store}
}

func (p *LocalProvider) Calendars(ctx context.Context) ([]models.Calendar, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return p.store.ListCalendars()
}
