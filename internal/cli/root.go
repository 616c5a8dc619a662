package cli

import (
	"context"
	"errors"

	"github.com/julianstephens/lockclock/internal/calendars"
	"github.com/julianstephens/lockclock/internal/config"
	"github.com/julianstephens/lockclock/internal/constants"
	"github.com/julianstephens/lockclock/internal/geocode"
	"github.com/julianstephens/lockclock/internal/logger"
	"github.com/julianstephens/lockclock/internal/notifier"
	"github.com/julianstephens/lockclock/internal/storage"
)

type Context struct {
	Store         storage.Provider
	Config        config.Config
	ProvidersPath string
	Geocoder      geocode.Geocoder
	Calendars     calendars.Provider
	Notifier      notifier.Signaler
}

// NewContext wires the collaborators described by cfg. A calendar source
// that cannot be set up falls back to the store's local calendars.
func NewContext(store storage.Provider, cfg config.Config, providersPath string) *Context {
	cals, err := calendars.New(cfg, store)
	if err != nil {
		logger.Warn("Calendar source unavailable, using local calendars", "source", cfg.Calendar.Source, "error", err)
		cals = calendars.NewLocalProvider(store)
	}
	return &Context{
		Store:         store,
		Config:        cfg,
		ProvidersPath: providersPath,
		Geocoder:      geocode.NewClient(cfg.Geocoder.URL, nil),
		Calendars:     cals,
		Notifier:      notifier.New(cfg.Widget.LockfileDir),
	}
}

// SignalChanges runs fn and then sends one refresh signal per preference it
// changed. Signal failures are logged, not returned.
func (c *Context) SignalChanges(fn func() error) error {
	var changed []string
	sub := c.Store.Subscribe(func(key string) {
		changed = append(changed, key)
	})
	err := fn()
	sub.Close()

	if c.Notifier == nil {
		return err
	}
	for _, key := range changed {
		ctx, cancel := context.WithTimeout(context.Background(), constants.WidgetSignalTimeout)
		nerr := c.Notifier.Notify(ctx, key)
		cancel()
		switch {
		case nerr == nil:
		case errors.Is(nerr, notifier.ErrRendererNotRunning):
			logger.Debug("Widget not running, skipped refresh signal", "key", key)
		default:
			logger.Warn("Failed to signal widget", "key", key, "error", nerr)
		}
	}
	return err
}
