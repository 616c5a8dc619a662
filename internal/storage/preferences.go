package storage

import (
	"fmt"
	"strconv"
	"sync"

	"github.com/julianstephens/lockclock/internal/constants"
	"github.com/julianstephens/lockclock/internal/models"
)

const (
	kindBool   = "bool"
	kindString = "string"
	kindSet    = "set"
)

// entry is a stored preference value in its serialized form
type entry struct {
	Kind  string `json:"kind"`
	Value string `json:"value"`
}

// backend is the raw key/value persistence a store provides
type backend interface {
	getEntry(key string) (entry, bool, error)
	putEntry(key string, e entry) error
	deleteEntry(key string) error
	allEntries() (map[string]entry, error)
}

// preferences implements the typed preference operations and change
// notification on top of a backend. Writes are serialized so the
// compare-and-write that decides whether to notify is atomic.
type preferences struct {
	mu      sync.Mutex
	backend backend
	events  Broadcaster
}

func (p *preferences) get(key, kind string) (string, bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	e, ok, err := p.backend.getEntry(key)
	if err != nil || !ok {
		return "", false, err
	}
	if e.Kind != kind {
		return "", false, fmt.Errorf("%w: %s is %s, not %s", ErrTypeMismatch, key, e.Kind, kind)
	}
	return e.Value, true, nil
}

func (p *preferences) put(key string, e entry) error {
	changed, err := func() (bool, error) {
		p.mu.Lock()
		defer p.mu.Unlock()

		cur, ok, err := p.backend.getEntry(key)
		if err != nil {
			return false, err
		}
		if ok && cur == e {
			return false, nil
		}
		if err := p.backend.putEntry(key, e); err != nil {
			return false, err
		}
		return true, nil
	}()
	if err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	if changed {
		p.events.Notify(key)
	}
	return nil
}

func (p *preferences) GetBool(key string, def bool) (bool, error) {
	raw, ok, err := p.get(key, kindBool)
	if err != nil || !ok {
		return def, err
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return def, fmt.Errorf("parsing %s: %w", key, err)
	}
	return b, nil
}

func (p *preferences) GetString(key string, def string) (string, error) {
	raw, ok, err := p.get(key, kindString)
	if err != nil || !ok {
		return def, err
	}
	return raw, nil
}

func (p *preferences) GetStringSet(key string) ([]string, error) {
	raw, ok, err := p.get(key, kindSet)
	if err != nil || !ok {
		return []string{}, err
	}
	set, err := models.DecodeStringSet(raw)
	if err != nil {
		return []string{}, fmt.Errorf("parsing %s: %w", key, err)
	}
	return set, nil
}

func (p *preferences) PutBool(key string, value bool) error {
	return p.put(key, entry{Kind: kindBool, Value: strconv.FormatBool(value)})
}

func (p *preferences) PutString(key string, value string) error {
	return p.put(key, entry{Kind: kindString, Value: value})
}

func (p *preferences) PutStringSet(key string, values []string) error {
	raw, err := models.EncodeStringSet(values)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	return p.put(key, entry{Kind: kindSet, Value: raw})
}

func (p *preferences) Contains(key string) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	_, ok, err := p.backend.getEntry(key)
	return ok, err
}

func (p *preferences) Remove(key string) error {
	removed, err := func() (bool, error) {
		p.mu.Lock()
		defer p.mu.Unlock()

		_, ok, err := p.backend.getEntry(key)
		if err != nil || !ok {
			return false, err
		}
		return true, p.backend.deleteEntry(key)
	}()
	if err != nil {
		return fmt.Errorf("failed to remove %s: %w", key, err)
	}
	if removed {
		p.events.Notify(key)
	}
	return nil
}

func (p *preferences) GetSettings() (models.Settings, error) {
	p.mu.Lock()
	entries, err := p.backend.allEntries()
	p.mu.Unlock()
	if err != nil {
		return models.Settings{}, err
	}

	data := make(map[string]string, len(entries))
	for key, e := range entries {
		data[key] = e.Value
	}
	return models.MapToSettings(data)
}

func (p *preferences) Subscribe(fn func(key string)) *Subscription {
	return p.events.Subscribe(fn)
}

// seedDefaults stores the default value of every toggle and the refresh
// interval when absent. Seeding does not notify subscribers.
func (p *preferences) seedDefaults() error {
	defaults := map[string]entry{
		constants.KeyUseMetric:         {Kind: kindBool, Value: strconv.FormatBool(constants.DefaultUseMetric)},
		constants.KeyShowLocation:      {Kind: kindBool, Value: strconv.FormatBool(constants.DefaultShowLocation)},
		constants.KeyShowTimestamp:     {Kind: kindBool, Value: strconv.FormatBool(constants.DefaultShowTimestamp)},
		constants.KeyUseCustomLocation: {Kind: kindBool, Value: strconv.FormatBool(constants.DefaultUseCustomLocation)},
		constants.KeyRefreshInterval:   {Kind: kindString, Value: constants.DefaultRefreshInterval},
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	for key, e := range defaults {
		_, ok, err := p.backend.getEntry(key)
		if err != nil {
			return err
		}
		if ok {
			continue
		}
		if err := p.backend.putEntry(key, e); err != nil {
			return fmt.Errorf("failed to save default %s: %w", key, err)
		}
	}
	return nil
}
