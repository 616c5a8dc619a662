package handlers

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/lockclock/internal/geocode"
	"github.com/julianstephens/lockclock/internal/storage"
	"github.com/julianstephens/lockclock/internal/tui/state"
)

type fakeGeocoder struct {
	mu     sync.Mutex
	result geocode.Result
	calls  []string
}

func (g *fakeGeocoder) Resolve(ctx context.Context, query string) geocode.Result {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls = append(g.calls, query)
	return g.result
}

type fakeSignaler struct {
	mu   sync.Mutex
	keys []string
	err  error
}

func (s *fakeSignaler) Notify(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.keys = append(s.keys, key)
	return s.err
}

func (s *fakeSignaler) Keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.keys...)
}

// setupStore returns an initialized SQLite store, optionally seeded by seed
func setupStore(t *testing.T, seed func(storage.Provider)) storage.Provider {
	t.Helper()
	store := storage.NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	if seed != nil {
		seed(store)
	}
	return store
}

func newTestModel(t *testing.T, store storage.Provider, g geocode.Geocoder, sig *fakeSignaler) *state.Model {
	t.Helper()
	deps := state.Deps{Store: store, Geocoder: g, GeocodeTimeout: time.Second}
	if sig != nil {
		deps.Signaler = sig
	}
	m := state.New(deps)
	t.Cleanup(m.Session.Close)
	return &m
}

// collect runs cmd and any batched commands, returning the produced messages.
// Only use it on commands that complete without sleeping.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var msgs []tea.Msg
		for _, c := range batch {
			msgs = append(msgs, collect(c)...)
		}
		return msgs
	}
	return []tea.Msg{msg}
}

func geocodeResult(t *testing.T, cmd tea.Cmd) GeocodeResultMsg {
	t.Helper()
	for _, msg := range collect(cmd) {
		if res, ok := msg.(GeocodeResultMsg); ok {
			return res
		}
	}
	t.Fatal("expected a geocode result")
	return GeocodeResultMsg{}
}
