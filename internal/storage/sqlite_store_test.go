package storage

import (
	"errors"
	"path/filepath"
	"reflect"
	"sync"
	"testing"

	"github.com/julianstephens/lockclock/internal/constants"
	"github.com/julianstephens/lockclock/internal/models"
)

// setupStores returns an initialized store of each kind
func setupStores(t *testing.T) map[string]Provider {
	t.Helper()
	dir := t.TempDir()

	stores := map[string]Provider{
		"sqlite": NewSQLiteStore(filepath.Join(dir, "test.db")),
		"json":   NewJSONStore(filepath.Join(dir, "test.json")),
	}
	for name, store := range stores {
		if err := store.Init(); err != nil {
			t.Fatalf("failed to init %s store: %v", name, err)
		}
		s := store
		t.Cleanup(func() { s.Close() })
	}
	return stores
}

func TestNew_ChoosesBackend(t *testing.T) {
	if _, ok := New("/tmp/lockclock.json").(*JSONStore); !ok {
		t.Error("expected JSON store for .json path")
	}
	if _, ok := New("/tmp/lockclock.db").(*SQLiteStore); !ok {
		t.Error("expected SQLite store for .db path")
	}
}

func TestFreshStoreDefaults(t *testing.T) {
	for name, store := range setupStores(t) {
		t.Run(name, func(t *testing.T) {
			settings, err := store.GetSettings()
			if err != nil {
				t.Fatalf("GetSettings failed: %v", err)
			}
			if !settings.UseMetric || !settings.ShowLocation || !settings.ShowTimestamp {
				t.Errorf("expected metric, location and timestamp on, got %+v", settings)
			}
			if settings.UseCustomLocation {
				t.Error("expected custom location off")
			}
			if settings.HasCustomLocation {
				t.Error("expected no custom location string")
			}
			if len(settings.Calendars) != 0 {
				t.Errorf("expected no calendars, got %v", settings.Calendars)
			}

			enabled, err := store.LocationProviderEnabled()
			if err != nil {
				t.Fatalf("LocationProviderEnabled failed: %v", err)
			}
			if enabled {
				t.Error("expected location provider disabled by default")
			}
		})
	}
}

func TestTypedValues(t *testing.T) {
	for name, store := range setupStores(t) {
		t.Run(name, func(t *testing.T) {
			if err := store.PutBool(constants.KeyUseMetric, false); err != nil {
				t.Fatalf("PutBool failed: %v", err)
			}
			got, err := store.GetBool(constants.KeyUseMetric, true)
			if err != nil || got {
				t.Errorf("GetBool = %v, %v; want false, nil", got, err)
			}

			if err := store.PutString(constants.KeyCustomLocationString, "Paris"); err != nil {
				t.Fatalf("PutString failed: %v", err)
			}
			str, err := store.GetString(constants.KeyCustomLocationString, "")
			if err != nil || str != "Paris" {
				t.Errorf("GetString = %q, %v; want Paris, nil", str, err)
			}

			if err := store.PutStringSet(constants.KeyCalendarList, []string{"2", "1", "2"}); err != nil {
				t.Fatalf("PutStringSet failed: %v", err)
			}
			set, err := store.GetStringSet(constants.KeyCalendarList)
			if err != nil || !reflect.DeepEqual(set, []string{"1", "2"}) {
				t.Errorf("GetStringSet = %v, %v; want [1 2], nil", set, err)
			}

			def, err := store.GetString("missing", "fallback")
			if err != nil || def != "fallback" {
				t.Errorf("GetString(missing) = %q, %v; want fallback", def, err)
			}
		})
	}
}

func TestTypeMismatch(t *testing.T) {
	for name, store := range setupStores(t) {
		t.Run(name, func(t *testing.T) {
			if err := store.PutString("k", "v"); err != nil {
				t.Fatal(err)
			}
			if _, err := store.GetBool("k", false); !errors.Is(err, ErrTypeMismatch) {
				t.Errorf("expected ErrTypeMismatch, got %v", err)
			}
		})
	}
}

func TestContainsAndRemove(t *testing.T) {
	for name, store := range setupStores(t) {
		t.Run(name, func(t *testing.T) {
			ok, err := store.Contains(constants.KeyCustomLocationString)
			if err != nil || ok {
				t.Fatalf("Contains = %v, %v; want false", ok, err)
			}
			if err := store.PutString(constants.KeyCustomLocationString, "Oslo"); err != nil {
				t.Fatal(err)
			}
			if ok, _ := store.Contains(constants.KeyCustomLocationString); !ok {
				t.Error("expected key to be present")
			}
			if err := store.Remove(constants.KeyCustomLocationString); err != nil {
				t.Fatalf("Remove failed: %v", err)
			}
			if ok, _ := store.Contains(constants.KeyCustomLocationString); ok {
				t.Error("expected key to be removed")
			}
			if err := store.Remove(constants.KeyCustomLocationString); err != nil {
				t.Errorf("removing absent key should succeed, got %v", err)
			}
		})
	}
}

func TestSubscribe_NotifiesOnlyOnChange(t *testing.T) {
	for name, store := range setupStores(t) {
		t.Run(name, func(t *testing.T) {
			var mu sync.Mutex
			var keys []string
			sub := store.Subscribe(func(key string) {
				mu.Lock()
				keys = append(keys, key)
				mu.Unlock()
			})
			defer sub.Close()

			// Default value, no change.
			if err := store.PutBool(constants.KeyUseMetric, true); err != nil {
				t.Fatal(err)
			}
			if err := store.PutBool(constants.KeyUseMetric, false); err != nil {
				t.Fatal(err)
			}
			if err := store.PutBool(constants.KeyUseMetric, false); err != nil {
				t.Fatal(err)
			}
			if err := store.PutStringSet(constants.KeyCalendarList, []string{"b", "a"}); err != nil {
				t.Fatal(err)
			}
			if err := store.PutStringSet(constants.KeyCalendarList, []string{"a", "b", "a"}); err != nil {
				t.Fatal(err)
			}
			if err := store.Remove("never-stored"); err != nil {
				t.Fatal(err)
			}
			if err := store.SetLocationProviderEnabled(true); err != nil {
				t.Fatal(err)
			}

			mu.Lock()
			defer mu.Unlock()
			want := []string{constants.KeyUseMetric, constants.KeyCalendarList}
			if !reflect.DeepEqual(keys, want) {
				t.Errorf("notified keys = %v, want %v", keys, want)
			}
		})
	}
}

func TestSubscription_CloseStopsCallbacks(t *testing.T) {
	for name, store := range setupStores(t) {
		t.Run(name, func(t *testing.T) {
			calls := 0
			sub := store.Subscribe(func(string) { calls++ })

			if err := store.PutString(constants.KeyRefreshInterval, "30"); err != nil {
				t.Fatal(err)
			}
			sub.Close()
			sub.Close()
			if err := store.PutString(constants.KeyRefreshInterval, "120"); err != nil {
				t.Fatal(err)
			}
			if calls != 1 {
				t.Errorf("expected 1 callback, got %d", calls)
			}
		})
	}
}

func TestLocationProvider(t *testing.T) {
	for name, store := range setupStores(t) {
		t.Run(name, func(t *testing.T) {
			if err := store.SetLocationProviderEnabled(true); err != nil {
				t.Fatalf("SetLocationProviderEnabled failed: %v", err)
			}
			enabled, err := store.LocationProviderEnabled()
			if err != nil || !enabled {
				t.Errorf("LocationProviderEnabled = %v, %v; want true", enabled, err)
			}
		})
	}
}

func TestCalendars(t *testing.T) {
	for name, store := range setupStores(t) {
		t.Run(name, func(t *testing.T) {
			if err := store.AddCalendar(models.Calendar{ID: "1", DisplayName: "Work"}); err != nil {
				t.Fatal(err)
			}
			if err := store.AddCalendar(models.Calendar{ID: "2", DisplayName: "Home"}); err != nil {
				t.Fatal(err)
			}
			if err := store.AddCalendar(models.Calendar{ID: "1", DisplayName: "Office"}); err != nil {
				t.Fatal(err)
			}

			calendars, err := store.ListCalendars()
			if err != nil {
				t.Fatalf("ListCalendars failed: %v", err)
			}
			want := []models.Calendar{{ID: "1", DisplayName: "Office"}, {ID: "2", DisplayName: "Home"}}
			if !reflect.DeepEqual(calendars, want) {
				t.Errorf("ListCalendars = %v, want %v", calendars, want)
			}

			if err := store.RemoveCalendar("1"); err != nil {
				t.Fatalf("RemoveCalendar failed: %v", err)
			}
			if err := store.RemoveCalendar("1"); !errors.Is(err, ErrCalendarNotFound) {
				t.Errorf("expected ErrCalendarNotFound, got %v", err)
			}
			if err := store.AddCalendar(models.Calendar{DisplayName: "No ID"}); err == nil {
				t.Error("expected error for empty calendar id")
			}
		})
	}
}

func TestReloadPersists(t *testing.T) {
	dir := t.TempDir()
	for _, path := range []string{filepath.Join(dir, "p.db"), filepath.Join(dir, "p.json")} {
		t.Run(filepath.Ext(path), func(t *testing.T) {
			store := New(path)
			if err := store.Init(); err != nil {
				t.Fatal(err)
			}
			if err := store.PutBool(constants.KeyShowTimestamp, false); err != nil {
				t.Fatal(err)
			}
			if err := store.Close(); err != nil {
				t.Fatal(err)
			}

			reopened := New(path)
			if err := reopened.Load(); err != nil {
				t.Fatalf("Load failed: %v", err)
			}
			defer reopened.Close()
			got, err := reopened.GetBool(constants.KeyShowTimestamp, true)
			if err != nil || got {
				t.Errorf("GetBool after reload = %v, %v; want false", got, err)
			}
		})
	}
}

func TestLoadUninitialized(t *testing.T) {
	dir := t.TempDir()
	for _, store := range []Provider{
		NewSQLiteStore(filepath.Join(dir, "none.db")),
		NewJSONStore(filepath.Join(dir, "none.json")),
	} {
		if err := store.Load(); err == nil {
			t.Errorf("expected error loading uninitialized %s", store.GetConfigPath())
		}
	}
}

func TestNotLoaded(t *testing.T) {
	store := NewSQLiteStore(filepath.Join(t.TempDir(), "x.db"))
	if _, err := store.GetBool(constants.KeyUseMetric, true); !errors.Is(err, ErrNotLoaded) {
		t.Errorf("expected ErrNotLoaded, got %v", err)
	}
}

func TestInitIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "twice.db")
	store := NewSQLiteStore(path)
	if err := store.Init(); err != nil {
		t.Fatal(err)
	}
	if err := store.PutBool(constants.KeyUseMetric, false); err != nil {
		t.Fatal(err)
	}
	if err := store.Init(); err != nil {
		t.Fatalf("second Init failed: %v", err)
	}
	defer store.Close()

	got, _ := store.GetBool(constants.KeyUseMetric, true)
	if got {
		t.Error("second Init should not reset stored values")
	}
}
