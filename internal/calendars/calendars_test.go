package calendars

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	gokeyring "github.com/zalando/go-keyring"

	"github.com/julianstephens/lockclock/internal/config"
	"github.com/julianstephens/lockclock/internal/constants"
	"github.com/julianstephens/lockclock/internal/keyring"
	"github.com/julianstephens/lockclock/internal/models"
	"github.com/julianstephens/lockclock/internal/storage"
)

type staticProvider struct {
	cals []models.Calendar
	err  error
}

func (p staticProvider) Calendars(ctx context.Context) ([]models.Calendar, error) {
	return p.cals, p.err
}

func TestFindEntries_ProviderOrder(t *testing.T) {
	entries := FindEntries(context.Background(), staticProvider{cals: []models.Calendar{
		{ID: "1", DisplayName: "Work"},
		{ID: "2", DisplayName: "Home"},
	}})

	if !reflect.DeepEqual(entries.Entries, []string{"Work", "Home"}) {
		t.Errorf("entries = %v, want [Work Home]", entries.Entries)
	}
	if !reflect.DeepEqual(entries.EntryValues, []string{"1", "2"}) {
		t.Errorf("entry values = %v, want [1 2]", entries.EntryValues)
	}
}

func TestFindEntries_ZeroRowsAndErrors(t *testing.T) {
	tests := []struct {
		name     string
		provider Provider
	}{
		{"zero rows", staticProvider{}},
		{"provider error", staticProvider{err: errors.New("unavailable")}},
		{"nil provider", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries := FindEntries(context.Background(), tt.provider)
			if entries.Len() != 0 || len(entries.Entries) != 0 {
				t.Errorf("expected empty entries, got %+v", entries)
			}
		})
	}
}

func TestLocalProvider(t *testing.T) {
	store := storage.NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	for _, cal := range []models.Calendar{{ID: "w", DisplayName: "Work"}, {ID: "h", DisplayName: "Home"}} {
		if err := store.AddCalendar(cal); err != nil {
			t.Fatal(err)
		}
	}

	entries := FindEntries(context.Background(), NewLocalProvider(store))
	if !reflect.DeepEqual(entries.Entries, []string{"Work", "Home"}) {
		t.Errorf("entries = %v", entries.Entries)
	}
}

func writeICS(t *testing.T, dir, name, calName string) {
	t.Helper()
	content := "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:-//lockclock//test//EN\r\n"
	if calName != "" {
		content += "X-WR-CALNAME:" + calName + "\r\n"
	}
	content += "BEGIN:VEVENT\r\nUID:1@test\r\nDTSTAMP:20240101T000000Z\r\nDTSTART:20240101T090000Z\r\nSUMMARY:Standup\r\nEND:VEVENT\r\nEND:VCALENDAR\r\n"
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestICSDirProvider(t *testing.T) {
	dir := t.TempDir()
	writeICS(t, dir, "b-personal.ics", "Home")
	writeICS(t, dir, "a-team.ics", "Work")
	writeICS(t, dir, "c-untitled.ics", "")
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0644); err != nil {
		t.Fatal(err)
	}

	cals, err := NewICSDirProvider(dir).Calendars(context.Background())
	if err != nil {
		t.Fatalf("Calendars failed: %v", err)
	}
	want := []models.Calendar{
		{ID: "a-team", DisplayName: "Work"},
		{ID: "b-personal", DisplayName: "Home"},
		{ID: "c-untitled", DisplayName: "c-untitled"},
	}
	if !reflect.DeepEqual(cals, want) {
		t.Errorf("Calendars = %v, want %v", cals, want)
	}
}

func TestICSDirProvider_MissingDir(t *testing.T) {
	_, err := NewICSDirProvider(filepath.Join(t.TempDir(), "missing")).Calendars(context.Background())
	if err == nil {
		t.Error("expected error for missing directory")
	}
}

func TestCalDAVProvider_ServerError(t *testing.T) {
	var sawAuth bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		sawAuth = ok && user == "alice" && pass == "pw"
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer server.Close()

	provider := NewCalDAVProvider(server.URL, "alice", "pw")
	if _, err := provider.Calendars(context.Background()); err == nil {
		t.Error("expected error from failing server")
	}
	if !sawAuth {
		t.Error("expected basic auth credentials on request")
	}

	entries := FindEntries(context.Background(), provider)
	if entries.Len() != 0 {
		t.Errorf("expected zero entries on provider error, got %d", entries.Len())
	}
}

func TestCalDAVDisplayName(t *testing.T) {
	if got := caldavDisplayName("Work", "/cal/work/"); got != "Work" {
		t.Errorf("got %q", got)
	}
	if got := caldavDisplayName("", "/cal/alice/family/"); got != "family" {
		t.Errorf("got %q", got)
	}
}

func TestNew(t *testing.T) {
	gokeyring.MockInit()
	store := storage.NewJSONStore(filepath.Join(t.TempDir(), "s.json"))

	cfg := config.Default()
	p, err := New(cfg, store)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := p.(*LocalProvider); !ok {
		t.Errorf("expected local provider, got %T", p)
	}

	cfg.Calendar.Source = constants.CalendarSourceICS
	cfg.Calendar.ICSDir = t.TempDir()
	p, err = New(cfg, store)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := p.(*ICSDirProvider); !ok {
		t.Errorf("expected ics provider, got %T", p)
	}

	cfg.Calendar.Source = constants.CalendarSourceCalDAV
	cfg.Calendar.CalDAVURL = "https://dav.example.com"
	cfg.Calendar.CalDAVUsername = "alice"
	if _, err := New(cfg, store); !errors.Is(err, keyring.ErrNotFound) {
		t.Errorf("expected keyring ErrNotFound without password, got %v", err)
	}
	if err := keyring.SetCalDAVPassword("alice", "pw"); err != nil {
		t.Fatal(err)
	}
	p, err = New(cfg, store)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := p.(*CalDAVProvider); !ok {
		t.Errorf("expected caldav provider, got %T", p)
	}

	cfg.Calendar.Source = "exchange"
	if _, err := New(cfg, store); err == nil {
		t.Error("expected error for unknown source")
	}
}
