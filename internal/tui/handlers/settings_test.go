package handlers

import (
	"errors"
	"testing"

	"github.com/julianstephens/lockclock/internal/constants"
	"github.com/julianstephens/lockclock/internal/storage"
	"github.com/julianstephens/lockclock/internal/tui/components/preferences"
	"github.com/julianstephens/lockclock/internal/tui/state"
)

func TestFreshStoreRows(t *testing.T) {
	m := newTestModel(t, setupStore(t, nil), nil, nil)

	for _, key := range []string{constants.KeyUseMetric, constants.KeyShowLocation, constants.KeyShowTimestamp} {
		row, ok := m.Prefs.Row(key)
		if !ok || !row.Checked {
			t.Errorf("expected %s checked", key)
		}
	}
	row, _ := m.Prefs.Row(constants.KeyCustomLocationString)
	if row.Summary != constants.DeviceLocationSummary || row.Enabled {
		t.Errorf("unexpected custom location row %+v", row)
	}
}

func TestToggleRow(t *testing.T) {
	store := setupStore(t, nil)
	m := newTestModel(t, store, nil, nil)

	ToggleRow(m, constants.KeyUseMetric)

	got, err := store.GetBool(constants.KeyUseMetric, true)
	if err != nil || got {
		t.Errorf("expected use_metric stored false, got %v (%v)", got, err)
	}
	if row, _ := m.Prefs.Row(constants.KeyUseMetric); row.Checked {
		t.Error("expected row unchecked")
	}
}

func TestToggleCustomLocationOff(t *testing.T) {
	store := setupStore(t, func(s storage.Provider) {
		s.PutBool(constants.KeyUseCustomLocation, true)
		s.PutString(constants.KeyCustomLocationString, "Berlin")
	})
	m := newTestModel(t, store, nil, nil)

	if row, _ := m.Prefs.Row(constants.KeyCustomLocationString); row.Summary != "Berlin" || !row.Enabled {
		t.Fatalf("expected stored location summary, got %+v", row)
	}

	ToggleRow(m, constants.KeyUseCustomLocation)

	row, _ := m.Prefs.Row(constants.KeyCustomLocationString)
	if row.Summary != constants.DeviceLocationSummary {
		t.Errorf("expected placeholder summary, got %q", row.Summary)
	}
	if row.Enabled {
		t.Error("expected custom location row disabled")
	}
}

func TestToggleCustomLocationOnWithoutString(t *testing.T) {
	m := newTestModel(t, setupStore(t, nil), nil, nil)

	ToggleRow(m, constants.KeyUseCustomLocation)

	if row, _ := m.Prefs.Row(constants.KeyCustomLocationString); row.Summary != constants.UnknownLocationSummary {
		t.Errorf("expected %q, got %q", constants.UnknownLocationSummary, row.Summary)
	}
}

func TestRefreshChangeSignalsOnce(t *testing.T) {
	sig := &fakeSignaler{}
	m := newTestModel(t, setupStore(t, nil), nil, sig)

	if err := SaveRefreshSelection(m, "120"); err != nil {
		t.Fatalf("SaveRefreshSelection failed: %v", err)
	}
	if n := m.Session.Pending(); n != 1 {
		t.Fatalf("expected 1 pending change, got %d", n)
	}

	msg, ok := m.Session.WaitForChange()().(state.SettingChangedMsg)
	if !ok || msg.Key != constants.KeyRefreshInterval {
		t.Fatalf("unexpected change message %+v", msg)
	}
	for _, out := range collect(HandleSettingChanged(m, msg)) {
		sent, ok := out.(SignalSentMsg)
		if !ok || sent.Err != nil {
			t.Errorf("unexpected signal result %+v", out)
		}
	}

	if keys := sig.Keys(); len(keys) != 1 || keys[0] != constants.KeyRefreshInterval {
		t.Errorf("expected one signal for refresh interval, got %v", keys)
	}
	if row, _ := m.Prefs.Row(constants.KeyRefreshInterval); row.Summary != "2 hours" {
		t.Errorf("expected summary '2 hours', got %q", row.Summary)
	}
}

func TestUnchangedValueDoesNotSignal(t *testing.T) {
	m := newTestModel(t, setupStore(t, nil), nil, &fakeSignaler{})

	if err := SaveRefreshSelection(m, constants.DefaultRefreshInterval); err != nil {
		t.Fatal(err)
	}
	if n := m.Session.Pending(); n != 0 {
		t.Errorf("expected no change notification, got %d", n)
	}
}

func TestSignalCmd(t *testing.T) {
	if SignalCmd(nil, constants.KeyUseMetric) != nil {
		t.Error("expected nil command without signaler")
	}

	sig := &fakeSignaler{err: errors.New("boom")}
	msg := SignalCmd(sig, constants.KeyUseMetric)().(SignalSentMsg)
	if msg.Err == nil || msg.Key != constants.KeyUseMetric {
		t.Errorf("unexpected message %+v", msg)
	}
	HandleSignalSent(msg)
}

func TestHandleActivateToggle(t *testing.T) {
	store := setupStore(t, nil)
	m := newTestModel(t, store, nil, nil)

	HandleActivate(m, preferences.ActivateMsg{Key: constants.KeyShowTimestamp, Kind: preferences.RowToggle})

	if got, _ := store.GetBool(constants.KeyShowTimestamp, true); got {
		t.Error("expected show_timestamp off")
	}
}
