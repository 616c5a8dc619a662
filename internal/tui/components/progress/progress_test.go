package progress

import "testing"

func TestShowDismiss(t *testing.T) {
	m := New()
	if cmd := m.Show("Working"); cmd == nil {
		t.Error("expected spinner tick")
	}
	if !m.Visible() || m.View() == "" {
		t.Error("expected visible indicator")
	}

	m.Dismiss()
	m.Dismiss()
	if m.Visible() {
		t.Error("expected hidden indicator")
	}
	if m.Dismissals() != 1 {
		t.Errorf("expected 1 dismissal, got %d", m.Dismissals())
	}
}

func TestUpdateWhileHidden(t *testing.T) {
	m := New()
	if _, cmd := m.Update(m.spinner.Tick()); cmd != nil {
		t.Error("hidden indicator should stop ticking")
	}
}
