package toast

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ExpiredMsg hides the toast it was scheduled for
type ExpiredMsg struct {
	ID int
}

var style = lipgloss.NewStyle().
	Foreground(lipgloss.Color("214")).
	Italic(true).
	Padding(0, 1)

// Model is a transient one-line notification
type Model struct {
	id      int
	text    string
	visible bool
}

// Show displays text and schedules its expiry after d
func (m *Model) Show(text string, d time.Duration) tea.Cmd {
	m.id++
	m.text = text
	m.visible = true
	id := m.id
	return tea.Tick(d, func(time.Time) tea.Msg {
		return ExpiredMsg{ID: id}
	})
}

func (m Model) Visible() bool { return m.visible }
func (m Model) Text() string  { return m.text }

// Update hides the toast when its own expiry arrives. Expiries of replaced
// toasts are ignored.
func (m Model) Update(msg tea.Msg) Model {
	if msg, ok := msg.(ExpiredMsg); ok && msg.ID == m.id {
		m.visible = false
	}
	return m
}

func (m Model) View() string {
	if !m.visible {
		return ""
	}
	return style.Render(m.text)
}
