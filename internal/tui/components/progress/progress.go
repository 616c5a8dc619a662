package progress

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	spinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Italic(true)
)

// Model is a modal busy indicator
type Model struct {
	spinner    spinner.Model
	label      string
	visible    bool
	dismissals int
}

func New() Model {
	return Model{
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(spinnerStyle)),
	}
}

// Show displays the indicator and starts the spinner
func (m *Model) Show(label string) tea.Cmd {
	m.label = label
	m.visible = true
	return m.spinner.Tick
}

// Dismiss hides the indicator. Dismissing a hidden indicator is a no-op.
func (m *Model) Dismiss() {
	if !m.visible {
		return
	}
	m.visible = false
	m.dismissals++
}

func (m Model) Visible() bool { return m.visible }

// Dismissals counts how many times a visible indicator was hidden
func (m Model) Dismissals() int { return m.dismissals }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if !m.visible {
		return m, nil
	}
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if !m.visible {
		return ""
	}
	return m.spinner.View() + " " + labelStyle.Render(m.label)
}
