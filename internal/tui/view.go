package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/lockclock/internal/constants"
)

func (m Model) View() string {
	if m.Quitting {
		return ""
	}

	var content string
	switch m.State {
	case constants.StateList:
		content = m.Prefs.View()
	default:
		if m.Form != nil {
			content = m.Form.View()
		}
	}

	parts := []string{titleStyle.Render("Widget Settings"), docStyle.Render(content)}
	if m.Progress.Visible() {
		parts = append(parts, docStyle.Render(m.Progress.View()))
	}
	if m.Toast.Visible() {
		parts = append(parts, m.Toast.View())
	}
	if m.FormError != "" {
		parts = append(parts, dangerStyle.Render(m.FormError))
	}
	parts = append(parts, m.Help.View(m))

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
