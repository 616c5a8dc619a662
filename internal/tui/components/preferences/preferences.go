package preferences

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// RowKind selects how a row reacts to activation
type RowKind int

const (
	RowToggle RowKind = iota
	RowDialog
	RowList
	RowMultiSelect
)

// Row is one preference control
type Row struct {
	Key     string
	Title   string
	Summary string
	Kind    RowKind
	Checked bool
	Enabled bool
}

func (r Row) FilterValue() string { return r.Title }

// ActivateMsg is sent when an enabled row is activated
type ActivateMsg struct {
	Key  string
	Kind RowKind
}

type KeyMap struct {
	Activate key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Activate: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter/space", "change"),
		),
	}
}

var (
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	titleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true)
	summaryStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	disabledStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
)

type rowDelegate struct{}

func (d rowDelegate) Height() int                             { return 2 }
func (d rowDelegate) Spacing() int                            { return 1 }
func (d rowDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }
func (d rowDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	row, ok := item.(Row)
	if !ok {
		return
	}

	prefix := "  "
	if index == m.Index() {
		prefix = cursorStyle.Render("> ")
	}

	title := row.Title
	if row.Kind == RowToggle {
		box := "[ ]"
		if row.Checked {
			box = "[x]"
		}
		title = box + " " + title
	}

	titleText := titleStyle.Render(title)
	summaryText := summaryStyle.Render(row.Summary)
	if !row.Enabled {
		titleText = disabledStyle.Render(title)
		summaryText = disabledStyle.Render(row.Summary)
	}
	fmt.Fprintf(w, "%s%s\n  %s", prefix, titleText, summaryText)
}

// Model is the scrollable list of preference rows
type Model struct {
	list  list.Model
	keys  KeyMap
	index map[string]int
}

func New(rows []Row, width, height int) Model {
	items := make([]list.Item, len(rows))
	index := make(map[string]int, len(rows))
	for i, r := range rows {
		items[i] = r
		index[r.Key] = i
	}

	l := list.New(items, rowDelegate{}, width, height)
	l.Title = "Widget Settings"
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	// quit and help are owned by the main model
	l.KeyMap.Quit.SetEnabled(false)
	l.KeyMap.ForceQuit.SetEnabled(false)
	l.KeyMap.ShowFullHelp.SetEnabled(false)
	l.KeyMap.CloseFullHelp.SetEnabled(false)

	return Model{list: l, keys: DefaultKeyMap(), index: index}
}

// Row returns the row stored under key
func (m Model) Row(key string) (Row, bool) {
	i, ok := m.index[key]
	if !ok {
		return Row{}, false
	}
	row, ok := m.list.Items()[i].(Row)
	return row, ok
}

// Selected returns the row under the cursor
func (m Model) Selected() (Row, bool) {
	row, ok := m.list.SelectedItem().(Row)
	return row, ok
}

// Select moves the cursor to the row stored under key
func (m *Model) Select(key string) {
	if i, ok := m.index[key]; ok {
		m.list.Select(i)
	}
}

func (m *Model) SetChecked(key string, checked bool) {
	m.edit(key, func(r *Row) { r.Checked = checked })
}

func (m *Model) SetSummary(key, summary string) {
	m.edit(key, func(r *Row) { r.Summary = summary })
}

func (m *Model) SetEnabled(key string, enabled bool) {
	m.edit(key, func(r *Row) { r.Enabled = enabled })
}

func (m *Model) edit(key string, fn func(*Row)) {
	row, ok := m.Row(key)
	if !ok {
		return
	}
	fn(&row)
	m.list.SetItem(m.index[key], row)
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, m.keys.Activate) {
		row, ok := m.Selected()
		if !ok || !row.Enabled {
			return m, nil
		}
		return m, func() tea.Msg { return ActivateMsg{Key: row.Key, Kind: row.Kind} }
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 {
		return "\n  No preferences."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}

// HelpKeys returns the bindings shown in the main help view
func (m Model) HelpKeys() []key.Binding {
	return []key.Binding{m.list.KeyMap.CursorUp, m.list.KeyMap.CursorDown, m.keys.Activate}
}
