package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/lockclock/internal/tui"
	"github.com/julianstephens/lockclock/internal/tui/state"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *Context) error {
	ctx.PerformAutomaticBackup()

	model := tui.NewModel(state.Deps{
		Store:          ctx.Store,
		Geocoder:       ctx.Geocoder,
		Calendars:      ctx.Calendars,
		Signaler:       ctx.Notifier,
		GeocodeTimeout: ctx.Config.Geocoder.Timeout,
	})
	defer model.Close()

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("settings screen failed: %w", err)
	}
	return nil
}
