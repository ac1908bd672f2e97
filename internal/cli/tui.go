package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/habitual/internal/store"
	"github.com/julianstephens/habitual/internal/tui"
	"github.com/julianstephens/habitual/internal/tui/nav"
)

type TuiCmd struct {
	Route string `help:"Page to open first, \"/\" or \"/detail/<id>\"." default:"/"`
}

func (c *TuiCmd) Run(ctx *Context) error {
	start, err := nav.ParseRoute(c.Route)
	if err != nil {
		return err
	}

	if err := ctx.Ping(); err != nil {
		return err
	}

	coll, err := ctx.Collection()
	if err != nil {
		return err
	}

	ctx.PerformAutomaticBackup()

	p := tea.NewProgram(tui.NewModel(coll, store.NewDetail(), start), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui exited: %w", err)
	}
	return nil
}
