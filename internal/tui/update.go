package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/habitual/internal/logger"
	"github.com/julianstephens/habitual/internal/tui/components/detailpage"
	"github.com/julianstephens/habitual/internal/tui/nav"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.list.SetWidth(msg.Width - docStyle.GetHorizontalFrameSize())
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.ForceQuit) {
			m.quitting = true
			return m, tea.Quit
		}
		if !m.capturing() {
			switch {
			case key.Matches(msg, m.keys.Quit):
				m.quitting = true
				return m, tea.Quit
			case key.Matches(msg, m.keys.Help):
				m.help.ShowAll = !m.help.ShowAll
				return m, nil
			}
		}

	case nav.NavigateMsg:
		return m.navigate(msg.To)
	}

	// Results are reduced even when the page that asked for them is gone.
	m.coll.Apply(msg)
	return m.forward(msg)
}

func (m Model) forward(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if m.route.Name == nav.RouteDetail {
		m.detailPage, cmd = m.detailPage.Update(msg)
	} else {
		m.list, cmd = m.list.Update(msg)
	}
	return m, cmd
}

func (m Model) navigate(to nav.Route) (tea.Model, tea.Cmd) {
	logger.Debug("navigate", "from", m.route.Path(), "to", to.Path())
	if m.route.Name == nav.RouteDetail {
		m.detailPage.Unmount()
	}
	m.route = to
	if to.Name == nav.RouteDetail {
		m.detailPage = detailpage.New(m.coll, m.detail, to.ID)
	}
	return m, m.mountCmd()
}
