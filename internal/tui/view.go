package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/habitual/internal/constants"
	"github.com/julianstephens/habitual/internal/tui/nav"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.route.Name {
	case nav.RouteDetail:
		content = m.detailPage.View()
	default:
		content = m.list.View()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewHeader(),
		docStyle.Render(content),
		m.help.View(m),
	)
}

func (m Model) viewHeader() string {
	return lipgloss.JoinHorizontal(lipgloss.Top,
		headerStyle.Render(constants.AppName),
		pathStyle.Render(m.route.Path()),
	)
}
