package listpage

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/tui/components/days"
	"github.com/julianstephens/habitual/internal/utils"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginBottom(1)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	activeCardStyle = cardStyle.
			BorderForeground(lipgloss.Color("205"))

	nameStyle = lipgloss.NewStyle().Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	bannerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("231")).
			Background(lipgloss.Color("124")).
			Padding(0, 1)

	dangerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)
)

const (
	loadingText = "Loading habits..."
	emptyText   = "You have no habits yet"
)

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Habits"))
	b.WriteString("\n")

	if err := m.coll.Error(); err != "" && m.form == nil {
		b.WriteString(bannerStyle.Render(err))
		b.WriteString("\n\n")
	}

	if m.form != nil {
		b.WriteString(m.form.View())
		return b.String()
	}

	if m.deleteID != "" {
		name := m.deleteID
		if h, ok := m.coll.Find(m.deleteID); ok {
			name = h.Name
		}
		b.WriteString(dangerStyle.Render(fmt.Sprintf("Delete %q?", name)))
		b.WriteString("\n[y] Yes  [n] No\n")
		return b.String()
	}

	habits := m.coll.Habits()
	switch {
	case m.coll.Loading() && len(habits) == 0:
		b.WriteString(m.spinner.View() + " " + loadingText)
		return b.String()
	case len(habits) == 0 && m.coll.Error() == "":
		b.WriteString(mutedStyle.Render(emptyText))
		b.WriteString("\n")
		b.WriteString(mutedStyle.Render("Press a to add one."))
		return b.String()
	}

	trailing := utils.LastFiveDays()
	cards := make([]string, len(habits))
	for i, h := range habits {
		cards[i] = m.renderCard(h, trailing, i == m.cursor)
	}
	b.WriteString(strings.Join(cards, "\n"))
	return b.String()
}

func (m Model) renderCard(h models.Habit, trailing []string, active bool) string {
	lines := []string{nameStyle.Render(h.Name)}
	if h.Description != "" {
		lines = append(lines, h.Description)
	}
	lines = append(lines,
		mutedStyle.Render("Frequency: "+h.Frequency.Label()),
		days.Row(h, trailing, m.day, active, utils.ShortDayLabel),
	)

	style := cardStyle
	if active {
		style = activeCardStyle
	}
	if m.width > 4 {
		style = style.Width(m.width - 4)
	}
	return style.Render(strings.Join(lines, "\n"))
}
