package detailpage

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/habitual/internal/tui/components/days"
	"github.com/julianstephens/habitual/internal/utils"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginBottom(1)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("245"))

	skeletonStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("238"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	dangerStyle = errorStyle
)

const (
	failedTitle   = "Failed to load habit"
	notFoundTitle = "Habit not found"
)

func (m Model) View() string {
	h, ok := m.detail.Selected()

	switch {
	case !ok && (m.coll.Loading() || (!m.coll.Loaded() && m.coll.Error() == "")):
		return m.viewSkeleton()
	case m.coll.Error() != "":
		return m.viewError()
	case !ok:
		return titleStyle.Render(notFoundTitle) + "\n" +
			fmt.Sprintf("No habit with id %q.\n", m.id) +
			"Press esc to go back to the list."
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(h.Name))
	b.WriteString("\n")
	if h.Description != "" {
		b.WriteString(sectionStyle.Render("Description"))
		b.WriteString("\n")
		b.WriteString(h.Description)
		b.WriteString("\n\n")
	}
	b.WriteString(sectionStyle.Render("Frequency"))
	b.WriteString("\n")
	b.WriteString(h.Frequency.Label())
	b.WriteString("\n\n")
	b.WriteString(sectionStyle.Render("Last 5 days"))
	b.WriteString("\n")
	b.WriteString(days.Column(h, utils.LastFiveDays(), m.day, utils.LongDayLabel))
	b.WriteString("\n")

	if m.confirming {
		b.WriteString("\n")
		b.WriteString(dangerStyle.Render(fmt.Sprintf("Delete %q?", h.Name)))
		b.WriteString("\n[y] Yes  [n] No\n")
	}
	if m.deleting {
		b.WriteString("\n" + m.spinner.View() + " Deleting...\n")
	}
	return b.String()
}

func (m Model) viewSkeleton() string {
	bar := func(n int) string { return skeletonStyle.Render(strings.Repeat("░", n)) }
	lines := []string{
		m.spinner.View() + " " + bar(24),
		"",
		bar(40),
		bar(32),
		"",
	}
	for i := 0; i < 5; i++ {
		lines = append(lines, bar(18))
	}
	return strings.Join(lines, "\n")
}

func (m Model) viewError() string {
	return titleStyle.Render(failedTitle) + "\n" +
		errorStyle.Render(m.coll.Error()) + "\n" +
		"Press r to retry or esc to go back."
}
