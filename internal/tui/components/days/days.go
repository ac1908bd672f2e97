// Package days renders the row of completion toggles for the trailing days.
package days

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/habitual/internal/constants"
	"github.com/julianstephens/habitual/internal/models"
)

const (
	checked   = "[x]"
	unchecked = "[ ]"
)

var (
	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)
	doneStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))
	idleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

type KeyMap struct {
	Prev   key.Binding
	Next   key.Binding
	Jump   key.Binding
	Toggle key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Prev: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "newer day"),
		),
		Next: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "older day"),
		),
		Jump: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5"),
			key.WithHelp("1-5", "pick day"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "toggle day"),
		),
	}
}

// Cursor is the selected position in the row, 0 being today.
type Cursor int

// Move handles the day selection keys and reports whether msg was one of them.
func (c *Cursor) Move(msg tea.KeyMsg, keys KeyMap) bool {
	switch {
	case key.Matches(msg, keys.Prev):
		if *c > 0 {
			*c--
		}
	case key.Matches(msg, keys.Next):
		if *c < constants.TrailingDays-1 {
			*c++
		}
	case key.Matches(msg, keys.Jump):
		*c = Cursor(msg.String()[0] - '1')
	default:
		return false
	}
	return true
}

// Day returns the date under the cursor from days, or "".
func (c Cursor) Day(days []string) string {
	if int(c) < 0 || int(c) >= len(days) {
		return ""
	}
	return days[c]
}

// Row renders one checkbox per day. The cursor is highlighted only when active.
func Row(h models.Habit, days []string, cursor Cursor, active bool, label func(string) string) string {
	cells := make([]string, len(days))
	for i, day := range days {
		box := unchecked
		style := idleStyle
		if h.IsCompleted(day) {
			box = checked
			style = doneStyle
		}
		cell := box + " " + label(day)
		if active && Cursor(i) == cursor {
			style = selectedStyle
		}
		cells[i] = style.Render(cell)
	}
	return strings.Join(cells, "  ")
}

// Column renders one checkbox per line, for the detail view.
func Column(h models.Habit, days []string, cursor Cursor, label func(string) string) string {
	lines := make([]string, len(days))
	for i, day := range days {
		box := unchecked
		style := idleStyle
		if h.IsCompleted(day) {
			box = checked
			style = doneStyle
		}
		prefix := "  "
		if Cursor(i) == cursor {
			prefix = "> "
			style = selectedStyle
		}
		lines[i] = prefix + style.Render(box+" "+label(day))
	}
	return strings.Join(lines, "\n")
}
