package habitform

import "github.com/charmbracelet/lipgloss"

var errorStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("196")).
	Bold(true)
