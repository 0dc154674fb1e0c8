package tui

import "github.com/charmbracelet/lipgloss"

var (
	primaryColor = lipgloss.Color("#004d99")
	accentColor  = lipgloss.Color("#007bff")
	errorColor   = lipgloss.Color("#dc3545")
	mutedColor   = lipgloss.Color("#6c757d")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			MarginBottom(1)

	labelStyle = lipgloss.NewStyle().Foreground(primaryColor)

	errorStyle = lipgloss.NewStyle().Foreground(errorColor)

	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(primaryColor)

	sectionStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accentColor).
			Padding(0, 1).
			MarginTop(1)

	helpStyle = lipgloss.NewStyle().Foreground(mutedColor).MarginTop(1)
)
