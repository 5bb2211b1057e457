package ui

import "github.com/charmbracelet/lipgloss"

var (
	appStyle = lipgloss.NewStyle().Padding(1, 2)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ECFD65")).
			Bold(true)

	langStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00AAFF"))

	arrowStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))

	originalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#AAAAAA"))

	translatedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Bold(true)

	tagStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#000000")).
			Background(lipgloss.Color("#ECFD65")).
			Padding(0, 1)

	timeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF8800"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF5555")).
			Bold(true)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00FF00"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))

	pickerSelectedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#ECFD65")).
				Bold(true)
)
