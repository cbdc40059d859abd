package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorAccent  = lipgloss.Color("#58a6ff")
	colorPulse   = lipgloss.Color("#f0883e")
	colorMuted   = lipgloss.Color("#8b949e")
	colorError   = lipgloss.Color("#f85149")
	colorPrimary = lipgloss.Color("#c9d1d9")

	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)

	inputStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorMuted).
			Padding(0, 1)

	pulseStyle = inputStyle.BorderForeground(colorPulse)

	buttonStyle = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Background(lipgloss.Color("#21262d")).
			Padding(0, 1)

	buttonFocusedStyle = buttonStyle.
				Foreground(lipgloss.Color("#0d1117")).
				Background(colorAccent).
				Bold(true)

	buttonDisabledStyle = buttonStyle.Foreground(colorMuted)

	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	errorStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorError)
	lyricsStyle  = lipgloss.NewStyle().Foreground(colorPrimary).PaddingLeft(2)
	mutedStyle   = lipgloss.NewStyle().Foreground(colorMuted)
	helpStyle    = mutedStyle.Italic(true)
)
