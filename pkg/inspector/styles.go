package inspector

import "github.com/charmbracelet/lipgloss"

var (
	colorPrimary = lipgloss.Color("#e63948")
	colorMuted   = lipgloss.Color("8")
	colorAccent  = lipgloss.Color("#11C3DB")
	colorError   = lipgloss.Color("9")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(colorPrimary).
			Padding(0, 1)

	selectedRowStyle = lipgloss.NewStyle().
				Background(lipgloss.Color("17")).
				Bold(true)

	mutedStyle = lipgloss.NewStyle().Foreground(colorMuted)
	errorStyle = lipgloss.NewStyle().Foreground(colorError)
	accentStyle = lipgloss.NewStyle().Foreground(colorAccent)

	borderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorAccent)
)
