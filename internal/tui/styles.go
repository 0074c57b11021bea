package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorPrimary    = lipgloss.Color("#7aa2f7")
	colorForeground = lipgloss.Color("#c0caf5")
	colorMuted      = lipgloss.Color("#565f89")
	colorError      = lipgloss.Color("#f7768e")
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary).
			Padding(0, 1)

	columnStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorMuted).
			Padding(0, 1)

	activeColumnStyle = columnStyle.
				BorderForeground(colorPrimary)

	columnTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorForeground)

	itemStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	selectedItemStyle = lipgloss.NewStyle().
				Foreground(colorForeground).
				Bold(true)

	emptyColumnStyle = lipgloss.NewStyle().
				Foreground(colorMuted).
				Italic(true)

	statusLineStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Padding(0, 1)

	errorLineStyle = lipgloss.NewStyle().
			Foreground(colorError).
			Padding(0, 1)
)
