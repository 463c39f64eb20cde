package tui

import "github.com/charmbracelet/lipgloss"

const (
	colorGrey     = "241"
	colorDarkGrey = "238"
	colorMagenta  = "170"
	colorGreen    = "42"
	colorRed      = "196"
	colorBlue     = "69"
)

var (
	captionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(colorMagenta)).Bold(true).PaddingLeft(2)
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color(colorGrey)).PaddingLeft(2)

	postStyle = lipgloss.NewStyle().
			PaddingLeft(2)

	selectedStyle = lipgloss.NewStyle().
			PaddingLeft(2).
			Foreground(lipgloss.Color(colorGreen)).
			Bold(true)

	detailStyle = lipgloss.NewStyle().
			PaddingLeft(6).
			Foreground(lipgloss.Color(colorGrey))

	emptyStyle = lipgloss.NewStyle().
			PaddingLeft(2).
			Foreground(lipgloss.Color(colorDarkGrey)).
			Italic(true)

	messageStyle = lipgloss.NewStyle().PaddingLeft(2).Foreground(lipgloss.Color(colorBlue))
	errorStyle   = lipgloss.NewStyle().PaddingLeft(2).Foreground(lipgloss.Color(colorRed))

	dialogStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(colorMagenta)).
			Padding(1, 2).
			MarginLeft(2)

	dangerDialogStyle = dialogStyle.BorderForeground(lipgloss.Color(colorRed))
)
