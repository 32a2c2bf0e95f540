package tui

import "github.com/charmbracelet/lipgloss"

// Palette used by every deck and modal. applySkin overwrites it.
var (
	ColorBlue   = lipgloss.Color("#3b82f6")
	ColorGray   = lipgloss.Color("#6b7280")
	ColorWhite  = lipgloss.Color("#f9fafb")
	ColorNavy   = lipgloss.Color("#1e293b")
	ColorRed    = lipgloss.Color("#ef4444")
	ColorOrange = lipgloss.Color("#f59e0b")
	ColorGreen  = lipgloss.Color("#22c55e")
)

var (
	sectionStyle       lipgloss.Style
	activeSectionStyle lipgloss.Style
	deckTitleStyle     lipgloss.Style
	helpStyle          lipgloss.Style
	errorStyle         lipgloss.Style
	promptStyle        lipgloss.Style
)

func init() {
	rebuildStyles()
}

// rebuildStyles derives the shared styles from the current palette.
func rebuildStyles() {
	sectionStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorGray).
		Padding(0, 1)
	activeSectionStyle = sectionStyle.
		BorderForeground(ColorBlue)
	deckTitleStyle = lipgloss.NewStyle().
		Foreground(ColorBlue).
		Bold(true)
	helpStyle = lipgloss.NewStyle().
		Foreground(ColorGray).
		Italic(true)
	errorStyle = lipgloss.NewStyle().
		Foreground(ColorRed)
	promptStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBlue).
		Padding(1, 2)
}
