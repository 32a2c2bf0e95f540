package tui

import (
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// renderBranding renders "roomwaves" with a blue to violet gradient
func (m *DashboardModel) renderBranding() string {
	colors := []string{
		"#3b82f6", "#4f7cf5", "#6376f4", "#7770f3", "#8b6af2",
		"#8b5cf6", "#9d5cf6", "#ae5cf6", "#bf5cf6",
	}

	var result string
	for i, char := range "roomwaves" {
		style := lipgloss.NewStyle().
			Background(ColorNavy).
			Foreground(lipgloss.Color(colors[i%len(colors)])).Bold(true)
		result += style.Render(string(char))
	}

	return result
}

// renderStatusLine renders the status/help line at the bottom of the screen
func (m *DashboardModel) renderStatusLine() string {
	baseStyle := lipgloss.NewStyle().
		Background(ColorNavy).
		Foreground(ColorWhite)

	var statusText string
	var leftText string
	var rightText string

	w := m.width

	veryNarrow := w < 60
	narrow := w < 80
	medium := w < 120

	// Left section: view/deck indicator
	var sectionName string
	if d := m.activeDeck(); d != nil {
		if viewTitle := m.currentViewTitle(); viewTitle != "" {
			sectionName = fmt.Sprintf("%s/%s", viewTitle, d.Title())
		} else {
			sectionName = d.Title()
		}
	}
	if sectionName != "" {
		if veryNarrow {
			leftText = sectionName[:min(5, len(sectionName))]
		} else {
			leftText = fmt.Sprintf("[%s]", sectionName)
		}
	}

	// Center section: a recent status message wins over the key hints.
	switch {
	case m.status != "" && time.Since(m.statusAt) < 5*time.Second:
		statusText = m.status
	case m.HasModal():
		statusText = "ESC: Close"
	case m.key == "":
		statusText = "o: Open measurement • ?: Help • q: Quit"
	case veryNarrow:
		statusText = "1-7 • Tab • ? • q"
	case narrow:
		statusText = "1-7: Panels • Tab: Nav • []: View • q: Quit"
	case medium:
		statusText = "1-7: Panels • Tab: Navigate • b/B: Bands • r: Reload • []: View • q: Quit"
	default:
		statusText = "?: Help • 1-7: Toggle panels • Tab: Navigate • b/B: Bands • d: Reduction • r: Reload • Enter: Details • []: Switch view • o: Open • q: Quit"
	}

	// Right section: open key, fetch error and branding
	var rightParts []string
	if m.lastError != "" && time.Since(m.lastErrorAt) < 30*time.Second {
		errStyle := lipgloss.NewStyle().
			Background(ColorNavy).
			Foreground(ColorRed).
			Faint(true)
		rightParts = append(rightParts, errStyle.Render("fetch error"))
	}
	if m.key != "" && !veryNarrow {
		name := m.key
		if narrow {
			name = path.Base(name)
		}
		rightParts = append(rightParts, name)
	}
	if w >= 30 {
		rightParts = append(rightParts, m.renderBranding())
	}
	if len(rightParts) > 0 {
		rightText = strings.Join(rightParts, "  ")
	}

	leftWidth := lipgloss.Width(leftText) + 2
	rightWidth := lipgloss.Width(rightText) + 2

	if leftWidth+rightWidth >= w {
		if w < 20 {
			return baseStyle.Width(w).Render(leftText)
		}
		leftWidth = min(10, w/3)
		rightWidth = min(15, w/3)
	}

	centerWidth := max(w-leftWidth-rightWidth, 0)

	leftStyle := baseStyle.Align(lipgloss.Left).Width(leftWidth)
	centerStyle := baseStyle.Align(lipgloss.Center).Width(centerWidth)
	rightStyle := baseStyle.Align(lipgloss.Right).Width(rightWidth)

	// Truncate content if necessary to prevent wrapping
	if lipgloss.Width(leftText) > leftWidth {
		leftText = leftText[:max(0, leftWidth-1)]
	}
	if lipgloss.Width(statusText) > centerWidth {
		statusText = truncateRunes(statusText, max(0, centerWidth-1))
	}
	if lipgloss.Width(rightText) > rightWidth {
		// Styled text is not truncated; drop parts by priority instead.
		if w < 40 {
			rightText = ""
		} else {
			rightText = m.renderBranding()
		}
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		leftStyle.Render(leftText),
		centerStyle.Render(statusText),
		rightStyle.Render(rightText),
	)
}

// truncateRunes cuts s to n runes.
func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
