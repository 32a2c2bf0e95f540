package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// renderSingleModalView renders a titled scrollable modal with the given content.
func renderSingleModalView(vp *viewport.Model, title, content, status string, width, height int) string {
	modalWidth := max(width-8, 20)  // 4 chars margin on each side
	modalHeight := max(height-6, 8) // 3 lines margin top and bottom

	contentWidth := modalWidth - 4   // Modal borders
	contentHeight := modalHeight - 4 // Header + status

	vp.Width = contentWidth
	vp.Height = contentHeight
	vp.SetContent(content)

	contentPane := lipgloss.NewStyle().
		Width(contentWidth).
		Height(contentHeight).
		Border(lipgloss.NormalBorder()).
		BorderForeground(ColorGray).
		Render(vp.View())

	header := lipgloss.NewStyle().
		Width(contentWidth).
		Foreground(ColorBlue).
		Bold(true).
		Render(title)

	statusBar := lipgloss.NewStyle().
		Foreground(ColorGray).
		Render(status)

	modal := lipgloss.JoinVertical(lipgloss.Left, header, contentPane, statusBar)

	finalModal := lipgloss.NewStyle().
		Width(modalWidth).
		Height(modalHeight).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBlue).
		Render(modal)

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, finalModal)
}

// modalStatusText is the default status bar of scrollable modals.
func modalStatusText() string {
	return strings.Join([]string{"up/down/Wheel: Scroll", "PgUp/PgDn: Page", "ESC: Close"}, " | ")
}

// scrollViewport applies the shared modal scrolling keys and wheel events.
// It reports whether msg was consumed.
func scrollViewport(vp *viewport.Model, ctx ModalContext, msg tea.Msg) (bool, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			vp.ScrollUp(1)
			return true, nil
		case "down", "j":
			vp.ScrollDown(1)
			return true, nil
		case "pgup":
			vp.HalfPageUp()
			return true, nil
		case "pgdown":
			vp.HalfPageDown()
			return true, nil
		}
	case tea.MouseMsg:
		if msg.Action != tea.MouseActionPress {
			return true, nil
		}
		up := msg.Button == tea.MouseButtonWheelUp
		down := msg.Button == tea.MouseButtonWheelDown
		if ctx.ReverseScrollWheel {
			up, down = down, up
		}
		switch {
		case up:
			vp.ScrollUp(1)
		case down:
			vp.ScrollDown(1)
		}
		return true, nil
	}
	return false, nil
}
