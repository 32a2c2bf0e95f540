package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// decksHeight is the vertical space left for the deck grid.
func (m *DashboardModel) decksHeight() int {
	statusLineHeight := 1
	return max(m.height-statusLineHeight, 0)
}

// View renders the dashboard
func (m *DashboardModel) View() string {
	if m.width <= 0 || m.height <= 0 {
		return "Initializing dashboard..."
	}

	// If a modal is on the stack, render it full-screen.
	if modal := m.TopModal(); modal != nil {
		return modal.View(m.width, m.height)
	}

	return m.renderDashboard()
}

// renderDashboard renders the main dashboard layout
func (m *DashboardModel) renderDashboard() string {
	if m.height < 16 || m.width < 50 {
		return "Terminal too small. Resize to at least 50x16."
	}

	var main string
	if m.key == "" {
		main = renderEmptyPlaceholder(m.width, m.decksHeight())
	} else {
		main = m.renderDecksGrid(m.width, m.decksHeight())
	}

	result := lipgloss.JoinVertical(lipgloss.Left, main, m.renderStatusLine())
	return m.viewStyle.Render(result)
}

// renderEmptyPlaceholder is shown until a measurement is opened.
func renderEmptyPlaceholder(width, height int) string {
	heading := lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorWhite).
		Render("No measurement open")

	subtitle := lipgloss.NewStyle().
		Foreground(ColorGray).
		Render("Press o to open a file key or upload a recording")

	block := lipgloss.JoinVertical(lipgloss.Center, heading, subtitle)

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, block)
}
