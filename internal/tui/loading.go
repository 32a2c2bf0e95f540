package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// renderLoadingPlaceholder renders the spinner frame centered in the deck.
func renderLoadingPlaceholder(frame string, width, height int) string {
	loadingStyle := lipgloss.NewStyle().
		Foreground(ColorGray).
		Italic(true)

	text := loadingStyle.Render(frame + " Loading...")

	return lipgloss.Place(width, max(height, 1), lipgloss.Center, lipgloss.Center, text)
}

func newSpinner() spinner.Model {
	return spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(ColorBlue)),
	)
}

// handleSpinnerTick advances the spinner while any deck is loading and lets
// the tick chain lapse otherwise.
func (m *DashboardModel) handleSpinnerTick(msg spinner.TickMsg) tea.Cmd {
	if !m.anyDeckLoading() {
		m.spinning = false
		return nil
	}
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	return cmd
}

// anyDeckLoading returns true if any deck has a fetch in flight.
func (m *DashboardModel) anyDeckLoading() bool {
	for _, state := range m.deckStates {
		if state.FetchInFlight {
			return true
		}
	}
	for _, d := range m.allDecks {
		if d.Status().Loading {
			return true
		}
	}
	return false
}

// startSpinnerIfNeeded starts one spinner tick chain if any deck is loading.
func (m *DashboardModel) startSpinnerIfNeeded() tea.Cmd {
	if m.spinning || !m.anyDeckLoading() {
		return nil
	}
	m.spinning = true
	return m.spinner.Tick
}
