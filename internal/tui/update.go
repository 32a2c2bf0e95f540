package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
)

// Update handles messages
func (m *DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewStyle = lipgloss.NewStyle().
			Width(m.width).
			Height(m.height).
			MaxWidth(m.width).
			MaxHeight(m.height)
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.MouseMsg:
		return m.handleMouseEvent(msg)

	case ActionMsg:
		switch msg.Action {
		case ActionPushModal:
			if modal, ok := msg.Payload.(Modal); ok {
				m.PushModal(modal)
			}
		case ActionSetStatus:
			if s, ok := msg.Payload.(string); ok {
				m.setStatus(s)
			}
		}
		return m, nil

	case DeckDataMsg:
		m.applyDeckData(msg)
		return m, nil

	case PanelChangedMsg:
		m.refreshModals()
		return m, nil

	case spinner.TickMsg:
		return m, m.handleSpinnerTick(msg)
	}

	return m, nil
}

// applyDeckData settles the bookkeeping for a completed deck command. The
// deck itself already holds the result; a superseded command leaves the
// in-flight flag set when a newer fetch is still running.
func (m *DashboardModel) applyDeckData(msg DeckDataMsg) {
	state, ok := m.deckStates[msg.DeckTypeID]
	if !ok {
		return
	}
	if msg.Key != m.key {
		// Result for a measurement that is no longer open.
		return
	}

	now := time.Now()
	state.finish(msg.Err, now)
	if d, ok := m.allDecks[msg.DeckTypeID]; ok && d.Status().Loading {
		state.FetchInFlight = true
	}

	if msg.Err != nil {
		m.lastError = msg.Err.Error()
		m.lastErrorAt = now
		m.logger.Debug("deck fetch failed",
			zap.String("deck", msg.DeckTypeID),
			zap.String("key", msg.Key),
			zap.Error(msg.Err))
	}

	m.refreshModals()
}

func (m *DashboardModel) refreshModals() {
	for _, modal := range m.modalStack {
		if r, ok := modal.(Refreshable); ok {
			r.Refresh()
		}
	}
}

// handleMouseEvent routes wheel events to the top modal and focuses decks
// on click.
func (m *DashboardModel) handleMouseEvent(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if modal := m.TopModal(); modal != nil {
		pop, cmd := modal.Update(msg)
		if pop {
			m.PopModal()
		}
		return m, cmd
	}

	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}

	decksHeight := m.decksHeight()
	if msg.Y >= decksHeight {
		return m, nil
	}
	if idx, ok := m.deckAt(m.width, decksHeight, msg.X, msg.Y); ok {
		m.activeDeckIdx = idx
		m.persistActiveViewState()
	}
	return m, nil
}
