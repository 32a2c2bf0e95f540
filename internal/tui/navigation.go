package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/roomwaves/roomwaves/internal/panels"
)

// handleKeyPress dispatches key events: modal stack first, then global
// dashboard shortcuts.
func (m *DashboardModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ForceQuit) {
		m.Close()
		return m, tea.Quit
	}

	// Modal on stack gets the event first.
	if modal := m.TopModal(); modal != nil {
		pop, cmd := modal.Update(msg)
		if pop {
			m.PopModal()
		}
		return m, cmd
	}

	return m.handleGlobalKeys(msg)
}

// handleGlobalKeys handles dashboard-level shortcuts.
// Only reached when no modal is on the stack.
func (m *DashboardModel) handleGlobalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keys

	switch {
	case key.Matches(msg, k.Quit):
		m.Close()
		return m, tea.Quit

	case key.Matches(msg, k.Help):
		m.PushModal(NewHelpModal(m))
		return m, nil

	case key.Matches(msg, k.Open):
		m.pendingNav = &PageNav{PageID: OpenPageID, Params: OpenRequest{Current: m.key}}
		return m, nil

	case key.Matches(msg, k.Upload):
		m.pendingNav = &PageNav{PageID: OpenPageID, Params: OpenRequest{Current: m.key, Upload: true}}
		return m, nil

	case key.Matches(msg, k.ClearAll):
		m.resetPanels()
		for _, state := range m.deckStates {
			state.FetchInFlight = false
		}
		m.setStatus("All panels hidden")
		return m, nil

	case key.Matches(msg, k.NextView):
		m.nextView()
		return m, nil

	case key.Matches(msg, k.PrevView):
		m.prevView()
		return m, nil
	}

	for _, hk := range k.deckHotkeys() {
		if key.Matches(msg, hk.binding) {
			return m, m.toggleDeck(hk.typeID)
		}
	}

	// Focused deck shortcuts
	switch {
	case key.Matches(msg, k.NextBands):
		return m, m.cycleBands(1)

	case key.Matches(msg, k.PrevBands):
		return m, m.cycleBands(-1)

	case key.Matches(msg, k.DataReduction):
		m.cycleDataReduction()
		return m, nil

	case key.Matches(msg, k.Refetch):
		if d := m.activeDeck(); d != nil {
			return m, m.runDeck(d, false)
		}
		return m, nil

	case key.Matches(msg, k.Enter):
		return m.showDetails()
	}

	// Focus movement
	switch {
	case key.Matches(msg, k.NextDeck):
		m.moveFocus(1)
	case key.Matches(msg, k.PrevDeck):
		m.moveFocus(-1)
	case key.Matches(msg, k.Up):
		m.moveFocus(-m.deckColumnCount())
	case key.Matches(msg, k.Down):
		m.moveFocus(m.deckColumnCount())
	}
	return m, nil
}

// toggleDeck shows or hides the deck with typeID and focuses it when it is
// part of the current view.
func (m *DashboardModel) toggleDeck(typeID string) tea.Cmd {
	d, ok := m.allDecks[typeID]
	if !ok {
		return nil
	}
	if m.key == "" {
		m.setStatus("Open a measurement first (press o)")
		return nil
	}
	for i, vd := range m.decks {
		if vd.TypeID() == typeID {
			m.activeDeckIdx = i
			m.persistActiveViewState()
			break
		}
	}
	// SNR has no visibility toggle; its hotkey recalculates.
	return m.runDeck(d, typeID != panels.NameSNR)
}

// cycleBands steps the focused deck's band resolution. A visible deck is
// reloaded with the new value; a hidden one keeps it for its next fetch.
func (m *DashboardModel) cycleBands(step int) tea.Cmd {
	d := m.activeDeck()
	if d == nil {
		return nil
	}
	bd, ok := d.(BandDeck)
	if !ok || bd.Bands() == nil {
		m.setStatus(d.Title() + " has no band selection")
		return nil
	}
	bands, err := bd.Bands().Cycle(panels.ParamBands, step)
	if err != nil {
		m.setStatus(err.Error())
		return nil
	}
	m.setStatus(fmt.Sprintf("%s: %s", d.Title(), bd.Bands().Label(panels.ParamBands)))
	m.logger.Debug("bands changed", zap.String("deck", d.TypeID()), zap.Int("bands", bands))
	if d.Status().Visible {
		return m.runDeck(d, false)
	}
	return nil
}

// cycleDataReduction advances the surface decimation factor on the
// focused deck.
func (m *DashboardModel) cycleDataReduction() {
	d := m.activeDeck()
	hd, ok := d.(*HeatmapDeck)
	if !ok {
		return
	}
	if n, ok := hd.CycleDataReduction(); ok {
		m.setStatus(fmt.Sprintf("Data reduction 1:%d", n))
	}
}

// moveFocus shifts the focused deck by delta, clamped to the view.
func (m *DashboardModel) moveFocus(delta int) {
	if len(m.decks) == 0 {
		return
	}
	idx := m.activeDeckIdx + delta
	if delta == 1 || delta == -1 {
		idx = (idx + len(m.decks)) % len(m.decks)
	}
	m.activeDeckIdx = clampInt(idx, 0, len(m.decks)-1)
	m.persistActiveViewState()
}

// showDetails opens the focused deck's detail modal when it has one.
func (m *DashboardModel) showDetails() (tea.Model, tea.Cmd) {
	dd, ok := m.activeDeck().(DetailDeck)
	if !ok {
		return m, nil
	}
	if modal := dd.DetailModal(); modal != nil {
		m.PushModal(modal)
	}
	return m, nil
}
