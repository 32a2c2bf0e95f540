package tui

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// HelpModal displays the key reference.
type HelpModal struct {
	ctx      ModalContext
	keys     KeyMap
	viewport viewport.Model
}

func NewHelpModal(m *DashboardModel) *HelpModal {
	return &HelpModal{
		ctx:      m.modalContext(),
		keys:     m.keys,
		viewport: viewport.New(80, 20),
	}
}

func (h *HelpModal) ID() string { return "help" }

func (h *HelpModal) Update(msg tea.Msg) (bool, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "?", "h", "escape", "esc", "q":
			return true, nil
		}
	}
	if handled, cmd := scrollViewport(&h.viewport, h.ctx, msg); handled {
		return false, cmd
	}
	var cmd tea.Cmd
	h.viewport, cmd = h.viewport.Update(msg)
	return false, cmd
}

func (h *HelpModal) View(width, height int) string {
	return renderSingleModalView(&h.viewport, "Help", renderHelpContent(h.keys), "up/down/Wheel: Scroll | PgUp/PgDn: Page | ?/h: Toggle Help | ESC: Close", width, height)
}
