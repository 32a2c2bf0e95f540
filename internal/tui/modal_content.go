package tui

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// ContentModal shows a block of text in a scrollable viewport.
type ContentModal struct {
	id       string
	title    string
	content  string
	render   func() string
	ctx      ModalContext
	viewport viewport.Model
}

// NewContentModal creates a modal with fixed content.
func NewContentModal(id, title, content string) *ContentModal {
	return &ContentModal{
		id:       id,
		title:    title,
		content:  content,
		viewport: viewport.New(80, 20),
	}
}

// NewLiveContentModal creates a modal whose content is re-rendered on Refresh.
func NewLiveContentModal(id, title string, render func() string) *ContentModal {
	m := NewContentModal(id, title, render())
	m.render = render
	return m
}

func (c *ContentModal) ID() string { return c.id }

func (c *ContentModal) Refresh() {
	if c.render != nil {
		c.content = c.render()
	}
}

func (c *ContentModal) Update(msg tea.Msg) (bool, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "escape", "esc", "q", "enter":
			return true, nil
		}
	}
	if handled, cmd := scrollViewport(&c.viewport, c.ctx, msg); handled {
		return false, cmd
	}
	var cmd tea.Cmd
	c.viewport, cmd = c.viewport.Update(msg)
	return false, cmd
}

func (c *ContentModal) View(width, height int) string {
	return renderSingleModalView(&c.viewport, c.title, c.content, modalStatusText(), width, height)
}
