package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// DashboardPageID identifies the dashboard page.
const DashboardPageID = "dashboard"

// DashboardPage adapts DashboardModel to the Page interface.
type DashboardPage struct {
	Model *DashboardModel

	initCmd tea.Cmd
}

// NewDashboardPage wraps a DashboardModel as a Page.
func NewDashboardPage(m *DashboardModel) *DashboardPage {
	return &DashboardPage{Model: m}
}

func (p *DashboardPage) ID() string { return DashboardPageID }

// SetParams opens the measurement key carried by the navigation.
func (p *DashboardPage) SetParams(params interface{}) {
	if key, ok := params.(string); ok {
		p.initCmd = p.Model.SetKey(strings.TrimSpace(key))
	}
}

func (p *DashboardPage) Init() tea.Cmd {
	cmd := p.initCmd
	p.initCmd = nil
	return tea.Batch(p.Model.Init(), cmd)
}

func (p *DashboardPage) Update(msg tea.Msg) (tea.Cmd, *PageNav) {
	_, cmd := p.Model.Update(msg)
	if nav := p.Model.pendingNav; nav != nil {
		p.Model.pendingNav = nil
		return cmd, nav
	}
	return cmd, nil
}

func (p *DashboardPage) View(width, height int) string {
	if width != p.Model.width || height != p.Model.height {
		p.Model.Update(tea.WindowSizeMsg{Width: width, Height: height})
	}
	return p.Model.View()
}
