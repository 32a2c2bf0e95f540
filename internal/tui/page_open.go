package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/roomwaves/roomwaves/internal/model"
)

// OpenPageID identifies the open/upload page.
const OpenPageID = "open"

type openMode int

const (
	openModeKey openMode = iota
	openModeUpload
)

// OpenRequest is the navigation payload for the open page.
type OpenRequest struct {
	Current string // key to return to on esc
	Upload  bool   // start in upload mode
}

type uploadDoneMsg struct {
	result model.UploadResult
	err    error
}

// OpenPage prompts for a measurement key, or for a local recording to
// upload first. It navigates to the dashboard with the resulting key.
type OpenPage struct {
	ctx    context.Context
	files  model.FileService
	logger *zap.Logger

	input     textinput.Model
	mode      openMode
	uploading bool
	err       string
	current   string
}

// NewOpenPage creates the prompt page. files may be nil, which disables
// upload mode.
func NewOpenPage(ctx context.Context, files model.FileService, logger *zap.Logger) *OpenPage {
	if logger == nil {
		logger = zap.NewNop()
	}
	input := textinput.New()
	input.CharLimit = 512
	p := &OpenPage{ctx: ctx, files: files, logger: logger, input: input}
	p.setMode(openModeKey)
	return p
}

func (p *OpenPage) ID() string { return OpenPageID }

// SetParams applies an OpenRequest.
func (p *OpenPage) SetParams(params interface{}) {
	req, ok := params.(OpenRequest)
	if !ok {
		return
	}
	p.current = req.Current
	if req.Upload && p.files != nil {
		p.setMode(openModeUpload)
	} else {
		p.setMode(openModeKey)
	}
}

func (p *OpenPage) Init() tea.Cmd {
	p.err = ""
	p.input.SetValue("")
	return p.input.Focus()
}

func (p *OpenPage) setMode(mode openMode) {
	p.mode = mode
	p.err = ""
	switch mode {
	case openModeUpload:
		p.input.Placeholder = "path/to/recording.wav"
	default:
		p.input.Placeholder = "uploads/measurement.wav"
	}
}

func (p *OpenPage) Update(msg tea.Msg) (tea.Cmd, *PageNav) {
	switch msg := msg.(type) {
	case uploadDoneMsg:
		p.uploading = false
		if msg.err != nil {
			p.err = "Upload failed: " + msg.err.Error()
			return nil, nil
		}
		p.logger.Info("recording uploaded", zap.String("path", msg.result.Path))
		return nil, &PageNav{PageID: DashboardPageID, Params: msg.result.Path}

	case tea.KeyMsg:
		if p.uploading {
			if msg.String() == "ctrl+c" {
				return tea.Quit, nil
			}
			return nil, nil
		}
		switch msg.String() {
		case "ctrl+c":
			return tea.Quit, nil
		case "esc":
			if p.current != "" {
				return nil, &PageNav{PageID: DashboardPageID}
			}
			return tea.Quit, nil
		case "tab":
			if p.files != nil {
				if p.mode == openModeKey {
					p.setMode(openModeUpload)
				} else {
					p.setMode(openModeKey)
				}
			}
			return nil, nil
		case "enter":
			return p.submit()
		}
	}

	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return cmd, nil
}

func (p *OpenPage) submit() (tea.Cmd, *PageNav) {
	value := strings.TrimSpace(p.input.Value())
	if value == "" {
		p.err = "Enter a value first"
		return nil, nil
	}
	if p.mode == openModeKey {
		return nil, &PageNav{PageID: DashboardPageID, Params: value}
	}

	f, err := os.Open(value)
	if err != nil {
		p.err = err.Error()
		return nil, nil
	}
	p.uploading = true
	p.err = ""
	files, ctx := p.files, p.ctx
	return func() tea.Msg {
		defer f.Close()
		res, err := files.Upload(ctx, filepath.Base(value), f)
		return uploadDoneMsg{result: res, err: err}
	}, nil
}

func (p *OpenPage) View(width, height int) string {
	title := deckTitleStyle.Render("Open measurement")
	var mode string
	switch p.mode {
	case openModeUpload:
		mode = "Upload a local recording"
	default:
		mode = "File key on the analysis server"
	}

	lines := []string{title, "", mode, p.input.View(), ""}
	switch {
	case p.uploading:
		lines = append(lines, helpStyle.Render("Uploading..."))
	case p.err != "":
		lines = append(lines, errorStyle.Render(p.err))
	default:
		lines = append(lines, "")
	}

	hint := "enter: open"
	if p.files != nil {
		hint += " • tab: switch key/upload"
	}
	if p.current != "" {
		hint += fmt.Sprintf(" • esc: back to %s", filepath.Base(p.current))
	} else {
		hint += " • esc: quit"
	}
	lines = append(lines, helpStyle.Render(hint))

	box := promptStyle.Width(min(max(width-8, 30), 72)).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
