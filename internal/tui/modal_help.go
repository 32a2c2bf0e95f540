package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

// renderHelpContent lists every binding grouped by purpose, straight from
// the key map so the text cannot drift from the handlers.
func renderHelpContent(k KeyMap) string {
	groups := []struct {
		title    string
		bindings []key.Binding
	}{
		{"PANELS", []key.Binding{k.ToggleWaveform, k.ToggleFrequency, k.ToggleSpectrogram, k.ToggleSurface, k.ToggleParameters, k.RefreshSNR, k.ToggleEnvelope}},
		{"FOCUSED PANEL", []key.Binding{k.NextBands, k.PrevBands, k.DataReduction, k.Refetch, k.Enter}},
		{"NAVIGATION", []key.Binding{k.NextDeck, k.PrevDeck, k.Up, k.Down, k.NextView, k.PrevView}},
		{"GLOBAL", []key.Binding{k.Open, k.Upload, k.ClearAll, k.Help, k.Escape, k.Quit, k.ForceQuit}},
	}

	heading := lipgloss.NewStyle().Foreground(ColorBlue).Bold(true)
	var b strings.Builder
	b.WriteString("Roomwaves Dashboard Help\n\n")
	b.WriteString("Panels load on demand for the open measurement. Pressing a panel key\n")
	b.WriteString("again hides it. SNR is fetched when a measurement is opened.\n")
	for _, g := range groups {
		b.WriteString("\n" + heading.Render(g.title) + "\n")
		for _, bind := range g.bindings {
			h := bind.Help()
			fmt.Fprintf(&b, "  %-14s - %s\n", h.Key, h.Desc)
		}
	}
	return b.String()
}
