package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/roomwaves/roomwaves/internal/panels"
	"github.com/roomwaves/roomwaves/internal/resource"
)

// snrSource adapts the SNR binding, which has no toggle, to the deck
// plumbing: its hotkey always refetches.
type snrSource struct {
	snr *panels.SNR
}

func (s snrSource) State() resource.State[*float64] { return s.snr.State() }

func (s snrSource) Fetch(ctx context.Context, key string, _ resource.Params) resource.State[*float64] {
	return s.snr.FetchSNR(ctx, key)
}

func (s snrSource) Toggle(ctx context.Context, key string, _ resource.Params) resource.State[*float64] {
	return s.snr.FetchSNR(ctx, key)
}

func (s snrSource) Clear()                         { s.snr.Clear() }
func (s snrSource) Params() *resource.ParameterSet { return nil }

// SNRDeck shows the signal-to-noise ratio and its quality class.
type SNRDeck struct {
	resourceDeck[*float64]
	snr   *panels.SNR
	theme panels.Theme
}

// NewSNRDeck creates the SNR deck.
func NewSNRDeck(snr *panels.SNR, theme panels.Theme) *SNRDeck {
	return &SNRDeck{
		resourceDeck: resourceDeck[*float64]{id: panels.NameSNR, title: "SNR", hotkey: "6", src: snrSource{snr: snr}},
		snr:          snr,
		theme:        theme,
	}
}

func (d *SNRDeck) ContentLines(_ ViewContext) int { return 4 }

func (d *SNRDeck) Render(ctx ViewContext, width, height int, active bool) string {
	style := sectionStyle.Width(width).Height(height)
	if active {
		style = activeSectionStyle.Width(width).Height(height)
	}
	title := deckTitleStyle.Render(deckTitle(d, ctx))
	innerWidth := max(width-2, 4)

	body, handled := d.renderState(ctx, innerWidth, max(height-1, 1))
	if !handled {
		body = d.renderValue(innerWidth)
	}
	return style.Render(lipgloss.JoinVertical(lipgloss.Left, title, body))
}

func (d *SNRDeck) renderValue(width int) string {
	v := d.snr.SNR()
	if v == nil {
		return helpStyle.Render("SNR could not be computed for this file")
	}
	q := d.snr.Quality()
	qualityStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(d.theme.QualityColor(q))).Bold(true)
	value := lipgloss.NewStyle().Bold(true).Foreground(ColorWhite).Render(fmt.Sprintf("%.1f dB", *v))
	return lipgloss.JoinVertical(lipgloss.Left,
		value+"  "+qualityStyle.Render(q.Icon+" "+q.Label),
		lipgloss.NewStyle().Width(width).Foreground(ColorGray).Render(q.Description),
	)
}
