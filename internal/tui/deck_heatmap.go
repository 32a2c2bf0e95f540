package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/roomwaves/roomwaves/internal/model"
	"github.com/roomwaves/roomwaves/internal/panels"
)

// HeatmapDeck renders a time-frequency map. The surface deck also applies
// the binding's data reduction before drawing.
type HeatmapDeck struct {
	resourceDeck[model.TimeFrequencyMap]
	surface *panels.Surface3D
}

// NewSpectrogramDeck renders the spectrogram.
func NewSpectrogramDeck(sp *panels.Spectrogram) *HeatmapDeck {
	return &HeatmapDeck{
		resourceDeck: resourceDeck[model.TimeFrequencyMap]{id: panels.NameSpectrogram, title: "Spectrogram", hotkey: "3", src: sp},
	}
}

// NewSurfaceDeck renders the cumulative spectral decay surface.
func NewSurfaceDeck(sf *panels.Surface3D) *HeatmapDeck {
	return &HeatmapDeck{
		resourceDeck: resourceDeck[model.TimeFrequencyMap]{id: panels.NameSurface3D, title: "3D Surface", hotkey: "4", src: sf},
		surface:      sf,
	}
}

// CycleDataReduction advances the surface decimation factor. It reports
// false for decks without one.
func (d *HeatmapDeck) CycleDataReduction() (int, bool) {
	if d.surface == nil {
		return 0, false
	}
	return d.surface.CycleDataReduction(), true
}

func (d *HeatmapDeck) ContentLines(ctx ViewContext) int {
	if ctx.ContentHeight < 30 {
		return 6
	}
	return 12
}

func (d *HeatmapDeck) Render(ctx ViewContext, width, height int, active bool) string {
	style := sectionStyle.Width(width).Height(height)
	if active {
		style = activeSectionStyle.Width(width).Height(height)
	}
	label := deckTitle(d, ctx)
	if d.surface != nil {
		label += fmt.Sprintf(" · 1:%d", d.surface.DataReduction())
	}
	title := deckTitleStyle.Render(label)
	bodyHeight := max(height-1, 1)
	innerWidth := max(width-2, 4)

	body, handled := d.renderState(ctx, innerWidth, bodyHeight)
	if !handled {
		m := d.src.State().Data
		if d.surface != nil {
			m = panels.Reduce(m, d.surface.DataReduction())
		}
		body = renderHeatmap(m, innerWidth, bodyHeight)
	}
	return style.Render(lipgloss.JoinVertical(lipgloss.Left, title, body))
}
