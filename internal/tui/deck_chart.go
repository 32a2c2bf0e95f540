package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/roomwaves/roomwaves/internal/panels"
)

// ChartDeck plots a single-series line chart (waveform, frequency
// response, envelope).
type ChartDeck struct {
	resourceDeck[panels.ChartData]
	logX    bool
	formatX func(float64) string
}

func newChartDeck(id, title, hotkey string, src source[panels.ChartData], logX bool, formatX func(float64) string) *ChartDeck {
	return &ChartDeck{
		resourceDeck: resourceDeck[panels.ChartData]{id: id, title: title, hotkey: hotkey, src: src},
		logX:         logX,
		formatX:      formatX,
	}
}

// NewWaveformDeck plots amplitude over time.
func NewWaveformDeck(wf *panels.Waveform) *ChartDeck {
	return newChartDeck(panels.NameWaveform, "Waveform", "1", wf, false, formatSeconds)
}

// NewFrequencyDeck plots the smoothed magnitude response on a log axis.
func NewFrequencyDeck(fr *panels.FrequencyResponse) *ChartDeck {
	return newChartDeck(panels.NameFrequencyResponse, "Frequency Response", "2", fr, true, formatHz)
}

// NewEnvelopeDeck plots the energy decay in dB.
func NewEnvelopeDeck(env *panels.EnvelopeDb) *ChartDeck {
	return newChartDeck(panels.NameEnvelopeDb, "Envelope (dB)", "7", env, false, formatSeconds)
}

func (d *ChartDeck) ContentLines(ctx ViewContext) int {
	if ctx.ContentHeight < 30 {
		return 6
	}
	return 10
}

func (d *ChartDeck) Render(ctx ViewContext, width, height int, active bool) string {
	style := sectionStyle.Width(width).Height(height)
	if active {
		style = activeSectionStyle.Width(width).Height(height)
	}
	title := deckTitleStyle.Render(deckTitle(d, ctx))
	bodyHeight := max(height-1, 1)
	innerWidth := max(width-2, 4)

	body, handled := d.renderState(ctx, innerWidth, bodyHeight)
	if !handled {
		data := d.src.State().Data
		ds := data.Primary()
		body = renderLinePlot(data.Labels, ds.Data, plotOptions{
			Width:   innerWidth,
			Height:  bodyHeight,
			LogX:    d.logX,
			Color:   lipgloss.Color(ds.BorderColor),
			FormatX: d.formatX,
		})
	}
	return style.Render(lipgloss.JoinVertical(lipgloss.Left, title, body))
}
