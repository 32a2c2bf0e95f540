package tui

import (
	"fmt"
	"strings"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/lipgloss"

	"github.com/roomwaves/roomwaves/internal/model"
	"github.com/roomwaves/roomwaves/internal/panels"
)

// ParametersDeck shows T30 per band as bars with the band labels below.
type ParametersDeck struct {
	resourceDeck[model.ParametersResult]
}

// NewParametersDeck creates the acoustic parameters deck.
func NewParametersDeck(p *panels.Parameters) *ParametersDeck {
	return &ParametersDeck{
		resourceDeck: resourceDeck[model.ParametersResult]{id: panels.NameParameters, title: "Parameters", hotkey: "5", src: p},
	}
}

func (d *ParametersDeck) ContentLines(ctx ViewContext) int {
	if ctx.ContentHeight < 30 {
		return 6
	}
	return 10
}

func (d *ParametersDeck) Render(ctx ViewContext, width, height int, active bool) string {
	style := sectionStyle.Width(width).Height(height)
	if active {
		style = activeSectionStyle.Width(width).Height(height)
	}
	title := deckTitleStyle.Render(deckTitle(d, ctx))
	bodyHeight := max(height-1, 1)
	innerWidth := max(width-2, 4)

	body, handled := d.renderState(ctx, innerWidth, bodyHeight)
	if !handled {
		body = d.renderBars(panels.ParameterRows(d.src.State().Data), innerWidth, bodyHeight)
	}
	return style.Render(lipgloss.JoinVertical(lipgloss.Left, title, body))
}

func (d *ParametersDeck) renderBars(rows []panels.ParameterRow, width, height int) string {
	if len(rows) == 0 {
		return helpStyle.Render("No bands returned")
	}

	// Bar area, band labels, legend.
	chartHeight := max(height-2, 2)
	gap := 1
	barWidth := max((width-gap*(len(rows)-1))/len(rows), 1)
	chartWidth := min(width, len(rows)*barWidth+gap*(len(rows)-1))

	bc := barchart.New(chartWidth, chartHeight,
		barchart.WithBarGap(gap),
		barchart.WithBarWidth(barWidth),
		barchart.WithNoAxis(),
	)
	barStyle := lipgloss.NewStyle().Foreground(ColorBlue).Background(ColorBlue)
	longest := 0.0
	for _, r := range rows {
		longest = max(longest, r.T60FromT30)
		bc.Push(barchart.BarData{
			Label: "",
			Values: []barchart.BarValue{
				{Name: "T30", Value: max(r.T60FromT30, 0), Style: barStyle},
			},
		})
	}
	bc.Draw()

	var labels strings.Builder
	for i, r := range rows {
		if i > 0 {
			labels.WriteString(strings.Repeat(" ", gap))
		}
		labels.WriteString(fitCenter(r.BandLabel(), barWidth))
	}

	legend := helpStyle.Render(fmt.Sprintf("T30 per band, max %.2fs · enter: table", longest))
	return lipgloss.JoinVertical(lipgloss.Left,
		bc.View(),
		lipgloss.NewStyle().Foreground(ColorGray).Render(labels.String()),
		legend,
	)
}

// DetailModal opens the full parameter table.
func (d *ParametersDeck) DetailModal() Modal {
	st := d.src.State()
	if !st.Visible() {
		return nil
	}
	return NewLiveContentModal("parameters", "Acoustic Parameters", func() string {
		return renderParameterTable(panels.ParameterRows(d.src.State().Data))
	})
}

func renderParameterTable(rows []panels.ParameterRow) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%-10s %8s %8s %8s %8s %8s\n", "Band", "EDT", "T20", "T30", "C80", "D50")
	for _, r := range rows {
		fmt.Fprintf(&b, "%-10s %8.2f %8.2f %8.2f %8.1f %8.2f\n",
			r.BandLabel(), r.EDT, r.T60FromT20, r.T60FromT30, r.C80, r.D50)
	}
	return strings.TrimRight(b.String(), "\n")
}

// fitCenter pads or truncates s to exactly w cells.
func fitCenter(s string, w int) string {
	if len(s) > w {
		return s[:w]
	}
	left := (w - len(s)) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", w-len(s)-left)
}
