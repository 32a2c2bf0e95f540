package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/roomwaves/roomwaves/internal/model"
)

var heatmapChars = []rune{' ', '.', ':', '-', '=', '+', '*', '#', '%', '@'}

// Quiet (blue) to loud (white) gradient.
var heatmapColors = []lipgloss.Color{
	"#000040", "#000080", "#0000c0", "#0000ff", "#4000ff", "#8000ff", "#c000ff",
	"#ff00c0", "#ff0080", "#ff0040", "#ff0000", "#ff4000", "#ff8000", "#ffbf00",
	"#ffff00", "#ffffff",
}

const heatmapLabelWidth = 7

// renderHeatmap draws a time-frequency map with frequency on the vertical
// axis (highest at the top) and time across. Cells are scaled between the
// map's MinDB and MaxDB.
func renderHeatmap(m model.TimeFrequencyMap, width, height int) string {
	freqs := len(m.Sxx)
	if freqs == 0 || len(m.Sxx[0]) == 0 {
		return helpStyle.Render("No data")
	}
	frames := len(m.Sxx[0])

	rows := min(max(height-1, 1), freqs)
	cols := max(width-heatmapLabelWidth, 4)

	lo, hi := m.MinDB, m.MaxDB
	if !(hi > lo) {
		lo, hi = dataRange(m.Sxx)
	}
	span := hi - lo
	if span <= 0 {
		span = 1
	}

	axisStyle := lipgloss.NewStyle().Foreground(ColorGray)
	lines := make([]string, 0, rows+1)
	for row := 0; row < rows; row++ {
		fi := freqs - 1 - row*freqs/rows
		fi = clampInt(fi, 0, freqs-1)

		label := ""
		if fi < len(m.F) {
			label = formatHz(m.F[fi])
		}

		var b strings.Builder
		for col := 0; col < cols; col++ {
			ti := col * frames / cols
			if ti >= len(m.Sxx[fi]) {
				b.WriteRune(' ')
				continue
			}
			v := m.Sxx[fi][ti]
			if !finite(v) {
				b.WriteRune(' ')
				continue
			}
			ratio := math.Max(0, math.Min(1, (v-lo)/span))
			ch := heatmapChars[int(ratio*float64(len(heatmapChars)-1))]
			color := heatmapColors[int(ratio*float64(len(heatmapColors)-1))]
			b.WriteString(lipgloss.NewStyle().Foreground(color).Render(string(ch)))
		}
		lines = append(lines, axisStyle.Render(fmt.Sprintf("%*s ", heatmapLabelWidth-1, label))+b.String())
	}

	var axis string
	if len(m.T) > 0 {
		left, right := formatSeconds(m.T[0]), formatSeconds(m.T[len(m.T)-1])
		scale := fmt.Sprintf("%.0f..%.0f dB", lo, hi)
		gap := max(cols-len(left)-len(right)-len(scale), 2)
		axis = left + strings.Repeat(" ", gap/2) + scale + strings.Repeat(" ", gap-gap/2) + right
	}
	lines = append(lines, axisStyle.Render(strings.Repeat(" ", heatmapLabelWidth)+axis))

	return strings.Join(lines, "\n")
}

func dataRange(sxx [][]float64) (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, row := range sxx {
		for _, v := range row {
			if finite(v) {
				lo, hi = math.Min(lo, v), math.Max(hi, v)
			}
		}
	}
	if math.IsInf(lo, 1) {
		return 0, 1
	}
	return lo, hi
}
