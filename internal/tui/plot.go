package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Braille dot positions (col, row) to bit offset within U+2800.
var brailleBits = [2][4]uint{
	{0, 1, 2, 6},
	{3, 4, 5, 7},
}

const plotLabelWidth = 8

type plotOptions struct {
	Width   int
	Height  int
	LogX    bool
	Color   lipgloss.Color
	FormatX func(float64) string
}

// renderLinePlot draws ys against xs as a braille trace with min/max labels
// on the y axis and the x range underneath. Each terminal cell holds a 2x4
// dot grid. Points sharing a dot column are drawn as a vertical span, so
// dense signals render as their envelope.
func renderLinePlot(xs, ys []float64, opts plotOptions) string {
	n := min(len(xs), len(ys))
	if n == 0 {
		return helpStyle.Render("No data")
	}
	rows := max(opts.Height-1, 1)
	cols := max(opts.Width-plotLabelWidth, 2)
	dotCols := cols * 2
	dotRows := rows * 4

	logX := opts.LogX && xs[0] > 0
	xpos := func(x float64) float64 {
		if logX {
			return math.Log10(x)
		}
		return x
	}

	minX, maxX := math.Inf(1), math.Inf(-1)
	minY, maxY := math.Inf(1), math.Inf(-1)
	for i := 0; i < n; i++ {
		if !finite(ys[i]) || !finite(xs[i]) || (logX && xs[i] <= 0) {
			continue
		}
		x := xpos(xs[i])
		minX, maxX = math.Min(minX, x), math.Max(maxX, x)
		minY, maxY = math.Min(minY, ys[i]), math.Max(maxY, ys[i])
	}
	if math.IsInf(minY, 1) {
		return helpStyle.Render("No data")
	}
	if maxY == minY {
		maxY, minY = maxY+1, minY-1
	}
	spanX := maxX - minX
	if spanX == 0 {
		spanX = 1
	}

	lo := make([]int, dotCols)
	hi := make([]int, dotCols)
	for i := range lo {
		lo[i], hi[i] = -1, -1
	}
	for i := 0; i < n; i++ {
		if !finite(ys[i]) || !finite(xs[i]) || (logX && xs[i] <= 0) {
			continue
		}
		dc := int((xpos(xs[i]) - minX) / spanX * float64(dotCols-1))
		dr := int((maxY - ys[i]) / (maxY - minY) * float64(dotRows-1))
		dc = clampInt(dc, 0, dotCols-1)
		dr = clampInt(dr, 0, dotRows-1)
		if lo[dc] < 0 || dr < lo[dc] {
			lo[dc] = dr
		}
		if hi[dc] < 0 || dr > hi[dc] {
			hi[dc] = dr
		}
	}

	grid := make([][]bool, dotRows)
	for r := range grid {
		grid[r] = make([]bool, dotCols)
	}
	prev := -1
	for dc := 0; dc < dotCols; dc++ {
		if lo[dc] < 0 {
			continue
		}
		top, bottom := lo[dc], hi[dc]
		// Bridge to the previous column so the trace stays connected.
		if prev >= 0 {
			mid := (lo[prev] + hi[prev]) / 2
			top, bottom = min(top, mid), max(bottom, mid)
		}
		for dr := top; dr <= bottom; dr++ {
			grid[dr][dc] = true
		}
		prev = dc
	}

	traceStyle := lipgloss.NewStyle().Foreground(opts.Color)
	axisStyle := lipgloss.NewStyle().Foreground(ColorGray)

	lines := make([]string, 0, rows+1)
	for row := 0; row < rows; row++ {
		var b strings.Builder
		for col := 0; col < cols; col++ {
			var pattern uint
			for dx := 0; dx < 2; dx++ {
				for dy := 0; dy < 4; dy++ {
					if grid[row*4+dy][col*2+dx] {
						pattern |= 1 << brailleBits[dx][dy]
					}
				}
			}
			b.WriteRune(rune(0x2800 + pattern))
		}
		label := ""
		switch row {
		case 0:
			label = formatTick(maxY)
		case rows - 1:
			label = formatTick(minY)
		}
		lines = append(lines, axisStyle.Render(fmt.Sprintf("%*s ", plotLabelWidth-1, label))+traceStyle.Render(b.String()))
	}

	formatX := opts.FormatX
	if formatX == nil {
		formatX = formatTick
	}
	first, last := minX, maxX
	if logX {
		first, last = math.Pow(10, minX), math.Pow(10, maxX)
	}
	left, right := formatX(first), formatX(last)
	gap := max(cols-len(left)-len(right), 1)
	lines = append(lines, axisStyle.Render(strings.Repeat(" ", plotLabelWidth)+left+strings.Repeat(" ", gap)+right))

	return strings.Join(lines, "\n")
}

func formatTick(v float64) string {
	return fmt.Sprintf("%.3g", v)
}

func formatHz(v float64) string {
	if v >= 1000 {
		return fmt.Sprintf("%.3gk", v/1000)
	}
	return fmt.Sprintf("%.3g", v)
}

func formatSeconds(v float64) string {
	return fmt.Sprintf("%.2fs", v)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
