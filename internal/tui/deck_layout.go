package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/roomwaves/roomwaves/internal/panels"
)

// Deck grid calculation helpers

func (m *DashboardModel) deckColumnCount() int {
	if len(m.decks) <= 1 || m.width < 100 {
		return 1
	}
	return 2
}

func (m *DashboardModel) deckHeight(idx int) int {
	h := m.decks[idx].ContentLines(m.viewContext()) + 3
	if h < 4 {
		return 4
	}
	return h
}

func (m *DashboardModel) deckRowHeights() []int {
	if len(m.decks) == 0 {
		return nil
	}

	cols := m.deckColumnCount()
	rows := (len(m.decks) + cols - 1) / cols
	heights := make([]int, rows)

	for row := 0; row < rows; row++ {
		rowHeight := 4
		for col := 0; col < cols; col++ {
			idx := row*cols + col
			if idx >= len(m.decks) {
				break
			}
			rowHeight = max(rowHeight, m.deckHeight(idx))
		}
		heights[row] = rowHeight
	}

	return heights
}

// deckRowHeightsFor fits the rows into height. Rows keep their natural
// height when everything fits; otherwise the space is split evenly.
func (m *DashboardModel) deckRowHeightsFor(height int) []int {
	required := m.deckRowHeights()
	if len(required) == 0 {
		return nil
	}

	totalReq := 0
	for _, h := range required {
		totalReq += h
	}
	if totalReq <= height {
		return required
	}

	rows := len(required)
	perRow := height / rows
	if perRow < 4 {
		perRow = 4
	}

	scaled := make([]int, rows)
	for i := range scaled {
		scaled[i] = perRow
	}
	// Give the last row any remaining lines.
	scaled[rows-1] = max(height-perRow*(rows-1), 4)

	return scaled
}

// deckAt maps a content-area cell to the deck drawn there.
func (m *DashboardModel) deckAt(contentWidth int, decksHeight int, x int, y int) (int, bool) {
	if len(m.decks) == 0 || x < 0 || y < 0 {
		return 0, false
	}

	cols := m.deckColumnCount()
	deckWidth := contentWidth
	colGap := 0
	if cols > 1 {
		colGap = 1
		deckWidth = max(1, (contentWidth-colGap)/cols)
	}

	rowY := 0
	for row, rowHeight := range m.deckRowHeightsFor(decksHeight) {
		if y < rowY+rowHeight {
			col := 0
			if cols > 1 {
				col = min(x/(deckWidth+colGap), cols-1)
			}
			idx := row*cols + col
			if idx >= len(m.decks) {
				return 0, false
			}
			return idx, true
		}
		rowY += rowHeight
	}

	return 0, false
}

// deckTitle renders "[hotkey] Title", the current band selection and the
// last-error badge.
func deckTitle(d ResourceDeck, ctx ViewContext) string {
	title := "[" + d.Hotkey() + "] " + d.Title()
	if bd, ok := d.(BandDeck); ok {
		if label := bd.Bands().Label(panels.ParamBands); label != "" {
			title += " · " + label
		}
	}
	return deckTitleWithBadges(title, ctx)
}

// deckTitleWithBadges appends loading/error badges to a deck title based on ViewContext.
func deckTitleWithBadges(title string, ctx ViewContext) string {
	if ctx.DeckLoading {
		title += " " + ctx.Spinner
	}
	if ctx.DeckLastError != "" {
		title += " ⚠"
	}
	return title
}

// Deck rendering functions

// renderDecksGrid renders a two-column deck grid (single-column when narrow
// or when only one deck is shown).
func (m *DashboardModel) renderDecksGrid(width int, height int) string {
	if width < 20 {
		return "Terminal too narrow"
	}

	if len(m.decks) == 0 {
		return "No panels in this view"
	}

	cols := m.deckColumnCount()
	rowHeights := m.deckRowHeightsFor(height)
	rows := len(rowHeights)

	// Each deck adds 2 chars for borders (left+right) on top of its Width.
	// Account for this so the total rendered row fits within the available width.
	borderWidth := 2
	deckWidth := width - borderWidth
	colGap := 0
	if cols > 1 {
		colGap = 1
		deckWidth = (width - colGap - cols*borderWidth) / cols
		if deckWidth < 25 {
			deckWidth = 25
		}
	}

	blankDeck := func(deckHeight int) string {
		return lipgloss.NewStyle().
			Width(deckWidth).
			Height(deckHeight).
			Render("")
	}

	baseCtx := m.viewContext()
	renderDeck := func(idx int, h int) string {
		d := m.decks[idx]
		active := !m.HasModal() && m.activeDeckIdx == idx
		ctx := baseCtx
		// Inject per-deck fetch state into ViewContext.
		if state, exists := m.deckStates[d.TypeID()]; exists {
			ctx.DeckLastError = state.LastError
			ctx.DeckLoading = state.FetchInFlight
		}
		// Borders take two of the row's lines.
		return d.Render(ctx, deckWidth, max(h-2, 1), active)
	}

	renderedRows := make([]string, 0, rows)
	for row := 0; row < rows; row++ {
		deckHeight := rowHeights[row]
		rowDecks := make([]string, 0, cols)

		for col := 0; col < cols; col++ {
			idx := row*cols + col
			if idx >= len(m.decks) {
				if cols > 1 {
					rowDecks = append(rowDecks, blankDeck(deckHeight))
				}
				continue
			}
			rowDecks = append(rowDecks, renderDeck(idx, deckHeight))
		}

		rowView := rowDecks[0]
		if len(rowDecks) > 1 {
			withGaps := make([]string, 0, len(rowDecks)*2-1)
			for i, deck := range rowDecks {
				if i > 0 {
					withGaps = append(withGaps, " ")
				}
				withGaps = append(withGaps, deck)
			}
			rowView = lipgloss.JoinHorizontal(lipgloss.Top, withGaps...)
		}
		renderedRows = append(renderedRows, rowView)
	}

	result := lipgloss.JoinVertical(lipgloss.Left, renderedRows...)

	constrainedStyle := lipgloss.NewStyle().
		Height(height).
		MaxHeight(height).
		Width(width)

	return constrainedStyle.Render(result)
}
