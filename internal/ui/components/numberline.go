package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/numline/internal/stage"
	"github.com/abhisek/numline/internal/ui/theme"
)

// NumberLine draws the ticks of a stage, wrapping onto several rows when
// the terminal is narrow. A caret marks the value under the cursor.
type NumberLine struct {
	Stage      stage.Stage
	Cursor     int
	ShowCursor bool
	highlight  func(int) bool
}

// NewNumberLine creates a number line with the cursor on 0 when the stage
// contains it, otherwise on the smallest value.
func NewNumberLine(s stage.Stage) NumberLine {
	n := NumberLine{ShowCursor: true}
	n.SetStage(s)
	return n
}

// SetStage redraws the line for s. Highlights are cleared and the cursor
// is kept when it still lies on the line.
func (n *NumberLine) SetStage(s stage.Stage) {
	n.Stage = s
	n.highlight = nil
	if !s.Contains(n.Cursor) {
		n.Cursor = s.Min
		if s.Contains(0) {
			n.Cursor = 0
		}
	}
}

// Highlight marks every value for which match returns true.
func (n *NumberLine) Highlight(match func(int) bool) {
	n.highlight = match
}

// Highlighted reports whether v is marked.
func (n NumberLine) Highlighted(v int) bool {
	return n.highlight != nil && n.Stage.Contains(v) && n.highlight(v)
}

// Move shifts the cursor by delta, stopping at the ends of the line.
func (n *NumberLine) Move(delta int) {
	n.Cursor = min(max(n.Cursor+delta, n.Stage.Min), n.Stage.Max)
}

// cellWidth fits the widest label plus one column of spacing.
func (n NumberLine) cellWidth() int {
	w := max(len(fmt.Sprint(n.Stage.Min)), len(fmt.Sprint(n.Stage.Max)))
	return w + 2
}

// Rows splits the values into rows that fit within width columns.
func (n NumberLine) Rows(width int) [][]int {
	values := n.Stage.Values()
	perRow := max(width/n.cellWidth(), 1)

	var rows [][]int
	for len(values) > 0 {
		k := min(perRow, len(values))
		rows = append(rows, values[:k])
		values = values[k:]
	}
	return rows
}

// View renders the number line.
func (n NumberLine) View(width int) string {
	cell := n.cellWidth()
	var b strings.Builder

	for i, row := range n.Rows(width) {
		if i > 0 {
			b.WriteString("\n")
		}

		var axis, labels, caret strings.Builder
		for _, v := range row {
			axis.WriteString(theme.Axis.Render(strings.Repeat("─", cell-1)) + theme.Tick.Render("┼"))
			labels.WriteString(n.renderLabel(v, cell))
			if n.ShowCursor && v == n.Cursor {
				caret.WriteString(strings.Repeat(" ", cell-1) + theme.Cursor.Render("▲"))
			} else {
				caret.WriteString(strings.Repeat(" ", cell))
			}
		}

		b.WriteString(axis.String())
		b.WriteString("\n")
		b.WriteString(labels.String())
		b.WriteString("\n")
		b.WriteString(caret.String())
	}

	return b.String()
}

func (n NumberLine) renderLabel(v, cell int) string {
	label := fmt.Sprintf("%*d", cell, v)
	var style lipgloss.Style
	switch {
	case n.Highlighted(v):
		style = theme.TickHighlight
	case n.ShowCursor && v == n.Cursor:
		style = theme.Cursor
	case v == 0:
		style = theme.TickZero
	default:
		style = theme.Tick
	}
	return style.Render(label)
}
