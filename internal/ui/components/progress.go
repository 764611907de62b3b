package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/numline/internal/ui/theme"
)

// ProgressBar shows how many of Total steps are done, with an optional
// "done/total" count after the bar.
type ProgressBar struct {
	Label     string
	Done      int
	Total     int
	ShowCount bool
	Width     int
}

// NewProgressBar creates a new progress bar.
func NewProgressBar(label string, done, total int, showCount bool, width int) ProgressBar {
	return ProgressBar{
		Label:     label,
		Done:      done,
		Total:     total,
		ShowCount: showCount,
		Width:     width,
	}
}

// Fraction returns Done/Total clamped to [0, 1].
func (p ProgressBar) Fraction() float64 {
	if p.Total <= 0 {
		return 0
	}
	return min(max(float64(p.Done)/float64(p.Total), 0), 1)
}

// View renders the progress bar.
func (p ProgressBar) View() string {
	var result string

	if p.Label != "" {
		result += lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label) + "  "
	}

	count := ""
	if p.ShowCount {
		count = fmt.Sprintf("  %d/%d", p.Done, p.Total)
	}

	barWidth := max(p.Width-lipgloss.Width(result)-len(count), 4)
	filled := int(float64(barWidth) * p.Fraction())

	result += theme.ProgressFilled.Render(strings.Repeat(" ", filled)) +
		theme.ProgressEmpty.Render(strings.Repeat(" ", barWidth-filled))

	if count != "" {
		result += lipgloss.NewStyle().Foreground(theme.TextDim).Render(count)
	}
	return result
}
