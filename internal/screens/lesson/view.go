package lesson

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/numline/internal/ui/components"
	"github.com/abhisek/numline/internal/ui/theme"
)

func (s *LessonScreen) View(width, height int) string {
	if s.errMsg != "" {
		return renderError(width, height, s.errMsg)
	}

	var b strings.Builder
	b.WriteString("\n")

	// Progress line.
	progress := components.NewProgressBar(
		fmt.Sprintf("  Question %d of %d", s.current, s.total),
		s.current-1, s.total, true, min(width-4, 60))
	b.WriteString(progress.View())
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n")

	// Prompt.
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render(s.prompt))
	b.WriteString("\n\n")

	// Number line.
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.line.View(width-4)))
	b.WriteString("\n\n")

	// Answer input.
	answer := "Selected: " + theme.Cursor.Render(fmt.Sprint(s.line.Cursor)) +
		"    or type: " + s.input.View()
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, answer))
	b.WriteString("\n")
	if s.notice != "" {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Accent).
			Render(s.notice))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(s.renderFeedback(width))
	return b.String()
}

// renderFeedback lists the feedback entries, newest last.
func (s *LessonScreen) renderFeedback(width int) string {
	var b strings.Builder
	style := lipgloss.NewStyle().Width(min(width-8, 90))
	for _, e := range s.feedback.Entries() {
		line := "✗ " + e.Text
		fg := theme.Error
		if e.Correct {
			line = "✓ " + e.Text
			fg = theme.Success
		}
		b.WriteString("  ")
		b.WriteString(style.Foreground(fg).Render(line))
		b.WriteString("\n")
	}
	return b.String()
}

func renderError(width, height int, msg string) string {
	content := lipgloss.NewStyle().
		Foreground(theme.Error).
		Bold(true).
		Render("Something went wrong") + "\n\n" +
		lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Render(msg) + "\n\n" +
		lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Italic(true).
			Render("Press Esc to go back")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
