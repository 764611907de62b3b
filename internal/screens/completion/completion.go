package completion

import (
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/numline/internal/lesson"
	"github.com/abhisek/numline/internal/router"
	"github.com/abhisek/numline/internal/screen"
	"github.com/abhisek/numline/internal/ui/layout"
	"github.com/abhisek/numline/internal/ui/theme"
)

// CompletionScreen displays the lesson summary.
type CompletionScreen struct {
	summary lesson.Summary
	restart func() screen.Screen
}

var _ screen.Screen = (*CompletionScreen)(nil)
var _ screen.KeyHintProvider = (*CompletionScreen)(nil)

// New creates a CompletionScreen. restart produces the screen that replaces
// this one when the learner plays again.
func New(summary lesson.Summary, restart func() screen.Screen) *CompletionScreen {
	return &CompletionScreen{summary: summary, restart: restart}
}

func (s *CompletionScreen) Init() tea.Cmd {
	return nil
}

func (s *CompletionScreen) Title() string {
	return "Lesson Complete"
}

func (s *CompletionScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Play again"},
		{Key: "Esc", Description: "Home"},
		{Key: "Q", Description: "Quit"},
	}
}

func (s *CompletionScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "r":
			if s.restart == nil {
				return s, nil
			}
			next := s.restart()
			return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "q":
			return s, tea.Quit
		}
	}
	return s, nil
}

func (s *CompletionScreen) View(width, height int) string {
	sum := s.summary
	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render("Lesson complete!"))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Render(sum.Text))
	b.WriteString("\n\n")

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", max(min(width-8, 60), 0)))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n\n")

	rows := []struct {
		label string
		value int
		fg    color.Color
	}{
		{"Right first time", sum.FirstTry, theme.Success},
		{"Right on second try", sum.Retried, theme.Secondary},
		{"Answers shown", sum.Revealed, theme.Error},
		{"Final stage", sum.FinalStage, theme.Accent},
	}
	for _, r := range rows {
		line := fmt.Sprintf("%-22s %3d", r.label, r.value)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(r.fg).Render(line)))
		b.WriteString("\n")
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, b.String())
}
