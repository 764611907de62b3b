package initial

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/numline/internal/router"
	"github.com/abhisek/numline/internal/screen"
	"github.com/abhisek/numline/internal/ui/components"
	"github.com/abhisek/numline/internal/ui/layout"
	"github.com/abhisek/numline/internal/ui/theme"
)

// axisReach bounds the decorative axis drawn under the banner.
const axisReach = 5

// InitialScreen is the start page. Enter pushes a fresh lesson.
type InitialScreen struct {
	lessonFactory func() screen.Screen
	start         components.Button
}

var _ screen.Screen = (*InitialScreen)(nil)
var _ screen.KeyHintProvider = (*InitialScreen)(nil)

// New creates an InitialScreen that starts the screen produced by
// lessonFactory.
func New(lessonFactory func() screen.Screen) *InitialScreen {
	s := &InitialScreen{lessonFactory: lessonFactory}
	s.start = components.NewButton("Start lesson", true, s.startLesson)
	return s
}

func (s *InitialScreen) Title() string {
	return ""
}

func (s *InitialScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Start"},
		{Key: "Q", Description: "Quit"},
	}
}

func (s *InitialScreen) Init() tea.Cmd {
	return nil
}

func (s *InitialScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	if kmsg.String() == "q" {
		return s, tea.Quit
	}
	var cmd tea.Cmd
	s.start, cmd = s.start.Update(kmsg)
	return s, cmd
}

func (s *InitialScreen) startLesson() tea.Cmd {
	next := s.lessonFactory()
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: next}
	}
}

func (s *InitialScreen) View(width, height int) string {
	var sections []string

	sections = append(sections, RenderBanner(width), "")
	sections = append(sections, renderAxis(), "")

	sections = append(sections, lipgloss.NewStyle().
		Foreground(theme.Text).
		Bold(true).
		Render("Find your way along the number line!"))
	sections = append(sections, lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render("Move with ← → and press Enter, or type a number."))
	sections = append(sections, "", s.start.View())

	content := lipgloss.JoinVertical(lipgloss.Center, sections...)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

// renderAxis draws a short axis with zero marked.
func renderAxis() string {
	var b strings.Builder
	for v := -axisReach; v <= axisReach; v++ {
		if v == 0 {
			b.WriteString(theme.Cursor.Render("●"))
		} else {
			b.WriteString(theme.Axis.Render("┼"))
		}
		if v < axisReach {
			b.WriteString(theme.Axis.Render("──"))
		}
	}
	return b.String()
}
