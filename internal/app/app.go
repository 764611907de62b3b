package app

import (
	"context"
	"log/slog"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/m-mizutani/goerr/v2"

	"github.com/abhisek/numline/internal/config"
	"github.com/abhisek/numline/internal/lesson"
	"github.com/abhisek/numline/internal/question"
	"github.com/abhisek/numline/internal/router"
	"github.com/abhisek/numline/internal/screen"
	"github.com/abhisek/numline/internal/screens/initial"
	lessonscreen "github.com/abhisek/numline/internal/screens/lesson"
	"github.com/abhisek/numline/internal/ui/layout"
)

// Options holds the dependencies for the TUI.
type Options struct {
	Config config.Config
	Logger *slog.Logger
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	width  int
	height int
}

// newAppModel creates a new AppModel with the initial screen.
func newAppModel(opts Options) AppModel {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	cfg := opts.Config

	newSession := func(r lesson.Renderer) *lesson.Session {
		return lesson.New(r,
			lesson.WithConfig(cfg.Lesson()),
			lesson.WithQuestionSource(question.NewSeededGenerator(cfg.Seed)),
			lesson.WithLogger(logger))
	}
	newLesson := func() screen.Screen {
		return lessonscreen.New(newSession, cfg.FeedbackLimit)
	}

	return AppModel{
		router: router.New(initial.New(newLesson)),
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	var status layout.Status
	if active != nil {
		title = active.Title()
		if sp, ok := active.(screen.StatusProvider); ok {
			status = sp.Status()
		}
	}

	header := layout.RenderHeader(title, status, m.width)
	footer := layout.RenderFooter(m.footerHints(active), m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	var hints []layout.KeyHint
	if kp, ok := active.(screen.KeyHintProvider); ok {
		hints = kp.KeyHints()
	}
	return append(hints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
}

// Run starts the Bubble Tea program and blocks until it exits or ctx is
// cancelled.
func Run(ctx context.Context, opts Options) error {
	p := tea.NewProgram(newAppModel(opts), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return goerr.Wrap(err, "failed to run program")
	}
	return nil
}
