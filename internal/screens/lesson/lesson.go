package lesson

import (
	"errors"
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"

	lsn "github.com/abhisek/numline/internal/lesson"
	"github.com/abhisek/numline/internal/router"
	"github.com/abhisek/numline/internal/screen"
	"github.com/abhisek/numline/internal/screens/completion"
	"github.com/abhisek/numline/internal/stage"
	"github.com/abhisek/numline/internal/ui/components"
	"github.com/abhisek/numline/internal/ui/layout"
)

// SessionFactory builds the session that renders to r.
type SessionFactory func(r lsn.Renderer) *lsn.Session

// LessonScreen implements screen.Screen for a running lesson. It is also
// the session's Renderer: navigation requested by the session is queued as
// commands and returned from the Update call that triggered it.
type LessonScreen struct {
	session  *lsn.Session
	line     components.NumberLine
	input    components.TextInput
	feedback *lsn.FeedbackLog
	prompt   string
	current  int
	total    int
	notice   string
	summary  string
	errMsg   string
	queued   []tea.Cmd
}

var _ screen.Screen = (*LessonScreen)(nil)
var _ screen.KeyHintProvider = (*LessonScreen)(nil)
var _ screen.StatusProvider = (*LessonScreen)(nil)
var _ lsn.Renderer = (*LessonScreen)(nil)

// New creates a LessonScreen. The lesson starts when the screen is
// initialised.
func New(factory SessionFactory, feedbackLimit int) *LessonScreen {
	s := &LessonScreen{
		input:    components.NewTextInput("type a number", true, 4),
		feedback: lsn.NewFeedbackLog(feedbackLimit),
	}
	s.session = factory(s)
	return s
}

func (s *LessonScreen) Init() tea.Cmd {
	return s.restart()
}

func (s *LessonScreen) Title() string {
	return "Number Line"
}

func (s *LessonScreen) KeyHints() []layout.KeyHint {
	if s.session.Pending() != nil {
		return []layout.KeyHint{
			{Key: "Ctrl+R", Description: "Restart"},
			{Key: "Esc", Description: "Home"},
		}
	}
	return []layout.KeyHint{
		{Key: "←→", Description: "Move"},
		{Key: "0-9 -", Description: "Type"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+R", Description: "Restart"},
		{Key: "Esc", Description: "Home"},
	}
}

func (s *LessonScreen) Status() layout.Status {
	if s.session.Phase() != lsn.PhaseInProgress {
		return layout.Status{}
	}
	st := s.session.Snapshot()
	return layout.Status{
		Stage:  st.Stage,
		Range:  s.session.Stage().String(),
		Streak: st.Streak,
	}
}

func (s *LessonScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case continueMsg:
		if err := s.session.Continue(msg.Continuation); err != nil {
			s.errMsg = err.Error()
		}
		return s, s.flush()

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *LessonScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "ctrl+r":
		return s, s.restart()
	case "esc":
		s.session.Abandon()
		return s, s.flush()
	case "left", "h":
		s.line.Move(-1)
		return s, nil
	case "right", "l":
		s.line.Move(1)
		return s, nil
	case "enter":
		return s, s.submit()
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *LessonScreen) restart() tea.Cmd {
	s.errMsg = ""
	if err := s.session.Start(); err != nil {
		s.errMsg = err.Error()
	}
	return s.flush(s.input.Init())
}

// submit answers with the typed number if there is one, otherwise with the
// value under the cursor.
func (s *LessonScreen) submit() tea.Cmd {
	s.notice = ""

	var (
		out lsn.Outcome
		err error
	)
	if typed := s.input.Value(); typed != "" {
		out, err = s.session.SubmitRaw(typed)
	} else {
		out, err = s.session.Submit(s.line.Cursor)
	}
	if errors.Is(err, lsn.ErrMalformedSelection) {
		s.notice = "Type a whole number, like 7 or -3."
		return nil
	}
	if errors.Is(err, lsn.ErrSelectionOffLine) {
		st := s.session.Stage()
		s.notice = fmt.Sprintf("Pick a number on the line, from %d to %d.", st.Min, st.Max)
		s.input.Reset()
		return nil
	}
	if err != nil {
		s.errMsg = err.Error()
		return nil
	}

	if out.Result != lsn.ResultIgnored {
		s.input.Reset()
		s.input.Submit(out.Result == lsn.ResultCorrect)
	}
	var wait tea.Cmd
	if c := out.Continuation; c != nil {
		wait = continueAfter(*c)
	}
	return s.flush(wait)
}

func continueAfter(c lsn.Continuation) tea.Cmd {
	return tea.Tick(c.Delay, func(time.Time) tea.Msg {
		return continueMsg{Continuation: c}
	})
}

// flush returns the queued navigation commands together with cmds.
func (s *LessonScreen) flush(cmds ...tea.Cmd) tea.Cmd {
	all := append(s.queued, cmds...)
	s.queued = nil
	return tea.Batch(all...)
}

func (s *LessonScreen) queue(cmd tea.Cmd) {
	s.queued = append(s.queued, cmd)
}

// Renderer implementation.

func (s *LessonScreen) RenderNumberLine(st stage.Stage) {
	if s.line.Stage == (stage.Stage{}) {
		s.line = components.NewNumberLine(st)
		return
	}
	s.line.SetStage(st)
}

func (s *LessonScreen) ShowPrompt(text string) {
	s.prompt = text
	s.notice = ""
	s.input.Reset()
}

func (s *LessonScreen) AppendFeedback(text string, correct bool) {
	s.feedback.Append(text, correct)
}

func (s *LessonScreen) HighlightValues(match func(int) bool) {
	s.line.Highlight(match)
}

func (s *LessonScreen) ShowProgress(current, total int) {
	s.current = current
	s.total = total
}

func (s *LessonScreen) ShowCompletionSummary(text string) {
	s.summary = text
}

func (s *LessonScreen) ShowScreen(name lsn.Screen) {
	switch name {
	case lsn.ScreenLesson:
		s.feedback.Reset()
		s.notice = ""
		s.summary = ""
	case lsn.ScreenCompletion:
		sum := s.session.Summary()
		sum.Text = s.summary
		done := completion.New(sum, func() screen.Screen { return s })
		s.queue(func() tea.Msg { return router.ReplaceScreenMsg{Screen: done} })
	case lsn.ScreenInitial:
		s.queue(func() tea.Msg { return router.PopScreenMsg{} })
	}
}
