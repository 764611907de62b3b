package lesson

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"

	"github.com/abhisek/numline/internal/question"
	"github.com/abhisek/numline/internal/stage"
)

// fallbackAnswerText is revealed when the answer cannot be formatted.
const fallbackAnswerText = "the correct answer"

var (
	ErrMalformedSelection = errors.New("selection is not an integer")
	ErrSelectionOffLine   = errors.New("selection is not on the number line")
)

// Session runs one learner through a lesson. It is not safe for concurrent
// use; front ends call it from their single event loop.
type Session struct {
	renderer  Renderer
	cfg       Config
	stages    stage.Table
	questions QuestionSource
	base      *slog.Logger
	logger    *slog.Logger

	id      string
	phase   Phase
	state   State
	seq     uint64
	pending *Continuation
	summary Summary
}

// New creates a Session rendering to r. The lesson does not begin until
// Start is called.
func New(r Renderer, opts ...Option) *Session {
	s := &Session{
		renderer: r,
		cfg:      DefaultConfig(),
		stages:   stage.Default(),
		base:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.base
	if s.questions == nil {
		s.questions = question.NewSeededGenerator(0)
	}
	return s
}

// ID returns the identity of the current run. It changes on every Start.
func (s *Session) ID() string {
	return s.id
}

// Phase returns the lifecycle phase.
func (s *Session) Phase() Phase {
	return s.phase
}

// Snapshot returns a copy of the lesson state.
func (s *Session) Snapshot() State {
	st := s.state
	if st.Active != nil {
		q := *st.Active
		st.Active = &q
	}
	return st
}

// Stage returns the stage currently in effect.
func (s *Session) Stage() stage.Stage {
	return s.stages.At(s.state.Stage)
}

// Summary returns the lesson summary. It is final once the phase is
// PhaseCompleted.
func (s *Session) Summary() Summary {
	return s.summary
}

// Pending returns the continuation waiting to run, if any.
func (s *Session) Pending() *Continuation {
	if s.pending == nil {
		return nil
	}
	c := *s.pending
	return &c
}

// Start begins a fresh lesson. Any earlier progress and any pending
// continuation are discarded. If no question can be drawn for the first
// stage the session is left exactly as it was.
func (s *Session) Start() error {
	first := s.stages.At(1)
	q, err := s.drawQuestion(first, 1)
	if err != nil {
		return err
	}

	s.id = uuid.New().String()
	s.seq = 0
	s.pending = nil
	s.summary = Summary{}
	s.state = State{
		Stage:          1,
		Question:       1,
		TotalQuestions: s.cfg.TotalQuestions,
	}
	s.phase = PhaseInProgress
	s.logger = s.base.With("session_id", s.id)

	s.logger.Info("lesson started",
		"total_questions", s.cfg.TotalQuestions,
		"stages", s.stages.Len())

	s.renderer.ShowScreen(ScreenLesson)
	s.present(q, first)
	return nil
}

// Abandon stops the lesson and returns to the initial screen.
func (s *Session) Abandon() {
	if s.phase == PhaseInProgress {
		s.logger.Info("lesson abandoned", "question", s.state.Question)
	}
	s.pending = nil
	s.phase = PhaseNotStarted
	s.state.Active = nil
	s.renderer.ShowScreen(ScreenInitial)
}

// SubmitRaw parses a selection typed or clicked by the learner and submits
// it. Input that is not an integer is logged and ignored.
func (s *Session) SubmitRaw(text string) (Outcome, error) {
	v, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		s.logger.Warn("ignoring malformed selection", "input", text)
		return Outcome{Result: ResultIgnored}, goerr.Wrap(ErrMalformedSelection, "cannot parse selection",
			goerr.V("input", text))
	}
	return s.Submit(v)
}

// Submit evaluates the learner's selection against the active question.
// A value that is not a tick on the current number line is logged and
// ignored with ErrSelectionOffLine.
func (s *Session) Submit(selected int) (Outcome, error) {
	if s.phase != PhaseInProgress || s.state.Active == nil {
		s.logger.Debug("selection outside lesson ignored", "phase", s.phase.String(), "selected", selected)
		return Outcome{Result: ResultIgnored}, nil
	}
	if s.pending != nil {
		s.logger.Debug("selection while advancing ignored", "selected", selected)
		return Outcome{Result: ResultIgnored}, nil
	}

	st := s.Stage()
	if !st.Contains(selected) {
		s.logger.Warn("ignoring selection off the number line", "selected", selected, "range", st.String())
		return Outcome{Result: ResultIgnored}, goerr.Wrap(ErrSelectionOffLine, "selection outside stage",
			goerr.V("selected", selected), goerr.V("range", st.String()))
	}
	q := *s.state.Active
	prefix := fmt.Sprintf("Question %d: ", s.state.Question)

	correct, err := question.IsCorrect(q, st, selected)
	if err != nil {
		s.logger.Error("cannot evaluate selection", "error", err, "kind", q.Kind.String())
		correct = false
	}
	s.logger.Debug("selection evaluated",
		"kind", q.Kind.String(), "selected", selected, "correct", correct,
		"attempts", s.state.IncorrectAttempts)

	if correct {
		return s.onCorrect(prefix), nil
	}

	s.state.IncorrectAttempts++
	if s.state.IncorrectAttempts == 1 {
		s.renderer.AppendFeedback(prefix+"Incorrect. Please try again.", false)
		return Outcome{Result: ResultTryAgain}, nil
	}
	return s.onReveal(prefix, q, st), nil
}

func (s *Session) onCorrect(prefix string) Outcome {
	s.renderer.AppendFeedback(prefix+"Correct! Well done.", true)

	if s.state.IncorrectAttempts > 0 {
		// A recovered miss completes the cycle with a broken streak.
		s.state.Streak = 0
		s.summary.Retried++
	} else {
		s.state.Streak++
		s.summary.FirstTry++
		s.maybeAdvanceStage()
	}

	s.state.Question++
	s.state.IncorrectAttempts = 0
	return Outcome{Result: ResultCorrect, Continuation: s.schedule(s.cfg.CorrectDelay)}
}

func (s *Session) maybeAdvanceStage() {
	if s.state.Streak < s.cfg.StreakThreshold {
		return
	}
	if s.state.Stage >= s.stages.Len() {
		s.logger.Debug("maximum stage reached, continuing at current stage", "streak", s.state.Streak)
		return
	}
	s.state.Stage++
	s.state.Streak = 0
	s.logger.Info("stage advanced", "stage", s.state.Stage, "range", s.Stage().String())
}

func (s *Session) onReveal(prefix string, q question.Question, st stage.Stage) Outcome {
	answer, err := question.CorrectAnswerText(q, st)
	if err != nil {
		s.logger.Error("cannot format correct answer", "error", err, "kind", q.Kind.String())
		answer = fallbackAnswerText
	}
	s.renderer.AppendFeedback(prefix+"Incorrect again. The correct answer is "+answer+
		". Highlighting the correct answer on the number line.", false)

	if match, err := question.Qualifies(q, st); err != nil {
		s.logger.Error("cannot highlight correct answer", "error", err, "kind", q.Kind.String())
	} else {
		s.renderer.HighlightValues(match)
	}

	s.logger.Info("answer revealed", "question", s.state.Question, "kind", q.Kind.String())

	s.state.IncorrectAttempts = 0
	s.state.Streak = 0
	s.state.Question++
	s.summary.Revealed++
	return Outcome{Result: ResultRevealed, Continuation: s.schedule(s.cfg.RevealDelay)}
}

func (s *Session) schedule(delay time.Duration) *Continuation {
	s.seq++
	c := Continuation{SessionID: s.id, Seq: s.seq, Delay: delay}
	s.pending = &c
	out := c
	return &out
}

// Continue runs a continuation returned by Submit once its delay has
// elapsed: it installs the next question or completes the lesson. A
// continuation from an earlier run, or one already consumed, is ignored.
func (s *Session) Continue(c Continuation) error {
	if s.pending == nil || c.SessionID != s.id || c.Seq != s.pending.Seq {
		s.logger.Debug("stale continuation ignored", "continuation_session", c.SessionID, "seq", c.Seq)
		return nil
	}
	s.pending = nil
	return s.advanceOrComplete()
}

func (s *Session) advanceOrComplete() error {
	if s.state.Question <= s.state.TotalQuestions {
		return s.installQuestion()
	}
	s.complete()
	return nil
}

func (s *Session) installQuestion() error {
	st := s.Stage()
	q, err := s.drawQuestion(st, s.state.Question)
	if err != nil {
		return err
	}
	s.present(q, st)
	return nil
}

// drawQuestion asks the source for the next question and fills in its
// prompt. It does not touch session state.
func (s *Session) drawQuestion(st stage.Stage, number int) (question.Question, error) {
	q, err := s.questions.Next(st)
	if err != nil {
		s.logger.Error("no question available for stage", "error", err, "stage", st.String())
		return question.Question{}, goerr.Wrap(err, "cannot install question",
			goerr.V("stage", st.String()), goerr.V("question", number))
	}
	if q.Prompt == "" {
		if q.Prompt, err = question.PromptText(q, st); err != nil {
			s.logger.Error("cannot format prompt", "error", err, "kind", q.Kind.String())
		}
	}
	return q, nil
}

func (s *Session) present(q question.Question, st stage.Stage) {
	s.state.IncorrectAttempts = 0
	s.state.Active = &q

	s.logger.Debug("question installed",
		"question", s.state.Question, "kind", q.Kind.String(),
		"target", q.Truth.Target, "range", q.Truth.Range)

	s.renderer.RenderNumberLine(st)
	s.renderer.ShowPrompt(q.Prompt)
	s.renderer.ShowProgress(s.state.Question, s.state.TotalQuestions)
}

func (s *Session) complete() {
	s.phase = PhaseCompleted
	s.state.Active = nil
	s.summary.FinalStreak = s.state.Streak
	s.summary.FinalStage = s.state.Stage
	s.summary.Text = summaryText(s.state.Streak)

	s.logger.Info("lesson completed",
		"final_streak", s.summary.FinalStreak,
		"final_stage", s.summary.FinalStage,
		"first_try", s.summary.FirstTry,
		"revealed", s.summary.Revealed)

	s.renderer.ShowCompletionSummary(s.summary.Text)
	s.renderer.ShowScreen(ScreenCompletion)
}
