package lesson

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/numline/internal/question"
	"github.com/abhisek/numline/internal/stage"
)

// recordingRenderer captures every call a Session makes.
type recordingRenderer struct {
	lines      []stage.Stage
	prompts    []string
	feedback   *FeedbackLog
	highlights []func(int) bool
	progress   [][2]int
	summaries  []string
	screens    []Screen
}

func newRecordingRenderer() *recordingRenderer {
	return &recordingRenderer{feedback: NewFeedbackLog(DefaultFeedbackLimit)}
}

func (r *recordingRenderer) RenderNumberLine(s stage.Stage)       { r.lines = append(r.lines, s) }
func (r *recordingRenderer) ShowPrompt(text string)               { r.prompts = append(r.prompts, text) }
func (r *recordingRenderer) AppendFeedback(text string, ok bool)  { r.feedback.Append(text, ok) }
func (r *recordingRenderer) HighlightValues(match func(int) bool) { r.highlights = append(r.highlights, match) }
func (r *recordingRenderer) ShowProgress(current, total int) {
	r.progress = append(r.progress, [2]int{current, total})
}
func (r *recordingRenderer) ShowCompletionSummary(text string) { r.summaries = append(r.summaries, text) }
func (r *recordingRenderer) ShowScreen(name Screen)            { r.screens = append(r.screens, name) }

func (r *recordingRenderer) lastFeedback() FeedbackEntry {
	entries := r.feedback.Entries()
	return entries[len(entries)-1]
}

// fixedSource serves questions of one kind with a fixed truth.
type fixedSource struct {
	kind  question.Kind
	truth question.Truth
	calls int
	err   error
}

func (f *fixedSource) Next(stage.Stage) (question.Question, error) {
	f.calls++
	if f.err != nil {
		return question.Question{}, f.err
	}
	q := question.Question{Kind: f.kind, Truth: f.truth}
	return q, nil
}

func newTestSession(t *testing.T, src QuestionSource, opts ...Option) (*Session, *recordingRenderer) {
	t.Helper()
	r := newRecordingRenderer()
	opts = append([]Option{WithQuestionSource(src)}, opts...)
	s := New(r, opts...)
	require.NoError(t, s.Start())
	return s, r
}

func sevenSource() *fixedSource {
	return &fixedSource{kind: question.IdentifySpecificNumber, truth: question.Truth{Target: 7}}
}

func answerCorrectly(t *testing.T, s *Session, v int) {
	t.Helper()
	out, err := s.Submit(v)
	require.NoError(t, err)
	require.Equal(t, ResultCorrect, out.Result)
	require.NotNil(t, out.Continuation)
	require.NoError(t, s.Continue(*out.Continuation))
}

func TestStartResetsState(t *testing.T) {
	s, r := newTestSession(t, sevenSource())

	st := s.Snapshot()
	assert.Equal(t, PhaseInProgress, s.Phase())
	assert.Equal(t, 1, st.Stage)
	assert.Equal(t, 0, st.Streak)
	assert.Equal(t, 1, st.Question)
	assert.Equal(t, 0, st.IncorrectAttempts)
	assert.Equal(t, 10, st.TotalQuestions)
	require.NotNil(t, st.Active)

	assert.Equal(t, []Screen{ScreenLesson}, r.screens)
	assert.Equal(t, []stage.Stage{{Min: 1, Max: 10}}, r.lines)
	assert.Equal(t, []string{"Select the point that represents 7."}, r.prompts)
	assert.Equal(t, [][2]int{{1, 10}}, r.progress)
	assert.NotEmpty(t, s.ID())
}

func TestSpecificNumberScenario(t *testing.T) {
	s, r := newTestSession(t, sevenSource())

	// Correct on the first try.
	out, err := s.Submit(7)
	require.NoError(t, err)
	assert.Equal(t, ResultCorrect, out.Result)
	assert.Equal(t, "Question 1: Correct! Well done.", r.lastFeedback().Text)
	assert.True(t, r.lastFeedback().Correct)
	require.NoError(t, s.Continue(*out.Continuation))

	// Wrong once: same question, one attempt used.
	out, err = s.Submit(3)
	require.NoError(t, err)
	assert.Equal(t, ResultTryAgain, out.Result)
	assert.Nil(t, out.Continuation)
	st := s.Snapshot()
	assert.Equal(t, 2, st.Question)
	assert.Equal(t, 1, st.IncorrectAttempts)
	assert.Equal(t, "Question 2: Incorrect. Please try again.", r.lastFeedback().Text)

	// Wrong again: reveal and move on.
	out, err = s.Submit(3)
	require.NoError(t, err)
	assert.Equal(t, ResultRevealed, out.Result)
	require.NotNil(t, out.Continuation)
	assert.Equal(t, 3500*time.Millisecond, out.Continuation.Delay)

	st = s.Snapshot()
	assert.Equal(t, 3, st.Question)
	assert.Equal(t, 0, st.IncorrectAttempts)
	assert.Equal(t,
		"Question 2: Incorrect again. The correct answer is the number 7. Highlighting the correct answer on the number line.",
		r.lastFeedback().Text)

	require.Len(t, r.highlights, 1)
	for v := 1; v <= 10; v++ {
		assert.Equal(t, v == 7, r.highlights[0](v), "highlight %d", v)
	}
}

func TestDistanceFromZeroScenario(t *testing.T) {
	src := &fixedSource{kind: question.DistanceFromZero, truth: question.Truth{Target: -4}}
	s, _ := newTestSession(t, src, WithStages(mustTable(t, stage.Stage{Min: -10, Max: 10})))

	out, err := s.Submit(4)
	require.NoError(t, err)
	assert.Equal(t, ResultCorrect, out.Result)
	require.NoError(t, s.Continue(*out.Continuation))

	out, err = s.Submit(-5)
	require.NoError(t, err)
	assert.Equal(t, ResultTryAgain, out.Result)
}

func TestStreakAdvancesStage(t *testing.T) {
	src := &fixedSource{kind: question.IdentifyEvenNumber}
	s, r := newTestSession(t, src)

	answerCorrectly(t, s, 2)
	answerCorrectly(t, s, 4)
	assert.Equal(t, 2, s.Snapshot().Streak)
	assert.Equal(t, 1, s.Snapshot().Stage)

	answerCorrectly(t, s, 6)
	st := s.Snapshot()
	assert.Equal(t, 2, st.Stage)
	assert.Equal(t, 0, st.Streak)
	assert.Equal(t, stage.Stage{Min: 0, Max: 10}, r.lines[len(r.lines)-1])
}

func TestStreakGrowsAtLastStage(t *testing.T) {
	src := &fixedSource{kind: question.IdentifyEvenNumber}
	s, _ := newTestSession(t, src, WithConfig(Config{TotalQuestions: 20, StreakThreshold: 3}))

	for i := 0; i < 9; i++ {
		answerCorrectly(t, s, 2)
	}
	assert.Equal(t, 4, s.Snapshot().Stage)
	assert.Equal(t, 0, s.Snapshot().Streak)

	for i := 0; i < 4; i++ {
		answerCorrectly(t, s, 2)
	}
	assert.Equal(t, 4, s.Snapshot().Stage)
	assert.Equal(t, 4, s.Snapshot().Streak)
}

func TestRecoveredMissResetsStreak(t *testing.T) {
	src := &fixedSource{kind: question.IdentifyOddNumber}
	s, _ := newTestSession(t, src)

	answerCorrectly(t, s, 1)
	answerCorrectly(t, s, 3)

	out, err := s.Submit(2)
	require.NoError(t, err)
	require.Equal(t, ResultTryAgain, out.Result)

	answerCorrectly(t, s, 5)
	st := s.Snapshot()
	assert.Equal(t, 0, st.Streak)
	assert.Equal(t, 1, st.Stage, "a recovered miss must not advance the stage")
	assert.Equal(t, 4, st.Question)
}

func TestSubmitIgnoredWhilePending(t *testing.T) {
	s, r := newTestSession(t, sevenSource())

	out, err := s.Submit(7)
	require.NoError(t, err)
	require.NotNil(t, out.Continuation)

	ignored, err := s.Submit(7)
	require.NoError(t, err)
	assert.Equal(t, ResultIgnored, ignored.Result)
	assert.Equal(t, 2, s.Snapshot().Question)
	assert.Equal(t, 1, r.feedback.Len())
}

func TestStaleContinuationAfterRestart(t *testing.T) {
	src := sevenSource()
	s, r := newTestSession(t, src)

	out, err := s.Submit(7)
	require.NoError(t, err)
	stale := *out.Continuation

	require.NoError(t, s.Start())
	require.NoError(t, s.Continue(stale))

	st := s.Snapshot()
	assert.Equal(t, 1, st.Question)
	assert.Nil(t, s.Pending())
	assert.Equal(t, 2, src.calls, "stale continuation must not install a question")
	assert.Len(t, r.prompts, 2)
}

func TestContinuationRunsOnce(t *testing.T) {
	src := sevenSource()
	s, _ := newTestSession(t, src)

	out, err := s.Submit(7)
	require.NoError(t, err)
	require.NoError(t, s.Continue(*out.Continuation))
	require.NoError(t, s.Continue(*out.Continuation))
	assert.Equal(t, 2, src.calls)
}

func TestCompletion(t *testing.T) {
	s, r := newTestSession(t, sevenSource(), WithConfig(Config{TotalQuestions: 10, StreakThreshold: 3}))

	for i := 0; i < 10; i++ {
		answerCorrectly(t, s, 7)
	}

	assert.Equal(t, PhaseCompleted, s.Phase())
	assert.Equal(t, ScreenCompletion, r.screens[len(r.screens)-1])
	require.Len(t, r.summaries, 1)

	sum := s.Summary()
	assert.Equal(t, 10, sum.FirstTry)
	assert.Equal(t, 4, sum.FinalStage)
	// Stages advance after questions 3, 6 and 9; question 10 starts a new streak.
	assert.Equal(t, 1, sum.FinalStreak)
	assert.Equal(t, "You have completed the lesson with 1 correct answers in a row.", r.summaries[0])

	before := s.Snapshot()
	out, err := s.Submit(7)
	require.NoError(t, err)
	assert.Equal(t, ResultIgnored, out.Result)
	assert.Equal(t, before, s.Snapshot())

	require.NoError(t, s.Start())
	assert.Equal(t, PhaseInProgress, s.Phase())
	assert.Equal(t, 1, s.Snapshot().Question)
}

func TestCompletionAfterReveals(t *testing.T) {
	s, _ := newTestSession(t, sevenSource(), WithConfig(Config{TotalQuestions: 2, StreakThreshold: 3}))

	for i := 0; i < 2; i++ {
		_, err := s.Submit(1)
		require.NoError(t, err)
		out, err := s.Submit(1)
		require.NoError(t, err)
		require.Equal(t, ResultRevealed, out.Result)
		require.NoError(t, s.Continue(*out.Continuation))
	}

	assert.Equal(t, PhaseCompleted, s.Phase())
	assert.Equal(t, 2, s.Summary().Revealed)
	assert.Equal(t, 0, s.Summary().FinalStreak)
}

func TestSubmitRawMalformed(t *testing.T) {
	s, r := newTestSession(t, sevenSource())
	before := s.Snapshot()

	out, err := s.SubmitRaw("seven")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedSelection))
	assert.Equal(t, ResultIgnored, out.Result)
	assert.Equal(t, before, s.Snapshot())
	assert.Zero(t, r.feedback.Len())

	out, err = s.SubmitRaw(" 7 ")
	require.NoError(t, err)
	assert.Equal(t, ResultCorrect, out.Result)
}

func TestSubmitOffLineIgnored(t *testing.T) {
	tests := []struct {
		name     string
		src      *fixedSource
		selected int
	}{
		{"greater than, far right", &fixedSource{kind: question.IdentifyGreaterThanNumber,
			truth: question.Truth{Target: 5, Range: &question.Range{Min: 6, Max: 10}}}, 500},
		{"even, far left", &fixedSource{kind: question.IdentifyEvenNumber}, -1000},
		{"just below the line", sevenSource(), 0},
		{"just above the line", sevenSource(), 11},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, r := newTestSession(t, tt.src)
			before := s.Snapshot()

			out, err := s.Submit(tt.selected)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrSelectionOffLine))
			assert.Equal(t, ResultIgnored, out.Result)
			assert.Nil(t, out.Continuation)
			assert.Equal(t, before, s.Snapshot())
			assert.Zero(t, r.feedback.Len())
		})
	}
}

func TestSubmitRawOffLineIgnored(t *testing.T) {
	src := &fixedSource{kind: question.IdentifyGreaterThanNumber,
		truth: question.Truth{Target: 5, Range: &question.Range{Min: 6, Max: 10}}}
	s, _ := newTestSession(t, src)

	out, err := s.SubmitRaw("500")
	assert.True(t, errors.Is(err, ErrSelectionOffLine))
	assert.Equal(t, ResultIgnored, out.Result)

	out, err = s.SubmitRaw("10")
	require.NoError(t, err)
	assert.Equal(t, ResultCorrect, out.Result)
}

func TestSubmitBeforeStartIgnored(t *testing.T) {
	r := newRecordingRenderer()
	s := New(r, WithQuestionSource(sevenSource()))

	out, err := s.Submit(7)
	require.NoError(t, err)
	assert.Equal(t, ResultIgnored, out.Result)
	assert.Equal(t, PhaseNotStarted, s.Phase())
}

func TestUnknownKindCountsAsIncorrect(t *testing.T) {
	src := &fixedSource{kind: question.Kind(99)}
	s, r := newTestSession(t, src)

	out, err := s.Submit(1)
	require.NoError(t, err)
	assert.Equal(t, ResultTryAgain, out.Result)

	out, err = s.Submit(1)
	require.NoError(t, err)
	assert.Equal(t, ResultRevealed, out.Result)
	assert.Contains(t, r.lastFeedback().Text, "The correct answer is the correct answer.")
	assert.Empty(t, r.highlights)
}

func TestStartFailsWithoutQuestion(t *testing.T) {
	src := &fixedSource{err: question.ErrNoValidQuestion}
	r := newRecordingRenderer()
	s := New(r, WithQuestionSource(src))

	err := s.Start()
	require.Error(t, err)
	assert.True(t, errors.Is(err, question.ErrNoValidQuestion))
	assert.Empty(t, r.prompts)
	assert.Equal(t, PhaseNotStarted, s.Phase())

	out, err := s.Submit(1)
	require.NoError(t, err)
	assert.Equal(t, ResultIgnored, out.Result)
}

func TestFailedRestartKeepsCompletedLesson(t *testing.T) {
	src := sevenSource()
	s, r := newTestSession(t, src, WithConfig(Config{TotalQuestions: 1, StreakThreshold: 3}))
	answerCorrectly(t, s, 7)
	require.Equal(t, PhaseCompleted, s.Phase())

	id := s.ID()
	summary := s.Summary()
	state := s.Snapshot()
	screens := len(r.screens)

	src.err = question.ErrNoValidQuestion
	require.Error(t, s.Start())

	assert.Equal(t, PhaseCompleted, s.Phase())
	assert.Equal(t, id, s.ID())
	assert.Equal(t, summary, s.Summary())
	assert.Equal(t, 1, s.Summary().FirstTry)
	assert.Equal(t, state, s.Snapshot())
	assert.Len(t, r.screens, screens, "a failed restart must not switch screens")
}

func TestAbandon(t *testing.T) {
	s, r := newTestSession(t, sevenSource())
	out, err := s.Submit(7)
	require.NoError(t, err)

	s.Abandon()
	assert.Equal(t, PhaseNotStarted, s.Phase())
	assert.Equal(t, ScreenInitial, r.screens[len(r.screens)-1])
	require.NoError(t, s.Continue(*out.Continuation))
	assert.Nil(t, s.Snapshot().Active)
}

func TestGeneratedLessonKeepsQuestionsValid(t *testing.T) {
	r := newRecordingRenderer()
	s := New(r, WithQuestionSource(question.NewSeededGenerator(21)),
		WithConfig(Config{TotalQuestions: 40, StreakThreshold: 3}))
	require.NoError(t, s.Start())

	for s.Phase() == PhaseInProgress {
		st := s.Snapshot()
		require.NotNil(t, st.Active)
		require.True(t, question.IsValidFor(st.Active.Kind, s.Stage()))

		match, err := question.Qualifies(*st.Active, s.Stage())
		require.NoError(t, err)

		answer := s.Stage().Min
		for _, v := range s.Stage().Values() {
			if match(v) {
				answer = v
				break
			}
		}
		answerCorrectly(t, s, answer)
	}

	assert.Equal(t, 4, s.Summary().FinalStage)
	assert.Equal(t, 40, s.Summary().FirstTry)
}

func mustTable(t *testing.T, stages ...stage.Stage) stage.Table {
	t.Helper()
	tbl, err := stage.New(stages...)
	require.NoError(t, err)
	return tbl
}
