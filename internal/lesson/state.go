package lesson

import (
	"fmt"
	"time"

	"github.com/abhisek/numline/internal/question"
)

// Phase is the lifecycle phase of a lesson.
type Phase int

const (
	PhaseNotStarted Phase = iota // Before Start or after Abandon
	PhaseInProgress              // Serving questions
	PhaseCompleted               // All questions consumed
)

func (p Phase) String() string {
	switch p {
	case PhaseNotStarted:
		return "not-started"
	case PhaseInProgress:
		return "in-progress"
	case PhaseCompleted:
		return "completed"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// State is the mutable progress of one lesson.
type State struct {
	// Stage is the 1-based index into the stage table.
	Stage int

	// Streak is the number of first-try correct answers in a row.
	Streak int

	// Question is the 1-based index of the question being asked. It runs
	// one past TotalQuestions once the last question is finished.
	Question int

	// IncorrectAttempts counts misses on the current question (0, 1 or 2).
	IncorrectAttempts int

	// TotalQuestions is the lesson length.
	TotalQuestions int

	// Active is the question on screen. Nil between lessons.
	Active *question.Question
}

// Result classifies what a submission did.
type Result int

const (
	ResultIgnored  Result = iota // Submission did not touch the lesson
	ResultCorrect                // Answered; next question scheduled
	ResultTryAgain               // First miss; same question again
	ResultRevealed               // Second miss; answer shown, next question scheduled
)

func (r Result) String() string {
	switch r {
	case ResultCorrect:
		return "correct"
	case ResultTryAgain:
		return "try-again"
	case ResultRevealed:
		return "revealed"
	default:
		return "ignored"
	}
}

// Continuation is a pending "advance to the next question" step. The front
// end waits Delay and hands it back to Session.Continue. It is bound to the
// session identity that issued it, so a restart voids it.
type Continuation struct {
	SessionID string
	Seq       uint64
	Delay     time.Duration
}

// Outcome is the result of a submission.
type Outcome struct {
	Result       Result
	Continuation *Continuation
}

// Summary describes a finished lesson.
type Summary struct {
	FinalStreak int
	FinalStage  int
	FirstTry    int
	Retried     int
	Revealed    int
	Text        string
}

func summaryText(streak int) string {
	return fmt.Sprintf("You have completed the lesson with %d correct answers in a row.", streak)
}
