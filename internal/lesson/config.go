package lesson

import (
	"log/slog"
	"time"

	"github.com/abhisek/numline/internal/question"
	"github.com/abhisek/numline/internal/stage"
)

// Config controls lesson pacing and progression.
type Config struct {
	// TotalQuestions is the number of questions in one lesson.
	TotalQuestions int

	// StreakThreshold is the number of first-try correct answers in a row
	// that moves the learner to the next stage.
	StreakThreshold int

	// CorrectDelay is how long feedback for a correct answer stays up
	// before the next question.
	CorrectDelay time.Duration

	// RevealDelay is how long a revealed answer stays highlighted before
	// the next question.
	RevealDelay time.Duration
}

// DefaultConfig returns the standard lesson settings.
func DefaultConfig() Config {
	return Config{
		TotalQuestions:  10,
		StreakThreshold: 3,
		CorrectDelay:    1000 * time.Millisecond,
		RevealDelay:     3500 * time.Millisecond,
	}
}

// QuestionSource draws the next question for a stage.
// *question.Generator satisfies it.
type QuestionSource interface {
	Next(s stage.Stage) (question.Question, error)
}

// Option configures a Session.
type Option func(*Session)

// WithConfig replaces the default lesson settings.
func WithConfig(cfg Config) Option {
	return func(s *Session) {
		s.cfg = cfg
	}
}

// WithStages replaces the default stage table.
func WithStages(t stage.Table) Option {
	return func(s *Session) {
		s.stages = t
	}
}

// WithQuestionSource sets where questions come from. Default is a randomly
// seeded question.Generator.
func WithQuestionSource(src QuestionSource) Option {
	return func(s *Session) {
		s.questions = src
	}
}

// WithLogger sets the logger. Default is a discard logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		s.base = logger
	}
}
