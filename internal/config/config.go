package config

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/m-mizutani/goerr/v2"

	"github.com/abhisek/numline/internal/lesson"
)

// DefaultEnvFile is loaded when no env file is named explicitly. It is
// optional.
const DefaultEnvFile = ".env"

// Environment variables read by Load.
const (
	EnvQuestions       = "NUMLINE_QUESTIONS"
	EnvStreakThreshold = "NUMLINE_STREAK_THRESHOLD"
	EnvCorrectDelay    = "NUMLINE_CORRECT_DELAY"
	EnvRevealDelay     = "NUMLINE_REVEAL_DELAY"
	EnvFeedbackLimit   = "NUMLINE_FEEDBACK_LIMIT"
	EnvSeed            = "NUMLINE_SEED"
	EnvLogFile         = "NUMLINE_LOG_FILE"
	EnvLogLevel        = "NUMLINE_LOG_LEVEL"
)

var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds application configuration.
type Config struct {
	// TotalQuestions is the lesson length.
	TotalQuestions int

	// StreakThreshold is the run of first-try answers that unlocks the
	// next stage.
	StreakThreshold int

	// CorrectDelay and RevealDelay pace the move to the next question.
	CorrectDelay time.Duration
	RevealDelay  time.Duration

	// FeedbackLimit is how many feedback lines stay on screen.
	FeedbackLimit int

	// Seed fixes the question sequence. Zero means random.
	Seed uint64

	// LogFile receives structured logs. Empty discards them.
	LogFile string

	// LogLevel is one of debug, info, warn, error.
	LogLevel string
}

// Default returns the built-in settings.
func Default() Config {
	lc := lesson.DefaultConfig()
	return Config{
		TotalQuestions:  lc.TotalQuestions,
		StreakThreshold: lc.StreakThreshold,
		CorrectDelay:    lc.CorrectDelay,
		RevealDelay:     lc.RevealDelay,
		FeedbackLimit:   lesson.DefaultFeedbackLimit,
		LogLevel:        "info",
	}
}

// Load returns the defaults overridden by an env file and then by the
// process environment. Variables already set in the environment win over
// the file. An empty envFile loads DefaultEnvFile if it exists; a named
// file must exist.
func Load(envFile string) (Config, error) {
	if envFile == "" {
		if err := godotenv.Load(DefaultEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, goerr.Wrap(err, "failed to load env file", goerr.V("path", DefaultEnvFile))
		}
	} else if err := godotenv.Load(envFile); err != nil {
		return Config{}, goerr.Wrap(err, "failed to load env file", goerr.V("path", envFile))
	}

	cfg := Default()
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	ints := []struct {
		key string
		dst *int
	}{
		{EnvQuestions, &c.TotalQuestions},
		{EnvStreakThreshold, &c.StreakThreshold},
		{EnvFeedbackLimit, &c.FeedbackLimit},
	}
	for _, e := range ints {
		v, ok := lookup(e.key)
		if !ok || v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return goerr.Wrap(ErrInvalidConfig, "not an integer", goerr.V("key", e.key), goerr.V("value", v))
		}
		*e.dst = n
	}

	durations := []struct {
		key string
		dst *time.Duration
	}{
		{EnvCorrectDelay, &c.CorrectDelay},
		{EnvRevealDelay, &c.RevealDelay},
	}
	for _, e := range durations {
		v, ok := lookup(e.key)
		if !ok || v == "" {
			continue
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			return goerr.Wrap(ErrInvalidConfig, "not a duration", goerr.V("key", e.key), goerr.V("value", v))
		}
		*e.dst = d
	}

	if v, ok := lookup(EnvSeed); ok && v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return goerr.Wrap(ErrInvalidConfig, "not a seed", goerr.V("key", EnvSeed), goerr.V("value", v))
		}
		c.Seed = seed
	}
	if v, ok := lookup(EnvLogFile); ok {
		c.LogFile = v
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.LogLevel = v
	}
	return nil
}

// Validate reports the first setting that cannot run a lesson.
func (c Config) Validate() error {
	switch {
	case c.TotalQuestions < 1:
		return goerr.Wrap(ErrInvalidConfig, "questions must be positive", goerr.V("questions", c.TotalQuestions))
	case c.StreakThreshold < 1:
		return goerr.Wrap(ErrInvalidConfig, "streak threshold must be positive", goerr.V("threshold", c.StreakThreshold))
	case c.CorrectDelay < 0 || c.RevealDelay < 0:
		return goerr.Wrap(ErrInvalidConfig, "delays must not be negative",
			goerr.V("correct_delay", c.CorrectDelay), goerr.V("reveal_delay", c.RevealDelay))
	case c.FeedbackLimit < 1:
		return goerr.Wrap(ErrInvalidConfig, "feedback limit must be positive", goerr.V("limit", c.FeedbackLimit))
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel.
func (c Config) Level() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, goerr.Wrap(ErrInvalidConfig, "unknown log level", goerr.V("level", c.LogLevel))
	}
	return lvl, nil
}

// Lesson returns the lesson settings.
func (c Config) Lesson() lesson.Config {
	return lesson.Config{
		TotalQuestions:  c.TotalQuestions,
		StreakThreshold: c.StreakThreshold,
		CorrectDelay:    c.CorrectDelay,
		RevealDelay:     c.RevealDelay,
	}
}
