// Package console runs a lesson over plain line-oriented text streams.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/abhisek/numline/internal/lesson"
	"github.com/abhisek/numline/internal/stage"
)

var (
	ErrInputClosed = errors.New("input closed before the lesson completed")
	ErrQuit        = errors.New("lesson quit by learner")
)

// Renderer writes lesson output as lines of text.
type Renderer struct {
	w      io.Writer
	err    error
	stage  stage.Stage
	screen lesson.Screen
	marked []int
}

// NewRenderer returns a Renderer writing to w.
func NewRenderer(w io.Writer) *Renderer {
	return &Renderer{w: w, screen: lesson.ScreenInitial}
}

// Err returns the first write error, if any.
func (r *Renderer) Err() error {
	return r.err
}

// Screen returns the last screen the session switched to.
func (r *Renderer) Screen() lesson.Screen {
	return r.screen
}

// Highlighted returns the values marked by the last reveal.
func (r *Renderer) Highlighted() []int {
	return append([]int(nil), r.marked...)
}

func (r *Renderer) printf(format string, args ...any) {
	if r.err != nil {
		return
	}
	_, r.err = fmt.Fprintf(r.w, format, args...)
}

func (r *Renderer) RenderNumberLine(s stage.Stage) {
	r.stage = s
	r.marked = nil
	r.printf("\nNumber line %s: %s\n", s, joinInts(s.Values()))
}

func (r *Renderer) ShowPrompt(text string) {
	r.printf("%s\n", text)
}

func (r *Renderer) AppendFeedback(text string, correct bool) {
	mark := "x"
	if correct {
		mark = "+"
	}
	r.printf("[%s] %s\n", mark, text)
}

func (r *Renderer) HighlightValues(match func(int) bool) {
	r.marked = r.marked[:0]
	for _, v := range r.stage.Values() {
		if match(v) {
			r.marked = append(r.marked, v)
		}
	}
	r.printf("Highlighted: %s\n", joinInts(r.marked))
}

func (r *Renderer) ShowProgress(current, total int) {
	r.printf("Question %d of %d\n", current, total)
}

func (r *Renderer) ShowCompletionSummary(text string) {
	r.printf("\n%s\n", text)
}

func (r *Renderer) ShowScreen(name lesson.Screen) {
	r.screen = name
}

func joinInts(vs []int) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = fmt.Sprint(v)
	}
	return strings.Join(parts, " ")
}

// Run plays one lesson, reading a selection per line from in. A line of
// "q" or "quit" abandons the lesson. It returns the summary once the lesson
// completes.
func Run(ctx context.Context, in io.Reader, out io.Writer, opts ...lesson.Option) (lesson.Summary, error) {
	r := NewRenderer(out)
	s := lesson.New(r, opts...)
	if err := s.Start(); err != nil {
		return lesson.Summary{}, err
	}

	lines := bufio.NewScanner(in)
	for s.Phase() == lesson.PhaseInProgress {
		if err := ctx.Err(); err != nil {
			return s.Summary(), err
		}
		r.printf("> ")
		if r.err != nil {
			return s.Summary(), goerr.Wrap(r.err, "failed to write output")
		}
		if !lines.Scan() {
			if err := lines.Err(); err != nil {
				return s.Summary(), goerr.Wrap(err, "failed to read input")
			}
			return s.Summary(), goerr.Wrap(ErrInputClosed, "lesson unfinished",
				goerr.V("question", s.Snapshot().Question))
		}

		text := strings.TrimSpace(lines.Text())
		switch text {
		case "":
			continue
		case "q", "quit":
			s.Abandon()
			return s.Summary(), ErrQuit
		}

		outcome, err := s.SubmitRaw(text)
		if errors.Is(err, lesson.ErrMalformedSelection) {
			r.printf("Please enter a whole number.\n")
			continue
		}
		if errors.Is(err, lesson.ErrSelectionOffLine) {
			st := s.Stage()
			r.printf("Please pick a number on the line, from %d to %d.\n", st.Min, st.Max)
			continue
		}
		if err != nil {
			return s.Summary(), err
		}
		if outcome.Continuation == nil {
			continue
		}
		if err := wait(ctx, outcome.Continuation.Delay); err != nil {
			return s.Summary(), err
		}
		if err := s.Continue(*outcome.Continuation); err != nil {
			return s.Summary(), err
		}
	}

	if r.err != nil {
		return s.Summary(), goerr.Wrap(r.err, "failed to write output")
	}
	return s.Summary(), nil
}

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
