package question

import (
	"fmt"

	"github.com/m-mizutani/goerr/v2"

	"github.com/abhisek/numline/internal/stage"
)

// behavior bundles everything the engine needs to know about one kind.
type behavior struct {
	// valid reports whether the kind can be asked on the stage.
	valid func(s stage.Stage) bool

	// generate draws the ground truth.
	generate func(g *Generator, s stage.Stage) Truth

	// accepts reports whether v answers the question. The stage is the
	// one in effect when the answer is checked, not when the question was
	// generated.
	accepts func(t Truth, s stage.Stage, v int) bool

	// prompt renders the question text.
	prompt func(t Truth, s stage.Stage) string

	// answer renders the correct answer for the reveal.
	answer func(t Truth, s stage.Stage) string
}

func always(stage.Stage) bool { return true }

func spansZero(s stage.Stage) bool { return s.Min <= 0 && s.Max >= 0 }

var catalog = map[Kind]behavior{
	IdentifySpecificNumber: {
		valid: always,
		generate: func(g *Generator, s stage.Stage) Truth {
			return Truth{Target: g.Uniform(s.Min, s.Max)}
		},
		accepts: func(t Truth, _ stage.Stage, v int) bool { return v == t.Target },
		prompt: func(t Truth, _ stage.Stage) string {
			return fmt.Sprintf("Select the point that represents %d.", t.Target)
		},
		answer: func(t Truth, _ stage.Stage) string {
			return fmt.Sprintf("the number %d", t.Target)
		},
	},

	IdentifyGreaterThanNumber: {
		valid: func(s stage.Stage) bool { return s.Min < s.Max },
		generate: func(g *Generator, s stage.Stage) Truth {
			// Never the maximum, so a greater value always exists.
			target := g.Uniform(s.Min, s.Max-1)
			return Truth{Target: target, Range: &Range{Min: target + 1, Max: s.Max}}
		},
		accepts: func(t Truth, _ stage.Stage, v int) bool { return v > t.Target },
		prompt: func(t Truth, _ stage.Stage) string {
			return fmt.Sprintf("Select a number greater than %d.", t.Target)
		},
		answer: func(t Truth, _ stage.Stage) string {
			return fmt.Sprintf("any number greater than %d", t.Target)
		},
	},

	IdentifyLessThanNumber: {
		valid: func(s stage.Stage) bool { return s.Min < s.Max },
		generate: func(g *Generator, s stage.Stage) Truth {
			target := g.Uniform(s.Min+1, s.Max)
			return Truth{Target: target, Range: &Range{Min: s.Min, Max: target - 1}}
		},
		accepts: func(t Truth, _ stage.Stage, v int) bool { return v < t.Target },
		prompt: func(t Truth, _ stage.Stage) string {
			return fmt.Sprintf("Select a number less than %d.", t.Target)
		},
		answer: func(t Truth, _ stage.Stage) string {
			return fmt.Sprintf("any number less than %d", t.Target)
		},
	},

	IdentifyBetweenNumbers: {
		valid: always,
		generate: func(g *Generator, s stage.Stage) Truth {
			// Redraw until at least one integer lies strictly between.
			for {
				a, b := g.Uniform(s.Min, s.Max), g.Uniform(s.Min, s.Max)
				low, high := min(a, b), max(a, b)
				if high-low > 1 {
					return Truth{Range: &Range{Min: low, Max: high}}
				}
			}
		},
		accepts: func(t Truth, s stage.Stage, v int) bool {
			r := bounds(t, s)
			return v > r.Min && v < r.Max
		},
		prompt: func(t Truth, s stage.Stage) string {
			r := bounds(t, s)
			return fmt.Sprintf("Select a number between %d and %d.", r.Min, r.Max)
		},
		answer: func(t Truth, s stage.Stage) string {
			r := bounds(t, s)
			return fmt.Sprintf("any number between %d and %d", r.Min, r.Max)
		},
	},

	LocateZero: {
		valid:    spansZero,
		generate: func(*Generator, stage.Stage) Truth { return Truth{Target: 0} },
		accepts:  func(_ Truth, _ stage.Stage, v int) bool { return v == 0 },
		prompt: func(Truth, stage.Stage) string {
			return "Select the point that represents 0."
		},
		answer: func(Truth, stage.Stage) string { return "the number 0" },
	},

	IdentifyLargestNumber: {
		valid:    always,
		generate: func(_ *Generator, s stage.Stage) Truth { return Truth{Target: s.Max} },
		accepts:  func(_ Truth, s stage.Stage, v int) bool { return v == s.Max },
		prompt: func(Truth, stage.Stage) string {
			return "Select the largest number on the number line."
		},
		answer: func(_ Truth, s stage.Stage) string {
			return fmt.Sprintf("the largest number, which is %d", s.Max)
		},
	},

	IdentifySmallestNumber: {
		valid:    always,
		generate: func(_ *Generator, s stage.Stage) Truth { return Truth{Target: s.Min} },
		accepts:  func(_ Truth, s stage.Stage, v int) bool { return v == s.Min },
		prompt: func(Truth, stage.Stage) string {
			return "Select the smallest number on the number line."
		},
		answer: func(_ Truth, s stage.Stage) string {
			return fmt.Sprintf("the smallest number, which is %d", s.Min)
		},
	},

	IdentifyPositiveNumber: {
		valid: func(s stage.Stage) bool { return s.Max > 0 },
		generate: func(_ *Generator, s stage.Stage) Truth {
			return Truth{Range: &Range{Min: max(s.Min, 1), Max: s.Max}}
		},
		accepts: func(_ Truth, _ stage.Stage, v int) bool { return v > 0 },
		prompt:  func(Truth, stage.Stage) string { return "Select a positive number." },
		answer: func(Truth, stage.Stage) string {
			return "any positive number greater than 0"
		},
	},

	IdentifyNegativeNumber: {
		valid: func(s stage.Stage) bool { return s.Min < 0 },
		generate: func(_ *Generator, s stage.Stage) Truth {
			return Truth{Range: &Range{Min: s.Min, Max: min(s.Max, -1)}}
		},
		accepts: func(_ Truth, _ stage.Stage, v int) bool { return v < 0 },
		prompt:  func(Truth, stage.Stage) string { return "Select a negative number." },
		answer: func(Truth, stage.Stage) string {
			return "any negative number less than 0"
		},
	},

	OrderNumbers: {
		valid: always,
		generate: func(g *Generator, s stage.Stage) Truth {
			a, b := g.Uniform(s.Min, s.Max), g.Uniform(s.Min, s.Max)
			return Truth{Target: max(a, b), Operands: [2]int{a, b}}
		},
		accepts: func(t Truth, _ stage.Stage, v int) bool { return v == t.Target },
		prompt: func(t Truth, _ stage.Stage) string {
			return fmt.Sprintf("Which number is greater: %d or %d? Select the greater one.",
				t.Operands[0], t.Operands[1])
		},
		answer: func(t Truth, _ stage.Stage) string {
			return fmt.Sprintf("the greater number, which is %d", t.Target)
		},
	},

	DistanceFromZero: {
		valid: spansZero,
		generate: func(g *Generator, s stage.Stage) Truth {
			distance := g.Uniform(0, min(s.Span(), 5))
			if g.Coin() {
				return Truth{Target: -distance}
			}
			return Truth{Target: distance}
		},
		accepts: func(t Truth, _ stage.Stage, v int) bool { return abs(v) == abs(t.Target) },
		prompt: func(t Truth, _ stage.Stage) string {
			return fmt.Sprintf("Select the number that is %d units away from 0.", abs(t.Target))
		},
		answer: func(t Truth, _ stage.Stage) string {
			return fmt.Sprintf("%d, which is %d units away from 0", t.Target, abs(t.Target))
		},
	},

	IdentifyEvenNumber: {
		valid:    always,
		generate: func(*Generator, stage.Stage) Truth { return Truth{} },
		accepts:  func(_ Truth, _ stage.Stage, v int) bool { return v%2 == 0 },
		prompt:   func(Truth, stage.Stage) string { return "Select an even number." },
		answer:   func(Truth, stage.Stage) string { return "an even number" },
	},

	IdentifyOddNumber: {
		valid:    always,
		generate: func(*Generator, stage.Stage) Truth { return Truth{} },
		accepts:  func(_ Truth, _ stage.Stage, v int) bool { return v%2 != 0 },
		prompt:   func(Truth, stage.Stage) string { return "Select an odd number." },
		answer:   func(Truth, stage.Stage) string { return "an odd number" },
	},
}

func lookup(k Kind) (behavior, error) {
	b, ok := catalog[k]
	if !ok {
		return behavior{}, goerr.Wrap(ErrUnknownKind, "no behavior registered", goerr.V("kind", int(k)))
	}
	return b, nil
}

// ValidKindsFor returns the kinds that can be asked on the stage, in
// declaration order.
func ValidKindsFor(s stage.Stage) ([]Kind, error) {
	var kinds []Kind
	for _, k := range AllKinds() {
		b, ok := catalog[k]
		if !ok || !b.valid(s) {
			continue
		}
		kinds = append(kinds, k)
	}
	if len(kinds) == 0 {
		return nil, goerr.Wrap(ErrNoValidQuestion, "stage has no askable question kind",
			goerr.V("stage", s.String()))
	}
	return kinds, nil
}

// IsValidFor reports whether kind k can be asked on the stage.
func IsValidFor(k Kind, s stage.Stage) bool {
	b, err := lookup(k)
	return err == nil && b.valid(s)
}

// IsCorrect evaluates a selected value against the question. Largest and
// smallest questions are checked against s, the stage in effect now.
func IsCorrect(q Question, s stage.Stage, selected int) (bool, error) {
	b, err := lookup(q.Kind)
	if err != nil {
		return false, err
	}
	return b.accepts(q.Truth, s, selected), nil
}

// Qualifies returns a predicate matching every value that answers q. It is
// what a reveal highlights on the number line.
func Qualifies(q Question, s stage.Stage) (func(int) bool, error) {
	b, err := lookup(q.Kind)
	if err != nil {
		return nil, err
	}
	truth := q.Truth
	return func(v int) bool { return b.accepts(truth, s, v) }, nil
}

// PromptText renders the question shown to the learner.
func PromptText(q Question, s stage.Stage) (string, error) {
	b, err := lookup(q.Kind)
	if err != nil {
		return "", err
	}
	return b.prompt(q.Truth, s), nil
}

// CorrectAnswerText renders the answer disclosed after two misses,
// e.g. "the number 7".
func CorrectAnswerText(q Question, s stage.Stage) (string, error) {
	b, err := lookup(q.Kind)
	if err != nil {
		return "", err
	}
	return b.answer(q.Truth, s), nil
}

// bounds returns the truth's range, or the stage's ends when none was set.
func bounds(t Truth, s stage.Stage) Range {
	if t.Range == nil {
		return Range{Min: s.Min, Max: s.Max}
	}
	return *t.Range
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
