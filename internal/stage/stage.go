package stage

import (
	"errors"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
)

// MinSpan is the smallest Max-Min a stage may have. A stage needs at least
// three ticks so that a value strictly between two others exists.
const MinSpan = 2

var (
	ErrInvalidStage = errors.New("invalid stage")
	ErrEmptyTable   = errors.New("stage table is empty")
)

// Stage is an inclusive integer range drawn as one number line.
type Stage struct {
	Min int
	Max int
}

// Contains reports whether v lies on the number line.
func (s Stage) Contains(v int) bool {
	return v >= s.Min && v <= s.Max
}

// Span returns Max - Min.
func (s Stage) Span() int {
	return s.Max - s.Min
}

// Values returns every integer in [Min, Max] in ascending order.
func (s Stage) Values() []int {
	if s.Max < s.Min {
		return nil
	}
	values := make([]int, 0, s.Span()+1)
	for v := s.Min; v <= s.Max; v++ {
		values = append(values, v)
	}
	return values
}

func (s Stage) String() string {
	return fmt.Sprintf("[%d, %d]", s.Min, s.Max)
}

// Table is an ordered, immutable list of stages, easiest first.
// Stage indices are 1-based.
type Table struct {
	stages []Stage
}

// Default returns the four built-in stages.
func Default() Table {
	return Table{stages: []Stage{
		{Min: 1, Max: 10},
		{Min: 0, Max: 10},
		{Min: -10, Max: 10},
		{Min: -20, Max: 20},
	}}
}

// New builds a table from the given stages.
func New(stages ...Stage) (Table, error) {
	if len(stages) == 0 {
		return Table{}, goerr.Wrap(ErrEmptyTable, "cannot build stage table")
	}
	for i, s := range stages {
		if s.Span() < MinSpan {
			return Table{}, goerr.Wrap(ErrInvalidStage, "stage range too narrow",
				goerr.V("index", i+1), goerr.V("min", s.Min), goerr.V("max", s.Max))
		}
	}
	cp := make([]Stage, len(stages))
	copy(cp, stages)
	return Table{stages: cp}, nil
}

// Len returns the number of stages.
func (t Table) Len() int {
	return len(t.stages)
}

// At returns the stage at the 1-based index. Indices outside 1..Len()
// clamp to the first or last stage.
func (t Table) At(index int) Stage {
	if len(t.stages) == 0 {
		return Stage{}
	}
	if index < 1 {
		index = 1
	}
	if index > len(t.stages) {
		index = len(t.stages)
	}
	return t.stages[index-1]
}

// Last returns the hardest stage.
func (t Table) Last() Stage {
	return t.At(t.Len())
}

// All returns a copy of the stages in order.
func (t Table) All() []Stage {
	cp := make([]Stage, len(t.stages))
	copy(cp, t.stages)
	return cp
}
