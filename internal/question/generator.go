package question

import (
	"math/rand/v2"

	"github.com/m-mizutani/goerr/v2"

	"github.com/abhisek/numline/internal/stage"
)

// Source is the random source draws are made from. *rand.Rand satisfies it.
type Source interface {
	IntN(n int) int
}

// Generator produces questions from a random source. It is deterministic
// for a given source.
type Generator struct {
	src Source
}

// NewGenerator creates a Generator drawing from src.
func NewGenerator(src Source) *Generator {
	return &Generator{src: src}
}

// NewSeededGenerator creates a Generator backed by a PCG source. A zero seed
// picks a random one.
func NewSeededGenerator(seed uint64) *Generator {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return NewGenerator(rand.New(rand.NewPCG(seed, seed>>1|1)))
}

// Uniform draws an integer uniformly from [lo, hi]. A reversed range
// collapses to lo.
func (g *Generator) Uniform(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + g.src.IntN(hi-lo+1)
}

// Coin flips a fair coin.
func (g *Generator) Coin() bool {
	return g.src.IntN(2) == 0
}

// Next picks a kind valid for the stage uniformly and generates it.
func (g *Generator) Next(s stage.Stage) (Question, error) {
	kinds, err := ValidKindsFor(s)
	if err != nil {
		return Question{}, err
	}
	return g.Generate(kinds[g.src.IntN(len(kinds))], s)
}

// Generate builds a question of the given kind for the stage.
func (g *Generator) Generate(k Kind, s stage.Stage) (Question, error) {
	b, err := lookup(k)
	if err != nil {
		return Question{}, err
	}
	if !b.valid(s) {
		return Question{}, goerr.Wrap(ErrKindNotValidHere, "cannot generate question",
			goerr.V("kind", k.String()), goerr.V("stage", s.String()))
	}

	q := Question{Kind: k, Truth: b.generate(g, s)}
	q.Prompt = b.prompt(q.Truth, s)
	return q, nil
}
