// Package distractor picks plausible wrong options for multiple-choice
// prompts and synthesizes true/false statements.
package distractor

import (
	"errors"
	"math/rand/v2"

	"github.com/abhisek/flashiz/internal/deck"
)

// DefaultCount is the number of distractors offered when none is requested.
const DefaultCount = 3

// ErrInsufficientPool is returned when not even one distractor can be formed.
var ErrInsufficientPool = errors.New("distractor: insufficient pool")

// Generator draws distractors from a card pool using its own random source.
type Generator struct {
	rng *rand.Rand
}

// New creates a Generator. A nil rng uses an unseeded PCG source.
func New(rng *rand.Rand) *Generator {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Generator{rng: rng}
}

// candidates returns pool cards that can stand in as wrong answers for
// target: every other card whose normalized answer differs from target's.
func candidates(pool *deck.Pool, target deck.Card) []deck.Card {
	var out []deck.Card
	for _, c := range pool.Cards() {
		if c.Equal(target) || c.NormalizedAnswer() == target.NormalizedAnswer() {
			continue
		}
		out = append(out, c)
	}
	return out
}

// Options returns target plus up to count distractors, shuffled.
// count <= 0 means DefaultCount. When the pool holds fewer candidates than
// requested, all of them are used.
func (g *Generator) Options(pool *deck.Pool, target deck.Card, count int) ([]deck.Card, error) {
	if pool.Len() < 2 {
		return nil, ErrInsufficientPool
	}
	if count <= 0 {
		count = DefaultCount
	}

	pick := candidates(pool, target)
	if len(pick) == 0 {
		return nil, ErrInsufficientPool
	}

	// Partial Fisher-Yates: the first n slots become a uniform sample
	// without replacement.
	n := min(count, len(pick))
	for i := 0; i < n; i++ {
		j := i + g.rng.IntN(len(pick)-i)
		pick[i], pick[j] = pick[j], pick[i]
	}

	options := make([]deck.Card, 0, n+1)
	options = append(options, pick[:n]...)
	options = append(options, target)
	g.rng.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})
	return options, nil
}

// Decoy returns a single card other than target, preferring one whose answer
// differs so a statement built from it is actually false.
func (g *Generator) Decoy(pool *deck.Pool, target deck.Card) (deck.Card, error) {
	if pool.Len() < 2 {
		return deck.Card{}, ErrInsufficientPool
	}
	if pick := candidates(pool, target); len(pick) > 0 {
		return pick[g.rng.IntN(len(pick))], nil
	}
	return deck.Card{}, ErrInsufficientPool
}

// Statement is a synthesized true/false claim about a card.
type Statement struct {
	CardID      string
	Prompt      string
	ShownAnswer string
	DecoyID     string // empty when the statement is true
	Truth       bool
}

// Statement pairs target's prompt with either its own answer or a decoy's,
// with equal probability.
func (g *Generator) Statement(pool *deck.Pool, target deck.Card) (Statement, error) {
	decoy, err := g.Decoy(pool, target)
	if err != nil {
		return Statement{}, err
	}

	st := Statement{
		CardID: target.ID(),
		Prompt: target.Prompt(),
	}
	if g.rng.IntN(2) == 0 {
		st.ShownAnswer = target.Answer()
		st.Truth = true
		return st, nil
	}
	st.ShownAnswer = decoy.Answer()
	st.DecoyID = decoy.ID()
	return st, nil
}
