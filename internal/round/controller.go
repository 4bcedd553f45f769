// Package round implements the stage state machine that moves cards from
// presentation through recall to mastered.
package round

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/abhisek/flashiz/internal/schedule"
)

// ErrNoActiveCard is returned when a verdict is applied with no card pending.
var ErrNoActiveCard = errors.New("round: no active card")

// Selection is the card the controller wants presented next.
type Selection struct {
	CardID    string
	Stage     Stage
	Evaluator Evaluator
	Round     int

	// RoundComplete is set on the first card served after a round
	// transition, i.e. after the previous stage's queue emptied.
	RoundComplete bool
}

// Transition records where a judged card went.
type Transition struct {
	CardID string
	From   Stage
	To     Stage
}

// Promoted reports whether the card moved to a later stage.
func (t Transition) Promoted() bool {
	return t.From != t.To
}

// Counts is a snapshot of queue sizes.
type Counts struct {
	Presentation int
	Recall       int
	Mastered     int
	Total        int
}

// Controller owns one queue per planned stage plus the mastered set.
// Every card ID is held by exactly one of them at all times; the active
// card stays at the head of its queue until a verdict is applied.
type Controller struct {
	plan     Plan
	queues   map[Stage]*schedule.Queue
	mastered map[string]bool
	order    []string // mastered IDs in mastery order
	rng      *rand.Rand

	current       Stage
	active        string
	roundComplete bool
	round         int
	total         int
}

// New creates a controller with every id queued in the plan's first stage,
// shuffled once with rng. A nil rng keeps the given order.
func New(ids []string, plan Plan, rng *rand.Rand) (*Controller, error) {
	if err := plan.Validate(); err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			return nil, fmt.Errorf("round: duplicate card id %q", id)
		}
		seen[id] = true
	}

	c := &Controller{
		plan:     plan,
		queues:   make(map[Stage]*schedule.Queue, len(plan)),
		mastered: make(map[string]bool),
		rng:      rng,
		current:  plan[0].Stage,
		round:    1,
		total:    len(ids),
	}
	for i, sp := range plan {
		if i == 0 {
			c.queues[sp.Stage] = schedule.NewQueue(ids, rng)
			continue
		}
		c.queues[sp.Stage] = schedule.NewQueue(nil, nil)
	}
	return c, nil
}

// Plan returns the controller's stage plan.
func (c *Controller) Plan() Plan {
	return c.plan
}

// Next returns the card to present, or false once every card is mastered.
// Calling Next again before Apply returns the same selection.
func (c *Controller) Next() (Selection, bool) {
	if c.active != "" {
		return c.selection(), true
	}

	if c.queues[c.current].IsEmpty() {
		next, ok := c.nextNonEmpty()
		if !ok {
			return Selection{}, false
		}
		c.queues[next].Shuffle(c.rng)
		c.current = next
		c.round++
		c.roundComplete = true
	}

	id, _ := c.queues[c.current].PeekFront()
	c.active = id
	return c.selection(), true
}

func (c *Controller) selection() Selection {
	eval, _ := c.plan.Evaluator(c.current)
	return Selection{
		CardID:        c.active,
		Stage:         c.current,
		Evaluator:     eval,
		Round:         c.round,
		RoundComplete: c.roundComplete,
	}
}

// nextNonEmpty finds the next planned stage after the current one, wrapping
// around, whose queue still holds cards.
func (c *Controller) nextNonEmpty() (Stage, bool) {
	start := 0
	for i, sp := range c.plan {
		if sp.Stage == c.current {
			start = i
			break
		}
	}
	for k := 1; k <= len(c.plan); k++ {
		s := c.plan[(start+k)%len(c.plan)].Stage
		if !c.queues[s].IsEmpty() {
			return s, true
		}
	}
	return "", false
}

// Apply judges the active card. A correct verdict promotes it to the next
// planned stage (or mastered); an incorrect one sends it to the tail of its
// current queue.
func (c *Controller) Apply(correct bool) (Transition, error) {
	if c.active == "" {
		return Transition{}, ErrNoActiveCard
	}

	id, from := c.active, c.current
	q := c.queues[from]
	if head, ok := q.PeekFront(); ok && head == id {
		q.DequeueFront()
	} else {
		q.Remove(id)
	}

	to := from
	if correct {
		to = c.plan.after(from)
	}
	if to == StageMastered {
		c.mastered[id] = true
		c.order = append(c.order, id)
	} else {
		c.queues[to].EnqueueTail(id)
	}

	c.active = ""
	c.roundComplete = false
	return Transition{CardID: id, From: from, To: to}, nil
}

// Active returns the pending card ID, if any.
func (c *Controller) Active() (string, bool) {
	return c.active, c.active != ""
}

// StageOf reports which stage currently holds id.
func (c *Controller) StageOf(id string) (Stage, bool) {
	if c.mastered[id] {
		return StageMastered, true
	}
	for _, sp := range c.plan {
		if c.queues[sp.Stage].Contains(id) {
			return sp.Stage, true
		}
	}
	return "", false
}

// IsMastered reports whether id has reached the terminal stage.
func (c *Controller) IsMastered(id string) bool {
	return c.mastered[id]
}

// Mastered returns mastered IDs in the order they were mastered.
func (c *Controller) Mastered() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// Queued returns a copy of the IDs waiting in stage s, head first.
func (c *Controller) Queued(s Stage) []string {
	q, ok := c.queues[s]
	if !ok {
		return nil
	}
	return q.IDs()
}

// Counts returns the current queue sizes.
func (c *Controller) Counts() Counts {
	counts := Counts{Mastered: len(c.mastered), Total: c.total}
	if q, ok := c.queues[StagePresentation]; ok {
		counts.Presentation = q.Len()
	}
	if q, ok := c.queues[StageRecall]; ok {
		counts.Recall = q.Len()
	}
	return counts
}

// Round returns the 1-based round number.
func (c *Controller) Round() int {
	return c.round
}

// IsComplete reports whether every card is mastered.
func (c *Controller) IsComplete() bool {
	return len(c.mastered) == c.total
}
