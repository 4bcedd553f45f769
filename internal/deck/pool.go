package deck

import (
	"fmt"
)

// Pool is an immutable, validated set of cards loaded once per session.
// Card order is the load order.
type Pool struct {
	cards []Card
	index map[string]int
}

// SkippedCard records a raw card that was filtered out at load time.
type SkippedCard struct {
	Position int // zero-based position in the raw input
	Raw      RawCard
	Err      error
}

func (s SkippedCard) Error() string {
	return fmt.Sprintf("card %d: %v", s.Position+1, s.Err)
}

func (s SkippedCard) Unwrap() error { return s.Err }

// NewPool validates raw cards. Malformed cards and cards whose ID repeats an
// earlier one are skipped and returned alongside the pool, never fatal.
func NewPool(raw []RawCard) (*Pool, []SkippedCard) {
	p := &Pool{
		cards: make([]Card, 0, len(raw)),
		index: make(map[string]int, len(raw)),
	}
	var skipped []SkippedCard

	for i, r := range raw {
		c, err := NewCard(r)
		if err != nil {
			skipped = append(skipped, SkippedCard{Position: i, Raw: r, Err: err})
			continue
		}
		if _, dup := p.index[c.ID()]; dup {
			skipped = append(skipped, SkippedCard{
				Position: i,
				Raw:      r,
				Err:      fmt.Errorf("%w: duplicate id %q", ErrMalformedCard, c.ID()),
			})
			continue
		}
		p.index[c.ID()] = len(p.cards)
		p.cards = append(p.cards, c)
	}

	return p, skipped
}

// PoolOf builds a pool from already validated cards, dropping repeated IDs.
func PoolOf(cards ...Card) *Pool {
	p := &Pool{
		cards: make([]Card, 0, len(cards)),
		index: make(map[string]int, len(cards)),
	}
	for _, c := range cards {
		if c.IsZero() {
			continue
		}
		if _, dup := p.index[c.ID()]; dup {
			continue
		}
		p.index[c.ID()] = len(p.cards)
		p.cards = append(p.cards, c)
	}
	return p
}

// Len returns the number of cards in the pool.
func (p *Pool) Len() int {
	return len(p.cards)
}

// Cards returns a copy of the cards in load order.
func (p *Pool) Cards() []Card {
	out := make([]Card, len(p.cards))
	copy(out, p.cards)
	return out
}

// IDs returns card IDs in load order.
func (p *Pool) IDs() []string {
	ids := make([]string, len(p.cards))
	for i, c := range p.cards {
		ids[i] = c.ID()
	}
	return ids
}

// Get returns the card with the given ID.
func (p *Pool) Get(id string) (Card, bool) {
	i, ok := p.index[id]
	if !ok {
		return Card{}, false
	}
	return p.cards[i], true
}

// Contains reports whether a card with the given ID is in the pool.
func (p *Pool) Contains(id string) bool {
	_, ok := p.index[id]
	return ok
}
