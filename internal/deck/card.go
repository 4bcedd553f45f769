package deck

import (
	"errors"
	"fmt"
	"strings"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/abhisek/flashiz/internal/matcher"
)

// ErrMalformedCard is returned for cards missing a prompt or answer, or
// duplicating another card's ID. Such cards are filtered at load time.
var ErrMalformedCard = errors.New("deck: malformed card")

// RawCard is the load-time shape of a card, before validation.
type RawCard struct {
	ID           string   `toml:"id" json:"id,omitempty"`
	Prompt       string   `toml:"prompt" json:"prompt"`
	Answer       string   `toml:"answer" json:"answer"`
	Alternates   []string `toml:"alternates" json:"alternates,omitempty"`
	Reading      string   `toml:"reading" json:"reading,omitempty"`         // phonetic form, e.g. pinyin
	Translation  string   `toml:"translation" json:"translation,omitempty"` // meaning in the learner's language
	Illustration string   `toml:"illustration" json:"illustration,omitempty"`
}

// Card is an immutable prompt/answer pair plus its accepted answer variants.
// Two cards are the same card when their IDs are equal.
type Card struct {
	id           string
	prompt       string
	answer       string
	accepted     []string
	illustration string
}

// NewCard validates raw and folds every acceptable literal form into the
// card's accepted answer set. A blank ID is replaced with a generated one.
func NewCard(raw RawCard) (Card, error) {
	prompt := strings.TrimSpace(raw.Prompt)
	answer := strings.TrimSpace(raw.Answer)
	if prompt == "" {
		return Card{}, fmt.Errorf("%w: missing prompt", ErrMalformedCard)
	}
	if answer == "" {
		return Card{}, fmt.Errorf("%w: missing answer", ErrMalformedCard)
	}

	id := strings.TrimSpace(raw.ID)
	if id == "" {
		generated, err := gonanoid.New()
		if err != nil {
			return Card{}, fmt.Errorf("generate card id: %w", err)
		}
		id = generated
	}

	return Card{
		id:           id,
		prompt:       prompt,
		answer:       answer,
		accepted:     acceptedVariants(answer, raw),
		illustration: strings.TrimSpace(raw.Illustration),
	}, nil
}

// acceptedVariants builds the ordered, de-duplicated set of normalized
// answers. The primary answer always comes first.
func acceptedVariants(answer string, raw RawCard) []string {
	reading := strings.TrimSpace(raw.Reading)
	translation := strings.TrimSpace(raw.Translation)

	candidates := []string{answer}
	candidates = append(candidates, raw.Alternates...)
	candidates = append(candidates, reading, translation)
	if reading != "" && translation != "" {
		candidates = append(candidates, reading+" "+translation)
	}
	if reading != "" && !strings.EqualFold(reading, answer) {
		candidates = append(candidates, answer+" "+reading)
	}

	seen := make(map[string]bool, len(candidates))
	out := make([]string, 0, len(candidates))
	for _, c := range candidates {
		n := matcher.Normalize(c)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}

func (c Card) ID() string           { return c.id }
func (c Card) Prompt() string       { return c.prompt }
func (c Card) Answer() string       { return c.answer }
func (c Card) Illustration() string { return c.illustration }

// AcceptedAnswers returns a copy of the normalized accepted variants.
func (c Card) AcceptedAnswers() []string {
	out := make([]string, len(c.accepted))
	copy(out, c.accepted)
	return out
}

// NormalizedAnswer returns the normalized primary answer.
func (c Card) NormalizedAnswer() string {
	return c.accepted[0]
}

// Equal reports whether c and other are the same card.
func (c Card) Equal(other Card) bool {
	return c.id == other.id
}

// IsZero reports whether c is the zero Card.
func (c Card) IsZero() bool {
	return c.id == ""
}
