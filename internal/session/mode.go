package session

import (
	"errors"
	"fmt"
	"strings"

	"github.com/abhisek/flashiz/internal/round"
)

// ErrUnknownMode is returned by LookupMode for names not in Modes.
var ErrUnknownMode = errors.New("session: unknown mode")

// DefaultMode is used when neither the deck nor the caller names one.
const DefaultMode = "learn"

// Mode is a named stage plan with its minimum deck size.
type Mode struct {
	Name        string
	Description string
	Plan        round.Plan
	MinCards    int
}

var modes = []Mode{
	{
		Name:        "learn",
		Description: "pick the answer from a list, then type it",
		Plan: round.Plan{
			{Stage: round.StagePresentation, Evaluator: round.EvalMultipleChoice},
			{Stage: round.StageRecall, Evaluator: round.EvalTyped},
		},
		MinCards: 4,
	},
	{
		Name:        "write",
		Description: "type the answer; close spellings count",
		Plan:        round.Plan{{Stage: round.StageRecall, Evaluator: round.EvalTyped}},
	},
	{
		Name:        "spell",
		Description: "type the answer exactly",
		Plan:        round.Plan{{Stage: round.StageRecall, Evaluator: round.EvalSpelled}},
	},
	{
		Name:        "scramble",
		Description: "unscramble the letters of the answer",
		Plan:        round.Plan{{Stage: round.StageRecall, Evaluator: round.EvalScramble}},
	},
	{
		Name:        "truefalse",
		Description: "decide whether the shown answer is right",
		Plan:        round.Plan{{Stage: round.StagePresentation, Evaluator: round.EvalStatement}},
	},
	{
		Name:        "flashcards",
		Description: "flip the card and say whether you knew it",
		Plan:        round.Plan{{Stage: round.StagePresentation, Evaluator: round.EvalSelfAssess}},
	},
}

// Modes returns every built-in mode in display order.
func Modes() []Mode {
	out := make([]Mode, len(modes))
	copy(out, modes)
	return out
}

// LookupMode finds a mode by case-insensitive name.
func LookupMode(name string) (Mode, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, m := range modes {
		if m.Name == name {
			return m, nil
		}
	}
	return Mode{}, fmt.Errorf("%w: %q", ErrUnknownMode, name)
}

// IsMode reports whether name is a built-in mode.
func IsMode(name string) bool {
	_, err := LookupMode(name)
	return err == nil
}

// Config returns a session config running m.
func (m Mode) Config() Config {
	return Config{
		Mode:     m.Name,
		Plan:     m.Plan,
		MinCards: m.MinCards,
	}
}

// Stages renders the plan as "presentation/multiple-choice -> recall/typed".
func (m Mode) Stages() string {
	parts := make([]string, len(m.Plan))
	for i, sp := range m.Plan {
		parts[i] = string(sp.Stage) + "/" + string(sp.Evaluator)
	}
	return strings.Join(parts, " -> ")
}
