package round

import (
	"errors"
	"fmt"
)

// Stage is a card's position in the mastery lifecycle.
type Stage string

const (
	StagePresentation Stage = "presentation" // multiple-choice or statement judgment
	StageRecall       Stage = "recall"       // free-text typed
	StageMastered     Stage = "mastered"     // terminal
)

// Evaluator names how answers in a stage are judged.
type Evaluator string

const (
	EvalMultipleChoice Evaluator = "multiple-choice"
	EvalStatement      Evaluator = "statement"
	EvalSelfAssess     Evaluator = "self-assess"
	EvalTyped          Evaluator = "typed"
	EvalSpelled        Evaluator = "spelled" // typed, exact match only
	EvalScramble       Evaluator = "scramble"
)

// ErrInvalidPlan is returned for stage plans the controller cannot run.
var ErrInvalidPlan = errors.New("round: invalid stage plan")

// StagePlan pairs a stage with the evaluator used while a card sits in it.
type StagePlan struct {
	Stage     Stage
	Evaluator Evaluator
}

// Plan is the ordered list of stages a card passes through before it is
// mastered. Valid plans are [presentation], [recall] and
// [presentation, recall].
type Plan []StagePlan

// Validate checks that p is one of the supported stage layouts.
func (p Plan) Validate() error {
	switch len(p) {
	case 1:
		if p[0].Stage != StagePresentation && p[0].Stage != StageRecall {
			return fmt.Errorf("%w: stage %q cannot hold cards", ErrInvalidPlan, p[0].Stage)
		}
	case 2:
		if p[0].Stage != StagePresentation || p[1].Stage != StageRecall {
			return fmt.Errorf("%w: two-stage plans must be presentation then recall", ErrInvalidPlan)
		}
	default:
		return fmt.Errorf("%w: %d stages", ErrInvalidPlan, len(p))
	}

	for _, sp := range p {
		if !sp.Evaluator.valid() {
			return fmt.Errorf("%w: unknown evaluator %q", ErrInvalidPlan, sp.Evaluator)
		}
	}
	return nil
}

// Evaluator returns the evaluator configured for stage s.
func (p Plan) Evaluator(s Stage) (Evaluator, bool) {
	for _, sp := range p {
		if sp.Stage == s {
			return sp.Evaluator, true
		}
	}
	return "", false
}

// after returns the stage a card moves to when answered correctly in s.
func (p Plan) after(s Stage) Stage {
	for i, sp := range p {
		if sp.Stage == s && i+1 < len(p) {
			return p[i+1].Stage
		}
	}
	return StageMastered
}

func (e Evaluator) valid() bool {
	switch e {
	case EvalMultipleChoice, EvalStatement, EvalSelfAssess, EvalTyped, EvalSpelled, EvalScramble:
		return true
	}
	return false
}

// NeedsOptions reports whether prompts for e carry a distractor option list.
func (e Evaluator) NeedsOptions() bool {
	return e == EvalMultipleChoice
}

// TakesText reports whether e judges free-text input.
func (e Evaluator) TakesText() bool {
	return e == EvalTyped || e == EvalSpelled || e == EvalScramble
}
