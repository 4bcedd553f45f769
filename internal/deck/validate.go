package deck

import (
	"fmt"

	"github.com/abhisek/flashiz/internal/matcher"
)

// MinCards is the smallest deck any study mode can run.
const MinCards = 2

// ValidationResult collects problems found in a deck file. Errors make the
// deck unusable or lose cards; warnings degrade study quality.
type ValidationResult struct {
	Errors   []string
	Warnings []string
}

// Valid reports whether no errors were found.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

func (r *ValidationResult) errorf(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *ValidationResult) warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// Validate loads the deck at path and reports structural and content issues.
// knownModes, if non-nil, is used to flag an unrecognized deck mode.
// An error is returned only when the file cannot be read or parsed.
func Validate(path string, knownModes func(string) bool) (*ValidationResult, error) {
	f, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	return ValidateFile(f, knownModes), nil
}

// ValidateFile reports issues in an already loaded deck.
func ValidateFile(f *File, knownModes func(string) bool) *ValidationResult {
	res := &ValidationResult{}

	for _, s := range f.Skipped {
		res.errorf("%s", s.Error())
	}

	if f.Pool.Len() < MinCards {
		res.errorf("deck has %d valid cards, at least %d are required", f.Pool.Len(), MinCards)
	}

	if f.Mode != "" && knownModes != nil && !knownModes(f.Mode) {
		res.errorf("unknown mode %q", f.Mode)
	}

	prompts := make(map[string]string)
	answers := make(map[string]string)
	for _, c := range f.Pool.Cards() {
		p := matcher.Normalize(c.Prompt())
		if other, ok := prompts[p]; ok {
			res.warnf("cards %q and %q share the prompt %q", other, c.ID(), c.Prompt())
		} else {
			prompts[p] = c.ID()
		}

		a := c.NormalizedAnswer()
		if other, ok := answers[a]; ok {
			res.warnf("cards %q and %q share the answer %q; they cannot serve as each other's distractors", other, c.ID(), c.Answer())
		} else {
			answers[a] = c.ID()
		}
	}

	if f.Pool.Len() >= MinCards && f.Pool.Len() < 4 {
		res.warnf("deck has %d cards; multiple-choice modes need at least 4", f.Pool.Len())
	}

	return res
}
