package matcher

import (
	"strings"
)

// SimilarityThreshold is the fuzzy-match cutoff. The comparison is strict:
// a similarity of exactly 0.8 (one edit on a five-letter answer) is rejected.
// Whether the boundary should be inclusive, per-mode, or script-aware is
// still open, so it is kept as a single tunable constant.
const SimilarityThreshold = 0.8

// Tier identifies which rule accepted an answer.
type Tier string

const (
	TierNone        Tier = "none"
	TierExact       Tier = "exact"
	TierContainment Tier = "containment"
	TierFuzzy       Tier = "fuzzy"
)

// Result describes the outcome of matching one input against a set of
// accepted answer variants.
type Result struct {
	Accepted   bool
	Tier       Tier
	Variant    string  // the normalized variant that matched (best fuzzy candidate if none did)
	Similarity float64 // best similarity seen across all variants
}

// Answerable is anything that exposes its accepted answer variants.
type Answerable interface {
	AcceptedAnswers() []string
}

// Matcher judges free-text answers. The zero value uses SimilarityThreshold.
type Matcher struct {
	Threshold float64
}

// Default returns a Matcher using SimilarityThreshold.
func Default() Matcher {
	return Matcher{Threshold: SimilarityThreshold}
}

func (m Matcher) threshold() float64 {
	if m.Threshold <= 0 {
		return SimilarityThreshold
	}
	return m.Threshold
}

// Match normalizes input and evaluates it against every accepted variant.
// Rules are checked exact, then containment, then fuzzy; the first rule that
// accepts determines the reported tier.
func (m Matcher) Match(input string, accepted []string) Result {
	in := Normalize(input)
	variants := make([]string, 0, len(accepted))
	for _, a := range accepted {
		variants = append(variants, Normalize(a))
	}

	res := Result{Tier: TierNone}

	for _, v := range variants {
		if in == v {
			return Result{Accepted: true, Tier: TierExact, Variant: v, Similarity: 1}
		}
	}

	for _, v := range variants {
		if in == "" || v == "" {
			continue
		}
		if strings.Contains(in, v) || strings.Contains(v, in) {
			return Result{Accepted: true, Tier: TierContainment, Variant: v, Similarity: Similarity(in, v)}
		}
	}

	for _, v := range variants {
		sim := Similarity(in, v)
		if sim > res.Similarity || res.Variant == "" {
			res.Similarity = sim
			res.Variant = v
		}
	}
	if res.Similarity > m.threshold() {
		res.Accepted = true
		res.Tier = TierFuzzy
	}
	return res
}

// IsAcceptable reports whether input matches any of the accepted variants.
func (m Matcher) IsAcceptable(input string, accepted []string) bool {
	return m.Match(input, accepted).Accepted
}

// IsAcceptable checks input against a card's accepted answers using the
// default threshold.
func IsAcceptable(input string, card Answerable) bool {
	return Default().IsAcceptable(input, card.AcceptedAnswers())
}
