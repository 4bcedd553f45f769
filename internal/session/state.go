package session

import (
	"errors"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/abhisek/flashiz/internal/deck"
	"github.com/abhisek/flashiz/internal/distractor"
	"github.com/abhisek/flashiz/internal/matcher"
	"github.com/abhisek/flashiz/internal/round"
)

var (
	// ErrInsufficientCards is returned when a deck is too small for the
	// configured stages.
	ErrInsufficientCards = errors.New("session: insufficient cards")

	// ErrNoActiveCard is returned when an answer arrives with no pending
	// prompt.
	ErrNoActiveCard = round.ErrNoActiveCard

	// ErrUnsupportedAnswer is returned when the answer kind does not fit the
	// prompt's evaluator (e.g. a boolean for a typed prompt). The session
	// state is left untouched.
	ErrUnsupportedAnswer = errors.New("session: answer kind not supported by prompt")

	// ErrInvalidChoice is returned for an option index outside the prompt's
	// option list.
	ErrInvalidChoice = errors.New("session: choice out of range")
)

// Reporter receives the session summary once, when every card is mastered.
// Implementations must not block and must handle their own failures.
type Reporter interface {
	Report(Summary)
}

// Config configures a Session. The zero value runs the two-stage
// multiple-choice then typed plan.
type Config struct {
	// Mode and DeckName label the session in summaries.
	Mode     string
	DeckName string

	// FirstStage selects the default plan when Plan is empty:
	// presentation (or empty) runs multiple-choice then typed recall,
	// recall runs typed recall only.
	FirstStage round.Stage

	// Plan overrides FirstStage with an explicit stage layout.
	Plan round.Plan

	// DistractorCount is the number of wrong options per multiple-choice
	// prompt. Zero means distractor.DefaultCount.
	DistractorCount int

	// MinCards raises the minimum deck size. Values below deck.MinCards are
	// ignored.
	MinCards int

	// Seed makes shuffles and distractor picks reproducible. Zero seeds
	// from the runtime source.
	Seed uint64

	// Clock stamps attempts. Defaults to time.Now.
	Clock func() time.Time

	// Reporter is notified on completion. Optional.
	Reporter Reporter

	// Matcher judges typed answers. The zero value uses the default threshold.
	Matcher matcher.Matcher

	// Logger receives debug events. Defaults to a discard logger.
	Logger *slog.Logger
}

func (c Config) plan() round.Plan {
	if len(c.Plan) > 0 {
		return c.Plan
	}
	if c.FirstStage == round.StageRecall {
		return round.Plan{{Stage: round.StageRecall, Evaluator: round.EvalTyped}}
	}
	return round.Plan{
		{Stage: round.StagePresentation, Evaluator: round.EvalMultipleChoice},
		{Stage: round.StageRecall, Evaluator: round.EvalTyped},
	}
}

func (c Config) minCards() int {
	return max(deck.MinCards, c.MinCards)
}

func (c Config) rng() *rand.Rand {
	seed := c.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Attempt is one judged answer.
type Attempt struct {
	CardID    string
	Stage     round.Stage
	Correct   bool
	Input     string
	Timestamp time.Time
}

// Prompt is what the UI shows for the active card.
type Prompt struct {
	CardID        string
	Stage         round.Stage
	Evaluator     round.Evaluator
	DisplayPrompt string
	Illustration  string

	// Options holds the shuffled choices for multiple-choice prompts,
	// including the target card exactly once.
	Options []deck.Card

	// Statement is set for true/false prompts.
	Statement *distractor.Statement

	// Scrambled is the answer with its letters shuffled, for scramble prompts.
	Scrambled string

	Round         int
	RoundComplete bool // first prompt after a round transition
}

// Verdict is the outcome of one submitted answer.
type Verdict struct {
	CardID        string
	Correct       bool
	CorrectAnswer string
	Match         matcher.Result // populated for text-judged prompts
	From          round.Stage
	To            round.Stage
	Complete      bool
}

// Mastered reports whether the answer moved the card to the terminal stage.
func (v Verdict) Mastered() bool {
	return v.To == round.StageMastered
}

// Stats aggregates attempts for display and reporting.
type Stats struct {
	Attempts      int
	CorrectCount  int
	Accuracy      float64 // CorrectCount / Attempts, 0 when no attempts
	MasteredCount int
	TotalCount    int
	CurrentStreak int
	BestStreak    int
	Rounds        int
}

// Summary is handed to the Reporter when the session completes.
type Summary struct {
	SessionID  string
	DeckName   string
	Mode       string
	StartedAt  time.Time
	FinishedAt time.Time
	Stats      Stats
	Attempts   []Attempt
}

// Duration returns the wall time between start and finish.
func (s Summary) Duration() time.Duration {
	return s.FinishedAt.Sub(s.StartedAt)
}
