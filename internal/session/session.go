// Package session ties the card pool, round controller, distractor generator
// and matcher together behind a prompt/answer API.
package session

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/flashiz/internal/deck"
	"github.com/abhisek/flashiz/internal/distractor"
	"github.com/abhisek/flashiz/internal/matcher"
	"github.com/abhisek/flashiz/internal/round"
)

// Session is one pass over a deck until every card is mastered. It is not
// safe for concurrent use.
type Session struct {
	id     string
	cfg    Config
	pool   *deck.Pool
	ctrl   *round.Controller
	gen    *distractor.Generator
	rng    *rand.Rand
	clock  func() time.Time
	logger *slog.Logger

	skipped []deck.SkippedCard

	prompt   *Prompt // prompt built for the active card
	attempts []Attempt
	correct  int
	streak   int
	best     int
	started  time.Time
	reported bool
}

// New builds a session from raw cards. Malformed cards are dropped and
// reported through Skipped.
func New(raw []deck.RawCard, cfg Config) (*Session, error) {
	pool, skipped := deck.NewPool(raw)
	s, err := FromPool(pool, cfg)
	if err != nil {
		return nil, err
	}
	s.skipped = skipped
	return s, nil
}

// FromPool builds a session over an already-validated pool.
func FromPool(pool *deck.Pool, cfg Config) (*Session, error) {
	if pool == nil || pool.Len() < cfg.minCards() {
		n := 0
		if pool != nil {
			n = pool.Len()
		}
		return nil, fmt.Errorf("%w: have %d, need %d", ErrInsufficientCards, n, cfg.minCards())
	}

	plan := cfg.plan()
	if err := plan.Validate(); err != nil {
		return nil, err
	}
	cfg.Plan = plan

	s := &Session{
		cfg:    cfg,
		pool:   pool,
		rng:    cfg.rng(),
		clock:  cfg.Clock,
		logger: cfg.Logger,
	}
	if s.clock == nil {
		s.clock = time.Now
	}
	if s.logger == nil {
		s.logger = slog.New(slog.DiscardHandler)
	}
	s.gen = distractor.New(s.rng)

	if err := s.reset(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Session) reset() error {
	ctrl, err := round.New(s.pool.IDs(), s.cfg.Plan, s.rng)
	if err != nil {
		return err
	}
	s.ctrl = ctrl
	s.id = uuid.New().String()
	s.prompt = nil
	s.attempts = nil
	s.correct, s.streak, s.best = 0, 0, 0
	s.started = s.clock()
	s.reported = false

	s.logger.Debug("session started",
		"session", s.id, "deck", s.cfg.DeckName, "mode", s.cfg.Mode, "cards", s.pool.Len())
	return nil
}

// Restart discards progress and starts over with the same cards.
func (s *Session) Restart() error {
	return s.reset()
}

// ID returns the session's unique identifier.
func (s *Session) ID() string { return s.id }

// Pool returns the session's card pool.
func (s *Session) Pool() *deck.Pool { return s.pool }

// Plan returns the stage plan in effect.
func (s *Session) Plan() round.Plan { return s.cfg.Plan }

// Skipped returns cards dropped at construction.
func (s *Session) Skipped() []deck.SkippedCard { return s.skipped }

// NextPrompt returns the prompt for the active card, selecting a new one if
// none is pending. It returns false once the session is complete. Repeated
// calls without an answer return the same prompt.
func (s *Session) NextPrompt() (Prompt, bool) {
	if s.prompt != nil {
		return *s.prompt, true
	}

	sel, ok := s.ctrl.Next()
	if !ok {
		return Prompt{}, false
	}
	card, _ := s.pool.Get(sel.CardID)

	p := Prompt{
		CardID:        sel.CardID,
		Stage:         sel.Stage,
		Evaluator:     sel.Evaluator,
		DisplayPrompt: card.Prompt(),
		Illustration:  card.Illustration(),
		Round:         sel.Round,
		RoundComplete: sel.RoundComplete,
	}
	if sel.RoundComplete {
		s.logger.Debug("round complete", "session", s.id, "round", sel.Round, "stage", sel.Stage)
	}

	switch sel.Evaluator {
	case round.EvalMultipleChoice:
		opts, err := s.gen.Options(s.pool, card, s.cfg.DistractorCount)
		if err != nil {
			s.logger.Debug("no distractors, falling back to typed", "card", card.ID(), "error", err)
			p.Evaluator = round.EvalTyped
			break
		}
		p.Options = opts
	case round.EvalStatement:
		st, err := s.gen.Statement(s.pool, card)
		if err != nil {
			s.logger.Debug("no decoy, falling back to typed", "card", card.ID(), "error", err)
			p.Evaluator = round.EvalTyped
			break
		}
		p.Statement = &st
	case round.EvalScramble:
		p.Scrambled = scramble(card.Answer(), s.rng)
	}

	s.prompt = &p
	return p, true
}

// SubmitAnswer judges a for the active card and advances the schedule.
func (s *Session) SubmitAnswer(a Answer) (Verdict, error) {
	if s.prompt == nil {
		return Verdict{}, ErrNoActiveCard
	}
	p := *s.prompt
	card, _ := s.pool.Get(p.CardID)

	correct, res, err := s.evaluate(p, card, a)
	if err != nil {
		return Verdict{}, err
	}

	tr, err := s.ctrl.Apply(correct)
	if err != nil {
		return Verdict{}, err
	}
	s.prompt = nil

	s.attempts = append(s.attempts, Attempt{
		CardID:    p.CardID,
		Stage:     p.Stage,
		Correct:   correct,
		Input:     a.String(),
		Timestamp: s.clock(),
	})
	if correct {
		s.correct++
		s.streak++
		s.best = max(s.best, s.streak)
	} else {
		s.streak = 0
	}

	v := Verdict{
		CardID:        p.CardID,
		Correct:       correct,
		CorrectAnswer: card.Answer(),
		Match:         res,
		From:          tr.From,
		To:            tr.To,
		Complete:      s.ctrl.IsComplete(),
	}
	if v.Complete {
		s.finish()
	}
	return v, nil
}

func (s *Session) evaluate(p Prompt, card deck.Card, a Answer) (bool, matcher.Result, error) {
	switch p.Evaluator {
	case round.EvalMultipleChoice:
		switch a.Kind {
		case KindChoice:
			if a.Choice < 0 || a.Choice >= len(p.Options) {
				return false, matcher.Result{}, fmt.Errorf("%w: %d of %d", ErrInvalidChoice, a.Choice+1, len(p.Options))
			}
			return p.Options[a.Choice].Equal(card), matcher.Result{}, nil
		case KindText:
			res := s.cfg.Matcher.Match(a.Text, card.AcceptedAnswers())
			return res.Tier == matcher.TierExact, res, nil
		}

	case round.EvalStatement:
		if a.Kind == KindJudgment {
			return a.Judgment == p.Statement.Truth, matcher.Result{}, nil
		}

	case round.EvalSelfAssess:
		if a.Kind == KindJudgment {
			return a.Judgment, matcher.Result{}, nil
		}

	case round.EvalTyped, round.EvalScramble:
		if a.Kind == KindText {
			res := s.cfg.Matcher.Match(a.Text, card.AcceptedAnswers())
			return res.Accepted, res, nil
		}

	case round.EvalSpelled:
		if a.Kind == KindText {
			res := s.cfg.Matcher.Match(a.Text, card.AcceptedAnswers())
			return res.Tier == matcher.TierExact, res, nil
		}
	}
	return false, matcher.Result{}, fmt.Errorf("%w: %s answer for %s prompt", ErrUnsupportedAnswer, a.Kind, p.Evaluator)
}

func (s *Session) finish() {
	if s.reported {
		return
	}
	s.reported = true

	sum := s.Summary()
	s.logger.Debug("session complete",
		"session", s.id, "attempts", sum.Stats.Attempts, "accuracy", sum.Stats.Accuracy)
	if s.cfg.Reporter != nil {
		s.cfg.Reporter.Report(sum)
	}
}

// Summary snapshots the session for reporting. FinishedAt is the time of the
// last attempt, or now when there are none.
func (s *Session) Summary() Summary {
	finished := s.clock()
	if n := len(s.attempts); n > 0 {
		finished = s.attempts[n-1].Timestamp
	}
	return Summary{
		SessionID:  s.id,
		DeckName:   s.cfg.DeckName,
		Mode:       s.cfg.Mode,
		StartedAt:  s.started,
		FinishedAt: finished,
		Stats:      s.Stats(),
		Attempts:   s.Attempts(),
	}
}

// Stats returns aggregate counters.
func (s *Session) Stats() Stats {
	counts := s.ctrl.Counts()
	st := Stats{
		Attempts:      len(s.attempts),
		CorrectCount:  s.correct,
		MasteredCount: counts.Mastered,
		TotalCount:    counts.Total,
		CurrentStreak: s.streak,
		BestStreak:    s.best,
		Rounds:        s.ctrl.Round(),
	}
	if st.Attempts > 0 {
		st.Accuracy = float64(st.CorrectCount) / float64(st.Attempts)
	}
	return st
}

// Counts returns per-stage queue sizes.
func (s *Session) Counts() round.Counts {
	return s.ctrl.Counts()
}

// IsComplete reports whether every card is mastered.
func (s *Session) IsComplete() bool {
	return s.ctrl.IsComplete()
}

// StageOf reports which stage holds the card.
func (s *Session) StageOf(cardID string) (round.Stage, bool) {
	return s.ctrl.StageOf(cardID)
}

// Attempts returns a copy of the attempt log.
func (s *Session) Attempts() []Attempt {
	out := make([]Attempt, len(s.attempts))
	copy(out, s.attempts)
	return out
}

// scramble shuffles the letters within each word of answer. Words that come
// out unchanged are reshuffled a few times; single letters stay as they are.
func scramble(answer string, rng *rand.Rand) string {
	words := strings.Fields(answer)
	for i, w := range words {
		r := []rune(w)
		if len(r) < 2 {
			continue
		}
		for try := 0; try < 5; try++ {
			rng.Shuffle(len(r), func(a, b int) { r[a], r[b] = r[b], r[a] })
			if string(r) != w {
				break
			}
		}
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
