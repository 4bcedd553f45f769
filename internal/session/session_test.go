package session

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/abhisek/flashiz/internal/deck"
	"github.com/abhisek/flashiz/internal/round"
)

func rawCards(n int) []deck.RawCard {
	out := make([]deck.RawCard, n)
	for i := range out {
		out[i] = deck.RawCard{
			ID:     fmt.Sprintf("c%d", i),
			Prompt: fmt.Sprintf("prompt %d", i),
			Answer: fmt.Sprintf("answer %d", i),
		}
	}
	return out
}

func newSession(t *testing.T, raw []deck.RawCard, cfg Config) *Session {
	t.Helper()
	if cfg.Seed == 0 {
		cfg.Seed = 42
	}
	s, err := New(raw, cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

// rightAnswer builds the answer that is correct for p.
func rightAnswer(t *testing.T, s *Session, p Prompt) Answer {
	t.Helper()
	card, _ := s.Pool().Get(p.CardID)
	switch p.Evaluator {
	case round.EvalMultipleChoice:
		for i, o := range p.Options {
			if o.ID() == p.CardID {
				return ChoiceAnswer(i)
			}
		}
		t.Fatalf("target %s missing from options", p.CardID)
	case round.EvalStatement:
		return JudgmentAnswer(p.Statement.Truth)
	case round.EvalSelfAssess:
		return JudgmentAnswer(true)
	}
	return TextAnswer(card.Answer())
}

// wrongAnswer builds an answer that is incorrect for p.
func wrongAnswer(t *testing.T, p Prompt) Answer {
	t.Helper()
	switch p.Evaluator {
	case round.EvalMultipleChoice:
		for i, o := range p.Options {
			if o.ID() != p.CardID {
				return ChoiceAnswer(i)
			}
		}
		t.Fatalf("no distractor in options for %s", p.CardID)
	case round.EvalStatement:
		return JudgmentAnswer(!p.Statement.Truth)
	case round.EvalSelfAssess:
		return JudgmentAnswer(false)
	}
	return TextAnswer("zzzzzzzzzz")
}

func checkConservation(t *testing.T, s *Session) {
	t.Helper()
	c := s.Counts()
	if c.Presentation+c.Recall+c.Mastered != c.Total {
		t.Fatalf("conservation broken: %+v", c)
	}
}

type countingReporter struct {
	calls []Summary
}

func (r *countingReporter) Report(s Summary) {
	r.calls = append(r.calls, s)
}

func TestScenarioA_AllCorrect(t *testing.T) {
	s := newSession(t, rawCards(5), Config{FirstStage: round.StagePresentation})

	for {
		p, ok := s.NextPrompt()
		if !ok {
			break
		}
		if _, err := s.SubmitAnswer(rightAnswer(t, s, p)); err != nil {
			t.Fatalf("SubmitAnswer: %v", err)
		}
		checkConservation(t, s)
	}

	st := s.Stats()
	if st.MasteredCount != 5 {
		t.Errorf("MasteredCount = %d, want 5", st.MasteredCount)
	}
	if st.Attempts != 10 {
		t.Errorf("Attempts = %d, want 10", st.Attempts)
	}
	if st.Accuracy != 1.0 {
		t.Errorf("Accuracy = %v, want 1.0", st.Accuracy)
	}
	if st.BestStreak != 10 {
		t.Errorf("BestStreak = %d, want 10", st.BestStreak)
	}
	if !s.IsComplete() {
		t.Error("expected complete session")
	}
}

func TestScenarioB_RetriesInPresentation(t *testing.T) {
	raw := []deck.RawCard{
		{ID: "A", Prompt: "a?", Answer: "alpha"},
		{ID: "B", Prompt: "b?", Answer: "bravo"},
		{ID: "C", Prompt: "c?", Answer: "charlie"},
	}
	s := newSession(t, raw, Config{FirstStage: round.StagePresentation})

	missesLeft := 2
	presentation := 0
	for {
		p, ok := s.NextPrompt()
		if !ok {
			break
		}
		a := rightAnswer(t, s, p)
		if p.Stage == round.StagePresentation {
			presentation++
			if p.CardID == "A" && missesLeft > 0 {
				missesLeft--
				a = wrongAnswer(t, p)
			}
		}
		if _, err := s.SubmitAnswer(a); err != nil {
			t.Fatalf("SubmitAnswer: %v", err)
		}
		checkConservation(t, s)
	}

	if presentation != 5 {
		t.Errorf("presentation attempts = %d, want 5", presentation)
	}
	st := s.Stats()
	if st.Attempts != 8 {
		t.Errorf("Attempts = %d, want 8", st.Attempts)
	}
	if st.Accuracy != 0.75 {
		t.Errorf("Accuracy = %v, want 0.75", st.Accuracy)
	}
}

func TestScenarioD_SelfAssessSingleStage(t *testing.T) {
	mode, err := LookupMode("flashcards")
	if err != nil {
		t.Fatal(err)
	}
	s := newSession(t, rawCards(4), mode.Config())

	seen := make(map[string]bool)
	for {
		p, ok := s.NextPrompt()
		if !ok {
			break
		}
		if p.Stage != round.StagePresentation {
			t.Fatalf("single-stage session served %s", p.Stage)
		}
		knew := seen[p.CardID]
		seen[p.CardID] = true
		if _, err := s.SubmitAnswer(JudgmentAnswer(knew)); err != nil {
			t.Fatalf("SubmitAnswer: %v", err)
		}
		checkConservation(t, s)
	}

	c := s.Counts()
	st := s.Stats()
	if st.MasteredCount != st.TotalCount {
		t.Errorf("MasteredCount = %d, want %d", st.MasteredCount, st.TotalCount)
	}
	if c.Presentation != 0 || c.Recall != 0 {
		t.Errorf("cards left in queues: %+v", c)
	}
	if st.Attempts != 8 {
		t.Errorf("Attempts = %d, want 8", st.Attempts)
	}
}

func TestInsufficientCards(t *testing.T) {
	raw := []deck.RawCard{
		{ID: "ok", Prompt: "p", Answer: "a"},
		{ID: "bad", Prompt: "", Answer: "a"},
	}
	_, err := New(raw, Config{})
	if !errors.Is(err, ErrInsufficientCards) {
		t.Errorf("err = %v, want ErrInsufficientCards", err)
	}

	learn, _ := LookupMode("learn")
	if _, err := New(rawCards(3), learn.Config()); !errors.Is(err, ErrInsufficientCards) {
		t.Errorf("learn with 3 cards: err = %v, want ErrInsufficientCards", err)
	}
	if _, err := New(rawCards(4), learn.Config()); err != nil {
		t.Errorf("learn with 4 cards: %v", err)
	}
}

func TestSkippedCardsReported(t *testing.T) {
	raw := append(rawCards(3), deck.RawCard{ID: "x", Prompt: "no answer"})
	s := newSession(t, raw, Config{})
	if got := len(s.Skipped()); got != 1 {
		t.Fatalf("Skipped = %d, want 1", got)
	}
	if !errors.Is(s.Skipped()[0], deck.ErrMalformedCard) {
		t.Errorf("skipped error %v does not wrap ErrMalformedCard", s.Skipped()[0])
	}
	if got := s.Stats().TotalCount; got != 3 {
		t.Errorf("TotalCount = %d, want 3", got)
	}
}

func TestSubmitAnswer_NoActiveCard(t *testing.T) {
	s := newSession(t, rawCards(3), Config{})
	if _, err := s.SubmitAnswer(TextAnswer("x")); !errors.Is(err, ErrNoActiveCard) {
		t.Errorf("err = %v, want ErrNoActiveCard", err)
	}

	p, _ := s.NextPrompt()
	if _, err := s.SubmitAnswer(rightAnswer(t, s, p)); err != nil {
		t.Fatal(err)
	}
	if _, err := s.SubmitAnswer(TextAnswer("x")); !errors.Is(err, ErrNoActiveCard) {
		t.Errorf("second submit: err = %v, want ErrNoActiveCard", err)
	}
}

func TestNextPrompt_StableUntilAnswered(t *testing.T) {
	s := newSession(t, rawCards(5), Config{})
	first, _ := s.NextPrompt()
	again, _ := s.NextPrompt()
	if first.CardID != again.CardID || len(first.Options) != len(again.Options) {
		t.Fatalf("prompt changed: %+v vs %+v", first, again)
	}
	for i := range first.Options {
		if !first.Options[i].Equal(again.Options[i]) {
			t.Errorf("option %d changed between calls", i)
		}
	}
}

func TestMultipleChoiceOptions(t *testing.T) {
	s := newSession(t, rawCards(6), Config{DistractorCount: 2})
	p, _ := s.NextPrompt()
	if p.Evaluator != round.EvalMultipleChoice {
		t.Fatalf("Evaluator = %s, want multiple-choice", p.Evaluator)
	}
	if len(p.Options) != 3 {
		t.Fatalf("len(Options) = %d, want 3", len(p.Options))
	}
	targets := 0
	for _, o := range p.Options {
		if o.ID() == p.CardID {
			targets++
		}
	}
	if targets != 1 {
		t.Errorf("target appears %d times, want 1", targets)
	}

	if _, err := s.SubmitAnswer(ChoiceAnswer(7)); !errors.Is(err, ErrInvalidChoice) {
		t.Errorf("out of range choice: err = %v, want ErrInvalidChoice", err)
	}
	if got := s.Stats().Attempts; got != 0 {
		t.Errorf("Attempts after rejected choice = %d, want 0", got)
	}
}

func TestUnsupportedAnswerLeavesStateAlone(t *testing.T) {
	s := newSession(t, rawCards(3), Config{FirstStage: round.StageRecall})
	p, _ := s.NextPrompt()

	if _, err := s.SubmitAnswer(JudgmentAnswer(true)); !errors.Is(err, ErrUnsupportedAnswer) {
		t.Fatalf("err = %v, want ErrUnsupportedAnswer", err)
	}
	if got := s.Stats().Attempts; got != 0 {
		t.Errorf("Attempts = %d, want 0", got)
	}
	again, ok := s.NextPrompt()
	if !ok || again.CardID != p.CardID {
		t.Errorf("active card changed after rejected answer")
	}
}

func TestTypedRecall_UsesMatcher(t *testing.T) {
	raw := []deck.RawCard{
		{ID: "fruit", Prompt: "red fruit", Answer: "apple"},
		{ID: "veg", Prompt: "orange root", Answer: "carrot"},
	}
	tests := []struct {
		name  string
		mode  string
		input string
		want  bool
	}{
		{"write exact", "write", "Apple", true},
		{"write containment", "write", "an apple", true},
		{"write at threshold", "write", "aple", false},
		{"spell exact", "spell", "  APPLE ", true},
		{"spell containment", "spell", "an apple", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mode, err := LookupMode(tt.mode)
			if err != nil {
				t.Fatal(err)
			}
			s := newSession(t, raw, mode.Config())
			for {
				p, ok := s.NextPrompt()
				if !ok {
					t.Fatal("fruit card never served")
				}
				if p.CardID != "fruit" {
					s.SubmitAnswer(rightAnswer(t, s, p))
					continue
				}
				v, err := s.SubmitAnswer(TextAnswer(tt.input))
				if err != nil {
					t.Fatal(err)
				}
				if v.Correct != tt.want {
					t.Errorf("Correct = %v (match %+v), want %v", v.Correct, v.Match, tt.want)
				}
				if v.CorrectAnswer != "apple" {
					t.Errorf("CorrectAnswer = %q", v.CorrectAnswer)
				}
				return
			}
		})
	}
}

func TestMultipleChoiceFallsBackToTyped(t *testing.T) {
	raw := []deck.RawCard{
		{ID: "a", Prompt: "first", Answer: "same"},
		{ID: "b", Prompt: "second", Answer: "same"},
	}
	s := newSession(t, raw, Config{})
	p, _ := s.NextPrompt()
	if p.Stage != round.StagePresentation {
		t.Fatalf("Stage = %s", p.Stage)
	}
	if p.Evaluator != round.EvalTyped || p.Options != nil {
		t.Errorf("prompt = %+v, want typed fallback without options", p)
	}
	v, err := s.SubmitAnswer(TextAnswer("same"))
	if err != nil {
		t.Fatal(err)
	}
	if !v.Correct || v.To != round.StageRecall {
		t.Errorf("verdict = %+v", v)
	}
}

func TestScramblePrompt(t *testing.T) {
	mode, _ := LookupMode("scramble")
	s := newSession(t, []deck.RawCard{
		{ID: "1", Prompt: "p1", Answer: "elephant"},
		{ID: "2", Prompt: "p2", Answer: "giraffe"},
	}, mode.Config())
	p, _ := s.NextPrompt()
	card, _ := s.Pool().Get(p.CardID)
	if p.Scrambled == card.Answer() {
		t.Errorf("Scrambled = %q, equal to the answer", p.Scrambled)
	}
	if len(p.Scrambled) != len(card.Answer()) {
		t.Errorf("Scrambled = %q, length differs from %q", p.Scrambled, card.Answer())
	}
}

func TestTrueFalseMode(t *testing.T) {
	mode, _ := LookupMode("truefalse")
	s := newSession(t, rawCards(4), mode.Config())
	for {
		p, ok := s.NextPrompt()
		if !ok {
			break
		}
		if p.Statement == nil {
			t.Fatal("statement prompt without Statement")
		}
		v, err := s.SubmitAnswer(JudgmentAnswer(p.Statement.Truth))
		if err != nil {
			t.Fatal(err)
		}
		if !v.Correct || !v.Mastered() {
			t.Errorf("verdict = %+v, want correct and mastered", v)
		}
	}
	if got := s.Stats().Attempts; got != 4 {
		t.Errorf("Attempts = %d, want 4", got)
	}
}

func TestReporterCalledOnce(t *testing.T) {
	rep := &countingReporter{}
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	clock := func() time.Time {
		now = now.Add(time.Second)
		return now
	}
	s := newSession(t, rawCards(3), Config{
		Mode:     "flashcards",
		DeckName: "tiny",
		Plan:     round.Plan{{Stage: round.StagePresentation, Evaluator: round.EvalSelfAssess}},
		Reporter: rep,
		Clock:    clock,
	})

	var last Verdict
	for {
		p, ok := s.NextPrompt()
		if !ok {
			break
		}
		if len(rep.calls) != 0 {
			t.Fatal("reported before completion")
		}
		v, err := s.SubmitAnswer(rightAnswer(t, s, p))
		if err != nil {
			t.Fatal(err)
		}
		last = v
	}
	if !last.Complete {
		t.Error("final verdict not marked complete")
	}
	s.NextPrompt()
	s.SubmitAnswer(JudgmentAnswer(true))

	if len(rep.calls) != 1 {
		t.Fatalf("Report called %d times, want 1", len(rep.calls))
	}
	sum := rep.calls[0]
	if sum.SessionID != s.ID() || sum.DeckName != "tiny" || sum.Mode != "flashcards" {
		t.Errorf("summary = %+v", sum)
	}
	if len(sum.Attempts) != 3 || sum.Stats.MasteredCount != 3 {
		t.Errorf("summary stats = %+v, attempts %d", sum.Stats, len(sum.Attempts))
	}
	if sum.Duration() <= 0 {
		t.Errorf("Duration = %v, want > 0", sum.Duration())
	}
}

func TestRestart(t *testing.T) {
	s := newSession(t, rawCards(3), Config{FirstStage: round.StageRecall})
	firstID := s.ID()
	p, _ := s.NextPrompt()
	s.SubmitAnswer(rightAnswer(t, s, p))

	if err := s.Restart(); err != nil {
		t.Fatal(err)
	}
	if s.ID() == firstID {
		t.Error("Restart kept the session id")
	}
	st := s.Stats()
	if st.Attempts != 0 || st.MasteredCount != 0 || st.TotalCount != 3 {
		t.Errorf("Stats after restart = %+v", st)
	}
	if c := s.Counts(); c.Recall != 3 {
		t.Errorf("Counts after restart = %+v", c)
	}
}

func TestStreaks(t *testing.T) {
	s := newSession(t, rawCards(4), Config{FirstStage: round.StageRecall})
	verdicts := []bool{true, true, false, true}
	for _, ok := range verdicts {
		p, _ := s.NextPrompt()
		a := rightAnswer(t, s, p)
		if !ok {
			a = wrongAnswer(t, p)
		}
		s.SubmitAnswer(a)
	}
	st := s.Stats()
	if st.BestStreak != 2 || st.CurrentStreak != 1 {
		t.Errorf("streaks = best %d current %d, want 2 and 1", st.BestStreak, st.CurrentStreak)
	}
	if st.CorrectCount != 3 {
		t.Errorf("CorrectCount = %d, want 3", st.CorrectCount)
	}
}

func TestLookupMode(t *testing.T) {
	for _, m := range Modes() {
		if err := m.Plan.Validate(); err != nil {
			t.Errorf("mode %s: %v", m.Name, err)
		}
		got, err := LookupMode(" " + m.Name + " ")
		if err != nil || got.Name != m.Name {
			t.Errorf("LookupMode(%q) = %v, %v", m.Name, got.Name, err)
		}
	}
	if _, err := LookupMode("telepathy"); !errors.Is(err, ErrUnknownMode) {
		t.Errorf("err = %v, want ErrUnknownMode", err)
	}
	if !IsMode(DefaultMode) {
		t.Errorf("default mode %q not registered", DefaultMode)
	}
}
