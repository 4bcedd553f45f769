package study

import (
	"fmt"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/flashiz/internal/deck"
	"github.com/abhisek/flashiz/internal/round"
	"github.com/abhisek/flashiz/internal/router"
	"github.com/abhisek/flashiz/internal/screen"
	"github.com/abhisek/flashiz/internal/screens/summary"
	"github.com/abhisek/flashiz/internal/session"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func testCards(n int) []deck.RawCard {
	out := make([]deck.RawCard, n)
	for i := range out {
		out[i] = deck.RawCard{
			ID:     fmt.Sprintf("c%d", i),
			Prompt: fmt.Sprintf("question %d", i),
			Answer: fmt.Sprintf("answer%d", i),
		}
	}
	return out
}

func testScreen(t *testing.T, mode string, n int) *StudyScreen {
	t.Helper()
	m, err := session.LookupMode(mode)
	if err != nil {
		t.Fatal(err)
	}
	cfg := m.Config()
	cfg.Seed = 7
	cfg.DeckName = "test"
	sess, err := session.New(testCards(n), cfg)
	if err != nil {
		t.Fatal(err)
	}
	s := New(sess, "test")
	s.Init()
	return s
}

func update(s *StudyScreen, msg tea.Msg) (*StudyScreen, tea.Cmd) {
	scr, cmd := s.Update(msg)
	return scr.(*StudyScreen), cmd
}

// answerCorrectly drives the active prompt to a correct verdict.
func answerCorrectly(t *testing.T, s *StudyScreen) (*StudyScreen, tea.Cmd) {
	t.Helper()
	p := s.prompt
	switch p.Evaluator {
	case round.EvalMultipleChoice:
		for i, o := range p.Options {
			if o.ID() == p.CardID {
				return update(s, keyPress(rune('1'+i)))
			}
		}
		t.Fatal("target missing from options")
	case round.EvalStatement:
		if p.Statement.Truth {
			return update(s, keyPress('t'))
		}
		return update(s, keyPress('f'))
	case round.EvalSelfAssess:
		s, _ = update(s, keyPress(' '))
		return update(s, keyPress('y'))
	}
	card, _ := s.sess.Pool().Get(p.CardID)
	s.input.Model.SetValue(card.Answer())
	return update(s, specialKey(tea.KeyEnter))
}

func TestStudyScreen_TitleAndStatus(t *testing.T) {
	s := testScreen(t, "write", 3)
	if s.Title() != "test" {
		t.Errorf("Title = %q", s.Title())
	}
	if s.Status() != "✓ 0/3" {
		t.Errorf("Status = %q, want ✓ 0/3", s.Status())
	}
}

func TestStudyScreen_TypedAnswer(t *testing.T) {
	s := testScreen(t, "write", 3)
	if !s.prompt.Evaluator.TakesText() {
		t.Fatalf("Evaluator = %s, want typed", s.prompt.Evaluator)
	}

	// Blank input is ignored.
	s, _ = update(s, specialKey(tea.KeyEnter))
	if s.phase != phaseAnswering {
		t.Fatal("blank answer should not be submitted")
	}

	s, _ = answerCorrectly(t, s)
	if s.phase != phaseFeedback || !s.verdict.Correct {
		t.Fatalf("phase %v verdict %+v, want correct feedback", s.phase, s.verdict)
	}
	if !strings.Contains(s.View(80, 30), "Correct!") {
		t.Error("feedback view missing Correct!")
	}

	first := s.prompt.CardID
	s, _ = update(s, keyPress('x'))
	if s.phase != phaseAnswering || s.prompt.CardID == first {
		t.Errorf("expected next prompt after feedback, still on %s", s.prompt.CardID)
	}
}

func TestStudyScreen_WrongTypedAnswerShowsCorrection(t *testing.T) {
	s := testScreen(t, "write", 3)
	s.input.Model.SetValue("nonsense")
	s, _ = update(s, specialKey(tea.KeyEnter))

	if s.verdict.Correct {
		t.Fatal("expected incorrect verdict")
	}
	if !strings.Contains(s.View(80, 30), "Correct answer: "+s.verdict.CorrectAnswer) {
		t.Error("feedback view missing the correct answer")
	}
}

func TestStudyScreen_MultipleChoice(t *testing.T) {
	s := testScreen(t, "learn", 4)
	if s.prompt.Evaluator != round.EvalMultipleChoice {
		t.Fatalf("Evaluator = %s, want multiple-choice", s.prompt.Evaluator)
	}
	if got := len(s.choice.Options); got != 4 {
		t.Fatalf("options = %d, want 4", got)
	}

	s, _ = answerCorrectly(t, s)
	if !s.verdict.Correct || s.verdict.To != round.StageRecall {
		t.Errorf("verdict = %+v, want correct promotion to recall", s.verdict)
	}
}

func TestStudyScreen_TrueFalse(t *testing.T) {
	s := testScreen(t, "truefalse", 3)
	if s.prompt.Statement == nil {
		t.Fatal("missing statement")
	}
	s, _ = answerCorrectly(t, s)
	if !s.verdict.Correct || !s.verdict.Mastered() {
		t.Errorf("verdict = %+v", s.verdict)
	}
}

func TestStudyScreen_FlashcardsFlip(t *testing.T) {
	s := testScreen(t, "flashcards", 2)

	s, _ = update(s, keyPress('y'))
	if s.phase != phaseAnswering {
		t.Fatal("y before flipping should do nothing")
	}
	s, _ = update(s, keyPress(' '))
	if s.phase != phaseRevealed {
		t.Fatalf("phase = %v, want revealed", s.phase)
	}
	card, _ := s.sess.Pool().Get(s.prompt.CardID)
	if !strings.Contains(s.View(80, 30), card.Answer()) {
		t.Error("flipped card should show the answer")
	}

	s, _ = update(s, keyPress('n'))
	if s.verdict.Correct {
		t.Error("n should judge the card as unknown")
	}
}

func TestStudyScreen_QuitConfirm(t *testing.T) {
	s := testScreen(t, "write", 3)
	if !s.HandlesEscape() {
		t.Fatal("study screen should handle Esc")
	}

	s, _ = update(s, specialKey(tea.KeyEscape))
	if s.phase != phaseQuitConfirm {
		t.Fatal("expected quit confirmation")
	}
	s, _ = update(s, keyPress('n'))
	if s.phase != phaseAnswering {
		t.Error("expected to resume answering after n")
	}

	s, _ = update(s, specialKey(tea.KeyEscape))
	_, cmd := update(s, keyPress('y'))
	if cmd == nil {
		t.Fatal("expected a command after confirming quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("confirming should quit")
	}
}

func TestStudyScreen_CompletionShowsSummary(t *testing.T) {
	s := testScreen(t, "flashcards", 3)

	// Miss the first card once so the summary lists it.
	s, _ = update(s, keyPress(' '))
	s, _ = update(s, keyPress('n'))
	s, _ = update(s, keyPress('x'))

	var cmd tea.Cmd
	for i := 0; i < 3; i++ {
		s, _ = answerCorrectly(t, s)
		if s.phase != phaseFeedback {
			t.Fatalf("step %d: phase = %v, want feedback", i, s.phase)
		}
		s, cmd = update(s, keyPress('x'))
	}
	if !s.sess.IsComplete() {
		t.Fatal("session should be complete")
	}
	if cmd == nil {
		t.Fatal("expected navigation command on completion")
	}
	msg, ok := cmd().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("got %T, want router.ReplaceScreenMsg", cmd())
	}
	sum, ok := msg.Screen.(*summary.SummaryScreen)
	if !ok {
		t.Fatalf("replacement is %T, want summary screen", msg.Screen)
	}
	if !strings.Contains(sum.View(80, 30), "question") {
		t.Error("summary should label cards by prompt")
	}

	// Study again restarts the same session.
	_, cmd = sum.Update(keyPress('r'))
	again, ok := cmd().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatal("restart should replace the summary")
	}
	var scr screen.Screen = again.Screen
	if st := scr.(*StudyScreen).sess.Stats(); st.Attempts != 0 || st.MasteredCount != 0 {
		t.Errorf("restarted stats = %+v", st)
	}
}

func TestStudyScreen_KeyHintsPerEvaluator(t *testing.T) {
	tests := []struct {
		mode string
		key  string
	}{
		{"learn", "1-4"},
		{"truefalse", "T"},
		{"flashcards", "Space"},
		{"write", "Enter"},
	}
	for _, tt := range tests {
		s := testScreen(t, tt.mode, 4)
		found := false
		for _, h := range s.KeyHints() {
			if h.Key == tt.key {
				found = true
			}
		}
		if !found {
			t.Errorf("%s: hints %+v missing %q", tt.mode, s.KeyHints(), tt.key)
		}
	}
}
