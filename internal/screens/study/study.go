package study

import (
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/flashiz/internal/deck"
	"github.com/abhisek/flashiz/internal/round"
	"github.com/abhisek/flashiz/internal/router"
	"github.com/abhisek/flashiz/internal/screen"
	"github.com/abhisek/flashiz/internal/screens/summary"
	"github.com/abhisek/flashiz/internal/session"
	"github.com/abhisek/flashiz/internal/ui/components"
	"github.com/abhisek/flashiz/internal/ui/layout"
)

type phase int

const (
	phaseAnswering phase = iota
	phaseRevealed        // self-assess card flipped, waiting for y/n
	phaseFeedback
	phaseQuitConfirm
)

// StudyScreen drives one session: it shows each prompt, collects the answer
// in the form the prompt's evaluator expects and shows the verdict.
type StudyScreen struct {
	sess  *session.Session
	title string

	prompt   session.Prompt
	phase    phase
	resume   phase // phase to return to when quit is cancelled
	input    components.AnswerInput
	choice   components.MultiChoice
	verdict  session.Verdict
	errMsg   string
	complete bool
}

var _ screen.Screen = (*StudyScreen)(nil)
var _ screen.KeyHintProvider = (*StudyScreen)(nil)
var _ screen.StatusProvider = (*StudyScreen)(nil)
var _ screen.EscapeHandler = (*StudyScreen)(nil)

// New creates a study screen over s. title is shown in the header,
// usually the deck name.
func New(s *session.Session, title string) *StudyScreen {
	return &StudyScreen{sess: s, title: title}
}

func (s *StudyScreen) Init() tea.Cmd {
	return s.advance()
}

func (s *StudyScreen) Title() string {
	return s.title
}

func (s *StudyScreen) Status() string {
	st := s.sess.Stats()
	return fmt.Sprintf("✓ %d/%d", st.MasteredCount, st.TotalCount)
}

func (s *StudyScreen) HandlesEscape() bool {
	return true
}

func (s *StudyScreen) KeyHints() []layout.KeyHint {
	switch s.phase {
	case phaseQuitConfirm:
		return []layout.KeyHint{
			{Key: "Y", Description: "Stop studying"},
			{Key: "N", Description: "Keep going"},
		}
	case phaseFeedback:
		return []layout.KeyHint{{Key: "any key", Description: "Continue"}}
	case phaseRevealed:
		return []layout.KeyHint{
			{Key: "Y", Description: "Knew it"},
			{Key: "N", Description: "Didn't know"},
		}
	}

	switch s.prompt.Evaluator {
	case round.EvalMultipleChoice:
		return []layout.KeyHint{
			{Key: fmt.Sprintf("1-%d", len(s.prompt.Options)), Description: "Choose"},
			{Key: "↑↓", Description: "Move"},
			{Key: "Enter", Description: "Submit"},
			{Key: "Esc", Description: "Quit"},
		}
	case round.EvalStatement:
		return []layout.KeyHint{
			{Key: "T", Description: "True"},
			{Key: "F", Description: "False"},
			{Key: "Esc", Description: "Quit"},
		}
	case round.EvalSelfAssess:
		return []layout.KeyHint{
			{Key: "Space", Description: "Flip"},
			{Key: "Esc", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Submit"},
		{Key: "Esc", Description: "Quit"},
	}
}

func (s *StudyScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		return s.handleKey(kmsg)
	}

	if s.phase == phaseAnswering && s.prompt.Evaluator.TakesText() {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

// advance loads the next prompt and resets the input widgets for it.
func (s *StudyScreen) advance() tea.Cmd {
	p, ok := s.sess.NextPrompt()
	if !ok {
		s.complete = true
		return nil
	}

	s.prompt = p
	s.phase = phaseAnswering
	s.errMsg = ""
	s.verdict = session.Verdict{}

	switch {
	case p.Evaluator == round.EvalMultipleChoice:
		labels := make([]string, len(p.Options))
		correct := 0
		for i, o := range p.Options {
			labels[i] = o.Answer()
			if o.ID() == p.CardID {
				correct = i
			}
		}
		s.choice = components.NewMultiChoice(labels, correct)
	case p.Evaluator.TakesText():
		label := "Answer: "
		if p.Evaluator == round.EvalSpelled {
			label = "Spell it: "
		}
		s.input = components.NewAnswerInput(label)
		return s.input.Focus()
	}
	return nil
}

func (s *StudyScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	switch s.phase {
	case phaseQuitConfirm:
		switch key {
		case "y", "Y":
			return s, tea.Quit
		case "n", "N", "esc":
			s.phase = s.resume
		}
		return s, nil

	case phaseFeedback:
		if s.complete {
			return s, s.finish()
		}
		return s, s.advance()
	}

	if key == "esc" {
		s.resume = s.phase
		s.phase = phaseQuitConfirm
		return s, nil
	}

	if s.phase == phaseRevealed {
		switch key {
		case "y", "Y":
			return s.submit(session.JudgmentAnswer(true))
		case "n", "N":
			return s.submit(session.JudgmentAnswer(false))
		}
		return s, nil
	}

	switch s.prompt.Evaluator {
	case round.EvalMultipleChoice:
		var cmd tea.Cmd
		s.choice, cmd = s.choice.Update(msg)
		if i, ok := s.choice.Chosen(); ok {
			return s.submit(session.ChoiceAnswer(i))
		}
		return s, cmd

	case round.EvalStatement:
		switch key {
		case "t", "T", "y", "Y":
			return s.submit(session.JudgmentAnswer(true))
		case "f", "F", "n", "N":
			return s.submit(session.JudgmentAnswer(false))
		}
		return s, nil

	case round.EvalSelfAssess:
		switch key {
		case "space", " ", "enter":
			s.phase = phaseRevealed
		}
		return s, nil
	}

	if key == "enter" {
		if s.input.Blank() {
			return s, nil
		}
		return s.submit(session.TextAnswer(s.input.Value()))
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *StudyScreen) submit(a session.Answer) (screen.Screen, tea.Cmd) {
	v, err := s.sess.SubmitAnswer(a)
	if err != nil {
		s.errMsg = err.Error()
		return s, nil
	}
	s.verdict = v
	s.complete = v.Complete
	s.phase = phaseFeedback
	if s.prompt.Evaluator.TakesText() {
		s.input.Mark(v.Correct)
	}
	return s, nil
}

// finish swaps this screen for the summary.
func (s *StudyScreen) finish() tea.Cmd {
	sess, title := s.sess, s.title
	pool := sess.Pool()
	sum := summary.New(sess.Summary(), summary.Options{
		Label: func(cardID string) string {
			if c, ok := pool.Get(cardID); ok {
				return c.Prompt()
			}
			return cardID
		},
		Restart: func() (screen.Screen, error) {
			if err := sess.Restart(); err != nil {
				return nil, err
			}
			return New(sess, title), nil
		},
	})
	return func() tea.Msg { return router.ReplaceScreenMsg{Screen: sum} }
}

// correctCard returns the card behind the active prompt.
func (s *StudyScreen) correctCard() deck.Card {
	c, _ := s.sess.Pool().Get(s.prompt.CardID)
	return c
}
