package components

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/flashiz/internal/ui/theme"
)

// answerCharLimit bounds typed answers; card answers are words or short
// phrases.
const answerCharLimit = 120

type mark int

const (
	unmarked mark = iota
	markedRight
	markedWrong
)

// AnswerInput is the free-text box for typed, spelled and scramble prompts.
// Once marked with a verdict it stops taking input.
type AnswerInput struct {
	Model textinput.Model
	Label string
	mark  mark
}

func NewAnswerInput(label string) AnswerInput {
	ti := textinput.New()
	ti.Placeholder = "type the answer"
	ti.CharLimit = answerCharLimit
	ti.Focus()
	return AnswerInput{Model: ti, Label: label}
}

// Focus returns the cursor blink command.
func (a AnswerInput) Focus() tea.Cmd {
	return a.Model.Focus()
}

func (a AnswerInput) Update(msg tea.Msg) (AnswerInput, tea.Cmd) {
	if a.mark != unmarked {
		return a, nil
	}
	var cmd tea.Cmd
	a.Model, cmd = a.Model.Update(msg)
	return a, cmd
}

// Value is the raw text as typed.
func (a AnswerInput) Value() string {
	return a.Model.Value()
}

// Blank reports whether only whitespace has been typed.
func (a AnswerInput) Blank() bool {
	return strings.TrimSpace(a.Model.Value()) == ""
}

// Mark freezes the input and shows the verdict next to it.
func (a *AnswerInput) Mark(correct bool) {
	a.mark = markedWrong
	if correct {
		a.mark = markedRight
	}
}

func (a AnswerInput) Marked() bool {
	return a.mark != unmarked
}

func (a AnswerInput) View() string {
	out := theme.Muted.Render(a.Label) + a.Model.View()
	switch a.mark {
	case markedRight:
		out += " " + theme.Correct.Render("✓")
	case markedWrong:
		out += " " + theme.Incorrect.Render("✗")
	}
	return out
}
