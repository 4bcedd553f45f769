package session

import (
	"strconv"
)

// AnswerKind tags which field of an Answer is set.
type AnswerKind int

const (
	KindText AnswerKind = iota + 1
	KindChoice
	KindJudgment
)

func (k AnswerKind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindChoice:
		return "choice"
	case KindJudgment:
		return "judgment"
	}
	return "unknown"
}

// Answer is a submitted response: free text, an option index, or a
// true/false (know/don't-know) judgment.
type Answer struct {
	Kind     AnswerKind
	Text     string
	Choice   int
	Judgment bool
}

// TextAnswer wraps typed input.
func TextAnswer(s string) Answer {
	return Answer{Kind: KindText, Text: s}
}

// ChoiceAnswer selects the zero-based option i.
func ChoiceAnswer(i int) Answer {
	return Answer{Kind: KindChoice, Choice: i}
}

// JudgmentAnswer answers a true/false statement or a know/don't-know card.
func JudgmentAnswer(b bool) Answer {
	return Answer{Kind: KindJudgment, Judgment: b}
}

// String renders the answer for attempt logs.
func (a Answer) String() string {
	switch a.Kind {
	case KindText:
		return a.Text
	case KindChoice:
		return "#" + strconv.Itoa(a.Choice+1)
	case KindJudgment:
		return strconv.FormatBool(a.Judgment)
	}
	return ""
}
