package study

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/flashiz/internal/matcher"
	"github.com/abhisek/flashiz/internal/round"
	"github.com/abhisek/flashiz/internal/ui/components"
	"github.com/abhisek/flashiz/internal/ui/layout"
	"github.com/abhisek/flashiz/internal/ui/theme"
)

func (s *StudyScreen) View(width, height int) string {
	if s.phase == phaseQuitConfirm {
		return renderQuitConfirm(width, height)
	}
	if s.prompt.CardID == "" {
		return center(width, theme.Muted.Render("No cards to study."))
	}

	var b strings.Builder
	b.WriteString(s.renderInfoLine(width))
	b.WriteString("\n\n")

	if s.prompt.RoundComplete && s.phase != phaseFeedback {
		banner := theme.Banner.Render(fmt.Sprintf("Round %d · %s", s.prompt.Round, s.prompt.Stage))
		b.WriteString(center(width, banner))
		b.WriteString("\n\n")
	}

	b.WriteString(s.renderCard(width, height))
	b.WriteString("\n\n")

	if s.phase == phaseFeedback {
		b.WriteString(s.renderFeedback(width))
	} else {
		b.WriteString(s.renderAnswerArea(width))
	}

	if s.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(center(width, theme.Incorrect.Render(s.errMsg)))
	}
	return b.String()
}

func (s *StudyScreen) renderInfoLine(width int) string {
	st := s.sess.Stats()
	counts := s.sess.Counts()

	left := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).
		Render(fmt.Sprintf("  %s", s.prompt.Stage))
	right := theme.Muted.Render(fmt.Sprintf("learning %d  recalling %d  streak %d  ",
		counts.Presentation, counts.Recall, st.CurrentStreak))

	pad := width - lipgloss.Width(left) - lipgloss.Width(right)
	if pad < 1 {
		pad = 1
	}
	bar := components.NewMasteryBar(counts, min(width-4, 50))
	return left + strings.Repeat(" ", pad) + right + "\n" + center(width, bar.View())
}

func (s *StudyScreen) renderCard(width, height int) string {
	p := s.prompt
	face := p.DisplayPrompt
	if p.Statement != nil {
		face = p.Statement.Prompt + "\n\n" + lipgloss.NewStyle().Foreground(theme.Accent).Render("→ "+p.Statement.ShownAnswer)
	}
	if p.Illustration != "" && !layout.IsCompactHeight(height) {
		face = theme.Muted.Render(p.Illustration) + "\n\n" + face
	}
	if p.Scrambled != "" {
		face += "\n\n" + theme.Hint.Render("letters: "+p.Scrambled)
	}
	if s.phase == phaseRevealed || (s.phase == phaseFeedback && p.Evaluator == round.EvalSelfAssess) {
		face += "\n\n" + theme.Correct.Render(s.correctCard().Answer())
	}

	cardWidth := min(width-8, 64)
	card := theme.Card.Width(cardWidth).Render(theme.Prompt.Width(cardWidth - 6).Render(face))
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, card)
}

func (s *StudyScreen) renderAnswerArea(width int) string {
	switch s.prompt.Evaluator {
	case round.EvalMultipleChoice:
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, s.choice.View())
	case round.EvalStatement:
		return center(width, theme.Hint.Render("Is this right?  (t)rue / (f)alse"))
	case round.EvalSelfAssess:
		if s.phase == phaseRevealed {
			return center(width, theme.Hint.Render("Did you know it?  (y)es / (n)o"))
		}
		return center(width, theme.Hint.Render("Think of the answer, then press space"))
	}
	return center(width, s.input.View())
}

func (s *StudyScreen) renderFeedback(width int) string {
	v := s.verdict
	var b strings.Builder

	if s.prompt.Evaluator == round.EvalMultipleChoice {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.choice.View()))
		b.WriteString("\n")
	}

	if v.Correct {
		b.WriteString(center(width, theme.Correct.Render("Correct!")))
		if v.Match.Tier == matcher.TierFuzzy || v.Match.Tier == matcher.TierContainment {
			b.WriteString("\n")
			b.WriteString(center(width, theme.Muted.Render(
				fmt.Sprintf("accepted as %q (%.0f%% similar)", v.Match.Variant, v.Match.Similarity*100))))
		}
	} else {
		b.WriteString(center(width, theme.Incorrect.Render("Not quite")))
		b.WriteString("\n")
		b.WriteString(center(width, theme.Muted.Render("Correct answer: "+v.CorrectAnswer)))
	}

	if v.Mastered() {
		b.WriteString("\n\n")
		b.WriteString(center(width, lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render("Mastered!")))
	} else if v.From != v.To {
		b.WriteString("\n\n")
		b.WriteString(center(width, theme.Muted.Render(fmt.Sprintf("moved to %s", v.To))))
	}

	b.WriteString("\n\n")
	next := "Press any key to continue"
	if v.Complete {
		next = "Every card mastered! Press any key"
	}
	b.WriteString(center(width, theme.Hint.Render(next)))
	return b.String()
}

func renderQuitConfirm(width, height int) string {
	box := theme.Card.Render(
		theme.Body.Bold(true).Render("Stop studying?") + "\n\n" +
			theme.Muted.Render("Progress in this session will not be saved.") + "\n\n" +
			theme.Hint.Render("(y)es / (n)o"))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}

func center(width int, s string) string {
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, s)
}
