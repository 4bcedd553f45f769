package summary

import (
	"fmt"
	"sort"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/flashiz/internal/router"
	"github.com/abhisek/flashiz/internal/screen"
	"github.com/abhisek/flashiz/internal/session"
	"github.com/abhisek/flashiz/internal/ui/layout"
	"github.com/abhisek/flashiz/internal/ui/theme"
)

// maxTroubleCards caps the "needed practice" list.
const maxTroubleCards = 5

// Options customizes the summary screen.
type Options struct {
	// Label turns a card ID into display text. Defaults to the ID.
	Label func(cardID string) string

	// Restart builds a fresh study screen for the "again" key. When nil the
	// key is disabled.
	Restart func() (screen.Screen, error)
}

// SummaryScreen displays a finished session's results.
type SummaryScreen struct {
	summary session.Summary
	opts    Options
	trouble []cardMisses
	errMsg  string
}

type cardMisses struct {
	label  string
	misses int
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a SummaryScreen.
func New(sum session.Summary, opts Options) *SummaryScreen {
	if opts.Label == nil {
		opts.Label = func(id string) string { return id }
	}
	return &SummaryScreen{
		summary: sum,
		opts:    opts,
		trouble: troubleCards(sum.Attempts, opts.Label),
	}
}

// troubleCards counts wrong attempts per card, most missed first.
func troubleCards(attempts []session.Attempt, label func(string) string) []cardMisses {
	misses := make(map[string]int)
	for _, a := range attempts {
		if !a.Correct {
			misses[a.CardID]++
		}
	}
	out := make([]cardMisses, 0, len(misses))
	for id, n := range misses {
		out = append(out, cardMisses{label: label(id), misses: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].misses != out[j].misses {
			return out[i].misses > out[j].misses
		}
		return out[i].label < out[j].label
	})
	if len(out) > maxTroubleCards {
		out = out[:maxTroubleCards]
	}
	return out
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Session Summary"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{{Key: "Enter", Description: "Done"}}
	if s.opts.Restart != nil {
		hints = append(hints, layout.KeyHint{Key: "R", Description: "Study again"})
	}
	return hints
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	switch kmsg.String() {
	case "enter", "q":
		return s, tea.Quit
	case "r", "R":
		if s.opts.Restart == nil {
			return s, nil
		}
		next, err := s.opts.Restart()
		if err != nil {
			s.errMsg = err.Error()
			return s, nil
		}
		return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary
	st := sum.Stats

	var b strings.Builder

	b.WriteString(center(width, theme.Title.Render("Deck complete!")))
	b.WriteString("\n\n")

	if sum.DeckName != "" || sum.Mode != "" {
		b.WriteString(center(width, theme.Muted.Render(fmt.Sprintf("%s · %s", sum.DeckName, sum.Mode))))
		b.WriteString("\n")
	}

	d := sum.Duration()
	mins := int(d.Minutes())
	secs := int(d.Seconds()) % 60
	b.WriteString(center(width, theme.Muted.Render(fmt.Sprintf("Duration: %d:%02d", mins, secs))))
	b.WriteString("\n\n")

	statsLine := fmt.Sprintf("Cards: %d        Attempts: %d        Accuracy: %.0f%%",
		st.TotalCount, st.Attempts, st.Accuracy*100)
	b.WriteString(center(width, theme.Body.Render(statsLine)))
	b.WriteString("\n")
	b.WriteString(center(width, theme.Body.Render(
		fmt.Sprintf("Best streak: %d        Rounds: %d", st.BestStreak, st.Rounds))))
	b.WriteString("\n\n")

	if len(s.trouble) > 0 {
		divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
			strings.Repeat("─", max(min(width-8, 50), 0)))
		b.WriteString(center(width, theme.Muted.Render("Needed practice")))
		b.WriteString("\n")
		b.WriteString(center(width, divider))
		b.WriteString("\n")
		for _, c := range s.trouble {
			word := "miss"
			if c.misses > 1 {
				word = "misses"
			}
			b.WriteString(center(width, theme.Body.Render(fmt.Sprintf("%s  (%d %s)", c.label, c.misses, word))))
			b.WriteString("\n")
		}
	} else if st.Attempts > 0 {
		b.WriteString(center(width, theme.Correct.Render("No mistakes!")))
		b.WriteString("\n")
	}

	if s.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(center(width, theme.Incorrect.Render(s.errMsg)))
	}

	return b.String()
}

func center(width int, s string) string {
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, s)
}
