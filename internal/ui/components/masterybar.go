package components

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/flashiz/internal/round"
	"github.com/abhisek/flashiz/internal/ui/theme"
)

// MasteryBar draws a session's cards as one bar split by stage: mastered,
// then waiting for recall, then still in presentation.
type MasteryBar struct {
	Counts round.Counts
	Width  int
}

// NewMasteryBar creates a bar over counts, at most width cells wide
// including its label.
func NewMasteryBar(counts round.Counts, width int) MasteryBar {
	return MasteryBar{Counts: counts, Width: width}
}

// Label is the "mastered/total" text in front of the bar.
func (b MasteryBar) Label() string {
	return fmt.Sprintf("%d/%d mastered", b.Counts.Mastered, b.Counts.Total)
}

// Cells splits the bar width between stages. Rounding goes to the
// mastered segment first so a finished deck always renders full.
func (b MasteryBar) Cells(barWidth int) (mastered, recall, presentation int) {
	total := b.Counts.Total
	if total <= 0 || barWidth <= 0 {
		return 0, 0, max(barWidth, 0)
	}
	mastered = b.Counts.Mastered * barWidth / total
	recall = b.Counts.Recall * barWidth / total
	if b.Counts.Mastered == total {
		mastered = barWidth
	}
	presentation = max(barWidth-mastered-recall, 0)
	return mastered, recall, presentation
}

func (b MasteryBar) View() string {
	label := theme.Body.Render(b.Label()) + "  "
	barWidth := max(b.Width-lipgloss.Width(label), 4)

	m, r, p := b.Cells(barWidth)
	seg := func(c color.Color, n int) string {
		return lipgloss.NewStyle().Background(c).Render(strings.Repeat(" ", n))
	}
	return label + seg(theme.StageMastered, m) + seg(theme.StageRecall, r) + seg(theme.StagePresentation, p)
}
