// Package theme holds the flashiz colour palette and shared lipgloss styles.
package theme

import (
	"charm.land/lipgloss/v2"
)

var (
	Primary   = lipgloss.Color("#6366F1") // indigo, app name and selection
	Secondary = lipgloss.Color("#14B8A6") // teal, recall stage
	Accent    = lipgloss.Color("#F59E0B") // amber, mastery and banners
	Success   = lipgloss.Color("#22C55E")
	Error     = lipgloss.Color("#F43F5E")
	Text      = lipgloss.Color("#F8FAFC")
	TextDim   = lipgloss.Color("#94A3B8")
	BgDark    = lipgloss.Color("#0F172A")
	BgCard    = lipgloss.Color("#1E293B")
	Border    = lipgloss.Color("#334155")
)

// Stage colours used by the mastery bar: unseen/recognition cards, cards
// waiting for recall, and mastered cards.
var (
	StagePresentation = Border
	StageRecall       = Secondary
	StageMastered     = Success
)

var (
	Title = lipgloss.NewStyle().Bold(true).Foreground(Primary).Align(lipgloss.Center)
	Body  = lipgloss.NewStyle().Foreground(Text)
	Muted = lipgloss.NewStyle().Foreground(TextDim)
	Hint  = lipgloss.NewStyle().Foreground(TextDim).Italic(true)

	// Prompt is the text on the card face.
	Prompt = lipgloss.NewStyle().Bold(true).Foreground(Text).Align(lipgloss.Center)

	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)

	// Banner announces a new round.
	Banner = lipgloss.NewStyle().
		Foreground(BgDark).
		Background(Accent).
		Bold(true).
		Padding(0, 2)

	// Bar frames the header and footer.
	Bar = lipgloss.NewStyle().
		Background(BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border)
)

// Answer feedback.
var (
	Selected   = lipgloss.NewStyle().Foreground(Primary).Bold(true)
	Unselected = lipgloss.NewStyle().Foreground(Text)
	Correct    = lipgloss.NewStyle().Foreground(Success).Bold(true)
	Incorrect  = lipgloss.NewStyle().Foreground(Error).Bold(true)
)
