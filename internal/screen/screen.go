// Package screen defines what the router needs from a TUI page.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/flashiz/internal/ui/layout"
)

// Screen is one page of the TUI: the study card, the session summary.
// View renders only the content area; the app draws header and footer.
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)
	View(width, height int) string
	Title() string
}

// KeyHintProvider replaces the default footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// StatusProvider fills the right side of the header, e.g. "✓ 3/10".
type StatusProvider interface {
	Status() string
}

// EscapeHandler screens receive Esc as a normal key instead of being
// popped, so they can ask before abandoning a session.
type EscapeHandler interface {
	HandlesEscape() bool
}
