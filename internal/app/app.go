// Package app is the root Bubble Tea model: it owns the screen router and
// draws the header and footer around the active screen.
package app

import (
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/flashiz/internal/router"
	"github.com/abhisek/flashiz/internal/screen"
	"github.com/abhisek/flashiz/internal/ui/layout"
)

var quitHint = layout.KeyHint{Key: "Ctrl+C", Description: "Quit"}

// Model is the program model handed to tea.NewProgram.
type Model struct {
	router        *router.Router
	width, height int
}

func New(initial screen.Screen) Model {
	return Model{router: router.New(initial)}
}

func (m Model) Init() tea.Cmd {
	if top := m.router.Active(); top != nil {
		return top.Init()
	}
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil
	case tea.KeyMsg:
		if cmd, handled := m.globalKey(msg.String()); handled {
			return m, cmd
		}
	}
	return m, m.router.Update(msg)
}

// globalKey handles keys that work on every screen. Esc goes back one
// screen, or quits from the first, unless the active screen claims it.
func (m Model) globalKey(key string) (tea.Cmd, bool) {
	switch key {
	case "ctrl+c":
		return tea.Quit, true
	case "esc":
		if h, ok := m.router.Active().(screen.EscapeHandler); ok && h.HandlesEscape() {
			return nil, false
		}
		if m.router.Depth() > 1 {
			return func() tea.Msg { return router.PopScreenMsg{} }, true
		}
		return tea.Quit, true
	}
	return nil, false
}

func (m Model) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	switch {
	case m.width == 0 || m.height == 0:
		// No size yet.
	case layout.IsTooSmall(m.width, m.height):
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
	default:
		v.SetContent(m.frame())
	}
	return v
}

func (m Model) frame() string {
	top := m.router.Active()

	var title, status string
	if top != nil {
		title = top.Title()
	}
	if sp, ok := top.(screen.StatusProvider); ok {
		status = sp.Status()
	}

	hints := []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	if kp, ok := top.(screen.KeyHintProvider); ok {
		if h := kp.KeyHints(); len(h) > 0 {
			hints = h
		}
	}

	header := layout.RenderHeader(title, status, m.width)
	footer := layout.RenderFooter(append(hints, quitHint), m.width)
	content := m.router.View(m.width, layout.ContentHeight(header, footer, m.height))
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// Run blocks in the TUI, starting at initial, until the program exits.
func Run(initial screen.Screen) error {
	if _, err := tea.NewProgram(New(initial)).Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
