package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

// HelpBar displays context-sensitive keyboard shortcuts at the bottom of the TUI.
type HelpBar struct {
	width int
	keys  KeyBindings
	focus Focus
	busy  bool
}

// NewHelpBar creates a new help bar component.
func NewHelpBar() HelpBar {
	return HelpBar{
		keys: DefaultKeyBindings(),
	}
}

// SetWidth updates the help bar width.
func (h *HelpBar) SetWidth(width int) {
	h.width = width
}

// SetContext updates the focus and busy state used to pick shortcuts.
func (h *HelpBar) SetContext(focus Focus, busy bool) {
	h.focus = focus
	h.busy = busy
}

// View renders the help bar with context-sensitive keyboard shortcuts.
func (h HelpBar) View() string {
	var bindings []key.Binding
	switch h.focus {
	case FocusPresets:
		bindings = []key.Binding{h.keys.Down, h.keys.Select, h.keys.Tab, h.keys.Quit}
	case FocusChatView:
		bindings = []key.Binding{h.keys.Down, h.keys.PageUp, h.keys.FocusInput, h.keys.Tab, h.keys.Quit}
	default:
		bindings = []key.Binding{h.keys.Submit, h.keys.Cancel, h.keys.RecallOlder, h.keys.Tab, h.keys.ForceQuit}
	}

	text := formatHelp(bindings)
	if h.busy {
		text = "waiting for reply  " + text
	}
	return statusStyle.Width(h.width).Render(text)
}

// formatHelp renders bindings as "key: desc" pairs.
func formatHelp(bindings []key.Binding) string {
	var parts []string
	for _, b := range bindings {
		help := b.Help()
		parts = append(parts, help.Key+": "+help.Desc)
	}
	return strings.Join(parts, "  ")
}
