package tui

// Focus indicates which panel is currently focused.
type Focus int

const (
	FocusInputLine Focus = iota
	FocusPresets
	FocusChatView
)

// String returns the string representation of a Focus.
func (f Focus) String() string {
	switch f {
	case FocusInputLine:
		return "input"
	case FocusPresets:
		return "presets"
	case FocusChatView:
		return "chat"
	default:
		return "unknown"
	}
}

// ModeState centralizes focus state for the TUI.
type ModeState struct {
	Focus Focus
}

// NewModeState starts with the input focused so the user can type right away.
func NewModeState() ModeState {
	return ModeState{Focus: FocusInputLine}
}

// CycleFocus advances focus to the next panel.
// InputLine -> Presets -> ChatView -> InputLine
func (s *ModeState) CycleFocus() Focus {
	switch s.Focus {
	case FocusInputLine:
		s.Focus = FocusPresets
	case FocusPresets:
		s.Focus = FocusChatView
	default:
		s.Focus = FocusInputLine
	}
	return s.Focus
}

// SetFocus moves focus to the given panel.
func (s *ModeState) SetFocus(f Focus) {
	s.Focus = f
}

// IsInputting reports whether keystrokes go to the input line.
func (s ModeState) IsInputting() bool {
	return s.Focus == FocusInputLine
}
