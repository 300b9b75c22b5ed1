package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	inputPlaceholder = "Type your own mood..."
	inputCharLimit   = 2000
	maxInputHeight   = 4
)

// InputLine is the free-form mood input docked under the transcript. Its text
// is the conversation draft. Up and down recall moods already sent in this
// session; stepping past the newest one brings the unsent draft back.
type InputLine struct {
	width   int
	focused bool
	input   textarea.Model

	// recall is the index into the sent moods being shown, or -1.
	recall int
	// parked holds the draft while a sent mood is shown in its place.
	parked string
}

// NewInputLine creates an empty single-line mood input.
func NewInputLine() InputLine {
	ta := textarea.New()
	ta.Placeholder = inputPlaceholder
	ta.CharLimit = inputCharLimit
	ta.Prompt = "> "
	ta.ShowLineNumbers = false
	ta.SetHeight(1)
	// enter submits
	ta.KeyMap.InsertNewline.SetEnabled(false)
	return InputLine{input: ta, recall: -1}
}

// SetWidth sizes the input to fit inside the chat pane.
func (i *InputLine) SetWidth(width int) {
	i.width = width
	i.input.SetWidth(width - 6) // padding and prompt
}

// SetFocused sets the focus state.
func (i *InputLine) SetFocused(focused bool) {
	i.focused = focused
	if focused {
		i.input.Focus()
	} else {
		i.input.Blur()
	}
}

// Update forwards a key to the textarea. Editing a recalled mood turns it into
// the new draft.
func (i *InputLine) Update(msg tea.Msg) tea.Cmd {
	before := i.input.Value()
	var cmd tea.Cmd
	i.input, cmd = i.input.Update(msg)
	if i.recall != -1 && i.input.Value() != before {
		i.stopRecall()
	}
	i.fit()
	return cmd
}

// Value returns the current text.
func (i *InputLine) Value() string {
	return i.input.Value()
}

// SetValue replaces the text and moves the cursor to the end.
func (i *InputLine) SetValue(text string) {
	i.input.SetValue(text)
	i.input.CursorEnd()
	i.fit()
}

// Clear empties the input and forgets any recall in progress.
func (i *InputLine) Clear() {
	i.stopRecall()
	i.SetValue("")
}

// Recalling reports whether a previously sent mood is being shown.
func (i *InputLine) Recalling() bool {
	return i.recall != -1
}

// Recall steps through sent, oldest first. older moves back in time; moving
// forward past the newest entry restores the parked draft. It reports whether
// the text changed.
func (i *InputLine) Recall(sent []string, older bool) bool {
	if len(sent) == 0 {
		return false
	}
	if i.recall >= len(sent) {
		i.recall = len(sent) - 1
	}

	switch {
	case older && i.recall == -1:
		i.parked = i.input.Value()
		i.recall = len(sent) - 1
	case older && i.recall > 0:
		i.recall--
	case older:
		return false
	case i.recall == -1:
		return false
	case i.recall < len(sent)-1:
		i.recall++
	default:
		draft := i.parked
		i.stopRecall()
		i.SetValue(draft)
		return true
	}

	i.SetValue(sent[i.recall])
	return true
}

func (i *InputLine) stopRecall() {
	i.recall = -1
	i.parked = ""
}

// Height returns the number of rows the input needs, between 1 and
// maxInputHeight.
func (i *InputLine) Height() int {
	lines := strings.Count(i.input.Value(), "\n") + 1
	return min(lines, maxInputHeight)
}

func (i *InputLine) fit() {
	i.input.SetHeight(i.Height())
}

// View renders the input line.
func (i InputLine) View() string {
	style := inputLineStyle
	if i.focused {
		style = inputLineFocusedStyle
	}
	return style.Width(i.width).Render(i.input.View())
}
