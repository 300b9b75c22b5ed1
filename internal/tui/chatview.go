package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"

	"github.com/tessro/wellness/internal/chatapi"
	"github.com/tessro/wellness/internal/conversation"
	"github.com/tessro/wellness/internal/markdown"
)

const (
	chatTitle       = "Chat"
	chatEmptyText   = "How are you feeling today? Pick a preset or type your own mood."
	typingIndicator = "AI is analyzing..."
)

// ChatView displays the conversation transcript with the input line docked
// at the bottom.
type ChatView struct {
	turns    []conversation.Turn
	width    int
	height   int
	focused  bool
	busy     bool
	spinner  string
	viewport viewport.Model
	ready    bool

	inputView    string
	inputHeight  int
	inputFocused bool
}

// NewChatView creates a new chat view component.
func NewChatView() ChatView {
	return ChatView{inputHeight: 1}
}

// SetSize updates the component dimensions.
func (v *ChatView) SetSize(width, height int) {
	v.width = width
	v.height = height

	contentWidth, contentHeight := v.viewportSize()
	if !v.ready {
		v.viewport = viewport.New(contentWidth, contentHeight)
		v.ready = true
	} else {
		v.viewport.Width = contentWidth
		v.viewport.Height = contentHeight
	}

	v.updateContent()
}

// viewportSize returns the transcript area inside the border, below the
// title row and above the docked input.
func (v *ChatView) viewportSize() (int, int) {
	w := v.width - 2
	h := v.height - 2 - 1 - 1 - v.inputHeight
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h
}

// SetFocused sets the focus state.
func (v *ChatView) SetFocused(focused bool) {
	v.focused = focused
}

// IsFocused returns whether the view is focused.
func (v *ChatView) IsFocused() bool {
	return v.focused
}

// SetInputView sets the rendered input line docked under the transcript.
func (v *ChatView) SetInputView(view string, height int, focused bool) {
	if height < 1 {
		height = 1
	}
	resize := height != v.inputHeight
	v.inputView = view
	v.inputHeight = height
	v.inputFocused = focused
	if resize && v.ready {
		v.viewport.Width, v.viewport.Height = v.viewportSize()
		v.updateContent()
	}
}

// SetTurns replaces the transcript and follows the newest turn.
func (v *ChatView) SetTurns(turns []conversation.Turn) {
	follow := len(turns) != len(v.turns)
	v.turns = turns
	v.updateContent()
	if follow {
		v.viewport.GotoBottom()
	}
}

// Turns returns the transcript currently shown.
func (v *ChatView) Turns() []conversation.Turn {
	return v.turns
}

// SetBusy toggles the typing indicator. spinner is the current spinner frame.
func (v *ChatView) SetBusy(busy bool, spinner string) {
	changed := busy != v.busy || (busy && spinner != v.spinner)
	v.busy = busy
	v.spinner = spinner
	if changed {
		atBottom := v.viewport.AtBottom()
		v.updateContent()
		if atBottom {
			v.viewport.GotoBottom()
		}
	}
}

// ScrollUp scrolls the viewport up.
func (v *ChatView) ScrollUp(n int) {
	v.viewport.LineUp(n)
}

// ScrollDown scrolls the viewport down.
func (v *ChatView) ScrollDown(n int) {
	v.viewport.LineDown(n)
}

// ScrollToTop scrolls to the top.
func (v *ChatView) ScrollToTop() {
	v.viewport.GotoTop()
}

// ScrollToBottom scrolls to the bottom.
func (v *ChatView) ScrollToBottom() {
	v.viewport.GotoBottom()
}

// PageUp scrolls up by one page.
func (v *ChatView) PageUp() {
	v.viewport.ViewUp()
}

// PageDown scrolls down by one page.
func (v *ChatView) PageDown() {
	v.viewport.ViewDown()
}

// updateContent refreshes the viewport content from the transcript.
func (v *ChatView) updateContent() {
	if !v.ready {
		return
	}
	v.viewport.SetContent(v.renderTranscript(v.viewport.Width))
}

// renderTranscript renders every turn, plus the typing indicator while a
// request is in flight.
func (v *ChatView) renderTranscript(width int) string {
	var blocks []string
	for _, turn := range v.turns {
		blocks = append(blocks, renderTurn(turn, width))
	}
	if v.busy {
		indicator := typingIndicator
		if v.spinner != "" {
			indicator = v.spinner + " " + indicator
		}
		blocks = append(blocks, chatTypingStyle.Render(indicator))
	}
	return strings.Join(blocks, "\n\n")
}

// renderTurn renders a single turn wrapped to width.
func renderTurn(turn conversation.Turn, width int) string {
	var body string
	switch {
	case turn.IsUser():
		body = chatUserStyle.Render("You: ") + turn.Text
	case turn.IsFallback():
		body = chatBotStyle.Render("Companion: ") + chatFallbackStyle.Render(turn.Text)
	default:
		body = chatBotStyle.Render("Companion: ") + markdown.Flatten(turn.Text)
	}
	body = wrapText(body, width)

	if pills := statPills(turn.Stats); pills != "" {
		body += "\n" + pills
	}
	return body
}

// statPills renders the mood and energy badges of a bot turn.
func statPills(stats *chatapi.Stats) string {
	if stats == nil {
		return ""
	}
	var pills []string
	if stats.Mood != "" {
		pills = append(pills, statPillStyle.Render("Mood: "+stats.Mood))
	}
	pills = append(pills, statPillStyle.Render("Energy: "+chatapi.FormatEnergy(stats.EnergyScore)))
	return strings.Join(pills, " ")
}

// wrapText word wraps s to width, hard wrapping words that are still too long.
func wrapText(s string, width int) string {
	if width < 1 {
		return s
	}
	return wrap.String(wordwrap.String(s, width), width)
}

// View renders the chat view.
func (v ChatView) View() string {
	innerWidth := v.width - 2
	if innerWidth < 1 {
		innerWidth = 1
	}

	var header string
	if v.focused {
		header = chatHeaderFocusedStyle.Width(innerWidth).Render(chatTitle)
	} else {
		header = chatHeaderStyle.Width(innerWidth).Render(chatTitle)
	}

	_, contentHeight := v.viewportSize()
	var content string
	if len(v.turns) == 0 && !v.busy {
		content = chatEmptyStyle.Width(innerWidth).Height(contentHeight).Render(chatEmptyText)
	} else {
		content = v.viewport.View()
	}

	divider := inputDividerStyle.Render(strings.Repeat("─", innerWidth))
	inner := lipgloss.JoinVertical(lipgloss.Left, header, content, divider, v.inputView)

	borderStyle := chatViewBorderStyle
	if v.focused {
		borderStyle = chatViewFocusedBorderStyle
	}
	height := v.height - 2
	if height < 1 {
		height = 1
	}
	return borderStyle.Width(innerWidth).Height(height).Render(inner)
}
