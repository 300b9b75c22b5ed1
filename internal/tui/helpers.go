package tui

// syncFocusToComponents updates component focus states to match the ModeState focus.
func (m *Model) syncFocusToComponents(focus Focus) {
	m.modeState.SetFocus(focus)
	m.presets.SetFocused(focus == FocusPresets)
	// The input is part of the chat pane, so the pane stays highlighted
	// while typing.
	m.chatView.SetFocused(focus == FocusChatView || focus == FocusInputLine)
	m.inputLine.SetFocused(focus == FocusInputLine)
	m.chatView.SetInputView(m.inputLine.View(), m.inputLine.Height(), focus == FocusInputLine)
	m.helpBar.SetContext(focus, m.conv.Busy())
}

// refresh copies controller state into the views.
func (m *Model) refresh() {
	m.chatView.SetTurns(m.conv.Transcript())
	m.header.SetTurnCount(m.conv.Len())
	m.refreshBusy()
	m.chatView.SetInputView(m.inputLine.View(), m.inputLine.Height(), m.modeState.IsInputting())
}

// refreshBusy updates every busy indicator from the controller.
func (m *Model) refreshBusy() {
	busy := m.conv.Busy()
	frame := m.spinner.View()
	m.header.SetBusy(busy, frame)
	m.chatView.SetBusy(busy, frame)
	m.presets.SetDisabled(busy)
	m.helpBar.SetContext(m.modeState.Focus, busy)
}

// sentMoods returns the text of every user turn, oldest first.
func (m *Model) sentMoods() []string {
	var sent []string
	for _, turn := range m.conv.Transcript() {
		if turn.IsUser() {
			sent = append(sent, turn.Text)
		}
	}
	return sent
}

// syncDraft mirrors the input line into the controller's draft.
func (m *Model) syncDraft() {
	m.conv.UpdateDraft(m.inputLine.Value())
	m.chatView.SetInputView(m.inputLine.View(), m.inputLine.Height(), true)
}

// updateLayout recalculates component dimensions for the two-pane layout.
func (m *Model) updateLayout() {
	headerHeight := 1 // Single line header
	statusHeight := 1 // Single line status bar
	contentHeight := m.height - headerHeight - statusHeight - 1
	if contentHeight < 1 {
		contentHeight = 1
	}

	// Split width: 30% preset sidebar, the rest for the chat pane
	listWidth := m.width * 30 / 100
	if listWidth < 24 {
		listWidth = 24
	}
	if listWidth > m.width/2 {
		listWidth = m.width / 2
	}
	chatWidth := m.width - listWidth

	m.header.SetWidth(m.width)
	m.presets.SetSize(listWidth, contentHeight)
	m.chatView.SetSize(chatWidth, contentHeight)
	m.helpBar.SetWidth(m.width)

	// Input line is docked inside the chat pane border
	m.inputLine.SetWidth(chatWidth - 2)
	m.chatView.SetInputView(m.inputLine.View(), m.inputLine.Height(), m.modeState.IsInputting())
}
