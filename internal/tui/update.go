package tui

import (
	"log/slog"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.updateLayout()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		m.refreshBusy()
		return m, cmd

	case chatResultMsg:
		turn, ok := m.conv.Settle(msg.Pending, msg.Stats, msg.Err)
		m.refresh()
		if !ok {
			return m, nil
		}
		// Failures surface only as the fallback turn; the cause is logged by Settle.
		slog.Debug("tui: turn settled", "turn_id", turn.ID, "fallback", turn.IsFallback())
		return m, nil

	case tea.MouseMsg:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.chatView.ScrollUp(3)
		case tea.MouseButtonWheelDown:
			m.chatView.ScrollDown(3)
		}
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.ForceQuit) {
			return m, tea.Quit
		}
		if m.modeState.IsInputting() {
			return m.updateInput(msg)
		}
		return m.updateNormal(msg)
	}

	return m, nil
}

// updateInput handles keys while the input line is focused.
func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Submit):
		m.syncDraft()
		return m, m.begin(m.conv.BeginDraft())

	case key.Matches(msg, m.keys.Cancel):
		m.inputLine.Clear()
		m.syncDraft()

	case key.Matches(msg, m.keys.Tab):
		m.syncFocusToComponents(m.modeState.CycleFocus())

	case key.Matches(msg, m.keys.RecallOlder):
		if m.inputLine.Recall(m.sentMoods(), true) {
			m.syncDraft()
		}

	case key.Matches(msg, m.keys.RecallNewer):
		if m.inputLine.Recall(m.sentMoods(), false) {
			m.syncDraft()
		}

	default:
		cmd := m.inputLine.Update(msg)
		m.syncDraft()
		return m, cmd
	}
	return m, nil
}

// updateNormal handles keys while the sidebar or the transcript is focused.
func (m Model) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Tab):
		m.syncFocusToComponents(m.modeState.CycleFocus())
		return m, nil
	}

	if m.modeState.Focus == FocusPresets {
		switch {
		case key.Matches(msg, m.keys.Up):
			m.presets.MoveUp()
		case key.Matches(msg, m.keys.Down):
			m.presets.MoveDown()
		case key.Matches(msg, m.keys.Top):
			m.presets.MoveToTop()
		case key.Matches(msg, m.keys.Bottom):
			m.presets.MoveToBottom()
		case key.Matches(msg, m.keys.Select):
			p, ok := m.presets.Selected()
			if !ok {
				return m, nil
			}
			slog.Debug("tui: preset selected", "label", p.Label)
			return m, m.begin(m.conv.Begin(p.Prompt))
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.FocusInput):
		m.syncFocusToComponents(FocusInputLine)
	case key.Matches(msg, m.keys.Up):
		m.chatView.ScrollUp(1)
	case key.Matches(msg, m.keys.Down):
		m.chatView.ScrollDown(1)
	case key.Matches(msg, m.keys.Top):
		m.chatView.ScrollToTop()
	case key.Matches(msg, m.keys.Bottom):
		m.chatView.ScrollToBottom()
	case key.Matches(msg, m.keys.PageUp):
		m.chatView.PageUp()
	case key.Matches(msg, m.keys.PageDown):
		m.chatView.PageDown()
	}
	return m, nil
}
