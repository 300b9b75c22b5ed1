package tui

import (
	"context"
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tessro/wellness/internal/conversation"
	"github.com/tessro/wellness/internal/logging"
)

// sendCmd performs the outbound request for p off the event loop.
func sendCmd(ctx context.Context, conv *conversation.Controller, p conversation.Pending) tea.Cmd {
	return func() (msg tea.Msg) {
		defer logging.LogPanic("chat-request", func(r any) {
			msg = chatResultMsg{Pending: p, Err: fmt.Errorf("panic: %v", r)}
		})
		slog.Debug("tui.send: delivering", "pending_id", p.ID)
		stats, err := conv.Deliver(ctx, p)
		return chatResultMsg{Pending: p, Stats: stats, Err: err}
	}
}

// begin hands an accepted submission to sendCmd and refreshes the views.
// Dropped submissions leave everything untouched.
func (m *Model) begin(p conversation.Pending, ok bool) tea.Cmd {
	if !ok {
		return nil
	}
	m.inputLine.Clear()
	m.refresh()
	return sendCmd(m.ctx, m.conv, p)
}
