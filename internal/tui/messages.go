package tui

import (
	"github.com/tessro/wellness/internal/chatapi"
	"github.com/tessro/wellness/internal/conversation"
)

// chatResultMsg carries the outcome of an outbound chat request back to the
// event loop, where it settles the controller.
type chatResultMsg struct {
	Pending conversation.Pending
	Stats   *chatapi.Stats
	Err     error
}
