package conversation

import (
	"time"

	"github.com/tessro/wellness/internal/chatapi"
)

// Sender identifies who authored a turn.
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// FallbackText is the bot reply appended when a request fails for any reason.
const FallbackText = "Connection error. Please try again."

// Turn is one message in the transcript. Turns are never edited once appended.
type Turn struct {
	ID        string         `json:"id" yaml:"id"`
	Sender    Sender         `json:"sender" yaml:"sender"`
	Text      string         `json:"text" yaml:"text"`
	Stats     *chatapi.Stats `json:"stats,omitempty" yaml:"-"`
	CreatedAt time.Time      `json:"created_at" yaml:"created_at"`
}

// IsUser reports whether the turn was authored by the user.
func (t Turn) IsUser() bool {
	return t.Sender == SenderUser
}

// IsFallback reports whether the turn is the placeholder for a failed request.
func (t Turn) IsFallback() bool {
	return t.Sender == SenderBot && t.Stats == nil
}
