// Package conversation owns the client-side chat state: the transcript, the
// draft input and the busy gate that allows at most one request in flight.
//
// A submission either runs synchronously through Submit, or is split into
// Begin and Settle so an event loop can perform the request elsewhere and
// report the outcome back. Either way each accepted submission appends exactly
// one user turn followed by exactly one bot turn.
package conversation

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tessro/wellness/internal/chatapi"
	"github.com/tessro/wellness/internal/preset"
)

// Chatter delivers one message to the remote chat endpoint.
type Chatter interface {
	Chat(ctx context.Context, message string) (*chatapi.Stats, error)
}

// Pending identifies the single in-flight request created by Begin.
type Pending struct {
	// ID is the ID of the user turn that started the request.
	ID string
	// Message is the text to send.
	Message string
}

// Controller is the conversation state machine.
type Controller struct {
	chatter Chatter

	// +checklocks:mu
	transcript []Turn
	// +checklocks:mu
	draft string
	// +checklocks:mu
	busy bool
	// +checklocks:mu
	inflight string
	mu       sync.Mutex

	// +checklocks:handlersMu
	handlers   []func(Event)
	handlersMu sync.RWMutex

	now   func() time.Time
	newID func() string
}

// New creates a controller that sends through chatter. chatter may be nil
// when only Begin/Settle are used.
func New(chatter Chatter) *Controller {
	return &Controller{
		chatter: chatter,
		now:     time.Now,
		newID:   uuid.NewString,
	}
}

// Begin accepts text for sending if it is non-blank and no request is in
// flight. On acceptance it appends the user turn, clears the draft and closes
// the busy gate, then returns the request the caller must deliver and later
// pass to Settle. Rejected submissions are dropped without error.
func (c *Controller) Begin(text string) (Pending, bool) {
	c.mu.Lock()
	if strings.TrimSpace(text) == "" || c.busy {
		busy := c.busy
		c.mu.Unlock()
		slog.Debug("conversation: submission dropped", "blank", strings.TrimSpace(text) == "", "busy", busy)
		return Pending{}, false
	}

	turn := Turn{
		ID:        c.newID(),
		Sender:    SenderUser,
		Text:      text,
		CreatedAt: c.now(),
	}
	c.transcript = append(c.transcript, turn)
	c.draft = ""
	c.busy = true
	c.inflight = turn.ID
	c.mu.Unlock()

	c.emit([]Event{
		{Type: EventTurnAppended, Turn: turn},
		{Type: EventBusyChanged, Busy: true},
	})
	return Pending{ID: turn.ID, Message: text}, true
}

// BeginDraft is Begin with the current draft.
func (c *Controller) BeginDraft() (Pending, bool) {
	return c.Begin(c.Draft())
}

// Settle records the outcome of the request identified by p. A nil error with
// non-nil stats appends a bot turn carrying the summary and stats; anything
// else appends the fallback turn. The busy gate reopens. Settlements for a
// request that is not in flight are ignored and return false.
func (c *Controller) Settle(p Pending, stats *chatapi.Stats, err error) (Turn, bool) {
	c.mu.Lock()
	if !c.busy || p.ID == "" || p.ID != c.inflight {
		c.mu.Unlock()
		slog.Warn("conversation: ignoring stale settlement", "pending_id", p.ID)
		return Turn{}, false
	}

	turn := Turn{
		ID:        c.newID(),
		Sender:    SenderBot,
		CreatedAt: c.now(),
	}
	if err == nil && stats != nil {
		turn.Text = stats.Summary
		turn.Stats = stats
	} else {
		turn.Text = FallbackText
		slog.Info("conversation: delivery failed", "pending_id", p.ID, "error", err)
	}
	c.transcript = append(c.transcript, turn)
	c.busy = false
	c.inflight = ""
	c.mu.Unlock()

	c.emit([]Event{
		{Type: EventTurnAppended, Turn: turn},
		{Type: EventBusyChanged, Busy: false},
	})
	return turn, true
}

// Submit runs one complete exchange: Begin, a single Chat call, Settle.
// It returns the bot turn, or false if the submission was dropped.
func (c *Controller) Submit(ctx context.Context, text string) (Turn, bool) {
	p, ok := c.Begin(text)
	if !ok {
		return Turn{}, false
	}
	stats, err := c.deliver(ctx, p.Message)
	return c.Settle(p, stats, err)
}

// SubmitDraft submits the current draft.
func (c *Controller) SubmitDraft(ctx context.Context) (Turn, bool) {
	return c.Submit(ctx, c.Draft())
}

// SelectPreset submits the preset's prompt. It behaves exactly like typing the
// prompt and submitting it.
func (c *Controller) SelectPreset(ctx context.Context, p preset.Preset) (Turn, bool) {
	return c.Submit(ctx, p.Prompt)
}

// UpdateDraft replaces the draft text.
func (c *Controller) UpdateDraft(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft = text
}

// Draft returns the not-yet-sent input.
func (c *Controller) Draft() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft
}

// Busy reports whether a request is in flight.
func (c *Controller) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.busy
}

// Transcript returns a copy of all turns in chronological order.
func (c *Controller) Transcript() []Turn {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Turn, len(c.transcript))
	copy(out, c.transcript)
	return out
}

// Len returns the number of turns in the transcript.
func (c *Controller) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.transcript)
}

// Last returns the most recent turn, or false if the transcript is empty.
func (c *Controller) Last() (Turn, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.transcript) == 0 {
		return Turn{}, false
	}
	return c.transcript[len(c.transcript)-1], true
}

// Deliver performs the outbound call for p without touching controller state,
// so an event loop can run it on another goroutine and pass the result to
// Settle.
func (c *Controller) Deliver(ctx context.Context, p Pending) (*chatapi.Stats, error) {
	return c.deliver(ctx, p.Message)
}

// deliver makes the single outbound call. A panicking chatter is reported as
// a delivery failure so the busy gate still reopens.
func (c *Controller) deliver(ctx context.Context, message string) (stats *chatapi.Stats, err error) {
	defer func() {
		if r := recover(); r != nil {
			stats = nil
			err = &chatapi.DeliveryError{Op: "request", Err: fmt.Errorf("panic: %v", r)}
		}
	}()
	if c.chatter == nil {
		return nil, &chatapi.DeliveryError{Op: "request", Err: errNoChatter}
	}
	return c.chatter.Chat(ctx, message)
}
