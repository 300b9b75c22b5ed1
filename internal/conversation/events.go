package conversation

// EventType identifies a controller state change.
type EventType string

const (
	// EventTurnAppended fires after a turn is added to the transcript.
	EventTurnAppended EventType = "turn_appended"
	// EventBusyChanged fires when the busy gate opens or closes.
	EventBusyChanged EventType = "busy_changed"
)

// Event describes a single controller state change.
type Event struct {
	Type EventType
	// Turn is set for EventTurnAppended.
	Turn Turn
	// Busy is the new busy value for EventBusyChanged.
	Busy bool
}

// OnEvent registers a handler. Handlers run synchronously on the goroutine
// that caused the change, after the controller lock is released.
func (c *Controller) OnEvent(handler func(Event)) {
	c.handlersMu.Lock()
	defer c.handlersMu.Unlock()
	c.handlers = append(c.handlers, handler)
}

func (c *Controller) emit(events []Event) {
	if len(events) == 0 {
		return
	}
	c.handlersMu.RLock()
	handlers := make([]func(Event), len(c.handlers))
	copy(handlers, c.handlers)
	c.handlersMu.RUnlock()

	for _, ev := range events {
		for _, h := range handlers {
			h(ev)
		}
	}
}
