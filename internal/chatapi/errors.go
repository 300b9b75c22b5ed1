package chatapi

import (
	"errors"
	"fmt"
)

// ErrDelivery is the single failure category of the chat endpoint. Network
// errors, non-2xx statuses and malformed payloads all match it via errors.Is.
var ErrDelivery = errors.New("chat delivery failed")

// DeliveryError describes why a chat request could not be delivered.
type DeliveryError struct {
	// Op is the stage that failed: "request", "status", "decode" or "payload".
	Op string
	// StatusCode is the HTTP status, or 0 if no response was received.
	StatusCode int
	Err        error
}

func (e *DeliveryError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: %s (status %d): %v", ErrDelivery, e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", ErrDelivery, e.Op, e.Err)
}

func (e *DeliveryError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrDelivery.
func (e *DeliveryError) Is(target error) bool {
	return target == ErrDelivery
}
