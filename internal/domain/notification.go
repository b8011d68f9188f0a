package domain

import (
	"encoding/json"
	"fmt"
)

// Notification is one ephemeral message fanned out to every live
// notification session. It is never persisted.
type Notification struct {
	Message string `json:"message"`
}

// NewOrderCreated builds the notification broadcast after a successful
// order insert.
func NewOrderCreated(o *Order) Notification {
	return Notification{
		Message: fmt.Sprintf("New order created: %s (Order ID: %d)", o.Symbol, o.ID),
	}
}

// NewStatusUpdate builds the notification broadcast for a client-sent
// status text.
func NewStatusUpdate(text string) Notification {
	return Notification{Message: "Order status update: " + text}
}

// NewClientDisconnected builds the notification broadcast when a session
// closes normally.
func NewClientDisconnected() Notification {
	return Notification{Message: "A client disconnected"}
}

// Encode marshals the notification into the wire frame body.
func (n Notification) Encode() ([]byte, error) {
	return json.Marshal(n)
}
