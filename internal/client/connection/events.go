package connection

import "github.com/yourusername/termchat/internal/protocol"

// Event represents events from the connection manager
type Event interface {
	isEvent()
}

// ConnectedEvent is sent when connection is established
type ConnectedEvent struct{}

func (ConnectedEvent) isEvent() {}

// DisconnectedEvent is sent when the connection ends or could not be opened.
// Error is nil for a clean close from either side.
type DisconnectedEvent struct {
	Error error
}

func (DisconnectedEvent) isEvent() {}

// InboundEvent carries one decoded server message, in arrival order
type InboundEvent struct {
	Message protocol.Inbound
}

func (InboundEvent) isEvent() {}
