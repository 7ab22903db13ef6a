package protocol // wire shapes exchanged with the chat server
// Inbound frames are flat JSON objects discriminated by "type".
// Outbound frames are the raw text typed by the user, no envelope.
import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// MessageType defines the type of an inbound WebSocket message
type MessageType string

const (
	// Server -> Client
	MsgWelcome MessageType = "welcome" // greeting sent once after the socket opens
	MsgMessage MessageType = "message" // a chat line relayed from any client
	MsgClients MessageType = "clients" // full roster of online clients, not a diff
)

var (
	ErrMalformed      = errors.New("malformed inbound payload")
	ErrUnknownType    = errors.New("unknown inbound message type")
	ErrInvalidPayload = errors.New("invalid inbound payload")
)

var validate = validator.New()

// Inbound is one decoded server message. It is one of Welcome, ChatMessage or Clients.
type Inbound interface {
	Type() MessageType
	isInbound()
}

// Welcome is the greeting the server sends when the connection opens
type Welcome struct {
	Message string
}

func (Welcome) Type() MessageType { return MsgWelcome }
func (Welcome) isInbound()        {}

// ChatMessage is a chat line from a named sender
type ChatMessage struct {
	Sender  string
	Message string
}

func (ChatMessage) Type() MessageType { return MsgMessage }
func (ChatMessage) isInbound()        {}

// Clients replaces the whole roster
type Clients struct {
	Clients []string
}

func (Clients) Type() MessageType { return MsgClients }
func (Clients) isInbound()        {}

// envelope only carries the discriminator; the rest is decoded per variant
type envelope struct {
	Type MessageType `json:"type"`
}

type welcomeWire struct {
	Type    MessageType `json:"type"`
	Message *string     `json:"message" validate:"required"`
}

// ChatPayload is the "data" object of a message frame.
// Both fields must be present; empty strings are valid.
type ChatPayload struct {
	Sender  *string `json:"sender" validate:"required"`
	Message *string `json:"message" validate:"required"`
}

type messageWire struct {
	Type MessageType  `json:"type"`
	Data *ChatPayload `json:"data" validate:"required"`
}

type clientsWire struct {
	Type    MessageType `json:"type"`
	Clients []string    `json:"clients" validate:"required"`
}

// DecodeInbound parses one text frame into its variant.
// Anything that is not exactly one of the three known shapes is an error.
func DecodeInbound(data []byte) (Inbound, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	switch env.Type {
	case MsgWelcome:
		var w welcomeWire
		if err := decodeValid(data, &w); err != nil {
			return nil, err
		}
		return Welcome{Message: *w.Message}, nil

	case MsgMessage:
		var w messageWire
		if err := decodeValid(data, &w); err != nil {
			return nil, err
		}
		return ChatMessage{Sender: *w.Data.Sender, Message: *w.Data.Message}, nil

	case MsgClients:
		var w clientsWire
		if err := decodeValid(data, &w); err != nil {
			return nil, err
		}
		return Clients{Clients: w.Clients}, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownType, env.Type)
}

func decodeValid(data []byte, v any) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	if err := validate.Struct(v); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidPayload, err)
	}
	return nil
}

// EncodeInbound produces the server's wire form of msg.
// The client never sends these; fakes and tests do.
func EncodeInbound(msg Inbound) ([]byte, error) {
	switch m := msg.(type) {
	case Welcome:
		return json.Marshal(welcomeWire{Type: MsgWelcome, Message: &m.Message})
	case ChatMessage:
		return json.Marshal(messageWire{
			Type: MsgMessage,
			Data: &ChatPayload{Sender: &m.Sender, Message: &m.Message},
		})
	case Clients:
		clients := m.Clients
		if clients == nil {
			clients = []string{}
		}
		return json.Marshal(clientsWire{Type: MsgClients, Clients: clients})
	}
	return nil, fmt.Errorf("%w: %T", ErrUnknownType, msg)
}
