package protocol

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeInbound_KnownShapes(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Inbound
	}{
		{
			name:     "welcome",
			input:    `{"type":"welcome","message":"Welcome to the chat, User-1a2b3c4d!"}`,
			expected: Welcome{Message: "Welcome to the chat, User-1a2b3c4d!"},
		},
		{
			name:     "welcome with empty text",
			input:    `{"type":"welcome","message":""}`,
			expected: Welcome{Message: ""},
		},
		{
			name:     "chat message",
			input:    `{"type":"message","data":{"sender":"alice","message":"hi bob"}}`,
			expected: ChatMessage{Sender: "alice", Message: "hi bob"},
		},
		{
			name:     "message with empty sender",
			input:    `{"type":"message","data":{"sender":"","message":"hi"}}`,
			expected: ChatMessage{Sender: "", Message: "hi"},
		},
		{
			name:     "roster keeps order and duplicates",
			input:    `{"type":"clients","clients":["bob","alice","bob"]}`,
			expected: Clients{Clients: []string{"bob", "alice", "bob"}},
		},
		{
			name:     "empty roster",
			input:    `{"type":"clients","clients":[]}`,
			expected: Clients{Clients: []string{}},
		},
		{
			name:     "unknown extra fields are tolerated",
			input:    `{"type":"message","data":{"sender":"alice","message":"x","ts":12},"room":"main"}`,
			expected: ChatMessage{Sender: "alice", Message: "x"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, err := DecodeInbound([]byte(tt.input))
			require.NoError(t, err)
			require.Equal(t, tt.expected, msg)
			require.Equal(t, tt.expected.Type(), msg.Type())
		})
	}
}

func TestDecodeInbound_FailsClosed(t *testing.T) {
	tests := []struct {
		name  string
		input string
		err   error
	}{
		{name: "not json", input: `not json`, err: ErrMalformed},
		{name: "json array", input: `["welcome"]`, err: ErrMalformed},
		{name: "roster with non strings", input: `{"type":"clients","clients":[1,2]}`, err: ErrMalformed},
		{name: "unknown type", input: `{"type":"typing","user":"alice"}`, err: ErrUnknownType},
		{name: "missing type", input: `{"message":"hello"}`, err: ErrUnknownType},
		{name: "json null", input: `null`, err: ErrUnknownType},
		{name: "welcome without message", input: `{"type":"welcome"}`, err: ErrInvalidPayload},
		{name: "message without data", input: `{"type":"message"}`, err: ErrInvalidPayload},
		{name: "message without sender", input: `{"type":"message","data":{"message":"hi"}}`, err: ErrInvalidPayload},
		{name: "message with null sender", input: `{"type":"message","data":{"sender":null,"message":"hi"}}`, err: ErrInvalidPayload},
		{name: "message without text", input: `{"type":"message","data":{"sender":"alice"}}`, err: ErrInvalidPayload},
		{name: "clients without list", input: `{"type":"clients"}`, err: ErrInvalidPayload},
		{name: "clients null list", input: `{"type":"clients","clients":null}`, err: ErrInvalidPayload},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, err := DecodeInbound([]byte(tt.input))
			require.ErrorIs(t, err, tt.err)
			require.Nil(t, msg)
		})
	}
}

func TestEncodeInbound_DecodesBack(t *testing.T) {
	req := require.New(t)

	data, err := EncodeInbound(ChatMessage{Sender: "bob", Message: "<b>not markup</b>"})
	req.NoError(err)
	req.JSONEq(`{"type":"message","data":{"sender":"bob","message":"<b>not markup</b>"}}`, string(data))

	data, err = EncodeInbound(Clients{})
	req.NoError(err)
	req.JSONEq(`{"type":"clients","clients":[]}`, string(data))

	msg, err := DecodeInbound(data)
	req.NoError(err)
	req.Equal(Clients{Clients: []string{}}, msg)
}
