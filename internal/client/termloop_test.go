package client

import (
	"io"
	"log/slog"
	"strings"
	"testing"

	tl "github.com/JoelOtter/termloop"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/termchat/internal/client/connection"
	"github.com/yourusername/termchat/internal/mocks"
	"github.com/yourusername/termchat/internal/protocol"
	"go.uber.org/mock/gomock"
)

func keyRunes(cs *ChatScreen, text string) {
	for _, r := range text {
		if r == ' ' {
			cs.Tick(tl.Event{Type: tl.EventKey, Key: tl.KeySpace})
			continue
		}
		cs.Tick(tl.Event{Type: tl.EventKey, Ch: r})
	}
}

func frameText(rows []frameRow) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.text
	}
	return out
}

func TestChatScreen_TickDrainsEventsInOrder(t *testing.T) {
	req := require.New(t)
	events := make(chan connection.Event, 8)
	cs := NewChatScreen(nil, events, slog.New(slog.NewTextHandler(io.Discard, nil)))

	events <- connection.ConnectedEvent{}
	events <- connection.InboundEvent{Message: protocol.Welcome{Message: "hi alice"}}
	events <- connection.InboundEvent{Message: protocol.Clients{Clients: []string{"alice", "bob"}}}
	events <- connection.InboundEvent{Message: protocol.ChatMessage{Sender: "bob", Message: "yo"}}
	events <- connection.InboundEvent{Message: protocol.Clients{Clients: []string{"bob"}}}

	cs.Tick(tl.Event{Type: tl.EventNone})

	req.Equal([]string{"System: hi alice", "bob: yo"}, cs.view.Lines())
	req.Equal([]string{"bob"}, cs.view.Roster())
	req.Len(events, 0)
}

func TestChatScreen_EnterSubmitsTrimmedInput(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	sender := mocks.NewMockSender(ctrl)
	sender.EXPECT().SendText("hello").Return(nil).Times(1)

	cs := NewChatScreen(sender, make(chan connection.Event), slog.New(slog.NewTextHandler(io.Discard, nil)))
	keyRunes(cs, " hellp")
	cs.Tick(tl.Event{Type: tl.EventKey, Key: tl.KeyBackspace2})
	keyRunes(cs, "o ")
	req.Equal(" hello ", string(cs.input))

	cs.Tick(tl.Event{Type: tl.EventKey, Key: tl.KeyEnter})
	req.Empty(cs.input)
}

func TestChatScreen_EnterOnBlankKeepsInput(t *testing.T) {
	ctrl := gomock.NewController(t)
	sender := mocks.NewMockSender(ctrl)
	sender.EXPECT().SendText(gomock.Any()).Times(0)

	cs := NewChatScreen(sender, make(chan connection.Event), slog.New(slog.NewTextHandler(io.Discard, nil)))
	keyRunes(cs, "  ")
	cs.Tick(tl.Event{Type: tl.EventKey, Key: tl.KeyEnter})

	require.Equal(t, "  ", string(cs.input))
}

func TestChatScreen_FramePinsChatToBottom(t *testing.T) {
	req := require.New(t)
	events := make(chan connection.Event, 16)
	cs := NewChatScreen(nil, events, slog.New(slog.NewTextHandler(io.Discard, nil)))
	for _, text := range []string{"one", "two", "three", "four", "five"} {
		events <- connection.InboundEvent{Message: protocol.ChatMessage{Sender: "bob", Message: text}}
	}
	events <- connection.InboundEvent{Message: protocol.Clients{Clients: []string{"a", "b", "c", "d", "e", "f"}}}
	cs.Tick(tl.Event{Type: tl.EventNone})
	keyRunes(cs, "draft")

	// title + 3 names (a third of 11) + rule + 4 chat rows + rule + input
	rows := frameText(cs.frame(20, 11))

	req.Len(rows, 11)
	req.Equal("Online (6)  1-3 ↑↓", rows[0])
	req.Equal([]string{"a", "b", "c"}, rows[1:4])
	req.Equal([]string{"bob: two", "bob: three", "bob: four", "bob: five"}, rows[5:9])
	req.Equal("> draft", rows[10])
}

func TestChatScreen_ArrowKeysReachEveryRosterName(t *testing.T) {
	req := require.New(t)
	events := make(chan connection.Event, 1)
	cs := NewChatScreen(nil, events, slog.New(slog.NewTextHandler(io.Discard, nil)))
	cs.height = 11
	events <- connection.InboundEvent{Message: protocol.Clients{Clients: []string{"a", "b", "c", "d", "e", "f", "g"}}}
	cs.Tick(tl.Event{Type: tl.EventNone})

	seen := map[string]bool{}
	for i := 0; i < 10; i++ {
		for _, name := range frameText(cs.frame(20, 11))[1:4] {
			seen[name] = true
		}
		cs.Tick(tl.Event{Type: tl.EventKey, Key: tl.KeyArrowDown})
	}
	req.Len(seen, 7)
	req.Equal(4, cs.rosterOffset)
	req.Equal("Online (7)  5-7 ↑↓", frameText(cs.frame(20, 11))[0])

	cs.Tick(tl.Event{Type: tl.EventKey, Key: tl.KeyArrowUp})
	req.Equal([]string{"d", "e", "f"}, frameText(cs.frame(20, 11))[1:4])
}

func TestChatScreen_ShortRosterIsNotScrolled(t *testing.T) {
	events := make(chan connection.Event, 1)
	cs := NewChatScreen(nil, events, slog.New(slog.NewTextHandler(io.Discard, nil)))
	events <- connection.InboundEvent{Message: protocol.Clients{Clients: []string{"alice", "bob"}}}
	cs.Tick(tl.Event{Type: tl.EventNone})

	rows := frameText(cs.frame(20, 12))
	require.Equal(t, []string{"Online (2)", "alice", "bob"}, rows[:3])
}

func TestFitTail(t *testing.T) {
	require.Equal(t, "> hi", fitTail("> hi", 10))
	require.Equal(t, "cdef", fitTail("abcdef", 4))
	// two cells per rune: only as many runes as needed are dropped
	require.Equal(t, "本語x", fitTail("> 日本語x", 5))
	require.Equal(t, "語x", fitTail("> 日本語x", 4))
	require.Equal(t, "", fitTail("日本", 1))
}

func TestWrapCells(t *testing.T) {
	require.Equal(t, []string{"abcd", "ef"}, wrapCells("abcdef", 4))
	require.Equal(t, []string{""}, wrapCells("", 4))
	// wide runes take two cells each
	require.Equal(t, []string{"日本", "語"}, wrapCells("日本語", 4))
	require.Equal(t, "bob: hi", strings.Join(wrapCells("bob: hi", 80), ""))
}
