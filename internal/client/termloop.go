package client

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	tl "github.com/JoelOtter/termloop"
	"github.com/mattn/go-runewidth"
	"github.com/yourusername/termchat/internal/client/chat"
	"github.com/yourusername/termchat/internal/client/connection"
	"github.com/yourusername/termchat/internal/config"
)

// frameRow is one screen row of the termloop layout
type frameRow struct {
	text string
	fg   tl.Attr
}

// TermloopChat draws the chat with termloop instead of Bubble Tea
type TermloopChat struct {
	game   *tl.Game
	level  *tl.BaseLevel
	screen *ChatScreen
}

// NewTermloopChat creates the game, its level and the single chat entity
func NewTermloopChat(sender chat.Sender, events <-chan connection.Event, log *slog.Logger) *TermloopChat {
	game := tl.NewGame()
	level := tl.NewBaseLevel(tl.Cell{
		Bg: tl.ColorDefault,
		Fg: tl.ColorDefault,
		Ch: ' ',
	})
	game.Screen().SetLevel(level)

	screen := NewChatScreen(sender, events, log)
	level.AddEntity(screen)

	return &TermloopChat{game: game, level: level, screen: screen}
}

// Start blocks until the user presses Ctrl+C
func (tc *TermloopChat) Start() {
	tc.game.Start()
}

// RunTermloop connects and runs the termloop interface
func RunTermloop(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	url, err := cfg.DialURL()
	if err != nil {
		return err
	}

	mgr := connection.NewManager(url, log)
	events := make(chan connection.Event, 256)
	mgr.OnEvent(func(e connection.Event) {
		events <- e
	})

	if err := mgr.Connect(ctx); err != nil {
		return err
	}
	defer mgr.Close()

	log.Info("starting termloop chat", "url", url)
	NewTermloopChat(mgr, events, log).Start()
	return nil
}

// ChatScreen is the termloop entity holding the view model.
// Events are drained and keys handled in Tick, so everything runs on the game loop.
type ChatScreen struct {
	sender chat.Sender
	events <-chan connection.Event
	log    *slog.Logger
	view   chat.View
	input  []rune

	rosterOffset int // first roster name shown
	height       int // screen rows at the last Draw, for roster scrolling
}

// NewChatScreen creates the chat entity
func NewChatScreen(sender chat.Sender, events <-chan connection.Event, log *slog.Logger) *ChatScreen {
	return &ChatScreen{
		sender: sender,
		events: events,
		log:    log,
		view:   chat.NewView(),
	}
}

// Tick applies pending connection events, then the key event if any
func (cs *ChatScreen) Tick(event tl.Event) {
	cs.drain()

	if event.Type != tl.EventKey {
		return
	}

	switch event.Key {
	case tl.KeyEnter:
		remaining, err := chat.Submit(string(cs.input), cs.sender)
		if err != nil {
			cs.log.Warn("message dropped", "error", err)
		}
		cs.input = []rune(remaining)
	case tl.KeyBackspace, tl.KeyBackspace2:
		if len(cs.input) > 0 {
			cs.input = cs.input[:len(cs.input)-1]
		}
	case tl.KeySpace:
		cs.input = append(cs.input, ' ')
	case tl.KeyArrowUp:
		cs.rosterOffset = max(cs.rosterOffset-1, 0)
	case tl.KeyArrowDown:
		cs.rosterOffset = min(cs.rosterOffset+1, cs.maxRosterOffset())
	default:
		if event.Ch != 0 {
			cs.input = append(cs.input, event.Ch)
		}
	}
}

// drain applies every event already queued without blocking the game loop
func (cs *ChatScreen) drain() {
	for {
		select {
		case e := <-cs.events:
			if in, ok := e.(connection.InboundEvent); ok {
				cs.view, _ = cs.view.Apply(in.Message)
			}
		default:
			return
		}
	}
}

// Draw renders the current frame
func (cs *ChatScreen) Draw(screen *tl.Screen) {
	w, h := screen.Size()
	cs.height = h
	for y, row := range cs.frame(w, h) {
		x := 0
		for _, ch := range row.text {
			screen.RenderCell(x, y, &tl.Cell{Fg: row.fg, Ch: ch})
			x += runewidth.RuneWidth(ch)
		}
	}
}

// maxRosterOffset keeps the last name on screen at the size of the last Draw
func (cs *ChatScreen) maxRosterOffset() int {
	names := len(cs.view.Roster())
	return max(names-rosterHeight(names, cs.height), 0)
}

// rosterHeight is how many names fit: all of them, up to a third of h
func rosterHeight(names, h int) int {
	return min(max(names, 1), max(h/3, 1))
}

// frame lays out roster, separator, chat (pinned to the bottom) and input in h rows of w cells
func (cs *ChatScreen) frame(w, h int) []frameRow {
	if w < 1 || h < 1 {
		return nil
	}
	rule := frameRow{text: strings.Repeat("─", w), fg: tl.ColorDefault}

	roster := cs.view.Roster()
	height := rosterHeight(len(roster), h)
	offset := min(cs.rosterOffset, max(len(roster)-height, 0))

	title := "Online (" + strconv.Itoa(len(roster)) + ")"
	if len(roster) > height {
		title += "  " + strconv.Itoa(offset+1) + "-" + strconv.Itoa(offset+height) + " ↑↓"
	}
	rows := []frameRow{{text: title, fg: tl.ColorGreen | tl.AttrBold}}
	for _, name := range roster[offset:min(offset+height, len(roster))] {
		rows = append(rows, frameRow{text: runewidth.Truncate(chat.Printable(name), w, "…"), fg: tl.ColorGreen | tl.AttrBold})
	}
	for len(rows) < height+1 {
		rows = append(rows, frameRow{})
	}
	rows = append(rows, rule)

	chatHeight := h - len(rows) - 2
	var chatRows []frameRow
	for _, e := range cs.view.Entries() {
		fg := tl.ColorDefault
		if e.Category == chat.CategorySystem {
			fg = tl.ColorCyan
		}
		for _, part := range wrapCells(chat.Printable(e.Line()), w) {
			chatRows = append(chatRows, frameRow{text: part, fg: fg})
		}
	}
	if chatHeight > 0 {
		if len(chatRows) > chatHeight {
			chatRows = chatRows[len(chatRows)-chatHeight:]
		}
		for len(chatRows) < chatHeight {
			chatRows = append([]frameRow{{}}, chatRows...)
		}
		rows = append(rows, chatRows...)
	}

	input := fitTail("> "+chat.Printable(string(cs.input)), w)
	rows = append(rows, rule, frameRow{text: input, fg: tl.ColorWhite | tl.AttrBold})

	if len(rows) > h {
		rows = rows[len(rows)-h:]
	}
	return rows
}

// fitTail drops leading runes until s fits in w cells, keeping the end of a long input visible
func fitTail(s string, w int) string {
	r := []rune(s)
	width := runewidth.StringWidth(s)
	for len(r) > 0 && width > w {
		width -= runewidth.RuneWidth(r[0])
		r = r[1:]
	}
	return string(r)
}

// wrapCells splits s into pieces at most w cells wide
func wrapCells(s string, w int) []string {
	var parts []string
	var cur []rune
	width := 0
	for _, r := range s {
		rw := runewidth.RuneWidth(r)
		if width+rw > w && len(cur) > 0 {
			parts = append(parts, string(cur))
			cur, width = nil, 0
		}
		cur = append(cur, r)
		width += rw
	}
	return append(parts, string(cur))
}
