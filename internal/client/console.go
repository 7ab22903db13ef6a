package client

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/gookit/color"
	"github.com/yourusername/termchat/internal/client/chat"
	"github.com/yourusername/termchat/internal/client/connection"
	"github.com/yourusername/termchat/internal/config"
	"github.com/yourusername/termchat/internal/protocol"
)

var (
	systemLineStyle = color.New(color.FgGray, color.OpItalic)
	userLineStyle   = color.New(color.FgDefault)
	rosterLineStyle = color.New(color.FgGreen, color.OpBold)
)

// Console renders the view as plain lines, for pipes and dumb terminals.
// Only the newest entry is printed on each update, so the output is the chat log itself.
type Console struct {
	out  io.Writer
	view chat.View
}

// NewConsole creates a console writing to out
func NewConsole(out io.Writer) *Console {
	return &Console{out: out, view: chat.NewView()}
}

// View returns the current view model
func (c *Console) View() chat.View {
	return c.view
}

// Handle applies one connection event and prints what changed
func (c *Console) Handle(event connection.Event) {
	in, ok := event.(connection.InboundEvent)
	if !ok {
		return
	}

	var appended bool
	c.view, appended = c.view.Apply(in.Message)
	if appended {
		entries := c.view.Entries()
		c.printEntry(entries[len(entries)-1])
		return
	}
	if _, ok := in.Message.(protocol.Clients); ok {
		c.printRoster(c.view.Roster())
	}
}

func (c *Console) printEntry(e chat.Entry) {
	style := userLineStyle
	if e.Category == chat.CategorySystem {
		style = systemLineStyle
	}
	fmt.Fprintln(c.out, style.Sprint(chat.Printable(e.Line())))
}

func (c *Console) printRoster(roster []string) {
	names := make([]string, len(roster))
	for i, name := range roster {
		names[i] = chat.Printable(name)
	}
	line := "Online (" + strconv.Itoa(len(roster)) + "): " + strings.Join(names, ", ")
	fmt.Fprintln(c.out, rosterLineStyle.Sprint(line))
}

// RunPlain connects, prints the chat to out and sends each line read from in.
// It returns when in is exhausted, ctx is cancelled or the server goes away.
func RunPlain(ctx context.Context, cfg config.Config, log *slog.Logger, in io.Reader, out io.Writer) error {
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

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	console := NewConsole(out)
	for {
		select {
		case <-ctx.Done():
			return nil

		case e := <-events:
			if d, ok := e.(connection.DisconnectedEvent); ok {
				return d.Error
			}
			console.Handle(e)

		case line, ok := <-lines:
			if !ok {
				return nil
			}
			if _, err := chat.Submit(line, mgr); err != nil {
				log.Warn("message dropped", "error", err)
			}
		}
	}
}
