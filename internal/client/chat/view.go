// Package chat holds the client's view model: the chat log and the roster.
// Updates are pure: every method returns a new View and leaves the receiver untouched.
// Rendering lives elsewhere (ui, termloop, console).
package chat

import (
	"github.com/samber/lo"
	"github.com/yourusername/termchat/internal/protocol"
)

// SystemSender labels messages that come from the server itself
const SystemSender = "System"

// Category drives presentation only
type Category int

const (
	CategoryUser Category = iota
	CategorySystem
)

func (c Category) String() string {
	if c == CategorySystem {
		return "system"
	}
	return "user"
}

// Entry is one rendered chat line
type Entry struct {
	Sender   string
	Text     string
	Category Category
}

// Line is the literal text shown for the entry
func (e Entry) Line() string {
	return e.Sender + ": " + e.Text
}

// View is the whole client-side state
type View struct {
	entries []Entry
	roster  []string
}

// NewView creates an empty view
func NewView() View {
	return View{}
}

// Entries returns the chat log, oldest first
func (v View) Entries() []Entry {
	return append([]Entry(nil), v.entries...)
}

// Roster returns the last roster received
func (v View) Roster() []string {
	return append([]string(nil), v.roster...)
}

// Lines returns every entry's display text
func (v View) Lines() []string {
	return lo.Map(v.entries, func(e Entry, _ int) string {
		return e.Line()
	})
}

// Append adds an entry at the end of the log. The log is never trimmed.
func (v View) Append(e Entry) View {
	entries := make([]Entry, len(v.entries), len(v.entries)+1)
	copy(entries, v.entries)
	v.entries = append(entries, e)
	return v
}

// SetRoster replaces the roster with clients exactly, order and duplicates kept
func (v View) SetRoster(clients []string) View {
	v.roster = append(make([]string, 0, len(clients)), clients...)
	return v
}

// Apply folds one decoded server message into the view.
// The second result reports whether an entry was appended, so renderers know to scroll.
func (v View) Apply(msg protocol.Inbound) (View, bool) {
	switch m := msg.(type) {
	case protocol.Welcome:
		return v.Append(Entry{Sender: SystemSender, Text: m.Message, Category: CategorySystem}), true
	case protocol.ChatMessage:
		return v.Append(Entry{Sender: m.Sender, Text: m.Message, Category: CategoryUser}), true
	case protocol.Clients:
		return v.SetRoster(m.Clients), false
	}
	return v, false
}
