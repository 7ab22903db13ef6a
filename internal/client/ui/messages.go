package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/yourusername/termchat/internal/client/connection"
)

// connectionSuccessMsg is sent when connection is established
type connectionSuccessMsg struct{}

// connectionErrorMsg is sent when connection fails
type connectionErrorMsg struct {
	err error
}

// connectionEventMsg wraps events from the connection manager
type connectionEventMsg struct {
	event connection.Event
}

// tickMsg is sent periodically for animations
type tickMsg time.Time

// connectCmd opens the session's single connection. Failures are final.
func connectCmd(mgr *connection.Manager) tea.Cmd {
	return func() tea.Msg {
		if err := mgr.Connect(context.Background()); err != nil {
			return connectionErrorMsg{err: err}
		}
		return connectionSuccessMsg{}
	}
}

// listenForEventsCmd waits for the next connection event.
// Every handler re-issues it, so events reach Update one at a time and in order.
func listenForEventsCmd(eventChan <-chan connection.Event) tea.Cmd {
	return func() tea.Msg {
		return connectionEventMsg{event: <-eventChan}
	}
}

// tickCmd returns a command that sends tick messages for animations
func tickCmd() tea.Cmd {
	return tea.Tick(time.Millisecond*100, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
