package ui

import (
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/yourusername/termchat/internal/client/chat"
	"github.com/yourusername/termchat/internal/client/connection"
	"github.com/yourusername/termchat/internal/config"
)

// ViewState represents the current view in the TUI
type ViewState int

const (
	ViewUsernameEntry ViewState = iota
	ViewLoading
	ViewChat
)

const eventBuffer = 256

// Model is the main Bubble Tea model
type Model struct {
	viewState ViewState
	cfg       config.Config
	log       *slog.Logger
	connMgr   *connection.Manager   // created once the name is known, then kept for the session
	sender    chat.Sender           // connMgr in production
	eventChan chan connection.Event // Channel for connection events

	usernameInput string
	width         int
	height        int
	err           error
	loadingDots   int

	// Chat system
	view         chat.View
	chatInput    string // Current chat input
	scrollOffset int    // rows above the bottom; every new entry resets it
	rosterOffset int    // first roster row shown when the roster is taller than its panel
}

// NewModel creates the model. Without a configured name it asks for one first.
func NewModel(cfg config.Config, log *slog.Logger) Model {
	m := Model{
		viewState: ViewUsernameEntry,
		cfg:       cfg,
		log:       log,
		eventChan: make(chan connection.Event, eventBuffer),
		width:     80,
		height:    24,
		view:      chat.NewView(),
	}
	if cfg.Username != "" {
		m = m.withConnection(cfg.Username)
	}
	return m
}

// withConnection builds the session's connection manager for name and moves to the loading screen
func (m Model) withConnection(name string) Model {
	m.cfg.Username = name
	url, err := m.cfg.DialURL()
	if err != nil {
		m.err = err
		m.viewState = ViewLoading
		return m
	}

	eventChan := m.eventChan
	m.connMgr = connection.NewManager(url, m.log)
	m.connMgr.OnEvent(func(event connection.Event) {
		eventChan <- event
	})
	m.sender = m.connMgr
	m.viewState = ViewLoading
	return m
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	if m.viewState == ViewLoading {
		return m.connectCmds()
	}
	return nil
}

func (m Model) connectCmds() tea.Cmd {
	if m.connMgr == nil {
		return nil
	}
	return tea.Batch(
		connectCmd(m.connMgr),
		tickCmd(),
		listenForEventsCmd(m.eventChan),
	)
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch m.viewState {
		case ViewUsernameEntry:
			return m.updateUsernameEntry(msg)
		case ViewLoading:
			return m.updateLoading(msg)
		case ViewChat:
			return m.updateChat(msg)
		}

	case connectionSuccessMsg:
		m.err = nil
		m.viewState = ViewChat
		return m, nil

	case connectionErrorMsg:
		// no retry: stay on the loading screen with the error
		m.err = msg.err
		m.log.Error("connect failed", "error", msg.err)
		return m, nil

	case connectionEventMsg:
		return m.handleConnectionEvent(msg.event)

	case tickMsg:
		if m.viewState == ViewLoading && m.err == nil {
			m.loadingDots = (m.loadingDots + 1) % 4
			return m, tickCmd()
		}
		return m, nil
	}

	return m, nil
}

// View renders the current view
func (m Model) View() string {
	switch m.viewState {
	case ViewUsernameEntry:
		return m.viewUsernameEntry()
	case ViewLoading:
		return m.viewLoading()
	case ViewChat:
		return m.viewChat()
	}
	return ""
}

// Disconnect closes the session's connection, if any
func (m *Model) Disconnect() {
	if m.connMgr != nil {
		if err := m.connMgr.Close(); err != nil {
			m.log.Warn("close failed", "error", err)
		}
	}
}

// ChatView exposes the view model, mostly for callers that run the program and inspect it afterwards
func (m Model) ChatView() chat.View {
	return m.view
}

func (m Model) handleConnectionEvent(event connection.Event) (tea.Model, tea.Cmd) {
	switch e := event.(type) {
	case connection.InboundEvent:
		var appended bool
		m.view, appended = m.view.Apply(e.Message)
		if appended {
			m.scrollOffset = 0
		}

	case connection.DisconnectedEvent:
		// no reconnect and no notice on screen; the chat stays as it was
		m.log.Info("connection lost", "error", e.Error)
	}

	return m, listenForEventsCmd(m.eventChan)
}
