package connection

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/yourusername/termchat/internal/protocol"
)

const (
	handshakeTimeout = 10 * time.Second
	writeWait        = 10 * time.Second
)

// ErrNotConnected is returned by SendText when the socket is not open
var ErrNotConnected = errors.New("not connected")

// Manager owns the single WebSocket connection to the chat server
type Manager struct {
	serverURL     string
	log           *slog.Logger
	conn          *websocket.Conn
	eventCallback func(Event)
	connected     bool
	mu            sync.RWMutex
	writeMu       sync.Mutex // gorilla allows one concurrent writer
	done          chan struct{}
}

// NewManager creates a new connection manager. Nothing is dialed until Connect.
func NewManager(serverURL string, log *slog.Logger) *Manager {
	return &Manager{
		serverURL: serverURL,
		log:       log,
		connected: false,
		done:      make(chan struct{}),
	}
}

// OnEvent sets the callback for events.
// It runs on the read goroutine, so a slow callback holds back later frames.
func (m *Manager) OnEvent(callback func(Event)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.eventCallback = callback
}

// ServerURL returns the URL this manager dials
func (m *Manager) ServerURL() string {
	return m.serverURL
}

// Connect dials the server once and starts the read loop. There is no retry.
func (m *Manager) Connect(ctx context.Context) error {
	m.mu.RLock()
	already := m.connected
	m.mu.RUnlock()
	if already {
		return nil
	}

	dialer := websocket.Dialer{
		HandshakeTimeout: handshakeTimeout,
	}

	conn, _, err := dialer.DialContext(ctx, m.serverURL, nil)
	if err != nil {
		err = fmt.Errorf("dial %s: %w", m.serverURL, err)
		m.sendEvent(DisconnectedEvent{Error: err})
		return err
	}

	m.mu.Lock()
	m.conn = conn
	m.connected = true
	m.done = make(chan struct{})
	done := m.done
	m.mu.Unlock()

	m.log.Info("connected", "url", m.serverURL)
	m.sendEvent(ConnectedEvent{})

	go m.readPump(conn, done)
	return nil
}

// Close sends a close frame and shuts the socket. The read loop then reports DisconnectedEvent.
func (m *Manager) Close() error {
	m.mu.Lock()
	if !m.connected || m.conn == nil {
		m.mu.Unlock()
		return nil
	}
	m.connected = false
	conn := m.conn
	m.mu.Unlock()

	m.writeMu.Lock()
	_ = conn.WriteControl(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(writeWait),
	)
	m.writeMu.Unlock()

	// the read loop may have closed it first after the server echoed our close
	if err := conn.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
		return err
	}
	return nil
}

// IsConnected returns whether the manager is connected
func (m *Manager) IsConnected() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.connected
}

// Done is closed when the current connection's read loop exits
func (m *Manager) Done() <-chan struct{} {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.done
}

// SendText writes text as a single text frame, unmodified
func (m *Manager) SendText(text string) error {
	m.mu.RLock()
	conn, connected := m.conn, m.connected
	m.mu.RUnlock()

	if !connected || conn == nil {
		return ErrNotConnected
	}

	m.writeMu.Lock()
	defer m.writeMu.Unlock()

	if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return fmt.Errorf("send text: %w", err)
	}
	if err := conn.WriteMessage(websocket.TextMessage, []byte(text)); err != nil {
		return fmt.Errorf("send text: %w", err)
	}
	return nil
}

// readPump reads frames until the socket fails or is closed
func (m *Manager) readPump(conn *websocket.Conn, done chan struct{}) {
	var readErr error
	defer func() {
		m.mu.Lock()
		if m.conn == conn {
			m.connected = false
		}
		m.mu.Unlock()
		conn.Close()
		close(done)
		m.log.Info("disconnected", "url", m.serverURL, "error", readErr)
		m.sendEvent(DisconnectedEvent{Error: readErr})
	}()

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				m.log.Warn("websocket error", "error", err)
				readErr = err
			}
			return
		}

		m.handleMessage(message)
	}
}

// handleMessage decodes one frame and forwards it.
// Any failure is logged with the raw payload and the frame is dropped.
func (m *Manager) handleMessage(data []byte) {
	defer func() {
		if r := recover(); r != nil {
			m.log.Error("chat client: error handling inbound message",
				"error", fmt.Sprint(r), "payload", string(data))
		}
	}()

	msg, err := protocol.DecodeInbound(data)
	if err != nil {
		m.log.Error("chat client: error handling inbound message",
			"error", err, "payload", string(data))
		return
	}

	m.log.Debug("inbound message", "type", msg.Type())
	m.sendEvent(InboundEvent{Message: msg})
}

// sendEvent sends an event to the callback if set
func (m *Manager) sendEvent(event Event) {
	m.mu.RLock()
	callback := m.eventCallback
	m.mu.RUnlock()

	if callback != nil {
		callback(event)
	}
}
