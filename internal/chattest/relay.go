// Package chattest runs an in-process chat server that speaks the same three
// message shapes as the real one, so clients can be exercised end to end.
package chattest

import (
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/samber/lo"
	"github.com/yourusername/termchat/internal/protocol"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Received is one text frame a client sent to the relay
type Received struct {
	Sender string
	Text   string
}

// peer is one connected client
type peer struct {
	name string
	conn *websocket.Conn
	send chan []byte
}

// Relay greets each client, keeps every client's roster current and
// broadcasts every text frame as a chat message from its sender.
type Relay struct {
	srv *httptest.Server

	peers      map[*peer]struct{}
	register   chan *peer
	unregister chan *peer
	broadcast  chan []byte
	received   chan Received

	done      chan struct{}
	closeOnce sync.Once
}

// NewRelay starts a relay that is shut down when the test ends
func NewRelay(tb testing.TB) *Relay {
	tb.Helper()
	r := &Relay{
		peers:      make(map[*peer]struct{}),
		register:   make(chan *peer),
		unregister: make(chan *peer),
		broadcast:  make(chan []byte, 256),
		received:   make(chan Received, 64),
		done:       make(chan struct{}),
	}
	go r.run()

	mux := http.NewServeMux()
	mux.HandleFunc("/websocket", r.handleWebSocket)
	r.srv = httptest.NewServer(mux)

	tb.Cleanup(r.Close)
	return r
}

// URL is the ws:// address clients dial
func (r *Relay) URL() string {
	return "ws" + strings.TrimPrefix(r.srv.URL, "http") + "/websocket"
}

// Received yields every text frame clients sent, in arrival order
func (r *Relay) Received() <-chan Received {
	return r.received
}

// Broadcast sends msg to every connected client
func (r *Relay) Broadcast(msg protocol.Inbound) error {
	data, err := protocol.EncodeInbound(msg)
	if err != nil {
		return err
	}
	r.BroadcastRaw(data)
	return nil
}

// BroadcastRaw sends data unchanged, for payloads a real server would never produce
func (r *Relay) BroadcastRaw(data []byte) {
	select {
	case r.broadcast <- data:
	case <-r.done:
	}
}

// Close disconnects every client with a normal closure and stops the server
func (r *Relay) Close() {
	r.closeOnce.Do(func() {
		close(r.done)
		r.srv.Close()
	})
}

func (r *Relay) run() {
	for {
		select {
		case p := <-r.register:
			r.peers[p] = struct{}{}
			r.publishRoster()
			p.send <- mustEncode(protocol.Welcome{Message: "Welcome to the chat, " + p.name + "!"})

		case p := <-r.unregister:
			if _, ok := r.peers[p]; ok {
				delete(r.peers, p)
				close(p.send)
				r.publishRoster()
			}

		case data := <-r.broadcast:
			r.fanOut(data)

		case <-r.done:
			for p := range r.peers {
				close(p.send)
			}
			clear(r.peers)
			return
		}
	}
}

func (r *Relay) publishRoster() {
	names := lo.Uniq(lo.Map(lo.Keys(r.peers), func(p *peer, _ int) string {
		return p.name
	}))
	slices.Sort(names)
	r.fanOut(mustEncode(protocol.Clients{Clients: names}))
}

func (r *Relay) fanOut(data []byte) {
	for p := range r.peers {
		select {
		case p.send <- data:
		default:
			close(p.send)
			delete(r.peers, p)
		}
	}
}

func (r *Relay) handleWebSocket(w http.ResponseWriter, req *http.Request) {
	name := req.URL.Query().Get("username")
	if name == "" {
		name = "User-" + uuid.NewString()[:8]
	}

	conn, err := upgrader.Upgrade(w, req, nil)
	if err != nil {
		return
	}

	p := &peer{name: name, conn: conn, send: make(chan []byte, 256)}
	select {
	case r.register <- p:
	case <-r.done:
		conn.Close()
		return
	}

	go r.writePump(p)
	go r.readPump(p)
}

func (r *Relay) readPump(p *peer) {
	defer func() {
		select {
		case r.unregister <- p:
		case <-r.done:
		}
		p.conn.Close()
	}()

	p.conn.SetReadDeadline(time.Now().Add(pongWait))
	p.conn.SetPongHandler(func(string) error {
		p.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := p.conn.ReadMessage()
		if err != nil {
			return
		}
		text := string(data)

		select {
		case r.received <- Received{Sender: p.name, Text: text}:
		default:
		}
		r.BroadcastRaw(mustEncode(protocol.ChatMessage{Sender: p.name, Message: text}))
	}
}

// writePump sends one frame per message; clients decode each frame as a single object
func (r *Relay) writePump(p *peer) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		p.conn.Close()
	}()

	for {
		select {
		case data, ok := <-p.send:
			p.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				p.conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := p.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}

		case <-ticker.C:
			p.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := p.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func mustEncode(msg protocol.Inbound) []byte {
	data, err := protocol.EncodeInbound(msg)
	if err != nil {
		panic(err)
	}
	return data
}
