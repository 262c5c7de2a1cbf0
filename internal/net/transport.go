// Package net publishes drawing changes to read-only viewers over
// WebSocket and announces the feed on the local network.
package net

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// FeedPath is where the hub is mounted by Serve.
const FeedPath = "/feed"

// Message types.
const (
	TypeStroke = "stroke"
	TypeUndo   = "undo"
	TypeClear  = "clear"
	TypeImport = "import"
	TypeLoad   = "load"
	TypeSign   = "sign"
)

const (
	writeWait  = 5 * time.Second
	sendBuffer = 8
)

// Message is one change on the drawing.
type Message struct {
	Type    string `json:"type"`
	Session string `json:"session"`
	Seq     uint64 `json:"seq"`
	// Image is the drawing as a PNG data URL, empty when the pad is empty.
	Image   string `json:"image,omitempty"`
	Strokes int    `json:"strokes"`
}

type peer struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub fans messages out to every connected viewer. Viewers cannot draw:
// anything they send is discarded.
type Hub struct {
	session  string
	upgrader websocket.Upgrader

	mu     sync.RWMutex
	peers  map[*peer]struct{}
	last   []byte
	seq    uint64
	closed bool
}

// NewHub creates a hub with a fresh session ID.
func NewHub() *Hub {
	return &Hub{
		session: uuid.NewString(),
		peers:   make(map[*peer]struct{}),
		upgrader: websocket.Upgrader{
			// viewers are served from anywhere on the LAN
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Session identifies this drawing session to viewers.
func (h *Hub) Session() string {
	return h.session
}

// Count returns the number of connected viewers.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.peers)
}

// ServeHTTP upgrades the request and streams messages to the viewer,
// starting with the latest one.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("Feed upgrade failed: %v", err)
		return
	}

	p := &peer{conn: conn, send: make(chan []byte, sendBuffer)}
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		conn.Close()
		return
	}
	h.peers[p] = struct{}{}
	if h.last != nil {
		p.send <- h.last
	}
	h.mu.Unlock()
	log.Printf("Viewer connected: %s", conn.RemoteAddr())

	go h.writeLoop(p)
	h.readLoop(p)
}

func (h *Hub) readLoop(p *peer) {
	defer h.remove(p)
	for {
		if _, _, err := p.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writeLoop(p *peer) {
	defer p.conn.Close()
	for data := range p.send {
		p.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := p.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			log.Printf("Error sending to %s: %v", p.conn.RemoteAddr(), err)
			h.remove(p)
			return
		}
	}
	p.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(writeWait))
}

// remove drops p. It is safe to call more than once.
func (h *Hub) remove(p *peer) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.peers[p]; !ok {
		return
	}
	delete(h.peers, p)
	close(p.send)
	log.Printf("Viewer disconnected: %s", p.conn.RemoteAddr())
}

// Publish stamps msg with the session and the next sequence number and
// sends it to every viewer. Viewers that fall behind are dropped.
func (h *Hub) Publish(msg Message) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return nil
	}

	h.seq++
	msg.Session = h.session
	msg.Seq = h.seq
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	h.last = data

	for p := range h.peers {
		select {
		case p.send <- data:
		default:
			log.Printf("Viewer %s is too slow, dropping it", p.conn.RemoteAddr())
			delete(h.peers, p)
			close(p.send)
		}
	}
	return nil
}

// Close disconnects every viewer. Later publishes are ignored.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for p := range h.peers {
		delete(h.peers, p)
		close(p.send)
	}
}

// Serve runs the hub on listen until ctx is done. ready, if not nil, gets the
// bound address once the listener is open.
func Serve(ctx context.Context, listen string, h *Hub, ready func(addr net.Addr)) error {
	ln, err := net.Listen("tcp", listen)
	if err != nil {
		return err
	}
	mux := http.NewServeMux()
	mux.Handle(FeedPath, h)
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 10 * time.Second}

	go func() {
		<-ctx.Done()
		h.Close()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), writeWait)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	log.Printf("Feed listening on %s%s", ln.Addr(), FeedPath)
	if ready != nil {
		ready(ln.Addr())
	}
	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Watch connects to a feed and calls fn for every message until ctx is done
// or the connection drops.
func Watch(ctx context.Context, url string, fn func(Message)) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(writeWait))
			conn.Close()
		case <-done:
		}
	}()

	for {
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			if ctx.Err() != nil || websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				return nil
			}
			return err
		}
		fn(msg)
	}
}
