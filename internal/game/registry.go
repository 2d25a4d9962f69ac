package game

import (
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Conn is one live client transport. The send channel is drained by a writer
// goroutine; pushes never block, a slow client just loses the message.
type Conn struct {
	ID   string
	ws   *websocket.Conn
	send chan []byte

	// gameID is the session this connection belongs to, "" if none.
	// Touched only under the owning Server's mutex.
	gameID string

	closeOnce sync.Once
}

func (c *Conn) Close() {
	c.closeOnce.Do(func() {
		close(c.send)
		if c.ws != nil {
			_ = c.ws.Close()
		}
	})
}

func (c *Conn) push(b []byte) {
	select {
	case c.send <- b:
	default:
	}
}

// Registry tracks every live connection by its ephemeral identifier.
// Absence is a valid outcome: callers must check the Resolve bool.
type Registry struct {
	mu    sync.Mutex
	conns map[string]*Conn
}

func NewRegistry() *Registry {
	return &Registry{conns: make(map[string]*Conn)}
}

func (r *Registry) Register(ws *websocket.Conn) *Conn {
	c := &Conn{
		ID:   uuid.NewString(),
		ws:   ws,
		send: make(chan []byte, 64),
	}
	r.mu.Lock()
	r.conns[c.ID] = c
	r.mu.Unlock()
	return c
}

func (r *Registry) Unregister(id string) {
	r.mu.Lock()
	delete(r.conns, id)
	r.mu.Unlock()
}

func (r *Registry) Resolve(id string) (*Conn, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.conns[id]
	return c, ok
}

// ForEach runs fn on every connection matching pred. Iteration order is map
// order; cross-client delivery order is not guaranteed.
func (r *Registry) ForEach(pred func(*Conn) bool, fn func(*Conn)) {
	r.mu.Lock()
	matched := make([]*Conn, 0, len(r.conns))
	for _, c := range r.conns {
		if pred(c) {
			matched = append(matched, c)
		}
	}
	r.mu.Unlock()

	for _, c := range matched {
		fn(c)
	}
}
