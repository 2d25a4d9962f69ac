package game

import (
	"crypto/rand"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"example.com/wordduel/internal/words"
)

// Config holds the game server knobs.
type Config struct {
	// CountdownDelay is the pause between both players readying up and the
	// game actually starting.
	CountdownDelay time.Duration

	// QueueNoticePeriod is how often a waiting matchmaking player gets a
	// still-searching notice.
	QueueNoticePeriod time.Duration
}

// Server is the connection-handling game server: session store, matchmaking
// queue and message dispatch. All game state (sessions, queue slot, the
// gameID binding on connections) is serialized under mu.
type Server struct {
	mu sync.Mutex

	cfg   Config
	log   *slog.Logger
	words *words.List

	registry *Registry
	sessions *SessionStore
	queue    queueSlot
}

func NewServer(cfg Config, log *slog.Logger, wl *words.List) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{
		cfg:      cfg,
		log:      log,
		words:    wl,
		registry: NewRegistry(),
		sessions: NewSessionStore(),
	}
}

func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/websockets", s.handleWebsocket)
	mux.HandleFunc("/api/stats", s.handleStats)
}

// Counts is the observability snapshot exposed on /api/stats.
type Counts struct {
	Connected int `json:"connected"`
	Lobby     int `json:"lobby"`
	InGame    int `json:"inGame"`
	Sessions  int `json:"sessions"`
	Answers   int `json:"answers"`
	Allowed   int `json:"allowed"`
}

func (s *Server) Stats() Counts {
	s.mu.Lock()
	defer s.mu.Unlock()

	var c Counts
	s.registry.ForEach(
		func(*Conn) bool { return true },
		func(conn *Conn) {
			c.Connected++
			if conn.gameID == "" {
				c.Lobby++
			} else {
				c.InGame++
			}
		},
	)
	c.Sessions = s.sessions.Len()
	c.Answers, c.Allowed = s.words.Counts()
	return c
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, s.Stats())
}

// randID produces a short shareable game code.
func randID(n int) string {
	const alphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
	b := make([]byte, n)
	_, _ = rand.Read(b)
	for i := range b {
		b[i] = alphabet[int(b[i])%len(alphabet)]
	}
	return string(b)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
