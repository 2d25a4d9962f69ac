package game

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

const pingPeriod = 25 * time.Second

// handleWebsocket is the single transport entry point. One goroutine reads,
// one drains the send channel; everything the reader triggers funnels
// through dispatch.
func (s *Server) handleWebsocket(w http.ResponseWriter, r *http.Request) {
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	c := s.registry.Register(ws)
	s.log.Info("client connected", "conn", c.ID)

	go func() {
		ticker := time.NewTicker(pingPeriod)
		defer ticker.Stop()

		for {
			select {
			case msg, ok := <-c.send:
				if !ok {
					return
				}
				_ = ws.WriteMessage(websocket.TextMessage, msg)
			case <-ticker.C:
				_ = ws.WriteMessage(websocket.PingMessage, []byte{})
			}
		}
	}()

	for {
		_, data, err := ws.ReadMessage()
		if err != nil {
			break
		}

		var env Envelope
		if err := json.Unmarshal(data, &env); err != nil {
			// malformed envelopes are dropped, not answered
			continue
		}
		s.dispatch(c, env)
	}

	s.disconnect(c)
	s.registry.Unregister(c.ID)
	c.Close()
	s.log.Info("client disconnected", "conn", c.ID)
}
