package game

import "encoding/json"

// Messaging fabric: unicast to a connection, broadcast to a session's
// participants, and broadcast to the opponent of a given connection. Session
// broadcast scans the registry for connections bound to the same gameID.

func outbound(method string, success bool, data any) []byte {
	env := Envelope{Method: method, Success: &success}
	if data != nil {
		env.Data = mustJSON(data)
	}
	b, _ := json.Marshal(env)
	return b
}

func (s *Server) sendTo(c *Conn, method string, success bool, data any) {
	if c == nil {
		return
	}
	c.push(outbound(method, success, data))
}

func (s *Server) sendToID(connID, method string, success bool, data any) {
	if c, ok := s.registry.Resolve(connID); ok {
		c.push(outbound(method, success, data))
	}
}

func (s *Server) broadcastGame(gameID, method string, success bool, data any) {
	msg := outbound(method, success, data)
	s.registry.ForEach(
		func(c *Conn) bool { return c.gameID == gameID },
		func(c *Conn) { c.push(msg) },
	)
}

// sendOpponent unicasts to the other player of sess. A missing or
// disconnected opponent is a valid outcome and the message is simply lost.
func (s *Server) sendOpponent(sess *Session, connID, method string, success bool, data any) {
	opp := sess.opponent(connID)
	if opp.connID == "" {
		return
	}
	s.sendToID(opp.connID, method, success, data)
}

func mustJSON(v any) json.RawMessage {
	b, _ := json.Marshal(v)
	return b
}
