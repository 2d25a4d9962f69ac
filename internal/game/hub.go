package game

import (
	"encoding/json"
	"strings"
	"time"
)

// dispatch routes one inbound envelope. Every protocol method is handled
// here; anything else is answered with a structured failure rather than
// silently ignored. Payloads that fail to decode are dropped, matching the
// malformed-envelope policy.
func (s *Server) dispatch(c *Conn, env Envelope) {
	switch env.Method {
	case "create-game":
		s.createGame(c)
	case "join-game":
		var d JoinGameData
		if json.Unmarshal(env.Data, &d) != nil {
			return
		}
		s.joinGame(c, d.GameID)
	case "player-ready":
		s.playerReady(c)
	case "update-letter":
		s.relayCursor(c, "update-opponent-letter", env.Data)
	case "update-backspace":
		s.relayCursor(c, "update-opponent-backspace", env.Data)
	case "make-guess":
		var d MakeGuessData
		if json.Unmarshal(env.Data, &d) != nil {
			return
		}
		s.makeGuess(c, d.Guess)
	case "request-rematch":
		s.requestRematch(c)
	case "join-public-game":
		s.joinPublicGame(c)
	case "ping":
		s.sendTo(c, "pong", true, nil)
	default:
		s.sendTo(c, env.Method, false, FailureData{Message: "unknown method"})
	}
}

func (s *Server) createGame(c *Conn) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// creating a game abandons any matchmaking wait
	s.cancelQueueLocked(c.ID)

	sess := NewSession(randID(6), c.ID)
	s.sessions.Put(sess)
	c.gameID = sess.id

	s.log.Info("session created", "game", sess.id, "conn", c.ID)

	s.sendTo(c, "set-player-number", true, PlayerNumberData{Number: "one"})
	s.sendTo(c, "create-game", true, sess.view())
}

func (s *Server) joinGame(c *Conn, gameID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cancelQueueLocked(c.ID)

	sess, ok := s.sessions.Get(gameID)
	if !ok {
		s.sendTo(c, "join-game", false, FailureData{Message: "game not found"})
		return
	}
	if sess.status != StatusWaitingForPlayerTwo {
		s.sendTo(c, "join-game", false, FailureData{Message: "game already playing"})
		return
	}
	if sess.two.connID != "" {
		s.sendTo(c, "join-game", false, FailureData{Message: "game already has two players"})
		return
	}
	if sess.one.connID == c.ID {
		s.sendTo(c, "join-game", false, FailureData{Message: "you are already in this game"})
		return
	}

	sess.two = playerState{connID: c.ID}
	sess.status = StatusWaitingForReady
	c.gameID = sess.id

	s.sendTo(c, "set-player-number", true, PlayerNumberData{Number: "two"})
	s.broadcastGame(sess.id, "join-game", true, sess.view())
}

func (s *Server) playerReady(c *Conn) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, p, slot := s.memberLocked(c, "player-ready")
	if sess == nil {
		return
	}
	if sess.status != StatusWaitingForReady {
		s.sendTo(c, "player-ready", false, FailureData{Message: "game is not waiting for ready"})
		return
	}

	p.ready = true
	s.broadcastGame(sess.id, "player-ready", true, PlayerReadyData{Player: slot})

	if sess.bothReady() {
		sess.status = StatusCountdown
		s.broadcastGame(sess.id, "begin-countdown", true, nil)
		s.armCountdownLocked(sess)
	}
}

// armCountdownLocked schedules the Countdown→Playing transition. The token
// invalidates earlier timers: the callback re-checks status, existence and
// token before mutating anything, since the session may have moved on or
// been torn down in the interim.
func (s *Server) armCountdownLocked(sess *Session) {
	sess.countdownToken++
	token := sess.countdownToken
	id := sess.id

	if sess.countdownTimer != nil {
		sess.countdownTimer.Stop()
	}
	sess.countdownTimer = time.AfterFunc(s.cfg.CountdownDelay, func() {
		s.startGame(id, token)
	})
}

func (s *Server) cancelCountdownLocked(sess *Session) {
	sess.countdownToken++
	if sess.countdownTimer != nil {
		sess.countdownTimer.Stop()
		sess.countdownTimer = nil
	}
}

func (s *Server) startGame(gameID string, token int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions.Get(gameID)
	if !ok || sess.status != StatusCountdown || token != sess.countdownToken {
		return
	}

	sess.startPlaying(s.words.RandomAnswer(), time.Now())
	s.log.Info("game started", "game", sess.id)
	s.broadcastGame(sess.id, "start-game", true, nil)
}

// relayCursor forwards letter/backspace notifications to the opponent as a
// cosmetic signal. Outside Playing they are ignored, not errors.
func (s *Server) relayCursor(c *Conn, method string, raw json.RawMessage) {
	var d CursorData
	if json.Unmarshal(raw, &d) != nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions.Get(c.gameID)
	if !ok || sess.status != StatusPlaying {
		return
	}
	if p, _ := sess.player(c.ID); p == nil {
		return
	}
	s.sendOpponent(sess, c.ID, method, true, d)
}

func (s *Server) makeGuess(c *Conn, letters []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, p, _ := s.memberLocked(c, "make-guess")
	if sess == nil {
		return
	}
	if sess.status != StatusPlaying {
		s.sendTo(c, "make-guess", false, FailureData{Message: "game is not being played"})
		return
	}
	if p.ended || p.currentRow >= maxRows {
		s.sendTo(c, "make-guess", false, FailureData{Message: "your game has already ended"})
		return
	}

	guess := strings.ToLower(strings.Join(letters, ""))
	if !s.words.IsAllowed(guess) {
		p.invalidGuesses = append(p.invalidGuesses, guess)
		s.sendTo(c, "invalid-word", true, nil)
		s.sendOpponent(sess, c.ID, "opponent-invalid-word", true, nil)
		return
	}

	result := Evaluate(guess, sess.word)
	row := p.currentRow
	p.currentRow++

	s.sendTo(c, "guess-response", true, GuessResponseData{
		Response:   result,
		CurrentRow: row,
	})
	s.sendOpponent(sess, c.ID, "opponent-guess-response", true, OpponentGuessResponseData{
		OpponentResponse:   opponentView(result),
		OpponentCurrentRow: row,
	})

	switch {
	case allExact(result):
		s.finishPlayerLocked(sess, p, c.ID, true)
	case p.currentRow >= maxRows:
		s.finishPlayerLocked(sess, p, c.ID, false)
	}
}

// finishPlayerLocked marks one player's board done (win or exhaustion) and
// ends the session if the opponent is done too.
func (s *Server) finishPlayerLocked(sess *Session, p *playerState, connID string, win bool) {
	p.ended = true
	p.win = win
	p.endedAt = time.Now()

	s.sendToID(connID, "your-game-ended", true, YourGameEndedData{Correct: win})
	s.sendOpponent(sess, connID, "opponent-game-ended", true, nil)
	s.maybeEndLocked(sess)
}

// maybeEndLocked moves the session to Ended once both boards are done and
// fires the single game-ended broadcast with full stats.
func (s *Server) maybeEndLocked(sess *Session) {
	if sess.status != StatusPlaying || !sess.bothEnded() {
		return
	}
	sess.status = StatusEnded

	one := sess.statsFor(&sess.one)
	two := sess.statsFor(&sess.two)

	s.log.Info("game ended", "game", sess.id, "winner", Winner(one.Points, two.Points))

	s.broadcastGame(sess.id, "game-ended", true, GameEndedData{
		Word:      sess.word,
		PlayerOne: one,
		PlayerTwo: two,
		Winner:    Winner(one.Points, two.Points),
	})
}

func (s *Server) requestRematch(c *Conn) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, p, _ := s.memberLocked(c, "request-rematch")
	if sess == nil {
		return
	}
	if sess.status != StatusEnded {
		s.sendTo(c, "request-rematch", false, FailureData{Message: "game is not finished"})
		return
	}

	p.rematch = true
	s.sendOpponent(sess, c.ID, "opponent-rematch-request", true, nil)

	if sess.bothRematch() {
		sess.resetForRematch()
		s.broadcastGame(sess.id, "rematch-game", true, sess.view())
	}
}

// disconnect applies the close policy for the session the connection was
// bound to, plus queue cleanup. Called from the websocket handler when the
// transport drops.
func (s *Server) disconnect(c *Conn) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cancelQueueLocked(c.ID)

	if c.gameID == "" {
		return
	}
	sess, ok := s.sessions.Get(c.gameID)
	if !ok {
		return
	}
	p, _ := sess.player(c.ID)
	if p == nil {
		return
	}
	p.disconnected = true

	switch sess.status {
	case StatusWaitingForPlayerTwo, StatusWaitingForReady:
		s.sendOpponent(sess, c.ID, "player-disconnected", true, RevealData{})
	case StatusCountdown:
		// a countdown with only one player left must not fire
		s.cancelCountdownLocked(sess)
		s.sendOpponent(sess, c.ID, "player-disconnected", true, RevealData{})
	case StatusPlaying:
		p.ended = true
		p.win = false
		p.endedAt = sess.startedAt // forfeit: elapsed collapses to zero
		word := sess.word
		s.sendOpponent(sess, c.ID, "player-disconnected-midgame", true, RevealData{Word: &word})
		s.maybeEndLocked(sess)
	case StatusEnded:
		s.sendOpponent(sess, c.ID, "rematch-refused", true, nil)
	case StatusResetting:
		// transient state, nothing to announce
	}

	if sess.bothGone() {
		s.cancelCountdownLocked(sess)
		s.sessions.Delete(sess.id)
		s.log.Info("session evicted", "game", sess.id)
	}
}

// memberLocked resolves the caller's session and player slot, answering the
// failing method with a structured error when either is missing.
func (s *Server) memberLocked(c *Conn, method string) (*Session, *playerState, string) {
	sess, ok := s.sessions.Get(c.gameID)
	if !ok {
		s.sendTo(c, method, false, FailureData{Message: "game not found"})
		return nil, nil, ""
	}
	p, slot := sess.player(c.ID)
	if p == nil {
		s.sendTo(c, method, false, FailureData{Message: "you are not part of this game"})
		return nil, nil, ""
	}
	return sess, p, slot
}
