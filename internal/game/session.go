package game

import "time"

// Status values carry an ordinal prefix so clients can sort on them.
type Status string

const (
	StatusWaitingForPlayerTwo Status = "0-waiting-for-player-two"
	StatusWaitingForReady     Status = "1-waiting-for-ready"
	StatusCountdown           Status = "2-countdown"
	StatusPlaying             Status = "3-playing"
	StatusEnded               Status = "4-ended"
	StatusResetting           Status = "5-resetting"
)

const maxRows = 6

type playerState struct {
	connID         string
	ready          bool
	currentRow     int
	ended          bool
	win            bool
	invalidGuesses []string
	endedAt        time.Time
	rematch        bool
	disconnected   bool
}

// Session owns all per-game mutable state. Every field is guarded by the
// owning Server's mutex; deferred tasks (the countdown timer) re-validate
// status and token before touching anything.
type Session struct {
	id     string
	status Status

	one playerState
	two playerState

	word      string
	startedAt time.Time

	countdownTimer *time.Timer
	countdownToken int64
}

func NewSession(id, playerOneID string) *Session {
	return &Session{
		id:     id,
		status: StatusWaitingForPlayerTwo,
		one:    playerState{connID: playerOneID},
	}
}

// player returns the state for connID plus its slot name, or nil if the
// connection is not bound to this session.
func (s *Session) player(connID string) (*playerState, string) {
	if connID != "" && s.one.connID == connID {
		return &s.one, "one"
	}
	if connID != "" && s.two.connID == connID {
		return &s.two, "two"
	}
	return nil, ""
}

func (s *Session) opponent(connID string) *playerState {
	if s.one.connID == connID {
		return &s.two
	}
	return &s.one
}

func (s *Session) bothReady() bool {
	return s.one.ready && s.two.ready
}

func (s *Session) bothEnded() bool {
	return s.one.ended && s.two.ended
}

func (s *Session) bothRematch() bool {
	return s.one.rematch && s.two.rematch
}

// bothGone reports whether nobody is left: every bound player disconnected,
// counting an unbound player-two slot as absent.
func (s *Session) bothGone() bool {
	if !s.one.disconnected {
		return false
	}
	return s.two.connID == "" || s.two.disconnected
}

// startPlaying performs the Countdown→Playing transition with a fresh target.
func (s *Session) startPlaying(target string, now time.Time) {
	s.status = StatusPlaying
	s.word = target
	s.startedAt = now
	s.one.resetGame()
	s.two.resetGame()
}

// resetForRematch passes through Resetting and re-enters WaitingForReady
// with every per-game field cleared.
func (s *Session) resetForRematch() {
	s.status = StatusResetting
	s.word = ""
	s.startedAt = time.Time{}
	s.one.resetGame()
	s.two.resetGame()
	s.one.ready = false
	s.two.ready = false
	s.one.rematch = false
	s.two.rematch = false
	s.status = StatusWaitingForReady
}

func (p *playerState) resetGame() {
	p.currentRow = 0
	p.ended = false
	p.win = false
	p.invalidGuesses = nil
	p.endedAt = time.Time{}
}

// view is the client-facing shape of the session, word excluded.
func (s *Session) view() SessionData {
	return SessionData{
		GameID:    s.id,
		PlayerOne: s.one.connID,
		PlayerTwo: s.two.connID,
		Status:    s.status,
	}
}
