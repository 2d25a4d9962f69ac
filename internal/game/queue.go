package game

import "time"

// queueNotices is the fixed rotation of waiting-status messages. The first
// is sent immediately on enqueue, the rest cycle on each notifier tick.
var queueNotices = []string{
	"searching for an opponent...",
	"still searching, hang tight...",
	"no opponents yet, keep waiting...",
}

// queueSlot holds at most one connection waiting for a public match.
// Guarded by the Server mutex; stop tears down the notifier goroutine.
type queueSlot struct {
	waitingID string
	stop      chan struct{}
	notice    int
}

// joinPublicGame pairs the caller with the waiting player, or parks the
// caller in the slot. The player already waiting always becomes player one.
func (s *Server) joinPublicGame(c *Conn) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.queue.waitingID == c.ID {
		return // already waiting, nothing to do
	}

	waiter, ok := s.registry.Resolve(s.queue.waitingID)
	if s.queue.waitingID == "" || !ok {
		// empty (or stale) slot: this connection waits
		s.cancelQueueLocked(s.queue.waitingID)
		s.enqueueLocked(c)
		return
	}

	s.cancelQueueLocked(waiter.ID)
	s.pairLocked(waiter, c)
}

func (s *Server) enqueueLocked(c *Conn) {
	s.queue.waitingID = c.ID
	s.queue.notice = 0
	s.queue.stop = make(chan struct{})

	s.sendTo(c, "public-queue-message", true, QueueMessageData{Message: queueNotices[0]})
	go s.queueNotifier(c.ID, s.queue.stop)
}

// cancelQueueLocked clears the slot if it holds connID and stops the
// notifier. Safe to call with "" or a non-waiting id.
func (s *Server) cancelQueueLocked(connID string) {
	if connID == "" || s.queue.waitingID != connID {
		return
	}
	s.queue.waitingID = ""
	if s.queue.stop != nil {
		close(s.queue.stop)
		s.queue.stop = nil
	}
}

func (s *Server) pairLocked(one, two *Conn) {
	sess := NewSession(randID(6), one.ID)
	sess.two = playerState{connID: two.ID}
	sess.status = StatusWaitingForReady
	s.sessions.Put(sess)

	one.gameID = sess.id
	two.gameID = sess.id

	s.log.Info("public match paired", "game", sess.id)

	s.sendTo(one, "set-player-number", true, PlayerNumberData{Number: "one"})
	s.sendTo(two, "set-player-number", true, PlayerNumberData{Number: "two"})
	s.broadcastGame(sess.id, "join-game", true, sess.view())
}

// queueNotifier cycles waiting-status messages until the slot is cleared.
// Each tick re-validates the slot occupant under the lock: the waiter may
// have been paired or disconnected between ticks.
func (s *Server) queueNotifier(connID string, stop <-chan struct{}) {
	t := time.NewTicker(s.cfg.QueueNoticePeriod)
	defer t.Stop()

	for {
		select {
		case <-stop:
			return
		case <-t.C:
			s.mu.Lock()
			if s.queue.waitingID != connID {
				s.mu.Unlock()
				return
			}
			s.queue.notice = (s.queue.notice + 1) % len(queueNotices)
			msg := queueNotices[s.queue.notice]
			s.sendToID(connID, "public-queue-message", true, QueueMessageData{Message: msg})
			s.mu.Unlock()
		}
	}
}
