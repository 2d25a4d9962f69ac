package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublicQueue(t *testing.T) {
	cases := []struct {
		name string
		run  func(t *testing.T)
	}{
		{
			name: "first arrival waits and gets the initial searching notice",
			run: func(t *testing.T) {
				s := newTestServer(t, "crane")
				a := newTestConn(s)

				send(s, a, "join-public-game", nil)

				env, ok := findEnvelope(drainEnvelopes(a), "public-queue-message")
				require.True(t, ok)
				assert.Equal(t, queueNotices[0], decodeData[QueueMessageData](t, env).Message)

				s.mu.Lock()
				assert.Equal(t, a.ID, s.queue.waitingID)
				s.mu.Unlock()
			},
		},
		{
			name: "re-enqueue while waiting is a no-op",
			run: func(t *testing.T) {
				s := newTestServer(t, "crane")
				a := newTestConn(s)

				send(s, a, "join-public-game", nil)
				drainEnvelopes(a)
				send(s, a, "join-public-game", nil)

				assert.Empty(t, drainEnvelopes(a), "no duplicate notice")
				assert.Equal(t, 0, s.sessions.Len())
			},
		},
		{
			name: "second arrival pairs: waiter is player one, slot empties",
			run: func(t *testing.T) {
				s := newTestServer(t, "crane")
				a := newTestConn(s)
				b := newTestConn(s)

				send(s, a, "join-public-game", nil)
				drainEnvelopes(a)
				send(s, b, "join-public-game", nil)

				aNum, ok := findEnvelope(drainEnvelopes(a), "set-player-number")
				require.True(t, ok)
				assert.Equal(t, "one", decodeData[PlayerNumberData](t, aNum).Number)

				bEnvs := drainEnvelopes(b)
				bNum, ok := findEnvelope(bEnvs, "set-player-number")
				require.True(t, ok)
				assert.Equal(t, "two", decodeData[PlayerNumberData](t, bNum).Number)

				joined, ok := findEnvelope(bEnvs, "join-game")
				require.True(t, ok)
				view := decodeData[SessionData](t, joined)
				assert.Equal(t, StatusWaitingForReady, view.Status)
				assert.Equal(t, a.ID, view.PlayerOne)
				assert.Equal(t, b.ID, view.PlayerTwo)

				s.mu.Lock()
				assert.Empty(t, s.queue.waitingID)
				s.mu.Unlock()
				assert.Equal(t, 1, s.sessions.Len())
			},
		},
		{
			name: "notifier cycles waiting notices until cancelled",
			run: func(t *testing.T) {
				s := newTestServer(t, "crane")
				a := newTestConn(s)

				send(s, a, "join-public-game", nil)
				time.Sleep(50 * time.Millisecond) // a few 15ms ticks

				envs := drainEnvelopes(a)
				assert.GreaterOrEqual(t, countMethod(envs, "public-queue-message"), 3)

				s.disconnect(a)
				s.registry.Unregister(a.ID)
				time.Sleep(40 * time.Millisecond)

				assert.Empty(t, drainEnvelopes(a), "no notices after cancel")
			},
		},
		{
			name: "disconnect of the waiter clears the slot",
			run: func(t *testing.T) {
				s := newTestServer(t, "crane")
				a := newTestConn(s)

				send(s, a, "join-public-game", nil)
				s.disconnect(a)

				s.mu.Lock()
				assert.Empty(t, s.queue.waitingID)
				s.mu.Unlock()
			},
		},
		{
			name: "starting a direct game abandons the queue slot",
			run: func(t *testing.T) {
				s := newTestServer(t, "crane")
				a := newTestConn(s)

				send(s, a, "join-public-game", nil)
				send(s, a, "create-game", nil)

				s.mu.Lock()
				assert.Empty(t, s.queue.waitingID)
				s.mu.Unlock()
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, tc.run)
	}
}
