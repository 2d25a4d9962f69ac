package game

import (
	"fmt"
	"time"
)

// Points totals a finished player's score. Losers always score zero: the row
// and time bonuses only apply on a win.
func Points(win bool, rows int, elapsed time.Duration) int {
	if !win {
		return 0
	}
	return rowBonus(rows) + 100 + timeBonus(elapsed)
}

func rowBonus(rows int) int {
	switch rows {
	case 1:
		return 100
	case 2:
		return 70
	case 3:
		return 50
	case 4, 5:
		return 20
	default:
		return 0
	}
}

func timeBonus(elapsed time.Duration) int {
	switch {
	case elapsed < 10*time.Second:
		return 100
	case elapsed < 30*time.Second:
		return 50
	case elapsed < 60*time.Second:
		return 20
	default:
		return 0
	}
}

// Winner compares two point totals: "one", "two", or "draw" on a tie.
func Winner(onePoints, twoPoints int) string {
	switch {
	case onePoints > twoPoints:
		return "one"
	case twoPoints > onePoints:
		return "two"
	default:
		return "draw"
	}
}

func formatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	return fmt.Sprintf("%.1fs", d.Seconds())
}

// statsFor builds the post-game stats line for one player. A forfeit records
// endedAt == startedAt, which collapses the elapsed time to zero.
func (s *Session) statsFor(p *playerState) PlayerStatsData {
	elapsed := p.endedAt.Sub(s.startedAt)
	invalid := p.invalidGuesses
	if invalid == nil {
		invalid = []string{}
	}
	return PlayerStatsData{
		Points:         Points(p.win, p.currentRow, elapsed),
		Rows:           p.currentRow,
		InvalidGuesses: invalid,
		Time:           formatElapsed(elapsed),
		Win:            p.win,
		Disconnected:   p.disconnected,
	}
}
