package game

import (
	"fmt"
	"strings"
	"time"
)

const (
	cellEmpty    = "⬜"
	cellMushroom = "🍄"
	cellRaven    = "🐦"
	cellPlayer   = "🙂"
)

// Render draws the board as emoji rows followed by the stat lines.
// Overlapping pieces resolve in favor of the player, then the raven:
// mushrooms are painted first, the raven over them, the player last.
func (r *Round) Render(now time.Time) string {
	size := r.settings.BoardSize
	board := make([][]string, size)
	for y := range board {
		row := make([]string, size)
		for x := range row {
			row[x] = cellEmpty
		}
		board[y] = row
	}
	for _, m := range r.Mushrooms {
		board[m.Y][m.X] = cellMushroom
	}
	board[r.Raven.Y][r.Raven.X] = cellRaven
	board[r.Player.Y][r.Player.X] = cellPlayer

	var b strings.Builder
	for _, row := range board {
		b.WriteString(strings.Join(row, ""))
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "Level: %d  Score: %d  Collected: %d/%d\n", r.Level, r.Score, r.Collected, r.Required)
	fmt.Fprintf(&b, "Time Left: %ds", r.TimeLeft(now))
	return b.String()
}

// TimeLeft returns the whole seconds remaining on the timer, never
// negative.
func (r *Round) TimeLeft(now time.Time) int {
	left := int(r.Deadline().Sub(now).Seconds())
	return max(left, 0)
}
