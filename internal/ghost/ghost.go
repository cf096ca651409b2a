// Package ghost projects an opponent's position from elapsed time alone.
package ghost

import (
	"time"

	"github.com/verte-zerg/typerun/internal/model"
)

// Projected computes the character index an opponent typing at the given
// WPM would have reached after elapsed time, clamped to [0, textLen]. It is
// a pure function of time and never reads the real session's input.
func Projected(elapsed time.Duration, opponentWPM, textLen int) int {
	if elapsed <= 0 || opponentWPM <= 0 || textLen <= 0 {
		return 0
	}
	chars := int(elapsed.Seconds() * float64(opponentWPM) * 5 / 60)
	if chars < 0 {
		return 0
	}
	if chars > textLen {
		return textLen
	}
	return chars
}

// Ghost binds one opponent to one session's excerpt length. The binding is
// not carried across a restart; the caller re-arms a new Ghost for the next
// session if race mode stays on.
type Ghost struct {
	Opponent model.Opponent
	TextLen  int
}

// Arm binds an opponent to an excerpt length.
func Arm(opponent model.Opponent, textLen int) *Ghost {
	return &Ghost{Opponent: opponent, TextLen: textLen}
}

// Position returns the projected character index at the given elapsed time.
func (g *Ghost) Position(elapsed time.Duration) int {
	if g == nil {
		return 0
	}
	return Projected(elapsed, g.Opponent.WPM, g.TextLen)
}
