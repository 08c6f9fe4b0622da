// File: internal/engine/payoff.go

package engine

import "github.com/xkilldash9x/dilemma-arena/api/schemas"

// Payoff maps one round's simultaneous moves to each side's point gain.
//
//	cooperate/cooperate -> 1, 1
//	betray/betray       -> 0, 0
//	cooperate/betray    -> 0, 2
//	betray/cooperate    -> 2, 0
//
// Mutual cooperation is the globally efficient outcome: the per-round totals
// are deliberately not constant-sum.
func Payoff(move1, move2 schemas.Move) (p1, p2 int) {
	switch {
	case move1 == schemas.MoveCooperate && move2 == schemas.MoveCooperate:
		return 1, 1
	case move1 == schemas.MoveBetray && move2 == schemas.MoveBetray:
		return 0, 0
	case move1 == schemas.MoveCooperate && move2 == schemas.MoveBetray:
		return 0, 2
	default:
		return 2, 0
	}
}
