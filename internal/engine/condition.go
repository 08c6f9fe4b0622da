// File: internal/engine/condition.go
// Description: Evaluates a single named condition against a pair of move
// histories. Pure function of its inputs; malformed data never fails, it
// just doesn't match.

package engine

import (
	"github.com/xkilldash9x/dilemma-arena/api/schemas"
)

// Evaluate reports whether cond holds for the given histories. mine is the
// history of the strategy owning the condition, theirs is the opponent's.
//
// Histories that are too short to answer the question default to Cooperate:
// an empty history reads as a cooperative last move, an out-of-range nth-last
// lookup reads as Cooperate, and a most-common tally with no strict Betray
// majority resolves to Cooperate. Unknown condition kinds evaluate to false.
func Evaluate(cond schemas.Condition, mine, theirs []schemas.Move) bool {
	switch cond.Kind {
	case schemas.KindOpponentLastMove:
		return lastMove(theirs) == cond.Target
	case schemas.KindYourLastMove:
		return lastMove(mine) == cond.Target
	case schemas.KindOpponentNthLastMove:
		return nthLastMove(theirs, cond.N) == cond.Target
	case schemas.KindYourNthLastMove:
		return nthLastMove(mine, cond.N) == cond.Target
	case schemas.KindOpponentMostCommon:
		return mostCommonMove(theirs) == cond.Target
	case schemas.KindYourMostCommon:
		return mostCommonMove(mine) == cond.Target
	default:
		// Forward-compat: data with a kind this build doesn't know
		// simply never matches.
		return false
	}
}

func lastMove(history []schemas.Move) schemas.Move {
	return nthLastMove(history, 1)
}

// nthLastMove counts backward from the end of the history; n=1 is the most
// recent move. Out-of-range lookups (including n < 1) default to Cooperate.
func nthLastMove(history []schemas.Move, n int) schemas.Move {
	if n < 1 || n > len(history) {
		return schemas.MoveCooperate
	}
	return history[len(history)-n]
}

// mostCommonMove tallies the full history. Betray wins only on a strict
// majority; ties and the empty history resolve to Cooperate.
func mostCommonMove(history []schemas.Move) schemas.Move {
	betrayals := 0
	for _, m := range history {
		if m == schemas.MoveBetray {
			betrayals++
		}
	}
	if betrayals*2 > len(history) {
		return schemas.MoveBetray
	}
	return schemas.MoveCooperate
}
