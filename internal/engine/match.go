// File: internal/engine/match.go
// Description: Runs one fixed-length repeated game between two compiled
// strategies. CPU-only and synchronous; deterministic unless a decider uses
// the RANDOM action.

package engine

import "github.com/xkilldash9x/dilemma-arena/api/schemas"

// DefaultRounds is the fixed match length for the current arena.
const DefaultRounds = 20

// MatchOutcome is the full result of a single match: final scores and the
// complete move history for both sides.
type MatchOutcome struct {
	Score1 int
	Score2 int
	Moves1 []schemas.Move
	Moves2 []schemas.Move
}

// Simulate plays exactly rounds rounds between d1 and d2 and returns the
// outcome. Each round both deciders see the histories as they stood before
// the round, so neither side observes the other's current move. rounds <= 0
// falls back to DefaultRounds.
func Simulate(d1, d2 *Decider, rounds int) MatchOutcome {
	if rounds <= 0 {
		rounds = DefaultRounds
	}
	moves1 := make([]schemas.Move, 0, rounds)
	moves2 := make([]schemas.Move, 0, rounds)
	var score1, score2 int

	for k := 0; k < rounds; k++ {
		m1 := d1.Decide(moves1, moves2)
		m2 := d2.Decide(moves2, moves1)

		p1, p2 := Payoff(m1, m2)
		score1 += p1
		score2 += p2

		moves1 = append(moves1, m1)
		moves2 = append(moves2, m2)
	}

	return MatchOutcome{
		Score1: score1,
		Score2: score2,
		Moves1: moves1,
		Moves2: moves2,
	}
}
