// File: internal/engine/decider.go
// Description: Compiles a logic tree into a reusable decision value. The
// Decider holds an immutable clause list plus an injected random source, so
// one compiled strategy can play any number of matches without hidden state.

package engine

import (
	"github.com/xkilldash9x/dilemma-arena/api/schemas"
)

// Rand is the random source a Decider draws from when a clause action is
// ActionRandom. math/rand's *rand.Rand satisfies it; tests inject a seeded
// or fixed source for reproducible tournaments.
type Rand interface {
	Intn(n int) int
}

// Decider is a compiled strategy: a pure read of the two history slices,
// except for the RANDOM action which re-rolls on every call.
type Decider struct {
	clauses []schemas.Clause
	rng     Rand
}

// Compile turns a logic tree into a Decider. The tree is assumed to have
// passed schemas.LogicTree.Validate; a looser tree still compiles, its
// malformed clauses just never match.
func Compile(tree schemas.LogicTree, rng Rand) *Decider {
	// Copy the clause slice so later mutation of the caller's tree cannot
	// change an already compiled strategy.
	clauses := make([]schemas.Clause, len(tree.Clauses))
	copy(clauses, tree.Clauses)
	return &Decider{clauses: clauses, rng: rng}
}

// Decide evaluates the clauses top to bottom and returns the move of the
// first satisfied clause. If no clause is satisfied the strategy cooperates.
func (d *Decider) Decide(mine, theirs []schemas.Move) schemas.Move {
	for _, clause := range d.clauses {
		if clauseSatisfied(clause, mine, theirs) {
			return d.resolveAction(clause.Action)
		}
	}
	return schemas.MoveCooperate
}

// clauseSatisfied applies the clause's match mode over its conditions.
// ELSE is vacuously true; an IF/ELSEIF with no conditions is vacuously false.
func clauseSatisfied(clause schemas.Clause, mine, theirs []schemas.Move) bool {
	if clause.Role == schemas.RoleElse {
		return true
	}
	if len(clause.Conditions) == 0 {
		return false
	}
	switch clause.MatchMode {
	case schemas.MatchAny:
		for _, cond := range clause.Conditions {
			if Evaluate(cond, mine, theirs) {
				return true
			}
		}
		return false
	default:
		// MatchAll, and the conservative reading of anything unknown.
		for _, cond := range clause.Conditions {
			if !Evaluate(cond, mine, theirs) {
				return false
			}
		}
		return true
	}
}

func (d *Decider) resolveAction(action schemas.Action) schemas.Move {
	switch action {
	case schemas.ActionBetray:
		return schemas.MoveBetray
	case schemas.ActionRandom:
		if d.rng != nil && d.rng.Intn(2) == 1 {
			return schemas.MoveBetray
		}
		return schemas.MoveCooperate
	default:
		return schemas.MoveCooperate
	}
}
