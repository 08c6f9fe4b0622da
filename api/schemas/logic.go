package schemas

import "fmt"

// -- Logic Tree Schemas --
//
// A strategy's behavior is described by a LogicTree: an ordered list of
// conditional clauses evaluated top to bottom. The first satisfied clause
// determines the move for the round.

// Move is a single round action in the iterated prisoner's dilemma.
type Move string

const (
	MoveCooperate Move = "cooperate"
	MoveBetray    Move = "betray"
)

// Valid reports whether the move is one of the two known values.
func (m Move) Valid() bool {
	return m == MoveCooperate || m == MoveBetray
}

// Action is the outcome of a satisfied clause. It is either a concrete Move
// or ActionRandom, which resolves to a uniformly random move on every call.
type Action string

const (
	ActionCooperate Action = Action(MoveCooperate)
	ActionBetray    Action = Action(MoveBetray)
	ActionRandom    Action = "random"
)

// Valid reports whether the action is a known value.
func (a Action) Valid() bool {
	return a == ActionCooperate || a == ActionBetray || a == ActionRandom
}

// ConditionKind identifies the predicate a Condition applies to a move history.
type ConditionKind string

const (
	// KindOpponentLastMove compares the target against the opponent's most recent move.
	KindOpponentLastMove ConditionKind = "opponent_last_move"
	// KindYourLastMove compares the target against the strategy's own most recent move.
	KindYourLastMove ConditionKind = "your_last_move"
	// KindOpponentNthLastMove compares the target against the opponent's nth-last move (n=1 is the last).
	KindOpponentNthLastMove ConditionKind = "opponent_nth_last_move"
	// KindYourNthLastMove compares the target against the strategy's own nth-last move.
	KindYourNthLastMove ConditionKind = "your_nth_last_move"
	// KindOpponentMostCommon compares the target against the opponent's majority move over the full history.
	KindOpponentMostCommon ConditionKind = "opponent_most_common"
	// KindYourMostCommon compares the target against the strategy's own majority move.
	KindYourMostCommon ConditionKind = "your_most_common"
)

// needsN reports whether the kind consumes the N field.
func (k ConditionKind) needsN() bool {
	return k == KindOpponentNthLastMove || k == KindYourNthLastMove
}

// Condition is a single predicate over a move history.
// N is only meaningful for the nth-last-move kinds.
type Condition struct {
	Kind   ConditionKind `json:"kind"`
	N      int           `json:"n,omitempty"`
	Target Move          `json:"target"`
}

// ClauseRole distinguishes the three clause positions in a logic tree.
type ClauseRole string

const (
	RoleIf     ClauseRole = "if"
	RoleElseIf ClauseRole = "elseif"
	RoleElse   ClauseRole = "else"
)

// MatchMode controls how a clause combines its conditions.
type MatchMode string

const (
	MatchAll MatchMode = "all"
	MatchAny MatchMode = "any"
)

// Clause is one IF/ELSEIF/ELSE rule. ELSE clauses carry no conditions and are
// always satisfied; an IF/ELSEIF clause with no conditions is never satisfied.
type Clause struct {
	Role       ClauseRole  `json:"role"`
	Conditions []Condition `json:"conditions,omitempty"`
	MatchMode  MatchMode   `json:"match_mode,omitempty"`
	Action     Action      `json:"action"`
}

// LogicTree is the ordered clause list defining a strategy's behavior.
type LogicTree struct {
	Clauses []Clause `json:"clauses"`
}

// Validate checks the structural invariants of a logic tree:
// the first clause is the only IF, at most one ELSE exists and it is last,
// every action is known, and nth-last-move conditions carry a positive n.
// The interpreter itself tolerates looser trees (later clauses are simply
// shadowed), but every tree accepted into the arena passes through here first.
func (t LogicTree) Validate() error {
	if len(t.Clauses) == 0 {
		return fmt.Errorf("logic tree has no clauses")
	}
	if t.Clauses[0].Role != RoleIf {
		return fmt.Errorf("first clause must have role %q, got %q", RoleIf, t.Clauses[0].Role)
	}
	elseSeen := false
	for i, c := range t.Clauses {
		switch c.Role {
		case RoleIf:
			if i != 0 {
				return fmt.Errorf("clause %d: only the first clause may have role %q", i, RoleIf)
			}
		case RoleElseIf:
		case RoleElse:
			if elseSeen {
				return fmt.Errorf("clause %d: multiple %q clauses", i, RoleElse)
			}
			if i != len(t.Clauses)-1 {
				return fmt.Errorf("clause %d: %q clause must be last", i, RoleElse)
			}
			if len(c.Conditions) > 0 {
				return fmt.Errorf("clause %d: %q clause must not have conditions", i, RoleElse)
			}
			elseSeen = true
		default:
			return fmt.Errorf("clause %d: unknown role %q", i, c.Role)
		}
		if !c.Action.Valid() {
			return fmt.Errorf("clause %d: unknown action %q", i, c.Action)
		}
		if c.Role != RoleElse && len(c.Conditions) > 0 {
			if c.MatchMode != MatchAll && c.MatchMode != MatchAny {
				return fmt.Errorf("clause %d: unknown match mode %q", i, c.MatchMode)
			}
		}
		for j, cond := range c.Conditions {
			if !cond.Target.Valid() {
				return fmt.Errorf("clause %d, condition %d: unknown target move %q", i, j, cond.Target)
			}
			if cond.Kind.needsN() && cond.N < 1 {
				return fmt.Errorf("clause %d, condition %d: %q requires n >= 1, got %d", i, j, cond.Kind, cond.N)
			}
		}
	}
	return nil
}
