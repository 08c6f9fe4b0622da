package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/xkilldash9x/dilemma-arena/api/schemas"
)

func moves(s ...schemas.Move) []schemas.Move { return s }

const (
	coop   = schemas.MoveCooperate
	betray = schemas.MoveBetray
)

func TestEvaluateLastMove(t *testing.T) {
	history := moves(coop, betray)

	t.Run("opponent last move matches", func(t *testing.T) {
		cond := schemas.Condition{Kind: schemas.KindOpponentLastMove, Target: betray}
		assert.True(t, Evaluate(cond, nil, history))
	})

	t.Run("own last move matches", func(t *testing.T) {
		cond := schemas.Condition{Kind: schemas.KindYourLastMove, Target: betray}
		assert.True(t, Evaluate(cond, history, nil))
		assert.False(t, Evaluate(cond, moves(coop), nil))
	})

	t.Run("empty history reads as cooperate", func(t *testing.T) {
		cond := schemas.Condition{Kind: schemas.KindOpponentLastMove, Target: coop}
		assert.True(t, Evaluate(cond, nil, nil), "optimistic default: empty history is a cooperative last move")

		cond.Target = betray
		assert.False(t, Evaluate(cond, nil, nil))
	})
}

func TestEvaluateNthLastMove(t *testing.T) {
	t.Run("n counts backward from the end", func(t *testing.T) {
		history := moves(betray, coop, coop)
		cond := schemas.Condition{Kind: schemas.KindYourNthLastMove, N: 3, Target: betray}
		assert.True(t, Evaluate(cond, history, nil), "n=3 against a 3-move history is the first move played")
	})

	t.Run("n beyond history length defaults to cooperate", func(t *testing.T) {
		history := moves(betray, betray)
		cond := schemas.Condition{Kind: schemas.KindYourNthLastMove, N: 3, Target: coop}
		assert.True(t, Evaluate(cond, history, nil))

		cond.Target = betray
		assert.False(t, Evaluate(cond, history, nil))
	})

	t.Run("n=1 is the last move", func(t *testing.T) {
		history := moves(coop, betray)
		cond := schemas.Condition{Kind: schemas.KindOpponentNthLastMove, N: 1, Target: betray}
		assert.True(t, Evaluate(cond, nil, history))
	})
}

func TestEvaluateMostCommon(t *testing.T) {
	tests := []struct {
		name    string
		history []schemas.Move
		want    schemas.Move
	}{
		{"empty history", nil, coop},
		{"strict betray majority", moves(betray, betray, coop), betray},
		{"tie resolves to cooperate", moves(betray, coop), coop},
		{"cooperate majority", moves(coop, coop, betray), coop},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cond := schemas.Condition{Kind: schemas.KindOpponentMostCommon, Target: tc.want}
			assert.True(t, Evaluate(cond, nil, tc.history))
		})
	}
}

func TestEvaluateUnknownKind(t *testing.T) {
	cond := schemas.Condition{Kind: "opponent_mood", Target: coop}
	assert.False(t, Evaluate(cond, nil, nil), "unknown kinds must evaluate to false, never panic")
}
