package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/xkilldash9x/dilemma-arena/api/schemas"
)

func TestPayoffMatrix(t *testing.T) {
	tests := []struct {
		m1, m2 schemas.Move
		p1, p2 int
	}{
		{coop, coop, 1, 1},
		{betray, betray, 0, 0},
		{coop, betray, 0, 2},
		{betray, coop, 2, 0},
	}
	for _, tc := range tests {
		p1, p2 := Payoff(tc.m1, tc.m2)
		assert.Equal(t, tc.p1, p1, "%s vs %s", tc.m1, tc.m2)
		assert.Equal(t, tc.p2, p2, "%s vs %s", tc.m1, tc.m2)
	}
}

func TestPayoffSymmetry(t *testing.T) {
	all := []schemas.Move{coop, betray}
	for _, a := range all {
		for _, b := range all {
			ab1, ab2 := Payoff(a, b)
			ba1, ba2 := Payoff(b, a)
			assert.Equal(t, ab1, ba2, "payoff(%s,%s).p1 == payoff(%s,%s).p2", a, b, b, a)
			assert.Equal(t, ab2, ba1, "payoff(%s,%s).p2 == payoff(%s,%s).p1", a, b, b, a)
		}
	}
}
