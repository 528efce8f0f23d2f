package logic_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aretw0/logicsim/pkg/domain"
	"github.com/aretw0/logicsim/pkg/logic"
)

func TestGates_ControllingValues(t *testing.T) {
	x := domain.Unknown

	assert.Equal(t, domain.One, logic.Nand(domain.Zero, x))
	assert.Equal(t, domain.One, logic.Nand(x, domain.Zero))
	assert.Equal(t, x, logic.Nand(domain.One, x))

	assert.Equal(t, domain.Zero, logic.Nor(domain.One, x))
	assert.Equal(t, x, logic.Nor(domain.Zero, x))

	assert.Equal(t, domain.Zero, logic.And(x, domain.Zero))
	assert.Equal(t, domain.One, logic.Or(x, domain.One))
	assert.Equal(t, x, logic.Not(x))
}

func TestGates_TruthTables(t *testing.T) {
	type row struct{ a, b, and, or, nand, nor domain.Bit }
	rows := []row{
		{0, 0, 0, 0, 1, 1},
		{0, 1, 0, 1, 1, 0},
		{1, 0, 0, 1, 1, 0},
		{1, 1, 1, 1, 0, 0},
	}
	for _, r := range rows {
		assert.Equal(t, r.and, logic.And(r.a, r.b))
		assert.Equal(t, r.or, logic.Or(r.a, r.b))
		assert.Equal(t, r.nand, logic.Nand(r.a, r.b))
		assert.Equal(t, r.nor, logic.Nor(r.a, r.b))
	}
}
