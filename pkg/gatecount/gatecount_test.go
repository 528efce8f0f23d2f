package gatecount_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/logicsim/pkg/gatecount"
)

func TestEC2009_60(t *testing.T) {
	n := gatecount.EC2009_60()

	count := n.Count()
	assert.Equal(t, 2, count[gatecount.NOT])
	assert.Equal(t, 3, count[gatecount.OR])
	assert.Equal(t, 5, n.Total())
	assert.Equal(t, []gatecount.Kind{gatecount.NOT, gatecount.OR}, n.Kinds())
}

func TestCount_Deduplicates(t *testing.T) {
	n, err := gatecount.FromMap(map[string][]string{
		"or":  {"c + e", "e+c", " c  +  e "},
		"NOT": {"~P1", "!P1", "P1'", "¬P2"},
		"AND": {"a.b", "b*a", "a·b·c"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"c + e"}, n.Unique(gatecount.OR))
	assert.Equal(t, []string{"~P1", "~P2"}, n.Unique(gatecount.NOT))
	assert.Equal(t, []string{"a . b", "a . b . c"}, n.Unique(gatecount.AND))
	assert.Equal(t, 5, n.Total())
}

func TestNetlist_Immutable(t *testing.T) {
	n := gatecount.EC2009_60()
	gates := n.Gates()
	gates[0].Expr = "tampered"
	assert.Equal(t, "~P1", n.Gates()[0].Expr)
}

func TestNew_Errors(t *testing.T) {
	tests := []struct {
		name string
		gate gatecount.Gate
	}{
		{"unknown kind", gatecount.Gate{Kind: "MUX", Expr: "a"}},
		{"empty", gatecount.Gate{Kind: gatecount.OR, Expr: "  "}},
		{"single operand", gatecount.Gate{Kind: gatecount.OR, Expr: "a"}},
		{"bare not", gatecount.Gate{Kind: gatecount.NOT, Expr: "~"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := gatecount.New(tt.gate)
			assert.Error(t, err)
		})
	}
}
