// Package analysis answers questions about the primitives symbolically with a SAT solver:
// which latch states are stable under a drive, and whether the gate-level JK
// characteristic equation agrees with the table evaluator.
package analysis

import (
	"fmt"
	"slices"
	"strings"

	"github.com/go-air/gini"
	"github.com/go-air/gini/logic"
	"github.com/go-air/gini/z"

	"github.com/aretw0/logicsim/pkg/domain"
	simlogic "github.com/aretw0/logicsim/pkg/logic"
)

const (
	satisfiable   = 1
	unsatisfiable = -1
)

// circuit wraps a gini combinational circuit with the gates the latches need.
type circuit struct {
	*logic.C
}

func newCircuit() *circuit {
	return &circuit{C: logic.NewC()}
}

func (c *circuit) constant(b domain.Bit) z.Lit {
	if b == domain.One {
		return c.T
	}
	return c.F
}

func (c *circuit) nand(a, b z.Lit) z.Lit {
	return c.And(a, b).Not()
}

func (c *circuit) nor(a, b z.Lit) z.Lit {
	return c.Or(a, b).Not()
}

func (c *circuit) xor(a, b z.Lit) z.Lit {
	return c.Or(c.And(a, b.Not()), c.And(a.Not(), b))
}

func (c *circuit) equiv(a, b z.Lit) z.Lit {
	return c.xor(a, b).Not()
}

func (c *circuit) gate(kind simlogic.LatchKind) func(a, b z.Lit) z.Lit {
	if kind == simlogic.NOR {
		return c.nor
	}
	return c.nand
}

// StableStates enumerates every (Q1,Q2) that is a fixed point of the latch under drive d,
// i.e. Q1 = G(P1,Q2) and Q2 = G(P2,Q1). The result is sorted by encoding.
func StableStates(kind simlogic.LatchKind, d domain.Drive) ([]domain.State, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	c := newCircuit()
	q1, q2 := c.Lit(), c.Lit()
	g := c.gate(kind)
	root := c.And(
		c.equiv(q1, g(c.constant(d.P1), q2)),
		c.equiv(q2, g(c.constant(d.P2), q1)),
	)

	s := gini.New()
	c.ToCnf(s)
	s.Add(root)
	s.Add(z.LitNull)

	var out []domain.State
	for len(out) < 4 {
		if s.Solve() != satisfiable {
			break
		}
		state := domain.NewState(bit(s.Value(q1)), bit(s.Value(q2)))
		out = append(out, state)

		// Block this model so the next solve yields a different pair.
		s.Add(block(q1, s.Value(q1)))
		s.Add(block(q2, s.Value(q2)))
		s.Add(z.LitNull)
	}

	slices.SortFunc(out, func(a, b domain.State) int {
		return strings.Compare(a.String(), b.String())
	})
	return out, nil
}

// VerifyJK checks Q+ = J·¬Q + ¬K·Q against the JK truth table for all eight assignments.
// It returns nil when they are equivalent, or an error naming a counterexample.
func VerifyJK() error {
	c := newCircuit()
	q, j, k := c.Lit(), c.Lit(), c.Lit()

	equation := c.Or(c.And(j, q.Not()), c.And(k.Not(), q))

	// Sum of minterms where the table evaluator yields 1.
	table := c.F
	for _, bq := range []domain.Bit{domain.Zero, domain.One} {
		for _, bj := range []domain.Bit{domain.Zero, domain.One} {
			for _, bk := range []domain.Bit{domain.Zero, domain.One} {
				next, err := simlogic.JK(bq, bj, bk)
				if err != nil {
					return err
				}
				if next != domain.One {
					continue
				}
				minterm := c.And(c.And(literal(q, bq), literal(j, bj)), literal(k, bk))
				table = c.Or(table, minterm)
			}
		}
	}

	s := gini.New()
	c.ToCnf(s)
	s.Add(c.xor(equation, table))
	s.Add(z.LitNull)

	switch s.Solve() {
	case unsatisfiable:
		return nil
	case satisfiable:
		return fmt.Errorf("JK characteristic mismatch at q=%s j=%s k=%s",
			bit(s.Value(q)), bit(s.Value(j)), bit(s.Value(k)))
	default:
		return fmt.Errorf("JK equivalence check did not finish")
	}
}

func literal(m z.Lit, b domain.Bit) z.Lit {
	if b == domain.One {
		return m
	}
	return m.Not()
}

func block(m z.Lit, v bool) z.Lit {
	if v {
		return m.Not()
	}
	return m
}

func bit(v bool) domain.Bit {
	if v {
		return domain.One
	}
	return domain.Zero
}
