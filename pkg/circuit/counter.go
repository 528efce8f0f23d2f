package circuit

import (
	"fmt"

	"github.com/aretw0/logicsim/pkg/domain"
	"github.com/aretw0/logicsim/pkg/logic"
)

// Counter is a synchronous counter of JK flip-flops sharing one clock.
type Counter struct {
	Name    string
	Initial domain.State
	Rule    Rule
}

// Width is the number of flip-flops.
func (c *Counter) Width() int {
	return c.Initial.Width()
}

// Step computes the state after one clock edge together with the inputs that produced it.
func (c *Counter) Step(s domain.State) (domain.State, []domain.JK, error) {
	if err := s.Validate(); err != nil {
		return nil, nil, err
	}
	in, err := c.Rule.Inputs(s)
	if err != nil {
		return nil, nil, err
	}
	if len(in) != s.Width() {
		return nil, nil, fmt.Errorf("rule returned %d input pairs for %d flip-flops", len(in), s.Width())
	}

	next := make(domain.State, s.Width())
	for i, jk := range in {
		b, err := logic.JK(s[i], jk.J, jk.K)
		if err != nil {
			return nil, nil, fmt.Errorf("ff%d: %w", i+1, err)
		}
		next[i] = b
	}
	return next, in, nil
}

// RingCounter is the two flip-flop counter with J1 = Q2, K1 = 1, J2 = ¬Q1, K2 = 1,
// starting from 00.
func RingCounter() *Counter {
	return &Counter{
		Name:    "jk-ring-counter",
		Initial: domain.ZeroState(2),
		Rule: Wiring{
			{J: Q(2), K: Const(domain.One)},
			{J: NotQ(1), K: Const(domain.One)},
		},
	}
}
