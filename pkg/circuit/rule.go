package circuit

import (
	"fmt"

	"github.com/aretw0/logicsim/pkg/domain"
)

// Rule maps the current state to the control inputs of the next cycle,
// one JK pair per flip-flop.
type Rule interface {
	Inputs(s domain.State) ([]domain.JK, error)
}

// RuleFunc adapts an ordinary function to a Rule.
type RuleFunc func(s domain.State) ([]domain.JK, error)

func (f RuleFunc) Inputs(s domain.State) ([]domain.JK, error) {
	return f(s)
}

// Table is a lookup table from state encoding ("01") to inputs.
type Table map[string][]domain.JK

func (t Table) Inputs(s domain.State) ([]domain.JK, error) {
	in, ok := t[s.String()]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnmappedState, s)
	}
	return in, nil
}

// Tabulate evaluates r on every state of the given width and returns the equivalent Table.
func Tabulate(r Rule, width int) (Table, error) {
	t := make(Table, 1<<width)
	for v := 0; v < 1<<width; v++ {
		s := domain.ZeroState(width)
		for i := 0; i < width; i++ {
			if v&(1<<(width-1-i)) != 0 {
				s[i] = domain.One
			}
		}
		in, err := r.Inputs(s)
		if err != nil {
			return nil, err
		}
		t[s.String()] = in
	}
	return t, nil
}
