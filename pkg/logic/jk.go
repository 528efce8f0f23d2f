package logic

import "github.com/aretw0/logicsim/pkg/domain"

// JK returns the next output of a JK flip-flop.
//
//	j k | next
//	0 0 | q      hold
//	0 1 | 0      reset
//	1 0 | 1      set
//	1 1 | not q  toggle
//
// All three bits must be defined.
func JK(q, j, k domain.Bit) (domain.Bit, error) {
	for i, b := range [...]domain.Bit{q, j, k} {
		if !b.Defined() {
			return domain.Unknown, &domain.BitError{Position: i, Value: b.String()}
		}
	}

	switch {
	case j == domain.Zero && k == domain.Zero:
		return q, nil
	case j == domain.Zero && k == domain.One:
		return domain.Zero, nil
	case j == domain.One && k == domain.Zero:
		return domain.One, nil
	default:
		return q.Not(), nil
	}
}

// Characteristic evaluates the JK characteristic equation Q+ = J·¬Q + ¬K·Q gate by gate.
// It agrees with JK on every defined input.
func Characteristic(q, j, k domain.Bit) domain.Bit {
	return Or(And(j, Not(q)), And(Not(k), q))
}
