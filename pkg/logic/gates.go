package logic

import "github.com/aretw0/logicsim/pkg/domain"

// Gates follow Kleene three-valued logic: a controlling input decides the output
// even when the other input is Unknown.

func Not(a domain.Bit) domain.Bit {
	return a.Not()
}

func And(a, b domain.Bit) domain.Bit {
	switch {
	case a == domain.Zero || b == domain.Zero:
		return domain.Zero
	case a == domain.One && b == domain.One:
		return domain.One
	default:
		return domain.Unknown
	}
}

func Or(a, b domain.Bit) domain.Bit {
	switch {
	case a == domain.One || b == domain.One:
		return domain.One
	case a == domain.Zero && b == domain.Zero:
		return domain.Zero
	default:
		return domain.Unknown
	}
}

func Nand(a, b domain.Bit) domain.Bit {
	return Not(And(a, b))
}

func Nor(a, b domain.Bit) domain.Bit {
	return Not(Or(a, b))
}
