package circuit

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aretw0/logicsim/pkg/domain"
)

// Source is a single literal feeding a J or K input: a constant,
// a flip-flop output, or its complement.
type Source struct {
	Const  domain.Bit `json:"const,omitempty"`
	Index  int        `json:"index"` // 1-based flip-flop index; 0 means Const
	Negate bool       `json:"negate,omitempty"`
}

// Const returns a source tied to a fixed level.
func Const(b domain.Bit) Source {
	return Source{Const: b}
}

// Q returns a source reading flip-flop i (1-based).
func Q(i int) Source {
	return Source{Index: i}
}

// NotQ returns a source reading the complement of flip-flop i (1-based).
func NotQ(i int) Source {
	return Source{Index: i, Negate: true}
}

// ParseSource accepts "0", "1", "qN", "QN", "!qN", "~qN" and "qN'".
func ParseSource(s string) (Source, error) {
	lit := strings.TrimSpace(s)
	switch lit {
	case "0":
		return Const(domain.Zero), nil
	case "1":
		return Const(domain.One), nil
	}

	neg := false
	if strings.HasPrefix(lit, "!") || strings.HasPrefix(lit, "~") {
		neg, lit = true, lit[1:]
	} else if strings.HasSuffix(lit, "'") {
		neg, lit = true, strings.TrimSuffix(lit, "'")
	}
	if len(lit) < 2 || (lit[0] != 'q' && lit[0] != 'Q') {
		return Source{}, fmt.Errorf("invalid source %q", s)
	}
	i, err := strconv.Atoi(lit[1:])
	if err != nil || i < 1 {
		return Source{}, fmt.Errorf("invalid source %q", s)
	}
	return Source{Index: i, Negate: neg}, nil
}

// Eval reads the source from state s.
func (src Source) Eval(s domain.State) (domain.Bit, error) {
	if src.Index == 0 {
		if !src.Const.Defined() {
			return domain.Unknown, &domain.BitError{Position: -1, Value: src.Const.String()}
		}
		return src.Const, nil
	}
	if src.Index > s.Width() {
		return domain.Unknown, fmt.Errorf("source q%d out of range for width %d", src.Index, s.Width())
	}
	b := s[src.Index-1]
	if src.Negate {
		b = b.Not()
	}
	return b, nil
}

func (src Source) String() string {
	if src.Index == 0 {
		return src.Const.String()
	}
	if src.Negate {
		return "!q" + strconv.Itoa(src.Index)
	}
	return "q" + strconv.Itoa(src.Index)
}

// Wire holds the J and K sources of one flip-flop.
type Wire struct {
	J Source `json:"j"`
	K Source `json:"k"`
}

// Wiring is a Rule where every input is a single literal.
type Wiring []Wire

func (w Wiring) Inputs(s domain.State) ([]domain.JK, error) {
	if len(w) != s.Width() {
		return nil, fmt.Errorf("wiring has %d flip-flops, state has %d bits", len(w), s.Width())
	}
	out := make([]domain.JK, len(w))
	for i, wire := range w {
		j, err := wire.J.Eval(s)
		if err != nil {
			return nil, fmt.Errorf("ff%d J: %w", i+1, err)
		}
		k, err := wire.K.Eval(s)
		if err != nil {
			return nil, fmt.Errorf("ff%d K: %w", i+1, err)
		}
		out[i] = domain.JK{J: j, K: k}
	}
	return out, nil
}

// Validate checks every source index against the wiring width.
func (w Wiring) Validate() error {
	for i, wire := range w {
		for _, src := range [...]Source{wire.J, wire.K} {
			if src.Index > len(w) || src.Index < 0 {
				return fmt.Errorf("ff%d: source %s out of range for width %d", i+1, src, len(w))
			}
			if src.Index == 0 && !src.Const.Defined() {
				return fmt.Errorf("ff%d: %w", i+1, &domain.BitError{Position: -1, Value: src.Const.String()})
			}
		}
	}
	return nil
}
