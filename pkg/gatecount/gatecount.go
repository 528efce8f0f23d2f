// Package gatecount counts the distinct gates a set of boolean expressions needs.
//
// A Netlist enumerates the gate expressions of a circuit. Two expressions that differ only
// in spacing, or in operand order for a commutative gate, share one physical gate, so the
// minimum gate count per kind is the cardinality of the normalized expression set.
package gatecount

import (
	"fmt"
	"strings"

	"golang.org/x/exp/slices"
)

// Kind is a gate type.
type Kind string

const (
	NOT  Kind = "NOT"
	AND  Kind = "AND"
	OR   Kind = "OR"
	NAND Kind = "NAND"
	NOR  Kind = "NOR"
	XOR  Kind = "XOR"
)

var operators = map[Kind]string{
	AND:  ".",
	OR:   "+",
	NAND: ".",
	NOR:  "+",
	XOR:  "^",
}

// ParseKind accepts a gate name in any case.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToUpper(strings.TrimSpace(s)))
	if k == NOT {
		return k, nil
	}
	if _, ok := operators[k]; ok {
		return k, nil
	}
	return "", fmt.Errorf("unknown gate kind %q", s)
}

// Gate is one gate expression, e.g. {OR, "c + e"}.
type Gate struct {
	Kind Kind   `json:"kind" yaml:"kind" mapstructure:"kind"`
	Expr string `json:"expr" yaml:"expr" mapstructure:"expr"`
}

// Netlist is an immutable collection of gate expressions.
type Netlist struct {
	gates []Gate
}

// New normalizes and stores the gates. The input slice is not retained.
func New(gates ...Gate) (*Netlist, error) {
	n := &Netlist{gates: make([]Gate, 0, len(gates))}
	for i, g := range gates {
		kind, err := ParseKind(string(g.Kind))
		if err != nil {
			return nil, fmt.Errorf("gate %d: %w", i, err)
		}
		expr, err := Normalize(kind, g.Expr)
		if err != nil {
			return nil, fmt.Errorf("gate %d: %w", i, err)
		}
		n.gates = append(n.gates, Gate{Kind: kind, Expr: expr})
	}
	return n, nil
}

// FromMap builds a netlist from kind -> expressions.
func FromMap(m map[string][]string) (*Netlist, error) {
	kinds := make([]string, 0, len(m))
	for k := range m {
		kinds = append(kinds, k)
	}
	slices.Sort(kinds)

	var gates []Gate
	for _, k := range kinds {
		for _, expr := range m[k] {
			gates = append(gates, Gate{Kind: Kind(k), Expr: expr})
		}
	}
	return New(gates...)
}

// Gates returns a copy of the normalized gates in insertion order.
func (n *Netlist) Gates() []Gate {
	return slices.Clone(n.gates)
}

// Unique returns the distinct normalized expressions of a kind, sorted.
func (n *Netlist) Unique(kind Kind) []string {
	var out []string
	for _, g := range n.gates {
		if g.Kind == kind {
			out = append(out, g.Expr)
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}

// Count returns the minimum number of gates per kind.
func (n *Netlist) Count() map[Kind]int {
	out := make(map[Kind]int)
	for _, k := range n.Kinds() {
		out[k] = len(n.Unique(k))
	}
	return out
}

// Kinds returns the gate kinds present, sorted.
func (n *Netlist) Kinds() []Kind {
	var kinds []Kind
	for _, g := range n.gates {
		kinds = append(kinds, g.Kind)
	}
	slices.Sort(kinds)
	return slices.Compact(kinds)
}

// Total is the sum of Count over all kinds.
func (n *Netlist) Total() int {
	total := 0
	for _, c := range n.Count() {
		total += c
	}
	return total
}

// Normalize canonicalizes an expression for its gate kind.
// NOT accepts ~a, !a, ¬a and a'; binary kinds accept +, ., *, · and ^ as separators.
func Normalize(kind Kind, expr string) (string, error) {
	e := strings.Join(strings.Fields(expr), "")
	if e == "" {
		return "", fmt.Errorf("empty %s expression", kind)
	}

	if kind == NOT {
		switch {
		case strings.HasPrefix(e, "~"), strings.HasPrefix(e, "!"):
			e = e[1:]
		case strings.HasPrefix(e, "¬"):
			e = strings.TrimPrefix(e, "¬")
		case strings.HasSuffix(e, "'"):
			e = strings.TrimSuffix(e, "'")
		}
		if e == "" {
			return "", fmt.Errorf("NOT expression %q has no operand", expr)
		}
		return "~" + e, nil
	}

	op, ok := operators[kind]
	if !ok {
		return "", fmt.Errorf("unknown gate kind %q", kind)
	}
	operands := strings.FieldsFunc(e, func(r rune) bool {
		return strings.ContainsRune("+.*·^⊕", r)
	})
	if len(operands) < 2 {
		return "", fmt.Errorf("%s expression %q needs at least two operands", kind, expr)
	}
	slices.Sort(operands)
	return strings.Join(operands, " "+op+" "), nil
}

// EC2009_60 is the segment-driver netlist of the seven-segment exam question:
// g = P1 + P2, d = c + e, e = b + c, with both select lines inverted.
func EC2009_60() *Netlist {
	n, err := New(
		Gate{Kind: NOT, Expr: "~P1"},
		Gate{Kind: NOT, Expr: "~P2"},
		Gate{Kind: OR, Expr: "P1 + P2"},
		Gate{Kind: OR, Expr: "c + e"},
		Gate{Kind: OR, Expr: "b + c"},
	)
	if err != nil {
		panic(err)
	}
	return n
}
