package domain

import (
	"strings"
)

// State is a fixed-width tuple of bits, Q1 first.
// A State is never mutated once built; every step produces a new one.
type State []Bit

// NewState copies bits into a new State.
func NewState(bits ...Bit) State {
	s := make(State, len(bits))
	copy(s, bits)
	return s
}

// ZeroState returns the all-zeros state of the given width.
func ZeroState(width int) State {
	return make(State, width)
}

// ParseState decodes a bit string such as "01" or "xx".
func ParseState(s string) (State, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, &BitError{Position: 0, Value: s}
	}
	out := make(State, 0, len(s))
	for i, r := range s {
		b, err := ParseBit(string(r))
		if err != nil {
			return nil, &BitError{Position: i, Value: string(r)}
		}
		out = append(out, b)
	}
	return out, nil
}

// MustState is like ParseState but panics on error.
func MustState(s string) State {
	st, err := ParseState(s)
	if err != nil {
		panic(err)
	}
	return st
}

// Width is the number of bits in the state.
func (s State) Width() int {
	return len(s)
}

// Defined reports whether no bit is Unknown.
func (s State) Defined() bool {
	for _, b := range s {
		if !b.Defined() {
			return false
		}
	}
	return true
}

// Validate returns a *BitError for the first bit that is not 0 or 1.
func (s State) Validate() error {
	for i, b := range s {
		if !b.Defined() {
			return &BitError{Position: i, Value: b.String()}
		}
	}
	return nil
}

// Equal compares two states bit by bit.
func (s State) Equal(other State) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// With returns a copy of s with bit i replaced.
func (s State) With(i int, b Bit) State {
	out := NewState(s...)
	out[i] = b
	return out
}

func (s State) String() string {
	var sb strings.Builder
	for _, b := range s {
		sb.WriteString(b.String())
	}
	return sb.String()
}

// Trace is the ordered record of states, one per simulated cycle.
type Trace []State

// Strings returns the bit-string encoding of every state in order.
func (t Trace) Strings() []string {
	out := make([]string, len(t))
	for i, s := range t {
		out[i] = s.String()
	}
	return out
}

// Len is the number of recorded cycles.
func (t Trace) Len() int {
	return len(t)
}

// MarshalText encodes the state as its bit string.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a bit string.
func (s *State) UnmarshalText(text []byte) error {
	v, err := ParseState(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}
