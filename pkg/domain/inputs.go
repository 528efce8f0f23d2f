package domain

import (
	"fmt"
	"strings"
)

// JK holds the control inputs of one JK flip-flop for a single cycle.
type JK struct {
	J Bit `json:"j"`
	K Bit `json:"k"`
}

// Drive holds the two drive signals of a cross-coupled latch.
type Drive struct {
	P1 Bit `json:"p1"`
	P2 Bit `json:"p2"`
}

// Validate fails fast on a drive signal that is not 0 or 1.
func (d Drive) Validate() error {
	if !d.P1.Defined() {
		return &BitError{Position: 0, Value: d.P1.String()}
	}
	if !d.P2.Defined() {
		return &BitError{Position: 1, Value: d.P2.String()}
	}
	return nil
}

func (d Drive) String() string {
	return "(" + d.P1.String() + ", " + d.P2.String() + ")"
}

// ParseDrive decodes a latch drive written as "01", "0,1" or "0 1".
// Both signals must be 0 or 1.
func ParseDrive(s string) (Drive, error) {
	compact := strings.Map(func(r rune) rune {
		if r == ',' || r == ' ' || r == '\t' {
			return -1
		}
		return r
	}, s)
	st, err := ParseState(compact)
	if err != nil {
		return Drive{}, err
	}
	if st.Width() != 2 {
		return Drive{}, fmt.Errorf("%w: drive %q must have 2 bits", ErrInvalidBit, s)
	}
	d := Drive{P1: st[0], P2: st[1]}
	return d, d.Validate()
}
