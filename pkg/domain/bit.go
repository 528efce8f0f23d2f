package domain

import (
	"fmt"
	"strings"
)

// Bit is a single binary signal value.
// Unknown models the undefined power-on condition of a latch output.
type Bit uint8

const (
	Zero    Bit = 0
	One     Bit = 1
	Unknown Bit = 2
)

// Valid reports whether b is one of the three representable values.
func (b Bit) Valid() bool {
	return b <= Unknown
}

// Defined reports whether b is 0 or 1.
func (b Bit) Defined() bool {
	return b == Zero || b == One
}

// Not returns the complement of a defined bit. Unknown stays Unknown.
func (b Bit) Not() Bit {
	switch b {
	case Zero:
		return One
	case One:
		return Zero
	default:
		return Unknown
	}
}

func (b Bit) String() string {
	switch b {
	case Zero:
		return "0"
	case One:
		return "1"
	case Unknown:
		return "x"
	default:
		return fmt.Sprintf("Bit(%d)", uint8(b))
	}
}

// BitFromInt converts 0 and 1 to a Bit. The legacy sentinel -1 maps to Unknown.
func BitFromInt(v int) (Bit, error) {
	switch v {
	case 0:
		return Zero, nil
	case 1:
		return One, nil
	case -1:
		return Unknown, nil
	default:
		return Unknown, &BitError{Position: -1, Value: fmt.Sprint(v)}
	}
}

// ParseBit accepts "0", "1" and the unknown spellings "x", "X", "-1".
func ParseBit(s string) (Bit, error) {
	switch strings.TrimSpace(s) {
	case "0":
		return Zero, nil
	case "1":
		return One, nil
	case "x", "X", "-1":
		return Unknown, nil
	default:
		return Unknown, &BitError{Position: -1, Value: s}
	}
}

// MustBit is like ParseBit but panics on error. Intended for fixtures and tables.
func MustBit(s string) Bit {
	b, err := ParseBit(s)
	if err != nil {
		panic(err)
	}
	return b
}

// MarshalText encodes the bit as "0", "1" or "x".
func (b Bit) MarshalText() ([]byte, error) {
	if !b.Valid() {
		return nil, &BitError{Position: -1, Value: b.String()}
	}
	return []byte(b.String()), nil
}

// UnmarshalText accepts the spellings of ParseBit.
func (b *Bit) UnmarshalText(text []byte) error {
	v, err := ParseBit(string(text))
	if err != nil {
		return err
	}
	*b = v
	return nil
}
