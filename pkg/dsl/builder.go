package dsl

import (
	"errors"
	"fmt"

	"github.com/aretw0/logicsim/pkg/circuit"
	"github.com/aretw0/logicsim/pkg/domain"
)

// Builder manages the counter construction.
type Builder struct {
	name    string
	initial string
	ffs     []*FlipFlopBuilder
}

// NewCounter creates a new counter builder.
func NewCounter(name string) *Builder {
	return &Builder{name: name}
}

// Initial sets the reset state as a bit string. Defaults to all zeros.
func (b *Builder) Initial(bits string) *Builder {
	b.initial = bits
	return b
}

// FlipFlop appends a flip-flop. Its inputs default to J=0, K=0 (hold).
func (b *Builder) FlipFlop() *FlipFlopBuilder {
	ff := &FlipFlopBuilder{builder: b, j: "0", k: "0"}
	b.ffs = append(b.ffs, ff)
	return ff
}

// Build compiles the wiring into a counter.
func (b *Builder) Build() (*circuit.Counter, error) {
	if len(b.ffs) == 0 {
		return nil, fmt.Errorf("counter %q has no flip-flops", b.name)
	}

	initial := domain.ZeroState(len(b.ffs))
	if b.initial != "" {
		s, err := domain.ParseState(b.initial)
		if err != nil {
			return nil, fmt.Errorf("initial state: %w", err)
		}
		if err := s.Validate(); err != nil {
			return nil, fmt.Errorf("initial state: %w", err)
		}
		if s.Width() != len(b.ffs) {
			return nil, fmt.Errorf("initial state %q has %d bits, counter has %d flip-flops", b.initial, s.Width(), len(b.ffs))
		}
		initial = s
	}

	var errs []error
	wiring := make(circuit.Wiring, len(b.ffs))
	for i, ff := range b.ffs {
		wire, err := ff.wire()
		if err != nil {
			errs = append(errs, fmt.Errorf("ff%d: %w", i+1, err))
			continue
		}
		wiring[i] = wire
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	if err := wiring.Validate(); err != nil {
		return nil, err
	}

	return &circuit.Counter{Name: b.name, Initial: initial, Rule: wiring}, nil
}
