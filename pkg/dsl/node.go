package dsl

import "github.com/aretw0/logicsim/pkg/circuit"

// FlipFlopBuilder provides a fluent API for wiring one JK flip-flop.
type FlipFlopBuilder struct {
	builder *Builder
	j, k    string
}

// J sets the source feeding the J input ("0", "1", "q2", "!q1").
func (f *FlipFlopBuilder) J(src string) *FlipFlopBuilder {
	f.j = src
	return f
}

// K sets the source feeding the K input.
func (f *FlipFlopBuilder) K(src string) *FlipFlopBuilder {
	f.k = src
	return f
}

// Toggle ties J and K high.
func (f *FlipFlopBuilder) Toggle() *FlipFlopBuilder {
	f.j, f.k = "1", "1"
	return f
}

// Next returns to the counter builder to chain another flip-flop.
func (f *FlipFlopBuilder) Next() *Builder {
	return f.builder
}

func (f *FlipFlopBuilder) wire() (circuit.Wire, error) {
	j, err := circuit.ParseSource(f.j)
	if err != nil {
		return circuit.Wire{}, err
	}
	k, err := circuit.ParseSource(f.k)
	if err != nil {
		return circuit.Wire{}, err
	}
	return circuit.Wire{J: j, K: k}, nil
}
