/*
Package logicsim simulates small sequential logic circuits and answers exam-style questions about them.

It covers JK flip-flop counters, cross-coupled NAND and NOR latches and gate counting over
Boolean expressions. Bits are three-valued (0, 1 and unknown) so power-on latches can be
modelled directly.

# Concept

A counter is a set of JK flip-flops whose J and K inputs are derived from the current
state by a feedback rule. Clocking the counter from its initial state produces a trace.
A multiple-choice candidate matches when it is a cyclic rotation of the trace.

Each latch drive applies one simultaneous update to the output pair. An unknown power-on
pair is updated until no unknown output remains; when that never happens the drive reports
ErrIndeterminate.

# Usage

	sim := logicsim.New()

	trace, err := sim.Simulate(ctx, "jk-ring-counter", 6)
	if err != nil {
		log.Fatal(err)
	}

	sol, err := sim.Answer(ctx, "jk-ring-counter", trace, map[string][]string{
		"A": {"11", "10", "00", "11", "10", "00"},
		"D": {"01", "10", "00", "01", "10", "00"},
	})
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(sol.Answer) // D

Problem documents (YAML or JSON) bundle a circuit, its candidates and the expected answer.
See the problem package and the logicsim command.
*/
package logicsim
