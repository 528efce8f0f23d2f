/*
Package dsl provides a fluent builder for synchronous JK counters.

It lets callers wire a counter in Go instead of a problem file, with the same literal
sources the file format accepts (constants, Qn and its complement).

Example usage:

	package main

	import (
		"github.com/aretw0/logicsim/pkg/dsl"
	)

	func main() {
		b := dsl.NewCounter("ring").Initial("00")

		b.FlipFlop().J("q2").K("1")
		b.FlipFlop().J("!q1").K("1")

		counter, err := b.Build()
		// ... pass counter to sequence.Simulate(...)
	}
*/
package dsl
