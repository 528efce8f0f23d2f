/*
Package domain contains the core value types of the logic simulator.

It defines the binary values, states, traces and candidates that the evaluators and the
sequence generator exchange. This package is kept pure and free of external dependencies
like I/O or persistence, so every adapter (CLI, HTTP, MCP) shares the same vocabulary.

# Key Entities

  - Bit: A binary value, plus the Unknown power-on sentinel.
  - State: A fixed-width tuple of bits, encoded as a bit string ("01").
  - Trace: The ordered record of states produced by a simulation run.
  - Candidate: A named multiple-choice option to compare a Trace against.
  - MatchResult: The per-candidate verdicts of a cyclic-rotation comparison.
*/
package domain
