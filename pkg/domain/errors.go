package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidBit is returned when a state or control value is outside {0,1}
// where only a defined bit is allowed.
var ErrInvalidBit = errors.New("invalid bit")

// ErrIndeterminate is returned when an unknown power-on latch pair never resolves to a defined state.
var ErrIndeterminate = errors.New("latch state is indeterminate")

// ErrInvalidCycles is returned when a simulation is requested for fewer than one cycle.
var ErrInvalidCycles = errors.New("cycle count must be at least 1")

// ErrUnknownCircuit is returned when a circuit name is not registered in the catalog.
var ErrUnknownCircuit = errors.New("unknown circuit")

// ErrUnmappedState is returned when a feedback table has no entry for the current state.
var ErrUnmappedState = errors.New("no feedback entry for state")

// ErrNoMatch is returned by strict answer resolution when no candidate matches.
var ErrNoMatch = errors.New("no candidate matches cyclically")

// ErrAmbiguousMatch is returned by strict answer resolution when several candidates match.
var ErrAmbiguousMatch = errors.New("more than one candidate matches")

// BitError reports the offending position and raw value of an invalid bit.
type BitError struct {
	Position int
	Value    string
}

func (e *BitError) Error() string {
	if e.Position < 0 {
		return fmt.Sprintf("%s: %q", ErrInvalidBit, e.Value)
	}
	return fmt.Sprintf("%s at position %d: %q", ErrInvalidBit, e.Position, e.Value)
}

func (e *BitError) Unwrap() error {
	return ErrInvalidBit
}

// AmbiguityError lists the candidates that matched when only one was expected.
type AmbiguityError struct {
	Matches []string
}

func (e *AmbiguityError) Error() string {
	return fmt.Sprintf("%s: %s", ErrAmbiguousMatch, strings.Join(e.Matches, ", "))
}

func (e *AmbiguityError) Unwrap() error {
	return ErrAmbiguousMatch
}

// ValidationError represents a single field validation failure in a problem document.
type ValidationError struct {
	Key    string // Field name
	Reason string // Human-readable reason for failure
	Value  any    // The value that failed validation
}

func (e *ValidationError) Error() string {
	if e.Value == nil {
		return fmt.Sprintf("field %q: %s", e.Key, e.Reason)
	}
	return fmt.Sprintf("field %q: %s (got %v)", e.Key, e.Reason, e.Value)
}

// AggregateError represents multiple validation failures.
type AggregateError struct {
	Errors []error
}

func (e *AggregateError) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	msg := fmt.Sprintf("%d validation errors:\n", len(e.Errors))
	for i, err := range e.Errors {
		msg += fmt.Sprintf("  %d. %s\n", i+1, err.Error())
	}
	return msg
}

// Unwrap exposes the individual failures to errors.Is and errors.As.
func (e *AggregateError) Unwrap() []error {
	return e.Errors
}

// ValidationErrors returns all validation errors if err is an AggregateError.
// Otherwise returns nil.
func ValidationErrors(err error) []error {
	var aggr *AggregateError
	if errors.As(err, &aggr) {
		return aggr.Errors
	}
	return nil
}
