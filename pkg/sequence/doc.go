/*
Package sequence drives a counter for a fixed number of cycles and compares the
recorded trace with multiple-choice candidates.

A Generator has two states. While cycles remain it is running; once the trace has been
recorded it is done and the trace is frozen. Matching treats the trace as circular: a
candidate matches when some left rotation of the trace equals it element by element.
*/
package sequence
