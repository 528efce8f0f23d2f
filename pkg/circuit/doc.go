// Package circuit describes small synchronous JK counters as data: a width, an initial
// state and a feedback rule that maps the current state to every flip-flop's J and K.
package circuit
