/*
Package logic evaluates two-state sequential primitives.

It provides the JK flip-flop next-state function and the cross-coupled NAND/NOR latch,
built on three-valued gates so that the undefined power-on condition of a latch can be
resolved by its drive signals. Every function is pure.
*/
package logic
