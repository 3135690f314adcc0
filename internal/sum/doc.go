// Package sum implements bounded prefix summation.
//
// A sequence is scanned left to right and each item is added to a running
// total. The scan stops the first time the total is strictly greater than
// the threshold, and the total returned includes the item that crossed it.
// If the threshold is never crossed the result is the sum of the whole
// sequence. An empty sequence sums to 0.
//
// The package is pure: no logging, no I/O, no goroutines. Input sequences
// are never modified.
package sum
