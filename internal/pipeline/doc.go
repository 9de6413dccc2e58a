// Package pipeline provides an ordered processing stage with bounded concurrency.
//
// Items are committed one at a time in the order they were submitted. After the commit, every item may wait for a
// delay. The delays of up to capacity items overlap, which bounds the number of items in flight. Results are
// completed in submission order, no matter how the delays of individual items interleave.
package pipeline
