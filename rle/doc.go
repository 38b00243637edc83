/*
Package rle implements a delta-compressed run-length sequence of integers.

A sequence stores its values as a mix of raw integers and runs. A run is a
base value (the minimum of a stretch of the input) together with the
stretch's offsets from that base, bit-packed at a fixed width of 4 to 19
bits; the width is recorded in a 4-bit header in front of the packed
offsets. A run only forms where at least three consecutive values fit a
single width window, and the first value of a sequence is always stored
raw, so head access never unpacks anything.

Sequences are immutable values. Iteration is amortized O(1) per value, and
Map, Zip and Reduce stream segment by segment without ever materializing
the whole sequence as a slice.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package rle

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'exa.rle'.
func tracer() tracing.Trace {
	return tracing.Select("exa.rle")
}
