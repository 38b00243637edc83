/*
Package minheap implements a minimum-priority heap of keyed entries, with
three interchangeable backing strategies behind a single contract.

A heap holds entries (key, value), where values are finite numbers or the
distinguished infinite value, which sorts above every number. Entries are
totally ordered by value first, then by key ascending to break ties. The
minimum entry is always retrievable in O(1) via Peek.

The three strategies trade the cost of their operations differently:

  - Map:  a key→value table plus a cached minimum key. O(1) everything,
    except Pop and Delete of the current minimum, which rescan in O(N).
  - Ord:  a single slice of entries kept sorted ascending. O(1) Peek/Pop,
    O(N) everything else.
  - Tree: a persistent complete binary tree with the min-heap property,
    manipulated through address-calculated cursor zippers. O(log N)
    Add/Pop/Peek, O(N) for key lookups, since no key index is kept.

The strategies are deliberately not merged; pick one at construction time
and benchmark against the others through the shared Heap interface.

All heaps are immutable values: every mutating operation returns a new heap
and leaves its receiver unchanged. The Tree strategy shares all unmodified
subtrees between incarnations, so a mutation allocates only the O(log N)
path from the root to the touched position.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package minheap

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'exa.minheap'.
func tracer() tracing.Trace {
	return tracing.Select("exa.minheap")
}
