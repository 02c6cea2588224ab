/*
Package btree implements a succinct dynamic bit vector as a packed B+ tree.

The tree is not a generic container: it is specialized for bit sequences
with positional editing in succinct space. Interior nodes pack per-child
size and rank counters, stored as prefix sums in fixed-width bit fields,
together with child pointers into a handful of machine words; leaves are
single 64-bit words of bits. Point access descends by searching the packed
size counters one word at a time; insertion uses local redistribution over
a window of adjacent siblings before splitting, which yields amortized
constant work near the leaves.

Node and leaf storage is pre-sized from the configured capacity and
allocated monotonically; nothing is ever freed.

The tree is single-threaded: readers must be serialized against writers
externally.
*/
package btree

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'bitvec'
func tracer() tracing.Trace {
	return tracing.Select("bitvec")
}

func assert(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}
