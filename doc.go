/*
Package bitvec provides a succinct dynamic bit vector.

A Vector is an indexed, mutable sequence of bits supporting point access,
point update and insertion at arbitrary positions, each in time
logarithmic in the vector's length. It is backed by a packed B+ tree
(package btree) whose interior nodes store prefix-sum counters in packed
bit fields and whose leaves are single machine words, so the space
overhead vanishes as the capacity grows.

	Operation     |   Vector        |  []bool
	--------------+-----------------+--------
	Index         |   O(log n)      |   O(1)
	Update        |   O(log n)      |   O(1)
	Insert        |   O(log n)      |   O(n)

Vectors are created with a fixed maximum capacity; the tree's node and
leaf pools are pre-sized from it. Removal of bits and rank/select queries
are not provided.

_________________________________________________________________________

# BSD 3-Clause License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the LICENSE file for details.
*/
package bitvec

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// T traces to a global core-tracer.
func T() tracing.Trace {
	return gtrace.CoreTracer
}
