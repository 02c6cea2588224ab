/*
Package pretty renders bit vectors and their tree structure to a console.

Output is colorized (set bits and node headers highlighted) and wrapped to
the width of the terminal when stdout is interactive. This is a debugging
surface only; it has no influence on vector semantics.

_________________________________________________________________________

# BSD 3-Clause License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the LICENSE file for details.
*/
package pretty

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'bitvec'
func tracer() tracing.Trace {
	return tracing.Select("bitvec")
}
