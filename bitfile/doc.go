/*
Package bitfile loads binary files as bit vectors.

Opening and stat-ing a file happens synchronously; the file's bytes are
then streamed into the vector by a background goroutine, fragment by
fragment. Progress is broadcast to any number of subscribers. The loaded
vector is handed over only after loading completes, so the single-owner
rule of bit vectors is preserved.

Bytes map to bits LSB-first: bit i of the vector is bit i%8 of byte i/8.

_________________________________________________________________________

# BSD 3-Clause License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the LICENSE file for details.
*/
package bitfile

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'bitvec'
func tracer() tracing.Trace {
	return tracing.Select("bitvec")
}
