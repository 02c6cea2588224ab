package bitvec

import (
	"github.com/npillmayer/bitvec/btree"
)

// Error values surfaced by Vector operations. They are the engine's
// errors re-exported, so errors.Is works across package boundaries.
var (
	// ErrIndexOutOfBounds signals an index beyond the vector's current
	// length (or beyond length+1 for Insert).
	ErrIndexOutOfBounds = btree.ErrIndexOutOfBounds
	// ErrCapacityExhausted signals that the vector cannot take more bits.
	ErrCapacityExhausted = btree.ErrCapacityExhausted
	// ErrInvalidConfig signals unusable construction parameters.
	ErrInvalidConfig = btree.ErrInvalidConfig
)
