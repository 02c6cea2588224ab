package btree

import "errors"

var (
	// ErrInvalidConfig signals an invalid tree configuration.
	ErrInvalidConfig = errors.New("btree: invalid configuration")
	// ErrIndexOutOfBounds signals an invalid positional index.
	ErrIndexOutOfBounds = errors.New("btree: index out of bounds")
	// ErrCapacityExhausted signals that the vector is at its capacity, or
	// that the pre-sized node or leaf pools are used up. An insert into a
	// vector at capacity is rejected before any change; after pool
	// exhaustion the tree is in an unspecified state and must not be used
	// further.
	ErrCapacityExhausted = errors.New("btree: capacity exhausted")
)
