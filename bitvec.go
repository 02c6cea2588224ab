package bitvec

/*
BSD 3-Clause License

Copyright (c) Norbert Pillmayer

Please refer to the License file in the repository root.

*/

import (
	"strings"

	"github.com/npillmayer/bitvec/btree"
)

// Vector is a dynamic bit vector with a fixed maximum capacity.
//
// The zero Vector is not usable; create vectors with New, NewWidth or one
// of the builders. Vectors are not safe for concurrent use.
type Vector struct {
	tree *btree.Tree
}

// New creates an empty vector able to hold up to capacity bits, using the
// default tree node width.
func New(capacity int) (*Vector, error) {
	return NewWidth(capacity, 0)
}

// NewWidth creates an empty vector with an explicit tree node width, a
// multiple of 64 (0 selects the default). Wider nodes mean flatter trees
// and coarser counter rows; the default suits most capacities.
func NewWidth(capacity, nodeWidth int) (*Vector, error) {
	tree, err := btree.New(btree.Config{Capacity: capacity, NodeWidth: nodeWidth})
	if err != nil {
		return nil, err
	}
	return &Vector{tree: tree}, nil
}

// Len returns the current number of bits.
func (v *Vector) Len() int { return v.tree.Size() }

// Capacity returns the maximum number of bits the vector can hold.
func (v *Vector) Capacity() int { return v.tree.Capacity() }

// Count returns the number of set bits.
func (v *Vector) Count() int { return v.tree.Rank() }

// IsEmpty reports whether the vector holds no bits.
func (v *Vector) IsEmpty() bool { return v.tree.IsEmpty() }

// IsFull reports whether the vector is at capacity.
func (v *Vector) IsFull() bool { return v.tree.IsFull() }

// Bit returns the bit at position i.
func (v *Vector) Bit(i int) (bool, error) {
	return v.tree.Access(i)
}

// SetBit overwrites the bit at position i.
func (v *Vector) SetBit(i int, bit bool) error {
	return v.tree.SetBit(i, bit)
}

// Insert inserts a bit just before position i; i == Len() appends.
func (v *Vector) Insert(i int, bit bool) error {
	return v.tree.Insert(i, bit)
}

// PushBack appends a bit at the end of the vector.
func (v *Vector) PushBack(bit bool) error {
	return v.tree.Insert(v.tree.Size(), bit)
}

// PushFront inserts a bit at the front of the vector.
func (v *Vector) PushFront(bit bool) error {
	return v.tree.Insert(0, bit)
}

// Each calls fn for every bit in order, until fn returns false.
func (v *Vector) Each(fn func(i int, bit bool) bool) {
	pos := 0
	v.tree.WalkNodes(func(n btree.NodeInfo, parent, slot int) bool {
		if !n.Leaf {
			return true
		}
		for j := 0; j < n.Size; j++ {
			if !fn(pos, n.Word>>uint(j)&1 != 0) {
				return false
			}
			pos++
		}
		return true
	})
}

// String returns the vector as a string of '0' and '1' characters, lowest
// position first. This is an expensive operation on large vectors: it
// materializes every bit.
func (v *Vector) String() string {
	var sb strings.Builder
	sb.Grow(v.Len())
	v.Each(func(i int, bit bool) bool {
		if bit {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
		return true
	})
	return sb.String()
}

// Tree exposes the underlying engine, for debugging and visualization.
func (v *Vector) Tree() *btree.Tree { return v.tree }
