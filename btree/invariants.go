package btree

import (
	"fmt"
	"math/bits"
)

// Check validates the structural invariants of the whole tree.
//
// This checker is intentionally strict and meant for tests: it walks
// every node, re-derives subtree sizes and ranks from the leaves and
// compares them against the packed prefix-sum counters.
func (t *Tree) Check() error {
	if t == nil {
		return fmt.Errorf("%w: nil tree", ErrInvalidConfig)
	}
	if t.height < 1 {
		return fmt.Errorf("%w: height must be at least 1", ErrInvalidConfig)
	}
	size, rank, err := t.checkNode(t.rootRef())
	if err != nil {
		return err
	}
	if size != t.size {
		return fmt.Errorf("%w: leaves hold %d bits, tree claims %d", ErrInvalidConfig, size, t.size)
	}
	if rank != t.rank {
		return fmt.Errorf("%w: leaves hold %d set bits, tree claims %d", ErrInvalidConfig, rank, t.rank)
	}
	return nil
}

// checkNode validates one subtree and returns its re-derived size and
// rank.
func (t *Tree) checkNode(r subtreeRef) (size int, rank int, err error) {
	if r.isLeaf() {
		if r.size > LeafBits {
			return 0, 0, fmt.Errorf("%w: leaf %d claims %d bits", ErrInvalidConfig, r.index, r.size)
		}
		word := t.leafWord(r.index)
		if r.size < LeafBits {
			word &= Word(1)<<uint(r.size) - 1
		}
		pc := bits.OnesCount64(word)
		if pc != r.rank {
			return 0, 0, fmt.Errorf("%w: leaf %d popcount %d, counters claim %d",
				ErrInvalidConfig, r.index, pc, r.rank)
		}
		return r.size, pc, nil
	}

	d := t.p.degree
	n := r.nchildren()
	if n == 0 && r.size > 0 {
		return 0, 0, fmt.Errorf("%w: node %d has bits but no children", ErrInvalidConfig, r.index)
	}
	if !r.isRoot() && n != d+1 && n < t.p.buffer {
		return 0, 0, fmt.Errorf("%w: non-root node %d has %d children, minimum is %d",
			ErrInvalidConfig, r.index, n, t.p.buffer)
	}
	for k := 0; k < d; k++ {
		if k+1 < d && r.sizeAt(k) > r.sizeAt(k+1) {
			return 0, 0, fmt.Errorf("%w: node %d size fields not monotone at %d",
				ErrInvalidConfig, r.index, k)
		}
		if k+1 < d && r.rankAt(k) > r.rankAt(k+1) {
			return 0, 0, fmt.Errorf("%w: node %d rank fields not monotone at %d",
				ErrInvalidConfig, r.index, k)
		}
		if r.rankAt(k) > r.sizeAt(k) {
			return 0, 0, fmt.Errorf("%w: node %d rank field %d exceeds size field",
				ErrInvalidConfig, r.index, k)
		}
		if r.sizeAt(k) > r.size {
			return 0, 0, fmt.Errorf("%w: node %d size field %d exceeds subtree size",
				ErrInvalidConfig, r.index, k)
		}
	}
	for k := 0; k < n; k++ {
		if r.pointerAt(k) == 0 {
			return 0, 0, fmt.Errorf("%w: node %d uses the null pointer at slot %d",
				ErrInvalidConfig, r.index, k)
		}
		cs, cr, cerr := t.checkNode(r.child(k))
		if cerr != nil {
			return 0, 0, cerr
		}
		size += cs
		rank += cr
	}
	for k := n; k <= d; k++ {
		if r.pointerAt(k) != 0 {
			return 0, 0, fmt.Errorf("%w: node %d has a stray pointer at unused slot %d",
				ErrInvalidConfig, r.index, k)
		}
	}
	if size != r.size || rank != r.rank {
		return 0, 0, fmt.Errorf("%w: node %d children sum to %d/%d bits, counters claim %d/%d",
			ErrInvalidConfig, r.index, size, rank, r.size, r.rank)
	}
	return size, rank, nil
}

// isRoot reports whether the reference denotes the tree's root.
func (r subtreeRef) isRoot() bool {
	assert(r.index != 0 || r.height == r.t.height, "btree: node 0 below root height")
	return r.index == 0 && r.height == r.t.height
}
