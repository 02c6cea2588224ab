package btree

// subtreeRef bundles a node or leaf index with the metadata that is not
// stored in the node itself but recursively propagated during descent:
// height, subtree size and subtree rank. It lets the three scattered
// packed arrays be treated as one unit.
//
// A subtreeRef is a cheap value; it is constructed on the way down and
// never outlives the traversal that made it.
type subtreeRef struct {
	t      *Tree
	index  int // node index, or leaf index at height 0
	height int // distance from the leaves; 0 means this is a leaf
	size   int // number of bits in the subtree
	rank   int // number of set bits in the subtree
}

func (r subtreeRef) isLeaf() bool { return r.height == 0 }
func (r subtreeRef) isNode() bool { return r.height > 0 }

// isFull reports whether the leaf holds a full word of bits, or the node
// has degree+1 children.
func (r subtreeRef) isFull() bool {
	if r.isLeaf() {
		return r.size == LeafBits
	}
	return r.nchildren() == r.t.p.degree+1
}

// sizesBase returns the index of the node's first size/rank field in the
// global packed arrays.
func (r subtreeRef) sizesBase() int { return r.index * r.t.p.degree }

// pointersBase returns the index of the node's first pointer field.
func (r subtreeRef) pointersBase() int { return r.index * (r.t.p.degree + 1) }

// sizeAt returns the prefix-sum size field k: the number of bits in
// children 0..k. This is not the size of child k; use child(k).size.
func (r subtreeRef) sizeAt(k int) int {
	assert(r.isNode(), "btree: size field of a leaf")
	return int(r.t.sizes.Get(r.sizesBase() + k))
}

// rankAt returns the prefix-sum rank field k.
func (r subtreeRef) rankAt(k int) int {
	assert(r.isNode(), "btree: rank field of a leaf")
	return int(r.t.ranks.Get(r.sizesBase() + k))
}

// pointerAt returns the child pointer at slot k; 0 marks an unused slot.
func (r subtreeRef) pointerAt(k int) int {
	assert(r.isNode(), "btree: pointer field of a leaf")
	return int(r.t.pointers.Get(r.pointersBase() + k))
}

func (r subtreeRef) setPointerAt(k, p int) {
	assert(r.isNode(), "btree: pointer field of a leaf")
	r.t.pointers.Set(r.pointersBase()+k, Word(p))
}

// child creates the subtree reference of the child at slot k, deriving
// its size and rank from the prefix-sum fields.
func (r subtreeRef) child(k int) subtreeRef {
	d := r.t.p.degree
	assert(r.isNode(), "btree: child of a leaf")
	assert(k >= 0 && k <= d, "btree: child slot out of range")
	assert(r.pointerAt(k) != 0, "btree: child slot is unused")

	var size, rank int
	switch {
	case k == 0:
		size, rank = r.sizeAt(0), r.rankAt(0)
	case k == d:
		size, rank = r.size-r.sizeAt(d-1), r.rank-r.rankAt(d-1)
	default:
		size, rank = r.sizeAt(k)-r.sizeAt(k-1), r.rankAt(k)-r.rankAt(k-1)
	}
	return subtreeRef{t: r.t, index: r.pointerAt(k), height: r.height - 1, size: size, rank: rank}
}

// findInsertPoint finds the child slot where a bit can be inserted at the
// given subtree-relative index, and the index relative to that child.
// Boundary indices land in the left child.
func (r subtreeRef) findInsertPoint(index int) (slot int, rel int) {
	assert(r.isNode(), "btree: descent into a leaf")
	base := r.sizesBase()
	d := r.t.p.degree
	slot = r.t.sizes.FindGeq(base, base+d, Word(index)) - base
	rel = index
	if slot > 0 {
		rel -= r.sizeAt(slot - 1)
	}
	return slot, rel
}

// find locates the child owning the bit at the given subtree-relative
// index. Unlike findInsertPoint, an index at a child seam belongs to the
// right child.
func (r subtreeRef) find(index int) (slot int, rel int) {
	slot, rel = r.findInsertPoint(index)
	if rel == r.child(slot).size {
		slot++
		rel = 0
	}
	assert(slot < r.t.p.degree+1, "btree: bit index routed past the last child")
	return slot, rel
}

// nchildren returns the number of used child slots.
func (r subtreeRef) nchildren() int {
	assert(r.isNode(), "btree: child count of a leaf")
	if r.size == 0 {
		if r.pointerAt(0) != 0 {
			return 1
		}
		return 0
	}
	slot, _ := r.findInsertPoint(r.size)
	return slot + 1
}

// bumpCounters adds one bit (set or clear) to the prefix sums of slot and
// everything after it, the per-node step of an insert descent.
func (r subtreeRef) bumpCounters(slot int, bit bool) {
	d := r.t.p.degree
	if slot >= d {
		return // the last child has no prefix field of its own
	}
	base := r.sizesBase()
	r.t.sizes.IncrementRange(base+slot, base+d, 1)
	if bit {
		r.t.ranks.IncrementRange(base+slot, base+d, 1)
	}
}
