package btree

// Access returns the bit at position i.
func (t *Tree) Access(i int) (bool, error) {
	if i < 0 || i >= t.size {
		return false, ErrIndexOutOfBounds
	}
	ref := t.rootRef()
	index := i
	for ref.isNode() {
		slot, rel := ref.find(index)
		ref = ref.child(slot)
		index = rel
	}
	return t.leafWord(ref.index)>>uint(index)&1 != 0, nil
}

// SetBit overwrites the bit at position i, maintaining the rank counters
// along the descent path.
func (t *Tree) SetBit(i int, bit bool) error {
	if i < 0 || i >= t.size {
		return ErrIndexOutOfBounds
	}

	type step struct {
		node subtreeRef
		slot int
	}
	var path [maxTraversalDepth]step
	depth := 0

	ref := t.rootRef()
	index := i
	for ref.isNode() {
		slot, rel := ref.find(index)
		assert(depth < len(path), "btree: descent deeper than the traversal bound")
		path[depth] = step{node: ref, slot: slot}
		depth++
		ref = ref.child(slot)
		index = rel
	}

	word := t.leafWord(ref.index)
	old := word>>uint(index)&1 != 0
	if old == bit {
		return nil
	}
	mask := Word(1) << uint(index)
	if bit {
		word |= mask
	} else {
		word &^= mask
	}
	t.leaves.Words()[ref.index] = word

	// A flipped bit shifts every rank prefix covering it by one.
	for l := 0; l < depth; l++ {
		node, slot := path[l].node, path[l].slot
		if slot >= t.p.degree {
			continue
		}
		base := node.sizesBase()
		if bit {
			t.ranks.IncrementRange(base+slot, base+t.p.degree, 1)
		} else {
			t.ranks.DecrementRange(base+slot, base+t.p.degree, 1)
		}
	}
	if bit {
		t.rank++
	} else {
		t.rank--
	}
	return nil
}

// maxTraversalDepth bounds the length of a root-to-leaf path. The tree
// degree is at least 2, so 64 levels cover any capacity addressable with
// machine-word indices.
const maxTraversalDepth = 64
