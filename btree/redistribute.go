package btree

import (
	"github.com/npillmayer/bitvec/bitview"
)

// window is an adjacent range of child slots selected for redistribution.
type window struct {
	begin, end int // slot range [begin, end)
	occupied   int // total occupancy over the window (bits or children)
}

// selectWindow slides a window of exactly width slots over the node's
// child slots, keeping the full child at slot c inside, and returns the
// position with the most free capacity. The earliest window wins ties.
//
// maxCount is the per-slot capacity: LeafBits below a height-1 node,
// degree+1 below higher nodes. Unused slots count as entirely free.
func (r subtreeRef) selectWindow(c, width, maxCount int, count func(subtreeRef) int) window {
	nslots := r.t.p.degree + 1
	assert(width <= nslots, "btree: window wider than the node")

	lo := c - width + 1
	if lo < 0 {
		lo = 0
	}
	hi := c
	if hi > nslots-width {
		hi = nslots - width
	}

	bestBegin, bestFree := -1, -1
	for begin := lo; begin <= hi; begin++ {
		free := 0
		for i := begin; i < begin+width; i++ {
			if r.pointerAt(i) == 0 {
				free += maxCount
			} else {
				free += maxCount - count(r.child(i))
			}
		}
		if free > bestFree {
			bestBegin, bestFree = begin, free
		}
	}
	assert(bestBegin >= 0, "btree: no window position found")
	return window{begin: bestBegin, end: bestBegin + width, occupied: maxCount*width - bestFree}
}

// insertChildSlot opens a fresh child slot at position at, shifting the
// pointers and prefix-sum fields after it one slot to the right, and
// allocates a leaf or node for it depending on the node's height. The
// node must not be full.
func (t *Tree) insertChildSlot(r subtreeRef, at int) error {
	d := t.p.degree
	assert(at >= 0 && at <= d, "btree: child slot out of range")
	assert(r.pointerAt(d) == 0, "btree: inserting a child into a full node")

	var fresh int
	var err error
	if r.height == 1 {
		fresh, err = t.allocLeaf()
	} else {
		fresh, err = t.allocNode()
	}
	if err != nil {
		return err
	}

	base, pbase := r.sizesBase(), r.pointersBase()
	t.pointers.Copy(t.pointers, pbase+at, pbase+d, pbase+at+1, pbase+d+1)
	if at < d {
		// An empty child at slot at repeats the prefix below it; the
		// tail fields move up one slot.
		prevSize, prevRank := 0, 0
		if at > 0 {
			prevSize, prevRank = r.sizeAt(at-1), r.rankAt(at-1)
		}
		t.sizes.Copy(t.sizes, base+at, base+d-1, base+at+1, base+d)
		t.ranks.Copy(t.ranks, base+at, base+d-1, base+at+1, base+d)
		t.sizes.Set(base+at, Word(prevSize))
		t.ranks.Set(base+at, Word(prevRank))
	}
	r.setPointerAt(at, fresh)
	return nil
}

// reshapeChildLeaves makes room around the full leaf child at slot c of a
// height-1 node: it selects the best window of buffer adjacent leaves,
// extends the window by a fresh leaf when the occupancy reaches the split
// threshold b*(L-b), and spreads the window's bits evenly.
func (t *Tree) reshapeChildLeaves(r subtreeRef, c int) error {
	assert(r.height == 1, "btree: leaf reshape above the leaf level")
	b := t.p.buffer
	win := r.selectWindow(c, b, LeafBits, func(child subtreeRef) int { return child.size })

	if win.occupied >= b*(LeafBits-b) {
		if win.end <= t.p.degree {
			if err := t.insertChildSlot(r, win.end); err != nil {
				return err
			}
			win.end++
		}
		// A window flush against the right edge of a non-full node
		// always contains an unused tail slot, so it needs no fresh
		// sibling to gain capacity.
		tracer().Debugf("bitvec leaf split: node %d window [%d,%d) holds %d bits",
			r.index, win.begin, win.end, win.occupied)
	}
	return t.redistributeBits(r, win.begin, win.end)
}

// redistributeBits concatenates the bits of the window's leaves and
// spreads them evenly back over the window, allocating leaves for unused
// slots. Counters are rebuilt so that the node's prefix sums stay
// consistent and the fields after the window keep their values.
func (t *Tree) redistributeBits(r subtreeRef, begin, end int) error {
	d := t.p.degree
	width := end - begin

	// Gather child sizes and contents before touching any counters.
	childSize := make([]int, width)
	total, totalRank := 0, 0
	for i := 0; i < width; i++ {
		if r.pointerAt(begin+i) == 0 {
			continue
		}
		child := r.child(begin + i)
		childSize[i] = child.size
		total += child.size
		totalRank += child.rank
	}

	scratch := bitview.NewArray(total)
	pos := 0
	for i := 0; i < width; i++ {
		if childSize[i] == 0 {
			continue
		}
		leaf := r.pointerAt(begin + i)
		scratch.Copy(&t.leaves.View, leaf*LeafBits, leaf*LeafBits+childSize[i], pos, pos+childSize[i])
		pos += childSize[i]
	}

	t.clearWindowCounters(r, begin, end, total, totalRank)

	perLeaf := total / width
	rem := total % width
	pos = 0
	for i := 0; i < width; i++ {
		slot := begin + i
		if r.pointerAt(slot) == 0 {
			fresh, err := t.allocLeaf()
			if err != nil {
				return err
			}
			r.setPointerAt(slot, fresh)
		}
		take := perLeaf
		if rem > 0 {
			take++
			rem--
		}
		leaf := r.pointerAt(slot)
		t.leaves.Words()[leaf] = 0
		t.leaves.Copy(&scratch.View, pos, pos+take, leaf*LeafBits, leaf*LeafBits+take)
		rank := scratch.Popcount(pos, pos+take)
		if slot < d {
			base := r.sizesBase()
			t.sizes.IncrementRange(base+slot, base+d, Word(take))
			if rank > 0 {
				t.ranks.IncrementRange(base+slot, base+d, Word(rank))
			}
		}
		pos += take
	}
	assert(pos == total, "btree: redistribution lost bits")
	return nil
}

// reshapeChildNodes is the internal-node variant of reshapeChildLeaves:
// the full child at slot c has degree+1 children, and the window's
// grandchild entries are spread evenly over the window's nodes. The split
// threshold is occupancy/(b+1) >= b.
func (t *Tree) reshapeChildNodes(r subtreeRef, c int) error {
	assert(r.height >= 2, "btree: node reshape at the leaf level")
	b := t.p.buffer
	win := r.selectWindow(c, b, t.p.degree+1, func(child subtreeRef) int { return child.nchildren() })

	if win.occupied/(b+1) >= b {
		if win.end <= t.p.degree {
			if err := t.insertChildSlot(r, win.end); err != nil {
				return err
			}
			win.end++
		}
		tracer().Debugf("bitvec node split: node %d window [%d,%d) holds %d children",
			r.index, win.begin, win.end, win.occupied)
	}
	return t.redistributeKeys(r, win.begin, win.end)
}

// childEntry is one grandchild collected during key redistribution.
type childEntry struct {
	size, rank, ptr int
}

// redistributeKeys collects the (size, rank, pointer) triples of all
// grandchildren under the window and spreads them evenly over the
// window's nodes, rebuilding each node's prefix sums and the parent's
// counters.
func (t *Tree) redistributeKeys(r subtreeRef, begin, end int) error {
	d := t.p.degree
	width := end - begin

	var entries []childEntry
	winSize, winRank := 0, 0
	for i := 0; i < width; i++ {
		if r.pointerAt(begin+i) == 0 {
			continue
		}
		child := r.child(begin + i)
		winSize += child.size
		winRank += child.rank
		cc := child.nchildren()
		for j := 0; j < cc; j++ {
			g := child.child(j)
			entries = append(entries, childEntry{size: g.size, rank: g.rank, ptr: g.index})
		}
	}
	total := len(entries)

	t.clearWindowCounters(r, begin, end, winSize, winRank)

	perNode := total / width
	rem := total % width
	idx := 0
	for i := 0; i < width; i++ {
		slot := begin + i
		if r.pointerAt(slot) == 0 {
			fresh, err := t.allocNode()
			if err != nil {
				return err
			}
			r.setPointerAt(slot, fresh)
		}
		take := perNode
		if rem > 0 {
			take++
			rem--
		}
		node := r.pointerAt(slot)
		nbase, npbase := node*d, node*(d+1)

		running, runrank := 0, 0
		for j := 0; j < take; j++ {
			e := entries[idx+j]
			t.pointers.Set(npbase+j, Word(e.ptr))
			running += e.size
			runrank += e.rank
			if j < d {
				t.sizes.Set(nbase+j, Word(running))
				t.ranks.Set(nbase+j, Word(runrank))
			}
		}
		if take < d {
			t.sizes.FillRange(nbase+take, nbase+d, Word(running))
			t.ranks.FillRange(nbase+take, nbase+d, Word(runrank))
		}
		if take < d+1 {
			t.pointers.FillRange(npbase+take, npbase+d+1, 0)
		}

		if slot < d {
			base := r.sizesBase()
			if running > 0 {
				t.sizes.IncrementRange(base+slot, base+d, Word(running))
			}
			if runrank > 0 {
				t.ranks.IncrementRange(base+slot, base+d, Word(runrank))
			}
		}
		idx += take
	}
	assert(idx == total, "btree: redistribution lost children")
	return nil
}

// clearWindowCounters resets the parent's prefix-sum fields across the
// window to the prefix just below it and removes the window's totals from
// the fields after it, as if the window's subtrees were emptied.
func (t *Tree) clearWindowCounters(r subtreeRef, begin, end, winSize, winRank int) {
	d := t.p.degree
	base := r.sizesBase()

	prevSize, prevRank := 0, 0
	if begin > 0 {
		prevSize, prevRank = r.sizeAt(begin-1), r.rankAt(begin-1)
	}
	keysEnd := end
	if keysEnd > d {
		keysEnd = d
	}
	t.sizes.FillRange(base+begin, base+keysEnd, Word(prevSize))
	t.ranks.FillRange(base+begin, base+keysEnd, Word(prevRank))
	if end < d {
		if winSize > 0 {
			t.sizes.DecrementRange(base+end, base+d, Word(winSize))
		}
		if winRank > 0 {
			t.ranks.DecrementRange(base+end, base+d, Word(winRank))
		}
	}
}
