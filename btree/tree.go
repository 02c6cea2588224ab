package btree

import (
	"github.com/npillmayer/bitvec/bitview"
	"github.com/npillmayer/bitvec/packed"
)

// Word is the machine word leaves and packed rows are made of.
type Word = bitview.Word

// Tree is a dynamic bit vector stored as a packed B+ tree.
//
// Node data is scattered over three packed field arrays (sizes, ranks,
// pointers) indexed by node number; leaves live in a separate word array
// whose index 0 is permanently reserved as the null leaf. The root is
// always node 0.
type Tree struct {
	p params

	size   int // current number of bits
	rank   int // current number of set bits
	height int // distance of the root from the leaves

	freeNode int // next unused node index
	freeLeaf int // next unused leaf index, starts past the null leaf

	sizes    *packed.View
	ranks    *packed.View
	pointers *packed.View
	leaves   *bitview.Array
}

// New creates an empty bit vector with the given configuration.
func New(cfg Config) (*Tree, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	p, err := deriveParams(cfg)
	if err != nil {
		return nil, err
	}

	// Leaf index 0 is the null-leaf sentinel and is never handed out,
	// so the leaf allocator starts at 1. Node 0 is the root, reserved
	// by the explicit allocNode call below.
	t := &Tree{p: p, height: 1, freeLeaf: 1}
	counterFields := p.nodesCount * p.degree
	pointerFields := p.nodesCount * (p.degree + 1)
	sizeStore := bitview.NewArray(packed.WordsFor(p.counterWidth, counterFields) * bitview.WordBits)
	rankStore := bitview.NewArray(packed.WordsFor(p.counterWidth, counterFields) * bitview.WordBits)
	ptrStore := bitview.NewArray(packed.WordsFor(p.pointerWidth, pointerFields) * bitview.WordBits)
	t.sizes = packed.New(&sizeStore.View, p.counterWidth, counterFields)
	t.ranks = packed.New(&rankStore.View, p.counterWidth, counterFields)
	t.pointers = packed.New(&ptrStore.View, p.pointerWidth, pointerFields)
	t.leaves = bitview.NewArray((p.leavesCount + 1) * LeafBits)

	// Pre-allocate the root and its first leaf.
	root, err := t.allocNode()
	if err != nil {
		return nil, err
	}
	assert(root == 0, "btree: root must be node 0")
	first, err := t.allocLeaf()
	if err != nil {
		return nil, err
	}
	t.pointers.Set(0, Word(first))

	tracer().Infof("bitvec tree: capacity=%d degree=%d buffer=%d counter=%dbit pointer=%dbit nodes=%d leaves=%d",
		p.capacity, p.degree, p.buffer, p.counterWidth, p.pointerWidth, p.nodesCount, p.leavesCount)
	return t, nil
}

// Size returns the current number of bits in the vector.
func (t *Tree) Size() int { return t.size }

// Rank returns the total number of set bits in the vector.
func (t *Tree) Rank() int { return t.rank }

// Capacity returns the maximum number of bits the vector can hold.
func (t *Tree) Capacity() int { return t.p.capacity }

// Height returns the tree height, the distance of the root from the
// leaves. An empty tree has height 1.
func (t *Tree) Height() int { return t.height }

// IsEmpty reports whether the vector holds no bits.
func (t *Tree) IsEmpty() bool { return t.size == 0 }

// IsFull reports whether the vector is at capacity.
func (t *Tree) IsFull() bool { return t.size == t.p.capacity }

// Degree returns d, the number of counter fields per node. A node holds
// up to d+1 children.
func (t *Tree) Degree() int { return t.p.degree }

// Buffer returns b, the sibling window width used by redistribution.
func (t *Tree) Buffer() int { return t.p.buffer }

// CounterWidth returns the bit width of the packed size/rank fields.
func (t *Tree) CounterWidth() int { return t.p.counterWidth }

// PointerWidth returns the bit width of the packed child pointers.
func (t *Tree) PointerWidth() int { return t.p.pointerWidth }

// UsedNodes returns the number of allocated internal nodes.
func (t *Tree) UsedNodes() int { return t.freeNode }

// UsedLeaves returns the number of allocated leaves, not counting the
// null leaf.
func (t *Tree) UsedLeaves() int { return t.freeLeaf - 1 }

// allocNode hands out the next unused node index.
func (t *Tree) allocNode() (int, error) {
	if t.freeNode >= t.p.nodesCount {
		return 0, ErrCapacityExhausted
	}
	n := t.freeNode
	t.freeNode++
	return n, nil
}

// allocLeaf hands out the next unused leaf index. Leaf 0 is the null
// leaf and is never handed out.
func (t *Tree) allocLeaf() (int, error) {
	if t.freeLeaf > t.p.leavesCount {
		return 0, ErrCapacityExhausted
	}
	l := t.freeLeaf
	t.freeLeaf++
	return l, nil
}

// leafWord returns the content word of a leaf.
func (t *Tree) leafWord(leaf int) Word {
	assert(leaf > 0 && leaf < t.freeLeaf, "btree: leaf index out of range")
	return t.leaves.Words()[leaf]
}

// rootRef returns the subtree reference of the whole tree.
func (t *Tree) rootRef() subtreeRef {
	return subtreeRef{t: t, index: 0, height: t.height, size: t.size, rank: t.rank}
}
