package btree

import (
	"fmt"
	"math/bits"

	"github.com/npillmayer/bitvec/bitview"
)

const (
	// DefaultNodeWidth is the node width in bits used when the
	// configuration leaves it zero.
	DefaultNodeWidth = 256
	// LeafBits is the bit width of a leaf, one machine word.
	LeafBits = bitview.WordBits
)

// Config configures a packed B+ tree bit vector.
type Config struct {
	// Capacity is the maximum number of bits the vector will hold.
	Capacity int
	// NodeWidth is the number of bits budgeted for one node's counter
	// row, a multiple of 64. Zero selects DefaultNodeWidth.
	NodeWidth int
}

func (cfg Config) normalized() Config {
	if cfg.NodeWidth == 0 {
		cfg.NodeWidth = DefaultNodeWidth
	}
	return cfg
}

func (cfg Config) validate() error {
	cfg = cfg.normalized()
	if cfg.Capacity < 1 {
		return fmt.Errorf("%w: capacity must be at least 1", ErrInvalidConfig)
	}
	if cfg.NodeWidth < bitview.WordBits || cfg.NodeWidth%bitview.WordBits != 0 {
		return fmt.Errorf("%w: node width must be a positive multiple of %d",
			ErrInvalidConfig, bitview.WordBits)
	}
	return nil
}

// params holds the geometry derived from a configuration.
//
// All widths are in bits. The buffer is the sibling window width used by
// redistribution, a single value for both the leaf and the node level.
type params struct {
	capacity     int
	nodeWidth    int
	counterWidth int
	pointerWidth int
	degree       int
	buffer       int
	leavesCount  int
	nodesCount   int
}

// deriveParams computes the tree geometry for a validated configuration.
//
// counterWidth reserves one spare high bit per field on top of the bits
// needed for the capacity value itself; the spare bit is the flag lane of
// the packed counter search and the overflow guard of prefix-sum updates.
// When the derived pointer row would not fit the node width (tiny
// capacities make counters very narrow and the node degree enormous), the
// counter width is widened until all constraints hold.
func deriveParams(cfg Config) (params, error) {
	cfg = cfg.normalized()
	var p params
	p.capacity = cfg.Capacity
	p.nodeWidth = cfg.NodeWidth

	for cw := bits.Len64(uint64(p.capacity)) + 1; ; cw++ {
		p.counterWidth = cw
		p.degree = p.nodeWidth / cw
		if p.degree < 3 {
			return params{}, fmt.Errorf("%w: node width %d holds only %d counters of %d bits, need at least 3",
				ErrInvalidConfig, p.nodeWidth, p.degree, cw)
		}

		// Buffer width b: start at ceil(sqrt(degree)), then back off
		// until floor((degree+1)/b) >= b holds.
		b := isqrtCeil(p.degree)
		if b < 1 {
			b = 1
		}
		for (p.degree+1)/b < b {
			b--
		}
		p.buffer = b

		// Upper bound on leaves ever allocated. Redistribution gives
		// every leaf it touches at least floor(L/b) bits (a window
		// reshapes only around a full leaf, so it spreads no fewer
		// than L bits over at most b slots; the split path spreads
		// b*(L-b) over b+1). The steeper split-only estimate
		// ceil(N/(b*(L-b)/(b+1))) is not safe for skewed insertion
		// orders.
		minFill := LeafBits / b
		if minFill < 1 {
			minFill = 1
		}
		p.leavesCount = (p.capacity+minFill-1)/minFill + 2

		// Internal nodes: geometric series over the minimum degree b.
		p.nodesCount = 0
		level := p.leavesCount
		for {
			level = (level + b - 1) / b
			p.nodesCount += level
			if level <= 1 {
				break
			}
		}
		p.nodesCount += 2

		// Pointers address node indices up to nodesCount-1 and leaf
		// indices up to leavesCount (index 0 is the null leaf).
		maxPointer := p.nodesCount - 1
		if p.leavesCount > maxPointer {
			maxPointer = p.leavesCount
		}
		p.pointerWidth = bits.Len64(uint64(maxPointer))
		if p.pointerWidth < 1 {
			p.pointerWidth = 1
		}

		if p.pointerWidth <= p.counterWidth && p.pointerWidth*(p.degree+1) <= p.nodeWidth {
			return p, nil
		}
		// Widen the counters: the degree shrinks, the pointer row fits.
	}
}

// isqrtCeil returns ceil(sqrt(n)) for small n without touching floating
// point.
func isqrtCeil(n int) int {
	assert(n >= 0, "btree: isqrtCeil of negative value")
	s := 0
	for s*s < n {
		s++
	}
	return s
}
