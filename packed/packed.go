package packed

import (
	"math/bits"

	"github.com/npillmayer/bitvec/bitview"
)

// Word is the machine word fields are packed into.
type Word = bitview.Word

// View presents n fields of width bits each, stored inside a bit view.
// Field k occupies bits [k*width, (k+1)*width).
//
// A field value v satisfies v < 1<<width. FindGeq additionally reserves
// the top bit of each field as a flag lane: it masks stored flag bits out
// before the packed subtract and requires the needle to fit width-1 bits.
type View struct {
	bits  *bitview.View
	width int
	n     int

	// perWord is the number of complete fields in one word.
	perWord int
	// fieldMask carries a single set bit at each field boundary;
	// fieldMask * v broadcasts the low width bits of v into every slot.
	fieldMask Word
}

// New creates a field view over the given bit view.
//
// The backing view must hold at least n*width bits.
func New(b *bitview.View, width, n int) *View {
	assert(width > 0 && width <= bitview.WordBits, "packed: invalid field width")
	assert(n >= 0, "packed: negative field count")
	assert(n*width <= b.Size(), "packed: backing view too small")

	v := &View{bits: b, width: width, n: n}
	v.perWord = bitview.WordBits / width
	for i := 0; i < v.perWord; i++ {
		v.fieldMask = v.fieldMask<<uint(width) | 1
	}
	return v
}

// WordsFor returns the container length in words required to store n
// fields of the given width.
func WordsFor(width, n int) int {
	return (width*n + bitview.WordBits - 1) / bitview.WordBits
}

// Len returns the number of fields.
func (v *View) Len() int { return v.n }

// Width returns the field width in bits.
func (v *View) Width() int { return v.width }

// FieldMask returns the broadcast mask with one set bit per field slot.
func (v *View) FieldMask() Word { return v.fieldMask }

func (v *View) checkRange(begin, end int) {
	assert(begin >= 0 && begin <= end && end <= v.n, "packed: field range out of bounds")
}

// Get returns field k.
func (v *View) Get(k int) Word {
	assert(k >= 0 && k < v.n, "packed: field index out of bounds")
	return v.bits.Get(k*v.width, (k+1)*v.width)
}

// Set writes field k; excess high bits of value are truncated.
func (v *View) Set(k int, value Word) {
	assert(k >= 0 && k < v.n, "packed: field index out of bounds")
	v.bits.Set(k*v.width, (k+1)*v.width, value)
}

// GetRange returns the packed concatenation of fields [begin, end) as a
// single word, field begin lowest. Requires (end-begin)*width <= 64.
func (v *View) GetRange(begin, end int) Word {
	v.checkRange(begin, end)
	return v.bits.Get(begin*v.width, end*v.width)
}

// SetRange writes a packed word of field values into fields [begin, end).
// Requires (end-begin)*width <= 64.
func (v *View) SetRange(begin, end int, packedValue Word) {
	v.checkRange(begin, end)
	v.bits.Set(begin*v.width, end*v.width, packedValue)
}

// broadcast replicates the low width bits of value into every field slot
// of one word.
func (v *View) broadcast(value Word) Word {
	if v.width < bitview.WordBits {
		value &= (Word(1) << uint(v.width)) - 1
	}
	return v.fieldMask * value
}

// FillRange writes the field value pattern into every field in [begin, end).
//
// The pattern is broadcast into a full word and written in chunks of
// perWord fields; the tail chunk is truncated by the underlying bit view.
func (v *View) FillRange(begin, end int, pattern Word) {
	v.checkRange(begin, end)
	bcast := v.broadcast(pattern)
	for k := begin; k < end; {
		cnt := v.perWord
		if end-k < cnt {
			cnt = end - k
		}
		v.bits.Set(k*v.width, (k+cnt)*v.width, bcast)
		k += cnt
	}
}

// IncrementRange adds n to every field in [begin, end).
//
// The addition is performed one word of fields at a time. No field may
// overflow: a carry crossing a field seam is a contract violation and is
// asserted against exactly.
func (v *View) IncrementRange(begin, end int, n Word) {
	v.checkRange(begin, end)
	bcast := v.broadcast(n)
	seams := v.fieldMask &^ 1 // carry into bit 0 cannot occur
	for k := begin; k < end; {
		cnt := v.perWord
		if end-k < cnt {
			cnt = end - k
		}
		lo, hi := k*v.width, (k+cnt)*v.width
		current := v.bits.Get(lo, hi)
		sum := current + bcast
		// A set bit at a field seam marks a carry out of the field
		// below it; the bit just above the chunk catches a carry out of
		// its top field.
		top := hi - lo
		carries := (sum ^ current ^ bcast) & (seams | Word(1)<<uint(top))
		if top < bitview.WordBits {
			carries &= (Word(1) << uint(top+1)) - 1
		} else if sum < current {
			carries |= 1
		}
		assert(carries == 0, "packed: increment overflowed a field")
		v.bits.Set(lo, hi, sum)
		k += cnt
	}
}

// DecrementRange subtracts n from every field in [begin, end).
//
// Each field sees modular subtraction: a field smaller than n wraps in
// two's complement. The top bit of every field is set aside during the
// word-wide subtract, so no borrow crosses a field seam.
func (v *View) DecrementRange(begin, end int, n Word) {
	v.checkRange(begin, end)
	bcast := v.broadcast(n)
	topBits := v.fieldMask << uint(v.width-1)
	for k := begin; k < end; {
		cnt := v.perWord
		if end-k < cnt {
			cnt = end - k
		}
		lo, hi := k*v.width, (k+cnt)*v.width
		x := v.bits.Get(lo, hi)
		diff := ((x | topBits) - (bcast &^ topBits)) ^ ((x ^ ^bcast) & topBits)
		v.bits.Set(lo, hi, diff)
		k += cnt
	}
}

// FindGeq returns the smallest k in [begin, end] such that field k is at
// least needle, or end if no field reaches it. Fields are assumed
// non-decreasing (prefix sums); for unsorted contents the result is the
// count of fields below needle, offset by begin.
//
// Per word of fields, the stored flag lane (top bit of each field) is
// cleared, pre-set as the borrow guard, and the broadcast needle is
// subtracted; a field's flag survives exactly when the field reaches the
// needle, so a popcount of the flag lane counts the fields below. Field
// values and needle must fit width-1 bits.
func (v *View) FindGeq(begin, end int, needle Word) int {
	v.checkRange(begin, end)
	assert(v.width == bitview.WordBits || needle <= Word(1)<<uint(v.width-1),
		"packed: needle exceeds flag-bit headroom")

	flagLane := v.fieldMask << uint(v.width-1)
	bcast := v.broadcast(needle)
	below := 0
	for k := begin; k < end; {
		cnt := v.perWord
		if end-k < cnt {
			cnt = end - k
		}
		chunk := v.bits.Get(k*v.width, (k+cnt)*v.width)
		diff := (chunk | flagLane) - bcast
		flags := ^diff & flagLane
		if cnt < v.perWord {
			flags &= (Word(1) << uint(cnt*v.width)) - 1
		}
		below += bits.OnesCount64(flags)
		k += cnt
	}
	return begin + below
}

// Copy copies fields [srcBegin, srcEnd) of src into fields
// [destBegin, destEnd) of the receiver, clamped to the shorter range.
// Source and destination must share the field width.
func (v *View) Copy(src *View, srcBegin, srcEnd, destBegin, destEnd int) {
	assert(src.width == v.width, "packed: copying between differing field widths")
	src.checkRange(srcBegin, srcEnd)
	v.checkRange(destBegin, destEnd)
	v.bits.Copy(src.bits,
		srcBegin*v.width, srcEnd*v.width,
		destBegin*v.width, destEnd*v.width)
}
