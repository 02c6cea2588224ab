package bitview

// copyForward copies bits [srcBegin, srcEnd) of src to destBegin onward,
// processing words from low to high addresses.
//
// Valid when source and destination do not alias, or alias with
// destBegin <= srcBegin.
func (v *View) copyForward(src *View, srcBegin, srcEnd, destBegin int) {
	length := srcEnd - srcBegin
	rem := length % WordBits

	for srcPos, destPos := srcBegin, destBegin; srcPos < srcEnd; {
		step := WordBits
		if srcEnd-srcPos < WordBits {
			step = rem
		}
		v.Set(destPos, destPos+step, src.Get(srcPos, srcPos+step))
		srcPos += step
		destPos += step
	}
}

// copyBackward is the high-to-low variant, required for self-copies where
// the destination starts after the source (the insertion shift).
func (v *View) copyBackward(src *View, srcBegin, srcEnd, destBegin int) {
	length := srcEnd - srcBegin
	rem := length % WordBits

	for srcPos, destPos := srcBegin+length, destBegin+length; srcPos > srcBegin; {
		step := WordBits
		if srcPos-srcBegin == rem {
			step = rem
		}
		v.Set(destPos-step, destPos, src.Get(srcPos-step, srcPos))
		srcPos -= step
		destPos -= step
	}
}

// Copy copies at most min(srcEnd-srcBegin, destEnd-destBegin) bits from src
// into the receiver. Overlapping self-copies are handled: when the
// destination range starts after the source range in the same storage, the
// copy runs backward so that every destination bit receives the original
// source bit.
func (v *View) Copy(src *View, srcBegin, srcEnd, destBegin, destEnd int) {
	src.checkRange(srcBegin, srcEnd)
	v.checkRange(destBegin, destEnd)

	srcLen := srcEnd - srcBegin
	destLen := destEnd - destBegin
	if destLen < srcLen {
		srcEnd = srcBegin + destLen
	}

	if v.sharesStorage(src) && srcBegin < destBegin {
		v.copyBackward(src, srcBegin, srcEnd, destBegin)
	} else {
		v.copyForward(src, srcBegin, srcEnd, destBegin)
	}
}
