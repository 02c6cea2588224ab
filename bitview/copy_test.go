package bitview

import (
	"math/rand"
	"testing"
)

func TestCopyBetweenViews(t *testing.T) {
	src := NewArray(256)
	dst := NewArray(256)
	src.Set(10, 40, 0x2BADBEEF)
	dst.Copy(&src.View, 10, 40, 100, 130)
	if got := dst.Get(100, 130); got != 0x2BADBEEF {
		t.Fatalf("copied range wrong: %#x", got)
	}
	if got := dst.Popcount(0, 100) + dst.Popcount(130, 256); got != 0 {
		t.Fatalf("bits outside destination disturbed: %d", got)
	}
}

func TestCopyClampsToDestination(t *testing.T) {
	src := NewArray(64)
	dst := NewArray(64)
	src.Set(0, 16, 0xFFFF)
	dst.Copy(&src.View, 0, 16, 20, 28) // destination is shorter
	if got := dst.Get(20, 28); got != 0xFF {
		t.Fatalf("clamped copy wrong: %#x", got)
	}
	if got := dst.Get(28, 40); got != 0 {
		t.Fatalf("copy overran destination: %#x", got)
	}
}

func TestSelfBackwardCopyWithOverlap(t *testing.T) {
	v := NewArray(256)
	v.Set(20, 40, 0xBABE)
	v.Set(50, 60, 42)
	v.Copy(&v.View, 20, 50, 30, 50)
	if got := v.Get(30, 50); got != 0xBABE {
		t.Fatalf("expected 0xBABE at shifted position, got %#x", got)
	}
	if got := v.Get(50, 60); got != 42 {
		t.Fatalf("bits beyond destination disturbed: %d", got)
	}
}

func TestSelfForwardCopyWithOverlap(t *testing.T) {
	v := NewArray(128)
	v.Set(40, 60, 0x5A5A5)
	v.Copy(&v.View, 40, 70, 20, 50) // dest before src: forward is safe
	if got := v.Get(20, 40); got != 0x5A5A5 {
		t.Fatalf("forward overlap copy wrong: %#x", got)
	}
}

func TestCopyLongRanges(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	src := NewArray(1024)
	for i := range src.Words() {
		src.Words()[i] = Word(rng.Uint64())
	}
	dst := NewArray(1024)
	dst.Copy(&src.View, 13, 13+500, 310, 310+500)
	for i := 0; i < 500; i++ {
		if dst.Bit(310+i) != src.Bit(13+i) {
			t.Fatalf("bit %d mismatch after long copy", i)
		}
	}
}

func TestInsertBitOnLeafWord(t *testing.T) {
	v := NewArray(64)
	v.Words()[0] = 0x7FFFFFFF
	v.InsertBit(15, false)
	if got := v.Words()[0]; got != 0xFFFF7FFF {
		t.Fatalf("expected 0xFFFF7FFF, got %#x", got)
	}
}

func TestInsertBitShiftsTail(t *testing.T) {
	v := NewArray(192)
	rng := rand.New(rand.NewSource(99))
	model := make([]bool, 192)
	for i := range model {
		model[i] = rng.Intn(2) == 1
		v.SetBit(i, model[i])
	}
	v.InsertBit(77, true)
	if !v.Bit(77) {
		t.Fatalf("inserted bit not present")
	}
	for i := 0; i < 77; i++ {
		if v.Bit(i) != model[i] {
			t.Fatalf("bit %d below insertion changed", i)
		}
	}
	for i := 78; i < 192; i++ {
		if v.Bit(i) != model[i-1] {
			t.Fatalf("bit %d not shifted from %d", i, i-1)
		}
	}
}

func TestInsertRange(t *testing.T) {
	v := NewArray(128)
	v.Set(0, 16, 0xABCD)
	v.InsertRange(8, 12, 0x5)
	if got := v.Get(0, 8); got != 0xCD {
		t.Fatalf("low part disturbed: %#x", got)
	}
	if got := v.Get(8, 12); got != 0x5 {
		t.Fatalf("inserted range wrong: %#x", got)
	}
	if got := v.Get(12, 20); got != 0xAB {
		t.Fatalf("tail not shifted: %#x", got)
	}
}
