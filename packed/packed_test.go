package packed

import (
	"testing"

	"github.com/npillmayer/bitvec/bitview"
)

func newView(t *testing.T, width, n int) *View {
	t.Helper()
	backing := bitview.NewArray(width * n)
	return New(&backing.View, width, n)
}

func TestFieldMaskConstruction(t *testing.T) {
	v := newView(t, 12, 6)
	// One set bit at each of the five 12-bit field boundaries.
	want := Word(0)
	for i := 0; i < 5; i++ {
		want |= 1 << uint(i*12)
	}
	if v.FieldMask() != want {
		t.Fatalf("field mask %#x, want %#x", v.FieldMask(), want)
	}
}

func TestGetSetTruncates(t *testing.T) {
	v := newView(t, 7, 20)
	v.Set(3, 0x1FF) // only 7 bits fit
	if got := v.Get(3); got != 0x7F {
		t.Fatalf("expected truncation to 0x7F, got %#x", got)
	}
	if got := v.Get(2); got != 0 {
		t.Fatalf("neighbor field disturbed: %#x", got)
	}
	if got := v.Get(4); got != 0 {
		t.Fatalf("neighbor field disturbed: %#x", got)
	}
}

func TestFieldsStraddlingWords(t *testing.T) {
	v := newView(t, 12, 16) // fields 5 and 10 straddle word seams
	for k := 0; k < 16; k++ {
		v.Set(k, Word(100*k+7))
	}
	for k := 0; k < 16; k++ {
		if got := v.Get(k); got != Word(100*k+7) {
			t.Fatalf("field %d: got %d, want %d", k, got, 100*k+7)
		}
	}
}

func TestFillRangeBroadcasts(t *testing.T) {
	v := newView(t, 12, 16)
	v.FillRange(2, 13, 0x5A5)
	for k := 0; k < 16; k++ {
		want := Word(0)
		if k >= 2 && k < 13 {
			want = 0x5A5
		}
		if got := v.Get(k); got != want {
			t.Fatalf("field %d: got %#x, want %#x", k, got, want)
		}
	}
}

func TestIncrementDecrementRange(t *testing.T) {
	v := newView(t, 12, 16)
	for k := 0; k < 16; k++ {
		v.Set(k, Word(10*k))
	}
	v.IncrementRange(4, 12, 100)
	for k := 0; k < 16; k++ {
		want := Word(10 * k)
		if k >= 4 && k < 12 {
			want += 100
		}
		if got := v.Get(k); got != want {
			t.Fatalf("after increment, field %d: got %d, want %d", k, got, want)
		}
	}
	v.DecrementRange(4, 12, 100)
	for k := 0; k < 16; k++ {
		if got := v.Get(k); got != Word(10*k) {
			t.Fatalf("after decrement, field %d: got %d, want %d", k, got, 10*k)
		}
	}
}

func TestDecrementWrapsPerField(t *testing.T) {
	v := newView(t, 8, 8)
	v.Set(2, 1)
	v.DecrementRange(2, 3, 3)
	if got := v.Get(2); got != 254 { // 1 - 3 mod 256
		t.Fatalf("expected modular wrap to 254, got %d", got)
	}
}

func TestFindGeq(t *testing.T) {
	v := newView(t, 12, 6)
	for k, val := range []Word{10, 20, 30, 40, 50, 60} {
		v.Set(k, val)
	}
	cases := []struct {
		needle Word
		want   int
	}{
		{5, 0}, {25, 2}, {65, 6},
		{10, 0}, {60, 5}, {0, 0}, {61, 6},
	}
	for _, c := range cases {
		if got := v.FindGeq(0, 6, c.needle); got != c.want {
			t.Fatalf("FindGeq(%d) = %d, want %d", c.needle, got, c.want)
		}
	}
	// Sub-range searches offset by begin.
	if got := v.FindGeq(2, 6, 45); got != 4 {
		t.Fatalf("FindGeq over sub-range = %d, want 4", got)
	}
	if got := v.FindGeq(2, 4, 45); got != 4 {
		t.Fatalf("FindGeq with no hit must return end, got %d", got)
	}
}

func TestFindGeqToleratesStoredFlagBits(t *testing.T) {
	// Counter fields carry a spare top bit; a stored flag must be masked
	// out by the search, not counted as field value.
	v := newView(t, 8, 8)
	for k := 0; k < 8; k++ {
		v.Set(k, Word(10*(k+1)))
	}
	v.Set(3, v.Get(3)|0x80) // plant a flag bit on field 3 (value 40)
	if got := v.FindGeq(0, 8, 45); got != 4 {
		t.Fatalf("flag bit treated as value: FindGeq = %d, want 4", got)
	}
	if got := v.FindGeq(0, 8, 35); got != 3 {
		t.Fatalf("FindGeq = %d, want 3", got)
	}
}

func TestFindGeqAcrossManyWords(t *testing.T) {
	v := newView(t, 20, 40) // 3 fields per word, 40 fields
	for k := 0; k < 40; k++ {
		v.Set(k, Word(5*(k+1)))
	}
	for _, needle := range []Word{1, 5, 6, 100, 101, 200, 201} {
		want := 40
		for k := 0; k < 40; k++ {
			if Word(5*(k+1)) >= needle {
				want = k
				break
			}
		}
		if got := v.FindGeq(0, 40, needle); got != want {
			t.Fatalf("FindGeq(%d) = %d, want %d", needle, got, want)
		}
	}
}

func TestGetRangePacksFields(t *testing.T) {
	v := newView(t, 8, 16)
	for k := 0; k < 16; k++ {
		v.Set(k, Word(k+1))
	}
	got := v.GetRange(2, 6)
	want := Word(3) | 4<<8 | 5<<16 | 6<<24
	if got != want {
		t.Fatalf("GetRange = %#x, want %#x", got, want)
	}
	v.SetRange(10, 12, 0xBBAA)
	if v.Get(10) != 0xAA || v.Get(11) != 0xBB {
		t.Fatalf("SetRange wrote %#x %#x", v.Get(10), v.Get(11))
	}
}

func TestCopyBetweenPackedViews(t *testing.T) {
	src := newView(t, 12, 16)
	dst := newView(t, 12, 16)
	for k := 0; k < 16; k++ {
		src.Set(k, Word(31*k))
	}
	dst.Copy(src, 4, 10, 1, 7)
	for i := 0; i < 6; i++ {
		if got := dst.Get(1 + i); got != Word(31*(4+i)) {
			t.Fatalf("copied field %d wrong: %d", i, got)
		}
	}
}
