package pretty

import (
	"strings"
	"testing"

	"github.com/npillmayer/bitvec"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestFprintWrapsAndGroups(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New(t)
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	v, err := bitvec.FromString(strings.Repeat("10", 20), 0)
	if err != nil {
		t.Fatal(err)
	}
	p := NewPrinter(&Config{LineWidth: 16, GroupSize: 8})
	var sb strings.Builder
	if err := p.Fprint(&sb, v); err != nil {
		t.Fatal(err)
	}
	out := sb.String()
	if !strings.Contains(out, "\n") {
		t.Errorf("expected wrapped output, got %q", out)
	}
	plain := strings.NewReplacer("\n", "", " ", "").Replace(stripANSI(out))
	if plain != strings.Repeat("10", 20) {
		t.Errorf("bit content mangled: %q", plain)
	}
}

func TestFprintTreeListsLeaves(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New(t)
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	v, err := bitvec.New(500)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 200; i++ {
		if err := v.PushBack(i%3 == 0); err != nil {
			t.Fatal(err)
		}
	}
	p := NewPrinter(&Config{LineWidth: 80})
	var sb strings.Builder
	if err := p.FprintTree(&sb, v); err != nil {
		t.Fatal(err)
	}
	out := sb.String()
	if !strings.Contains(out, "leaf") || !strings.Contains(out, "node 0") {
		t.Errorf("tree dump incomplete: %.120q", out)
	}
}

// stripANSI removes color escape sequences from test output.
func stripANSI(s string) string {
	var sb strings.Builder
	inEsc := false
	for i := 0; i < len(s); i++ {
		switch {
		case inEsc:
			if s[i] == 'm' {
				inEsc = false
			}
		case s[i] == 0x1b:
			inEsc = true
		default:
			sb.WriteByte(s[i])
		}
	}
	return sb.String()
}
