package html

import (
	"strings"
	"testing"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestFromHTML(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New(t)
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	input := "<div><p>0110</p> <span>10 01</span></div>"
	v, err := FromHTML(strings.NewReader(input), 0)
	if err != nil {
		t.Fatal(err)
	}
	if v.String() != "01101001" {
		t.Errorf("extracted %q, want %q", v.String(), "01101001")
	}
}

func TestFromHTMLRejectsNonBits(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New(t)
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	if _, err := FromHTML(strings.NewReader("<p>01a0</p>"), 0); err == nil {
		t.Fatal("expected error for non-bit text")
	}
}
