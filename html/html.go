package html

import (
	"fmt"
	"io"

	"github.com/npillmayer/bitvec"
	"golang.org/x/net/html"
)

// InnerBits creates a bit vector from the textual content of an HTML
// element and all its descendants: every '0' and '1' character becomes a
// bit, whitespace is skipped, any other character is an error. It
// resembles reading
//
//	document.getElementById("myNode").innerText
//
// as a bit pattern. A capacity of 0 sizes the vector exactly to the
// collected bits.
func InnerBits(n *html.Node, capacity int) (*bitvec.Vector, error) {
	if n == nil {
		return nil, fmt.Errorf("%w: nil HTML node", bitvec.ErrInvalidConfig)
	}
	var bits []bool
	if err := collectBits(n, &bits); err != nil {
		return nil, err
	}
	return bitvec.FromBools(bits, capacity)
}

func collectBits(n *html.Node, bits *[]bool) error {
	if n.Type == html.TextNode {
		for _, r := range n.Data {
			switch r {
			case '0':
				*bits = append(*bits, false)
			case '1':
				*bits = append(*bits, true)
			case ' ', '\t', '\n', '\r':
				// layout whitespace between digit runs
			default:
				return fmt.Errorf("%w: character %q is not a bit",
					bitvec.ErrInvalidConfig, r)
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if err := collectBits(c, bits); err != nil {
			return err
		}
	}
	return nil
}

// FromHTML creates a bit vector from the textual content of an HTML
// fragment. It does no interpretation of layout or styling, but extracts
// the pure 0/1 text.
func FromHTML(input io.Reader, capacity int) (*bitvec.Vector, error) {
	nodes, err := html.ParseFragment(input, nil)
	if err != nil {
		return nil, err
	}
	var bits []bool
	for _, n := range nodes {
		if err := collectBits(n, &bits); err != nil {
			return nil, err
		}
	}
	return bitvec.FromBools(bits, capacity)
}
