package pretty

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/npillmayer/bitvec"
	"github.com/npillmayer/bitvec/btree"
	"golang.org/x/term"
)

// Config controls console rendering.
type Config struct {
	// LineWidth is the number of output columns per line, group
	// separators included.
	LineWidth int
	// GroupSize inserts a space every GroupSize bits; 0 disables grouping.
	GroupSize int
}

// ConfigFromTerminal checks whether stdout is a terminal and, if so,
// reads the terminal's width to set Config.LineWidth. Otherwise a
// conservative default width is used.
func ConfigFromTerminal() *Config {
	config := &Config{GroupSize: 8}
	config.LineWidth = 64
	if fd := int(os.Stdout.Fd()); term.IsTerminal(fd) {
		if w, _, err := term.GetSize(fd); err == nil && w > 16 {
			config.LineWidth = w - 8
		}
	}
	return config
}

// Printer renders vectors with a configurable palette.
type Printer struct {
	config *Config
	ones   *color.Color
	zeros  *color.Color
	header *color.Color
}

// NewPrinter creates a printer. A nil config is derived from the current
// terminal.
func NewPrinter(config *Config) *Printer {
	if config == nil {
		config = ConfigFromTerminal()
	}
	if config.LineWidth < 1 {
		config.LineWidth = 64
	}
	return &Printer{
		config: config,
		ones:   color.New(color.FgRed),
		zeros:  color.New(color.FgBlue),
		header: color.New(color.Bold),
	}
}

// Print renders the vector's bits to stdout.
func (p *Printer) Print(v *bitvec.Vector) error {
	return p.Fprint(os.Stdout, v)
}

// Fprint renders the vector's bits to w, wrapped to the configured line
// width, set bits highlighted.
func (p *Printer) Fprint(w io.Writer, v *bitvec.Vector) error {
	tracer().Debugf("pretty-printing vector of %d bits", v.Len())
	col := 0
	var err error
	v.Each(func(i int, bit bool) bool {
		if col >= p.config.LineWidth {
			if _, err = io.WriteString(w, "\n"); err != nil {
				return false
			}
			col = 0
		}
		if p.config.GroupSize > 0 && col > 0 && i%p.config.GroupSize == 0 {
			if _, err = io.WriteString(w, " "); err != nil {
				return false
			}
			col++
		}
		if bit {
			_, err = p.ones.Fprint(w, "1")
		} else {
			_, err = p.zeros.Fprint(w, "0")
		}
		col++
		return err == nil
	})
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, "\n")
	return err
}

// FprintTree renders the node structure of the vector's tree to w, one
// indented line per node, leaves with their bit patterns.
func (p *Printer) FprintTree(w io.Writer, v *bitvec.Vector) error {
	tree := v.Tree()
	height := tree.Height()
	var err error
	tree.WalkNodes(func(n btree.NodeInfo, parent, slot int) bool {
		indent := strings.Repeat("  ", height-n.Height)
		if n.Leaf {
			pattern := leafPattern(n)
			_, err = fmt.Fprintf(w, "%sleaf %d |%d| %s\n", indent, n.Index, n.Size, pattern)
		} else {
			head := p.header.Sprintf("node %d", n.Index)
			_, err = fmt.Fprintf(w, "%s%s size=%d rank=%d children=%d\n",
				indent, head, n.Size, n.Rank, n.Children)
		}
		return err == nil
	})
	return err
}

// leafPattern renders a leaf's valid bits, lowest first.
func leafPattern(n btree.NodeInfo) string {
	var sb strings.Builder
	for j := 0; j < n.Size; j++ {
		if n.Word>>uint(j)&1 != 0 {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}
