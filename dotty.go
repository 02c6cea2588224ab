package bitvec

import (
	"fmt"
	"io"

	"github.com/npillmayer/bitvec/btree"
)

// Vector2Dot outputs the internal tree structure of a Vector in Graphviz
// DOT format (for debugging purposes).
func Vector2Dot(v *Vector, w io.Writer) {
	io.WriteString(w, "strict digraph {\n")
	io.WriteString(w, "\tnode [fontname=Arial,fontsize=12];\n")
	nodelist, edgelist := "", ""
	v.tree.WalkNodes(func(n btree.NodeInfo, parent, slot int) bool {
		id := nodeDotID(n)
		if n.Leaf {
			label := fmt.Sprintf("leaf %d\\n|%d| r%d", n.Index, n.Size, n.Rank)
			nodelist += fmt.Sprintf("\"%s\" [label=\"%s\"%s];\n", id, label, nodeDotStyles(true))
		} else {
			label := fmt.Sprintf("%d\\n%d/%d", n.Index, n.Size, n.Rank)
			nodelist += fmt.Sprintf("\"%s\" [label=\"%s\"%s];\n", id, label, nodeDotStyles(false))
		}
		if parent >= 0 {
			edgelist += fmt.Sprintf("\"n%d\" -> \"%s\" [label=\"%d\"];\n", parent, id, slot)
		}
		return true
	})
	io.WriteString(w, nodelist)
	io.WriteString(w, edgelist)
	io.WriteString(w, "}\n")
}

// nodeDotID keeps node and leaf index spaces apart in the graph.
func nodeDotID(n btree.NodeInfo) string {
	if n.Leaf {
		return fmt.Sprintf("l%d", n.Index)
	}
	return fmt.Sprintf("n%d", n.Index)
}

func nodeDotStyles(isleaf bool) string {
	s := ",style=filled"
	if isleaf {
		s += ",shape=box"
	} else {
		s += ",color=black,fillcolor=\"#a3d7e4\""
		s += ",shape=circle"
	}
	return s
}
