package parser

import (
	"fmt"
	"strings"
)

// Tree is a parse result node. Leaves carry the matched terminal text in
// Token; interior nodes mirror the grammar's rule nesting.
type Tree struct {
	Name     string
	Token    string
	Children []*Tree

	// splice marks nodes for synthesized repetition helpers; their
	// children are folded into the enclosing rule's node.
	splice bool
}

// IsLeaf reports whether the node is a matched terminal.
func (t *Tree) IsLeaf() bool {
	return len(t.Children) == 0 && t.Token != ""
}

// Pretty renders the tree in an indented human-readable form.
func (t *Tree) Pretty() string {
	var b strings.Builder
	t.pretty(&b, 0)
	return b.String()
}

func (t *Tree) pretty(b *strings.Builder, depth int) {
	indent := strings.Repeat("  ", depth)
	if t.IsLeaf() {
		fmt.Fprintf(b, "%s%s %q\n", indent, t.Name, t.Token)
		return
	}
	fmt.Fprintf(b, "%s%s\n", indent, t.Name)
	for _, c := range t.Children {
		c.pretty(b, depth+1)
	}
}
