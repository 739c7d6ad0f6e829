package tree

import (
	"fmt"
	"strings"
)

// Render draws the tree with box-drawing connectors, one element per line as
// `tag [k="v", ...]`, with the element text as a quoted child line.
func Render(t *Tree) string {
	var lines []string
	renderNode(&lines, t.Root, "", true)
	return strings.Join(lines, "\n")
}

func renderNode(lines *[]string, n *Node, prefix string, last bool) {
	connector, childPrefix := "├── ", prefix+"│   "
	if last {
		connector, childPrefix = "└── ", prefix+"    "
	}

	attrs := make([]string, len(n.Attrs))
	for i, a := range n.Attrs {
		attrs[i] = fmt.Sprintf("%s=%q", a.Name, a.Value)
	}
	*lines = append(*lines, fmt.Sprintf("%s%s%s [%s]", prefix, connector, n.Tag, strings.Join(attrs, ", ")))

	if n.Text != "" {
		textConnector := "└── "
		if len(n.Children) > 0 {
			textConnector = "├── "
		}
		*lines = append(*lines, fmt.Sprintf("%s%s%q", childPrefix, textConnector, n.Text))
	}
	for i, c := range n.Children {
		renderNode(lines, c, childPrefix, i == len(n.Children)-1)
	}
}
