package typegraph

import (
	"fmt"
	"strings"

	"github.com/davecgh/go-spew/spew"
)

var dumpConfig = spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, DisableCapacities: true, SortKeys: true}

// Dump renders the graph rooted at node as an indented outline with one line
// per visited node; shared and recursive substructure appears once. Metadata
// items render through spew for stable, address-free output.
func Dump(node *Node) string {
	builder := &strings.Builder{}
	seen := map[*Node]bool{}
	dump(builder, node, Edge{Index: -1}, 0, seen, false)
	return builder.String()
}

func dump(builder *strings.Builder, node *Node, edge Edge, depth int, seen map[*Node]bool, labeled bool) {
	builder.WriteString(strings.Repeat("  ", depth))
	if labeled {
		builder.WriteString(edge.Label())
		builder.WriteString(": ")
	}
	if node == nil {
		builder.WriteString("<nil>\n")
		return
	}
	builder.WriteString(node.String())
	if seen[node] {
		builder.WriteString(" (shared)\n")
		return
	}
	seen[node] = true
	if !node.Metadata().IsEmpty() {
		items := node.Metadata().Map(func(item interface{}) interface{} {
			return strings.TrimSpace(dumpConfig.Sprintf("%v", item))
		})
		builder.WriteString(" @[")
		for i, item := range items {
			if i > 0 {
				builder.WriteString(", ")
			}
			builder.WriteString(fmt.Sprintf("%v", item))
		}
		builder.WriteString("]")
	}
	builder.WriteString("\n")
	for _, child := range node.Children() {
		dump(builder, child.Node, child.Edge, depth+1, seen, true)
	}
}
