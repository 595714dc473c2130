package typegraph

import (
	"fmt"
	"strings"
)

// Selector addresses a node by a dot-separated edge path rooted at a graph
// node, e.g. "Address.City" or "arg[0].element".
type Selector struct {
	segments []string
}

// ParseSelector splits a dot-separated edge path
func ParseSelector(path string) *Selector {
	path = strings.TrimSpace(path)
	if path == "" {
		return &Selector{}
	}
	return &Selector{segments: strings.Split(path, ".")}
}

// Path returns the canonical path form
func (s *Selector) Path() string {
	return strings.Join(s.segments, ".")
}

// Apply resolves the selector against root, matching each segment against
// edge labels (field and parameter edges also match by bare name).
func (s *Selector) Apply(root *Node) (*Node, error) {
	if root == nil {
		return nil, fmt.Errorf("typegraph: selector %q applied to nil node", s.Path())
	}
	current := root
	for i, segment := range s.segments {
		next := matchChild(current, segment)
		if next == nil {
			return nil, fmt.Errorf("typegraph: no edge %q at %q in %v", segment, strings.Join(s.segments[:i], "."), current)
		}
		current = next
	}
	return current, nil
}

func matchChild(node *Node, segment string) *Node {
	for _, child := range node.Children() {
		if child.Edge.Label() == segment {
			return child.Node
		}
		if child.Edge.Name != "" && child.Edge.Name == segment {
			return child.Node
		}
	}
	return nil
}

// Select resolves a dot-separated edge path against root
func Select(root *Node, path string) (*Node, error) {
	return ParseSelector(path).Apply(root)
}

// Lookup is like Select but reports absence with a boolean instead of an error
func Lookup(root *Node, path string) (*Node, bool) {
	node, err := Select(root, path)
	if err != nil {
		return nil, false
	}
	return node, true
}
