package typegraph

// Sequence is a lazy push iterator over nodes. The callback returns false to
// stop iteration; a stopped walk needs no cleanup, the walker owns no
// resources. Compatible with range-over-func.
type Sequence func(yield func(node *Node) bool)

type walkOptions struct {
	predicate func(node *Node) bool
	maxDepth  int
}

// WalkOption adjusts a walk
type WalkOption func(o *walkOptions)

// WithPredicate filters which visited nodes are yielded. The predicate does
// not prune descent: children of a filtered-out node are still explored.
func WithPredicate(predicate func(node *Node) bool) WalkOption {
	return func(o *walkOptions) {
		o.predicate = predicate
	}
}

// WithWalkDepth bounds both yielding and descent; nodes strictly deeper than
// maxDepth (root = depth 0) are neither yielded nor expanded. A negative
// value means unbounded.
func WithWalkDepth(maxDepth int) WalkOption {
	return func(o *walkOptions) {
		o.maxDepth = maxDepth
	}
}

type frame struct {
	node  *Node
	depth int
}

// Walk returns a lazy, finite, single-pass, depth-first pre-order sequence
// over the graph rooted at root: a parent is yielded before its children,
// children in Children() order. A node already yielded by identity is never
// yielded again and its subtree is not re-descended, which keeps traversal
// finite over shared or self-referential graphs. Walk never fails.
func Walk(root *Node, opts ...WalkOption) Sequence {
	options := &walkOptions{maxDepth: -1}
	for _, opt := range opts {
		opt(options)
	}
	return func(yield func(node *Node) bool) {
		if root == nil {
			return
		}
		visited := map[*Node]bool{}
		stack := []frame{{node: root, depth: 0}}
		for len(stack) > 0 {
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if top.node == nil || visited[top.node] {
				continue
			}
			if options.maxDepth >= 0 && top.depth > options.maxDepth {
				continue
			}
			visited[top.node] = true
			if options.predicate == nil || options.predicate(top.node) {
				if !yield(top.node) {
					return
				}
			}
			children := top.node.Children()
			for i := len(children) - 1; i >= 0; i-- {
				stack = append(stack, frame{node: children[i].Node, depth: top.depth + 1})
			}
		}
	}
}

// Nodes collects the walked sequence into a slice
func (s Sequence) Nodes() []*Node {
	var ret []*Node
	s(func(node *Node) bool {
		ret = append(ret, node)
		return true
	})
	return ret
}

// Count returns the number of yielded nodes
func (s Sequence) Count() int {
	ret := 0
	s(func(*Node) bool {
		ret++
		return true
	})
	return ret
}

// First returns the first yielded node, or nil for an empty sequence
func (s Sequence) First() *Node {
	var ret *Node
	s(func(node *Node) bool {
		ret = node
		return false
	})
	return ret
}
