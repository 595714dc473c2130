package typegraph

import (
	"reflect"

	"github.com/viant/typegraph/meta"
)

// Node is one immutable vertex of a type graph. The variant is discriminated
// by Kind; payload accessors not applicable to the variant return zero values.
// Nodes are created by a Builder and never mutated afterwards, so they are
// safe for concurrent reads.
type Node struct {
	kind       Kind
	metadata   *meta.Collection
	name       string
	rType      reflect.Type
	origin     *Node
	args       []*Node
	argEdges   []Edge
	members    []*Node
	underlying *Node
	bound      *Node
	constraint []*Node
	fields     []Field
	params     []Parameter
	result     *Node
	namespace  string
	referent   *Node
	source     string
	arity      int
}

// ChildEdge pairs an outgoing edge with the child node it leads to
type ChildEdge struct {
	Edge Edge
	Node *Node
}

// Kind returns the node variant
func (n *Node) Kind() Kind {
	return n.kind
}

// Metadata returns the node metadata collection, never nil
func (n *Node) Metadata() *meta.Collection {
	if n.metadata == nil {
		return meta.Empty
	}
	return n.metadata
}

// Name returns the declared name: type name, alias name, type-parameter name
// or unresolved reference name, depending on variant.
func (n *Node) Name() string {
	return n.name
}

// Type returns the reflect type of a concrete node, or nil
func (n *Node) Type() reflect.Type {
	return n.rType
}

// Origin returns the origin of a parameterized node or the target of an
// alias node.
func (n *Node) Origin() *Node {
	return n.origin
}

// Args returns ordered type arguments of a parameterized node or the type
// parameters of an alias node.
func (n *Node) Args() []*Node {
	return n.args
}

// Members returns ordered union members
func (n *Node) Members() []*Node {
	return n.members
}

// Underlying returns the base node of an annotated node
func (n *Node) Underlying() *Node {
	return n.underlying
}

// Bound returns the bound of a type-parameter node, or nil
func (n *Node) Bound() *Node {
	return n.bound
}

// Constraints returns ordered constraints of a type-parameter node
func (n *Node) Constraints() []*Node {
	return n.constraint
}

// Fields returns ordered record fields
func (n *Node) Fields() []Field {
	return n.fields
}

// Params returns ordered signature parameters
func (n *Node) Params() []Parameter {
	return n.params
}

// Return returns the signature return node, or nil
func (n *Node) Return() *Node {
	return n.result
}

// Namespace returns the namespace context retained by a deferred unresolved
// reference; empty under stringified evaluation.
func (n *Node) Namespace() string {
	return n.namespace
}

// Referent returns the in-progress ancestor a recursive marker points back to
func (n *Node) Referent() *Node {
	return n.referent
}

// Source returns the tracked source location, if source tracking was enabled
func (n *Node) Source() string {
	return n.source
}

// Arity returns declared type-parameter count of a bare generic origin
func (n *Node) Arity() int {
	return n.arity
}

// Children returns outgoing edges in declaration order. Terminal markers and
// leaf variants return nil.
func (n *Node) Children() []ChildEdge {
	var ret []ChildEdge
	switch n.kind {
	case KindParameterized:
		if n.origin != nil {
			ret = append(ret, ChildEdge{Edge: plainEdge(EdgeOrigin), Node: n.origin})
		}
		for i, arg := range n.args {
			edge := indexedEdge(EdgeArg, i)
			if i < len(n.argEdges) {
				edge = n.argEdges[i]
			}
			ret = append(ret, ChildEdge{Edge: edge, Node: arg})
		}
	case KindAlias:
		if n.underlying != nil {
			ret = append(ret, ChildEdge{Edge: plainEdge(EdgeOrigin), Node: n.underlying})
		}
		for i, param := range n.args {
			ret = append(ret, ChildEdge{Edge: indexedEdge(EdgeArg, i), Node: param})
		}
	case KindAnnotated:
		if n.underlying != nil {
			ret = append(ret, ChildEdge{Edge: plainEdge(EdgeElement), Node: n.underlying})
		}
	case KindUnion:
		for i, member := range n.members {
			ret = append(ret, ChildEdge{Edge: indexedEdge(EdgeMember, i), Node: member})
		}
	case KindTypeParam:
		if n.bound != nil {
			ret = append(ret, ChildEdge{Edge: plainEdge(EdgeBound), Node: n.bound})
		}
		for i, constraint := range n.constraint {
			ret = append(ret, ChildEdge{Edge: indexedEdge(EdgeConstraint, i), Node: constraint})
		}
	case KindFieldRecord, KindPartialRecord, KindPositionalRecord, KindInterfaceRecord:
		for _, field := range n.fields {
			if field.Node == nil {
				continue
			}
			ret = append(ret, ChildEdge{Edge: namedEdge(EdgeField, field.Name), Node: field.Node})
		}
	case KindSignature:
		for _, param := range n.params {
			if param.Node == nil {
				continue
			}
			ret = append(ret, ChildEdge{Edge: namedEdge(EdgeParameter, param.Name), Node: param.Node})
		}
		if n.result != nil {
			ret = append(ret, ChildEdge{Edge: plainEdge(EdgeReturn), Node: n.result})
		}
	}
	return ret
}

// String renders a short node description
func (n *Node) String() string {
	if n.name != "" {
		return n.kind.String() + "(" + n.name + ")"
	}
	if n.rType != nil {
		return n.kind.String() + "(" + n.rType.String() + ")"
	}
	return n.kind.String()
}

// withMetadata returns a shallow copy of the node carrying the supplied
// metadata; the receiver stays untouched.
func (n *Node) withMetadata(collection *meta.Collection) *Node {
	clone := *n
	clone.metadata = collection
	return &clone
}
