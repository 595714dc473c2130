package typegraph

import "strconv"

// EdgeKind labels the semantic relation between a parent and a child node
type EdgeKind int

const (
	// EdgeOrigin parameterized/generic origin, or an alias target
	EdgeOrigin EdgeKind = iota
	// EdgeArg indexed type argument
	EdgeArg
	// EdgeKey key type of a keyed container
	EdgeKey
	// EdgeElement element type of a container or an annotated base
	EdgeElement
	// EdgeField named record field
	EdgeField
	// EdgeMember indexed union member
	EdgeMember
	// EdgeParameter named signature parameter
	EdgeParameter
	// EdgeReturn signature return
	EdgeReturn
	// EdgeBound type-parameter bound
	EdgeBound
	// EdgeConstraint indexed type-parameter constraint
	EdgeConstraint
)

var edgeKindNames = map[EdgeKind]string{
	EdgeOrigin:     "origin",
	EdgeArg:        "arg",
	EdgeKey:        "key",
	EdgeElement:    "element",
	EdgeField:      "field",
	EdgeMember:     "member",
	EdgeParameter:  "parameter",
	EdgeReturn:     "return",
	EdgeBound:      "bound",
	EdgeConstraint: "constraint",
}

// String returns edge kind name
func (k EdgeKind) String() string {
	if name, ok := edgeKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Edge represents one parent-to-child relation; Name is set for field and
// parameter edges, Index for arg, member and constraint edges (-1 otherwise).
type Edge struct {
	Kind  EdgeKind
	Name  string
	Index int
}

// Label returns the selector label of the edge: the field/parameter name for
// named edges, kind[index] for indexed edges, the kind name otherwise.
func (e Edge) Label() string {
	switch e.Kind {
	case EdgeField, EdgeParameter:
		return e.Name
	case EdgeArg, EdgeMember, EdgeConstraint:
		return e.Kind.String() + "[" + strconv.Itoa(e.Index) + "]"
	}
	return e.Kind.String()
}

func namedEdge(kind EdgeKind, name string) Edge {
	return Edge{Kind: kind, Name: name, Index: -1}
}

func indexedEdge(kind EdgeKind, index int) Edge {
	return Edge{Kind: kind, Index: index}
}

func plainEdge(kind EdgeKind) Edge {
	return Edge{Kind: kind, Index: -1}
}
