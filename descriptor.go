package typegraph

// ParameterKind classifies a signature parameter
type ParameterKind int

const (
	// ParamPositional ordinary positional parameter
	ParamPositional ParameterKind = iota
	// ParamNamed parameter addressed by name
	ParamNamed
	// ParamVariadic trailing variadic parameter
	ParamVariadic
)

var parameterKindNames = map[ParameterKind]string{
	ParamPositional: "positional",
	ParamNamed:      "named",
	ParamVariadic:   "variadic",
}

// String returns parameter kind name
func (k ParameterKind) String() string {
	if name, ok := parameterKindNames[k]; ok {
		return name
	}
	return "unknown"
}

type (
	// FieldDescriptor describes one record field as supplied by an external
	// inspector; the core stores it, it never derives one.
	FieldDescriptor struct {
		Name           string
		Type           Description
		Required       bool
		Default        interface{}
		HasDefault     bool
		DefaultFactory func() interface{}
	}

	// ParameterDescriptor describes one signature parameter
	ParameterDescriptor struct {
		Name       string
		Kind       ParameterKind
		Type       Description
		Default    interface{}
		HasDefault bool
	}

	// Field is a resolved record field on a built node
	Field struct {
		Name           string
		Node           *Node
		Required       bool
		Default        interface{}
		HasDefault     bool
		DefaultFactory func() interface{}
	}

	// Parameter is a resolved signature parameter on a built node
	Parameter struct {
		Name       string
		Kind       ParameterKind
		Node       *Node
		Default    interface{}
		HasDefault bool
	}
)
