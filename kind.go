package typegraph

// Kind discriminates the closed set of node variants
type Kind int

const (
	// KindConcrete plain concrete type
	KindConcrete Kind = iota
	// KindGeneric bare generic origin without type arguments
	KindGeneric
	// KindParameterized generic origin with ordered type arguments
	KindParameterized
	// KindUnion ordered union of alternatives
	KindUnion
	// KindAlias named alias with optional type parameters
	KindAlias
	// KindTypeParam type-parameter marker with optional bound and constraints
	KindTypeParam
	// KindUnresolved forward reference kept unresolved
	KindUnresolved
	// KindAnnotated qualified wrapper kept distinct from its base (hoisting off)
	KindAnnotated
	// KindRecursive terminal marker emitted when a build re-enters an ancestor
	KindRecursive
	// KindDepthBound terminal marker emitted when a build exceeds max depth
	KindDepthBound
	// KindFieldRecord record with arbitrary required/defaulted named fields
	KindFieldRecord
	// KindPartialRecord record with per-field required/optional marking
	KindPartialRecord
	// KindPositionalRecord record with ordered, positionally constructed fields
	KindPositionalRecord
	// KindInterfaceRecord record describing a structural capability
	KindInterfaceRecord
	// KindSignature callable signature
	KindSignature
)

var kindNames = map[Kind]string{
	KindConcrete:         "concrete",
	KindGeneric:          "generic",
	KindParameterized:    "parameterized",
	KindUnion:            "union",
	KindAlias:            "alias",
	KindTypeParam:        "typeParam",
	KindUnresolved:       "unresolved",
	KindAnnotated:        "annotated",
	KindRecursive:        "recursive",
	KindDepthBound:       "depthBound",
	KindFieldRecord:      "fieldRecord",
	KindPartialRecord:    "partialRecord",
	KindPositionalRecord: "positionalRecord",
	KindInterfaceRecord:  "interfaceRecord",
	KindSignature:        "signature",
}

// String returns kind name
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// IsRecord returns true for any of the record kinds
func (k Kind) IsRecord() bool {
	switch k {
	case KindFieldRecord, KindPartialRecord, KindPositionalRecord, KindInterfaceRecord:
		return true
	}
	return false
}

// IsTerminal returns true for marker kinds that never carry children
func (k Kind) IsTerminal() bool {
	return k == KindRecursive || k == KindDepthBound
}
