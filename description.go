package typegraph

import "reflect"

// Description is an opaque structural type description. The builder never
// mutates a description; it classifies one through the capability interfaces
// below, asserted in fixed priority order. Descriptions have to be
// identity-stable: the same logical description is represented by the same
// (pointer) value across calls, which is what the memoization cache keys on.
type Description interface {
	TypeName() string
}

type (
	// Qualified is a wrapper attaching metadata items to a wrapped base
	Qualified interface {
		Description
		QualifiedBase() Description
		MetadataItems() []interface{}
	}

	// Aliased is a named alias of an underlying description, with optional
	// ordered type parameters
	Aliased interface {
		Description
		AliasTarget() Description
		AliasParams() []Description
	}

	// TypeParamDesc is a type-parameter marker with an optional bound and
	// optional ordered constraints
	TypeParamDesc interface {
		Description
		Bound() Description
		Constraints() []Description
	}

	// Unresolvable is a forward reference; Resolve attempts resolution within
	// the reference namespace
	Unresolvable interface {
		Description
		Namespace() string
		Resolve() (Description, error)
	}

	// UnionDesc is an ordered union of alternatives
	UnionDesc interface {
		Description
		Members() []Description
	}

	// ParameterizedDesc is a generic origin applied to ordered type arguments
	ParameterizedDesc interface {
		Description
		ParamOrigin() Description
		ParamArgs() []Description
	}

	// KeyedDesc refines ParameterizedDesc for two-argument keyed containers;
	// its arguments take key/element edges instead of indexed arg edges.
	KeyedDesc interface {
		KeyArg() Description
		ElemArg() Description
	}

	// ElementDesc refines ParameterizedDesc for single-element containers;
	// its argument takes an element edge instead of arg[0].
	ElementDesc interface {
		ElemArg() Description
	}

	// GenericDesc is a bare generic origin observed without type arguments
	GenericDesc interface {
		Description
		Arity() int
	}

	// InterfaceRecordDesc describes a structural capability through fields
	InterfaceRecordDesc interface {
		Description
		InterfaceFields() []FieldDescriptor
	}

	// PartialRecordDesc describes a record with per-field optionality marking
	PartialRecordDesc interface {
		Description
		PartialFields() []FieldDescriptor
	}

	// PositionalRecordDesc describes a positionally constructed record
	PositionalRecordDesc interface {
		Description
		PositionalFields() []FieldDescriptor
	}

	// FieldRecordDesc describes a plain field record
	FieldRecordDesc interface {
		Description
		RecordFields() []FieldDescriptor
	}

	// SignatureDesc describes a callable signature
	SignatureDesc interface {
		Description
		SignatureParams() []ParameterDescriptor
		SignatureReturn() Description
	}

	// ConcreteDesc optionally exposes the reflect type of a concrete description
	ConcreteDesc interface {
		Description
		ConcreteType() reflect.Type
	}

	// Located optionally reports a source location (package path, file) used
	// when source tracking is enabled
	Located interface {
		Source() string
	}
)
