package inspect

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/viant/typegraph"
)

type (
	concreteDesc struct {
		rType reflect.Type
	}

	genericDesc struct {
		name  string
		arity int
	}

	// containerDesc resolves its type arguments lazily so descriptions of
	// self-referential container types intern before their elements materialize
	containerDesc struct {
		rType     reflect.Type
		origin    typegraph.Description
		keyed     bool
		inspector *Inspector
		once      sync.Once
		args      []typegraph.Description
	}

	aliasDesc struct {
		name   string
		source string
		target typegraph.Description
		params []typegraph.Description
	}

	qualifiedDesc struct {
		name  string
		base  typegraph.Description
		items []interface{}
	}

	unionDesc struct {
		name    string
		members []typegraph.Description
	}

	typeParamDesc struct {
		name        string
		bound       typegraph.Description
		constraints []typegraph.Description
	}

	refDesc struct {
		name      string
		namespace string
		resolve   func(name string) (typegraph.Description, error)
	}

	// fieldsDesc carries lazily computed field descriptors so descriptions of
	// self-referential structs can intern before their fields materialize
	fieldsDesc struct {
		inspector *Inspector
		rType     reflect.Type
		once      sync.Once
		fields    []typegraph.FieldDescriptor
		marker    *Marker
	}

	structDesc struct {
		*fieldsDesc
	}

	partialDesc struct {
		*fieldsDesc
	}

	positionalDesc struct {
		*fieldsDesc
	}

	ifaceDesc struct {
		inspector *Inspector
		rType     reflect.Type
		once      sync.Once
		fields    []typegraph.FieldDescriptor
	}

	funcDesc struct {
		inspector *Inspector
		name      string
		rType     reflect.Type
	}
)

func (d *concreteDesc) TypeName() string {
	return d.rType.String()
}

func (d *concreteDesc) ConcreteType() reflect.Type {
	return d.rType
}

func (d *concreteDesc) Source() string {
	return sourceOf(d.rType)
}

func (d *genericDesc) TypeName() string {
	return d.name
}

func (d *genericDesc) Arity() int {
	return d.arity
}

func (d *containerDesc) TypeName() string {
	if d.rType != nil {
		return d.rType.String()
	}
	return d.origin.TypeName()
}

func (d *containerDesc) ParamOrigin() typegraph.Description {
	return d.origin
}

// ParamArgs loads the type arguments on first use
func (d *containerDesc) ParamArgs() []typegraph.Description {
	d.once.Do(func() {
		if len(d.args) > 0 || d.inspector == nil || d.rType == nil {
			return
		}
		if d.keyed {
			d.args = []typegraph.Description{d.inspector.DescribeType(d.rType.Key()), d.inspector.DescribeType(d.rType.Elem())}
			return
		}
		d.args = []typegraph.Description{d.inspector.DescribeType(d.rType.Elem())}
	})
	return d.args
}

// KeyArg returns the key argument of a keyed container
func (d *containerDesc) KeyArg() typegraph.Description {
	if !d.keyed {
		return nil
	}
	if args := d.ParamArgs(); len(args) == 2 {
		return args[0]
	}
	return nil
}

// ElemArg returns the element argument
func (d *containerDesc) ElemArg() typegraph.Description {
	args := d.ParamArgs()
	if d.keyed {
		if len(args) == 2 {
			return args[1]
		}
		return nil
	}
	if len(args) == 1 {
		return args[0]
	}
	return nil
}

func (d *aliasDesc) TypeName() string {
	return d.name
}

func (d *aliasDesc) AliasTarget() typegraph.Description {
	return d.target
}

func (d *aliasDesc) AliasParams() []typegraph.Description {
	return d.params
}

func (d *aliasDesc) Source() string {
	return d.source
}

func (d *qualifiedDesc) TypeName() string {
	return d.name
}

func (d *qualifiedDesc) QualifiedBase() typegraph.Description {
	return d.base
}

func (d *qualifiedDesc) MetadataItems() []interface{} {
	return d.items
}

func (d *unionDesc) TypeName() string {
	return d.name
}

func (d *unionDesc) Members() []typegraph.Description {
	return d.members
}

func (d *typeParamDesc) TypeName() string {
	return d.name
}

func (d *typeParamDesc) Bound() typegraph.Description {
	return d.bound
}

func (d *typeParamDesc) Constraints() []typegraph.Description {
	return d.constraints
}

func (d *refDesc) TypeName() string {
	return d.name
}

func (d *refDesc) Namespace() string {
	return d.namespace
}

// Resolve resolves the reference within its namespace
func (d *refDesc) Resolve() (typegraph.Description, error) {
	if d.resolve == nil {
		return nil, fmt.Errorf("no resolver for %q", d.name)
	}
	return d.resolve(d.name)
}

func (d *fieldsDesc) TypeName() string {
	return d.rType.String()
}

func (d *fieldsDesc) ConcreteType() reflect.Type {
	return d.rType
}

func (d *fieldsDesc) Source() string {
	return sourceOf(d.rType)
}

// Marker returns the presence marker of a partial record, or nil
func (d *fieldsDesc) Marker() *Marker {
	d.load()
	return d.marker
}

func (d *fieldsDesc) load() []typegraph.FieldDescriptor {
	d.once.Do(func() {
		d.fields, d.marker = d.inspector.structFields(d.rType)
	})
	return d.fields
}

// RecordFields returns field descriptors in declaration order
func (d *structDesc) RecordFields() []typegraph.FieldDescriptor {
	return d.load()
}

// PartialFields returns field descriptors with per-field optionality
func (d *partialDesc) PartialFields() []typegraph.FieldDescriptor {
	return d.load()
}

// PositionalFields returns field descriptors in positional order
func (d *positionalDesc) PositionalFields() []typegraph.FieldDescriptor {
	return d.load()
}

func (d *ifaceDesc) TypeName() string {
	return d.rType.String()
}

func (d *ifaceDesc) ConcreteType() reflect.Type {
	return d.rType
}

func (d *ifaceDesc) Source() string {
	return sourceOf(d.rType)
}

// InterfaceFields returns one descriptor per declared method
func (d *ifaceDesc) InterfaceFields() []typegraph.FieldDescriptor {
	d.once.Do(func() {
		for i := 0; i < d.rType.NumMethod(); i++ {
			method := d.rType.Method(i)
			d.fields = append(d.fields, typegraph.FieldDescriptor{
				Name:     method.Name,
				Type:     d.inspector.funcDescription(method.Name, method.Type),
				Required: true,
			})
		}
	})
	return d.fields
}

func (d *funcDesc) TypeName() string {
	if d.name != "" {
		return d.name
	}
	return d.rType.String()
}

// SignatureParams returns ordered parameter descriptors; the trailing
// parameter of a variadic signature is marked variadic.
func (d *funcDesc) SignatureParams() []typegraph.ParameterDescriptor {
	var ret []typegraph.ParameterDescriptor
	for i := 0; i < d.rType.NumIn(); i++ {
		kind := typegraph.ParamPositional
		if d.rType.IsVariadic() && i == d.rType.NumIn()-1 {
			kind = typegraph.ParamVariadic
		}
		ret = append(ret, typegraph.ParameterDescriptor{
			Name: fmt.Sprintf("p%d", i),
			Kind: kind,
			Type: d.inspector.DescribeType(d.rType.In(i)),
		})
	}
	return ret
}

// SignatureReturn returns the return description: nil for no results, the
// sole result, or a union of multiple results.
func (d *funcDesc) SignatureReturn() typegraph.Description {
	switch d.rType.NumOut() {
	case 0:
		return nil
	case 1:
		return d.inspector.DescribeType(d.rType.Out(0))
	}
	members := make([]typegraph.Description, 0, d.rType.NumOut())
	for i := 0; i < d.rType.NumOut(); i++ {
		members = append(members, d.inspector.DescribeType(d.rType.Out(i)))
	}
	return &unionDesc{name: d.rType.String() + " results", members: members}
}

func sourceOf(t reflect.Type) string {
	if t.PkgPath() == "" {
		return ""
	}
	return t.PkgPath() + "." + t.Name()
}

// Annotated wraps base with metadata items, producing a qualified description
func Annotated(base typegraph.Description, items ...interface{}) typegraph.Description {
	return &qualifiedDesc{name: base.TypeName(), base: base, items: items}
}

// OneOf builds a union description over alternatives
func OneOf(members ...typegraph.Description) typegraph.Description {
	name := ""
	for i, member := range members {
		if i > 0 {
			name += "|"
		}
		name += member.TypeName()
	}
	return &unionDesc{name: name, members: members}
}

// Generic builds a bare generic origin description
func Generic(name string, arity int) typegraph.Description {
	return &genericDesc{name: name, arity: arity}
}

// Parameterized applies a generic origin to ordered type arguments
func Parameterized(origin typegraph.Description, args ...typegraph.Description) typegraph.Description {
	return &containerDesc{origin: origin, args: args}
}

// TypeParam builds a type-parameter marker; bound may be nil
func TypeParam(name string, bound typegraph.Description, constraints ...typegraph.Description) typegraph.Description {
	return &typeParamDesc{name: name, bound: bound, constraints: constraints}
}

// Ref builds a forward reference resolved on demand through resolve
func Ref(name, namespace string, resolve func(name string) (typegraph.Description, error)) typegraph.Description {
	return &refDesc{name: name, namespace: namespace, resolve: resolve}
}

// AsPositional re-labels a struct description as a positionally constructed
// record; the field set is shared.
func AsPositional(description typegraph.Description) (typegraph.Description, error) {
	actual, ok := description.(*structDesc)
	if !ok {
		return nil, fmt.Errorf("inspect: %T is not a field record description", description)
	}
	return &positionalDesc{fieldsDesc: actual.fieldsDesc}, nil
}
