// Package inspect derives typegraph descriptions from Go values and types
// through reflection. It is the external-collaborator side of the core's
// input contract: struct types become field records (partial records when a
// presence marker is present), interfaces become structural-interface
// records, funcs become signatures, containers become parameterized
// descriptions, and meta struct tags become qualified wrappers carrying
// metadata items.
package inspect

import (
	"reflect"
	"sync"

	"github.com/viant/tagly/format/text"
	"github.com/viant/typegraph"
	"github.com/viant/xunsafe"
)

// Inspector produces identity-stable descriptions: the same reflect type
// always yields the same description instance, which is what the builder's
// memoization keys on. An inspector is safe for concurrent use.
type Inspector struct {
	tagNames   []string
	formatter  *text.CaseFormatter
	types      sync.Map // map[reflect.Type]typegraph.Description
	generics   sync.Map // map[string]typegraph.Description
	prototypes sync.Map // map[reflect.Type]interface{} ptr to prototype
}

// InspectorOption adjusts an inspector
type InspectorOption func(i *Inspector)

// WithTagName registers an additional struct tag consulted after the meta tag
func WithTagName(name string) InspectorOption {
	return func(i *Inspector) {
		i.tagNames = append(i.tagNames, name)
	}
}

// WithCaseFormat formats descriptor field names from UpperCamel source names
// into the supplied case format, e.g. "lowerUnderscore".
func WithCaseFormat(caseFormat string) InspectorOption {
	return func(i *Inspector) {
		to := text.NewCaseFormat(caseFormat)
		i.formatter = text.CaseFormatUpperCamel.To(to)
	}
}

// WithPrototype registers a prototype instance; non-zero prototype field
// values become field defaults for the prototype's struct type.
func WithPrototype(value interface{}) InspectorOption {
	return func(i *Inspector) {
		valueType := reflect.TypeOf(value)
		if valueType == nil {
			return
		}
		if valueType.Kind() != reflect.Ptr {
			ptr := reflect.New(valueType)
			ptr.Elem().Set(reflect.ValueOf(value))
			value = ptr.Interface()
			valueType = ptr.Type()
		}
		if valueType.Elem().Kind() != reflect.Struct {
			return
		}
		i.prototypes.Store(valueType.Elem(), value)
	}
}

// New creates an inspector
func New(opts ...InspectorOption) *Inspector {
	ret := &Inspector{}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}

// Describe returns the description of a value's type
func (i *Inspector) Describe(value interface{}) typegraph.Description {
	return i.DescribeType(reflect.TypeOf(value))
}

// DescribeType returns the identity-stable description of a reflect type
func (i *Inspector) DescribeType(t reflect.Type) typegraph.Description {
	if t == nil {
		return nil
	}
	if cached, ok := i.types.Load(t); ok {
		return cached.(typegraph.Description)
	}
	description := i.describe(t)
	actual, _ := i.types.LoadOrStore(t, description)
	return actual.(typegraph.Description)
}

// describe classifies a reflect type; struct field sets, interface methods
// and container type arguments load lazily so self-referential types intern
// before their members materialize.
func (i *Inspector) describe(t reflect.Type) typegraph.Description {
	if t == timeType {
		return &concreteDesc{rType: t}
	}
	switch t.Kind() {
	case reflect.Struct:
		fields := &fieldsDesc{inspector: i, rType: t}
		if HasMarker(t) {
			return &partialDesc{fieldsDesc: fields}
		}
		return &structDesc{fieldsDesc: fields}
	case reflect.Interface:
		return &ifaceDesc{inspector: i, rType: t}
	case reflect.Func:
		return &funcDesc{inspector: i, rType: t}
	case reflect.Map:
		return i.aliasOrSelf(t, &containerDesc{inspector: i, rType: t, origin: i.genericOrigin("map", 2), keyed: true})
	case reflect.Slice:
		return i.aliasOrSelf(t, i.elementContainer(t, "slice"))
	case reflect.Array:
		return i.aliasOrSelf(t, i.elementContainer(t, "array"))
	case reflect.Ptr:
		return i.elementContainer(t, "pointer")
	case reflect.Chan:
		return i.elementContainer(t, "chan")
	}
	if t.PkgPath() != "" {
		// defined scalar type: a named alias of the predeclared type
		return &aliasDesc{name: t.String(), source: sourceOf(t), target: i.DescribeType(predeclared(t.Kind()))}
	}
	return &concreteDesc{rType: t}
}

func (i *Inspector) elementContainer(t reflect.Type, origin string) *containerDesc {
	return &containerDesc{inspector: i, rType: t, origin: i.genericOrigin(origin, 1)}
}

// aliasOrSelf wraps defined container types into a named alias of their
// structural description.
func (i *Inspector) aliasOrSelf(t reflect.Type, structural typegraph.Description) typegraph.Description {
	if t.PkgPath() == "" {
		return structural
	}
	return &aliasDesc{name: t.String(), source: sourceOf(t), target: structural}
}

func (i *Inspector) genericOrigin(name string, arity int) typegraph.Description {
	if cached, ok := i.generics.Load(name); ok {
		return cached.(typegraph.Description)
	}
	actual, _ := i.generics.LoadOrStore(name, &genericDesc{name: name, arity: arity})
	return actual.(typegraph.Description)
}

func (i *Inspector) funcDescription(name string, t reflect.Type) typegraph.Description {
	return &funcDesc{inspector: i, name: name, rType: t}
}

// structFields derives field descriptors for a struct type; the second result
// is the presence marker of a partial record, or nil.
func (i *Inspector) structFields(t reflect.Type) ([]typegraph.FieldDescriptor, *Marker) {
	var marker *Marker
	if HasMarker(t) {
		marker, _ = NewMarker(t)
	}
	var prototypePtr interface{}
	if value, ok := i.prototypes.Load(t); ok {
		prototypePtr = value
	}
	var ret []typegraph.FieldDescriptor
	for index := 0; index < t.NumField(); index++ {
		field := t.Field(index)
		if field.PkgPath != "" || IsMarkerField(field.Tag) {
			continue
		}
		tag := ParseTag(field.Tag, i.tagNames...)
		if tag.Ignore {
			continue
		}
		descriptor := typegraph.FieldDescriptor{
			Name:     i.fieldName(field.Name, tag),
			Type:     i.fieldType(field.Type, tag),
			Required: fieldRequired(field.Type, tag, marker != nil),
		}
		i.applyDefault(&descriptor, field, tag, prototypePtr)
		ret = append(ret, descriptor)
	}
	return ret, marker
}

func (i *Inspector) fieldName(name string, tag *Tag) string {
	if tag.Name != "" {
		return tag.Name
	}
	if i.formatter != nil {
		return i.formatter.Format(name)
	}
	return name
}

func (i *Inspector) fieldType(t reflect.Type, tag *Tag) typegraph.Description {
	description := i.DescribeType(t)
	if items := tag.MetadataItems(); len(items) > 0 {
		description = Annotated(description, items...)
	}
	return description
}

// fieldRequired: tag marking wins; under a presence marker fields default to
// optional; otherwise pointer fields are optional, the rest required.
func fieldRequired(t reflect.Type, tag *Tag, partial bool) bool {
	if tag.hasRequire {
		return tag.Required
	}
	if partial {
		return false
	}
	return t.Kind() != reflect.Ptr
}

func (i *Inspector) applyDefault(descriptor *typegraph.FieldDescriptor, field reflect.StructField, tag *Tag, prototypePtr interface{}) {
	if tag.HasDefault {
		if value, err := ConvertLiteral(tag.Default, field.Type); err == nil {
			descriptor.Default = value
			descriptor.HasDefault = true
		}
		return
	}
	if prototypePtr == nil {
		return
	}
	value := xunsafe.NewField(field).Value(xunsafe.AsPointer(prototypePtr))
	if value == nil {
		return
	}
	if rValue := reflect.ValueOf(value); !rValue.IsZero() {
		descriptor.Default = value
		descriptor.HasDefault = true
	}
}

var predeclaredTypes = map[reflect.Kind]reflect.Type{
	reflect.Bool:       reflect.TypeOf(false),
	reflect.Int:        reflect.TypeOf(int(0)),
	reflect.Int8:       reflect.TypeOf(int8(0)),
	reflect.Int16:      reflect.TypeOf(int16(0)),
	reflect.Int32:      reflect.TypeOf(int32(0)),
	reflect.Int64:      reflect.TypeOf(int64(0)),
	reflect.Uint:       reflect.TypeOf(uint(0)),
	reflect.Uint8:      reflect.TypeOf(uint8(0)),
	reflect.Uint16:     reflect.TypeOf(uint16(0)),
	reflect.Uint32:     reflect.TypeOf(uint32(0)),
	reflect.Uint64:     reflect.TypeOf(uint64(0)),
	reflect.Float32:    reflect.TypeOf(float32(0)),
	reflect.Float64:    reflect.TypeOf(float64(0)),
	reflect.Complex64:  reflect.TypeOf(complex64(0)),
	reflect.Complex128: reflect.TypeOf(complex128(0)),
	reflect.String:     reflect.TypeOf(""),
	reflect.Uintptr:    reflect.TypeOf(uintptr(0)),
}

func predeclared(kind reflect.Kind) reflect.Type {
	if t, ok := predeclaredTypes[kind]; ok {
		return t
	}
	return reflect.TypeOf(struct{}{})
}
