package inspect

import (
	"fmt"
	"reflect"
	"unsafe"

	"github.com/viant/xunsafe"
)

const (
	// MarkerTag marks the presence holder field of a partial record
	MarkerTag = "setMarker"
)

// IsMarkerField returns true if tag marks a presence holder field
func IsMarkerField(tag reflect.StructTag) bool {
	_, ok := tag.Lookup(MarkerTag)
	return ok
}

// HasMarker returns true if struct type carries a presence holder field
func HasMarker(t reflect.Type) bool {
	if t = ensureStruct(t); t == nil {
		return false
	}
	for i := 0; i < t.NumField(); i++ {
		if IsMarkerField(t.Field(i).Tag) {
			return true
		}
	}
	return false
}

// Marker tracks per-field presence of a partial record through a holder
// struct of booleans aligned by field name
type Marker struct {
	t      reflect.Type
	holder *xunsafe.Field
	fields []*xunsafe.Field
	index  map[string]int
}

// Index returns mapped field position or -1
func (m *Marker) Index(name string) int {
	pos, ok := m.index[name]
	if !ok {
		return -1
	}
	return pos
}

// IsSet returns true if the field at index was flagged as set; without a
// usable holder every field counts as set.
func (m *Marker) IsSet(ptr unsafe.Pointer, index int) bool {
	if m.holder == nil || m.holder.IsNil(ptr) {
		return true
	}
	holderPtr := m.holder.ValuePointer(ptr)
	if index < 0 || index >= len(m.fields) || m.fields[index] == nil {
		return false
	}
	return m.fields[index].Bool(holderPtr)
}

// Set flags the field at index
func (m *Marker) Set(ptr unsafe.Pointer, index int, flag bool) error {
	if m.holder == nil || m.holder.IsNil(ptr) {
		return fmt.Errorf("presence holder was empty for %s", m.t.String())
	}
	holderPtr := m.holder.ValuePointer(ptr)
	if index < 0 || index >= len(m.fields) || m.fields[index] == nil {
		return fmt.Errorf("field at index %v was missing in presence holder", index)
	}
	m.fields[index].SetBool(holderPtr, flag)
	return nil
}

// SetAll flags every tracked field
func (m *Marker) SetAll(ptr unsafe.Pointer, flag bool) error {
	if m.holder == nil || m.holder.IsNil(ptr) {
		return fmt.Errorf("presence holder was empty for %s", m.t.String())
	}
	holderPtr := m.holder.ValuePointer(ptr)
	for _, field := range m.fields {
		if field == nil {
			continue
		}
		field.SetBool(holderPtr, flag)
	}
	return nil
}

func (m *Marker) init() error {
	if m.holder == nil {
		return fmt.Errorf("presence holder was empty for %s", m.t.String())
	}
	holderType := ensureStruct(m.holder.Type)
	if holderType == nil {
		return fmt.Errorf("presence holder of %s is not a struct", m.t.String())
	}
	m.fields = make([]*xunsafe.Field, m.t.NumField())
	for i := 0; i < holderType.NumField(); i++ {
		holderField := holderType.Field(i)
		pos, ok := m.index[holderField.Name]
		if !ok {
			return fmt.Errorf("presence field %q does not have corresponding struct field", holderField.Name)
		}
		m.fields[pos] = xunsafe.NewField(holderField)
	}
	return nil
}

// NewMarker builds a presence marker for a partial record struct type
func NewMarker(t reflect.Type) (*Marker, error) {
	if t = ensureStruct(t); t == nil {
		return nil, fmt.Errorf("supplied type is not struct")
	}
	ret := &Marker{t: t, index: make(map[string]int, t.NumField())}
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if IsMarkerField(field.Tag) {
			ret.holder = xunsafe.NewField(field)
			continue
		}
		ret.index[field.Name] = field.Index[0]
	}
	return ret, ret.init()
}

func ensureStruct(t reflect.Type) reflect.Type {
	switch t.Kind() {
	case reflect.Struct:
		return t
	case reflect.Ptr:
		return ensureStruct(t.Elem())
	}
	return nil
}
