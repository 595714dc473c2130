// Package graphjson exports a type graph as JSON for schema-generator
// consumers. Shared and recursive substructure is emitted once; later
// occurrences render as a ref entry.
package graphjson

import (
	"fmt"

	"github.com/francoispqt/gojay"
	"github.com/viant/typegraph"
)

// Marshal renders the graph rooted at root as JSON
func Marshal(root *typegraph.Node) ([]byte, error) {
	if root == nil {
		return []byte("null"), nil
	}
	return gojay.MarshalJSONObject(&nodeView{node: root, seen: map[*typegraph.Node]bool{}})
}

type nodeView struct {
	node *typegraph.Node
	seen map[*typegraph.Node]bool
}

// IsNil implements gojay.MarshalerJSONObject
func (v *nodeView) IsNil() bool {
	return v == nil || v.node == nil
}

// MarshalJSONObject implements gojay.MarshalerJSONObject
func (v *nodeView) MarshalJSONObject(enc *gojay.Encoder) {
	node := v.node
	if v.seen[node] {
		enc.StringKey("ref", node.String())
		return
	}
	v.seen[node] = true
	enc.StringKey("kind", node.Kind().String())
	enc.StringKeyOmitEmpty("name", node.Name())
	enc.StringKeyOmitEmpty("source", node.Source())
	if node.Kind() == typegraph.KindGeneric {
		enc.IntKey("arity", node.Arity())
	}
	if node.Kind() == typegraph.KindUnresolved {
		enc.StringKeyOmitEmpty("namespace", node.Namespace())
	}
	if !node.Metadata().IsEmpty() {
		enc.ArrayKey("metadata", itemsView(node.Metadata().Items()))
	}
	if node.Kind().IsRecord() && len(node.Fields()) > 0 {
		enc.ArrayKey("fields", fieldsView(node.Fields()))
	}
	if children := node.Children(); len(children) > 0 {
		enc.ArrayKey("children", &childrenView{children: children, seen: v.seen})
	}
}

type itemsView []interface{}

// IsNil implements gojay.MarshalerJSONArray
func (v itemsView) IsNil() bool {
	return len(v) == 0
}

// MarshalJSONArray implements gojay.MarshalerJSONArray
func (v itemsView) MarshalJSONArray(enc *gojay.Encoder) {
	for _, item := range v {
		enc.AddString(fmt.Sprintf("%v", item))
	}
}

type fieldsView []typegraph.Field

// IsNil implements gojay.MarshalerJSONArray
func (v fieldsView) IsNil() bool {
	return len(v) == 0
}

// MarshalJSONArray implements gojay.MarshalerJSONArray
func (v fieldsView) MarshalJSONArray(enc *gojay.Encoder) {
	for i := range v {
		enc.AddObject(&fieldView{field: &v[i]})
	}
}

type fieldView struct {
	field *typegraph.Field
}

// IsNil implements gojay.MarshalerJSONObject
func (v *fieldView) IsNil() bool {
	return v == nil || v.field == nil
}

// MarshalJSONObject implements gojay.MarshalerJSONObject
func (v *fieldView) MarshalJSONObject(enc *gojay.Encoder) {
	enc.StringKey("name", v.field.Name)
	enc.BoolKey("required", v.field.Required)
	if v.field.HasDefault {
		enc.StringKey("default", fmt.Sprintf("%v", v.field.Default))
	}
}

type childrenView struct {
	children []typegraph.ChildEdge
	seen     map[*typegraph.Node]bool
}

// IsNil implements gojay.MarshalerJSONArray
func (v *childrenView) IsNil() bool {
	return v == nil || len(v.children) == 0
}

// MarshalJSONArray implements gojay.MarshalerJSONArray
func (v *childrenView) MarshalJSONArray(enc *gojay.Encoder) {
	for _, child := range v.children {
		enc.AddObject(&childView{child: child, seen: v.seen})
	}
}

type childView struct {
	child typegraph.ChildEdge
	seen  map[*typegraph.Node]bool
}

// IsNil implements gojay.MarshalerJSONObject
func (v *childView) IsNil() bool {
	return v == nil || v.child.Node == nil
}

// MarshalJSONObject implements gojay.MarshalerJSONObject
func (v *childView) MarshalJSONObject(enc *gojay.Encoder) {
	enc.StringKey("edge", v.child.Edge.Label())
	enc.ObjectKey("node", &nodeView{node: v.child.Node, seen: v.seen})
}
