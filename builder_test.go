package typegraph

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type (
	testConcrete struct {
		name  string
		rType reflect.Type
	}

	testQualified struct {
		name  string
		base  Description
		items []interface{}
	}

	testAlias struct {
		name   string
		target Description
		params []Description
	}

	testTypeParam struct {
		name        string
		bound       Description
		constraints []Description
	}

	testRef struct {
		name      string
		namespace string
		resolved  Description
	}

	testUnion struct {
		name    string
		members []Description
	}

	testContainer struct {
		name   string
		origin Description
		args   []Description
	}

	testGeneric struct {
		name  string
		arity int
	}

	testRecord struct {
		name   string
		fields []FieldDescriptor
	}

	testSignature struct {
		name   string
		params []ParameterDescriptor
		result Description
	}
)

func (d *testConcrete) TypeName() string { return d.name }
func (d *testConcrete) ConcreteType() reflect.Type { return d.rType }

func (d *testQualified) TypeName() string { return d.name }
func (d *testQualified) QualifiedBase() Description { return d.base }
func (d *testQualified) MetadataItems() []interface{} { return d.items }

func (d *testAlias) TypeName() string { return d.name }
func (d *testAlias) AliasTarget() Description { return d.target }
func (d *testAlias) AliasParams() []Description { return d.params }

func (d *testTypeParam) TypeName() string { return d.name }
func (d *testTypeParam) Bound() Description { return d.bound }
func (d *testTypeParam) Constraints() []Description { return d.constraints }

func (d *testRef) TypeName() string { return d.name }
func (d *testRef) Namespace() string { return d.namespace }
func (d *testRef) Resolve() (Description, error) {
	if d.resolved == nil {
		return nil, fmt.Errorf("%q is not defined", d.name)
	}
	return d.resolved, nil
}

func (d *testUnion) TypeName() string { return d.name }
func (d *testUnion) Members() []Description { return d.members }

func (d *testContainer) TypeName() string { return d.name }
func (d *testContainer) ParamOrigin() Description { return d.origin }
func (d *testContainer) ParamArgs() []Description { return d.args }

func (d *testGeneric) TypeName() string { return d.name }
func (d *testGeneric) Arity() int { return d.arity }

func (d *testRecord) TypeName() string { return d.name }
func (d *testRecord) RecordFields() []FieldDescriptor { return d.fields }

func (d *testSignature) TypeName() string { return d.name }
func (d *testSignature) SignatureParams() []ParameterDescriptor {
	return d.params
}
func (d *testSignature) SignatureReturn() Description { return d.result }

func intDesc() *testConcrete {
	return &testConcrete{name: "int", rType: reflect.TypeOf(0)}
}

func TestBuilder_Dispatch(t *testing.T) {
	base := intDesc()
	var testCases = []struct {
		description string
		input       Description
		expectKind  Kind
		expectName  string
	}{
		{
			description: "plain concrete type",
			input:       base,
			expectKind:  KindConcrete,
			expectName:  "int",
		},
		{
			description: "bare generic origin",
			input:       &testGeneric{name: "list", arity: 1},
			expectKind:  KindGeneric,
			expectName:  "list",
		},
		{
			description: "union of alternatives",
			input:       &testUnion{name: "int|string", members: []Description{base, &testConcrete{name: "string"}}},
			expectKind:  KindUnion,
			expectName:  "int|string",
		},
		{
			description: "alias",
			input:       &testAlias{name: "Identifier", target: base},
			expectKind:  KindAlias,
			expectName:  "Identifier",
		},
		{
			description: "type parameter marker",
			input:       &testTypeParam{name: "T", bound: base},
			expectKind:  KindTypeParam,
			expectName:  "T",
		},
		{
			description: "field record",
			input:       &testRecord{name: "User", fields: []FieldDescriptor{{Name: "Id", Type: base, Required: true}}},
			expectKind:  KindFieldRecord,
			expectName:  "User",
		},
		{
			description: "signature",
			input:       &testSignature{name: "func(int) int", params: []ParameterDescriptor{{Name: "p0", Type: base}}, result: base},
			expectKind:  KindSignature,
			expectName:  "func(int) int",
		},
	}
	builder := New()
	for _, testCase := range testCases {
		node, err := builder.Build(testCase.input)
		require.Nil(t, err, testCase.description)
		assert.Equal(t, testCase.expectKind, node.Kind(), testCase.description)
		assert.Equal(t, testCase.expectName, node.Name(), testCase.description)
	}
}

func TestBuilder_Memoization(t *testing.T) {
	ResetCache()
	description := &testRecord{name: "User", fields: []FieldDescriptor{{Name: "Id", Type: intDesc(), Required: true}}}

	first, err := Build(description)
	require.Nil(t, err)
	second, err := Build(description)
	require.Nil(t, err)
	assert.Same(t, first, second)

	// a different config fingerprint builds a distinct instance
	third, err := Build(description, WithoutMembers())
	require.Nil(t, err)
	assert.NotSame(t, first, third)
	assert.Empty(t, third.Fields())

	ResetCache()
	fourth, err := Build(description)
	require.Nil(t, err)
	assert.NotSame(t, first, fourth)
}

func TestBuilder_Hoisting(t *testing.T) {
	base := intDesc()
	wrapped := &testQualified{name: "int", base: base, items: []interface{}{"m1", "m2"}}
	container := &testContainer{
		name:   "list[int]",
		origin: &testGeneric{name: "list", arity: 1},
		args:   []Description{wrapped},
	}

	node, err := New().Build(container)
	require.Nil(t, err)
	assert.Equal(t, KindParameterized, node.Kind())
	// hoisting is scoped per container boundary: the container node itself
	// carries no metadata
	assert.True(t, node.Metadata().IsEmpty())

	require.Len(t, node.Args(), 1)
	arg := node.Args()[0]
	assert.Equal(t, KindConcrete, arg.Kind())
	assert.Equal(t, "int", arg.Name())
	assert.Equal(t, []interface{}{"m1", "m2"}, arg.Metadata().Items())
}

func TestBuilder_HoistStacked(t *testing.T) {
	base := intDesc()
	inner := &testQualified{name: "int", base: base, items: []interface{}{"inner"}}
	outer := &testQualified{name: "int", base: inner, items: []interface{}{"outer"}}

	node, err := New().Build(outer)
	require.Nil(t, err)
	assert.Equal(t, KindConcrete, node.Kind())
	// outer-before-inner, one collection on one node
	assert.Equal(t, []interface{}{"outer", "inner"}, node.Metadata().Items())
}

func TestBuilder_HoistingOff(t *testing.T) {
	wrapped := &testQualified{name: "int", base: intDesc(), items: []interface{}{"m1"}}

	node, err := New(WithoutHoisting()).Build(wrapped)
	require.Nil(t, err)
	assert.Equal(t, KindAnnotated, node.Kind())
	assert.Equal(t, []interface{}{"m1"}, node.Metadata().Items())

	children := node.Children()
	require.Len(t, children, 1)
	assert.Equal(t, EdgeElement, children[0].Edge.Kind)
	assert.Equal(t, KindConcrete, children[0].Node.Kind())
	assert.True(t, children[0].Node.Metadata().IsEmpty())
}

func TestBuilder_SelfReference(t *testing.T) {
	record := &testRecord{name: "TreeNode"}
	record.fields = []FieldDescriptor{
		{Name: "Value", Type: intDesc(), Required: true},
		{Name: "Parent", Type: record},
	}

	node, err := New().Build(record)
	require.Nil(t, err)
	require.Len(t, node.Fields(), 2)

	parent := node.Fields()[1].Node
	assert.Equal(t, KindRecursive, parent.Kind())
	assert.Same(t, node, parent.Referent())
	assert.Empty(t, parent.Children())
}

func TestBuilder_DepthBound(t *testing.T) {
	leaf := &testRecord{name: "Leaf", fields: []FieldDescriptor{{Name: "Value", Type: intDesc(), Required: true}}}
	middle := &testRecord{name: "Middle", fields: []FieldDescriptor{{Name: "Leaf", Type: leaf, Required: true}}}
	root := &testRecord{name: "Root", fields: []FieldDescriptor{{Name: "Middle", Type: middle, Required: true}}}

	node, err := New(WithMaxDepth(1)).Build(root)
	require.Nil(t, err)
	require.Len(t, node.Fields(), 1)

	// depth exhaustion is a marker, not an error
	bounded := node.Fields()[0].Node
	assert.Equal(t, KindDepthBound, bounded.Kind())
	assert.Equal(t, "Middle", bounded.Name())
	assert.Empty(t, bounded.Children())

	// one more level of budget expands Middle and bounds Leaf
	node, err = New(WithMaxDepth(2)).Build(root)
	require.Nil(t, err)
	inner := node.Fields()[0].Node
	assert.Equal(t, KindFieldRecord, inner.Kind())
	require.Len(t, inner.Fields(), 1)
	assert.Equal(t, KindDepthBound, inner.Fields()[0].Node.Kind())
	assert.Equal(t, "Leaf", inner.Fields()[0].Node.Name())
}

func TestBuilder_DepthNotMemoized(t *testing.T) {
	ResetCache()
	leaf := &testRecord{name: "Leaf", fields: []FieldDescriptor{{Name: "V", Type: intDesc(), Required: true}}}
	middle := &testRecord{name: "Middle", fields: []FieldDescriptor{{Name: "Leaf", Type: leaf, Required: true}}}
	root := &testRecord{name: "Root", fields: []FieldDescriptor{{Name: "Middle", Type: middle, Required: true}}}

	warmed, err := Build(middle, WithMaxDepth(2))
	require.Nil(t, err)
	assert.Equal(t, KindDepthBound, warmed.Fields()[0].Node.Fields()[0].Node.Kind())

	// the shallow build above must not resurface at a deeper position: under
	// the same budget Leaf is now out of reach
	node, err := Build(root, WithMaxDepth(2))
	require.Nil(t, err)
	bounded := node.Fields()[0].Node.Fields()[0].Node
	assert.Equal(t, KindDepthBound, bounded.Kind())
	assert.Equal(t, "Leaf", bounded.Name())
}

func TestBuilder_MutualRecursion(t *testing.T) {
	ResetCache()
	a := &testRecord{name: "A"}
	b := &testRecord{name: "B"}
	a.fields = []FieldDescriptor{{Name: "B", Type: b, Required: true}}
	b.fields = []FieldDescriptor{{Name: "A", Type: a, Required: true}}

	_, err := Build(a)
	require.Nil(t, err)

	// a warm build is as complete as a cold one: the cache only keeps
	// subgraphs whose recursive markers point inside themselves, so B built
	// under A never masks A's fields here
	warm, err := Build(b)
	require.Nil(t, err)
	inner := warm.Fields()[0].Node
	assert.Equal(t, KindFieldRecord, inner.Kind())
	require.Len(t, inner.Fields(), 1)
	Walk(warm)(func(node *Node) bool {
		if node.Kind() == KindRecursive {
			assert.NotEmpty(t, node.Referent().Fields())
		}
		return true
	})

	// the cycle root itself stays memoized
	again, err := Build(b)
	require.Nil(t, err)
	assert.Same(t, warm, again)
}

func TestBuilder_EvalModes(t *testing.T) {
	var testCases = []struct {
		description     string
		options         []Option
		input           *testRef
		expectKind      Kind
		expectNamespace string
		expectError     bool
	}{
		{
			description: "eager resolves in place",
			input:       &testRef{name: "User", namespace: "app", resolved: intDesc()},
			expectKind:  KindConcrete,
		},
		{
			description: "eager fails on unresolvable",
			input:       &testRef{name: "Ghost", namespace: "app"},
			expectError: true,
		},
		{
			description:     "deferred keeps name and namespace",
			options:         []Option{WithMode(EvalDeferred)},
			input:           &testRef{name: "Ghost", namespace: "app"},
			expectKind:      KindUnresolved,
			expectNamespace: "app",
		},
		{
			description: "stringified keeps the literal name only",
			options:     []Option{WithMode(EvalStringified)},
			input:       &testRef{name: "Ghost", namespace: "app"},
			expectKind:  KindUnresolved,
		},
	}
	for _, testCase := range testCases {
		node, err := New(testCase.options...).Build(testCase.input)
		if testCase.expectError {
			require.NotNil(t, err, testCase.description)
			var construction *ConstructionError
			require.ErrorAs(t, err, &construction, testCase.description)
			var resolution *ResolutionError
			require.ErrorAs(t, err, &resolution, testCase.description)
			assert.Equal(t, "Ghost", resolution.Name, testCase.description)
			assert.Equal(t, "app", resolution.Namespace, testCase.description)
			continue
		}
		require.Nil(t, err, testCase.description)
		assert.Equal(t, testCase.expectKind, node.Kind(), testCase.description)
		assert.Equal(t, testCase.expectNamespace, node.Namespace(), testCase.description)
	}
}

func TestBuilder_Malformed(t *testing.T) {
	var testCases = []struct {
		description string
		input       Description
	}{
		{
			description: "nil description",
			input:       nil,
		},
		{
			description: "qualified wrapper without base",
			input:       &testQualified{name: "broken"},
		},
		{
			description: "alias without target",
			input:       &testAlias{name: "broken"},
		},
		{
			description: "union without members",
			input:       &testUnion{name: "broken"},
		},
		{
			description: "record field without type",
			input:       &testRecord{name: "broken", fields: []FieldDescriptor{{Name: "Id"}}},
		},
	}
	builder := New()
	for _, testCase := range testCases {
		_, err := builder.Build(testCase.input)
		require.NotNil(t, err, testCase.description)
		var construction *ConstructionError
		assert.ErrorAs(t, err, &construction, testCase.description)
	}
}

func TestNode_ChildrenOrder(t *testing.T) {
	base := intDesc()
	container := &testContainer{
		name:   "dict[int,int]",
		origin: &testGeneric{name: "dict", arity: 2},
		args:   []Description{base, &testConcrete{name: "string"}},
	}
	node, err := New().Build(container)
	require.Nil(t, err)

	children := node.Children()
	require.Len(t, children, 3)
	assert.Equal(t, EdgeOrigin, children[0].Edge.Kind)
	assert.Equal(t, EdgeArg, children[1].Edge.Kind)
	assert.Equal(t, 0, children[1].Edge.Index)
	assert.Equal(t, EdgeArg, children[2].Edge.Kind)
	assert.Equal(t, 1, children[2].Edge.Index)
}

func TestBuilder_SharedSubstructure(t *testing.T) {
	ResetCache()
	shared := &testRecord{name: "Address", fields: []FieldDescriptor{{Name: "City", Type: &testConcrete{name: "string"}, Required: true}}}
	left := &testRecord{name: "Home", fields: []FieldDescriptor{{Name: "Address", Type: shared, Required: true}}}
	right := &testRecord{name: "Office", fields: []FieldDescriptor{{Name: "Address", Type: shared, Required: true}}}

	leftNode, err := Build(left)
	require.Nil(t, err)
	rightNode, err := Build(right)
	require.Nil(t, err)

	// diamond: both parents converge on one cached instance
	assert.Same(t, leftNode.Fields()[0].Node, rightNode.Fields()[0].Node)
}
